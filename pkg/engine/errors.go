package engine

import (
	"errors"
	"fmt"

	"github.com/dtnitsch/wordhist/pkg/synth"
)

var (
	// ErrInvalidInput is returned before dispatch for an empty document set or
	// a worker count outside [1, 32].
	ErrInvalidInput = errors.New("invalid input")
	// ErrGeneratorConfig is returned before dispatch when a synthetic run's
	// vocabulary config is below the minimums.
	ErrGeneratorConfig = synth.ErrInvalidConfig
	// ErrWorkerFailure matches any *WorkerError.
	ErrWorkerFailure = errors.New("worker failure")
	// ErrAlreadyRunning is returned when Run is called on a coordinator whose
	// previous run has not finished.
	ErrAlreadyRunning = errors.New("coordinator already running")
	// ErrMalformedDocument is the cause reported for a document that carries
	// neither or both of text and synthetic sources.
	ErrMalformedDocument = errors.New("malformed document")
)

// WorkerError reports the chunk that failed and the document being processed
// when it did. Document is empty when the failure was not tied to one.
type WorkerError struct {
	Chunk    int
	Document string
	Err      error
}

func (e *WorkerError) Error() string {
	if e.Document == "" {
		return fmt.Sprintf("worker failure in chunk %d: %v", e.Chunk, e.Err)
	}
	return fmt.Sprintf("worker failure in chunk %d (document %q): %v", e.Chunk, e.Document, e.Err)
}

func (e *WorkerError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrWorkerFailure) match.
func (e *WorkerError) Is(target error) bool { return target == ErrWorkerFailure }
