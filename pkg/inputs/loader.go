package inputs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/dtnitsch/wordhist/internal/common"
	"github.com/dtnitsch/wordhist/models"
	"github.com/dtnitsch/wordhist/pkg/caching"
	"github.com/dtnitsch/wordhist/pkg/fetcher"
	"github.com/dtnitsch/wordhist/pkg/parser"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidURL is returned when a URL is still malformed after sanitizing.
var ErrInvalidURL = errors.New("invalid url")

// PageFetcher fetches the raw body of a URL.
type PageFetcher interface {
	GetHtmlBytes(ctx context.Context, url string) ([]byte, error)
}

// Loader turns paths and URLs into text documents. Loads are all-or-nothing:
// the first failure cancels the rest and no documents are returned.
type Loader struct {
	logger  *zap.SugaredLogger
	fetcher PageFetcher
	cache   *caching.Cache
	parser  *parser.Parser
	limit   int
}

type LoaderOption func(*Loader)

func WithLoaderLogger(logger *zap.SugaredLogger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

func WithFetcher(f PageFetcher) LoaderOption {
	return func(l *Loader) {
		if f != nil {
			l.fetcher = f
		}
	}
}

// WithCache serves fetched pages from c when fresh and stores new ones in it.
func WithCache(c *caching.Cache) LoaderOption {
	return func(l *Loader) { l.cache = c }
}

// WithConcurrency bounds the number of files or pages loaded at once.
func WithConcurrency(n int) LoaderOption {
	return func(l *Loader) {
		if n > 0 {
			l.limit = n
		}
	}
}

func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		logger:  zap.NewNop().Sugar(),
		fetcher: fetcher.NewFetcher(),
		parser:  &parser.Parser{},
		limit:   runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadFiles reads paths concurrently into text documents named by path, in
// input order. Invalid UTF-8 is replaced with U+FFFD.
func (l *Loader) LoadFiles(ctx context.Context, paths []string) ([]models.Document, error) {
	docs := make([]models.Document, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.limit)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			docs[i] = models.NewTextDocument(path, strings.ToValidUTF8(string(data), "\uFFFD"))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	l.logger.Debugw("Loaded files", "count", len(docs))
	return docs, nil
}

// LoadURLs fetches urls concurrently and extracts their readable text. The
// document name is the sanitized URL.
func (l *Loader) LoadURLs(ctx context.Context, urls []string) ([]models.Document, error) {
	valid, invalid := common.SanitizeAndValidateURLs(urls)
	if len(invalid) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, strings.Join(invalid, ", "))
	}

	docs := make([]models.Document, len(valid))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.limit)
	for i, u := range valid {
		g.Go(func() error {
			html, err := l.page(ctx, u)
			if err != nil {
				return err
			}
			page, err := l.parser.Parse(u, string(html))
			if err != nil {
				return fmt.Errorf("parse %s: %w", u, err)
			}
			l.logger.Debugw("Extracted page", "url", u, "title", page.Title, "readable", page.Readable)
			docs[i] = models.NewTextDocument(u, page.Text)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (l *Loader) page(ctx context.Context, u string) ([]byte, error) {
	if l.cache != nil {
		if data, ok := l.cache.Get(u); ok {
			l.logger.Debugw("Cache hit", "url", u)
			return data, nil
		}
	}

	data, err := l.fetcher.GetHtmlBytes(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u, err)
	}

	if l.cache != nil {
		if err := l.cache.Set(u, data); err != nil {
			l.logger.Warnw("Failed to cache page", "url", u, "error", err)
		}
	}
	return data, nil
}
