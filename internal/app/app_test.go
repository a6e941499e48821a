package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/dtnitsch/wordhist/models"
	"github.com/dtnitsch/wordhist/pkg/engine"
	"github.com/dtnitsch/wordhist/pkg/inputs"
	"github.com/dtnitsch/wordhist/pkg/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// runApp runs fn as the action of a throwaway app carrying every flag group.
func runApp(t *testing.T, args []string, fn func(c *cli.Context) error) {
	t.Helper()
	app := &cli.App{
		Name:   "wordhist-test",
		Flags:  Merge(GlobalFlags(), AnalysisFlags(), VocabularyFlags(), SyntheticFlags(), FetchFlags()),
		Action: fn,
	}
	require.NoError(t, app.Run(append([]string{"wordhist-test"}, args...)))
}

func TestResolveConfig_Defaults(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "none.yaml")
	runApp(t, []string{"--config", missing}, func(c *cli.Context) error {
		cfg, err := ResolveConfig(c)
		require.NoError(t, err)
		assert.Equal(t, models.DefaultConfig(), cfg)
		return nil
	})
}

func TestResolveConfig_FileThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordhist.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
workers: 8
top: 10
output: out/from-file.json
vocabulary:
  size: 500
synthetic:
  files: 3
`), 0644))

	runApp(t, []string{"--config", path, "--top", "5", "--vocab-seed", "9", "--seed", "77"}, func(c *cli.Context) error {
		cfg, err := ResolveConfig(c)
		require.NoError(t, err)
		assert.Equal(t, 8, cfg.Workers)
		assert.Equal(t, 5, cfg.Top)
		assert.Equal(t, "out/from-file.json", cfg.Output)
		assert.Equal(t, uint32(500), cfg.Vocabulary.Size)
		assert.Equal(t, uint32(9), cfg.Vocabulary.Seed)
		assert.Equal(t, 3, cfg.Synthetic.Files)
		assert.Equal(t, uint32(77), cfg.Synthetic.Seed)
		return nil
	})
}

func TestResolveConfig_ClampsWorkers(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "none.yaml")
	for _, tt := range []struct {
		arg  string
		want int
	}{{"0", 1}, {"-3", 1}, {"64", 32}, {"12", 12}} {
		runApp(t, []string{"--config", missing, "--workers=" + tt.arg}, func(c *cli.Context) error {
			cfg, err := ResolveConfig(c)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Workers, tt.arg)
			return nil
		})
	}
}

func TestResolveConfig_RejectsOversizedUints(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "none.yaml")
	tests := []struct {
		flag string
		want error
	}{
		{"--vocab-size=4294967396", engine.ErrGeneratorConfig},
		{"--vocab-seed=4294967296", engine.ErrGeneratorConfig},
		{"--seed=4294967296", engine.ErrInvalidInput},
	}
	for _, tt := range tests {
		runApp(t, []string{"--config", missing, tt.flag}, func(c *cli.Context) error {
			_, err := ResolveConfig(c)
			require.ErrorIs(t, err, tt.want, tt.flag)

			var coder cli.ExitCoder
			require.ErrorAs(t, Exit(err), &coder)
			assert.Equal(t, ExitInvalidInput, coder.ExitCode(), tt.flag)
			return nil
		})
	}

	runApp(t, []string{"--config", missing, "--vocab-seed=4294967295", "--vocab-size=500"}, func(c *cli.Context) error {
		cfg, err := ResolveConfig(c)
		require.NoError(t, err)
		assert.Equal(t, uint32(4294967295), cfg.Vocabulary.Seed)
		assert.Equal(t, uint32(500), cfg.Vocabulary.Size)
		return nil
	})
}

func TestExit(t *testing.T) {
	assert.NoError(t, Exit(nil))

	tests := []struct {
		err  error
		code int
	}{
		{ErrNoInput, ExitFailure},
		{fmt.Errorf("%w: not a directory", ErrInvalidArgs), ExitInvalidInput},
		{fmt.Errorf("wrap: %w", engine.ErrInvalidInput), ExitInvalidInput},
		{engine.ErrGeneratorConfig, ExitInvalidInput},
		{inputs.ErrInvalidURL, ExitInvalidInput},
		{&engine.WorkerError{Chunk: 1, Err: errors.New("x")}, ExitFailure},
		{errors.New("disk full"), ExitFailure},
	}
	for _, tt := range tests {
		var coder cli.ExitCoder
		require.ErrorAs(t, Exit(tt.err), &coder)
		assert.Equal(t, tt.code, coder.ExitCode(), tt.err.Error())
	}
}

func TestEnv_AnalyzeAndRecord(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in")
	require.NoError(t, os.MkdirAll(input, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(input, "a.txt"), []byte("The cat sat. The CAT ran!"), 0644))
	out := filepath.Join(dir, "out", "hist.json")
	dbPath := filepath.Join(dir, "history.db")

	runApp(t, []string{"--config", filepath.Join(dir, "none.yaml"), "-q", "--db", dbPath, "--out", out, "--workers", "2", input},
		func(c *cli.Context) error {
			env, err := Setup(c)
			require.NoError(t, err)
			defer env.Close()

			loader, err := env.Loader(c)
			require.NoError(t, err)
			docs, err := CollectDocuments(context.Background(), c, loader)
			require.NoError(t, err)
			require.Len(t, docs, 1)

			res, err := env.Analyze(context.Background(), docs)
			require.NoError(t, err)
			assert.Equal(t, out, res.Path)
			assert.NotEmpty(t, res.RunID)
			assert.Equal(t, uint64(6), res.Output.Meta.TotalTokens)
			assert.Equal(t, 2, res.Output.Meta.Workers)
			assert.Positive(t, res.Bytes)

			saved, err := env.Storage.LoadOutput(out)
			require.NoError(t, err)
			assert.Equal(t, res.Output, saved)

			run, err := env.History.GetRun(res.RunID)
			require.NoError(t, err)
			assert.Equal(t, "the", run.TopWords[0].Word)
			return nil
		})
}

func TestEnv_AnalyzeNoInput(t *testing.T) {
	runApp(t, []string{"--config", filepath.Join(t.TempDir(), "none.yaml"), "-q", "--no-db"}, func(c *cli.Context) error {
		env, err := Setup(c)
		require.NoError(t, err)
		defer env.Close()
		assert.Nil(t, env.History)

		_, err = env.Analyze(context.Background(), nil)
		assert.ErrorIs(t, err, ErrNoInput)
		return nil
	})
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, Result{
		Output: manifest.Output{Meta: manifest.Meta{Mode: "text", Workers: 4, Files: 1200, TotalTokens: 1234567, UniqueTokens: 8000, TotalElapsedMs: 42}},
		Path:   "out/hist.json",
		RunID:  "run-1",
		Bytes:  2048,
	}, false)

	assert.Equal(t, "Files: 1,200 | Tokens: 1,234,567 | Unique: 8,000\n"+
		"Total time: 42 ms | workers=4 | mode=text\n"+
		"Output: out/hist.json (2.0 kB)\n"+
		"Run: run-1\n", buf.String())
}
