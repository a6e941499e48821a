package mapreduce

import (
	"testing"

	"github.com/dtnitsch/wordhist/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func histogramOf(words ...string) *models.Histogram {
	h := models.NewHistogram()
	for _, w := range words {
		h.Add(w, 1)
	}
	return h
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name    string
		items   []string
		workers int
		want    [][]string
	}{
		{
			name:    "two documents two workers",
			items:   []string{"doc0", "doc1"},
			workers: 2,
			want:    [][]string{{"doc0"}, {"doc1"}},
		},
		{
			name:    "round robin keeps relative order",
			items:   []string{"a", "b", "c", "d", "e"},
			workers: 2,
			want:    [][]string{{"a", "c", "e"}, {"b", "d"}},
		},
		{
			name:    "more workers than items drops empty chunks",
			items:   []string{"a", "b", "c"},
			workers: 8,
			want:    [][]string{{"a"}, {"b"}, {"c"}},
		},
		{
			name:    "single worker",
			items:   []string{"a", "b", "c"},
			workers: 1,
			want:    [][]string{{"a", "b", "c"}},
		},
		{
			name:    "zero workers treated as one",
			items:   []string{"a", "b"},
			workers: 0,
			want:    [][]string{{"a", "b"}},
		},
		{
			name:    "no items",
			items:   nil,
			workers: 4,
			want:    [][]string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.items, tt.workers))
		})
	}
}

func TestSplit_BalancedSizes(t *testing.T) {
	items := make([]int, 103)
	for i := range items {
		items[i] = i
	}
	for workers := 1; workers <= 32; workers++ {
		chunks := Split(items, workers)
		require.Len(t, chunks, workers)
		lo, hi := len(items), 0
		total := 0
		for _, c := range chunks {
			lo = min(lo, len(c))
			hi = max(hi, len(c))
			total += len(c)
		}
		assert.LessOrEqual(t, hi-lo, 1, "workers=%d", workers)
		assert.Equal(t, len(items), total)
	}
}

func TestReduce(t *testing.T) {
	partials := []models.PartialResult{
		{
			Chunk:     0,
			Histogram: histogramOf("b", "a", "b"),
			Documents: []models.DocumentStat{{Name: "fast.txt", Tokens: 3, ElapsedMs: 2}},
		},
		{
			Chunk:     1,
			Histogram: histogramOf("c", "a", "d"),
			Documents: []models.DocumentStat{
				{Name: "slow.txt", Tokens: 2, ElapsedMs: 9},
				{Name: "mid.txt", Tokens: 1, ElapsedMs: 4},
			},
		},
	}

	report := Reduce(partials, 30)

	assert.Equal(t, uint64(6), report.TotalTokens)
	assert.Equal(t, 4, report.UniqueTokens)
	assert.Equal(t, map[string]uint64{"a": 2, "b": 2, "c": 1, "d": 1}, report.Histogram.Counts)
	// ties keep merge order: b before a, then c before d
	assert.Equal(t, []models.WordCount{
		{Word: "b", Count: 2},
		{Word: "a", Count: 2},
		{Word: "c", Count: 1},
		{Word: "d", Count: 1},
	}, report.TopWords)

	names := make([]string, len(report.Documents))
	for i, d := range report.Documents {
		names[i] = d.Name
	}
	assert.Equal(t, []string{"slow.txt", "mid.txt", "fast.txt"}, names)

	require.NotNil(t, report.AvgElapsedMsPerDocument)
	assert.Equal(t, int64(5), *report.AvgElapsedMsPerDocument)
}

func TestReduce_TokenInvariant(t *testing.T) {
	partials := []models.PartialResult{
		{Histogram: histogramOf("x", "y", "x")},
		{Histogram: histogramOf("y", "z")},
		{Histogram: models.NewHistogram()},
	}
	var sum uint64
	for _, p := range partials {
		sum += p.TokenCount()
	}

	report := Reduce(partials, 10)
	assert.Equal(t, sum, report.TotalTokens)
	assert.Equal(t, report.TotalTokens, report.Histogram.Sum())
	assert.Equal(t, len(report.Histogram.Counts), report.UniqueTokens)
}

func TestReduce_Empty(t *testing.T) {
	report := Reduce(nil, 30)
	assert.Zero(t, report.TotalTokens)
	assert.Zero(t, report.UniqueTokens)
	assert.Empty(t, report.TopWords)
	assert.Empty(t, report.Documents)
	assert.Nil(t, report.AvgElapsedMsPerDocument)
}

func TestTopWords(t *testing.T) {
	h := histogramOf("q", "r", "s", "r", "s", "s")

	assert.Equal(t, []models.WordCount{{Word: "s", Count: 3}, {Word: "r", Count: 2}}, TopWords(h, 2))
	assert.Len(t, TopWords(h, 100), 3)
	assert.Empty(t, TopWords(h, 0))
	assert.Empty(t, TopWords(nil, 5))

	top := TopWords(h, 3)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].Count, top[i].Count)
	}
}

func TestTopKeywords(t *testing.T) {
	h := histogramOf("go", "go", "rust")
	assert.Equal(t, []string{"go:2", "rust:1"}, TopKeywords(h, 25))
}
