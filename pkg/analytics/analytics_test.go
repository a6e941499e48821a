package analytics

import (
	"testing"

	"github.com/dtnitsch/wordhist/pkg/synth"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestWordFrequency(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		want       map[string]uint64
		wantOrder  []string
		wantTokens uint64
	}{
		{
			name:       "case folding and punctuation",
			text:       "The cat sat. The CAT ran!",
			want:       map[string]uint64{"the": 2, "cat": 2, "sat": 1, "ran": 1},
			wantOrder:  []string{"the", "cat", "sat", "ran"},
			wantTokens: 6,
		},
		{
			name:       "unicode letters",
			text:       "Zażółć GĘŚLĄ jaźń, zażółć!",
			want:       map[string]uint64{"zażółć": 2, "gęślą": 1, "jaźń": 1},
			wantOrder:  []string{"zażółć", "gęślą", "jaźń"},
			wantTokens: 4,
		},
		{
			name:       "digits are word characters",
			text:       "route66 66 -- 4x4",
			want:       map[string]uint64{"route66": 1, "66": 1, "4x4": 1},
			wantOrder:  []string{"route66", "66", "4x4"},
			wantTokens: 3,
		},
		{
			name:       "underscore and apostrophe separate",
			text:       "snake_case don't",
			want:       map[string]uint64{"snake": 1, "case": 1, "don": 1, "t": 1},
			wantOrder:  []string{"snake", "case", "don", "t"},
			wantTokens: 4,
		},
		{
			name:       "non latin scripts",
			text:       "Привет мир ПРИВЕТ",
			want:       map[string]uint64{"привет": 2, "мир": 1},
			wantOrder:  []string{"привет", "мир"},
			wantTokens: 3,
		},
		{
			name:       "empty",
			text:       "",
			want:       map[string]uint64{},
			wantOrder:  []string{},
			wantTokens: 0,
		},
		{
			name:       "only separators",
			text:       " ...!?\n\t-- ",
			want:       map[string]uint64{},
			wantOrder:  []string{},
			wantTokens: 0,
		},
		{
			name:       "invalid utf8 separates",
			text:       "ab\xffcd",
			want:       map[string]uint64{"ab": 1, "cd": 1},
			wantOrder:  []string{"ab", "cd"},
			wantTokens: 2,
		},
	}

	a := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := a.WordFrequency(tt.text)
			if diff := cmp.Diff(tt.want, h.Counts); diff != "" {
				t.Errorf("WordFrequency() counts mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.wantOrder, h.Words())
			assert.Equal(t, tt.wantTokens, h.Tokens)
			assert.Equal(t, h.Tokens, h.Sum())
		})
	}
}

func TestWordFrequency_ReusableAcrossDocuments(t *testing.T) {
	a := New()
	first := a.WordFrequency("ΣΑΣ one")
	second := a.WordFrequency("one ΣΑΣ")

	assert.Equal(t, first.Counts, second.Counts)
}

func TestSyntheticFrequency(t *testing.T) {
	a := New()
	vocab := synth.MakeVocabulary(123, 100, 3, 10)

	empty := a.SyntheticFrequency(1, 0, vocab)
	assert.Empty(t, empty.Counts)
	assert.Zero(t, empty.Tokens)

	h := a.SyntheticFrequency(1, 5000, vocab)
	assert.Equal(t, uint64(5000), h.Tokens)
	assert.Equal(t, h.Tokens, h.Sum())

	again := New().SyntheticFrequency(1, 5000, vocab)
	assert.Equal(t, h.Counts, again.Counts)
	assert.Equal(t, h.Words(), again.Words())

	// the stream's first word is also the first-seen key
	assert.Equal(t, synth.GenerateWordStream(1, 1, vocab)[0], h.Words()[0])
}
