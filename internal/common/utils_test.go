package common

import (
	"testing"

	"github.com/dtnitsch/wordhist/models"
	"github.com/stretchr/testify/assert"
)

func TestSanitizeURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  https://example.com  ", "https://example.com"},
		{"[docs](https://example.com/docs)", "https://example.com/docs"},
		{"https://example.com,", "https://example.com"},
		{"(https://example.com)", "https://example.com"},
		{"<https://example.com/a>;", "https://example.com/a"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeURL(tt.in), tt.in)
	}
}

func TestSanitizeAndValidateURLs(t *testing.T) {
	valid, invalid := SanitizeAndValidateURLs([]string{
		"https://example.com/page",
		"http://127.0.0.1:8080/a.html",
		"ftp://example.com",
		"not a url",
		"",
		"https://example.com,",
	})

	assert.Equal(t, []string{
		"https://example.com/page",
		"http://127.0.0.1:8080/a.html",
		"https://example.com",
	}, valid)
	assert.Equal(t, []string{"ftp://example.com", "not a url", ""}, invalid)
}

func TestContentHash(t *testing.T) {
	assert.Equal(t,
		"2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		ContentHash([]byte("hello")))
}

func TestDocumentsHash(t *testing.T) {
	a := []models.Document{
		models.NewTextDocument("a.txt", "one two"),
		models.NewSyntheticDocument("gen_0001.txt", 123, 10),
	}
	b := []models.Document{
		models.NewTextDocument("a.txt", "one two"),
		models.NewSyntheticDocument("gen_0001.txt", 124, 10),
	}

	assert.Equal(t, DocumentsHash(a), DocumentsHash(a))
	assert.NotEqual(t, DocumentsHash(a), DocumentsHash(b))
	assert.Len(t, DocumentsHash(nil), 64)
}
