package common

import (
	"crypto/sha256"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/dtnitsch/wordhist/models"
)

var (
	markdownLink = regexp.MustCompile(`^\[.*?\]\((https?://[^\)]+)\)$`)
	validURL     = regexp.MustCompile(`^https?://[a-zA-Z0-9][-a-zA-Z0-9.]*[a-zA-Z0-9](:[0-9]{1,5})?(/[^\s]*)?$`)
)

// ContentHash computes the SHA256 of data as a hex string.
func ContentHash(data []byte) string {
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash)
}

// DocumentsHash fingerprints a document set by name and source. Two runs over
// the same inputs get the same hash regardless of worker count.
func DocumentsHash(docs []models.Document) string {
	h := sha256.New()
	for _, d := range docs {
		fmt.Fprintf(h, "%s\x00", d.Name)
		switch {
		case d.Text != nil:
			fmt.Fprintf(h, "t%x\x00", sha256.Sum256([]byte(d.Text.Text)))
		case d.Synthetic != nil:
			fmt.Fprintf(h, "s%d:%d\x00", d.Synthetic.Seed, d.Synthetic.WordCount)
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// SanitizeURL cleans up copy-paste noise around a URL: whitespace, markdown
// link syntax, and stray leading or trailing punctuation.
func SanitizeURL(rawURL string) string {
	cleaned := strings.TrimSpace(rawURL)

	if m := markdownLink.FindStringSubmatch(cleaned); len(m) > 1 {
		cleaned = m[1]
	}

	cleaned = strings.TrimRight(cleaned, ",.)}]\"'>;")
	cleaned = strings.TrimLeft(cleaned, "([<\"'")

	return strings.TrimSpace(cleaned)
}

// SanitizeAndValidateURLs returns the sanitized form of every valid URL and
// the raw form of every URL that stays invalid after sanitizing.
func SanitizeAndValidateURLs(urls []string) ([]string, []string) {
	sanitized := make([]string, 0, len(urls))
	var invalid []string

	for _, raw := range urls {
		cleaned := SanitizeURL(raw)
		if !isValidURL(cleaned) {
			invalid = append(invalid, raw)
			continue
		}
		sanitized = append(sanitized, cleaned)
	}

	return sanitized, invalid
}

func isValidURL(s string) bool {
	if s == "" || strings.Contains(s, " ") || !validURL.MatchString(s) {
		return false
	}
	parsed, err := url.Parse(s)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host != "" && !strings.ContainsAny(parsed.Host, "{}[]<>\"'")
}
