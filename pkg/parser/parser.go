package parser

import (
	"bufio"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// blockSelector lists the tags whose text counts as page content.
const blockSelector = "h1,h2,h3,h4,h5,h6,p,li,blockquote,pre,td,th,figcaption"

type Parser struct{}

// Extracted is the readable part of an HTML page.
type Extracted struct {
	Title string
	Text  string
	// Readable is false when readability found no article and the text came
	// from the whole body instead.
	Readable bool
}

// Parse extracts the main article text from html. go-readability picks the
// content; goquery flattens it into one block per line. Pages readability
// cannot handle fall back to the full body text.
func (p *Parser) Parse(rawURL, html string) (Extracted, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return Extracted{}, fmt.Errorf("invalid url %q: %w", rawURL, err)
	}

	readabilityParser := readability.NewParser()
	article, err := readabilityParser.Parse(strings.NewReader(html), parsedURL)
	if err == nil {
		text, err := blocksText(article.Content)
		if err != nil {
			return Extracted{}, err
		}
		if text == "" {
			text = normalizeText(article.TextContent)
		}
		if text != "" {
			return Extracted{Title: normalizeText(article.Title), Text: text, Readable: true}, nil
		}
	}

	return fallback(html)
}

func fallback(html string) (Extracted, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Extracted{}, fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find("script,style,noscript,template").Remove()

	return Extracted{
		Title: normalizeText(doc.Find("title").First().Text()),
		Text:  normalizeText(doc.Find("body").Text()),
	}, nil
}

func blocksText(content string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse article: %w", err)
	}

	var lines []string
	doc.Find(blockSelector).Each(func(i int, s *goquery.Selection) {
		// nested blocks are covered by their parent
		if s.ParentsFiltered(blockSelector).Length() > 0 {
			return
		}
		if text := normalizeText(s.Text()); text != "" {
			lines = append(lines, text)
		}
	})
	return strings.Join(lines, "\n"), nil
}

// normalizeText trims every line and joins the non-empty ones with a space.
func normalizeText(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	scanner := bufio.NewScanner(strings.NewReader(input))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<22)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			b.WriteString(line)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}
