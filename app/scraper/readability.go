package scraper

import (
	"fmt"
	"strings"

	readability "codeberg.org/readeck/go-readability"
)

// ReadabilityExtractor is a last-resort whole-page content extractor used
// when the paragraph heuristics come up empty. Only active when enabled in
// the site configuration.
type ReadabilityExtractor struct{}

func NewReadabilityExtractor() *ReadabilityExtractor {
	return &ReadabilityExtractor{}
}

func (e *ReadabilityExtractor) Run(html string) (string, error) {
	if html == "" {
		return "", fmt.Errorf("HTML data is empty")
	}

	article, err := readability.FromReader(strings.NewReader(html), nil)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}

	content := normalizeSpace(article.TextContent)
	if content == "" {
		return "", fmt.Errorf("no content extracted from HTML data")
	}

	return content, nil
}
