package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Markup vocabulary differs from site to site, so containers are located by
// case-insensitive substring patterns over class/id attributes rather than
// exact selectors.
var (
	articleClassRe = regexp.MustCompile(`(?i)article|blog|post`)
	cardClassRe    = regexp.MustCompile(`(?i)card|item|entry`)

	contentClassRe = regexp.MustCompile(`(?i)content|post-content|article-content|entry-content`)
	bodyClassRe    = regexp.MustCompile(`(?i)post-body|article-body`)
	contentIDRe    = regexp.MustCompile(`(?i)content|post-content|article-content`)

	authorClassRe = regexp.MustCompile(`(?i)author|byline|writer`)
	dateClassRe   = regexp.MustCompile(`(?i)date|published|time`)

	paginationClassRe = regexp.MustCompile(`(?i)pagination|page`)
)

// attrPattern builds a goquery filter matching elements whose attribute
// value matches the given pattern.
func attrPattern(attr string, re *regexp.Regexp) func(int, *goquery.Selection) bool {
	return func(_ int, s *goquery.Selection) bool {
		val, ok := s.Attr(attr)
		return ok && re.MatchString(val)
	}
}

// normalizeSpace trims and collapses all runs of whitespace to single spaces.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
