package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Pages are probed no further than this regardless of what the markup claims.
const maxPageProbe = 100

var pageParamRe = regexp.MustCompile(`page=(\d+)`)

// pageURL builds the URL of the given index page. Page 1 is the bare base URL.
func pageURL(base string, page int) string {
	if page > 1 {
		return fmt.Sprintf("%s?page=%d", base, page)
	}
	return base
}

// findLastPage walks the paginated index to determine the highest reachable
// page number. Each fetched page is scanned for page-number signals; while
// the markup advertises pages beyond the highest one confirmed so far, the
// walk steps forward one page at a time. A fetch failure ends the walk with
// the highest page successfully fetched, so an advertised but dead page is
// never counted. Always >= 1.
func (s *Scraper) findLastPage(ctx context.Context) int {
	last := 1   // highest page successfully fetched
	target := 1 // highest page the markup has advertised
	page := 1

	for page <= maxPageProbe {
		html, err := s.fetcher.Fetch(ctx, pageURL(s.site.Site.URL, page))
		if err != nil {
			slog.Debug("Pagination walk stopped on fetch failure", "page", page, "error", err)
			break
		}

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			slog.Debug("Pagination walk stopped on parse failure", "page", page, "error", err)
			break
		}

		last = page

		numbers := scanPageNumbers(doc)
		if len(numbers) == 0 {
			if !hasArticleContainers(doc) {
				slog.Debug("Index exhausted, no pagination and no articles", "page", page)
			} else {
				slog.Debug("No pagination markup found, treating as single-page index", "page", page)
			}
			break
		}

		for _, n := range numbers {
			if n > target {
				target = n
			}
		}

		if target <= last {
			break
		}
		page = last + 1
	}

	return last
}

// scanPageNumbers collects page numbers from every hyperlink on the page,
// from either a page=N parameter in the href or purely numeric link text,
// then repeats the scan restricted to pagination-looking containers.
func scanPageNumbers(doc *goquery.Document) []int {
	var numbers []int

	collect := func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		if m := pageParamRe.FindStringSubmatch(href); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				numbers = append(numbers, n)
			}
			return
		}
		text := strings.TrimSpace(link.Text())
		if text != "" && isDigits(text) {
			if n, err := strconv.Atoi(text); err == nil {
				numbers = append(numbers, n)
			}
		}
	}

	doc.Find("a[href]").Each(collect)

	doc.Find("div, nav, ul").
		FilterFunction(attrPattern("class", paginationClassRe)).
		Find("a[href]").
		Each(collect)

	return numbers
}

// hasArticleContainers reports whether the page carries anything that looks
// like an article listing.
func hasArticleContainers(doc *goquery.Document) bool {
	if doc.Find("article").Length() > 0 {
		return true
	}
	return doc.Find("div").FilterFunction(attrPattern("class", articleClassRe)).Length() > 0
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
