package scraper

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractLinks discovers article links on an index page. Candidate containers
// are scanned in a fixed order of decreasing specificity; each contributes
// its first hyperlink, titled by its first heading or the link text itself.
// Results are deduplicated by URL with document order preserved. When no
// container strategy matches anything, every hyperlink on the page is
// considered and filtered by blog-looking path segments instead.
func extractLinks(pageHTML, pageURL string) []Link {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil
	}

	var links []Link
	seen := make(map[string]bool)

	fromContainers := func(containers *goquery.Selection) {
		containers.Each(func(_ int, container *goquery.Selection) {
			link := container.Find("a[href]").First()
			if link.Length() == 0 {
				return
			}

			href, _ := link.Attr("href")
			abs := resolveURL(href, pageURL)

			title := normalizeSpace(container.Find("h1, h2, h3, h4").First().Text())
			if title == "" {
				title = normalizeSpace(link.Text())
			}

			if abs == "" || title == "" || seen[abs] {
				return
			}
			seen[abs] = true
			links = append(links, Link{URL: abs, Title: title})
		})
	}

	fromContainers(doc.Find("article"))
	fromContainers(doc.Find("div").FilterFunction(attrPattern("class", articleClassRe)))
	fromContainers(doc.Find("[id]").FilterFunction(attrPattern("id", articleClassRe)))
	fromContainers(doc.Find("div, section").FilterFunction(attrPattern("class", cardClassRe)))

	if len(links) == 0 {
		doc.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
			href, _ := link.Attr("href")
			if !strings.Contains(href, "/blog/") && !strings.Contains(href, "/article/") &&
				!strings.Contains(href, "/post/") {
				return
			}

			text := normalizeSpace(link.Text())
			abs := resolveURL(href, pageURL)
			if abs == "" || text == "" || seen[abs] {
				return
			}
			seen[abs] = true
			links = append(links, Link{URL: abs, Title: text})
		})
	}

	return links
}

// resolveURL normalizes an href against the page it was found on:
// root-relative links resolve against the page's scheme+host, other
// non-absolute links are joined onto the page path.
func resolveURL(href, pageURL string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "/") {
		parsed, err := url.Parse(pageURL)
		if err != nil || parsed.Host == "" {
			return ""
		}
		return parsed.Scheme + "://" + parsed.Host + href
	}
	if !strings.HasPrefix(href, "http") {
		return strings.TrimRight(pageURL, "/") + "/" + strings.TrimLeft(href, "/")
	}
	return href
}
