package scraper

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
)

// extractDetails pulls title, body text, author and publish date out of an
// article page. Each field runs its own ordered list of heuristic strategies
// and independently degrades to an empty string; only unparseable HTML is an
// error.
func extractDetails(articleHTML string) (Details, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(articleHTML))
	if err != nil {
		return Details{}, err
	}

	return Details{
		Title:         extractTitle(doc),
		Content:       extractContent(doc),
		Author:        extractAuthor(doc),
		PublishedDate: extractPublishedDate(doc),
	}, nil
}

func extractTitle(doc *goquery.Document) string {
	if title := normalizeSpace(doc.Find("h1").First().Text()); title != "" {
		return title
	}
	return normalizeSpace(doc.Find("title").First().Text())
}

// extractContent joins the paragraph texts of the first container a strategy
// locates. Strategies that find a container without paragraph text do not
// stop the search.
func extractContent(doc *goquery.Document) string {
	strategies := []*goquery.Selection{
		doc.Find("div").FilterFunction(attrPattern("class", contentClassRe)),
		doc.Find("div").FilterFunction(attrPattern("class", bodyClassRe)),
		doc.Find("div").FilterFunction(attrPattern("id", contentIDRe)),
	}

	for _, containers := range strategies {
		if containers.Length() == 0 {
			continue
		}
		if content := joinParagraphs(containers.First()); content != "" {
			return content
		}
	}

	fallback := doc.Find("main").First()
	if fallback.Length() == 0 {
		fallback = doc.Find("article").First()
	}
	if fallback.Length() == 0 {
		return ""
	}
	return joinParagraphs(fallback)
}

func extractAuthor(doc *goquery.Document) string {
	author := doc.Find("span, div, a").
		FilterFunction(attrPattern("class", authorClassRe)).
		First()
	if author.Length() > 0 {
		return normalizeSpace(author.Text())
	}

	return normalizeSpace(doc.Find(`[itemprop="author"]`).First().Text())
}

// extractPublishedDate prefers a machine-readable datetime attribute over
// element text. Values that parse as dates are normalized to RFC 3339; raw
// text is kept otherwise.
func extractPublishedDate(doc *goquery.Document) string {
	candidates := []*goquery.Selection{
		doc.Find("time, span, div").FilterFunction(attrPattern("class", dateClassRe)).First(),
		doc.Find(`[itemprop="datePublished"]`).First(),
		doc.Find("[datetime]").First(),
	}

	for _, candidate := range candidates {
		if candidate.Length() == 0 {
			continue
		}

		value, ok := candidate.Attr("datetime")
		if !ok || value == "" {
			value = normalizeSpace(candidate.Text())
		}
		if value != "" {
			return normalizeDate(value)
		}
	}

	return ""
}

func joinParagraphs(container *goquery.Selection) string {
	var paragraphs []string
	container.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := normalizeSpace(p.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	return strings.Join(paragraphs, " ")
}

func normalizeDate(raw string) string {
	if t, err := dateparse.ParseAny(raw); err == nil {
		return t.Format(time.RFC3339)
	}
	return raw
}
