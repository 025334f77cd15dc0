package scraper

import (
	"context"
	"log/slog"

	"github.com/anupamkr2307/beyond-chats/app/config"
	"github.com/anupamkr2307/beyond-chats/app/database"
)

// Scraper composes pagination discovery, link discovery and per-article
// extraction into a single synchronous scrape-and-store pass.
type Scraper struct {
	fetcher     *Fetcher
	store       ArticleStore
	site        *config.SiteConfig
	readability *ReadabilityExtractor
}

func New(fetcher *Fetcher, store ArticleStore, site *config.SiteConfig) *Scraper {
	s := &Scraper{
		fetcher: fetcher,
		store:   store,
		site:    site,
	}
	if site.Settings.ExtractReadability {
		s.readability = NewReadabilityExtractor()
	}
	return s
}

// Run scrapes up to the configured number of articles and upserts them.
// The highest-numbered index page is scraped first: on the target site
// later pages hold the oldest posts, and that selection is intentional.
// A pass that finds nothing there retries the bare base URL once. Failures
// to store individual articles are logged and skipped; the returned count
// is the number actually stored.
func (s *Scraper) Run(ctx context.Context) (int, error) {
	base := s.site.Site.URL
	limit := s.site.Settings.MaxArticles

	lastPage := s.findLastPage(ctx)
	slog.Info("Pagination discovery finished", "base_url", base, "last_page", lastPage)

	target := pageURL(base, lastPage)
	articles := s.scrapePage(ctx, target, limit)

	if len(articles) == 0 && target != base {
		slog.Warn("No articles found on last page, retrying base URL", "last_page_url", target)
		articles = s.scrapePage(ctx, base, limit)
	}

	stored := 0
	for _, article := range articles {
		if err := s.store.UpsertArticle(article); err != nil {
			slog.Warn("Failed to store article, skipping",
				"title", article.Title, "url", article.URL, "error", err)
			continue
		}
		stored++
	}

	slog.Info("Scrape pass complete", "found", len(articles), "stored", stored)
	return stored, nil
}

// scrapePage extracts up to limit articles from one index page, merging
// link-derived data with whatever the detail extraction finds. A failed
// detail fetch degrades to the link-derived title with empty fields.
func (s *Scraper) scrapePage(ctx context.Context, indexURL string, limit int) []database.Article {
	html, err := s.fetcher.Fetch(ctx, indexURL)
	if err != nil {
		slog.Warn("Failed to fetch index page", "url", indexURL, "error", err)
		return nil
	}

	links := extractLinks(html, indexURL)
	if len(links) > limit {
		links = links[:limit]
	}

	articles := make([]database.Article, 0, len(links))
	for _, link := range links {
		article := database.Article{Title: link.Title, URL: link.URL}

		articleHTML, err := s.fetcher.Fetch(ctx, link.URL)
		if err != nil {
			slog.Warn("Failed to fetch article page, keeping link data",
				"url", link.URL, "error", err)
			articles = append(articles, article)
			continue
		}

		details, err := extractDetails(articleHTML)
		if err != nil {
			slog.Warn("Failed to parse article page, keeping link data",
				"url", link.URL, "error", err)
			articles = append(articles, article)
			continue
		}

		if details.Title != "" {
			article.Title = details.Title
		}
		article.Content = details.Content
		article.Author = details.Author
		article.PublishedDate = details.PublishedDate

		if article.Content == "" && s.readability != nil {
			content, err := s.readability.Run(articleHTML)
			if err != nil {
				slog.Debug("Readability fallback found nothing", "url", link.URL, "error", err)
			} else {
				article.Content = content
			}
		}

		articles = append(articles, article)
	}

	return articles
}
