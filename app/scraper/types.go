package scraper

import (
	"github.com/anupamkr2307/beyond-chats/app/database"
)

// Link is one article candidate discovered on an index page.
type Link struct {
	URL   string
	Title string
}

// Details holds the fields extracted from an individual article page.
// Fields the heuristics could not locate are empty strings.
type Details struct {
	Title         string
	Content       string
	Author        string
	PublishedDate string
}

// ArticleStore is the slice of the store the scraper needs.
type ArticleStore interface {
	UpsertArticle(article database.Article) error
}

var _ ArticleStore = (*database.ArticleRepository)(nil)
