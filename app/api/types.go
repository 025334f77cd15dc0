package api

import (
	"github.com/anupamkr2307/beyond-chats/app/config"
)

type Handler struct {
	dbPath    string
	site      *config.SiteConfig
	userAgent string
	version   string
}

// createArticleRequest is the POST body for direct article creation.
// Title and URL are required; everything else defaults to empty.
type createArticleRequest struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Content       string `json:"content"`
	Author        string `json:"author"`
	PublishedDate string `json:"published_date"`
}
