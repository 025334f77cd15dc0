package database

// Article represents a scraped blog article. URL is the natural key: the
// store keeps exactly one row per distinct URL across scrape runs.
type Article struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	URL           string `json:"url"`
	Content       string `json:"content"`
	Author        string `json:"author"`
	PublishedDate string `json:"published_date"`
	ScrapedAt     string `json:"scraped_at"`
}

// ArticleUpdate describes a partial update. Nil fields are left untouched.
type ArticleUpdate struct {
	Title         *string `json:"title"`
	URL           *string `json:"url"`
	Content       *string `json:"content"`
	Author        *string `json:"author"`
	PublishedDate *string `json:"published_date"`
}

// Empty reports whether the update carries no fields at all.
func (u ArticleUpdate) Empty() bool {
	return u.Title == nil && u.URL == nil && u.Content == nil &&
		u.Author == nil && u.PublishedDate == nil
}

// Stats holds aggregate counters over the articles table.
type Stats struct {
	Total          int `json:"total_articles"`
	WithContent    int `json:"articles_with_content"`
	WithoutContent int `json:"articles_without_content"`
}
