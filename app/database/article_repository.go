package database

import (
	"database/sql"
	"fmt"
	"strings"
)

// ArticleRepository handles database operations for articles
type ArticleRepository struct {
	db *DB
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// UpsertArticle inserts an article or fully replaces the existing row with
// the same URL. The replaced row gets a fresh id and scraped_at timestamp.
func (r *ArticleRepository) UpsertArticle(article Article) error {
	_, err := r.db.Exec(`
		INSERT OR REPLACE INTO articles (title, url, content, author, published_date)
		VALUES (?, ?, ?, ?, ?)
	`, article.Title, article.URL, article.Content, article.Author, article.PublishedDate)

	if err != nil {
		return fmt.Errorf("failed to upsert article: %w", err)
	}

	return nil
}

// CreateArticle inserts a new article and returns its assigned id.
// Returns ErrConflict when the URL is already stored.
func (r *ArticleRepository) CreateArticle(article Article) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO articles (title, url, content, author, published_date)
		VALUES (?, ?, ?, ?, ?)
	`, article.Title, article.URL, article.Content, article.Author, article.PublishedDate)

	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrConflict
		}
		return 0, fmt.Errorf("failed to create article: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted article id: %w", err)
	}

	return id, nil
}

// GetArticle retrieves an article by id. Returns ErrNotFound when absent.
func (r *ArticleRepository) GetArticle(id int64) (*Article, error) {
	var article Article
	err := r.db.QueryRow(`
		SELECT id, title, url, COALESCE(content, ''), COALESCE(author, ''),
		       COALESCE(published_date, ''), COALESCE(scraped_at, '')
		FROM articles
		WHERE id = ?
	`, id).Scan(
		&article.ID, &article.Title, &article.URL, &article.Content,
		&article.Author, &article.PublishedDate, &article.ScrapedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}

	return &article, nil
}

// ListArticles returns articles ordered by id descending (newest first).
// A non-positive limit returns all rows; offset only applies with a limit.
func (r *ArticleRepository) ListArticles(limit, offset int) ([]Article, error) {
	query := `
		SELECT id, title, url, COALESCE(content, ''), COALESCE(author, ''),
		       COALESCE(published_date, ''), COALESCE(scraped_at, '')
		FROM articles
		ORDER BY id DESC
	`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	articles := make([]Article, 0)
	for rows.Next() {
		var article Article
		err := rows.Scan(
			&article.ID, &article.Title, &article.URL, &article.Content,
			&article.Author, &article.PublishedDate, &article.ScrapedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article row: %w", err)
		}
		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating article rows: %w", err)
	}

	return articles, nil
}

// UpdateArticle applies a partial update to the article with the given id.
// Returns ErrNotFound when the id is absent and ErrConflict when a new URL
// collides with another row.
func (r *ArticleRepository) UpdateArticle(id int64, update ArticleUpdate) error {
	var existing int64
	err := r.db.QueryRow("SELECT id FROM articles WHERE id = ?", id).Scan(&existing)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check article existence: %w", err)
	}

	var setClauses []string
	var args []interface{}

	if update.Title != nil {
		setClauses = append(setClauses, "title = ?")
		args = append(args, *update.Title)
	}
	if update.URL != nil {
		setClauses = append(setClauses, "url = ?")
		args = append(args, *update.URL)
	}
	if update.Content != nil {
		setClauses = append(setClauses, "content = ?")
		args = append(args, *update.Content)
	}
	if update.Author != nil {
		setClauses = append(setClauses, "author = ?")
		args = append(args, *update.Author)
	}
	if update.PublishedDate != nil {
		setClauses = append(setClauses, "published_date = ?")
		args = append(args, *update.PublishedDate)
	}

	if len(setClauses) == 0 {
		return fmt.Errorf("no fields to update")
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE articles SET %s WHERE id = ?", strings.Join(setClauses, ", "))

	if _, err := r.db.Exec(query, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("failed to update article: %w", err)
	}

	return nil
}

// DeleteArticle removes the article with the given id.
// Returns ErrNotFound when the id is absent.
func (r *ArticleRepository) DeleteArticle(id int64) error {
	result, err := r.db.Exec("DELETE FROM articles WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// GetStats returns aggregate counters over the stored articles.
func (r *ArticleRepository) GetStats() (Stats, error) {
	var stats Stats

	err := r.db.QueryRow("SELECT COUNT(*) FROM articles").Scan(&stats.Total)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to count articles: %w", err)
	}

	err = r.db.QueryRow(`
		SELECT COUNT(*) FROM articles
		WHERE content IS NOT NULL AND content != ''
	`).Scan(&stats.WithContent)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to count articles with content: %w", err)
	}

	stats.WithoutContent = stats.Total - stats.WithContent

	return stats, nil
}
