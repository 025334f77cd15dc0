package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anupamkr2307/beyond-chats/app/config"
	"github.com/anupamkr2307/beyond-chats/app/database"
	"github.com/anupamkr2307/beyond-chats/app/scraper"
)

func NewHandler(dbPath string, site *config.SiteConfig, userAgent, version string) *Handler {
	return &Handler{
		dbPath:    dbPath,
		site:      site,
		userAgent: userAgent,
		version:   version,
	}
}

// openStore acquires a store connection for the duration of one request.
// Callers must Close the returned DB.
func (h *Handler) openStore() (*database.DB, *database.ArticleRepository, error) {
	db, err := database.NewConnection(h.dbPath)
	if err != nil {
		return nil, nil, err
	}
	return db, database.NewArticleRepository(db), nil
}

func (h *Handler) ListArticles(c *gin.Context) {
	db, repo, err := h.openStore()
	if err != nil {
		respondStoreError(c, err)
		return
	}
	defer db.Close()

	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	articles, err := repo.ListArticles(limit, offset)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"count":    len(articles),
		"articles": articles,
	})
}

func (h *Handler) GetArticle(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusNotFound, "Article not found")
		return
	}

	db, repo, err := h.openStore()
	if err != nil {
		respondStoreError(c, err)
		return
	}
	defer db.Close()

	article, err := repo.GetArticle(id)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"article": article,
	})
}

func (h *Handler) CreateArticle(c *gin.Context) {
	var req createArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" || req.URL == "" {
		respondError(c, http.StatusBadRequest, "Title and URL are required")
		return
	}

	db, repo, err := h.openStore()
	if err != nil {
		respondStoreError(c, err)
		return
	}
	defer db.Close()

	id, err := repo.CreateArticle(database.Article{
		Title:         req.Title,
		URL:           req.URL,
		Content:       req.Content,
		Author:        req.Author,
		PublishedDate: req.PublishedDate,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message":    "Article created successfully",
		"article_id": id,
	})
}

func (h *Handler) UpdateArticle(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusNotFound, "Article not found")
		return
	}

	var update database.ArticleUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondError(c, http.StatusBadRequest, "No data provided")
		return
	}
	if update.Empty() {
		respondError(c, http.StatusBadRequest, "No valid fields to update")
		return
	}

	db, repo, err := h.openStore()
	if err != nil {
		respondStoreError(c, err)
		return
	}
	defer db.Close()

	if err := repo.UpdateArticle(id, update); err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Article updated successfully",
	})
}

func (h *Handler) DeleteArticle(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusNotFound, "Article not found")
		return
	}

	db, repo, err := h.openStore()
	if err != nil {
		respondStoreError(c, err)
		return
	}
	defer db.Close()

	if err := repo.DeleteArticle(id); err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Article deleted successfully",
	})
}

func (h *Handler) ScrapeArticles(c *gin.Context) {
	db, repo, err := h.openStore()
	if err != nil {
		respondStoreError(c, err)
		return
	}
	defer db.Close()

	fetcher := scraper.NewFetcher(h.site.Settings.GetTimeout(), h.userAgent)
	count, err := scraper.New(fetcher, repo, h.site).Run(c.Request.Context())
	if err != nil {
		slog.Error("Scrape pass failed", "error", err)
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Successfully scraped and stored %d articles", count),
		"count":   count,
	})
}

func (h *Handler) GetStats(c *gin.Context) {
	db, repo, err := h.openStore()
	if err != nil {
		respondStoreError(c, err)
		return
	}
	defer db.Close()

	stats, err := repo.GetStats()
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":                  true,
		"total_articles":           stats.Total,
		"articles_with_content":    stats.WithContent,
		"articles_without_content": stats.WithoutContent,
	})
}

func (h *Handler) HealthCheck(c *gin.Context) {
	health := gin.H{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if db, repo, err := h.openStore(); err == nil {
		if stats, err := repo.GetStats(); err == nil {
			health["articles"] = stats.Total
		}
		db.Close()
	}

	c.JSON(http.StatusOK, health)
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}

// respondStoreError maps store errors onto the envelope: missing rows are
// 404, URL collisions are 400, everything else is 500.
func respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		respondError(c, http.StatusNotFound, "Article not found")
	case errors.Is(err, database.ErrConflict):
		respondError(c, http.StatusBadRequest, "Article with this URL already exists")
	default:
		slog.Error("Database error", "error", err)
		respondError(c, http.StatusInternalServerError, err.Error())
	}
}
