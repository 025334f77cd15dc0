package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anupamkr2307/beyond-chats/app/database"
)

type memStore struct {
	articles []database.Article
	failURL  string
}

func (m *memStore) UpsertArticle(article database.Article) error {
	if m.failURL != "" && article.URL == m.failURL {
		return fmt.Errorf("simulated storage failure")
	}
	m.articles = append(m.articles, article)
	return nil
}

func articlePage(title, body string) string {
	return fmt.Sprintf(`<html><body>
		<h1>%s</h1>
		<div class="post-content"><p>%s</p></div>
	</body></html>`, title, body)
}

// The index advertises two pages, the later page turns out to be empty and
// the articles sit on page 1 behind plain links with no listing containers.
// The pass must fall back to the base URL and pick them up via the link
// path filter.
func TestRun_FallsBackToBaseWhenLastPageEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/blog/") {
			id := strings.TrimPrefix(r.URL.Path, "/blog/")
			fmt.Fprint(w, articlePage("Post "+id, "Body of post "+id+"."))
			return
		}

		switch r.URL.Query().Get("page") {
		case "2":
			fmt.Fprint(w, `<html><body><p>nothing left here</p></body></html>`)
		default:
			fmt.Fprint(w, `<html><body>
				<a href="/blog/1">First</a>
				<a href="/blog/2">Second</a>
				<a href="/blog/3">Third</a>
				<a href="/blog/4">Fourth</a>
				<a href="/blog/5">Fifth</a>
				<a href="?page=2">2</a>
			</body></html>`)
		}
	}))
	defer server.Close()

	store := &memStore{}
	s := newTestScraper(server.URL+"/blogs/", store)

	count, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if count != 5 {
		t.Fatalf("Expected 5 articles stored, got %d", count)
	}
	if len(store.articles) != 5 {
		t.Fatalf("Expected 5 articles in store, got %d", len(store.articles))
	}

	first := store.articles[0]
	if first.Title != "Post 1" {
		t.Errorf("Expected detail-page title, got '%s'", first.Title)
	}
	if first.URL != server.URL+"/blog/1" {
		t.Errorf("Expected resolved article URL, got '%s'", first.URL)
	}
	if first.Content != "Body of post 1." {
		t.Errorf("Expected extracted content, got '%s'", first.Content)
	}
}

func TestRun_CapsAtConfiguredLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/blog/") {
			fmt.Fprint(w, articlePage("A Post", "Some body."))
			return
		}
		var links strings.Builder
		for i := 1; i <= 8; i++ {
			fmt.Fprintf(&links, `<article><a href="/blog/%d">Post %d</a></article>`, i, i)
		}
		fmt.Fprintf(w, `<html><body>%s</body></html>`, links.String())
	}))
	defer server.Close()

	store := &memStore{}
	s := newTestScraper(server.URL+"/blogs/", store)

	count, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if count != 5 {
		t.Errorf("Expected count capped at 5, got %d", count)
	}
}

func TestRun_KeepsLinkDataWhenDetailFetchFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/blog/broken":
			w.WriteHeader(http.StatusInternalServerError)
		case strings.HasPrefix(r.URL.Path, "/blog/"):
			fmt.Fprint(w, articlePage("Fine Post", "Readable body."))
		default:
			fmt.Fprint(w, `<html><body>
				<article><a href="/blog/broken">Broken Post</a></article>
				<article><a href="/blog/fine">Fine Post</a></article>
			</body></html>`)
		}
	}))
	defer server.Close()

	store := &memStore{}
	s := newTestScraper(server.URL+"/blogs/", store)

	count, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if count != 2 {
		t.Fatalf("Expected both articles stored, got %d", count)
	}

	broken := store.articles[0]
	if broken.Title != "Broken Post" {
		t.Errorf("Expected link-derived title kept, got '%s'", broken.Title)
	}
	if broken.Content != "" {
		t.Errorf("Expected empty content for unreachable article, got '%s'", broken.Content)
	}
}

func TestRun_SkipsArticlesThatFailToStore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/blog/") {
			fmt.Fprint(w, articlePage("A Post", "Some body."))
			return
		}
		fmt.Fprint(w, `<html><body>
			<article><a href="/blog/1">Post 1</a></article>
			<article><a href="/blog/2">Post 2</a></article>
			<article><a href="/blog/3">Post 3</a></article>
		</body></html>`)
	}))
	defer server.Close()

	store := &memStore{}
	s := newTestScraper(server.URL+"/blogs/", store)
	store.failURL = server.URL + "/blog/2"

	count, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if count != 2 {
		t.Errorf("Expected 2 articles stored with one skipped, got %d", count)
	}
	if len(store.articles) != 2 {
		t.Errorf("Expected 2 articles in store, got %d", len(store.articles))
	}
}
