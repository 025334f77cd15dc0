package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anupamkr2307/beyond-chats/app/api"
	"github.com/anupamkr2307/beyond-chats/app/cfg"
	"github.com/anupamkr2307/beyond-chats/app/config"
	"github.com/anupamkr2307/beyond-chats/app/database"
	"github.com/anupamkr2307/beyond-chats/app/scraper"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	setupLogging(appCfg.Debug)

	log.Println("Starting article scraper server...")

	siteConfig, err := config.Load(appCfg.SiteConfigPath)
	if err != nil {
		log.Fatal("Failed to load site configuration: ", err)
	}
	log.Printf("Scrape target: %s (max %d articles)", siteConfig.Site.URL, siteConfig.Settings.MaxArticles)

	// The database is opened here only for migrations and the startup
	// scrape; request handlers acquire and release their own connections.
	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		db.Close()
		log.Fatal("Failed to run migrations: ", err)
	}
	log.Printf("Database migrated, version %d (dirty: %v)", version, dirty)

	if appCfg.SkipStartupScrape {
		log.Println("Startup scrape skipped")
	} else {
		log.Println("Running startup scrape pass...")
		fetcher := scraper.NewFetcher(siteConfig.Settings.GetTimeout(), appCfg.UserAgent)
		repo := database.NewArticleRepository(db)
		count, err := scraper.New(fetcher, repo, siteConfig).Run(context.Background())
		if err != nil {
			log.Printf("Warning: startup scrape failed: %v", err)
		} else {
			log.Printf("Startup scrape stored %d articles", count)
		}
	}
	db.Close()

	// Initialize HTTP server
	log.Println("Initializing HTTP server...")
	apiHandler := api.NewHandler(appCfg.DBPath, siteConfig, appCfg.UserAgent, appCfg.Version)
	server := api.NewServer(apiHandler)

	httpServer := &http.Server{
		Addr:    ":" + appCfg.Port,
		Handler: server,
		// A triggered scrape runs inside the request, so the write timeout
		// must cover a full sequential scrape pass.
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	// Start HTTP server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		log.Printf("Starting HTTP server on port %s", appCfg.Port)
		log.Printf("API endpoints available:")
		log.Printf("  List articles: http://localhost:%s/api/articles", appCfg.Port)
		log.Printf("  Trigger scrape: http://localhost:%s/api/articles/scrape (POST)", appCfg.Port)
		log.Printf("  Statistics:    http://localhost:%s/api/articles/stats", appCfg.Port)
		log.Printf("  Health check:  http://localhost:%s/health", appCfg.Port)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
	case err := <-serverErrChan:
		log.Printf("Server error: %v", err)
	}

	// Graceful shutdown
	log.Println("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	} else {
		log.Println("HTTP server stopped")
	}

	log.Println("Shutdown complete")
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
