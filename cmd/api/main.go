package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/penny/internal/config"
	"github.com/MrJamesThe3rd/penny/internal/database"
	"github.com/MrJamesThe3rd/penny/internal/entry"
	entryStore "github.com/MrJamesThe3rd/penny/internal/entry/store"
	pennyHttp "github.com/MrJamesThe3rd/penny/internal/http"
	entryHandler "github.com/MrJamesThe3rd/penny/internal/http/entry"
	importHandler "github.com/MrJamesThe3rd/penny/internal/http/importcsv"
	seriesHandler "github.com/MrJamesThe3rd/penny/internal/http/series"
	summaryHandler "github.com/MrJamesThe3rd/penny/internal/http/summary"
	"github.com/MrJamesThe3rd/penny/internal/identity"
	"github.com/MrJamesThe3rd/penny/internal/importer"
	"github.com/MrJamesThe3rd/penny/internal/series"
	"github.com/MrJamesThe3rd/penny/internal/summary"
	summaryStore "github.com/MrJamesThe3rd/penny/internal/summary/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	primary, err := cfg.PrimaryOwner()
	if err != nil {
		slog.Error("failed to load primary owner", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	entries := entryStore.New(db)

	var (
		entryService   = entry.NewService(entries)
		summaryService = summary.NewService(summaryStore.New(db), entries)
		seriesService  = series.NewService(entries)
		importService  = importer.NewService()
	)

	var (
		entryH   = entryHandler.NewHandler(entryService)
		summaryH = summaryHandler.NewHandler(summaryService)
		seriesH  = seriesHandler.NewHandler(seriesService)
		importH  = importHandler.NewHandler(importService, entryService)
	)

	resolver := identity.NewResolver(primary)
	router := pennyHttp.New(cfg.Auth.JWTSecret, resolver, entryH, summaryH, seriesH, importH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
