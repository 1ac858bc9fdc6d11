package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/eco_shop/internal/config"
	"github.com/Skotchmaster/eco_shop/internal/db"
	"github.com/Skotchmaster/eco_shop/internal/domain"
	"github.com/Skotchmaster/eco_shop/internal/events"
	"github.com/Skotchmaster/eco_shop/internal/logging"
	"github.com/Skotchmaster/eco_shop/internal/marketplace"
	loggingmw "github.com/Skotchmaster/eco_shop/internal/middleware/logging"
	"github.com/Skotchmaster/eco_shop/internal/repo"
	"github.com/Skotchmaster/eco_shop/internal/repo/memory"
	"github.com/Skotchmaster/eco_shop/internal/search"
	"github.com/Skotchmaster/eco_shop/internal/seed"
	"github.com/Skotchmaster/eco_shop/internal/service"
	httpserver "github.com/Skotchmaster/eco_shop/internal/transport/http"
)

type store interface {
	service.Store
	seed.Writer
}

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LogLevel, cfg.ServiceName)
	slog.SetDefault(logger)
	ctx := logging.IntoContext(context.Background(), logger)

	var (
		st    store
		ready httpserver.Pinger
	)
	switch cfg.DBDriver {
	case config.DriverMemory:
		st = memory.NewStore()
		if len(cfg.JWTAccessSecret) == 0 {
			cfg.JWTAccessSecret = []byte(uuid.NewString())
		}
		if len(cfg.JWTRefreshSecret) == 0 {
			cfg.JWTRefreshSecret = []byte(uuid.NewString())
		}
		logger.Warn("memory_store", "reason", "data is lost on restart")
	default:
		config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
		gdb, err := db.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db init: %v", err)
		}
		r := repo.New(gdb)
		defer func() {
			if err := r.Close(); err != nil {
				logger.Error("db_close_failed", "error", err)
			}
		}()
		st, ready = r, r
	}

	if cfg.CatalogSeedFile != "" {
		if err := seedCatalog(ctx, st, cfg.CatalogSeedFile); err != nil {
			log.Fatalf("seed catalog: %v", err)
		}
	}

	var pub events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		prod, err := events.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			log.Fatal(err)
		}
		defer func() {
			if err := prod.Close(); err != nil {
				logger.Error("kafka_close_failed", "error", err)
			}
		}()
		pub = prod
	}

	tokens := &service.TokenService{
		Repo:          st,
		Users:         st,
		AccessSecret:  cfg.JWTAccessSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
	}
	market := marketplace.New(st, tokens, pub)

	deps := httpserver.Deps{
		Market:      market,
		Ready:       ready,
		CSRFEnabled: cfg.CSRFEnabled,
	}
	if cfg.ESURL != "" {
		es, err := indexCatalog(ctx, cfg, market)
		if err != nil {
			logger.Error("search_disabled", "error", err)
		} else {
			deps.Search = es
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), middleware.Secure(), loggingmw.RequestLogger(logger))
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("http_listen", "addr", srv.Addr, "driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_shutdown_failed", "error", err)
	}
	logger.Info("shutdown complete")
}

func seedCatalog(ctx context.Context, w seed.Writer, path string) error {
	c, err := seed.LoadFile(path)
	if err != nil {
		return err
	}
	n, err := seed.Apply(ctx, w, c)
	if err != nil {
		return err
	}
	logging.FromContext(ctx).Info("catalog_seeded", "file", path, "items", n)
	return nil
}

// indexCatalog pushes the whole catalog into Elasticsearch so /search mirrors it.
func indexCatalog(ctx context.Context, cfg config.Config, market *marketplace.Marketplace) (*search.Client, error) {
	es, err := search.NewClient(ctx, search.Config{
		URL:      cfg.ESURL,
		User:     cfg.ESUser,
		Password: cfg.ESPassword,
		Index:    cfg.ESIndex,
	})
	if err != nil {
		return nil, err
	}
	items, err := market.Catalog.Query(ctx, domain.CatalogQuery{})
	if err != nil {
		return nil, err
	}
	if err := es.IndexItems(ctx, items); err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info("catalog_indexed", "items", len(items), "index", cfg.ESIndex)
	return es, nil
}
