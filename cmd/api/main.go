package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	raven "github.com/getsentry/raven-go"
	"github.com/gorilla/handlers"
	"github.com/joho/godotenv"

	"satspots.org/internal/admin"
	"satspots.org/internal/audit"
	"satspots.org/internal/config"
	"satspots.org/internal/github"
	"satspots.org/internal/httpapi"
	"satspots.org/internal/kv"
	"satspots.org/internal/locations"
	"satspots.org/internal/obs"
	"satspots.org/internal/origin"
	"satspots.org/internal/ratelimit"
	"satspots.org/internal/submission"
)

var (
	version = "0.3.1"
	commit  = "dev"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	obs.Init()
	obs.InitBuildInfo(version, commit)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.SentryDSN != "" {
		if err := raven.SetDSN(cfg.SentryDSN); err != nil {
			log.Fatalf("sentry: %v", err)
		}
	}
	if cfg.AdminToken == "" {
		log.Printf("warning: SATSPOTS_ADMIN_TOKEN is not set, admin surface is disabled")
	}

	var store kv.Store
	var pg *kv.PG
	if cfg.PGDSN != "" {
		pg, err = kv.OpenPG(cfg.PGDSN)
		if err != nil {
			log.Fatalf("open kv store: %v", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = pg.EnsureSchema(ctx)
		cancel()
		if err != nil {
			log.Fatalf("kv schema: %v", err)
		}
		store = pg
	} else {
		log.Printf("warning: SATSPOTS_PG_DSN is not set, using in-memory storage")
		store = kv.NewMemory()
	}

	gh := github.NewClient(cfg.GitHubOwner, cfg.GitHubRepo, cfg.GitHubToken)

	api := httpapi.New(httpapi.Deps{
		Store:        submission.NewStore(store),
		Limiter:      ratelimit.New(store),
		PublicOrigin: origin.NewPublic(cfg.DevOrigins),
		AdminOrigin:  origin.NewAdmin(cfg.AdminOrigins),
		Locations:    locations.NewCache(gh.FetchLocationIDs),
		Publisher:    gh,
		Auth:         admin.NewAuthenticator(cfg.AdminToken),
		Audit:        audit.NewLogger(store),
	}, version)

	srv := &http.Server{
		Addr: cfg.Addr,
		// ProxyHeaders rewrites RemoteAddr from X-Forwarded-For at the edge.
		Handler:           handlers.ProxyHeaders(api.Handler()),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting satspots-api %s on %s", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	if pg != nil {
		_ = pg.Close()
	}
	log.Println("Stopped")
}
