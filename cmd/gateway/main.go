package main

import (
	"context"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/velais/sprintgate/internal/boards"
	"github.com/velais/sprintgate/internal/handler"
	"github.com/velais/sprintgate/pkg/authgate"
	"github.com/velais/sprintgate/pkg/authtoken"
	"github.com/velais/sprintgate/pkg/config"
	"github.com/velais/sprintgate/pkg/httpserver"
	"github.com/velais/sprintgate/pkg/logger"
	"github.com/velais/sprintgate/pkg/requestid"
	"github.com/velais/sprintgate/pkg/respcache"
	"github.com/velais/sprintgate/pkg/tenant"
)

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)
	cfg.normalize()

	var httpCfg httpserver.Config
	config.MustLoad(&httpCfg)

	var boardsCfg boards.Config
	config.MustLoad(&boardsCfg)

	log := logger.New(
		logger.WithEnvironment(cfg.Env, "sprintgate"),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			tenant.LoggerExtractor(),
		),
	)
	logger.SetAsDefault(log)

	dir, err := tenant.NewDirectory(cfg.Tenants)
	if err != nil {
		log.Error("invalid tenant configuration", logger.Error(err))
		os.Exit(1)
	}

	verifier := authtoken.NewVerifier(authtoken.NewKeySet(cfg.JWKSURL, nil))
	store := respcache.NewStore(cfg.CacheMaxEntries, cfg.CacheTTL)

	h := &handler.Handlers{
		Sprints:   boards.NewClient(boardsCfg),
		Directory: dir,
		AppDomain: cfg.AppDomain,
		Cache:     store,
		Logger:    log,
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(handler.HostFilter(dir, cfg.AppDomain))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Use(authgate.Middleware(dir, verifier, cfg.AppDomain,
			authgate.WithSkipPrefixes("/api/health", "/api/tenants", "/api/internal"),
			authgate.WithLogger(log),
		))
		api.Use(respcache.Middleware(
			respcache.WithStore(store),
			respcache.WithSkipPrefixes("/api/health", "/api/internal"),
			respcache.WithLogger(log),
		))
		api.Mount("/", h.Routes(cfg.CronSecret))
	})

	srv := httpserver.NewFromConfig(httpCfg,
		httpserver.WithLogger(log),
	)

	if err := srv.Run(context.Background(), r); err != nil {
		log.Error("server exited with error", logger.Error(err))
		os.Exit(1)
	}
}
