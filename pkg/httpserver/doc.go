// Package httpserver wraps net/http's Server with graceful shutdown,
// signal handling, and functional options.
//
// Run blocks until the context is canceled, SIGINT/SIGTERM arrives, or the
// listener fails, then drains in-flight requests within the configured
// shutdown timeout. Configuration comes either from options or from a
// Config struct populated by environment variables.
//
// # Usage
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
package httpserver
