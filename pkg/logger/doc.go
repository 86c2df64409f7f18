// Package logger builds the gateway's context-aware slog.Logger.
//
// New returns a *slog.Logger assembled from functional options: output
// format (text or json), minimum level, static attributes, and
// ContextExtractor callbacks that pull request-scoped values (request ID,
// tenant slug) out of context.Context on every Handle call. The extractors
// run inside a decorating slog.Handler so handlers downstream stay
// oblivious to where the attributes come from.
//
// Helper constructors in attr.go keep attribute keys consistent across the
// codebase: Error, Tenant, OrgID, Component, and friends.
//
// # Usage
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "sprintgate"),
//		logger.WithContextExtractors(
//			requestid.LoggerExtractor(),
//			tenant.LoggerExtractor(),
//		),
//	)
package logger
