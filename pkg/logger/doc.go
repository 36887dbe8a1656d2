// Package logger builds *slog.Logger instances for sessionkit services.
//
// NewFromConfig reads APP_ENV, APP_NAME, LOG_LEVEL and LOG_FORMAT through
// Config; New takes the same settings as functional options. Every handler is
// wrapped with LogHandlerDecorator, which adds attributes pulled from the
// record's context.Context, such as a request ID or the client IP.
//
//	log, err := logger.NewFromConfig(cfg.Log,
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "session rotated", logger.SessionID(id), logger.UserID(uid))
//
// The attribute helpers keep key names consistent across packages. Error,
// SessionID and UserID return an empty slog.Attr for zero values, which slog
// handlers skip, so call sites need no nil checks.
package logger
