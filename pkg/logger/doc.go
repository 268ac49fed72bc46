// Package logger builds *slog.Logger values with functional options and
// injects request-scoped attributes from context.Context.
//
//	log := logger.New(
//	    logger.WithConfig(cfg.Log),
//	    logger.WithContextExtractors(logger.RequestIDExtractor()),
//	)
//	log.InfoContext(ctx, "qr generated", logger.ContentType(ct), logger.RecordID(rec.ID))
//
// Attribute helpers such as Error and RequestID return an empty slog.Attr for
// zero input, which slog drops, so callers can pass them without nil checks.
package logger
