// Package logger builds configured *slog.Logger instances through a single
// factory with functional options.
//
// New selects a slog.NewTextHandler or slog.NewJSONHandler based on the
// configured Format, applies the minimum level, and attaches any static
// attributes to every record. Defaults are production-safe: JSON format at
// INFO level on stdout.
//
// Helper constructors in attr.go return commonly-used slog.Attr values so
// attribute naming stays consistent across the codebase.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithTextFormatter(),
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithAttr(logger.Scraper("planning-applications")),
//	)
//	log.Info("check passed", logger.Matcher("have table"))
package logger
