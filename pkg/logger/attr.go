package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Scraper records a scraper shortname under the key "scraper".
func Scraper(shortName string) slog.Attr {
	return slog.String("scraper", shortName)
}

// Matcher records a matcher description under the key "matcher".
func Matcher(name string) slog.Attr {
	return slog.String("matcher", name)
}

// Table records a datastore table name under the key "table".
func Table(name string) slog.Attr {
	return slog.String("table", name)
}

// Field records a record field name under the key "field".
func Field(name string) slog.Attr {
	return slog.String("field", name)
}
