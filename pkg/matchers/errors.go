package matchers

import "errors"

// Package-specific errors
var (
	// ErrNilInfo is returned when a scraper matcher is evaluated against nil metadata.
	ErrNilInfo = errors.New("scraper info is nil")

	// ErrMissingTable is returned when a table-scoped matcher is evaluated without calling On.
	ErrMissingTable = errors.New("matcher requires a table: chain On(table) before evaluating")

	// ErrMissingField is returned when a field matcher is evaluated without calling In.
	ErrMissingField = errors.New("matcher requires a field: chain In(field) before evaluating")

	// ErrInvalidDataset is returned when the input is neither a record list nor a keys/data table.
	ErrInvalidDataset = errors.New("dataset is neither a record list nor a keys/data table")

	// ErrUnsupportedShape is returned when a structural predicate meets a field value
	// that is neither a JSON object nor a list of JSON objects.
	ErrUnsupportedShape = errors.New("field value is neither a JSON object nor a list of JSON objects")
)
