package scraperapi

import "errors"

// Package-specific errors
var (
	// ErrMissingBaseURL is returned when the client is constructed without an API base URL.
	ErrMissingBaseURL = errors.New("api base URL is required")

	// ErrMissingShortName is returned when an operation requires a scraper shortname and none is given.
	ErrMissingShortName = errors.New("scraper shortname is required")

	// ErrMissingQuery is returned when a datastore or search operation is called without a query.
	ErrMissingQuery = errors.New("query is required")

	// ErrMissingUsername is returned when getuserinfo is called without a username.
	ErrMissingUsername = errors.New("username is required")

	// ErrRequestFailed is returned when the platform responds with a non-2xx status.
	ErrRequestFailed = errors.New("api request failed")

	// ErrDecode is returned when a response body cannot be decoded as the expected JSON shape.
	ErrDecode = errors.New("failed to decode api response")

	// ErrEmptyResponse is returned when a single-object endpoint returns an empty result list.
	ErrEmptyResponse = errors.New("api returned an empty response")
)
