package scraperapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Config carries client settings, loadable from the environment via pkg/config.
type Config struct {
	BaseURL string        `env:"SCRAPERAPI_BASE_URL" envDefault:"https://api.scraperwiki.com/api/1.0"`
	APIKey  string        `env:"SCRAPERAPI_KEY"`
	Timeout time.Duration `env:"SCRAPERAPI_TIMEOUT" envDefault:"30s"`
}

// Client calls the scraping-platform API. It is safe for concurrent use.
type Client struct {
	http   *resty.Client
	apiKey string
	log    *slog.Logger
}

// Option configures client creation.
type Option func(*Client)

// WithHTTPClient replaces the underlying resty client. Base URL and timeout
// from Config are still applied on top of it.
func WithHTTPClient(hc *resty.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger enables debug logging of outgoing requests.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a client for the platform API described by cfg.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}

	c := &Client{apiKey: cfg.APIKey}
	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		c.http = resty.New()
	}
	c.http.SetBaseURL(cfg.BaseURL)
	if cfg.Timeout > 0 {
		c.http.SetTimeout(cfg.Timeout)
	} else {
		c.http.SetTimeout(30 * time.Second)
	}
	c.http.SetHeader("accept", "application/json")

	return c, nil
}

// get performs a GET request against path with the given query parameters and
// decodes the JSON response body into out.
func (c *Client) get(ctx context.Context, path string, params map[string]string, out any) error {
	req := c.http.R().SetContext(ctx).SetQueryParams(params)
	if c.apiKey != "" {
		req.SetQueryParam("apikey", c.apiKey)
	}

	if c.log != nil {
		c.log.DebugContext(ctx, "calling platform api", slog.String("path", path))
	}

	res, err := req.Get(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRequestFailed, path, err)
	}
	if res.IsError() {
		return fmt.Errorf("%w: %s returned %s", ErrRequestFailed, path, res.Status())
	}

	if err := json.Unmarshal(res.Body(), out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}
	return nil
}

// Format selects the datastore response shape.
type Format string

const (
	// FormatJSONDict returns rows as a list of field-keyed objects.
	FormatJSONDict Format = "jsondict"
	// FormatJSONList returns rows as a columnar keys/data table.
	FormatJSONList Format = "jsonlist"
)

// Attach names another scraper's datastore to attach to a query, optionally
// under an alias.
type Attach struct {
	ShortName string
	AsName    string
}

// SQLiteOptions are optional parameters for SQLiteQuery.
type SQLiteOptions struct {
	// Format defaults to FormatJSONDict.
	Format Format
	// Attach makes other scrapers' datastores queryable by name.
	Attach []Attach
}

// SQLiteQuery runs a SQL query against a scraper's datastore.
func (c *Client) SQLiteQuery(ctx context.Context, shortName, query string, opts *SQLiteOptions) (*DataSet, error) {
	if shortName == "" {
		return nil, ErrMissingShortName
	}
	if query == "" {
		return nil, ErrMissingQuery
	}

	format := FormatJSONDict
	params := map[string]string{
		"name":  shortName,
		"query": query,
	}
	if opts != nil {
		if opts.Format != "" {
			format = opts.Format
		}
		if len(opts.Attach) > 0 {
			specs := make([]string, 0, len(opts.Attach))
			for _, a := range opts.Attach {
				spec := a.ShortName
				if a.AsName != "" {
					spec += ";" + a.AsName
				}
				specs = append(specs, spec)
			}
			params["attach"] = strings.Join(specs, ",")
		}
	}
	params["format"] = string(format)

	var data DataSet
	if err := c.get(ctx, "/datastore/sqlite", params, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetInfoOptions are optional parameters for GetInfo.
type GetInfoOptions struct {
	// Version selects a specific code revision; zero means latest.
	Version int
	// HistoryStartDate limits history entries to those on or after the date.
	HistoryStartDate string
	// QuietFields suppresses expensive response members (e.g. "code", "runevents").
	QuietFields []string
}

// GetInfo fetches a scraper's metadata. The endpoint responds with a
// one-element array, which is unwrapped here.
func (c *Client) GetInfo(ctx context.Context, shortName string, opts *GetInfoOptions) (*ScraperInfo, error) {
	if shortName == "" {
		return nil, ErrMissingShortName
	}

	params := map[string]string{"name": shortName}
	if opts != nil {
		if opts.Version > 0 {
			params["version"] = strconv.Itoa(opts.Version)
		}
		if opts.HistoryStartDate != "" {
			params["history_start_date"] = opts.HistoryStartDate
		}
		if len(opts.QuietFields) > 0 {
			params["quietfields"] = strings.Join(opts.QuietFields, "|")
		}
	}

	var infos []ScraperInfo
	if err := c.get(ctx, "/scraper/getinfo", params, &infos); err != nil {
		return nil, err
	}
	if len(infos) == 0 {
		return nil, fmt.Errorf("%w: scraper/getinfo for %q", ErrEmptyResponse, shortName)
	}
	return &infos[0], nil
}

// GetRunInfoOptions are optional parameters for GetRunInfo.
type GetRunInfoOptions struct {
	// RunID selects a specific run; empty means the most recent one.
	RunID string
}

// GetRunInfo fetches details of one run of a scraper.
func (c *Client) GetRunInfo(ctx context.Context, shortName string, opts *GetRunInfoOptions) (*RunInfo, error) {
	if shortName == "" {
		return nil, ErrMissingShortName
	}

	params := map[string]string{"name": shortName}
	if opts != nil && opts.RunID != "" {
		params["runid"] = opts.RunID
	}

	var runs []RunInfo
	if err := c.get(ctx, "/scraper/getruninfo", params, &runs); err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("%w: scraper/getruninfo for %q", ErrEmptyResponse, shortName)
	}
	return &runs[0], nil
}

// GetUserInfo fetches a user's profile and code roles.
func (c *Client) GetUserInfo(ctx context.Context, username string) (*UserInfo, error) {
	if username == "" {
		return nil, ErrMissingUsername
	}

	var users []UserInfo
	if err := c.get(ctx, "/scraper/getuserinfo", map[string]string{"username": username}, &users); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("%w: scraper/getuserinfo for %q", ErrEmptyResponse, username)
	}
	return &users[0], nil
}

// SearchOptions are optional parameters for Search and UserSearch.
type SearchOptions struct {
	// MaxRows caps the number of results; zero uses the platform default.
	MaxRows int
	// NoList excludes the named users from usersearch results.
	NoList []string
	// RequestingUser orders usersearch results by edit-collaboration distance.
	RequestingUser string
}

// Search performs a full-text search over scraper titles.
func (c *Client) Search(ctx context.Context, query string, opts *SearchOptions) ([]ScraperSummary, error) {
	params := map[string]string{"searchquery": query}
	if opts != nil && opts.MaxRows > 0 {
		params["maxrows"] = strconv.Itoa(opts.MaxRows)
	}

	var results []ScraperSummary
	if err := c.get(ctx, "/scraper/search", params, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// UserSearch searches usernames and profile names.
func (c *Client) UserSearch(ctx context.Context, query string, opts *SearchOptions) ([]UserSummary, error) {
	params := map[string]string{"searchquery": query}
	if opts != nil {
		if opts.MaxRows > 0 {
			params["maxrows"] = strconv.Itoa(opts.MaxRows)
		}
		if len(opts.NoList) > 0 {
			params["nolist"] = strings.Join(opts.NoList, " ")
		}
		if opts.RequestingUser != "" {
			params["requestinguser"] = opts.RequestingUser
		}
	}

	var results []UserSummary
	if err := c.get(ctx, "/scraper/usersearch", params, &results); err != nil {
		return nil, err
	}
	return results, nil
}
