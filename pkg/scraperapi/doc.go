// Package scraperapi is a typed client for the scraping-platform HTTP API.
//
// The platform exposes six read-only operations over HTTPS GET requests with
// query-string parameters, all returning JSON. The client maps each one to a
// method:
//
//   - SQLiteQuery  – datastore/sqlite: run SQL against a scraper's datastore
//   - GetInfo      – scraper/getinfo: metadata, datasummary, run history
//   - GetRunInfo   – scraper/getruninfo: details of a single run
//   - GetUserInfo  – scraper/getuserinfo: a user's profile and code roles
//   - Search       – scraper/search: full-text scraper search
//   - UserSearch   – scraper/usersearch: username search
//
// Responses are decoded into the types in types.go; datastore results keep
// both wire shapes (row list or columnar keys/data table) in DataSet. All
// values are read-only snapshots: nothing in this package mutates or caches
// what the platform returned.
//
// # Usage
//
//	var cfg scraperapi.Config
//	if err := config.Load(&cfg); err != nil {
//	    // handle error
//	}
//	client, err := scraperapi.New(cfg)
//	if err != nil {
//	    // handle error
//	}
//	info, err := client.GetInfo(ctx, "planning-applications", nil)
//
// Pagination, retries and the platform's non-JSON output formats (csv, rss)
// are intentionally unsupported.
package scraperapi
