package scraperapi

import "fmt"

// PrivacyStatus is a scraper's visibility on the platform.
type PrivacyStatus string

const (
	// PrivacyPublic scrapers are visible and editable by anyone.
	PrivacyPublic PrivacyStatus = "public"
	// PrivacyProtected scrapers are visible to anyone but editable only by
	// their owner and editors. The wire value is "visible".
	PrivacyProtected PrivacyStatus = "visible"
	// PrivacyPrivate scrapers are hidden from everyone but their owner and editors.
	PrivacyPrivate PrivacyStatus = "private"
)

// RunInterval is the number of seconds between scheduled runs of a scraper.
// The platform only ever reports one of the five enumerated values.
type RunInterval int

const (
	RunNever   RunInterval = -1
	RunMonthly RunInterval = 2678400
	RunWeekly  RunInterval = 604800
	RunDaily   RunInterval = 86400
	RunHourly  RunInterval = 3600
)

// String returns the interval's schedule name ("daily", "never", ...).
// Unknown values render as their raw second count.
func (ri RunInterval) String() string {
	switch ri {
	case RunNever:
		return "never"
	case RunMonthly:
		return "monthly"
	case RunWeekly:
		return "weekly"
	case RunDaily:
		return "daily"
	case RunHourly:
		return "hourly"
	default:
		return fmt.Sprintf("every %d seconds", int(ri))
	}
}

// ParseRunInterval maps a schedule name to its RunInterval value.
func ParseRunInterval(name string) (RunInterval, error) {
	switch name {
	case "never":
		return RunNever, nil
	case "monthly":
		return RunMonthly, nil
	case "weekly":
		return RunWeekly, nil
	case "daily":
		return RunDaily, nil
	case "hourly":
		return RunHourly, nil
	default:
		return 0, fmt.Errorf("unknown run interval %q", name)
	}
}

// ScraperInfo is the scraper/getinfo response for a single scraper version.
type ScraperInfo struct {
	ShortName     string              `json:"short_name"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Language      string              `json:"language"`
	Created       string              `json:"created"`
	PrivacyStatus PrivacyStatus       `json:"privacy_status"`
	Tags          []string            `json:"tags"`
	LastRun       string              `json:"last_run"`
	Records       int                 `json:"records"`
	RunInterval   RunInterval         `json:"run_interval"`
	UserRoles     map[string][]string `json:"userroles"`
	DataSummary   DataSummary         `json:"datasummary"`
	History       []HistoryEntry      `json:"history"`
	RunEvents     []RunEvent          `json:"runevents"`
	Code          string              `json:"code"`
}

// DataSummary describes a scraper's datastore contents.
type DataSummary struct {
	Tables    map[string]Table `json:"tables"`
	TotalRows int              `json:"total_rows"`
}

// Table is one datastore table's summary.
type Table struct {
	Keys  []string `json:"keys"`
	Count int      `json:"count"`
	SQL   string   `json:"sql"`
}

// HistoryEntry is one code revision.
type HistoryEntry struct {
	Version int    `json:"version"`
	Date    string `json:"date"`
	User    string `json:"user"`
}

// RunEvent summarizes one run of a scraper, most recent first in
// ScraperInfo.RunEvents. ExceptionMessage is nil when the run succeeded.
type RunEvent struct {
	RunID            string  `json:"runid"`
	RunStarted       string  `json:"run_started"`
	LastUpdate       string  `json:"last_update"`
	RecordsProduced  int     `json:"records_produced"`
	PagesScraped     int     `json:"pages_scraped"`
	StillRunning     bool    `json:"still_running"`
	ExceptionMessage *string `json:"exception_message"`
}

// Broken reports whether the run raised an exception.
func (e RunEvent) Broken() bool {
	return e.ExceptionMessage != nil && *e.ExceptionMessage != ""
}

// RunInfo is the scraper/getruninfo response for a single run.
type RunInfo struct {
	RunID            string         `json:"runid"`
	RunStarted       string         `json:"run_started"`
	RunEnded         string         `json:"run_ended"`
	RecordsProduced  int            `json:"records_produced"`
	PagesScraped     int            `json:"pages_scraped"`
	Output           string         `json:"output"`
	ExceptionMessage *string        `json:"exception_message"`
	DomainsScraped   []DomainScrape `json:"domainsscraped"`
}

// DomainScrape is per-domain traffic accounting for a run.
type DomainScrape struct {
	Domain string `json:"domain"`
	Pages  int    `json:"pages_scraped"`
	Bytes  int    `json:"bytes_scraped"`
}

// UserInfo is the scraper/getuserinfo response.
type UserInfo struct {
	Username    string              `json:"username"`
	ProfileName string              `json:"profilename"`
	DateJoined  string              `json:"datejoined"`
	CodeRoles   map[string][]string `json:"coderoles"`
}

// ScraperSummary is one scraper/search result.
type ScraperSummary struct {
	ShortName     string        `json:"short_name"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Created       string        `json:"created"`
	Language      string        `json:"language"`
	PrivacyStatus PrivacyStatus `json:"privacy_status"`
}

// UserSummary is one scraper/usersearch result.
type UserSummary struct {
	Username    string `json:"username"`
	ProfileName string `json:"profilename"`
	DateJoined  string `json:"date_joined"`
}
