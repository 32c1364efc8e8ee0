package matchers

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/datahutch/scrapecheck/pkg/scraperapi"
)

// Result is the outcome of one matcher evaluation. Explanation is only set
// when the assertion failed.
type Result struct {
	Passed      bool
	Explanation string
}

// ScraperMatcher evaluates a predicate against a scraper's metadata.
type ScraperMatcher interface {
	Matches(info *scraperapi.ScraperInfo) (Result, error)
	NotMatches(info *scraperapi.ScraperInfo) (Result, error)
}

// DatasetMatcher evaluates a predicate against every record of a dataset.
// Accepted inputs: *scraperapi.DataSet, []scraperapi.Record, a []any of
// record objects, or a raw map[string]any keys/data table.
type DatasetMatcher interface {
	Matches(data any) (Result, error)
	NotMatches(data any) (Result, error)
}

// scraperRule is the shared plumbing behind the simple scraper-info matchers:
// a predicate plus one explanation template per entry point.
type scraperRule struct {
	check      func(*scraperapi.ScraperInfo) bool
	explain    func(*scraperapi.ScraperInfo) string
	explainNot func(*scraperapi.ScraperInfo) string
}

func (r scraperRule) Matches(info *scraperapi.ScraperInfo) (Result, error) {
	if info == nil {
		return Result{}, ErrNilInfo
	}
	if r.check(info) {
		return Result{Passed: true}, nil
	}
	return Result{Explanation: r.explain(info)}, nil
}

func (r scraperRule) NotMatches(info *scraperapi.ScraperInfo) (Result, error) {
	if info == nil {
		return Result{}, ErrNilInfo
	}
	if !r.check(info) {
		return Result{Passed: true}, nil
	}
	return Result{Explanation: r.explainNot(info)}, nil
}

// keyDifference returns the elements of a that are not in b, preserving order.
func keyDifference(a, b []string) []string {
	have := make(map[string]struct{}, len(b))
	for _, k := range b {
		have[k] = struct{}{}
	}
	var diff []string
	for _, k := range a {
		if _, ok := have[k]; !ok {
			diff = append(diff, k)
		}
	}
	return diff
}

// describeRecords renders offending records for failure explanations.
func describeRecords(records []scraperapi.Record) string {
	parts := make([]string, 0, len(records))
	for _, rec := range records {
		b, err := json.Marshal(rec)
		if err != nil {
			parts = append(parts, fmt.Sprint(rec))
			continue
		}
		parts = append(parts, string(b))
	}
	return strings.Join(parts, ", ")
}

// fieldTarget names a field, or a subfield within it, for explanations.
func fieldTarget(field, subfield string) string {
	if subfield != "" {
		return fmt.Sprintf("subfield %q of field %q", subfield, field)
	}
	return fmt.Sprintf("field %q", field)
}
