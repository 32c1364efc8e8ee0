package matchers

import (
	"fmt"
	"slices"
	"strings"

	"github.com/datahutch/scrapecheck/pkg/scraperapi"
)

// BePublic matches scrapers anyone can see and edit.
func BePublic() ScraperMatcher {
	return privacyRule(scraperapi.PrivacyPublic, "public")
}

// BeProtected matches scrapers anyone can see but only owner and editors can edit.
func BeProtected() ScraperMatcher {
	return privacyRule(scraperapi.PrivacyProtected, "protected")
}

// BePrivate matches scrapers hidden from everyone but owner and editors.
func BePrivate() ScraperMatcher {
	return privacyRule(scraperapi.PrivacyPrivate, "private")
}

func privacyRule(want scraperapi.PrivacyStatus, name string) scraperRule {
	return scraperRule{
		check: func(info *scraperapi.ScraperInfo) bool {
			return info.PrivacyStatus == want
		},
		explain: func(info *scraperapi.ScraperInfo) string {
			return fmt.Sprintf("expected %s to be %s, but its privacy status is %q",
				info.ShortName, name, info.PrivacyStatus)
		},
		explainNot: func(info *scraperapi.ScraperInfo) string {
			return fmt.Sprintf("expected %s not to be %s", info.ShortName, name)
		},
	}
}

// BeEditableBy matches scrapers the given user owns or edits.
func BeEditableBy(user string) ScraperMatcher {
	return scraperRule{
		check: func(info *scraperapi.ScraperInfo) bool {
			return slices.Contains(info.UserRoles["owner"], user) ||
				slices.Contains(info.UserRoles["editor"], user)
		},
		explain: func(info *scraperapi.ScraperInfo) string {
			return fmt.Sprintf("expected %s to be editable by %s", info.ShortName, user)
		},
		explainNot: func(info *scraperapi.ScraperInfo) string {
			return fmt.Sprintf("expected %s not to be editable by %s", info.ShortName, user)
		},
	}
}

// RunEvery matches scrapers scheduled at the given interval.
func RunEvery(interval scraperapi.RunInterval) ScraperMatcher {
	return runRule(interval)
}

// NeverRun matches scrapers with no schedule. Sugar for RunEvery(RunNever).
func NeverRun() ScraperMatcher {
	return runRule(scraperapi.RunNever)
}

func runRule(interval scraperapi.RunInterval) scraperRule {
	verb := "run " + interval.String()
	if interval == scraperapi.RunNever {
		verb = "never run"
	}
	return scraperRule{
		check: func(info *scraperapi.ScraperInfo) bool {
			return info.RunInterval == interval
		},
		explain: func(info *scraperapi.ScraperInfo) string {
			return fmt.Sprintf("expected %s to %s, but its run interval is %s",
				info.ShortName, verb, info.RunInterval)
		},
		explainNot: func(info *scraperapi.ScraperInfo) string {
			return fmt.Sprintf("expected %s not to %s", info.ShortName, verb)
		},
	}
}

// HaveTable matches scrapers whose datastore contains the named table.
func HaveTable(name string) ScraperMatcher {
	return scraperRule{
		check: func(info *scraperapi.ScraperInfo) bool {
			_, ok := info.DataSummary.Tables[name]
			return ok
		},
		explain: func(info *scraperapi.ScraperInfo) string {
			return fmt.Sprintf("expected %s to have table %q", info.ShortName, name)
		},
		explainNot: func(info *scraperapi.ScraperInfo) string {
			return fmt.Sprintf("expected %s not to have table %q", info.ShortName, name)
		},
	}
}

// BeBroken matches scrapers whose most recent run raised an exception.
func BeBroken() ScraperMatcher {
	return scraperRule{
		check: func(info *scraperapi.ScraperInfo) bool {
			return len(info.RunEvents) > 0 && info.RunEvents[0].Broken()
		},
		explain: func(info *scraperapi.ScraperInfo) string {
			return fmt.Sprintf("expected %s to be broken, but its last run raised no exception", info.ShortName)
		},
		explainNot: func(info *scraperapi.ScraperInfo) string {
			return fmt.Sprintf("expected %s not to be broken, but its last run raised: %s",
				info.ShortName, *info.RunEvents[0].ExceptionMessage)
		},
	}
}

// RowCountMatcher checks a table's row count. On must be chained before
// evaluating; an absent table counts as zero rows.
type RowCountMatcher struct {
	table string
	want  int
}

// HaveRowCount matches scrapers whose table has exactly n rows.
func HaveRowCount(n int) *RowCountMatcher {
	return &RowCountMatcher{want: n}
}

// On scopes the matcher to a datastore table.
func (m *RowCountMatcher) On(table string) *RowCountMatcher {
	c := *m
	c.table = table
	return &c
}

func (m *RowCountMatcher) Matches(info *scraperapi.ScraperInfo) (Result, error) {
	count, err := m.count(info)
	if err != nil {
		return Result{}, err
	}
	if count == m.want {
		return Result{Passed: true}, nil
	}
	return Result{Explanation: fmt.Sprintf("expected table %q of %s to have %d rows, got %d",
		m.table, info.ShortName, m.want, count)}, nil
}

func (m *RowCountMatcher) NotMatches(info *scraperapi.ScraperInfo) (Result, error) {
	count, err := m.count(info)
	if err != nil {
		return Result{}, err
	}
	if count != m.want {
		return Result{Passed: true}, nil
	}
	return Result{Explanation: fmt.Sprintf("expected table %q of %s not to have %d rows",
		m.table, info.ShortName, m.want)}, nil
}

func (m *RowCountMatcher) count(info *scraperapi.ScraperInfo) (int, error) {
	if info == nil {
		return 0, ErrNilInfo
	}
	if m.table == "" {
		return 0, fmt.Errorf("%w: HaveRowCount(%d)", ErrMissingTable, m.want)
	}
	return info.DataSummary.Tables[m.table].Count, nil
}

type keysMode int

const (
	atLeastKeys keysMode = iota
	atMostKeys
)

// TableKeysMatcher checks a table's field names against an expected key set.
// On must be chained before evaluating; an absent table has no keys.
type TableKeysMatcher struct {
	table string
	keys  []string
	mode  keysMode
}

// HaveAtLeastKeys matches scrapers whose table contains every one of the
// given keys, and possibly more.
func HaveAtLeastKeys(keys ...string) *TableKeysMatcher {
	return &TableKeysMatcher{keys: keys, mode: atLeastKeys}
}

// HaveAtMostKeys matches scrapers whose table contains no keys outside the
// given set.
func HaveAtMostKeys(keys ...string) *TableKeysMatcher {
	return &TableKeysMatcher{keys: keys, mode: atMostKeys}
}

// On scopes the matcher to a datastore table.
func (m *TableKeysMatcher) On(table string) *TableKeysMatcher {
	c := *m
	c.table = table
	return &c
}

func (m *TableKeysMatcher) Matches(info *scraperapi.ScraperInfo) (Result, error) {
	offending, err := m.offending(info)
	if err != nil {
		return Result{}, err
	}
	if len(offending) == 0 {
		return Result{Passed: true}, nil
	}
	if m.mode == atLeastKeys {
		return Result{Explanation: fmt.Sprintf("table %q of %s is missing keys: %s",
			m.table, info.ShortName, strings.Join(offending, ", "))}, nil
	}
	return Result{Explanation: fmt.Sprintf("table %q of %s has unexpected keys: %s",
		m.table, info.ShortName, strings.Join(offending, ", "))}, nil
}

func (m *TableKeysMatcher) NotMatches(info *scraperapi.ScraperInfo) (Result, error) {
	offending, err := m.offending(info)
	if err != nil {
		return Result{}, err
	}
	if len(offending) > 0 {
		return Result{Passed: true}, nil
	}
	if m.mode == atLeastKeys {
		return Result{Explanation: fmt.Sprintf("expected table %q of %s to be missing some of keys: %s",
			m.table, info.ShortName, strings.Join(m.keys, ", "))}, nil
	}
	return Result{Explanation: fmt.Sprintf("expected table %q of %s to have keys beyond: %s",
		m.table, info.ShortName, strings.Join(m.keys, ", "))}, nil
}

func (m *TableKeysMatcher) offending(info *scraperapi.ScraperInfo) ([]string, error) {
	if info == nil {
		return nil, ErrNilInfo
	}
	if m.table == "" {
		name := "HaveAtLeastKeys"
		if m.mode == atMostKeys {
			name = "HaveAtMostKeys"
		}
		return nil, fmt.Errorf("%w: %s", ErrMissingTable, name)
	}
	have := info.DataSummary.Tables[m.table].Keys
	if m.mode == atLeastKeys {
		return keyDifference(m.keys, have), nil
	}
	return keyDifference(have, m.keys), nil
}
