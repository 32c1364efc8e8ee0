package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datahutch/scrapecheck/pkg/scraperapi"
)

const sampleSuite = `
scraper: pa-bins
checks:
  - privacy: public
  - editable_by: frabcus
  - run_interval: daily
  - broken: false
  - table: swdata
    row_count: 42
    at_least_keys: [name, email]
  - query: "select * from swdata"
    field: gender
    values_of: [M, F]
  - query: "select * from swdata"
    set_any_of: [name, email]
`

func TestParseSuite(t *testing.T) {
	t.Run("valid suite", func(t *testing.T) {
		suite, err := parseSuite([]byte(sampleSuite))
		require.NoError(t, err)
		assert.Equal(t, "pa-bins", suite.Scraper)
		assert.Len(t, suite.Checks, 7)
	})

	t.Run("missing scraper", func(t *testing.T) {
		_, err := parseSuite([]byte("checks:\n  - privacy: public\n"))
		assert.Error(t, err)
	})

	t.Run("no checks", func(t *testing.T) {
		_, err := parseSuite([]byte("scraper: pa-bins\n"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := parseSuite([]byte("scraper: [unclosed"))
		assert.Error(t, err)
	})
}

func TestBuildAssertions(t *testing.T) {
	t.Run("expands combined checks", func(t *testing.T) {
		suite, err := parseSuite([]byte(sampleSuite))
		require.NoError(t, err)

		asserts, err := buildAssertions(suite)
		require.NoError(t, err)
		// privacy, editable_by, run_interval, broken, row_count,
		// at_least_keys, values_of, set_any_of
		require.Len(t, asserts, 8)

		scraperScoped := 0
		for _, a := range asserts {
			if a.scraper != nil {
				scraperScoped++
				assert.Nil(t, a.dataset)
			} else {
				assert.NotNil(t, a.dataset)
				assert.Equal(t, "select * from swdata", a.query)
			}
		}
		assert.Equal(t, 6, scraperScoped)
	})

	t.Run("broken false negates", func(t *testing.T) {
		suite := &Suite{Scraper: "pa-bins", Checks: []Check{{Broken: boolPtr(false)}}}
		asserts, err := buildAssertions(suite)
		require.NoError(t, err)
		require.Len(t, asserts, 1)
		assert.True(t, asserts[0].negated)
	})

	t.Run("negate flips a positive check", func(t *testing.T) {
		suite := &Suite{Scraper: "pa-bins", Checks: []Check{{Privacy: "public", Negate: true}}}
		asserts, err := buildAssertions(suite)
		require.NoError(t, err)
		require.Len(t, asserts, 1)
		assert.True(t, asserts[0].negated)
	})

	t.Run("negate on a false boolean cancels out", func(t *testing.T) {
		suite := &Suite{Scraper: "pa-bins", Checks: []Check{{Broken: boolPtr(false), Negate: true}}}
		asserts, err := buildAssertions(suite)
		require.NoError(t, err)
		require.Len(t, asserts, 1)
		assert.False(t, asserts[0].negated)
	})

	t.Run("evaluates built scraper matchers", func(t *testing.T) {
		suite := &Suite{Scraper: "pa-bins", Checks: []Check{{Privacy: "public"}, {RunInterval: "daily"}}}
		asserts, err := buildAssertions(suite)
		require.NoError(t, err)

		info := &scraperapi.ScraperInfo{
			ShortName:     "pa-bins",
			PrivacyStatus: scraperapi.PrivacyPublic,
			RunInterval:   scraperapi.RunDaily,
		}
		for _, a := range asserts {
			res, err := a.scraper.Matches(info)
			require.NoError(t, err)
			assert.True(t, res.Passed, a.desc)
		}
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		for _, check := range []Check{
			{Privacy: "secret"},
			{RunInterval: "fortnightly"},
			{Query: "select 1", Field: "f", Matching: "("},
		} {
			_, err := buildAssertions(&Suite{Scraper: "s", Checks: []Check{check}})
			assert.Error(t, err, "%+v", check)
		}
	})

	t.Run("rejects incomplete checks", func(t *testing.T) {
		for _, check := range []Check{
			{},                                    // no predicate
			{RowCount: intPtr(1)},                 // table-scoped without table
			{Field: "f", ValuesOf: []string{"M"}}, // datastore predicate without query
			{Query: "select 1", ValuesOf: []string{"M"}}, // field predicate without field
		} {
			_, err := buildAssertions(&Suite{Scraper: "s", Checks: []Check{check}})
			assert.Error(t, err, "%+v", check)
		}
	})
}

func boolPtr(b bool) *bool { return &b }
func intPtr(n int) *int    { return &n }
