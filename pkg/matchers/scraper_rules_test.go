package matchers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datahutch/scrapecheck/pkg/matchers"
	"github.com/datahutch/scrapecheck/pkg/scraperapi"
)

func scraperFixture() *scraperapi.ScraperInfo {
	exception := "ScraperError: divide by zero"
	return &scraperapi.ScraperInfo{
		ShortName:     "pa-bins",
		PrivacyStatus: scraperapi.PrivacyPublic,
		RunInterval:   scraperapi.RunDaily,
		UserRoles: map[string][]string{
			"owner":  {"frabcus"},
			"editor": {"tlevine", "pezholio"},
		},
		DataSummary: scraperapi.DataSummary{
			Tables: map[string]scraperapi.Table{
				"swdata": {
					Keys:  []string{"name", "email", "gender"},
					Count: 42,
				},
			},
		},
		RunEvents: []scraperapi.RunEvent{
			{RunID: "r2", ExceptionMessage: &exception},
			{RunID: "r1"},
		},
	}
}

func TestPrivacyMatchers(t *testing.T) {
	info := scraperFixture()

	t.Run("public scraper", func(t *testing.T) {
		res, err := matchers.BePublic().Matches(info)
		require.NoError(t, err)
		assert.True(t, res.Passed)

		res, err = matchers.BePrivate().Matches(info)
		require.NoError(t, err)
		assert.False(t, res.Passed)
		assert.Contains(t, res.Explanation, "pa-bins")
		assert.Contains(t, res.Explanation, "private")
	})

	t.Run("protected maps to visible", func(t *testing.T) {
		protected := scraperFixture()
		protected.PrivacyStatus = scraperapi.PrivacyProtected

		res, err := matchers.BeProtected().Matches(protected)
		require.NoError(t, err)
		assert.True(t, res.Passed)
	})

	t.Run("negated", func(t *testing.T) {
		res, err := matchers.BePrivate().NotMatches(info)
		require.NoError(t, err)
		assert.True(t, res.Passed)

		res, err = matchers.BePublic().NotMatches(info)
		require.NoError(t, err)
		assert.False(t, res.Passed)
		assert.Contains(t, res.Explanation, "not to be public")
	})

	t.Run("nil info", func(t *testing.T) {
		_, err := matchers.BePublic().Matches(nil)
		assert.ErrorIs(t, err, matchers.ErrNilInfo)
	})
}

func TestBeEditableBy(t *testing.T) {
	info := scraperFixture()

	t.Run("owner and editors can edit", func(t *testing.T) {
		for _, user := range []string{"frabcus", "tlevine", "pezholio"} {
			res, err := matchers.BeEditableBy(user).Matches(info)
			require.NoError(t, err)
			assert.True(t, res.Passed, "user %s", user)
		}
	})

	t.Run("stranger cannot", func(t *testing.T) {
		res, err := matchers.BeEditableBy("stranger").Matches(info)
		require.NoError(t, err)
		assert.False(t, res.Passed)
		assert.Contains(t, res.Explanation, "stranger")
		assert.Contains(t, res.Explanation, "pa-bins")
	})
}

func TestRunIntervalMatchers(t *testing.T) {
	info := scraperFixture()

	t.Run("daily passes daily and fails weekly", func(t *testing.T) {
		res, err := matchers.RunEvery(scraperapi.RunDaily).Matches(info)
		require.NoError(t, err)
		assert.True(t, res.Passed)

		res, err = matchers.RunEvery(scraperapi.RunWeekly).Matches(info)
		require.NoError(t, err)
		assert.False(t, res.Passed)
		assert.Contains(t, res.Explanation, "weekly")
	})

	t.Run("never run", func(t *testing.T) {
		res, err := matchers.NeverRun().Matches(info)
		require.NoError(t, err)
		assert.False(t, res.Passed)
		assert.Contains(t, res.Explanation, "never run")

		idle := scraperFixture()
		idle.RunInterval = scraperapi.RunNever
		res, err = matchers.NeverRun().Matches(idle)
		require.NoError(t, err)
		assert.True(t, res.Passed)
	})

	t.Run("negated", func(t *testing.T) {
		res, err := matchers.RunEvery(scraperapi.RunWeekly).NotMatches(info)
		require.NoError(t, err)
		assert.True(t, res.Passed)

		res, err = matchers.RunEvery(scraperapi.RunDaily).NotMatches(info)
		require.NoError(t, err)
		assert.False(t, res.Passed)
	})
}

func TestHaveTable(t *testing.T) {
	info := scraperFixture()

	res, err := matchers.HaveTable("swdata").Matches(info)
	require.NoError(t, err)
	assert.True(t, res.Passed)

	res, err = matchers.HaveTable("swvariables").Matches(info)
	require.NoError(t, err)
	assert.False(t, res.Passed)
	assert.Contains(t, res.Explanation, `"swvariables"`)
}

func TestHaveRowCount(t *testing.T) {
	info := scraperFixture()

	t.Run("existing table", func(t *testing.T) {
		res, err := matchers.HaveRowCount(42).On("swdata").Matches(info)
		require.NoError(t, err)
		assert.True(t, res.Passed)

		res, err = matchers.HaveRowCount(41).On("swdata").Matches(info)
		require.NoError(t, err)
		assert.False(t, res.Passed)
		assert.Contains(t, res.Explanation, "41")
		assert.Contains(t, res.Explanation, "42")
	})

	t.Run("absent table counts zero rows", func(t *testing.T) {
		res, err := matchers.HaveRowCount(0).On("missing").Matches(info)
		require.NoError(t, err)
		assert.True(t, res.Passed)
	})

	t.Run("negated", func(t *testing.T) {
		res, err := matchers.HaveRowCount(41).On("swdata").NotMatches(info)
		require.NoError(t, err)
		assert.True(t, res.Passed)

		res, err = matchers.HaveRowCount(42).On("swdata").NotMatches(info)
		require.NoError(t, err)
		assert.False(t, res.Passed)
	})

	t.Run("missing On is a usage error", func(t *testing.T) {
		_, err := matchers.HaveRowCount(42).Matches(info)
		assert.ErrorIs(t, err, matchers.ErrMissingTable)
	})
}

func TestTableKeysMatchers(t *testing.T) {
	info := scraperFixture()

	t.Run("at least keys", func(t *testing.T) {
		res, err := matchers.HaveAtLeastKeys("name", "email").On("swdata").Matches(info)
		require.NoError(t, err)
		assert.True(t, res.Passed)

		res, err = matchers.HaveAtLeastKeys("name", "phone").On("swdata").Matches(info)
		require.NoError(t, err)
		assert.False(t, res.Passed)
		assert.Contains(t, res.Explanation, "phone")
		assert.NotContains(t, res.Explanation, "email")
	})

	t.Run("at most keys", func(t *testing.T) {
		res, err := matchers.HaveAtMostKeys("name", "email", "gender", "phone").On("swdata").Matches(info)
		require.NoError(t, err)
		assert.True(t, res.Passed)

		res, err = matchers.HaveAtMostKeys("name", "email").On("swdata").Matches(info)
		require.NoError(t, err)
		assert.False(t, res.Passed)
		assert.Contains(t, res.Explanation, "gender")
	})

	t.Run("absent table has no keys", func(t *testing.T) {
		res, err := matchers.HaveAtLeastKeys().On("missing").Matches(info)
		require.NoError(t, err)
		assert.True(t, res.Passed)

		res, err = matchers.HaveAtMostKeys("anything").On("missing").Matches(info)
		require.NoError(t, err)
		assert.True(t, res.Passed)
	})

	t.Run("negated", func(t *testing.T) {
		res, err := matchers.HaveAtLeastKeys("name", "phone").On("swdata").NotMatches(info)
		require.NoError(t, err)
		assert.True(t, res.Passed)

		res, err = matchers.HaveAtLeastKeys("name").On("swdata").NotMatches(info)
		require.NoError(t, err)
		assert.False(t, res.Passed)
	})

	t.Run("missing On is a usage error", func(t *testing.T) {
		_, err := matchers.HaveAtLeastKeys("name").Matches(info)
		assert.ErrorIs(t, err, matchers.ErrMissingTable)

		_, err = matchers.HaveAtMostKeys("name").NotMatches(info)
		assert.ErrorIs(t, err, matchers.ErrMissingTable)
	})
}

func TestBeBroken(t *testing.T) {
	t.Run("last run raised", func(t *testing.T) {
		info := scraperFixture()
		res, err := matchers.BeBroken().Matches(info)
		require.NoError(t, err)
		assert.True(t, res.Passed)

		res, err = matchers.BeBroken().NotMatches(info)
		require.NoError(t, err)
		assert.False(t, res.Passed)
		assert.Contains(t, res.Explanation, "divide by zero")
	})

	t.Run("last run clean", func(t *testing.T) {
		info := scraperFixture()
		info.RunEvents = []scraperapi.RunEvent{{RunID: "r3"}}

		res, err := matchers.BeBroken().Matches(info)
		require.NoError(t, err)
		assert.False(t, res.Passed)

		res, err = matchers.BeBroken().NotMatches(info)
		require.NoError(t, err)
		assert.True(t, res.Passed)
	})

	t.Run("no runs yet", func(t *testing.T) {
		info := scraperFixture()
		info.RunEvents = nil

		res, err := matchers.BeBroken().Matches(info)
		require.NoError(t, err)
		assert.False(t, res.Passed)
	})
}
