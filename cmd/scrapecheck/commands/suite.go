package commands

import (
	"errors"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/datahutch/scrapecheck/pkg/matchers"
	"github.com/datahutch/scrapecheck/pkg/scraperapi"
)

// Suite is a YAML-defined set of checks against one scraper.
type Suite struct {
	Scraper string  `yaml:"scraper"`
	Checks  []Check `yaml:"checks"`
}

// Check is one entry of a suite. A check may combine several predicates; each
// becomes its own assertion. Boolean predicates (broken, blank, unique,
// integer) assert their value: false means the negated form. Negate flips
// every assertion built from the check.
type Check struct {
	Negate bool `yaml:"negate"`

	// scraper metadata predicates
	Privacy     string   `yaml:"privacy"`
	EditableBy  string   `yaml:"editable_by"`
	RunInterval string   `yaml:"run_interval"`
	Broken      *bool    `yaml:"broken"`
	Table       string   `yaml:"table"`
	RowCount    *int     `yaml:"row_count"`
	AtLeastKeys []string `yaml:"at_least_keys"`
	AtMostKeys  []string `yaml:"at_most_keys"`

	// datastore predicates, evaluated against the rows returned by Query
	Query           string   `yaml:"query"`
	Field           string   `yaml:"field"`
	Subfield        string   `yaml:"subfield"`
	Blank           *bool    `yaml:"blank"`
	Unique          *bool    `yaml:"unique"`
	ValuesOf        []string `yaml:"values_of"`
	Matching        string   `yaml:"matching"`
	StartsWith      string   `yaml:"starts_with"`
	EndsWith        string   `yaml:"ends_with"`
	Integer         *bool    `yaml:"integer"`
	SetAnyOf        []string `yaml:"set_any_of"`
	WithAtLeastKeys []string `yaml:"with_at_least_keys"`
	WithAtMostKeys  []string `yaml:"with_at_most_keys"`
}

// assertion is one runnable matcher. Exactly one of scraper and dataset is set;
// dataset assertions carry the datastore query they evaluate against.
type assertion struct {
	desc    string
	negated bool
	scraper matchers.ScraperMatcher
	dataset matchers.DatasetMatcher
	query   string
}

func parseSuite(b []byte) (*Suite, error) {
	var suite Suite
	if err := yaml.Unmarshal(b, &suite); err != nil {
		return nil, fmt.Errorf("failed to parse suite: %w", err)
	}
	if suite.Scraper == "" {
		return nil, errors.New("suite must name a scraper")
	}
	if len(suite.Checks) == 0 {
		return nil, errors.New("suite has no checks")
	}
	return &suite, nil
}

// buildAssertions expands every check of the suite into matcher assertions.
func buildAssertions(suite *Suite) ([]assertion, error) {
	var asserts []assertion
	for i, check := range suite.Checks {
		built, err := buildCheck(check)
		if err != nil {
			return nil, fmt.Errorf("check %d: %w", i+1, err)
		}
		if len(built) == 0 {
			return nil, fmt.Errorf("check %d: no predicate given", i+1)
		}
		asserts = append(asserts, built...)
	}
	return asserts, nil
}

func buildCheck(check Check) ([]assertion, error) {
	var asserts []assertion

	add := func(desc string, negated bool, sm matchers.ScraperMatcher, dm matchers.DatasetMatcher) {
		asserts = append(asserts, assertion{
			desc:    desc,
			negated: negated != check.Negate,
			scraper: sm,
			dataset: dm,
			query:   check.Query,
		})
	}

	if check.Privacy != "" {
		var sm matchers.ScraperMatcher
		switch check.Privacy {
		case "public":
			sm = matchers.BePublic()
		case "protected":
			sm = matchers.BeProtected()
		case "private":
			sm = matchers.BePrivate()
		default:
			return nil, fmt.Errorf("unknown privacy %q", check.Privacy)
		}
		add("privacy "+check.Privacy, false, sm, nil)
	}

	if check.EditableBy != "" {
		add("editable by "+check.EditableBy, false, matchers.BeEditableBy(check.EditableBy), nil)
	}

	if check.RunInterval != "" {
		interval, err := scraperapi.ParseRunInterval(check.RunInterval)
		if err != nil {
			return nil, err
		}
		add("run interval "+check.RunInterval, false, matchers.RunEvery(interval), nil)
	}

	if check.Broken != nil {
		add("broken", !*check.Broken, matchers.BeBroken(), nil)
	}

	if check.Table != "" {
		if check.RowCount == nil && check.AtLeastKeys == nil && check.AtMostKeys == nil {
			add(fmt.Sprintf("has table %q", check.Table), false, matchers.HaveTable(check.Table), nil)
		}
		if check.RowCount != nil {
			add(fmt.Sprintf("table %q row count %d", check.Table, *check.RowCount), false,
				matchers.HaveRowCount(*check.RowCount).On(check.Table), nil)
		}
		if check.AtLeastKeys != nil {
			add(fmt.Sprintf("table %q at least keys %v", check.Table, check.AtLeastKeys), false,
				matchers.HaveAtLeastKeys(check.AtLeastKeys...).On(check.Table), nil)
		}
		if check.AtMostKeys != nil {
			add(fmt.Sprintf("table %q at most keys %v", check.Table, check.AtMostKeys), false,
				matchers.HaveAtMostKeys(check.AtMostKeys...).On(check.Table), nil)
		}
	} else if check.RowCount != nil || check.AtLeastKeys != nil || check.AtMostKeys != nil {
		return nil, errors.New("row_count/at_least_keys/at_most_keys require a table")
	}

	dataset, err := buildDatasetCheck(check)
	if err != nil {
		return nil, err
	}
	for _, d := range dataset {
		add(d.desc, d.negated, nil, d.dataset)
	}

	if len(dataset) > 0 && check.Query == "" {
		return nil, errors.New("datastore predicates require a query")
	}

	return asserts, nil
}

type datasetAssertion struct {
	desc    string
	negated bool
	dataset matchers.DatasetMatcher
}

func buildDatasetCheck(check Check) ([]datasetAssertion, error) {
	scope := func(m *matchers.FieldMatcher) (matchers.DatasetMatcher, error) {
		if check.Field == "" {
			return nil, errors.New("field predicates require a field")
		}
		m = m.In(check.Field)
		if check.Subfield != "" {
			m = m.At(check.Subfield)
		}
		return m, nil
	}

	var asserts []datasetAssertion

	add := func(desc string, negated bool, m matchers.DatasetMatcher) {
		asserts = append(asserts, datasetAssertion{desc: desc, negated: negated, dataset: m})
	}

	if check.Blank != nil {
		m, err := scope(matchers.HaveBlankValues())
		if err != nil {
			return nil, err
		}
		add("blank values in "+check.Field, !*check.Blank, m)
	}

	if check.Unique != nil {
		if check.Field == "" {
			return nil, errors.New("field predicates require a field")
		}
		m := matchers.HaveUniqueValues().In(check.Field)
		if check.Subfield != "" {
			m = m.At(check.Subfield)
		}
		add("unique values in "+check.Field, !*check.Unique, m)
	}

	if check.ValuesOf != nil {
		m, err := scope(matchers.HaveValuesOf(check.ValuesOf...))
		if err != nil {
			return nil, err
		}
		add(fmt.Sprintf("values of %v in %s", check.ValuesOf, check.Field), false, m)
	}

	if check.Matching != "" {
		if _, err := regexp.Compile(check.Matching); err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", check.Matching, err)
		}
		m, err := scope(matchers.HaveValuesMatching(check.Matching))
		if err != nil {
			return nil, err
		}
		add(fmt.Sprintf("values matching %s in %s", check.Matching, check.Field), false, m)
	}

	if check.StartsWith != "" {
		m, err := scope(matchers.HaveValuesStartingWith(check.StartsWith))
		if err != nil {
			return nil, err
		}
		add(fmt.Sprintf("values starting with %q in %s", check.StartsWith, check.Field), false, m)
	}

	if check.EndsWith != "" {
		m, err := scope(matchers.HaveValuesEndingWith(check.EndsWith))
		if err != nil {
			return nil, err
		}
		add(fmt.Sprintf("values ending with %q in %s", check.EndsWith, check.Field), false, m)
	}

	if check.Integer != nil {
		m, err := scope(matchers.HaveIntegerValues())
		if err != nil {
			return nil, err
		}
		add("integer values in "+check.Field, !*check.Integer, m)
	}

	if check.SetAnyOf != nil {
		add(fmt.Sprintf("any of %v set", check.SetAnyOf), false, matchers.SetAnyOf(check.SetAnyOf...))
	}

	if check.WithAtLeastKeys != nil {
		m, err := scope(matchers.HaveValuesWithAtLeastKeys(check.WithAtLeastKeys...))
		if err != nil {
			return nil, err
		}
		add(fmt.Sprintf("values with at least keys %v in %s", check.WithAtLeastKeys, check.Field), false, m)
	}

	if check.WithAtMostKeys != nil {
		m, err := scope(matchers.HaveValuesWithAtMostKeys(check.WithAtMostKeys...))
		if err != nil {
			return nil, err
		}
		add(fmt.Sprintf("values with at most keys %v in %s", check.WithAtMostKeys, check.Field), false, m)
	}

	return asserts, nil
}
