package matchers

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/datahutch/scrapecheck/pkg/scraperapi"
)

// FieldMatcher applies a per-value predicate to one field of every record.
// In must be chained before evaluating; At optionally descends into a JSON
// sub-document stored in the field. When the field holds a list of objects,
// the predicate must hold for all of them.
type FieldMatcher struct {
	name           string
	desc           string
	field          string
	subfield       string
	blankIsSubject bool
	checkScalar    func(any) bool
	checkObject    func(map[string]any) bool
}

// In scopes the matcher to a record field.
func (m *FieldMatcher) In(field string) *FieldMatcher {
	c := *m
	c.field = field
	return &c
}

// At descends into a subfield of the JSON document stored in the field.
func (m *FieldMatcher) At(subfield string) *FieldMatcher {
	c := *m
	c.subfield = subfield
	return &c
}

func (m *FieldMatcher) Matches(data any) (Result, error) {
	total, mismatches, err := m.classify(data, false)
	if err != nil {
		return Result{}, err
	}
	if len(mismatches) == 0 {
		return Result{Passed: true}, nil
	}
	return Result{Explanation: fmt.Sprintf("%d of %d records do not have %s in %s: %s",
		len(mismatches), total, m.desc, fieldTarget(m.field, m.subfield), describeRecords(mismatches))}, nil
}

func (m *FieldMatcher) NotMatches(data any) (Result, error) {
	total, matches, err := m.classify(data, true)
	if err != nil {
		return Result{}, err
	}
	if len(matches) == 0 {
		return Result{Passed: true}, nil
	}
	return Result{Explanation: fmt.Sprintf("%d of %d records have %s in %s: %s",
		len(matches), total, m.desc, fieldTarget(m.field, m.subfield), describeRecords(matches))}, nil
}

// classify scans every record and collects those whose per-record outcome
// equals wantSatisfied. NotMatches is a second full scan with the opposite
// selection, not a boolean flip of Matches.
func (m *FieldMatcher) classify(data any, wantSatisfied bool) (int, []scraperapi.Record, error) {
	if m.field == "" {
		return 0, nil, fmt.Errorf("%w: %s", ErrMissingField, m.name)
	}
	records, err := normalizeDataset(data)
	if err != nil {
		return 0, nil, err
	}

	var selected []scraperapi.Record
	for _, rec := range records {
		ok, err := m.satisfies(rec)
		if err != nil {
			return 0, nil, err
		}
		if ok == wantSatisfied {
			selected = append(selected, rec)
		}
	}
	return len(records), selected, nil
}

func (m *FieldMatcher) satisfies(rec scraperapi.Record) (bool, error) {
	raw := rec[m.field]

	if m.subfield == "" && m.checkObject == nil {
		return m.scalarOK(raw), nil
	}

	// Blank field values skip structural checks entirely.
	if isBlank(raw) {
		return true, nil
	}

	fv := decodeValue(raw)
	switch fv.shape {
	case shapeObject:
		if m.checkObject != nil {
			return m.checkObject(fv.object), nil
		}
		return m.scalarOK(fv.object[m.subfield]), nil
	case shapeObjectList:
		for _, obj := range fv.objects {
			if m.checkObject != nil {
				if !m.checkObject(obj) {
					return false, nil
				}
				continue
			}
			if !m.scalarOK(obj[m.subfield]) {
				return false, nil
			}
		}
		return true, nil
	default:
		return false, fmt.Errorf("%w: %s in record %s",
			ErrUnsupportedShape, fieldTarget(m.field, m.subfield), describeRecords([]scraperapi.Record{rec}))
	}
}

// scalarOK applies the blank policy, then the predicate. Blank values pass
// every value-shape predicate so optional fields skip validation; matchers
// whose subject is blankness itself invert that.
func (m *FieldMatcher) scalarOK(v any) bool {
	if m.blankIsSubject {
		return isBlank(v)
	}
	if isBlank(v) {
		return true
	}
	return m.checkScalar(v)
}

// HaveBlankValues matches records whose field (or subfield) value is blank:
// absent, empty string, or empty collection. Blankness is the subject here,
// so non-blank values are violations.
func HaveBlankValues() *FieldMatcher {
	return &FieldMatcher{
		name:           "HaveBlankValues",
		desc:           "blank values",
		blankIsSubject: true,
	}
}

// HaveValuesOf matches records whose field value is one of the given values.
func HaveValuesOf(values ...string) *FieldMatcher {
	allowed := make(map[string]struct{}, len(values))
	for _, v := range values {
		allowed[v] = struct{}{}
	}
	return &FieldMatcher{
		name: "HaveValuesOf",
		desc: fmt.Sprintf("values of [%s]", strings.Join(values, ", ")),
		checkScalar: func(v any) bool {
			_, ok := allowed[stringValue(v)]
			return ok
		},
	}
}

// HaveValuesMatching matches records whose field value matches the regular
// expression. The pattern is compiled eagerly and panics if malformed.
func HaveValuesMatching(pattern string) *FieldMatcher {
	re := regexp.MustCompile(pattern)
	return &FieldMatcher{
		name: "HaveValuesMatching",
		desc: fmt.Sprintf("values matching %s", pattern),
		checkScalar: func(v any) bool {
			return re.MatchString(stringValue(v))
		},
	}
}

// HaveValuesStartingWith matches records whose field value has the prefix.
func HaveValuesStartingWith(prefix string) *FieldMatcher {
	return &FieldMatcher{
		name: "HaveValuesStartingWith",
		desc: fmt.Sprintf("values starting with %q", prefix),
		checkScalar: func(v any) bool {
			return strings.HasPrefix(stringValue(v), prefix)
		},
	}
}

// HaveValuesEndingWith matches records whose field value has the suffix.
func HaveValuesEndingWith(suffix string) *FieldMatcher {
	return &FieldMatcher{
		name: "HaveValuesEndingWith",
		desc: fmt.Sprintf("values ending with %q", suffix),
		checkScalar: func(v any) bool {
			return strings.HasSuffix(stringValue(v), suffix)
		},
	}
}

// HaveIntegerValues matches records whose field value is, or parses as, a
// base-10 integer.
func HaveIntegerValues() *FieldMatcher {
	return &FieldMatcher{
		name:        "HaveIntegerValues",
		desc:        "integer values",
		checkScalar: isIntegerValue,
	}
}

// HaveValuesWithAtLeastKeys matches records whose field holds a JSON object
// (or list of objects) containing every one of the given keys.
func HaveValuesWithAtLeastKeys(keys ...string) *FieldMatcher {
	return &FieldMatcher{
		name: "HaveValuesWithAtLeastKeys",
		desc: fmt.Sprintf("values with at least keys [%s]", strings.Join(keys, ", ")),
		checkObject: func(obj map[string]any) bool {
			return len(keyDifference(keys, objectKeys(obj))) == 0
		},
	}
}

// HaveValuesWithAtMostKeys matches records whose field holds a JSON object
// (or list of objects) with no keys outside the given set.
func HaveValuesWithAtMostKeys(keys ...string) *FieldMatcher {
	return &FieldMatcher{
		name: "HaveValuesWithAtMostKeys",
		desc: fmt.Sprintf("values with at most keys [%s]", strings.Join(keys, ", ")),
		checkObject: func(obj map[string]any) bool {
			return len(keyDifference(objectKeys(obj), keys)) == 0
		},
	}
}

// SetAnyMatcher checks that each record sets at least one of a group of
// fields. The quantification is across fields within a record, not across
// records.
type SetAnyMatcher struct {
	fields []string
}

// SetAnyOf matches records in which at least one of the named fields is
// non-blank.
func SetAnyOf(fields ...string) *SetAnyMatcher {
	return &SetAnyMatcher{fields: fields}
}

func (m *SetAnyMatcher) Matches(data any) (Result, error) {
	total, offenders, err := m.classify(data, false)
	if err != nil {
		return Result{}, err
	}
	if len(offenders) == 0 {
		return Result{Passed: true}, nil
	}
	return Result{Explanation: fmt.Sprintf("%d of %d records set none of the fields [%s]: %s",
		len(offenders), total, strings.Join(m.fields, ", "), describeRecords(offenders))}, nil
}

func (m *SetAnyMatcher) NotMatches(data any) (Result, error) {
	total, matches, err := m.classify(data, true)
	if err != nil {
		return Result{}, err
	}
	if len(matches) == 0 {
		return Result{Passed: true}, nil
	}
	return Result{Explanation: fmt.Sprintf("%d of %d records set at least one of the fields [%s]: %s",
		len(matches), total, strings.Join(m.fields, ", "), describeRecords(matches))}, nil
}

func (m *SetAnyMatcher) classify(data any, wantSatisfied bool) (int, []scraperapi.Record, error) {
	records, err := normalizeDataset(data)
	if err != nil {
		return 0, nil, err
	}

	var selected []scraperapi.Record
	for _, rec := range records {
		satisfied := false
		for _, f := range m.fields {
			if !isBlank(rec[f]) {
				satisfied = true
				break
			}
		}
		if satisfied == wantSatisfied {
			selected = append(selected, rec)
		}
	}
	return len(records), selected, nil
}
