package matchers

import (
	"fmt"
	"sort"
	"strings"

	"github.com/datahutch/scrapecheck/pkg/scraperapi"
)

// UniqueValuesMatcher checks that every value of a field occurs exactly once
// across the whole dataset. Blank values are ignored when counting. In must
// be chained before evaluating; At optionally descends into a subfield, in
// which case each element of a list-of-objects value contributes its own
// occurrence.
//
// The offending set is the same under both entry points: records holding a
// duplicated value. NotMatches therefore passes exactly when the data holds
// no duplicates, mirroring Matches rather than negating it.
type UniqueValuesMatcher struct {
	field    string
	subfield string
}

// HaveUniqueValues matches datasets in which no field value repeats.
func HaveUniqueValues() *UniqueValuesMatcher {
	return &UniqueValuesMatcher{}
}

// In scopes the matcher to a record field.
func (m *UniqueValuesMatcher) In(field string) *UniqueValuesMatcher {
	c := *m
	c.field = field
	return &c
}

// At descends into a subfield of the JSON document stored in the field.
func (m *UniqueValuesMatcher) At(subfield string) *UniqueValuesMatcher {
	c := *m
	c.subfield = subfield
	return &c
}

func (m *UniqueValuesMatcher) Matches(data any) (Result, error) {
	return m.evaluate(data)
}

func (m *UniqueValuesMatcher) NotMatches(data any) (Result, error) {
	return m.evaluate(data)
}

func (m *UniqueValuesMatcher) evaluate(data any) (Result, error) {
	total, offenders, duplicates, err := m.classify(data)
	if err != nil {
		return Result{}, err
	}
	if len(offenders) == 0 {
		return Result{Passed: true}, nil
	}
	return Result{Explanation: fmt.Sprintf("%d of %d records have non-unique values in %s (duplicates: %s): %s",
		len(offenders), total, fieldTarget(m.field, m.subfield),
		strings.Join(duplicates, ", "), describeRecords(offenders))}, nil
}

func (m *UniqueValuesMatcher) classify(data any) (int, []scraperapi.Record, []string, error) {
	if m.field == "" {
		return 0, nil, nil, fmt.Errorf("%w: HaveUniqueValues", ErrMissingField)
	}
	records, err := normalizeDataset(data)
	if err != nil {
		return 0, nil, nil, err
	}

	counts := make(map[string]int)
	perRecord := make([][]string, len(records))
	for i, rec := range records {
		values, err := m.valuesOf(rec)
		if err != nil {
			return 0, nil, nil, err
		}
		perRecord[i] = values
		for _, v := range values {
			counts[v]++
		}
	}

	duplicateSet := make(map[string]struct{})
	var offenders []scraperapi.Record
	for i, rec := range records {
		offending := false
		for _, v := range perRecord[i] {
			if counts[v] > 1 {
				offending = true
				duplicateSet[v] = struct{}{}
			}
		}
		if offending {
			offenders = append(offenders, rec)
		}
	}

	duplicates := make([]string, 0, len(duplicateSet))
	for v := range duplicateSet {
		duplicates = append(duplicates, v)
	}
	sort.Strings(duplicates)

	return len(records), offenders, duplicates, nil
}

// valuesOf extracts the countable values of one record. Blanks yield nothing.
func (m *UniqueValuesMatcher) valuesOf(rec scraperapi.Record) ([]string, error) {
	raw := rec[m.field]
	if isBlank(raw) {
		return nil, nil
	}
	if m.subfield == "" {
		return []string{stringValue(raw)}, nil
	}

	fv := decodeValue(raw)
	switch fv.shape {
	case shapeObject:
		sub := fv.object[m.subfield]
		if isBlank(sub) {
			return nil, nil
		}
		return []string{stringValue(sub)}, nil
	case shapeObjectList:
		var values []string
		for _, obj := range fv.objects {
			sub := obj[m.subfield]
			if isBlank(sub) {
				continue
			}
			values = append(values, stringValue(sub))
		}
		return values, nil
	default:
		return nil, fmt.Errorf("%w: %s in record %s",
			ErrUnsupportedShape, fieldTarget(m.field, m.subfield), describeRecords([]scraperapi.Record{rec}))
	}
}
