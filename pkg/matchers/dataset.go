package matchers

import (
	"fmt"

	"github.com/datahutch/scrapecheck/pkg/scraperapi"
)

// normalizeDataset converts any accepted dataset shape into an ordered record
// list, pivoting the columnar keys/data form positionally. The input is never
// mutated.
func normalizeDataset(data any) ([]scraperapi.Record, error) {
	switch v := data.(type) {
	case *scraperapi.DataSet:
		if v == nil {
			return nil, ErrInvalidDataset
		}
		return v.RecordList(), nil
	case scraperapi.DataSet:
		return v.RecordList(), nil
	case []scraperapi.Record:
		return v, nil
	case []any:
		records := make([]scraperapi.Record, 0, len(v))
		for _, el := range v {
			rec, ok := el.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: row %v is not a record", ErrInvalidDataset, el)
			}
			records = append(records, rec)
		}
		return records, nil
	case map[string]any:
		return pivotRawTable(v)
	default:
		return nil, ErrInvalidDataset
	}
}

// pivotRawTable handles a keys/data table straight out of a JSON decoder.
func pivotRawTable(table map[string]any) ([]scraperapi.Record, error) {
	rawKeys, ok := table["keys"].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: missing keys list", ErrInvalidDataset)
	}
	rawData, ok := table["data"].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: missing data rows", ErrInvalidDataset)
	}

	ds := scraperapi.DataSet{Keys: make([]string, 0, len(rawKeys))}
	for _, k := range rawKeys {
		key, ok := k.(string)
		if !ok {
			return nil, fmt.Errorf("%w: key %v is not a string", ErrInvalidDataset, k)
		}
		ds.Keys = append(ds.Keys, key)
	}
	for _, r := range rawData {
		row, ok := r.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: row %v is not a value list", ErrInvalidDataset, r)
		}
		ds.Data = append(ds.Data, row)
	}
	return ds.RecordList(), nil
}
