package scraperapi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is a single datastore row keyed by field name. Values are the raw
// decoded JSON scalars; fields holding embedded documents keep them as
// JSON-encoded strings.
type Record = map[string]any

// DataSet holds the result of a datastore query in whichever of the two wire
// shapes the platform returned it: a row list (jsondict format) or a columnar
// keys/data table (jsonlist format). Exactly one shape is populated.
type DataSet struct {
	// Records is set for jsondict responses.
	Records []Record
	// Keys and Data are set for jsonlist responses. Every row in Data has
	// one value per entry in Keys, positionally.
	Keys []string
	Data [][]any
}

// UnmarshalJSON accepts either wire shape: a JSON array of row objects, or a
// JSON object with "keys" and "data" members.
func (d *DataSet) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty dataset body")
	}

	switch trimmed[0] {
	case '[':
		var records []Record
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return err
		}
		*d = DataSet{Records: records}
		return nil
	case '{':
		var table struct {
			Keys []string `json:"keys"`
			Data [][]any  `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &table); err != nil {
			return err
		}
		*d = DataSet{Keys: table.Keys, Data: table.Data}
		return nil
	default:
		return fmt.Errorf("dataset is neither a row list nor a keys/data table")
	}
}

// RecordList returns the rows as an ordered list of records, pivoting the
// columnar form if needed. Row order is preserved in both shapes. The
// returned records are fresh maps for the columnar form but share the
// underlying maps in the row-list form; callers must not mutate them.
func (d *DataSet) RecordList() []Record {
	if d.Records != nil {
		return d.Records
	}
	records := make([]Record, 0, len(d.Data))
	for _, row := range d.Data {
		record := make(Record, len(d.Keys))
		for i, key := range d.Keys {
			if i < len(row) {
				record[key] = row[i]
			}
		}
		records = append(records, record)
	}
	return records
}

// Len returns the number of rows in either shape.
func (d *DataSet) Len() int {
	if d.Records != nil {
		return len(d.Records)
	}
	return len(d.Data)
}
