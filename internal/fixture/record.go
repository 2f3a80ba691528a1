package fixture

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is one entry of a fixture file in the dumpdata layout.
type Record struct {
	Model  string          `json:"model"`
	PK     string          `json:"pk"`
	Fields json.RawMessage `json:"fields"`
}

// UnmarshalJSON accepts the pk as a string or, as dumpdata writes integer
// keys, a number.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw struct {
		Model  string          `json:"model"`
		PK     json.RawMessage `json:"pk"`
		Fields json.RawMessage `json:"fields"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	pk, err := decodePK(raw.PK)
	if err != nil {
		return err
	}
	r.Model, r.PK, r.Fields = raw.Model, pk, raw.Fields
	return nil
}

func decodePK(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("pk %s: %w", raw, err)
	}
	return n.String(), nil
}

// Parse decodes a fixture file.
func Parse(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	for i, rec := range records {
		if rec.Model == "" {
			return nil, fmt.Errorf("record %d: missing model", i)
		}
		if rec.PK == "" {
			return nil, fmt.Errorf("record %d (%s): missing pk", i, rec.Model)
		}
	}
	return records, nil
}
