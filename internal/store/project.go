package store

import (
	"bytes"
	"encoding/json"
)

// Project is one row of the projects table. Columns beyond project_id and
// project_name are opaque passthrough; the on-disk column order is part of
// the wire contract, so JSON keys are emitted in that order.
type Project struct {
	Columns []string
	Values  []string
}

// Get returns the value under the named column, or "" if absent.
func (p Project) Get(name string) string {
	for i, col := range p.Columns {
		if col == name && i < len(p.Values) {
			return p.Values[i]
		}
	}
	return ""
}

// MarshalJSON emits the row as an object with keys in column order.
func (p Project) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range p.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value := ""
		if i < len(p.Values) {
			value = p.Values[i]
		}
		val, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
