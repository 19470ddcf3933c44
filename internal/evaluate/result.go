package evaluate

import (
	"bytes"
	"encoding/json"
)

// Status classifies the outcome of parsing one value
type Status string

const (
	OK           Status = "ok"
	Unrecognized Status = "unrecognized"
	Invalid      Status = "invalid"
)

// Field is one named output of a successful parse
type Field struct {
	Name  string
	Value any
}

// Fields marshals to a JSON object that keeps insertion order
type Fields []Field

func (fs Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Get returns the value stored under name
func (fs Fields) Get(name string) (any, bool) {
	for _, f := range fs {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Result is the outcome of parsing one input value
type Result struct {
	Line   int    `json:"line,omitempty"`
	Kind   Kind   `json:"kind"`
	Input  string `json:"input"`
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
	Fields Fields `json:"value,omitempty"`
}
