package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SourceStatus is one data source's operational status string
type SourceStatus struct {
	Name   string
	Status string
}

// SourceHealth is an ordered source-name -> status association. Enumeration
// order is an observable contract (it drives health pill display order), so
// this is a slice rather than a map.
type SourceHealth []SourceStatus

// Set appends a status, or replaces it in place when the name already exists
func (h *SourceHealth) Set(name, status string) {
	for i := range *h {
		if (*h)[i].Name == name {
			(*h)[i].Status = status
			return
		}
	}
	*h = append(*h, SourceStatus{Name: name, Status: status})
}

// Get returns the status string for a source name
func (h SourceHealth) Get(name string) (string, bool) {
	for _, s := range h {
		if s.Name == name {
			return s.Status, true
		}
	}
	return "", false
}

// MarshalJSON renders the association as a JSON object, preserving order
func (h SourceHealth) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range h {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(s.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(s.Status)
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

// UnmarshalJSON walks the object tokens so document order survives decoding.
// null decodes to an empty association.
func (h *SourceHealth) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*h = nil
		return nil
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		return fmt.Errorf("source_health: expected object, got %v", tok)
	}

	out := SourceHealth{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("source_health: non-string key %v", keyTok)
		}
		var status string
		if err := dec.Decode(&status); err != nil {
			return fmt.Errorf("source_health: status for %q: %w", key, err)
		}
		out.Set(key, status)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*h = out
	return nil
}
