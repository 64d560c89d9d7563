package models

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Manifest is the document written next to the category directories.
// Field order here is the key order in the encoded JSON; categories are
// written in Order, then any keys Order does not list, sorted.
type Manifest struct {
	Version     string                      `json:"version"`
	LastUpdated string                      `json:"lastUpdated,omitempty"` // YYYY-MM-DD
	Categories  map[string]ManifestCategory `json:"categories"`
	Order       []string                    `json:"-"`
}

type ManifestCategory struct {
	Name       string          `json:"name"`
	Emoji      string          `json:"emoji"`
	ImageCount int             `json:"imageCount,omitempty"`
	Images     []ManifestEntry `json:"images"`
}

type ManifestEntry struct {
	ID               string   `json:"id"`
	Filename         string   `json:"filename"`
	Title            string   `json:"title"`
	Photographer     string   `json:"photographer"`
	Source           string   `json:"source"`
	DifficultyLevels []string `json:"difficulty_levels"`
	Tags             []string `json:"tags,omitempty"`
}

// Keys returns the category keys in encoding order.
func (m Manifest) Keys() []string {
	keys := make([]string, 0, len(m.Categories))
	seen := make(map[string]bool, len(m.Categories))
	for _, k := range m.Order {
		if _, ok := m.Categories[k]; ok && !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	var rest []string
	for k := range m.Categories {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

func (m Manifest) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"version":`)
	if err := appendJSON(&buf, m.Version); err != nil {
		return nil, err
	}
	if m.LastUpdated != "" {
		buf.WriteString(`,"lastUpdated":`)
		if err := appendJSON(&buf, m.LastUpdated); err != nil {
			return nil, err
		}
	}
	buf.WriteString(`,"categories":{`)
	for i, k := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := appendJSON(&buf, k); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := appendJSON(&buf, m.Categories[k]); err != nil {
			return nil, err
		}
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}

// UnmarshalJSON also records the document's category key order.
func (m *Manifest) UnmarshalJSON(b []byte) error {
	type plain Manifest
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	var raw struct {
		Categories json.RawMessage `json:"categories"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	p.Order = objectKeys(raw.Categories)
	*m = Manifest(p)
	return nil
}

// appendJSON leaves '&', '<' and '>' unescaped; the encoder's trailing
// newline is dropped when the outer encoder compacts the result.
func appendJSON(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func objectKeys(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	if t, err := dec.Token(); err != nil || t != json.Delim('{') {
		return nil
	}
	var keys []string
	for dec.More() {
		t, err := dec.Token()
		if err != nil {
			return nil
		}
		k, ok := t.(string)
		if !ok {
			return nil
		}
		keys = append(keys, k)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil
		}
	}
	return keys
}
