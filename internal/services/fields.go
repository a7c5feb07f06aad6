package services

import (
	"bytes"
	"encoding/json"
	"strings"
)

type fieldKind int

const (
	kindText fieldKind = iota
	kindNullableText
	kindInt
	kindStatus
	kindStringList
	kindFAQs
	kindSections
	kindObject
)

// field maps one request body key to one column. Tables of fields are declared
// statically per entity; request values are always bound as parameters.
type field struct {
	Key    string
	Column string
	Kind   fieldKind
}

type fieldTable []field

// assignment is one "column = ?" pair of an UPDATE statement.
type assignment struct {
	Column string
	Value  interface{}
}

// assignments returns the SET pairs for every known key present in body, in
// table order. Unknown keys are ignored.
func (t fieldTable) assignments(body map[string]json.RawMessage) ([]assignment, error) {
	out := make([]assignment, 0, len(body))
	for _, f := range t {
		raw, ok := body[f.Key]
		if !ok {
			continue
		}
		value, err := f.decode(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, assignment{Column: f.Column, Value: value})
	}
	return out, nil
}

func (f field) decode(raw json.RawMessage) (interface{}, error) {
	isNull := len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
	invalid := ErrBadRequest("Invalid value for " + f.Key)
	switch f.Kind {
	case kindText:
		if isNull {
			return "", nil
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, invalid
		}
		return s, nil
	case kindNullableText:
		if isNull {
			return nil, nil
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, invalid
		}
		if strings.TrimSpace(s) == "" {
			return nil, nil
		}
		return s, nil
	case kindInt:
		var n int
		if isNull || json.Unmarshal(raw, &n) != nil {
			return nil, invalid
		}
		return n, nil
	case kindStatus:
		var s string
		if isNull || json.Unmarshal(raw, &s) != nil {
			return nil, invalid
		}
		return normalizeStatus(s)
	case kindStringList:
		items := []string{}
		if !isNull && json.Unmarshal(raw, &items) != nil {
			return nil, invalid
		}
		return encodeJSON(items, "[]"), nil
	case kindFAQs:
		items := []FAQ{}
		if !isNull && json.Unmarshal(raw, &items) != nil {
			return nil, invalid
		}
		return encodeJSON(items, "[]"), nil
	case kindSections:
		items := []ContentSection{}
		if !isNull && json.Unmarshal(raw, &items) != nil {
			return nil, invalid
		}
		return encodeJSON(items, "[]"), nil
	case kindObject:
		analysis := AIAnalysis{KeyPoints: []string{}, RelatedTopics: []string{}}
		if !isNull && json.Unmarshal(raw, &analysis) != nil {
			return nil, invalid
		}
		return encodeJSON(analysis, "{}"), nil
	}
	return nil, invalid
}

// buildUpdate renders "UPDATE table SET a = ?, b = ?, updated_at = ? WHERE key = ?".
func buildUpdate(table, keyColumn string, sets []assignment, updatedAt, key string) (string, []interface{}) {
	var b strings.Builder
	args := make([]interface{}, 0, len(sets)+2)
	b.WriteString("UPDATE ")
	b.WriteString(table)
	b.WriteString(" SET ")
	for _, set := range sets {
		b.WriteString(set.Column)
		b.WriteString(" = ?, ")
		args = append(args, set.Value)
	}
	b.WriteString("updated_at = ? WHERE ")
	b.WriteString(keyColumn)
	b.WriteString(" = ?")
	args = append(args, updatedAt, key)
	return b.String(), args
}

// UpdateBody decodes a PATCH-style request body into its raw fields.
func UpdateBody(data []byte) (map[string]json.RawMessage, error) {
	body := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(data)) == 0 {
		return body, nil
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, ErrBadRequest("Invalid payload")
	}
	return body, nil
}
