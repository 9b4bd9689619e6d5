// Package table implements the generic filter-form-and-table workflow shared
// by the blacklist and forecast pages: criteria in, one POST out, a snapshot
// of loosely-typed rows back, with an Idle/Loading/Success/Failed state
// machine and last-request-wins semantics on overlapping fetches.
package table

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Kind tags the scalar variant held in a cell.
type Kind int

const (
	KindNull Kind = iota
	KindText
	KindNumber
	KindDate
	KindBool
)

// dateLayouts covers the timestamp shapes the RMOS API has been seen to emit.
var dateLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999",
	"2006-01-02",
}

// Value is one cell: a tagged scalar. Text holds the raw representation for
// every kind; Number is populated for KindNumber, Date for KindDate.
type Value struct {
	Kind   Kind
	Text   string
	Number float64
	Date   time.Time
}

// String returns the raw representation, suitable for verbatim display.
func (v Value) String() string { return v.Text }

// Row is one record returned by a list endpoint: an ordered mapping from
// field name to Value. The server owns the schema; no shape is enforced
// beyond "JSON object of scalars". Key order is the server's, which is what
// drives the rendered column order.
type Row struct {
	keys   []string
	values map[string]Value
}

// Keys returns the field names in server order.
func (r *Row) Keys() []string { return r.keys }

// Get returns the cell for name and whether the row has it.
func (r *Row) Get(name string) (Value, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Text returns the raw text of the named cell, or "" when absent or null.
func (r *Row) Text(name string) string {
	v, ok := r.values[name]
	if !ok || v.Kind == KindNull {
		return ""
	}
	return v.Text
}

// Len returns the number of fields.
func (r *Row) Len() int { return len(r.keys) }

// UnmarshalJSON decodes a flat JSON object while preserving key order,
// which encoding/json's map decoding would lose.
func (r *Row) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("row: expected object, got %v", tok)
	}

	r.keys = nil
	r.values = make(map[string]Value)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)

		valTok, err := dec.Token()
		if err != nil {
			return err
		}

		v, err := scalarValue(valTok, dec)
		if err != nil {
			return fmt.Errorf("row: field %q: %w", key, err)
		}

		if _, dup := r.values[key]; !dup {
			r.keys = append(r.keys, key)
		}
		r.values[key] = v
	}

	// consume the closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON re-emits the row in key order.
func (r *Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, _ := json.Marshal(k)
		buf.Write(kb)
		buf.WriteByte(':')
		v := r.values[k]
		switch v.Kind {
		case KindNull:
			buf.WriteString("null")
		case KindNumber:
			buf.WriteString(v.Text)
		case KindBool:
			buf.WriteString(v.Text)
		default:
			vb, _ := json.Marshal(v.Text)
			buf.Write(vb)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func scalarValue(tok json.Token, dec *json.Decoder) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Value{Kind: KindNull}, nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindNumber, Text: t.String(), Number: f}, nil
	case bool:
		return Value{Kind: KindBool, Text: strconv.FormatBool(t)}, nil
	case string:
		if ts, ok := parseDate(t); ok {
			return Value{Kind: KindDate, Text: t, Date: ts}, nil
		}
		return Value{Kind: KindText, Text: t}, nil
	case json.Delim:
		// Nested structures are not scalars; the server is not expected to
		// send them, but a row with one should not kill the whole snapshot.
		// Skip the subtree and keep its raw presence as text.
		if err := skipValue(dec, t); err != nil {
			return Value{}, err
		}
		return Value{Kind: KindText, Text: ""}, nil
	default:
		return Value{}, fmt.Errorf("unsupported token %v", tok)
	}
}

func parseDate(s string) (time.Time, bool) {
	if len(s) < len("2006-01-02") {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func skipValue(dec *json.Decoder, open json.Delim) error {
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}
