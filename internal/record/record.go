// Package record defines the remote record store boundary: loosely typed
// key/value records, single-field predicates, and the Store interface its
// drivers implement.
package record

import (
	"math"
	"time"
)

// FieldTimeLayout is the wire format for time-valued fields. All times are
// stored UTC so lexicographic order matches chronological order.
const FieldTimeLayout = time.RFC3339

// Record is a loosely typed key/value record as held by the remote store.
// A key mapped to nil is an explicit "no value": saving it clears the field
// remotely, whereas a missing key would leave the remote value untouched.
type Record struct {
	Kind   string         `json:"kind,omitempty"`
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

// New returns an empty record of the given kind and identity.
func New(kind, id string) Record {
	return Record{Kind: kind, ID: id, Fields: make(map[string]any)}
}

// Set stores a field value.
func (r Record) Set(key string, v any) {
	r.Fields[key] = v
}

// SetTime stores a time-valued field in wire format.
func (r Record) SetTime(key string, t time.Time) {
	r.Fields[key] = t.UTC().Format(FieldTimeLayout)
}

// Clear sets a field to the explicit "no value" marker.
func (r Record) Clear(key string) {
	r.Fields[key] = nil
}

// Has reports whether a field is present and not the null marker.
func (r Record) Has(key string) bool {
	v, ok := r.Fields[key]
	return ok && v != nil
}

// String returns a string field. ok is false when the field is missing,
// null, or not a string.
func (r Record) String(key string) (string, bool) {
	s, ok := r.Fields[key].(string)
	return s, ok
}

// Bool returns a boolean field.
func (r Record) Bool(key string) (bool, bool) {
	b, ok := r.Fields[key].(bool)
	return b, ok
}

// Float returns a numeric field. JSON transports numbers as float64;
// integer values set in-process are accepted too. Non-finite values are
// rejected.
func (r Record) Float(key string) (float64, bool) {
	var f float64
	switch v := r.Fields[key].(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Time returns a time-valued field parsed from wire format.
func (r Record) Time(key string) (time.Time, bool) {
	s, ok := r.Fields[key].(string)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(FieldTimeLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// StringList returns a list-of-strings field. JSON transports lists as
// []any; in-process writers may set []string directly.
func (r Record) StringList(key string) ([]string, bool) {
	switch v := r.Fields[key].(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

// FloatMap returns a string-to-number mapping field. Non-finite values
// reject the whole field.
func (r Record) FloatMap(key string) (map[string]float64, bool) {
	switch v := r.Fields[key].(type) {
	case map[string]float64:
		for _, f := range v {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, false
			}
		}
		return v, true
	case map[string]any:
		out := make(map[string]float64, len(v))
		for name, e := range v {
			var f float64
			switch n := e.(type) {
			case float64:
				f = n
			case int:
				f = float64(n)
			default:
				return nil, false
			}
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, false
			}
			out[name] = f
		}
		return out, true
	}
	return nil, false
}

// Clone returns a copy of the record with its own fields map. List and map
// values are copied one level deep, which covers every shape the codecs
// produce.
func (r Record) Clone() Record {
	out := Record{Kind: r.Kind, ID: r.ID, Fields: make(map[string]any, len(r.Fields))}
	for k, v := range r.Fields {
		switch t := v.(type) {
		case []string:
			out.Fields[k] = append([]string(nil), t...)
		case []any:
			out.Fields[k] = append([]any(nil), t...)
		case map[string]float64:
			m := make(map[string]float64, len(t))
			for mk, mv := range t {
				m[mk] = mv
			}
			out.Fields[k] = m
		case map[string]any:
			m := make(map[string]any, len(t))
			for mk, mv := range t {
				m[mk] = mv
			}
			out.Fields[k] = m
		default:
			out.Fields[k] = v
		}
	}
	return out
}
