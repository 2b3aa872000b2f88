package repository

import (
	"time"

	"storedesk/internal/record"
)

// Encode-side helpers. Absent optional values are written as the explicit
// null marker, never by dropping the key, so remote updates clear fields.

func setOptionalString(r record.Record, key, v string) {
	if v == "" {
		r.Clear(key)
		return
	}
	r.Set(key, v)
}

func setOptionalTime(r record.Record, key string, t *time.Time) {
	if t == nil {
		r.Clear(key)
		return
	}
	r.SetTime(key, *t)
}

func setStringList(r record.Record, key string, vs []string) {
	if len(vs) == 0 {
		r.Clear(key)
		return
	}
	r.Set(key, vs)
}

func setFloatMap(r record.Record, key string, m map[string]float64) {
	if len(m) == 0 {
		r.Clear(key)
		return
	}
	r.Set(key, m)
}

// Decode-side helpers for optional fields: missing, null, or wrong-shaped
// values fall back to the typed zero value.

func optionalString(r record.Record, key string) string {
	s, _ := r.String(key)
	return s
}

func optionalBool(r record.Record, key string) bool {
	b, _ := r.Bool(key)
	return b
}

func optionalTime(r record.Record, key string) *time.Time {
	t, ok := r.Time(key)
	if !ok {
		return nil
	}
	return &t
}

func optionalStringList(r record.Record, key string) []string {
	vs, _ := r.StringList(key)
	return vs
}

func optionalFloatMap(r record.Record, key string) map[string]float64 {
	m, _ := r.FloatMap(key)
	return m
}
