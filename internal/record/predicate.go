package record

import "time"

// Op identifies the comparison a predicate applies.
type Op string

const (
	OpEquals   Op = "eq"
	OpContains Op = "contains"
	OpBetween  Op = "between"
)

// Predicate constrains a query to exactly one indexed scope field: an
// equality or membership test, or a time range. Queries never combine
// predicates.
type Predicate struct {
	Field string `json:"field"`
	Op    Op     `json:"op"`
	Value any    `json:"value,omitempty"`
	Lo    string `json:"lo,omitempty"`
	Hi    string `json:"hi,omitempty"`
}

// Equals matches records whose field equals value.
func Equals(field string, value any) Predicate {
	return Predicate{Field: field, Op: OpEquals, Value: value}
}

// Contains matches records whose list-valued field contains value.
func Contains(field, value string) Predicate {
	return Predicate{Field: field, Op: OpContains, Value: value}
}

// Between matches records whose time-valued field lies in [lo, hi].
func Between(field string, lo, hi time.Time) Predicate {
	return Predicate{
		Field: field,
		Op:    OpBetween,
		Lo:    lo.UTC().Format(FieldTimeLayout),
		Hi:    hi.UTC().Format(FieldTimeLayout),
	}
}

// Match reports whether the record satisfies the predicate. Drivers that
// cannot push the predicate into their backend evaluate it here.
func (p Predicate) Match(r Record) bool {
	switch p.Op {
	case OpEquals:
		if s, ok := r.String(p.Field); ok {
			want, ok := p.Value.(string)
			return ok && s == want
		}
		if f, ok := r.Float(p.Field); ok {
			switch want := p.Value.(type) {
			case float64:
				return f == want
			case int:
				return f == float64(want)
			}
			return false
		}
		if b, ok := r.Bool(p.Field); ok {
			want, ok := p.Value.(bool)
			return ok && b == want
		}
		return false

	case OpContains:
		want, ok := p.Value.(string)
		if !ok {
			return false
		}
		list, ok := r.StringList(p.Field)
		if !ok {
			return false
		}
		for _, v := range list {
			if v == want {
				return true
			}
		}
		return false

	case OpBetween:
		t, ok := r.Time(p.Field)
		if !ok {
			return false
		}
		s := t.UTC().Format(FieldTimeLayout)
		return p.Lo <= s && s <= p.Hi
	}
	return false
}
