package gateway

import "encoding/json"

// Condition is one [field, operator, value] filter triple.
type Condition struct {
	Field string
	Op    string
	Value any
}

func (c Condition) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]any{c.Field, c.Op, c.Value})
}

// Domain is an ordered list of conditions, implicitly AND-combined by the
// server. A nil or empty Domain matches everything.
type Domain []Condition

func Eq(field string, value any) Condition {
	return Condition{Field: field, Op: "=", Value: value}
}

func Gte(field string, value any) Condition {
	return Condition{Field: field, Op: ">=", Value: value}
}

func Lte(field string, value any) Condition {
	return Condition{Field: field, Op: "<=", Value: value}
}

// ILike matches case-insensitive substrings, the server's ilike operator.
func ILike(field string, value string) Condition {
	return Condition{Field: field, Op: "ilike", Value: value}
}

// Unset matches records where field has no value (stored as false).
func Unset(field string) Condition {
	return Condition{Field: field, Op: "=", Value: false}
}
