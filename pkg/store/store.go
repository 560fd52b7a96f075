// Package store provides the typed key-value store that is the single
// source of truth for application data. Widgets and action handlers never
// reference each other directly; every exchange goes through the store.
package store

import "strconv"

// Kind identifies the type of a Value.
type Kind int

const (
	// KindNull indicates an explicit null value.
	KindNull Kind = iota
	// KindString indicates a string value.
	KindString
	// KindNumber indicates a floating-point value.
	KindNumber
	// KindBool indicates a boolean value.
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "null"
	}
}

// Value is a tagged value held by the store. The zero Value is Null.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
}

// Null returns the null value.
func Null() Value {
	return Value{}
}

// String wraps a string value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number wraps a floating-point value.
func Number(n float64) Value {
	return Value{kind: KindNumber, num: n}
}

// Bool wraps a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Kind returns the tag of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// AsString returns the string payload. Valid only for KindString.
func (v Value) AsString() string {
	return v.str
}

// AsNumber returns the numeric payload. Valid only for KindNumber.
func (v Value) AsNumber() float64 {
	return v.num
}

// AsBool returns the boolean payload. Valid only for KindBool.
func (v Value) AsBool() bool {
	return v.b
}

// Display renders the value for display bindings. Numbers use the shortest
// decimal form (84 renders as "84", not "84.000000"); null renders empty.
func (v Value) Display() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// Store maps string keys to tagged values. Entries are created lazily on
// first write and persist until overwritten; there is no expiry. No
// operation fails: absence is reported through ok flags or empty strings.
//
// The store performs no key validation. Callers establish namespaces by
// convention only (e.g. "inputs.", "outputs.", "errors.action.").
type Store struct {
	values map[string]Value
}

// New creates an empty store.
func New() *Store {
	return &Store{values: make(map[string]Value)}
}

// Get returns the value for key, if present.
func (s *Store) Get(key string) (Value, bool) {
	v, ok := s.values[key]
	return v, ok
}

// GetString returns the display rendering of the value for key, or the
// empty string if the key is absent. Used by display bindings, which treat
// empty as "nothing to show".
func (s *Store) GetString(key string) string {
	v, ok := s.values[key]
	if !ok {
		return ""
	}
	return v.Display()
}

// Set inserts or overwrites the value for key.
func (s *Store) Set(key string, v Value) {
	s.values[key] = v
}

// SetString is shorthand for Set(key, String(v)).
func (s *Store) SetString(key, v string) {
	s.values[key] = String(v)
}

// Keys returns the existing keys in unspecified order.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.values)
}
