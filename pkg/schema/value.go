// Package schema implements the MolSSI document model used to talk to the
// TorchANI worker: a typed document value, an order-preserving JSON codec,
// and the "!MolSSI <name> <version>" envelope.
package schema

// Envelope and family constants
const (
	// Organization is the first token of every envelope line
	Organization = "!MolSSI"

	// InputSchemaName identifies a request document
	InputSchemaName = "cms_schema_input"

	// InputSchemaVersion is the request schema version
	InputSchemaVersion = 1

	// ResponseFamily is the schema family expected in worker responses
	ResponseFamily = "cms_schema"

	// KeySchemaName is the envelope name field of a document
	KeySchemaName = "schema_name"

	// KeySchemaVersion is the envelope version field of a document
	KeySchemaVersion = "schema_version"
)

// Kind identifies the concrete type held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
	KindMap
)

// String returns a human-readable name for the kind
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "invalid"
	}
}

// Value is one node of a request or response document. It is a tagged
// union over the JSON-representable types, keeping integers distinct
// from floats the way the worker protocol does.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	l    []*Value
	m    *Map
}

// Null returns the null value
func Null() *Value {
	return &Value{kind: KindNull}
}

// Bool returns a boolean value
func Bool(b bool) *Value {
	return &Value{kind: KindBool, b: b}
}

// Int returns an integer value
func Int(i int64) *Value {
	return &Value{kind: KindInt, i: i}
}

// Float returns a floating-point value
func Float(f float64) *Value {
	return &Value{kind: KindFloat, f: f}
}

// String returns a string value
func String(s string) *Value {
	return &Value{kind: KindString, s: s}
}

// List returns a list value holding the given items
func List(items ...*Value) *Value {
	return &Value{kind: KindList, l: items}
}

// StringList returns a list value of strings
func StringList(items []string) *Value {
	l := make([]*Value, len(items))
	for i, s := range items {
		l[i] = String(s)
	}
	return &Value{kind: KindList, l: l}
}

// FloatList returns a list value of floats
func FloatList(items []float64) *Value {
	l := make([]*Value, len(items))
	for i, f := range items {
		l[i] = Float(f)
	}
	return &Value{kind: KindList, l: l}
}

// FromMap wraps a Map as a value
func FromMap(m *Map) *Value {
	return &Value{kind: KindMap, m: m}
}

// Kind returns the kind of the value. A nil value is null.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// IsNull reports whether the value is null
func (v *Value) IsNull() bool {
	return v.Kind() == KindNull
}

// AsBool returns the boolean held by the value
func (v *Value) AsBool() (bool, bool) {
	if v == nil || v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsInt returns the integer held by the value
func (v *Value) AsInt() (int64, bool) {
	if v == nil || v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

// AsFloat returns the numeric value as a float. Integers convert,
// since the worker is free to return either form for a number.
func (v *Value) AsFloat() (float64, bool) {
	if v == nil {
		return 0, false
	}
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	}
	return 0, false
}

// AsString returns the string held by the value
func (v *Value) AsString() (string, bool) {
	if v == nil || v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// AsList returns the items held by a list value
func (v *Value) AsList() ([]*Value, bool) {
	if v == nil || v.kind != KindList {
		return nil, false
	}
	return v.l, true
}

// AsMap returns the Map held by a map value
func (v *Value) AsMap() (*Map, bool) {
	if v == nil || v.kind != KindMap {
		return nil, false
	}
	return v.m, true
}

// Map is a string-keyed map of values that preserves insertion order.
type Map struct {
	keys   []string
	values map[string]*Value
}

// NewMap returns an empty map
func NewMap() *Map {
	return &Map{values: make(map[string]*Value)}
}

// Set inserts or replaces the value for key. First insertion fixes the
// key's position in iteration order.
func (m *Map) Set(key string, v *Value) {
	if m.values == nil {
		m.values = make(map[string]*Value)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get returns the value for key
func (m *Map) Get(key string) (*Value, bool) {
	if m == nil || m.values == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Delete removes key, preserving the order of the remaining keys
func (m *Map) Delete(key string) {
	if m == nil || m.values == nil {
		return
	}
	if _, exists := m.values[key]; !exists {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of entries
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order. The slice is a copy.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// GetString returns the string value for key
func (m *Map) GetString(key string) (string, bool) {
	v, ok := m.Get(key)
	if !ok {
		return "", false
	}
	return v.AsString()
}

// GetBool returns the boolean value for key
func (m *Map) GetBool(key string) (bool, bool) {
	v, ok := m.Get(key)
	if !ok {
		return false, false
	}
	return v.AsBool()
}

// GetInt returns the integer value for key
func (m *Map) GetInt(key string) (int64, bool) {
	v, ok := m.Get(key)
	if !ok {
		return 0, false
	}
	return v.AsInt()
}

// GetFloat returns the numeric value for key as a float
func (m *Map) GetFloat(key string) (float64, bool) {
	v, ok := m.Get(key)
	if !ok {
		return 0, false
	}
	return v.AsFloat()
}

// GetMap returns the nested map for key
func (m *Map) GetMap(key string) (*Map, bool) {
	v, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	return v.AsMap()
}

// GetList returns the list items for key
func (m *Map) GetList(key string) ([]*Value, bool) {
	v, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	return v.AsList()
}

// Document is the root map of a request or response payload.
type Document struct {
	Map
}

// NewDocument returns an empty document
func NewDocument() *Document {
	return &Document{Map: Map{values: make(map[string]*Value)}}
}

// Root returns the document's map as a value, for encoding
func (d *Document) Root() *Value {
	return FromMap(&d.Map)
}
