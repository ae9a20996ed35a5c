// pkg/schema/value_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test the typed document value and ordered map

package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/molssi-seamm/anistep/pkg/schema"
)

func TestMapPreservesInsertionOrder(t *testing.T) {
	m := schema.NewMap()
	m.Set("zeta", schema.Int(1))
	m.Set("alpha", schema.Int(2))
	m.Set("mu", schema.Int(3))

	assert.Equal(t, []string{"zeta", "alpha", "mu"}, m.Keys())

	// Replacing a value keeps the original position
	m.Set("alpha", schema.Int(99))
	assert.Equal(t, []string{"zeta", "alpha", "mu"}, m.Keys())

	v, ok := m.GetInt("alpha")
	require.True(t, ok)
	assert.Equal(t, int64(99), v)
}

func TestMapDelete(t *testing.T) {
	m := schema.NewMap()
	m.Set("a", schema.Int(1))
	m.Set("b", schema.Int(2))
	m.Set("c", schema.Int(3))

	m.Delete("b")

	assert.Equal(t, []string{"a", "c"}, m.Keys())
	assert.False(t, m.Has("b"))
	assert.Equal(t, 2, m.Len())

	// Deleting a missing key is a no-op
	m.Delete("missing")
	assert.Equal(t, 2, m.Len())
}

func TestValueKinds(t *testing.T) {
	tests := []struct {
		name string
		v    *schema.Value
		kind schema.Kind
	}{
		{"null", schema.Null(), schema.KindNull},
		{"bool", schema.Bool(true), schema.KindBool},
		{"int", schema.Int(42), schema.KindInt},
		{"float", schema.Float(2.5), schema.KindFloat},
		{"string", schema.String("x"), schema.KindString},
		{"list", schema.List(schema.Int(1)), schema.KindList},
		{"map", schema.FromMap(schema.NewMap()), schema.KindMap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.v.Kind())
		})
	}
}

func TestNilValueIsNull(t *testing.T) {
	var v *schema.Value
	assert.Equal(t, schema.KindNull, v.Kind())
	assert.True(t, v.IsNull())
}

func TestAsFloatAcceptsInt(t *testing.T) {
	f, ok := schema.Int(3).AsFloat()
	require.True(t, ok)
	assert.Equal(t, 3.0, f)

	f, ok = schema.Float(2.5).AsFloat()
	require.True(t, ok)
	assert.Equal(t, 2.5, f)

	_, ok = schema.String("3").AsFloat()
	assert.False(t, ok)
}

func TestAccessorsRejectWrongKind(t *testing.T) {
	v := schema.String("hello")

	_, ok := v.AsBool()
	assert.False(t, ok)
	_, ok = v.AsInt()
	assert.False(t, ok)
	_, ok = v.AsList()
	assert.False(t, ok)
	_, ok = v.AsMap()
	assert.False(t, ok)

	s, ok := v.AsString()
	require.True(t, ok)
	assert.Equal(t, "hello", s)
}

func TestTypedListConstructors(t *testing.T) {
	symbols, ok := schema.StringList([]string{"O", "H", "H"}).AsList()
	require.True(t, ok)
	require.Len(t, symbols, 3)
	s, _ := symbols[0].AsString()
	assert.Equal(t, "O", s)

	coords, ok := schema.FloatList([]float64{0.0, 1.5}).AsList()
	require.True(t, ok)
	require.Len(t, coords, 2)
	f, _ := coords[1].AsFloat()
	assert.Equal(t, 1.5, f)
}

func TestDocumentNestedAccess(t *testing.T) {
	doc := schema.NewDocument()
	model := schema.NewMap()
	model.Set("method", schema.String("ML"))
	doc.Set("model", schema.FromMap(model))

	got, ok := doc.GetMap("model")
	require.True(t, ok)
	method, ok := got.GetString("method")
	require.True(t, ok)
	assert.Equal(t, "ML", method)

	_, ok = doc.GetMap("missing")
	assert.False(t, ok)
}
