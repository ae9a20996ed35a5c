package schema

import (
	"bytes"
	"fmt"
	"strconv"

	gjson "github.com/goccy/go-json"

	"github.com/molssi-seamm/anistep/pkg/errors"
)

// Decode parses JSON text into a Value. Object key order is preserved
// and integers stay distinct from floats, so a decoded document can be
// re-encoded without drift.
func Decode(data []byte) (*Value, error) {
	dec := gjson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSchemaParse, "invalid JSON payload")
	}

	// Reject trailing data after the first value
	if dec.More() {
		return nil, errors.New(errors.ErrSchemaParse, "trailing data after JSON payload")
	}

	return v, nil
}

// DecodeDocument parses JSON text whose root must be an object.
func DecodeDocument(data []byte) (*Document, error) {
	v, err := Decode(data)
	if err != nil {
		return nil, err
	}

	m, ok := v.AsMap()
	if !ok {
		return nil, errors.Newf(errors.ErrSchemaParse, "payload root is %s, not an object", v.Kind())
	}

	return &Document{Map: *m}, nil
}

func decodeValue(dec *gjson.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case gjson.Delim:
		switch t {
		case '{':
			return decodeMap(dec)
		case '[':
			return decodeList(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", t.String())
	case bool:
		return Bool(t), nil
	case gjson.Number:
		return decodeNumber(t)
	case string:
		return String(t), nil
	case nil:
		return Null(), nil
	}

	return nil, fmt.Errorf("unexpected token %v", tok)
}

// decodeNumber keeps whole JSON numbers as integers. Anything with a
// fraction or exponent becomes a float, as in the worker protocol.
func decodeNumber(n gjson.Number) (*Value, error) {
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		return Int(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return nil, fmt.Errorf("invalid number %q: %w", n.String(), err)
	}
	return Float(f), nil
}

func decodeMap(dec *gjson.Decoder) (*Value, error) {
	m := NewMap()

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is %T, not a string", keyTok)
		}

		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		m.Set(key, v)
	}

	// Consume the closing brace
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return FromMap(m), nil
}

func decodeList(dec *gjson.Decoder) (*Value, error) {
	var items []*Value

	for dec.More() {
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}

	// Consume the closing bracket
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return List(items...), nil
}
