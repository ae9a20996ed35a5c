package schema

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	gjson "github.com/goccy/go-json"

	"github.com/molssi-seamm/anistep/pkg/errors"
)

const indentUnit = "    "

// Encode renders a document as its envelope line followed by the
// pretty-printed JSON payload, the exact form written to input.json:
//
//	!MolSSI cms_schema_input 1
//	{
//	    ...
//	}
//
// The envelope fields are read from the document itself.
func Encode(doc *Document) ([]byte, error) {
	name, ok := doc.GetString(KeySchemaName)
	if !ok {
		return nil, errors.Newf(errors.ErrEnvelopeInvalid, "document has no %s", KeySchemaName)
	}

	version, err := envelopeVersion(doc)
	if err != nil {
		return nil, err
	}

	body, err := EncodeJSON(doc.Root())
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s %s %s\n", Organization, name, version)
	buf.Write(body)
	return buf.Bytes(), nil
}

// envelopeVersion renders the document's schema_version for the
// envelope line. Integer and string forms are both accepted.
func envelopeVersion(doc *Document) (string, error) {
	v, ok := doc.Get(KeySchemaVersion)
	if !ok {
		return "", errors.Newf(errors.ErrEnvelopeInvalid, "document has no %s", KeySchemaVersion)
	}

	switch v.Kind() {
	case KindInt:
		i, _ := v.AsInt()
		return strconv.FormatInt(i, 10), nil
	case KindString:
		s, _ := v.AsString()
		return s, nil
	}

	return "", errors.Newf(errors.ErrEnvelopeInvalid, "%s is %s, not an integer or string",
		KeySchemaVersion, v.Kind())
}

// EncodeJSON renders a value as pretty JSON with 4-space indentation
// and object keys sorted, the layout the worker expects in input.json.
func EncodeJSON(v *Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, v, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v *Value, depth int) error {
	switch v.Kind() {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		b, _ := v.AsBool()
		buf.WriteString(strconv.FormatBool(b))
	case KindInt:
		i, _ := v.AsInt()
		buf.WriteString(strconv.FormatInt(i, 10))
	case KindFloat:
		f, _ := v.AsFloat()
		s, err := formatFloat(f)
		if err != nil {
			return err
		}
		buf.WriteString(s)
	case KindString:
		s, _ := v.AsString()
		q, err := quoteString(s)
		if err != nil {
			return err
		}
		buf.WriteString(q)
	case KindList:
		return encodeList(buf, v, depth)
	case KindMap:
		return encodeMap(buf, v, depth)
	default:
		return errors.Newf(errors.ErrInternal, "cannot encode value of kind %s", v.Kind())
	}
	return nil
}

func encodeList(buf *bytes.Buffer, v *Value, depth int) error {
	items, _ := v.AsList()
	if len(items) == 0 {
		buf.WriteString("[]")
		return nil
	}

	inner := strings.Repeat(indentUnit, depth+1)
	buf.WriteString("[\n")
	for i, item := range items {
		buf.WriteString(inner)
		if err := encodeValue(buf, item, depth+1); err != nil {
			return err
		}
		if i < len(items)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString(strings.Repeat(indentUnit, depth))
	buf.WriteByte(']')
	return nil
}

func encodeMap(buf *bytes.Buffer, v *Value, depth int) error {
	m, _ := v.AsMap()
	if m.Len() == 0 {
		buf.WriteString("{}")
		return nil
	}

	keys := m.Keys()
	sort.Strings(keys)

	inner := strings.Repeat(indentUnit, depth+1)
	buf.WriteString("{\n")
	for i, key := range keys {
		buf.WriteString(inner)
		q, err := quoteString(key)
		if err != nil {
			return err
		}
		buf.WriteString(q)
		buf.WriteString(": ")

		item, _ := m.Get(key)
		if err := encodeValue(buf, item, depth+1); err != nil {
			return err
		}
		if i < len(keys)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString(strings.Repeat(indentUnit, depth))
	buf.WriteByte('}')
	return nil
}

// formatFloat renders a float so that it re-decodes as a float: whole
// values keep a trailing ".0" rather than collapsing to integer form.
func formatFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", errors.Newf(errors.ErrInvalidInput, "cannot encode non-finite number %v", f)
	}

	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s, nil
}

// quoteString escapes a string as a JSON literal, without HTML escaping.
func quoteString(s string) (string, error) {
	var buf bytes.Buffer
	enc := gjson.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	// Encode appends a newline
	return strings.TrimRight(buf.String(), "\n"), nil
}
