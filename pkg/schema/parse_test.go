// pkg/schema/parse_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test envelope validation of worker output

package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/molssi-seamm/anistep/pkg/errors"
	"github.com/molssi-seamm/anistep/pkg/schema"
)

func TestParseValidResponse(t *testing.T) {
	raw := []byte(`!MolSSI cms_schema 1
{
    "workflow": [
        {
            "success": true,
            "energy": -76.34912
        }
    ]
}`)

	doc, err := schema.Parse(raw, schema.ResponseFamily)
	require.NoError(t, err)

	records, ok := doc.GetList("workflow")
	require.True(t, ok)
	require.Len(t, records, 1)

	record, ok := records[0].AsMap()
	require.True(t, ok)

	success, ok := record.GetBool("success")
	require.True(t, ok)
	assert.True(t, success)

	energy, ok := record.GetFloat("energy")
	require.True(t, ok)
	assert.InDelta(t, -76.34912, energy, 1e-12)
}

func TestParseRejectsWrongOrganization(t *testing.T) {
	raw := []byte("something else entirely\n{}")

	_, err := schema.Parse(raw, schema.ResponseFamily)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrEnvelopeInvalid))
	assert.Contains(t, err.Error(),
		"Output file is not a MolSSI schema file, organization is not MolSSI: 'something else entirely'")
}

func TestParseRejectsShortEnvelope(t *testing.T) {
	raw := []byte("!MolSSI cms_schema\n{}")

	_, err := schema.Parse(raw, schema.ResponseFamily)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrEnvelopeInvalid))
	assert.Contains(t, err.Error(), "Output file is not a MolSSI schema file: '!MolSSI cms_schema'")
}

func TestParseRejectsWrongFamily(t *testing.T) {
	raw := []byte("!MolSSI qc_schema 2\n{}")

	_, err := schema.Parse(raw, schema.ResponseFamily)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrEnvelopeInvalid))
	assert.Contains(t, err.Error(), "Output file is not a CMS schema file: '!MolSSI qc_schema 2'")
}

func TestParseRejectsBadPayload(t *testing.T) {
	raw := []byte("!MolSSI cms_schema 1\n{ not json ]")

	_, err := schema.Parse(raw, schema.ResponseFamily)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSchemaParse))
}

func TestParseEmptyInput(t *testing.T) {
	_, err := schema.Parse(nil, schema.ResponseFamily)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrEnvelopeInvalid))
}

func TestParseCarriageReturns(t *testing.T) {
	raw := []byte("!MolSSI cms_schema 1\r\n{\"workflow\": []}")

	doc, err := schema.Parse(raw, schema.ResponseFamily)
	require.NoError(t, err)
	assert.True(t, doc.Has("workflow"))
}
