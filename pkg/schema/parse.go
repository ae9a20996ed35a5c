package schema

import (
	"strings"

	"github.com/molssi-seamm/anistep/pkg/errors"
)

// Parse validates the envelope line of raw worker output and decodes
// the JSON payload that follows it. family is the schema family the
// caller expects, normally ResponseFamily.
//
// The envelope checks run in order, each failing with the quoted first
// line:
//  1. the line must start with "!MolSSI";
//  2. it must split into at least three whitespace tokens;
//  3. the second token must equal family.
func Parse(raw []byte, family string) (*Document, error) {
	line, rest := splitEnvelope(raw)

	if !strings.HasPrefix(line, Organization) {
		return nil, errors.Newf(errors.ErrEnvelopeInvalid,
			"Output file is not a MolSSI schema file, organization is not MolSSI: '%s'", line)
	}

	fields := strings.Fields(line)
	if len(fields) < 3 {
		return nil, errors.Newf(errors.ErrEnvelopeInvalid,
			"Output file is not a MolSSI schema file: '%s'", line)
	}

	if fields[1] != family {
		return nil, errors.Newf(errors.ErrEnvelopeInvalid,
			"Output file is not a CMS schema file: '%s'", line)
	}

	return DecodeDocument(rest)
}

// splitEnvelope separates the first line from the remaining payload.
// A trailing carriage return on the line is dropped.
func splitEnvelope(raw []byte) (string, []byte) {
	s := string(raw)
	idx := strings.IndexByte(s, '\n')
	if idx < 0 {
		return strings.TrimSuffix(s, "\r"), nil
	}
	return strings.TrimSuffix(s[:idx], "\r"), raw[idx+1:]
}
