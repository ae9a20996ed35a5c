package run

import (
	"github.com/molssi-seamm/anistep/pkg/errors"
	"github.com/molssi-seamm/anistep/pkg/schema"
	"github.com/molssi-seamm/anistep/pkg/step"
)

// BuildRequest assembles the worker request from the nodes: the
// envelope fields first, then each node's contribution in order. With
// no nodes the document carries the envelope fields only.
func BuildRequest(nodes []step.Node) (*schema.Document, error) {
	doc := schema.NewDocument()
	doc.Set(schema.KeySchemaName, schema.String(schema.InputSchemaName))
	doc.Set(schema.KeySchemaVersion, schema.Int(schema.InputSchemaVersion))

	for i, node := range nodes {
		if err := node.GetInput(doc); err != nil {
			return nil, errors.Wrapf(err, errors.ErrRequestBuild,
				"building request for step %d (%s)", i+1, node.Title())
		}
	}

	if len(nodes) > 0 {
		if err := validateRequest(doc); err != nil {
			return nil, err
		}
	}

	return doc, nil
}

// validateRequest checks the invariants a populated request must hold
func validateRequest(doc *schema.Document) error {
	if _, ok := doc.GetMap("model"); !ok {
		return errors.New(errors.ErrRequestInvalid, "request has no model")
	}
	if _, ok := doc.GetMap("molecule"); !ok {
		return errors.New(errors.ErrRequestInvalid, "request has no molecule")
	}

	driver, ok := doc.GetString("driver")
	if !ok {
		return errors.New(errors.ErrRequestInvalid, "request has no driver")
	}
	if !step.ValidDriver(driver) {
		return errors.Newf(errors.ErrRequestInvalid, "request driver '%s' is not supported", driver)
	}

	return nil
}
