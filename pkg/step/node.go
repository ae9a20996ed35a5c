// Package step defines the sub-step nodes that feed the worker
// pipeline. Each node contributes to the request document and analyzes
// its own record of the response.
package step

import (
	"github.com/molssi-seamm/anistep/pkg/schema"
)

// Driver modes a request document may ask for
const (
	DriverEnergy   = "energy"
	DriverGradient = "gradient"
)

// Node is one sub-step of a TorchANI run. The pipeline walks an
// ordered slice of nodes: GetInput in order while assembling the
// request, Analyze per matching record of the response workflow.
type Node interface {
	// Title returns the human-readable name of the step
	Title() string

	// GetInput extends the accumulating request document. Nodes may
	// create their own working directories here.
	GetInput(doc *schema.Document) error

	// Analyze consumes this step's record of the response payload.
	// stepIndex is the node's position in the run.
	Analyze(payload *schema.Document, stepIndex int) error
}

// ValidDriver reports whether driver is one of the allowed modes
func ValidDriver(driver string) bool {
	return driver == DriverEnergy || driver == DriverGradient
}

// Record returns the workflow record for stepIndex of a response
// payload, if present and well-formed.
func Record(payload *schema.Document, stepIndex int) (*schema.Map, bool) {
	records, ok := payload.GetList("workflow")
	if !ok || stepIndex < 0 || stepIndex >= len(records) {
		return nil, false
	}
	return records[stepIndex].AsMap()
}
