package run

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/molssi-seamm/anistep/pkg/errors"
	"github.com/molssi-seamm/anistep/pkg/schema"
	"github.com/molssi-seamm/anistep/pkg/step"
)

// Status of one step after a run
type Status string

const (
	// StatusOK means the step ran and was analyzed
	StatusOK Status = "ok"

	// StatusFailed means the worker or the analysis reported an error
	StatusFailed Status = "failed"

	// StatusSkipped means the step was never reached
	StatusSkipped Status = "skipped"
)

// StepResult is the outcome of one step of a run
type StepResult struct {
	Index   int    `yaml:"index" json:"index"`
	Title   string `yaml:"title" json:"title"`
	Status  Status `yaml:"status" json:"status"`
	Message string `yaml:"message,omitempty" json:"message,omitempty"`
}

// Dispatch hands each workflow record of the response payload to its
// node and reports the per-step outcomes. Records without a success
// flag are skipped with a warning; a failed record aborts with the
// worker's message.
func Dispatch(payload *schema.Document, nodes []step.Node, logger zerolog.Logger) ([]StepResult, error) {
	steps := make([]StepResult, len(nodes))
	for i, node := range nodes {
		steps[i] = StepResult{Index: i, Title: node.Title(), Status: StatusSkipped}
	}

	records, ok := payload.GetList("workflow")
	if !ok {
		return steps, errors.New(errors.ErrResponseMismatch, "response payload has no workflow list")
	}

	for i, record := range records {
		if i >= len(nodes) {
			return steps, errors.Newf(errors.ErrResponseMismatch,
				"workflow record %d has no matching step (%d steps)", i+1, len(nodes))
		}

		rec, ok := record.AsMap()
		if !ok {
			return steps, errors.Newf(errors.ErrResponseMismatch,
				"workflow record %d is not an object", i+1)
		}

		success, ok := rec.GetBool("success")
		if !ok {
			logger.Warn().Msgf("Step %d did not run", i+1)
			steps[i].Message = "did not run"
			continue
		}

		if !success {
			message, ok := rec.GetString("error")
			if !ok {
				message = fmt.Sprintf("step %d failed with no message", i+1)
			}
			steps[i].Status = StatusFailed
			steps[i].Message = message
			logger.Error().Msgf("TorchANI had an error:\n\n%s", message)
			return steps, errors.Newf(errors.ErrStepFailed, "TorchANI had an error:\n\n%s", message)
		}

		if err := nodes[i].Analyze(payload, i); err != nil {
			steps[i].Status = StatusFailed
			steps[i].Message = err.Error()
			return steps, err
		}
		steps[i].Status = StatusOK
	}

	return steps, nil
}
