// Package run drives one worker invocation end to end: it assembles
// the request document from the step nodes, resolves the executor
// configuration, launches the worker, validates the response envelope
// and dispatches each workflow record back to its node.
//
// The pipeline is synchronous and single-shot. A run that cannot
// launch the worker is reported and recorded, never retried.
package run
