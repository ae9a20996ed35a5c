// Package executor runs the external worker program for a step: it
// materializes input files, launches the worker and captures the
// files the worker leaves behind.
package executor

import (
	"context"

	"github.com/molssi-seamm/anistep/pkg/config"
)

// RunSpec describes one worker invocation.
type RunSpec struct {
	// Cmd is the command template. Tokens of the form {key} are
	// substituted from Config before the line is run; ">" and "2>"
	// behave as shell redirections.
	Cmd []string

	// Config is the resolved executor configuration
	Config *config.Config

	// Directory is the working directory for the run, created if
	// missing
	Directory string

	// Files are materialized into Directory before launch, name to
	// content
	Files map[string]string

	// ReturnFiles are captured from Directory after the run. Files
	// the worker did not produce are skipped.
	ReturnFiles []string
}

// FileResult is one captured return file.
type FileResult struct {
	// Path is where the file was read from
	Path string

	// Data is the file content
	Data string
}

// RunResult is what came back from a worker run.
type RunResult struct {
	// Stdout and Stderr are the streams of the launching shell, not
	// of the worker itself when the command template redirects them
	Stdout string
	Stderr string

	// Files holds the captured return files by name
	Files map[string]FileResult
}

// File returns the data of a captured return file, if present.
func (r *RunResult) File(name string) (string, bool) {
	f, ok := r.Files[name]
	if !ok {
		return "", false
	}
	return f.Data, true
}

// Runner launches the worker for one run. A nil result or an error
// means the worker could not be started or did not complete.
type Runner interface {
	Run(ctx context.Context, spec RunSpec) (*RunResult, error)
}
