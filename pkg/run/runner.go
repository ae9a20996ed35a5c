package run

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/molssi-seamm/anistep/pkg/config"
	"github.com/molssi-seamm/anistep/pkg/errors"
	"github.com/molssi-seamm/anistep/pkg/executor"
	"github.com/molssi-seamm/anistep/pkg/logging"
	"github.com/molssi-seamm/anistep/pkg/schema"
	"github.com/molssi-seamm/anistep/pkg/step"
)

// Files exchanged with the worker
const (
	inputFileName  = "input.json"
	outputFileName = "output.json"
	stdoutFileName = "output.txt"
	stderrFileName = "stderr.txt"
	recordFileName = "run.yaml"
)

// Options configure a Runner
type Options struct {
	// Directory is the run's working directory, created idempotently
	Directory string

	// ExecutorID selects the section of the executor ini file;
	// empty means "local"
	ExecutorID string

	// IniDir is the directory holding torchani.ini
	IniDir string

	// Version is recorded in the configuration and provenance
	Version string

	// Executor launches the worker; nil selects a Local runner
	Executor executor.Runner

	// Logger for run output
	Logger zerolog.Logger

	// DryRun writes input.json and the run record without launching
	// the worker
	DryRun bool
}

// Runner drives one worker invocation
type Runner struct {
	opts Options
}

// New creates a Runner, defaulting the executor id and the worker
// launcher.
func New(opts Options) *Runner {
	if opts.ExecutorID == "" {
		opts.ExecutorID = "local"
	}
	if opts.Executor == nil {
		opts.Executor = executor.NewLocal(executor.Options{Logger: opts.Logger})
	}
	return &Runner{opts: opts}
}

// Result is the record of one run, persisted as run.yaml in the run
// directory.
type Result struct {
	ID        string       `yaml:"id" json:"id"`
	Executor  string       `yaml:"executor" json:"executor"`
	Directory string       `yaml:"directory" json:"directory"`
	Success   bool         `yaml:"success" json:"success"`
	Duration  string       `yaml:"duration" json:"duration"`
	Steps     []StepResult `yaml:"steps" json:"steps"`
	Outputs   []string     `yaml:"outputs,omitempty" json:"outputs,omitempty"`
}

// Run executes the pipeline: build the request, resolve the executor
// configuration, launch the worker, validate and dispatch the
// response. The Result is returned alongside the error whenever the
// run got far enough to have one.
func (r *Runner) Run(ctx context.Context, nodes []step.Node) (*Result, error) {
	start := time.Now()
	logger := r.opts.Logger
	defer logging.LogOperationStart(logger, "worker run")()

	if r.opts.Directory != "" {
		if err := os.MkdirAll(r.opts.Directory, 0755); err != nil {
			return nil, errors.Wrapf(err, errors.ErrDirCreate,
				"creating run directory %s", r.opts.Directory)
		}
	}

	doc, err := BuildRequest(nodes)
	if err != nil {
		return nil, err
	}
	input, err := schema.Encode(doc)
	if err != nil {
		return nil, err
	}
	logger.Debug().Msgf("%s:\n%s", inputFileName, input)

	resolver := &config.Resolver{
		IniDir:  r.opts.IniDir,
		Version: r.opts.Version,
		Logger:  logger,
	}
	cfg, err := resolver.Resolve(r.opts.ExecutorID)
	if err != nil {
		return nil, err
	}

	cmd := []string{"{code}", inputFileName, ">", stdoutFileName, "2>", stderrFileName}
	returnFiles := []string{outputFileName, stdoutFileName, stderrFileName}
	logger.Info().Strs("cmd", cmd).Msg("Worker command")

	result := &Result{
		ID:        uuid.New().String(),
		Executor:  r.opts.ExecutorID,
		Directory: r.opts.Directory,
		Steps:     skippedSteps(nodes),
	}

	if r.opts.DryRun {
		return r.dryRun(result, cfg, string(input), start)
	}

	runResult, err := r.opts.Executor.Run(ctx, executor.RunSpec{
		Cmd:         cmd,
		Config:      cfg,
		Directory:   r.opts.Directory,
		Files:       map[string]string{inputFileName: string(input)},
		ReturnFiles: returnFiles,
	})
	if err != nil || runResult == nil {
		logger.Error().Err(err).Msg("There was an error running TorchANI")
		if err == nil {
			err = errors.New(errors.ErrWorkerRun, "There was an error running TorchANI")
		}
		return r.finish(result, start, err)
	}

	if runResult.Stdout != "" {
		logger.Info().Msgf("stdout:\n%s", runResult.Stdout)
	}
	if data, ok := runResult.File(stderrFileName); ok {
		if lines := FilterStderr(data); len(lines) > 0 {
			logger.Warn().Msgf("stderr:\n%s", strings.Join(lines, "\n"))
		}
	}
	result.Outputs = capturedPaths(runResult, returnFiles)

	data, ok := runResult.File(outputFileName)
	if !ok {
		err := errors.Newf(errors.ErrWorkerOutput, "worker produced no %s", outputFileName)
		logger.Error().Msg(err.Error())
		return r.finish(result, start, err)
	}

	payload, err := schema.Parse([]byte(data), schema.ResponseFamily)
	if err != nil {
		return r.finish(result, start, err)
	}

	steps, err := Dispatch(payload, nodes, logger)
	result.Steps = steps
	return r.finish(result, start, err)
}

// dryRun records what would have been launched
func (r *Runner) dryRun(result *Result, cfg *config.Config, input string, start time.Time) (*Result, error) {
	path := filepath.Join(r.opts.Directory, inputFileName)
	if err := os.WriteFile(path, []byte(input), 0644); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "writing %s", path)
	}

	r.opts.Logger.Info().
		Str("code", cfg.Code()).
		Str("installation", cfg.Installation()).
		Msg("Dry run mode - worker would be launched")

	for i := range result.Steps {
		result.Steps[i].Message = "dry run"
	}
	return r.finish(result, start, nil)
}

// finish closes out the run record and writes it, passing the error
// through.
func (r *Runner) finish(result *Result, start time.Time, err error) (*Result, error) {
	result.Success = err == nil
	result.Duration = time.Since(start).Round(time.Millisecond).String()
	r.writeRecord(result)
	return result, err
}

// writeRecord persists the run record. Failure to write it never
// fails the run.
func (r *Runner) writeRecord(result *Result) {
	data, err := yaml.Marshal(result)
	if err != nil {
		r.opts.Logger.Warn().Err(err).Msg("Could not marshal run record")
		return
	}

	path := filepath.Join(r.opts.Directory, recordFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		r.opts.Logger.Warn().Err(err).Str("path", path).Msg("Could not write run record")
	}
}

func skippedSteps(nodes []step.Node) []StepResult {
	steps := make([]StepResult, len(nodes))
	for i, node := range nodes {
		steps[i] = StepResult{Index: i, Title: node.Title(), Status: StatusSkipped}
	}
	return steps
}

func capturedPaths(runResult *executor.RunResult, names []string) []string {
	paths := make([]string, 0, len(names))
	for _, name := range names {
		if f, ok := runResult.Files[name]; ok {
			paths = append(paths, f.Path)
		}
	}
	return paths
}
