package executor

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/molssi-seamm/anistep/pkg/config"
	"github.com/molssi-seamm/anistep/pkg/errors"
	"github.com/molssi-seamm/anistep/pkg/logging"
)

// Options configure a Local runner
type Options struct {
	// Logger for run output
	Logger zerolog.Logger

	// DryRun logs the command instead of launching it
	DryRun bool

	// Timeout bounds one worker run; zero means no limit
	Timeout time.Duration
}

// Local runs the worker on this machine through /bin/sh, so the
// redirection tokens in the command template behave as written.
type Local struct {
	logger  zerolog.Logger
	dryRun  bool
	timeout time.Duration
}

var _ Runner = (*Local)(nil)

// NewLocal creates a Local runner
func NewLocal(opts Options) *Local {
	return &Local{
		logger:  opts.Logger,
		dryRun:  opts.DryRun,
		timeout: opts.Timeout,
	}
}

// Run materializes the input files, launches the worker and captures
// the return files. A launched worker is never cancelled except by
// the timeout or the caller's context.
func (l *Local) Run(ctx context.Context, spec RunSpec) (*RunResult, error) {
	if len(spec.Cmd) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "run spec has no command")
	}
	if spec.Config == nil {
		return nil, errors.New(errors.ErrInvalidInput, "run spec has no configuration")
	}

	line, err := commandLine(spec)
	if err != nil {
		return nil, err
	}

	l.logger.Info().
		Str("command", line).
		Str("directory", spec.Directory).
		Msg("Launching worker")

	if l.dryRun {
		l.logger.Info().Msg("Dry run mode - worker would be launched")
		return &RunResult{Files: map[string]FileResult{}}, nil
	}

	if err := materialize(spec); err != nil {
		return nil, err
	}

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	logging.LogCommand("/bin/sh", []string{"-c", line})
	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", line)
	if spec.Directory != "" {
		cmd.Dir = spec.Directory
	}

	// Capture output
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		l.logger.Error().
			Err(err).
			Str("command", line).
			Str("stdout", stdout.String()).
			Str("stderr", stderr.String()).
			Msg("Worker run failed")
		return nil, errors.Wrapf(err, errors.ErrWorkerRun, "running worker: %s", line)
	}

	files, err := l.collect(spec)
	if err != nil {
		return nil, err
	}

	l.logger.Debug().
		Int("returnFiles", len(files)).
		Msg("Worker run complete")

	return &RunResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
		Files:  files,
	}, nil
}

// commandLine substitutes {key} tokens from the configuration, applies
// the installation kind and joins the tokens into one shell line.
func commandLine(spec RunSpec) (string, error) {
	values := spec.Config.Map()

	pairs := make([]string, 0, len(values)*2)
	for key, value := range values {
		pairs = append(pairs, "{"+key+"}", value)
	}
	replacer := strings.NewReplacer(pairs...)

	tokens := make([]string, len(spec.Cmd))
	for i, token := range spec.Cmd {
		tokens[i] = replacer.Replace(token)
	}

	switch installation := spec.Config.Installation(); installation {
	case "", "local":
		// the code runs as-is
	case "conda":
		env, ok := spec.Config.Get(config.KeyCondaEnvironment)
		if !ok || env == "" {
			return "", errors.Newf(errors.ErrConfigInvalid,
				"conda installation for '%s' names no conda environment", spec.Config.Executor())
		}
		tokens = append([]string{"conda", "run", "--name", env}, tokens...)
	default:
		return "", errors.Newf(errors.ErrConfigInvalid,
			"unsupported installation '%s' for executor '%s'", installation, spec.Config.Executor())
	}

	return strings.Join(tokens, " "), nil
}

// materialize creates the run directory and writes the input files
func materialize(spec RunSpec) error {
	if spec.Directory != "" {
		if err := os.MkdirAll(spec.Directory, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "creating run directory %s", spec.Directory)
		}
	}

	for name, content := range spec.Files {
		path := filepath.Join(spec.Directory, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "writing %s", path)
		}
	}
	return nil
}

// collect reads the return files the worker produced. Files it did
// not produce are skipped.
func (l *Local) collect(spec RunSpec) (map[string]FileResult, error) {
	files := make(map[string]FileResult, len(spec.ReturnFiles))
	for _, name := range spec.ReturnFiles {
		path := filepath.Join(spec.Directory, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				l.logger.Debug().Str("file", name).Msg("Return file not produced")
				continue
			}
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "reading return file %s", path)
		}
		files[name] = FileResult{Path: path, Data: string(data)}
	}
	return files, nil
}
