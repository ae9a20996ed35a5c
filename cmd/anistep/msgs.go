package main

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Run TorchANI calculations from SEAMM-style step files"
	MsgRunShort        = "Run the steps in a step file"
	MsgConfigShort     = "Show the resolved configuration for an executor"
	MsgInitShort       = "Write a starter step file"
	MsgTopicsShort     = "List all topics or show help for a topic"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"

	// Status messages
	MsgStepFileCreated = "Created %s\n"
	MsgMoleculeHint    = "Point 'molecule' at an XYZ file and run 'anistep run %s'.\n"
	MsgConfigHeader    = "Executor '%s' resolved from %s:\n"

	// Error messages
	MsgErrLoadStepFile = "failed to load step file: %w"
	MsgErrBuildNodes   = "failed to build steps: %w"
	MsgErrInitPaths    = "failed to initialize paths: %w"
	MsgErrResolve      = "failed to resolve executor configuration: %w"
	MsgErrWriteStarter = "failed to write starter step file: %w"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun    = "Prepare the run without launching the worker"
	MsgFlagExecutor  = "Executor section of torchani.ini to use (overrides the step file)"
	MsgFlagDirectory = "Directory for run files (overrides the step file)"
	MsgFlagFormat    = "Output format: auto, term, text or json"
	MsgFlagManDir    = "Directory to write the man pages to"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/run-long.txt
	msgRunLongRaw string
	MsgRunLong    = strings.TrimSpace(msgRunLongRaw)

	//go:embed msgs/run-example.txt
	msgRunExampleRaw string
	MsgRunExample    = strings.TrimSpace(msgRunExampleRaw)

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/config-example.txt
	msgConfigExampleRaw string
	MsgConfigExample    = strings.TrimSpace(msgConfigExampleRaw)

	//go:embed msgs/init-long.txt
	msgInitLongRaw string
	MsgInitLong    = strings.TrimSpace(msgInitLongRaw)

	//go:embed msgs/init-example.txt
	msgInitExampleRaw string
	MsgInitExample    = strings.TrimSpace(msgInitExampleRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
