package main

import (
	"fmt"
	"io"
	"os"

	gjson "github.com/goccy/go-json"
	"github.com/molssi-seamm/anistep/internal/version"
	"github.com/molssi-seamm/anistep/pkg/logging"
	"github.com/molssi-seamm/anistep/pkg/paths"
	"github.com/molssi-seamm/anistep/pkg/run"
	"github.com/molssi-seamm/anistep/pkg/stepfile"
	"github.com/molssi-seamm/anistep/pkg/style"
	"github.com/molssi-seamm/anistep/pkg/ui"
	"github.com/spf13/cobra"
)

// DefaultRunDir is used when neither the step file nor the command
// line names a run directory.
const DefaultRunDir = "torchani"

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "run <step-file>",
		Short:   MsgRunShort,
		Long:    MsgRunLong,
		Example: MsgRunExample,
		Args:    cobra.ExactArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			executorFlag, _ := cmd.Flags().GetString("executor")
			directoryFlag, _ := cmd.Flags().GetString("directory")
			formatFlag, _ := cmd.Flags().GetString("format")
			dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")

			format, err := ui.Resolve(formatFlag, os.Stdout)
			if err != nil {
				return err
			}

			f, err := stepfile.Load(args[0])
			if err != nil {
				return fmt.Errorf(MsgErrLoadStepFile, err)
			}

			// Command line overrides the step file
			executorID := executorFlag
			if executorID == "" {
				executorID = f.Executor
			}
			runDir := directoryFlag
			if runDir == "" {
				runDir = f.Directory
			}
			if runDir == "" {
				runDir = DefaultRunDir
			}

			p, err := paths.New("")
			if err != nil {
				return fmt.Errorf(MsgErrInitPaths, err)
			}
			runDir, err = p.NormalizePath(runDir)
			if err != nil {
				return err
			}

			logger := logging.GetLogger("cmd.run")
			logger.Info().
				Str("step_file", args[0]).
				Str("executor", executorID).
				Str("directory", runDir).
				Bool("dry_run", dryRun).
				Msg("Running step file")

			nodes, err := f.Nodes(stepfile.NodeOptions{
				Directory: runDir,
				Version:   version.Version,
				Logger:    logger,
			})
			if err != nil {
				return fmt.Errorf(MsgErrBuildNodes, err)
			}

			runner := run.New(run.Options{
				Directory:  runDir,
				ExecutorID: executorID,
				IniDir:     p.SeammRoot(),
				Version:    version.Version,
				Logger:     logger,
				DryRun:     dryRun,
			})

			// A failed run still carries a result worth showing
			result, runErr := runner.Run(cmd.Context(), nodes)
			if result != nil {
				if err := renderResult(cmd.OutOrStdout(), format, f.Title, result); err != nil {
					return err
				}
			}

			return runErr
		},
	}

	cmd.Flags().StringP("executor", "e", "", MsgFlagExecutor)
	cmd.Flags().StringP("directory", "d", "", MsgFlagDirectory)
	cmd.Flags().StringP("format", "f", "auto", MsgFlagFormat)

	return cmd
}

// renderResult writes the run report in the requested format.
func renderResult(w io.Writer, format ui.Format, title string, result *run.Result) error {
	switch format {
	case ui.FormatJSON:
		data, err := gjson.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
	case ui.FormatText:
		fmt.Fprintln(w, style.RenderRunReportPlain(title, result))
	default:
		fmt.Fprintln(w, style.RenderRunReport(title, result))
	}
	return nil
}
