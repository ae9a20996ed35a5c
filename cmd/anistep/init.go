package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/molssi-seamm/anistep/pkg/stepfile"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "init [directory]",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		Example: MsgInitExample,
		Args:    cobra.MaximumNArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
				if err := os.MkdirAll(dir, 0755); err != nil {
					return fmt.Errorf(MsgErrWriteStarter, err)
				}
			}

			path := filepath.Join(dir, stepfile.DefaultFileName)
			if err := stepfile.WriteStarter(path); err != nil {
				return fmt.Errorf(MsgErrWriteStarter, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgStepFileCreated, path)
			fmt.Fprintf(out, MsgMoleculeHint, path)

			return nil
		},
	}
}
