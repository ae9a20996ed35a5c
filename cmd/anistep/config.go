package main

import (
	"fmt"

	"github.com/molssi-seamm/anistep/internal/version"
	"github.com/molssi-seamm/anistep/pkg/config"
	"github.com/molssi-seamm/anistep/pkg/logging"
	"github.com/molssi-seamm/anistep/pkg/paths"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "config <executor-id>",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		Example: MsgConfigExample,
		Args:    cobra.ExactArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := paths.New("")
			if err != nil {
				return fmt.Errorf(MsgErrInitPaths, err)
			}

			resolver := &config.Resolver{
				IniDir:  p.SeammRoot(),
				Version: version.Version,
				Logger:  logging.GetLogger("cmd.config"),
			}
			cfg, err := resolver.Resolve(args[0])
			if err != nil {
				return fmt.Errorf(MsgErrResolve, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgConfigHeader, cfg.Executor(), cfg.Source())
			for _, key := range cfg.Keys() {
				value, _ := cfg.Get(key)
				fmt.Fprintf(out, "  %s = %s\n", key, value)
			}

			return nil
		},
	}
}
