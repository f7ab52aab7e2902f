package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const app = "matcher"

// Actual version can be specified in build command.
var version = "unknown"

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(app)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           app,
		Short:         "matcher ranks opportunities for a candidate profile without a running backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRankCmd(v), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version: %s\n", app, version)
		},
	}
}
