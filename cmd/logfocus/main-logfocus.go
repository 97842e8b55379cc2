// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/logfocus/logfocus/pkg/base"
	"github.com/spf13/cobra"
)

// LogFocusVersion is overridden at build time
var LogFocusVersion = base.LogFocusVersion

// LogFocusBuildTime is the build timestamp
var LogFocusBuildTime = ""

func makeRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "logfocus",
		Short: "logfocus highlights and filters log files with regex filters",
		Long: `logfocus keeps projects of regex filters, organized in groups, and applies them to log files:
highlighting matching lines, counting matches, and producing a focused view that keeps only the
lines your filters include and drops the lines your exclusion filters match.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().Bool("dev", false, "Run in development mode")
	rootCmd.PersistentFlags().String("settings", "", "Settings file (default "+base.GetDefaultSettingsPath(false)+")")
	rootCmd.PersistentFlags().String("loglevel", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringP("project", "p", "", "Project to use (fuzzy matched)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of logfocus",
		Run: func(cmd *cobra.Command, args []string) {
			if LogFocusBuildTime != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s+%s\n", LogFocusVersion, LogFocusBuildTime)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s+dev\n", LogFocusVersion)
			}
		},
	}

	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect the settings file",
	}
	settingsCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the settings file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cfg.ResolvedSettingsPath())
			return nil
		},
	})

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(settingsCmd)
	addViewCommands(rootCmd)
	addEditCommands(rootCmd)
	addServeCommand(rootCmd)
	return rootCmd
}

func main() {
	if err := makeRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
