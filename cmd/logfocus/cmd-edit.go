// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/logfocus/logfocus/pkg/controller"
	"github.com/logfocus/logfocus/pkg/filtermodel"
	"github.com/spf13/cobra"
)

// withApp runs fn against a freshly loaded app and waits for pending saves
func withApp(fn func(cmd *cobra.Command, app *cliApp, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd, controller.Collaborators{})
		if err != nil {
			return err
		}
		defer app.close()
		return fn(cmd, app, args)
	}
}

func addEditCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(makeProjectCmd(), makeGroupCmd(), makeFilterCmd())

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the selected project's groups as a JSON snapshot",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, app *cliApp, args []string) error {
			if _, err := app.selected(); err != nil {
				return err
			}
			data, err := app.ctrl.Export()
			if err != nil {
				return err
			}
			outPath, _ := cmd.Flags().GetString("out")
			if outPath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			return os.WriteFile(outPath, append(data, '\n'), 0644)
		}),
	}
	exportCmd.Flags().StringP("out", "o", "", "Write to a file instead of stdout")

	importCmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Append the groups of a JSON snapshot to the selected project",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, app *cliApp, args []string) error {
			if _, err := app.selected(); err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			count, err := app.ctrl.Import(data)
			if err != nil {
				return fmt.Errorf("importing %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d groups\n", count)
			return nil
		}),
	}
	rootCmd.AddCommand(exportCmd, importCmd)
}

func makeProjectCmd() *cobra.Command {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}
	projectCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List projects, the selected one marked with *",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, app *cliApp, args []string) error {
			for _, p := range app.ctrl.Workspace().Projects {
				mark := " "
				if p.IsSelected {
					mark = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mark, p.Name)
			}
			return nil
		}),
	})
	projectCmd.AddCommand(&cobra.Command{
		Use:   "add NAME",
		Short: "Add a project",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, app *cliApp, args []string) error {
			_, err := app.ctrl.AddProject(args[0])
			return err
		}),
	})
	projectCmd.AddCommand(&cobra.Command{
		Use:   "rename NAME NEWNAME",
		Short: "Rename a project",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(func(cmd *cobra.Command, app *cliApp, args []string) error {
			p, err := app.findProject(args[0])
			if err != nil {
				return err
			}
			return app.ctrl.RenameProject(p.Id, args[1])
		}),
	})
	projectCmd.AddCommand(&cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a project (the name must match exactly)",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, app *cliApp, args []string) error {
			for _, p := range app.ctrl.Workspace().Projects {
				if p.Name == args[0] {
					return app.ctrl.DeleteProject(p.Id)
				}
			}
			return fmt.Errorf("no project named %q", args[0])
		}),
	})
	return projectCmd
}

func makeGroupCmd() *cobra.Command {
	groupCmd := &cobra.Command{
		Use:   "group",
		Short: "Manage the filter groups of the selected project",
	}
	groupCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List groups",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, app *cliApp, args []string) error {
			p, err := app.selected()
			if err != nil {
				return err
			}
			for _, g := range p.Groups {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%d filters)\n", g.Name, len(g.Filters))
			}
			return nil
		}),
	})
	groupCmd.AddCommand(&cobra.Command{
		Use:   "add NAME",
		Short: "Add an empty group",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, app *cliApp, args []string) error {
			if _, err := app.selected(); err != nil {
				return err
			}
			_, err := app.ctrl.AddGroup(args[0])
			return err
		}),
	})
	groupCmd.AddCommand(&cobra.Command{
		Use:   "rename NAME NEWNAME",
		Short: "Rename a group",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(func(cmd *cobra.Command, app *cliApp, args []string) error {
			g, err := app.findGroup(args[0])
			if err != nil {
				return err
			}
			return app.ctrl.RenameGroup(g.Id, args[1])
		}),
	})
	groupCmd.AddCommand(&cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a group and its filters",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, app *cliApp, args []string) error {
			g, err := app.findGroup(args[0])
			if err != nil {
				return err
			}
			return app.ctrl.DeleteGroup(g.Id)
		}),
	})
	return groupCmd
}

func filterKind(f *filtermodel.Filter) string {
	if f.IsExclude {
		return "-"
	}
	return "+"
}

func makeFilterCmd() *cobra.Command {
	filterCmd := &cobra.Command{
		Use:   "filter",
		Short: "Manage the filters of a group",
	}
	filterCmd.AddCommand(&cobra.Command{
		Use:   "list [GROUP]",
		Short: "List filters, + for inclusion and - for exclusion",
		Args:  cobra.MaximumNArgs(1),
		RunE: withApp(func(cmd *cobra.Command, app *cliApp, args []string) error {
			p, err := app.selected()
			if err != nil {
				return err
			}
			groups := p.Groups
			if len(args) == 1 {
				g, err := app.findGroup(args[0])
				if err != nil {
					return err
				}
				groups = []*filtermodel.Group{g}
			}
			for _, g := range groups {
				fmt.Fprintln(cmd.OutOrStdout(), g.Name)
				for _, f := range g.Filters {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s /%s/ %s\n", filterKind(f), f.Pattern.Source, f.Color)
				}
			}
			return nil
		}),
	})

	addCmd := &cobra.Command{
		Use:   "add GROUP REGEX",
		Short: "Add a filter to a group",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(func(cmd *cobra.Command, app *cliApp, args []string) error {
			g, err := app.findGroup(args[0])
			if err != nil {
				return err
			}
			isExclude, _ := cmd.Flags().GetBool("exclude")
			_, err = app.ctrl.AddFilter(g.Id, args[1], isExclude)
			return err
		}),
	}
	addCmd.Flags().BoolP("exclude", "x", false, "Drop matching lines from the focused view instead of keeping them")

	filterCmd.AddCommand(addCmd)
	filterCmd.AddCommand(&cobra.Command{
		Use:   "edit GROUP REGEX NEWREGEX",
		Short: "Change the pattern of a filter",
		Args:  cobra.ExactArgs(3),
		RunE: withApp(func(cmd *cobra.Command, app *cliApp, args []string) error {
			f, err := app.findFilter(args[0], args[1])
			if err != nil {
				return err
			}
			return app.ctrl.EditFilter(f.Id, args[2])
		}),
	})
	filterCmd.AddCommand(&cobra.Command{
		Use:   "delete GROUP REGEX",
		Short: "Delete a filter",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(func(cmd *cobra.Command, app *cliApp, args []string) error {
			f, err := app.findFilter(args[0], args[1])
			if err != nil {
				return err
			}
			return app.ctrl.DeleteFilter(f.Id)
		}),
	})
	return filterCmd
}
