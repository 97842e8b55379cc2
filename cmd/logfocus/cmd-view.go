// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/logfocus/logfocus/pkg/controller"
	"github.com/logfocus/logfocus/pkg/docwatch"
	"github.com/logfocus/logfocus/pkg/termview"
	"github.com/logfocus/logfocus/pkg/utilfn"
	"github.com/spf13/cobra"
)

func addViewCommands(rootCmd *cobra.Command) {
	focusCmd := &cobra.Command{
		Use:   "focus FILE",
		Short: "Print only the lines your filters keep",
		Long: `Print the focused view of FILE ("-" reads stdin): lines matched by an inclusion filter,
minus lines matched by an exclusion filter. With no inclusion filters every line is kept.`,
		Args: cobra.ExactArgs(1),
		RunE: runFocus,
	}
	highlightCmd := &cobra.Command{
		Use:   "highlight FILE",
		Short: "Print FILE with matching lines highlighted",
		Args:  cobra.ExactArgs(1),
		RunE:  runHighlight,
	}
	countCmd := &cobra.Command{
		Use:   "count FILE",
		Short: "Print match counts per filter for FILE",
		Args:  cobra.ExactArgs(1),
		RunE:  runCount,
	}
	watchCmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Print the focused view of FILE again whenever it changes",
		Args:  cobra.ExactArgs(1),
		RunE:  runWatch,
	}
	for _, cmd := range []*cobra.Command{focusCmd, highlightCmd, countCmd, watchCmd} {
		cmd.Flags().StringArrayP("group", "g", nil, "Group to enable (repeatable, default all)")
	}
	for _, cmd := range []*cobra.Command{focusCmd, highlightCmd, watchCmd} {
		cmd.Flags().BoolP("line-numbers", "n", false, "Show line numbers of the original file")
	}
	rootCmd.AddCommand(focusCmd, highlightCmd, countCmd, watchCmd)
}

// openDocument opens FILE in a fresh app with the requested groups enabled and makes it active
func openDocument(cmd *cobra.Command, path string) (*cliApp, string, error) {
	uri, text, err := readDocument(cmd, path)
	if err != nil {
		return nil, "", err
	}
	app, err := openApp(cmd, controller.Collaborators{})
	if err != nil {
		return nil, "", err
	}
	groupNames, _ := cmd.Flags().GetStringArray("group")
	if err := app.enableGroups(groupNames); err != nil {
		app.close()
		return nil, "", err
	}
	app.ctrl.OpenDocument(uri, text)
	app.ctrl.SetActiveDocument(uri)
	return app, uri, nil
}

func (app *cliApp) renderFocus(cmd *cobra.Command, focusURI string) error {
	content, ok := app.ctrl.FocusContent(focusURI)
	if !ok {
		return fmt.Errorf("no focused view %s", focusURI)
	}
	survivors, _ := app.ctrl.FocusSourceLines(focusURI)
	showGutter, _ := cmd.Flags().GetBool("line-numbers")
	out := termview.MakeRenderer(cmd.OutOrStdout()).Render(
		utilfn.SplitLines(content),
		app.host.plan(focusURI),
		termview.Options{ShowGutter: showGutter, LineNumbers: termview.SourceLineNumbers(survivors)},
	)
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func runFocus(cmd *cobra.Command, args []string) error {
	app, _, err := openDocument(cmd, args[0])
	if err != nil {
		return err
	}
	defer app.close()
	focusURI, err := app.ctrl.EnterFocus()
	if err != nil {
		return err
	}
	return app.renderFocus(cmd, focusURI)
}

func runHighlight(cmd *cobra.Command, args []string) error {
	app, uri, err := openDocument(cmd, args[0])
	if err != nil {
		return err
	}
	defer app.close()
	doc, ok := app.ctrl.AppState().LookupDoc(uri)
	if !ok {
		return fmt.Errorf("document %s is not open", uri)
	}
	showGutter, _ := cmd.Flags().GetBool("line-numbers")
	out := termview.MakeRenderer(cmd.OutOrStdout()).Render(doc.Lines, app.host.plan(uri), termview.Options{ShowGutter: showGutter})
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func runCount(cmd *cobra.Command, args []string) error {
	app, _, err := openDocument(cmd, args[0])
	if err != nil {
		return err
	}
	defer app.close()
	fmt.Fprint(cmd.OutOrStdout(), termview.MakeRenderer(cmd.OutOrStdout()).RenderCounts(app.ctrl.Workspace().ActiveGroups()))
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	if args[0] == "-" {
		return errors.New("watch needs a file, not stdin")
	}
	app, uri, err := openDocument(cmd, args[0])
	if err != nil {
		return err
	}
	defer app.close()
	focusURI, err := app.ctrl.EnterFocus()
	if err != nil {
		return err
	}
	if err := app.renderFocus(cmd, focusURI); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	// callbacks run on the watcher's Run goroutine, which is the only one touching the controller from here on
	watcher, err := docwatch.MakeWatcher(time.Duration(app.cfg.DebounceMs)*time.Millisecond,
		func(path string, text string) {
			app.ctrl.UpdateDocument(uri, strings.TrimSuffix(text, "\n"))
			fmt.Fprintf(cmd.OutOrStdout(), "\n--- %s ---\n", time.Now().Format(time.TimeOnly))
			app.renderFocus(cmd, focusURI)
		},
		func(path string) {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s was removed, waiting for it to come back\n", path)
		},
	)
	if err != nil {
		return err
	}
	defer watcher.Close()
	if _, err := watcher.Add(args[0]); err != nil {
		return err
	}
	return watcher.Run(ctx)
}
