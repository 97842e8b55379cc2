// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/logfocus/logfocus/pkg/config"
	"github.com/logfocus/logfocus/pkg/controller"
	"github.com/logfocus/logfocus/pkg/docwatch"
	"github.com/logfocus/logfocus/pkg/web"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func addServeCommand(rootCmd *cobra.Command) {
	serveCmd := &cobra.Command{
		Use:   "serve [FILE...]",
		Short: "Serve the controller over http and websocket, watching the given files",
		Long: `Run the logfocus server. Browser clients drive the controller through /api and receive
decorations, trees and focused content over /ws. Every FILE is opened as a document and
reloaded when it changes on disk; the first one is the active document.`,
		RunE: runServe,
	}
	serveCmd.Flags().String("listen", config.DefaultListenAddr, "Address to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	hub := web.MakeHub()
	host := web.MakeHost(hub)
	app, err := openApp(cmd, host.Collaborators(nil))
	if err != nil {
		return err
	}
	defer app.close()
	ctrl := app.ctrl

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	loop := controller.MakeLoop(func(err error) {
		host.Error(err.Error())
	})
	watcher, err := docwatch.MakeWatcher(time.Duration(app.cfg.DebounceMs)*time.Millisecond,
		func(path string, text string) {
			loop.Do("docwatch:update", func() error {
				ctrl.UpdateDocument(fileURI(path), strings.TrimSuffix(text, "\n"))
				return nil
			})
		},
		func(path string) {
			loop.Do("docwatch:remove", func() error {
				ctrl.CloseDocument(fileURI(path))
				return nil
			})
		},
	)
	if err != nil {
		return err
	}
	defer watcher.Close()

	// the loop is not running yet, documents are opened directly
	for idx, path := range args {
		uri, text, err := readDocument(cmd, path)
		if err != nil {
			return err
		}
		if _, err := watcher.Add(path); err != nil {
			return err
		}
		ctrl.OpenDocument(uri, text)
		if idx == 0 {
			ctrl.SetActiveDocument(uri)
		}
	}

	listener, err := web.MakeTCPListener("logfocus", app.cfg.ListenAddr)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "logfocus serving on http://%s (%d documents)\n", listener.Addr(), len(args))

	handler := web.MakeHandler(web.MakeServer(loop, ctrl, hub), app.cfg.Dev)
	go loop.Run(ctx)
	go func() {
		if err := watcher.Run(ctx); err != nil {
			logrus.Errorf("[serve] file watcher stopped: %v", err)
		}
	}()
	if err := web.RunWebServer(ctx, listener, handler); err != nil {
		return err
	}
	logrus.Infof("[serve] shut down")
	return nil
}
