// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/logfocus/logfocus/pkg/config"
	"github.com/logfocus/logfocus/pkg/controller"
	"github.com/logfocus/logfocus/pkg/filtermodel"
	"github.com/logfocus/logfocus/pkg/focus"
	"github.com/logfocus/logfocus/pkg/idgen"
	"github.com/logfocus/logfocus/pkg/logutil"
	"github.com/logfocus/logfocus/pkg/namesearch"
	"github.com/logfocus/logfocus/pkg/rowview"
	"github.com/logfocus/logfocus/pkg/settings"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

// cliApp is a controller wired to the terminal: layers and focused content are
// captured so commands can render them, and saves go through an AsyncSaver.
type cliApp struct {
	cfg   *config.Config
	ctrl  *controller.Controller
	saver *settings.AsyncSaver
	host  *termHost
}

// loadConfig merges the config file/env with the root command's flags
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("dev") {
		cfg.Dev, _ = flags.GetBool("dev")
	}
	if flags.Changed("settings") {
		cfg.SettingsPath, _ = flags.GetString("settings")
	}
	if flags.Changed("loglevel") {
		cfg.LogLevel, _ = flags.GetString("loglevel")
	}
	if flags.Changed("listen") {
		cfg.ListenAddr, _ = flags.GetString("listen")
	}
	return cfg, nil
}

// openApp loads settings and selects the project named by --project (fuzzy), if given
func openApp(cmd *cobra.Command, collab controller.Collaborators) (*cliApp, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logutil.InitLogging(cfg.LogLevel, cfg.Dev)
	settingsPath := cfg.ResolvedSettingsPath()
	records, loadErr := settings.Load(settingsPath)

	app := &cliApp{cfg: cfg}
	if collab.Painter == nil {
		app.host = makeTermHost(cmd.ErrOrStderr())
		collab = app.host.Collaborators()
	}
	notifier := collab.Notifier
	app.saver = settings.MakeAsyncSaver(settingsPath, func(err error) {
		if notifier != nil {
			notifier.Error(fmt.Sprintf("error saving settings: %v", err))
		}
	})
	collab.Store = app.saver
	ws := filtermodel.MakeWorkspace(idgen.UUID(), filtermodel.MakeRandomColorGenerator(time.Now().UnixNano()))
	app.ctrl = controller.MakeController(ws, collab)
	app.ctrl.Bootstrap(records, loadErr)

	projectName, _ := cmd.Flags().GetString("project")
	if projectName != "" {
		p, err := app.findProject(projectName)
		if err != nil {
			return nil, err
		}
		if !p.IsSelected {
			app.ctrl.SelectProject(p.Id)
		}
	}
	logrus.Debugf("[cli] settings %s, %d projects", settingsPath, len(ws.Projects))
	return app, nil
}

func (app *cliApp) close() {
	app.saver.Flush()
}

func (app *cliApp) findProject(name string) (*filtermodel.Project, error) {
	projects := app.ctrl.Workspace().Projects
	names := make([]string, len(projects))
	for idx, p := range projects {
		names[idx] = p.Name
	}
	m, ok := namesearch.Resolve(name, names)
	if !ok {
		return nil, fmt.Errorf("no project matches %q", name)
	}
	return projects[m.Index], nil
}

// selected returns the active project or explains how to pick one
func (app *cliApp) selected() (*filtermodel.Project, error) {
	p, ok := app.ctrl.Workspace().Selected()
	if !ok {
		return nil, fmt.Errorf("%w: there are %d projects, pick one with --project", controller.ErrNoActiveProject, len(app.ctrl.Workspace().Projects))
	}
	return p, nil
}

func (app *cliApp) findGroup(name string) (*filtermodel.Group, error) {
	p, err := app.selected()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(p.Groups))
	for idx, g := range p.Groups {
		names[idx] = g.Name
	}
	m, ok := namesearch.Resolve(name, names)
	if !ok {
		return nil, fmt.Errorf("no group in project %q matches %q", p.Name, name)
	}
	return p.Groups[m.Index], nil
}

// findFilter finds a filter of a group by its exact pattern source
func (app *cliApp) findFilter(groupName string, regex string) (*filtermodel.Filter, error) {
	g, err := app.findGroup(groupName)
	if err != nil {
		return nil, err
	}
	for _, f := range g.Filters {
		if f.Pattern.Source == regex {
			return f, nil
		}
	}
	return nil, fmt.Errorf("group %q has no filter /%s/", g.Name, regex)
}

// enableGroups turns highlighting and focus on for the named groups (all when none
// are named), the way a user re-enables groups after settings are loaded inert
func (app *cliApp) enableGroups(names []string) error {
	p, err := app.selected()
	if err != nil {
		return err
	}
	targets := p.Groups
	if len(names) > 0 {
		targets = nil
		for _, name := range names {
			g, err := app.findGroup(name)
			if err != nil {
				return err
			}
			targets = append(targets, g)
		}
	}
	for _, g := range targets {
		if !g.IsHighlighted {
			app.ctrl.ToggleGroupHighlight(g.Id)
		}
		if !g.IsShown {
			app.ctrl.ToggleGroupShown(g.Id)
		}
	}
	return nil
}

// readDocument reads path ("-" is stdin) and returns its uri and text without the final newline
func readDocument(cmd *cobra.Command, path string) (string, string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", err
		}
		return "stdin:", strings.TrimSuffix(string(data), "\n"), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	return fileURI(path), strings.TrimSuffix(string(data), "\n"), nil
}

func fileURI(path string) string {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(absPath)}).String()
}

// termHost captures what the controller paints so a command can render it afterwards
type termHost struct {
	errOut  io.Writer
	nextSeq int
	layers  map[*termLayer]bool
	banners map[string]int
	focus   map[string]string
}

type termLayer struct {
	host  *termHost
	seq   int
	color string
	uri   string
	lines []int
}

func makeTermHost(errOut io.Writer) *termHost {
	return &termHost{
		errOut:  errOut,
		layers:  make(map[*termLayer]bool),
		banners: make(map[string]int),
		focus:   make(map[string]string),
	}
}

func (h *termHost) Collaborators() controller.Collaborators {
	return controller.Collaborators{Painter: h, Presenter: h, Notifier: h}
}

func (l *termLayer) Paint(uri string, lines []int) {
	l.uri = uri
	l.lines = append(l.lines, lines...)
	l.host.layers[l] = true
}

func (l *termLayer) Dispose() {
	delete(l.host.layers, l)
}

func (h *termHost) CreateLayer(color string) controller.Layer {
	h.nextSeq++
	return &termLayer{host: h, seq: h.nextSeq, color: color}
}

func (h *termHost) SetBanner(uri string, line int, text string) {
	h.banners[uri] = line
}

func (h *termHost) RefreshFilters([]rowview.Row, []rowview.Row) {}
func (h *termHost) RefreshProjects([]rowview.ProjectRow) {}

func (h *termHost) RefreshFocus(focusURI string, content string) {
	h.focus[focusURI] = content
}

func (h *termHost) CloseFocus(focusURI string) {
	delete(h.focus, focusURI)
	delete(h.banners, focusURI)
}

func (h *termHost) Info(msg string) {
	fmt.Fprintln(h.errOut, msg)
}

func (h *termHost) Error(msg string) {
	fmt.Fprintf(h.errOut, "error: %s\n", msg)
}

// plan collects the live layers painted on uri in creation order, which is the
// controller's group then filter order
func (h *termHost) plan(uri string) focus.Plan {
	plan := focus.Plan{BannerLine: -1}
	if line, ok := h.banners[uri]; ok {
		plan.BannerLine = line
	}
	var live []*termLayer
	for layer := range h.layers {
		if layer.uri == uri {
			live = append(live, layer)
		}
	}
	slices.SortFunc(live, func(a, b *termLayer) int {
		return a.seq - b.seq
	})
	for _, layer := range live {
		plan.Layers = append(plan.Layers, focus.Layer{Color: layer.color, Lines: layer.lines})
	}
	return plan
}
