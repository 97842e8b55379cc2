// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package controller keeps host decorations, counts, trees and focused documents in
// sync with the rule set and the open documents. Every method must be called from a
// single goroutine; concurrent adapters go through a Loop.
package controller

import (
	"errors"

	"github.com/logfocus/logfocus/pkg/base"
	"github.com/logfocus/logfocus/pkg/filtermodel"
	"github.com/logfocus/logfocus/pkg/focus"
	"github.com/logfocus/logfocus/pkg/linematch"
	"github.com/logfocus/logfocus/pkg/rowview"
	"github.com/logfocus/logfocus/pkg/utilfn"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "controller")

var ErrNoActiveProject = errors.New("no project is selected")
var ErrEmptyName = errors.New("name must not be empty")

type Controller struct {
	state  *AppState
	collab Collaborators

	// layers are every decoration resource created by the last repaint
	layers []Layer
}

func MakeController(ws *filtermodel.Workspace, collab Collaborators) *Controller {
	return &Controller{
		state:  MakeAppState(ws),
		collab: collab.withDefaults(),
	}
}

func (c *Controller) AppState() *AppState {
	return c.state
}

func (c *Controller) Workspace() *filtermodel.Workspace {
	return c.state.Workspace
}

func (c *Controller) State() State {
	return c.state.State()
}

// OpenDocument registers (or replaces) a visible document and repaints.
// Opening a focus uri opens the focused view of its source document instead.
func (c *Controller) OpenDocument(uri string, text string) {
	if focus.IsFocusURI(uri) {
		if sourceURI, ok := focus.DecodeURI(uri); ok {
			c.openFocus(sourceURI)
		}
		return
	}
	c.state.putDoc(&Document{URI: uri, Lines: utilfn.SplitLines(text)})
	c.refresh()
}

// UpdateDocument replaces the content of an open document and repaints. Unknown uris are opened.
func (c *Controller) UpdateDocument(uri string, text string) {
	c.OpenDocument(uri, text)
}

// CloseDocument forgets a document (or a focused view) and repaints
func (c *Controller) CloseDocument(uri string) {
	if focus.IsFocusURI(uri) {
		if c.state.removeFocusDoc(uri) {
			c.refresh()
		}
		return
	}
	if !c.state.removeDoc(uri) {
		return
	}
	if c.state.ActiveURI == uri {
		c.state.ActiveURI = ""
	}
	c.refresh()
}

// SetActiveDocument changes the document counts are computed against. Decorations are not repainted.
func (c *Controller) SetActiveDocument(uri string) {
	c.state.ActiveURI = uri
	groups := c.state.Workspace.ActiveGroups()
	linematch.ApplyCounts(groups, c.evaluateActive(groups))
	c.refreshFilterRows()
}

// activeSource resolves the active document, following a focused view back to its source
func (c *Controller) activeSource() (*Document, bool) {
	uri := c.state.ActiveURI
	if uri == "" {
		return nil, false
	}
	if focus.IsFocusURI(uri) {
		fdoc, ok := c.state.LookupFocusDoc(uri)
		if !ok {
			return nil, false
		}
		uri = fdoc.SourceURI
	}
	return c.state.LookupDoc(uri)
}

func (c *Controller) evaluateActive(groups []*filtermodel.Group) *linematch.MatchResult {
	doc, ok := c.activeSource()
	if !ok || len(groups) == 0 {
		return nil
	}
	return linematch.Evaluate(doc.Lines, groups)
}

func (c *Controller) disposeLayers() {
	for _, layer := range c.layers {
		layer.Dispose()
	}
	c.layers = nil
}

func (c *Controller) paintPlan(uri string, plan focus.Plan) {
	for _, pl := range plan.Layers {
		if len(pl.Lines) == 0 {
			continue
		}
		layer := c.collab.Painter.CreateLayer(pl.Color)
		layer.Paint(uri, pl.Lines)
		c.layers = append(c.layers, layer)
	}
	if plan.BannerLine >= 0 {
		c.collab.Painter.SetBanner(uri, plan.BannerLine, base.FocusBannerText)
	}
}

// refresh recomputes everything: decorations for every open document and focused view,
// focused content, counts for the active document, and the trees.
func (c *Controller) refresh() {
	c.disposeLayers()
	groups := c.state.Workspace.ActiveGroups()
	if c.state.State() == StateUnselected {
		c.closeAllFocus()
		linematch.ApplyCounts(groups, nil)
		c.refreshRows()
		return
	}

	results := make(map[string]*linematch.MatchResult)
	for _, doc := range c.state.Docs() {
		result := linematch.Evaluate(doc.Lines, groups)
		results[doc.URI] = result
		c.paintPlan(doc.URI, focus.PlanOriginal(result))
	}

	for _, fdoc := range c.state.FocusDocs() {
		doc, ok := c.state.LookupDoc(fdoc.SourceURI)
		if !ok {
			// the source went away, its last content stays readable
			c.paintPlan(fdoc.URI, focus.PlanFocused(fdoc.Lines, groups))
			continue
		}
		fdoc.Lines = focus.Project(doc.Lines, results[doc.URI])
		fdoc.Survivors = results[doc.URI].Survivors
		c.collab.Presenter.RefreshFocus(fdoc.URI, utilfn.JoinLines(fdoc.Lines))
		c.paintPlan(fdoc.URI, focus.PlanFocused(fdoc.Lines, groups))
	}

	var activeResult *linematch.MatchResult
	if doc, ok := c.activeSource(); ok {
		activeResult = results[doc.URI]
	}
	linematch.ApplyCounts(groups, activeResult)
	log.Debugf("[controller] repainted %d documents, %d focused views, %d layers", c.state.docs.Size(), c.state.focusDocs.Size(), len(c.layers))
	c.refreshRows()
}

func (c *Controller) refreshFilterRows() {
	groups := c.state.Workspace.ActiveGroups()
	c.collab.Presenter.RefreshFilters(rowview.BuildFilterRows(groups, rowview.ViewFilters), rowview.BuildFilterRows(groups, rowview.ViewExFilters))
}

func (c *Controller) refreshRows() {
	c.refreshFilterRows()
	c.collab.Presenter.RefreshProjects(rowview.BuildProjectRows(c.state.Workspace.Projects))
}

func (c *Controller) closeAllFocus() {
	for _, fdoc := range c.state.FocusDocs() {
		c.state.removeFocusDoc(fdoc.URI)
		c.collab.Presenter.CloseFocus(fdoc.URI)
	}
}

func (c *Controller) save() {
	c.collab.Store.Save(c.state.Workspace.Records())
}
