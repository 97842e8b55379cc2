// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package controller

import (
	"fmt"
	"strings"

	"github.com/logfocus/logfocus/pkg/filtermodel"
	"github.com/logfocus/logfocus/pkg/filterset"
	"github.com/logfocus/logfocus/pkg/focus"
	"github.com/logfocus/logfocus/pkg/utilfn"
)

// Commands that name an entity that no longer exists do nothing and return nil.

func checkName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	return name, nil
}

func (c *Controller) AddProject(name string) (*filtermodel.Project, error) {
	name, err := checkName(name)
	if err != nil {
		return nil, err
	}
	p := c.state.Workspace.AddProject(name)
	c.save()
	c.refreshRows()
	return p, nil
}

func (c *Controller) RenameProject(id string, name string) error {
	name, err := checkName(name)
	if err != nil {
		return err
	}
	if !c.state.Workspace.RenameProject(id, name) {
		return nil
	}
	c.save()
	c.refreshRows()
	return nil
}

// DeleteProject removes a project. Deleting the selected project clears the active rule set.
func (c *Controller) DeleteProject(id string) error {
	deleted, wasSelected := c.state.Workspace.DeleteProject(id)
	if !deleted {
		return nil
	}
	c.save()
	if wasSelected {
		log.Infof("[controller] selected project deleted, no active rule set")
		c.refresh()
		return nil
	}
	c.refreshRows()
	return nil
}

func (c *Controller) SelectProject(id string) error {
	switch c.state.Workspace.SelectProject(id) {
	case filtermodel.SelectAlreadySelected:
		p, _ := c.state.Workspace.LookupProject(id)
		c.collab.Notifier.Info(fmt.Sprintf("project %q is already selected", p.Name))
	case filtermodel.SelectDone:
		c.refresh()
	}
	return nil
}

func (c *Controller) selectedProject() (*filtermodel.Project, error) {
	p, ok := c.state.Workspace.Selected()
	if !ok {
		return nil, ErrNoActiveProject
	}
	return p, nil
}

// AddGroup adds an empty group to the selected project
func (c *Controller) AddGroup(name string) (*filtermodel.Group, error) {
	name, err := checkName(name)
	if err != nil {
		return nil, err
	}
	p, err := c.selectedProject()
	if err != nil {
		return nil, err
	}
	g, _ := c.state.Workspace.AddGroup(p.Id, name)
	c.save()
	c.refreshFilterRows()
	return g, nil
}

func (c *Controller) RenameGroup(id string, name string) error {
	name, err := checkName(name)
	if err != nil {
		return err
	}
	if !c.state.Workspace.RenameGroup(id, name) {
		return nil
	}
	c.save()
	c.refreshFilterRows()
	return nil
}

func (c *Controller) DeleteGroup(id string) error {
	return c.mutate(c.state.Workspace.DeleteGroup(id), true)
}

func (c *Controller) MoveGroup(id string, toIdx int) error {
	return c.mutate(c.state.Workspace.MoveGroup(id, toIdx), true)
}

// AddFilter compiles regex and adds a filter to a group. An invalid pattern changes nothing.
func (c *Controller) AddFilter(groupId string, regex string, isExclude bool) (*filtermodel.Filter, error) {
	pattern, err := filtermodel.CompilePattern(regex)
	if err != nil {
		return nil, err
	}
	f, ok := c.state.Workspace.AddFilter(groupId, pattern, "", isExclude)
	if !ok {
		return nil, nil
	}
	c.save()
	c.refresh()
	return f, nil
}

func (c *Controller) EditFilter(id string, regex string) error {
	pattern, err := filtermodel.CompilePattern(regex)
	if err != nil {
		return err
	}
	return c.mutate(c.state.Workspace.EditFilter(id, pattern), true)
}

func (c *Controller) DeleteFilter(id string) error {
	return c.mutate(c.state.Workspace.DeleteFilter(id), true)
}

func (c *Controller) MoveFilter(id string, toIdx int) error {
	return c.mutate(c.state.Workspace.MoveFilter(id, toIdx), true)
}

func (c *Controller) ToggleFilterHighlight(id string) error {
	ref, ok := c.state.Workspace.LookupFilter(id)
	if !ok {
		return nil
	}
	return c.mutate(c.state.Workspace.SetFilterHighlighted(id, !ref.Filter.IsHighlighted), false)
}

func (c *Controller) ToggleFilterShown(id string) error {
	ref, ok := c.state.Workspace.LookupFilter(id)
	if !ok {
		return nil
	}
	return c.mutate(c.state.Workspace.SetFilterShown(id, !ref.Filter.IsShown), false)
}

// ToggleGroupHighlight flips the group flag and sets every filter of the group to match
func (c *Controller) ToggleGroupHighlight(id string) error {
	ref, ok := c.state.Workspace.LookupGroup(id)
	if !ok {
		return nil
	}
	return c.mutate(c.state.Workspace.SetGroupHighlighted(id, !ref.Group.IsHighlighted), false)
}

func (c *Controller) ToggleGroupShown(id string) error {
	ref, ok := c.state.Workspace.LookupGroup(id)
	if !ok {
		return nil
	}
	return c.mutate(c.state.Workspace.SetGroupShown(id, !ref.Group.IsShown), false)
}

// mutate finishes a rule set mutation. Flags are not persisted, so toggles skip the save.
func (c *Controller) mutate(changed bool, persist bool) error {
	if !changed {
		return nil
	}
	if persist {
		c.save()
	}
	c.refresh()
	return nil
}

// Save persists every project
func (c *Controller) Save() {
	c.save()
}

// Export snapshots the selected project's groups, flags included
func (c *Controller) Export() ([]byte, error) {
	p, err := c.selectedProject()
	if err != nil {
		return nil, err
	}
	return filterset.Export(p.Groups)
}

// Import appends the groups of a snapshot to the selected project and returns how many were added
func (c *Controller) Import(data []byte) (int, error) {
	p, err := c.selectedProject()
	if err != nil {
		return 0, err
	}
	seeds, err := filterset.Import(data)
	if err != nil {
		return 0, err
	}
	for _, seed := range seeds {
		c.state.Workspace.AddSeededGroup(p.Id, seed)
	}
	if len(seeds) > 0 {
		c.save()
		c.refresh()
	}
	return len(seeds), nil
}

// EnterFocus opens the focused view of the active document and returns its uri.
// With no active document it does nothing and returns "".
func (c *Controller) EnterFocus() (string, error) {
	if c.state.State() == StateUnselected {
		return "", ErrNoActiveProject
	}
	doc, ok := c.activeSource()
	if !ok {
		return "", nil
	}
	return c.openFocus(doc.URI), nil
}

func (c *Controller) openFocus(sourceURI string) string {
	focusURI := focus.EncodeURI(sourceURI)
	if c.state.State() == StateUnselected {
		return focusURI
	}
	if _, ok := c.state.LookupDoc(sourceURI); !ok {
		return focusURI
	}
	if _, ok := c.state.LookupFocusDoc(focusURI); !ok {
		c.state.putFocusDoc(&FocusDoc{URI: focusURI, SourceURI: sourceURI})
	}
	c.refresh()
	return focusURI
}

// ExitFocus closes a focused view. Both the focus uri and its source uri are accepted.
func (c *Controller) ExitFocus(uri string) error {
	if !focus.IsFocusURI(uri) {
		uri = focus.EncodeURI(uri)
	}
	if !c.state.removeFocusDoc(uri) {
		return nil
	}
	c.collab.Presenter.CloseFocus(uri)
	if c.state.ActiveURI == uri {
		c.state.ActiveURI = ""
	}
	c.refresh()
	return nil
}

// FocusContent returns the current text of an open focused view
func (c *Controller) FocusContent(focusURI string) (string, bool) {
	fdoc, ok := c.state.LookupFocusDoc(focusURI)
	if !ok {
		return "", false
	}
	return utilfn.JoinLines(fdoc.Lines), true
}

// FocusSourceLines returns, for each line of a focused view after the banner, its source line index
func (c *Controller) FocusSourceLines(focusURI string) ([]int, bool) {
	fdoc, ok := c.state.LookupFocusDoc(focusURI)
	if !ok {
		return nil, false
	}
	return utilfn.CopyIntArr(fdoc.Survivors), true
}

// FoldingRanges returns the ranges to fold so only focus-mode lines of a document stay visible
func (c *Controller) FoldingRanges(uri string) []focus.FoldRange {
	doc, ok := c.state.LookupDoc(uri)
	if !ok || c.state.State() == StateUnselected {
		return nil
	}
	return focus.FoldingRanges(doc.Lines, c.state.Workspace.ActiveGroups())
}
