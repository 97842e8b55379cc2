// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package controller

import (
	"github.com/logfocus/logfocus/pkg/filtermodel"
	"github.com/logfocus/logfocus/pkg/rowview"
)

// Layer is one host decoration resource painting whole lines in a single color
type Layer interface {
	Paint(uri string, lines []int)
	Dispose()
}

// Painter creates decoration layers in the host
type Painter interface {
	CreateLayer(color string) Layer
	SetBanner(uri string, line int, text string)
}

// Presenter shows derived state: the filter trees, the project list and focused document content
type Presenter interface {
	RefreshFilters(filterRows []rowview.Row, exFilterRows []rowview.Row)
	RefreshProjects(projectRows []rowview.ProjectRow)
	RefreshFocus(focusURI string, content string)
	CloseFocus(focusURI string)
}

type Notifier interface {
	Info(msg string)
	Error(msg string)
}

// Store persists project records. Save must not block.
type Store interface {
	Save(records []filtermodel.ProjectRecord)
}

// Collaborators are the host-side adapters. Nil members are replaced with no-ops.
type Collaborators struct {
	Painter   Painter
	Presenter Presenter
	Notifier  Notifier
	Store     Store
}

type nopLayer struct{}

func (nopLayer) Paint(string, []int) {}
func (nopLayer) Dispose() {}

type nopCollab struct{}

func (nopCollab) CreateLayer(string) Layer { return nopLayer{} }
func (nopCollab) SetBanner(string, int, string) {}
func (nopCollab) RefreshFilters([]rowview.Row, []rowview.Row) {}
func (nopCollab) RefreshProjects([]rowview.ProjectRow) {}
func (nopCollab) RefreshFocus(string, string) {}
func (nopCollab) CloseFocus(string) {}
func (nopCollab) Info(string) {}
func (nopCollab) Error(string) {}
func (nopCollab) Save([]filtermodel.ProjectRecord) {}

func (c Collaborators) withDefaults() Collaborators {
	if c.Painter == nil {
		c.Painter = nopCollab{}
	}
	if c.Presenter == nil {
		c.Presenter = nopCollab{}
	}
	if c.Notifier == nil {
		c.Notifier = nopCollab{}
	}
	if c.Store == nil {
		c.Store = nopCollab{}
	}
	return c
}
