// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package web

import (
	"github.com/google/uuid"
	"github.com/logfocus/logfocus/pkg/controller"
	"github.com/logfocus/logfocus/pkg/rowview"
)

// websocket event types
const (
	EventPaint      = "paint"
	EventDispose    = "dispose"
	EventBanner     = "banner"
	EventFilters    = "filters"
	EventProjects   = "projects"
	EventFocus      = "focus"
	EventCloseFocus = "closefocus"
	EventInfo       = "info"
	EventError      = "error"
	EventState      = "state"
)

type Event struct {
	Type      string               `json:"type"`
	LayerId   string               `json:"layerid,omitempty"`
	URI       string               `json:"uri,omitempty"`
	Color     string               `json:"color,omitempty"`
	Lines     []int                `json:"lines,omitempty"`
	Line      int                  `json:"line"`
	Text      string               `json:"text,omitempty"`
	Filters   []rowview.Row        `json:"filters,omitempty"`
	ExFilters []rowview.Row        `json:"exfilters,omitempty"`
	Projects  []rowview.ProjectRow `json:"projects,omitempty"`
	State     *StateData           `json:"state,omitempty"`
}

// Host is the controller's view of connected browser clients: decoration layers,
// tree refreshes and messages become websocket events.
type Host struct {
	hub *Hub
}

func MakeHost(hub *Hub) *Host {
	return &Host{hub: hub}
}

func (h *Host) Collaborators(store controller.Store) controller.Collaborators {
	return controller.Collaborators{Painter: h, Presenter: h, Notifier: h, Store: store}
}

type hostLayer struct {
	hub   *Hub
	id    string
	color string
}

func (l *hostLayer) Paint(uri string, lines []int) {
	l.hub.Broadcast(Event{Type: EventPaint, LayerId: l.id, URI: uri, Color: l.color, Lines: lines})
}

func (l *hostLayer) Dispose() {
	l.hub.Broadcast(Event{Type: EventDispose, LayerId: l.id})
}

func (h *Host) CreateLayer(color string) controller.Layer {
	return &hostLayer{hub: h.hub, id: uuid.New().String(), color: color}
}

func (h *Host) SetBanner(uri string, line int, text string) {
	h.hub.Broadcast(Event{Type: EventBanner, URI: uri, Line: line, Text: text})
}

func (h *Host) RefreshFilters(filterRows []rowview.Row, exFilterRows []rowview.Row) {
	h.hub.Broadcast(Event{Type: EventFilters, Filters: filterRows, ExFilters: exFilterRows})
}

func (h *Host) RefreshProjects(projectRows []rowview.ProjectRow) {
	h.hub.Broadcast(Event{Type: EventProjects, Projects: projectRows})
}

func (h *Host) RefreshFocus(focusURI string, content string) {
	h.hub.Broadcast(Event{Type: EventFocus, URI: focusURI, Text: content})
}

func (h *Host) CloseFocus(focusURI string) {
	h.hub.Broadcast(Event{Type: EventCloseFocus, URI: focusURI})
}

func (h *Host) Info(msg string) {
	log.Infof("[web] %s", msg)
	h.hub.Broadcast(Event{Type: EventInfo, Text: msg})
}

func (h *Host) Error(msg string) {
	log.Warnf("[web] %s", msg)
	h.hub.Broadcast(Event{Type: EventError, Text: msg})
}
