// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package controller

import (
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/logfocus/logfocus/pkg/filtermodel"
)

type State int

const (
	StateUnselected State = iota
	StateSelected
)

func (s State) String() string {
	if s == StateSelected {
		return "selected"
	}
	return "unselected"
}

// Document is an open source document as last reported by the host
type Document struct {
	URI   string
	Lines []string
}

// FocusDoc is an open focused view of a source document
type FocusDoc struct {
	URI       string
	SourceURI string
	Lines     []string

	// Survivors maps Lines (after the banner) back to source line indices
	Survivors []int
}

// AppState is everything the controller owns. It is only touched from the controller's goroutine.
type AppState struct {
	Workspace *filtermodel.Workspace

	// docs maps uri -> *Document, ordered by uri so repaints are deterministic
	docs *treemap.Map

	// focusDocs maps focus uri -> *FocusDoc
	focusDocs *treemap.Map

	ActiveURI string
}

func MakeAppState(ws *filtermodel.Workspace) *AppState {
	return &AppState{
		Workspace: ws,
		docs:      treemap.NewWithStringComparator(),
		focusDocs: treemap.NewWithStringComparator(),
	}
}

func (s *AppState) State() State {
	if _, ok := s.Workspace.Selected(); ok {
		return StateSelected
	}
	return StateUnselected
}

func (s *AppState) LookupDoc(uri string) (*Document, bool) {
	v, ok := s.docs.Get(uri)
	if !ok {
		return nil, false
	}
	return v.(*Document), true
}

func (s *AppState) putDoc(doc *Document) {
	s.docs.Put(doc.URI, doc)
}

func (s *AppState) removeDoc(uri string) bool {
	if _, ok := s.docs.Get(uri); !ok {
		return false
	}
	s.docs.Remove(uri)
	return true
}

// Docs returns the open source documents in uri order
func (s *AppState) Docs() []*Document {
	rtn := make([]*Document, 0, s.docs.Size())
	s.docs.Each(func(_ interface{}, v interface{}) {
		rtn = append(rtn, v.(*Document))
	})
	return rtn
}

func (s *AppState) LookupFocusDoc(focusURI string) (*FocusDoc, bool) {
	v, ok := s.focusDocs.Get(focusURI)
	if !ok {
		return nil, false
	}
	return v.(*FocusDoc), true
}

func (s *AppState) putFocusDoc(fdoc *FocusDoc) {
	s.focusDocs.Put(fdoc.URI, fdoc)
}

func (s *AppState) removeFocusDoc(focusURI string) bool {
	if _, ok := s.focusDocs.Get(focusURI); !ok {
		return false
	}
	s.focusDocs.Remove(focusURI)
	return true
}

// FocusDocs returns the open focused documents in uri order
func (s *AppState) FocusDocs() []*FocusDoc {
	rtn := make([]*FocusDoc, 0, s.focusDocs.Size())
	s.focusDocs.Each(func(_ interface{}, v interface{}) {
		rtn = append(rtn, v.(*FocusDoc))
	})
	return rtn
}
