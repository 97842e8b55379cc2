// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/logfocus/logfocus/pkg/controller"
	"github.com/logfocus/logfocus/pkg/focus"
	"github.com/logfocus/logfocus/pkg/namesearch"
	"github.com/logfocus/logfocus/pkg/rowview"
)

const (
	FlagHighlight = "highlight"
	FlagShown     = "shown"
)

// Server exposes controller commands over http. Every call runs on the controller loop.
type Server struct {
	loop *controller.Loop
	ctrl *controller.Controller
	hub  *Hub
}

// MakeServer also hooks the hub so every new websocket client starts with a full state event
func MakeServer(loop *controller.Loop, ctrl *controller.Controller, hub *Hub) *Server {
	s := &Server{loop: loop, ctrl: ctrl, hub: hub}
	hub.onConnect = s.sendState
	return s
}

func (s *Server) sendState(connId string) {
	err := s.loop.Do("ws.connect", func() error {
		data := s.stateData()
		s.hub.SendTo(connId, Event{Type: EventState, State: &data})
		return nil
	})
	if err != nil {
		log.Warnf("[web] cannot send state to %s: %v", connId, err)
	}
}

type IdRequest struct {
	Id string `json:"id"`
}

type NameRequest struct {
	Id   string `json:"id,omitempty"`
	Name string `json:"name"`
}

type MoveRequest struct {
	Id    string `json:"id"`
	Index int    `json:"index"`
}

type ToggleRequest struct {
	Id   string `json:"id"`
	Flag string `json:"flag"`
}

type FilterRequest struct {
	Id        string `json:"id,omitempty"`
	GroupId   string `json:"groupid,omitempty"`
	Regex     string `json:"regex"`
	IsExclude bool   `json:"isexclude,omitempty"`
}

type DocumentRequest struct {
	URI  string `json:"uri"`
	Text string `json:"text,omitempty"`
}

type StateData struct {
	State     string               `json:"state"`
	Projects  []rowview.ProjectRow `json:"projects"`
	Filters   []rowview.Row        `json:"filters"`
	ExFilters []rowview.Row        `json:"exfilters"`
	Documents []string             `json:"documents"`
	FocusDocs []string             `json:"focusdocs"`
	ActiveURI string               `json:"activeuri,omitempty"`
}

var jsonOpts = WebFnOpts{AllowCaching: false, JsonErrors: true}

// handleJson decodes a T from the body and runs fn on the controller loop
func handleJson[T any](s *Server, name string, fn func(req T) (any, error)) WebFnType {
	return WebFnWrap(jsonOpts, func(w http.ResponseWriter, r *http.Request) {
		var req T
		if err := ReadJsonBody(r, &req); err != nil {
			WriteJsonError(w, err)
			return
		}
		var rtn any
		err := s.loop.Do(name, func() error {
			var err error
			rtn, err = fn(req)
			return err
		})
		if err != nil {
			WriteJsonError(w, err)
			return
		}
		WriteJsonSuccess(w, rtn)
	})
}

// handleQuery runs fn on the controller loop for a GET request
func handleQuery(s *Server, name string, fn func(r *http.Request) (any, error)) WebFnType {
	return WebFnWrap(jsonOpts, func(w http.ResponseWriter, r *http.Request) {
		var rtn any
		err := s.loop.Do(name, func() error {
			var err error
			rtn, err = fn(r)
			return err
		})
		if err != nil {
			WriteJsonError(w, err)
			return
		}
		WriteJsonSuccess(w, rtn)
	})
}

func noData(err error) (any, error) {
	return nil, err
}

func (s *Server) registerApi(gr *mux.Router) {
	ctrl := s.ctrl

	gr.HandleFunc("/state", handleQuery(s, "state", func(r *http.Request) (any, error) {
		return s.stateData(), nil
	})).Methods("GET")

	// projects
	gr.HandleFunc("/project/add", handleJson(s, "project.add", func(req NameRequest) (any, error) {
		p, err := ctrl.AddProject(req.Name)
		if err != nil {
			return nil, err
		}
		return IdRequest{Id: p.Id}, nil
	})).Methods("POST")
	gr.HandleFunc("/project/rename", handleJson(s, "project.rename", func(req NameRequest) (any, error) {
		return noData(ctrl.RenameProject(req.Id, req.Name))
	})).Methods("POST")
	gr.HandleFunc("/project/delete", handleJson(s, "project.delete", func(req IdRequest) (any, error) {
		return noData(ctrl.DeleteProject(req.Id))
	})).Methods("POST")
	gr.HandleFunc("/project/select", handleJson(s, "project.select", func(req IdRequest) (any, error) {
		return noData(ctrl.SelectProject(req.Id))
	})).Methods("POST")
	gr.HandleFunc("/project/find", handleQuery(s, "project.find", func(r *http.Request) (any, error) {
		projects := ctrl.Workspace().Projects
		names := make([]string, len(projects))
		for idx, p := range projects {
			names[idx] = p.Name
		}
		rows := rowview.BuildProjectRows(projects)
		rtn := []rowview.ProjectRow{}
		for _, m := range namesearch.Find(r.URL.Query().Get("q"), names) {
			rtn = append(rtn, rows[m.Index])
		}
		return rtn, nil
	})).Methods("GET")

	// groups
	gr.HandleFunc("/group/add", handleJson(s, "group.add", func(req NameRequest) (any, error) {
		g, err := ctrl.AddGroup(req.Name)
		if err != nil {
			return nil, err
		}
		return IdRequest{Id: g.Id}, nil
	})).Methods("POST")
	gr.HandleFunc("/group/rename", handleJson(s, "group.rename", func(req NameRequest) (any, error) {
		return noData(ctrl.RenameGroup(req.Id, req.Name))
	})).Methods("POST")
	gr.HandleFunc("/group/delete", handleJson(s, "group.delete", func(req IdRequest) (any, error) {
		return noData(ctrl.DeleteGroup(req.Id))
	})).Methods("POST")
	gr.HandleFunc("/group/move", handleJson(s, "group.move", func(req MoveRequest) (any, error) {
		return noData(ctrl.MoveGroup(req.Id, req.Index))
	})).Methods("POST")
	gr.HandleFunc("/group/toggle", handleJson(s, "group.toggle", func(req ToggleRequest) (any, error) {
		switch req.Flag {
		case FlagHighlight:
			return noData(ctrl.ToggleGroupHighlight(req.Id))
		case FlagShown:
			return noData(ctrl.ToggleGroupShown(req.Id))
		}
		return nil, fmt.Errorf("unknown flag %q", req.Flag)
	})).Methods("POST")

	// filters
	gr.HandleFunc("/filter/add", handleJson(s, "filter.add", func(req FilterRequest) (any, error) {
		f, err := ctrl.AddFilter(req.GroupId, req.Regex, req.IsExclude)
		if err != nil || f == nil {
			return nil, err
		}
		return IdRequest{Id: f.Id}, nil
	})).Methods("POST")
	gr.HandleFunc("/filter/edit", handleJson(s, "filter.edit", func(req FilterRequest) (any, error) {
		return noData(ctrl.EditFilter(req.Id, req.Regex))
	})).Methods("POST")
	gr.HandleFunc("/filter/delete", handleJson(s, "filter.delete", func(req IdRequest) (any, error) {
		return noData(ctrl.DeleteFilter(req.Id))
	})).Methods("POST")
	gr.HandleFunc("/filter/move", handleJson(s, "filter.move", func(req MoveRequest) (any, error) {
		return noData(ctrl.MoveFilter(req.Id, req.Index))
	})).Methods("POST")
	gr.HandleFunc("/filter/toggle", handleJson(s, "filter.toggle", func(req ToggleRequest) (any, error) {
		switch req.Flag {
		case FlagHighlight:
			return noData(ctrl.ToggleFilterHighlight(req.Id))
		case FlagShown:
			return noData(ctrl.ToggleFilterShown(req.Id))
		}
		return nil, fmt.Errorf("unknown flag %q", req.Flag)
	})).Methods("POST")

	// documents
	gr.HandleFunc("/document/open", handleJson(s, "document.open", func(req DocumentRequest) (any, error) {
		ctrl.OpenDocument(req.URI, req.Text)
		return nil, nil
	})).Methods("POST")
	gr.HandleFunc("/document/update", handleJson(s, "document.update", func(req DocumentRequest) (any, error) {
		ctrl.UpdateDocument(req.URI, req.Text)
		return nil, nil
	})).Methods("POST")
	gr.HandleFunc("/document/close", handleJson(s, "document.close", func(req DocumentRequest) (any, error) {
		ctrl.CloseDocument(req.URI)
		return nil, nil
	})).Methods("POST")
	gr.HandleFunc("/document/active", handleJson(s, "document.active", func(req DocumentRequest) (any, error) {
		ctrl.SetActiveDocument(req.URI)
		return nil, nil
	})).Methods("POST")
	gr.HandleFunc("/document/folding", handleQuery(s, "document.folding", func(r *http.Request) (any, error) {
		ranges := ctrl.FoldingRanges(r.URL.Query().Get("uri"))
		if ranges == nil {
			ranges = []focus.FoldRange{}
		}
		return ranges, nil
	})).Methods("GET")

	// focus
	gr.HandleFunc("/focus/enter", handleJson(s, "focus.enter", func(req struct{}) (any, error) {
		focusURI, err := ctrl.EnterFocus()
		if err != nil {
			return nil, err
		}
		return DocumentRequest{URI: focusURI}, nil
	})).Methods("POST")
	gr.HandleFunc("/focus/exit", handleJson(s, "focus.exit", func(req DocumentRequest) (any, error) {
		return noData(ctrl.ExitFocus(req.URI))
	})).Methods("POST")
	gr.HandleFunc("/focus", handleQuery(s, "focus.content", func(r *http.Request) (any, error) {
		uri := r.URL.Query().Get("uri")
		content, ok := ctrl.FocusContent(uri)
		if !ok {
			return nil, fmt.Errorf("no focused document %q", uri)
		}
		return DocumentRequest{URI: uri, Text: content}, nil
	})).Methods("GET")

	// persistence
	gr.HandleFunc("/save", handleJson(s, "save", func(req struct{}) (any, error) {
		ctrl.Save()
		return nil, nil
	})).Methods("POST")
	gr.HandleFunc("/export", handleQuery(s, "export", func(r *http.Request) (any, error) {
		data, err := ctrl.Export()
		if err != nil {
			return nil, err
		}
		return json.RawMessage(data), nil
	})).Methods("GET")
	gr.HandleFunc("/import", WebFnWrap(jsonOpts, s.handleImport)).Methods("POST")
}

// handleImport takes the raw snapshot as the request body
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, HttpMaxBodyBytes))
	if err != nil {
		WriteJsonError(w, err)
		return
	}
	var count int
	err = s.loop.Do("import", func() error {
		var err error
		count, err = s.ctrl.Import(data)
		return err
	})
	if err != nil {
		WriteJsonError(w, err)
		return
	}
	WriteJsonSuccess(w, map[string]int{"count": count})
}

func (s *Server) stateData() StateData {
	ws := s.ctrl.Workspace()
	groups := ws.ActiveGroups()
	state := s.ctrl.AppState()
	rtn := StateData{
		State:     s.ctrl.State().String(),
		Projects:  rowview.BuildProjectRows(ws.Projects),
		Filters:   rowview.BuildFilterRows(groups, rowview.ViewFilters),
		ExFilters: rowview.BuildFilterRows(groups, rowview.ViewExFilters),
		Documents: []string{},
		FocusDocs: []string{},
		ActiveURI: state.ActiveURI,
	}
	for _, doc := range state.Docs() {
		rtn.Documents = append(rtn.Documents, doc.URI)
	}
	for _, fdoc := range state.FocusDocs() {
		rtn.FocusDocs = append(rtn.FocusDocs, fdoc.URI)
	}
	return rtn
}
