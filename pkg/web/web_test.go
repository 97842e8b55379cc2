// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/logfocus/logfocus/pkg/controller"
	"github.com/logfocus/logfocus/pkg/filtermodel"
	"github.com/logfocus/logfocus/pkg/idgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiResponse struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

type testEnv struct {
	srv  *httptest.Server
	hub  *Hub
	ctrl *controller.Controller
}

func setupServer(t *testing.T) *testEnv {
	ws := filtermodel.MakeWorkspace(idgen.NewCounter("id"), &filtermodel.FixedColorGenerator{Colors: []string{"#c1"}})
	hub := MakeHub()
	host := MakeHost(hub)
	ctrl := controller.MakeController(ws, host.Collaborators(nil))
	loop := controller.MakeLoop(nil)
	ctx, cancel := context.WithCancel(context.Background())
	go loop.Run(ctx)
	require.NoError(t, loop.Do("bootstrap", func() error {
		ctrl.Bootstrap(nil, nil)
		return nil
	}))
	srv := httptest.NewServer(MakeHandler(MakeServer(loop, ctrl, hub), true))
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return &testEnv{srv: srv, hub: hub, ctrl: ctrl}
}

func (env *testEnv) post(t *testing.T, path string, body any) apiResponse {
	barr, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(env.srv.URL+path, ContentTypeJson, bytes.NewReader(barr))
	require.NoError(t, err)
	defer resp.Body.Close()
	var rtn apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rtn))
	return rtn
}

func (env *testEnv) get(t *testing.T, path string) apiResponse {
	resp, err := http.Get(env.srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	var rtn apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rtn))
	return rtn
}

func TestHealth(t *testing.T) {
	env := setupServer(t)
	resp := env.get(t, "/health")
	assert.True(t, resp.Success)
}

func TestApiFlow(t *testing.T) {
	env := setupServer(t)

	resp := env.post(t, "/api/group/add", NameRequest{Name: "errors"})
	require.True(t, resp.Success, resp.Error)
	var group IdRequest
	require.NoError(t, json.Unmarshal(resp.Data, &group))

	resp = env.post(t, "/api/filter/add", FilterRequest{GroupId: group.Id, Regex: "("})
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "invalid pattern")

	resp = env.post(t, "/api/filter/add", FilterRequest{GroupId: group.Id, Regex: "foo"})
	require.True(t, resp.Success, resp.Error)
	resp = env.post(t, "/api/filter/add", FilterRequest{GroupId: group.Id, Regex: "bar", IsExclude: true})
	require.True(t, resp.Success, resp.Error)

	uri := "file:///tmp/a.log"
	require.True(t, env.post(t, "/api/document/open", DocumentRequest{URI: uri, Text: "foo\nbar\nfoobar"}).Success)
	require.True(t, env.post(t, "/api/document/active", DocumentRequest{URI: uri}).Success)

	resp = env.post(t, "/api/focus/enter", nil)
	require.True(t, resp.Success, resp.Error)
	var focusDoc DocumentRequest
	require.NoError(t, json.Unmarshal(resp.Data, &focusDoc))
	assert.True(t, strings.HasPrefix(focusDoc.URI, "focus:"))

	resp = env.get(t, "/api/focus?uri="+url.QueryEscape(focusDoc.URI))
	require.True(t, resp.Success, resp.Error)
	var content DocumentRequest
	require.NoError(t, json.Unmarshal(resp.Data, &content))
	assert.Equal(t, "\nfoo", content.Text)

	resp = env.get(t, "/api/state")
	require.True(t, resp.Success, resp.Error)
	var state StateData
	require.NoError(t, json.Unmarshal(resp.Data, &state))
	assert.Equal(t, "selected", state.State)
	assert.Equal(t, []string{uri}, state.Documents)
	assert.Equal(t, []string{focusDoc.URI}, state.FocusDocs)
	require.Len(t, state.Filters, 1)
	require.Len(t, state.Filters[0].Children, 1)
	assert.Equal(t, " · 2", state.Filters[0].Children[0].Description)
	require.Len(t, state.ExFilters[0].Children, 1)
	assert.Equal(t, " · 1", state.ExFilters[0].Children[0].Description)

	resp = env.post(t, "/api/group/toggle", ToggleRequest{Id: group.Id, Flag: "bogus"})
	assert.False(t, resp.Success)

	resp = env.get(t, "/api/export")
	require.True(t, resp.Success, resp.Error)
	assert.Contains(t, string(resp.Data), `"regexText"`)
}

func TestApiProjectFind(t *testing.T) {
	env := setupServer(t)
	require.True(t, env.post(t, "/api/project/add", NameRequest{Name: "nginx-access"}).Success)
	resp := env.get(t, "/api/project/find?q=ngx")
	require.True(t, resp.Success, resp.Error)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal(resp.Data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "nginx-access", rows[0]["name"])
}

func TestImportRequiresSelection(t *testing.T) {
	env := setupServer(t)
	state := env.get(t, "/api/state")
	var data StateData
	require.NoError(t, json.Unmarshal(state.Data, &data))
	require.Len(t, data.Projects, 1)
	require.True(t, env.post(t, "/api/project/delete", IdRequest{Id: data.Projects[0].Id}).Success)

	resp, err := http.Post(env.srv.URL+"/api/import", ContentTypeJson, strings.NewReader(`{"groups":[]}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	var rtn apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rtn))
	assert.False(t, rtn.Success)
	assert.Equal(t, controller.ErrNoActiveProject.Error(), rtn.Error)
}

func TestWebSocketBroadcast(t *testing.T) {
	env := setupServer(t)
	wsURL := "ws" + strings.TrimPrefix(env.srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return env.hub.NumConns() == 1 }, 5*time.Second, 10*time.Millisecond)
	require.True(t, env.post(t, "/api/group/add", NameRequest{Name: "g"}).Success)

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)
		var ev Event
		require.NoError(t, json.Unmarshal(msg, &ev))
		if ev.Type != EventFilters {
			continue
		}
		require.Len(t, ev.Filters, 1)
		assert.Equal(t, "g", ev.Filters[0].Label)
		return
	}
}

func TestWebSocketInitialState(t *testing.T) {
	env := setupServer(t)
	wsURL := "ws" + strings.TrimPrefix(env.srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	var ev Event
	require.NoError(t, json.Unmarshal(msg, &ev))
	require.Equal(t, EventState, ev.Type)
	require.NotNil(t, ev.State)
	assert.Equal(t, "selected", ev.State.State)
	require.Len(t, ev.State.Projects, 1)
	assert.True(t, ev.State.Projects[0].IsSelected)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "ping"}))
	for {
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)
		var pong pingMessage
		require.NoError(t, json.Unmarshal(msg, &pong))
		if pong.Type == "pong" {
			assert.NotZero(t, pong.STime)
			return
		}
	}
}
