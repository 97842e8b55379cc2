// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/logfocus/logfocus/pkg/utilds"
)

const wsReadWaitTimeout = 15 * time.Second
const wsWriteWaitTimeout = 10 * time.Second
const wsPingPeriodTickTime = 10 * time.Second
const wsInitialPingTime = 1 * time.Second
const wsOutputBufferSize = 256
const wsReadLimit = 64 * 1024

var WebSocketUpgrader = websocket.Upgrader{
	ReadBufferSize:   4 * 1024,
	WriteBufferSize:  32 * 1024,
	HandshakeTimeout: 1 * time.Second,
	CheckOrigin:      func(r *http.Request) bool { return true },
}

// Hub fans out controller events to every connected websocket client
type Hub struct {
	clients *utilds.SyncMap[string, *wsClient]

	// onConnect is called (on the connection's goroutine) once a client is registered
	onConnect func(connId string)
}

type wsClient struct {
	id       string
	conn     *websocket.Conn
	outputCh chan any
	closeCh  chan struct{}
}

// pingMessage is exchanged in both directions to keep idle connections alive
type pingMessage struct {
	Type  string `json:"type"`
	STime int64  `json:"stime"`
}

func MakeHub() *Hub {
	return &Hub{clients: utilds.MakeSyncMap[string, *wsClient]()}
}

func (h *Hub) NumConns() int {
	return h.clients.Len()
}

// Broadcast queues msg for every client. Clients that fall behind miss messages.
func (h *Hub) Broadcast(msg any) {
	h.clients.ForEach(func(_ string, c *wsClient) {
		c.send(msg)
	})
}

// SendTo queues msg for one client; unknown ids are ignored
func (h *Hub) SendTo(connId string, msg any) {
	if c, ok := h.clients.Get(connId); ok {
		c.send(msg)
	}
}

func (h *Hub) HandleWs(w http.ResponseWriter, r *http.Request) {
	if err := h.serveClient(w, r); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Hub) serveClient(w http.ResponseWriter, r *http.Request) error {
	conn, err := WebSocketUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("websocket upgrade failed: %v", err)
	}
	defer conn.Close()

	c := &wsClient{
		id:       uuid.New().String(),
		conn:     conn,
		outputCh: make(chan any, wsOutputBufferSize),
		closeCh:  make(chan struct{}),
	}
	log.Infof("[websocket] new connection: connid:%s", c.id)
	h.clients.Set(c.id, c)
	defer h.clients.Delete(c.id)
	if h.onConnect != nil {
		h.onConnect(c.id)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		c.readLoop()
	}()
	go func() {
		defer wg.Done()
		c.writeLoop()
	}()
	wg.Wait()
	log.Infof("[websocket] connection closed: connid:%s", c.id)
	return nil
}

func (c *wsClient) send(msg any) {
	select {
	case c.outputCh <- msg:
	default:
		log.Warnf("[websocket] output buffer full, dropping message for %s", c.id)
	}
}

// readLoop answers pings and otherwise discards input; commands go through the http api
func (c *wsClient) readLoop() {
	defer close(c.closeCh)
	c.conn.SetReadLimit(wsReadLimit)
	c.conn.SetReadDeadline(time.Now().Add(wsReadWaitTimeout))
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			log.Debugf("[websocket] read error (%s): %v", c.id, err)
			return
		}
		var msg pingMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Warnf("[websocket] error unmarshalling json: %v", err)
			return
		}
		c.conn.SetReadDeadline(time.Now().Add(wsReadWaitTimeout))
		if msg.Type == "ping" {
			c.send(pingMessage{Type: "pong", STime: time.Now().UnixMilli()})
		}
	}
}

func (c *wsClient) writeJson(msg any) error {
	barr, err := json.Marshal(msg)
	if err != nil {
		log.Errorf("[websocket] cannot marshal websocket message: %v", err)
		return nil
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWaitTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, barr)
}

func (c *wsClient) writeLoop() {
	ticker := time.NewTicker(wsInitialPingTime)
	defer ticker.Stop()
	initialPing := true
	for {
		var err error
		select {
		case msg := <-c.outputCh:
			err = c.writeJson(msg)
		case <-ticker.C:
			err = c.writeJson(pingMessage{Type: "ping", STime: time.Now().UnixMilli()})
			if initialPing {
				initialPing = false
				ticker.Reset(wsPingPeriodTickTime)
			}
		case <-c.closeCh:
			return
		}
		if err != nil {
			log.Debugf("[websocket] write error (%s): %v", c.id, err)
			c.conn.Close()
			return
		}
	}
}
