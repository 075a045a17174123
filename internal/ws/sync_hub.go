package ws

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 64
)

// SyncEvent is pushed to staff dashboards when a spreadsheet sync
// generation completes, so open pages can refetch without polling.
type SyncEvent struct {
	Type string    `json:"type"`
	Kind string    `json:"kind"`
	Rows int       `json:"rows"`
	At   time.Time `json:"at"`
}

// SyncHub fans sync events out to connected dashboard clients.
type SyncHub struct {
	register   chan *syncClient
	unregister chan *syncClient
	broadcast  chan []byte
	clients    map[*syncClient]struct{}
}

func NewSyncHub() *SyncHub {
	return &SyncHub{
		register:   make(chan *syncClient),
		unregister: make(chan *syncClient),
		broadcast:  make(chan []byte, 64),
		clients:    make(map[*syncClient]struct{}),
	}
}

func (h *SyncHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = struct{}{}
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				client.conn.Close()
			}
		case msg := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- msg:
				default:
					delete(h.clients, client)
					close(client.send)
					client.conn.Close()
				}
			}
		}
	}
}

// SyncCompleted implements sheetsync.Notifier.
func (h *SyncHub) SyncCompleted(kind string, rows int) {
	if h == nil {
		return
	}
	data, err := json.Marshal(SyncEvent{Type: "sync_completed", Kind: kind, Rows: rows, At: time.Now()})
	if err != nil {
		log.Printf("ws: failed to marshal sync event: %v", err)
		return
	}
	h.broadcast <- data
}

type syncClient struct {
	hub  *SyncHub
	conn *websocket.Conn
	send chan []byte
}

func newSyncClient(hub *SyncHub, conn *websocket.Conn) *syncClient {
	return &syncClient{hub: hub, conn: conn, send: make(chan []byte, sendBufferSize)}
}

func (c *syncClient) readPump() {
	defer func() {
		c.hub.unregister <- c
	}()
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *syncClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
