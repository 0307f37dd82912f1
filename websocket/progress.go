// Package websocket streams live batch progress for running analyses.
package websocket

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	// In production, adjust the CheckOrigin function to allow only trusted origins.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ProgressEvent is one batch-completion update for a running analysis.
type ProgressEvent struct {
	AnalysisID   string `json:"analysis_id"`
	BatchesDone  int    `json:"batches_done"`
	BatchesTotal int    `json:"batches_total"`
	ClausesDone  int    `json:"clauses_done"`
	Done         bool   `json:"done"`
}

// Hub fans progress events out to subscribers keyed by analysis id. Events
// for ids with no subscriber are dropped.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[*websocket.Conn]bool
}

// DefaultHub is the process-wide hub used by the HTTP handlers.
var DefaultHub = NewHub()

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*websocket.Conn]bool)}
}

// Subscribe registers a connection for events about one analysis.
func (h *Hub) Subscribe(id string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[id] == nil {
		h.subs[id] = make(map[*websocket.Conn]bool)
	}
	h.subs[id][conn] = true
}

// Unsubscribe removes a connection; the id's entry is dropped when empty.
func (h *Hub) Unsubscribe(id string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.subs[id]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.subs, id)
		}
	}
}

// Publish sends the event to every subscriber of its analysis id. A final
// event (Done) closes the subscriptions.
func (h *Hub) Publish(ev ProgressEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.subs[ev.AnalysisID] {
		if err := conn.WriteJSON(ev); err != nil {
			conn.Close()
			delete(h.subs[ev.AnalysisID], conn)
		}
	}
	if ev.Done {
		for conn := range h.subs[ev.AnalysisID] {
			conn.Close()
		}
		delete(h.subs, ev.AnalysisID)
	}
}

// ProgressHandler upgrades the connection and streams progress events for
// the analysis id in the path.
func ProgressHandler(c *gin.Context) {
	id := c.Param("id")
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	DefaultHub.Subscribe(id, conn)

	// Reader loop exists only to notice the client going away.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				DefaultHub.Unsubscribe(id, conn)
				conn.Close()
				return
			}
		}
	}()
}
