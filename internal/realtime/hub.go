package realtime

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/ericogr/monster-battle/internal/battle"
	"github.com/ericogr/monster-battle/internal/constants"
	"github.com/ericogr/monster-battle/internal/logging"
)

// Message is one event pushed to subscribers of an encounter.
type Message struct {
	EncounterID string       `json:"encounter_id"`
	Event       battle.Event `json:"event"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub fans battle events out to websocket subscribers, per encounter. It
// implements battle.Observer.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*Connection]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*Connection]struct{})}
}

// OnEvent encodes the event once and queues it on every subscriber.
func (h *Hub) OnEvent(encounterID string, ev battle.Event) {
	h.mu.RLock()
	conns := make([]*Connection, 0, len(h.subs[encounterID]))
	for c := range h.subs[encounterID] {
		conns = append(conns, c)
	}
	h.mu.RUnlock()
	if len(conns) == 0 {
		return
	}
	b, err := json.Marshal(Message{EncounterID: encounterID, Event: ev})
	if err != nil {
		logging.Error("failed to encode battle event", err, logging.Fields{constants.LogFieldEncounterID: encounterID})
		return
	}
	for _, c := range conns {
		if !c.enqueue(b) {
			h.unsubscribe(encounterID, c)
		}
	}
}

func (h *Hub) subscribe(encounterID string, c *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[encounterID]
	if !ok {
		set = make(map[*Connection]struct{})
		h.subs[encounterID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) unsubscribe(encounterID string, c *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.subs[encounterID]
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.subs, encounterID)
	}
	c.close()
}

// Subscribers returns the number of live connections for an encounter.
func (h *Hub) Subscribers(encounterID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[encounterID])
}

// Serve upgrades the request and streams the encounter's events until the
// client disconnects.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, encounterID string) error {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	c := newConnection(ws)
	h.subscribe(encounterID, c)
	logging.Info("event stream opened", logging.Fields{constants.LogFieldEncounterID: encounterID, constants.LogFieldCount: h.Subscribers(encounterID)})

	go c.writePump()
	c.readPump()
	h.unsubscribe(encounterID, c)
	return nil
}
