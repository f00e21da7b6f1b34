package occupancy

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // configure in prod
}

// WSEvent is a real-time occupancy update pushed to dashboard clients.
type WSEvent struct {
	Type       string             `json:"type"`
	MerchantID int64              `json:"merchant_id"`
	Payload    *MerchantOccupancy `json:"payload,omitempty"`
}

const EventOccupancy = "occupancy"

// subscriber is a single dashboard websocket connection watching one merchant.
type subscriber struct {
	merchantID int64
	conn       *websocket.Conn
	send       chan []byte
}

// Hub fans occupancy snapshots out to dashboard connections. Purely a
// delivery mechanism: a dropped or slow client never blocks a broadcast.
type Hub struct {
	mu   sync.RWMutex
	subs map[int64]map[*subscriber]bool // merchantID -> connections
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int64]map[*subscriber]bool)}
}

func (h *Hub) register(s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[s.merchantID] == nil {
		h.subs[s.merchantID] = make(map[*subscriber]bool)
	}
	h.subs[s.merchantID][s] = true
}

func (h *Hub) unregister(s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.subs[s.merchantID]; ok && set[s] {
		delete(set, s)
		close(s.send)
		if len(set) == 0 {
			delete(h.subs, s.merchantID)
		}
	}
}

// Broadcast pushes a snapshot to every dashboard watching the merchant.
func (h *Hub) Broadcast(merchantID int64, snap *MerchantOccupancy) {
	data, err := json.Marshal(&WSEvent{
		Type:       EventOccupancy,
		MerchantID: merchantID,
		Payload:    snap,
	})
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subs[merchantID] {
		select {
		case s.send <- data:
		default:
			// Client too slow, drop the update
		}
	}
}

// ServeWS upgrades the request and pumps snapshots until disconnect.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, merchantID int64) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	s := &subscriber{
		merchantID: merchantID,
		conn:       conn,
		send:       make(chan []byte, 16),
	}
	h.register(s)

	go h.writePump(s)
	h.readPump(s) // blocks until disconnect
	return nil
}

func (h *Hub) readPump(s *subscriber) {
	defer func() {
		h.unregister(s)
		s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMsgSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Dashboards only listen; drain control frames until the peer goes away.
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) writePump(s *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
