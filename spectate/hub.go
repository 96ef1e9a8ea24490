// Package spectate streams a running session to read-only remote viewers.
package spectate

import (
	"context"
	"sync"

	"snake-sim/game"
	"snake-sim/game/types"

	log "github.com/sirupsen/logrus"
)

const (
	MsgFrame    = "frame"
	MsgScore    = "score"
	MsgGameOver = "gameOver"
	MsgReset    = "reset"
)

// Message is one JSON object sent to a spectator
type Message struct {
	Type  string           `json:"type"`
	Frame *game.Snapshot   `json:"frame,omitempty"`
	Score float64          `json:"score"`
	Cause types.DeathCause `json:"cause,omitempty"`
}

type client struct {
	send chan Message
}

// Hub fans session events out to connected clients. It is a game.Observer;
// the session goroutine never blocks on it, a full queue drops the event.
type Hub struct {
	messages   chan Message
	register   chan *client
	unregister chan *client
	clients    map[*client]struct{}

	mu        sync.RWMutex
	latest    game.Snapshot
	hasLatest bool

	log *log.Entry
}

func NewHub(logger *log.Entry) *Hub {
	return &Hub{
		messages:   make(chan Message, 64),
		register:   make(chan *client),
		unregister: make(chan *client),
		clients:    make(map[*client]struct{}),
		log:        logger,
	}
}

// Run delivers messages until ctx is done, then closes every client queue
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		for c := range h.clients {
			close(c.send)
			delete(h.clients, c)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case c := <-h.register:
			h.clients[c] = struct{}{}
			if snap, ok := h.Latest(); ok {
				c.send <- Message{Type: MsgFrame, Frame: &snap}
			}
			h.log.WithField("clients", len(h.clients)).Info("spectator joined")

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.log.WithField("clients", len(h.clients)).Info("spectator left")
			}

		case msg := <-h.messages:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					h.log.Warn("spectator too slow, dropping message")
				}
			}
		}
	}
}

func (h *Hub) publish(msg Message) {
	select {
	case h.messages <- msg:
	default:
		h.log.WithField("type", msg.Type).Warn("spectator queue full")
	}
}

// Latest is the most recent frame, for clients that join mid-round
func (h *Hub) Latest() (game.Snapshot, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest, h.hasLatest
}

var _ game.Observer = (*Hub)(nil)

func (h *Hub) OnFrame(s game.Snapshot) {
	h.mu.Lock()
	h.latest = s
	h.hasLatest = true
	h.mu.Unlock()
	h.publish(Message{Type: MsgFrame, Frame: &s})
}

func (h *Hub) OnScoreChanged(score float64) {
	h.publish(Message{Type: MsgScore, Score: score})
}

func (h *Hub) OnGameOver(cause types.DeathCause) {
	h.publish(Message{Type: MsgGameOver, Cause: cause})
}

func (h *Hub) OnGameReset() {
	h.publish(Message{Type: MsgReset})
}
