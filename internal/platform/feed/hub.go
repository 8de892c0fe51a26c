// Package feed broadcasts run snapshots to read-only spectators over
// WebSocket.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// ErrClosed is returned by Publish once the hub has stopped.
var ErrClosed = errors.New("feed: hub closed")

const broadcastBuffer = 64

// Frame is the JSON envelope of every message sent to spectators.
type Frame struct {
	Type   string `json:"type"`
	Sender string `json:"sender,omitempty"`
	State  any    `json:"state"`
}

// FrameState is the type of frames carrying a run snapshot.
const FrameState = "run_state"

// Hub keeps the set of spectators and fans frames out to them. All client
// bookkeeping happens on the Run goroutine.
type Hub struct {
	logger     *log.Logger
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	stopped    chan struct{}
	count      atomic.Int64
}

// NewHub creates a hub. A nil logger discards.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		logger:     logger,
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, broadcastBuffer),
		stopped:    make(chan struct{}),
	}
}

// Run is the main loop of the hub. It blocks until ctx is done, then
// disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		for c := range h.clients {
			delete(h.clients, c)
			close(c.send)
		}
		h.count.Store(0)
		close(h.stopped)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.count.Store(int64(len(h.clients)))
			h.logger.Info("spectator connected", "client", c.id, "remote", c.remote)

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.count.Store(int64(len(h.clients)))
				h.logger.Info("spectator disconnected", "client", c.id)
			}

		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Send buffer full: drop the spectator.
					delete(h.clients, c)
					close(c.send)
					h.count.Store(int64(len(h.clients)))
					h.logger.Warn("spectator too slow, dropped", "client", c.id)
				}
			}
		}
	}
}

// Publish sends v to every spectator as a state frame. It never blocks: when
// the broadcast queue is full the frame is dropped.
func (h *Hub) Publish(v any) error {
	return h.publish(Frame{Type: FrameState, State: v})
}

func (h *Hub) publish(f Frame) error {
	select {
	case <-h.stopped:
		return ErrClosed
	default:
	}

	data, err := json.Marshal(f)
	if err != nil {
		return err
	}

	select {
	case h.broadcast <- data:
	default:
		h.logger.Debug("broadcast queue full, frame dropped")
	}
	return nil
}

// Source returns a publisher that tags its frames with a sender name.
func (h *Hub) Source(sender string) *Source {
	return &Source{hub: h, sender: sender}
}

// ClientCount returns the number of connected spectators.
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

// Done is closed when Run has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.stopped
}

// Source publishes on a hub under one sender name, typically the SSH user.
type Source struct {
	hub    *Hub
	sender string
}

// Publish sends v as a state frame tagged with the source's sender.
func (s *Source) Publish(v any) error {
	return s.hub.publish(Frame{Type: FrameState, Sender: s.sender, State: v})
}
