package websocket

import (
	"sync"

	"github.com/rs/zerolog/log"
)

const broadcastBufferSize = 256

// Hub maintains the set of active feed clients and broadcasts post events to them.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Encoded messages for every client.
	Broadcast chan []byte

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	done     chan struct{}
	stopOnce sync.Once
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Broadcast:  make(chan []byte, broadcastBufferSize),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		done:       make(chan struct{}),
	}
}

// Run starts the Hub's message processing loop. It returns after Stop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			log.Info().Str("user_id", client.UserID).Int("total_clients", len(h.clients)).Msg("Feed client connected")
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
				log.Info().Str("user_id", client.UserID).Int("total_clients", len(h.clients)).Msg("Feed client disconnected")
			}
		case message := <-h.Broadcast:
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					log.Warn().Str("user_id", client.UserID).Msg("Dropping slow feed client")
					h.drop(client)
				}
			}
		case <-h.done:
			for client := range h.clients {
				h.drop(client)
			}
			log.Info().Msg("Feed hub stopped")
			return
		}
	}
}

// Stop ends Run and closes every client's send channel. It is safe to call more than once.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// Publish broadcasts an event to every connected client. It never blocks;
// when the broadcast buffer is full the event is dropped.
func (h *Hub) Publish(action string, payload interface{}) {
	message, err := NewMessage(action, payload)
	if err != nil {
		log.Error().Err(err).Str("action", action).Msg("Failed to encode feed event")
		return
	}

	select {
	case h.Broadcast <- message:
	default:
		log.Warn().Str("action", action).Msg("Feed broadcast buffer full, dropping event")
	}
}

func (h *Hub) join(client *Client) bool {
	select {
	case h.Register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.Unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	close(client.Send)
}
