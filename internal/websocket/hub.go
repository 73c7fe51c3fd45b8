package websocket

import "github.com/rs/zerolog/log"

// Hub maintains the set of active clients and broadcasts audit events to
// them. Every connected client receives every published message.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Messages queued for broadcast to all clients.
	broadcast chan []byte

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan []byte, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// Publish queues a message for delivery to every connected client. Messages
// are dropped rather than blocking the caller when the queue is full.
func (h *Hub) Publish(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		log.Warn().Msg("Websocket broadcast queue full, dropping message")
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			log.Info().Int("total_clients", len(h.clients)).Msg("Client connected")
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				log.Info().Int("total_clients", len(h.clients)).Msg("Client disconnected")
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					// Slow consumer, cut it loose.
					close(client.Send)
					delete(h.clients, client)
				}
			}
		}
	}
}
