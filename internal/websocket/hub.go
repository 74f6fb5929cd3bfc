package websocket

import "github.com/rs/zerolog/log"

// Hub maintains the set of active clients and routes audit events to the
// clients of the account they belong to.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// A map of account IDs to the set of clients subscribed to them.
	subscriptions map[int64]map[*Client]bool

	send chan targetedMessage
}

type targetedMessage struct {
	userID  int64
	payload []byte
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Register:      make(chan *Client),
		Unregister:    make(chan *Client),
		clients:       make(map[*Client]bool),
		subscriptions: make(map[int64]map[*Client]bool),
		send:          make(chan targetedMessage, 64),
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			h.addSubscription(client)
			log.Info().Int("total_clients", len(h.clients)).Int64("user_id", client.UserID).Msg("Client connected")
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.removeSubscription(client)
				log.Info().Int("total_clients", len(h.clients)).Msg("Client disconnected")
			}
		case msg := <-h.send:
			for client := range h.subscriptions[msg.userID] {
				select {
				case client.Send <- msg.payload:
				default:
					close(client.Send)
					delete(h.clients, client)
					h.removeSubscription(client)
				}
			}
		}
	}
}

// BroadcastTo sends a message to all clients connected for a given account.
// Safe to call from any goroutine.
func (h *Hub) BroadcastTo(userID int64, message []byte) {
	h.send <- targetedMessage{userID: userID, payload: message}
}

func (h *Hub) addSubscription(client *Client) {
	if h.subscriptions[client.UserID] == nil {
		h.subscriptions[client.UserID] = make(map[*Client]bool)
	}
	h.subscriptions[client.UserID][client] = true
}

func (h *Hub) removeSubscription(client *Client) {
	if subs, ok := h.subscriptions[client.UserID]; ok {
		delete(subs, client)
		if len(subs) == 0 {
			delete(h.subscriptions, client.UserID)
		}
	}
}
