// Package websocket streams live trip updates (vehicle position, seat
// counts, fresh ETA predictions) to clients watching a trip.
package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/routeradar/bus-booking-system/internal/models"
)

// MessageType represents the type of WebSocket message
type MessageType string

const (
	MessageTypePositionUpdated MessageType = "position_updated"
	MessageTypeSeatsUpdated    MessageType = "seats_updated"
	MessageTypeEtaUpdated      MessageType = "eta_updated"
)

// Message represents a WebSocket message
type Message struct {
	Type       MessageType           `json:"type"`
	TripID     string                `json:"tripId"`
	Trip       *models.TripSnapshot  `json:"trip,omitempty"`
	Prediction *models.EtaPrediction `json:"prediction,omitempty"`
	Timestamp  int64                 `json:"timestamp"`
}

// Hub manages WebSocket connections per trip
type Hub struct {
	clients    map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
	mu         sync.RWMutex
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 256),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.tripID] == nil {
				h.clients[client.tripID] = make(map[*Client]bool)
			}
			h.clients[client.tripID][client] = true
			log.Printf("WebSocket: client registered for trip %s (total: %d)", client.tripID, len(h.clients[client.tripID]))
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.tripID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.send)
					log.Printf("WebSocket: client unregistered from trip %s (remaining: %d)", client.tripID, len(clients))
					if len(clients) == 0 {
						delete(h.clients, client.tripID)
					}
				}
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			data, err := json.Marshal(message)
			if err != nil {
				log.Printf("WebSocket: failed to marshal message: %v", err)
				continue
			}

			h.mu.RLock()
			clients := h.clients[message.TripID]
			h.mu.RUnlock()

			for client := range clients {
				select {
				case client.send <- data:
				default:
					h.mu.Lock()
					delete(h.clients[message.TripID], client)
					close(client.send)
					h.mu.Unlock()
				}
			}
		}
	}
}

// BroadcastPositionUpdate notifies watchers that a trip's vehicle moved.
func (h *Hub) BroadcastPositionUpdate(snapshot models.TripSnapshot) {
	h.broadcast <- &Message{
		Type:      MessageTypePositionUpdated,
		TripID:    snapshot.ID,
		Trip:      &snapshot,
		Timestamp: time.Now().UnixMilli(),
	}
}

// BroadcastSeatUpdate notifies watchers that seats were booked on a trip.
func (h *Hub) BroadcastSeatUpdate(snapshot models.TripSnapshot) {
	h.broadcast <- &Message{
		Type:      MessageTypeSeatsUpdated,
		TripID:    snapshot.ID,
		Trip:      &snapshot,
		Timestamp: time.Now().UnixMilli(),
	}
}

// BroadcastEtaUpdate notifies watchers of a fresh arrival prediction.
func (h *Hub) BroadcastEtaUpdate(tripID string, prediction models.EtaPrediction) {
	h.broadcast <- &Message{
		Type:       MessageTypeEtaUpdated,
		TripID:     tripID,
		Prediction: &prediction,
		Timestamp:  time.Now().UnixMilli(),
	}
}

// GetClientCount returns the number of clients watching a trip
func (h *Hub) GetClientCount(tripID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[tripID])
}
