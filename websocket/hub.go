// Package websocket pushes live salon events (bookings, lifecycle changes,
// payments, reminders) to connected admin consoles.
package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Event types broadcast to the admin console
const (
	EventAppointmentCreated = "appointment_created"
	EventAppointmentUpdated = "appointment_updated"
	EventAppointmentStatus  = "appointment_status"
	EventAppointmentDeleted = "appointment_deleted"
	EventPaymentRecorded    = "payment_recorded"
	EventReminder           = "appointment_reminder"
)

// Event is the wire envelope for hub broadcasts
type Event struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Hub manages all connected admin console clients
type Hub struct {
	// Registered clients
	Clients map[*Client]bool

	// Broadcast channel for events to all clients
	Broadcast chan *Event

	// Register requests from clients
	Register chan *Client

	// Unregister requests from clients
	Unregister chan *Client

	mu sync.RWMutex
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Broadcast:  make(chan *Event, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.Clients[client] = true
			h.mu.Unlock()
			log.Printf("🔌 Console connected: %s", client.RemoteAddr)

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			log.Printf("🔌 Console disconnected: %s", client.RemoteAddr)

		case event := <-h.Broadcast:
			h.broadcastEvent(event)
		}
	}
}

// broadcastEvent sends an event to all connected clients
func (h *Hub) broadcastEvent(event *Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("❌ Failed to marshal event %q: %v", event.Type, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.Clients {
		select {
		case client.Send <- payload:
		default:
			// Slow consumer, drop the event rather than block the hub
			log.Printf("⚠️ Dropping %q event for slow console %s", event.Type, client.RemoteAddr)
		}
	}
}

// Publish queues an event for broadcast without blocking the caller
func (h *Hub) Publish(eventType string, data interface{}) {
	event := &Event{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now(),
	}
	select {
	case h.Broadcast <- event:
	default:
		log.Printf("⚠️ Event queue full, dropping %q event", eventType)
	}
}
