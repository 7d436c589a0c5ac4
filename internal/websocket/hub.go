// Package websocket pushes dataset lifecycle events to connected dashboard
// pages so they can refresh their charts without polling.
package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"campaignpulse/internal/infrastructure"
	"campaignpulse/pkg/contracts/events"
)

// Message type constants for hub broadcasts, mirroring the event
// contracts so callers don't have to import the contracts package.
const (
	TypeConnection       = string(events.TypeConnection)
	TypeDatasetReloading = string(events.TypeDatasetReloading)
	TypeDatasetReloaded  = string(events.TypeDatasetReloaded)
	TypeExportCompleted  = string(events.TypeExportCompleted)
	TypeStatus           = string(events.TypeStatus)
	TypeError            = string(events.TypeError)
)

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	mu     sync.RWMutex
	logger *slog.Logger

	totalConnections int64
	messagesSent     int64

	quit    chan struct{}
	running bool
}

// NewHub creates a hub. A nil logger falls back to the process logger.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	logger = logger.With(slog.String("component", "websocket.hub"))

	return &Hub{
		broadcast:  make(chan []byte, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		logger:     logger,
		quit:       make(chan struct{}),
	}
}

// Start launches the hub loop. Calling Start twice is a no-op.
func (h *Hub) Start() {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		return
	}
	h.running = true
	h.mu.Unlock()

	go h.Run()
}

// Run processes register, unregister and broadcast events until Stop.
func (h *Hub) Run() {
	for {
		select {
		case <-h.quit:
			h.logger.Info("hub shutting down")
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.totalConnections++
			h.mu.Unlock()

			ctx := clientContext(client)
			h.logger.InfoContext(ctx, "client registered",
				slog.Int("total_clients", count),
				slog.String("client_id", client.id),
				slog.String("remote_addr", client.remoteAddr))

			if m := GetOTelMetrics(); m != nil {
				m.RecordConnection(ctx)
				m.RecordClientCount(ctx, int64(count))
			}

			// Welcome message so the page knows the channel is live.
			h.sendDirect(client, events.NewEnvelope(events.TypeConnection, events.Connected{
				Status:   "connected",
				Message:  "Connected to CampaignPulse",
				ClientID: client.id,
			}, client.traceID))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				count := len(h.clients)
				h.mu.Unlock()

				ctx := clientContext(client)
				h.logger.InfoContext(ctx, "client unregistered",
					slog.Int("total_clients", count),
					slog.String("client_id", client.id),
					slog.Duration("connection_duration", time.Since(client.connectedAt)))

				if m := GetOTelMetrics(); m != nil {
					m.RecordDisconnection(ctx, time.Since(client.connectedAt))
					m.RecordClientCount(ctx, int64(count))
				}
			} else {
				h.mu.Unlock()
			}

		case message := <-h.broadcast:
			h.mu.RLock()
			clients := make([]*Client, 0, len(h.clients))
			for client := range h.clients {
				clients = append(clients, client)
			}
			h.mu.RUnlock()

			sent := 0
			dropped := 0
			for _, client := range clients {
				select {
				case client.send <- message:
					sent++
					h.messagesSent++
				default:
					// Client buffer full; cut it loose rather than block
					// the hub loop.
					dropped++
					h.mu.Lock()
					close(client.send)
					delete(h.clients, client)
					h.mu.Unlock()

					h.logger.WarnContext(clientContext(client), "client send buffer full, disconnecting",
						slog.String("client_id", client.id))
				}
			}

			if dropped > 0 {
				h.logger.Warn("some clients missed broadcast",
					slog.Int("sent", sent),
					slog.Int("dropped", dropped))
			}

			if m := GetOTelMetrics(); m != nil {
				m.RecordBroadcast(context.Background(), int64(len(clients)), int64(len(message)))
			}
		}
	}
}

// sendDirect queues a message to a single client, skipping it if the client
// buffer is full.
func (h *Hub) sendDirect(client *Client, message events.Envelope) {
	jsonData, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("error marshaling message", slog.String("error", err.Error()))
		return
	}
	select {
	case client.send <- jsonData:
	default:
		h.logger.Warn("failed to queue message, client buffer full",
			slog.String("client_id", client.id))
	}
}

// Broadcast sends a typed event with a payload to all connected clients.
func (h *Hub) Broadcast(messageType string, data interface{}) {
	h.BroadcastWithTrace(messageType, data, "")
}

// BroadcastWithTrace sends a typed event carrying a trace ID for
// correlation with server logs.
func (h *Hub) BroadcastWithTrace(messageType string, data interface{}, traceID string) {
	message := events.NewEnvelope(events.MessageType(messageType), data, traceID)

	jsonData, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("error marshaling broadcast",
			slog.String("error", err.Error()),
			slog.String("message_type", messageType))
		return
	}
	h.broadcast <- jsonData
}

// BroadcastDatasetReloading announces that a dataset reload has started.
func (h *Hub) BroadcastDatasetReloading(path string) {
	h.Broadcast(TypeDatasetReloading, events.DatasetReloading{Path: path})
}

// BroadcastDatasetReloaded announces a completed reload together with the
// new dataset summary so pages can refresh.
func (h *Hub) BroadcastDatasetReloaded(info interface{}) {
	h.Broadcast(TypeDatasetReloaded, info)
}

// BroadcastExportCompleted announces a finished export.
func (h *Hub) BroadcastExportCompleted(format, filename string) {
	h.Broadcast(TypeExportCompleted, events.ExportCompleted{
		Format:   format,
		Filename: filename,
	})
}

// BroadcastStatus sends a status update message.
func (h *Hub) BroadcastStatus(status, message string) {
	h.Broadcast(TypeStatus, events.Status{
		Status:  status,
		Message: message,
	})
}

// BroadcastError sends a structured error message.
func (h *Hub) BroadcastError(code, message string) {
	h.Broadcast(TypeError, events.Error{
		Code:    code,
		Message: message,
	})
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Register adds a client to the hub.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Stop gracefully stops the hub and disconnects all clients.
func (h *Hub) Stop() {
	h.mu.Lock()
	if !h.running {
		h.mu.Unlock()
		return
	}
	h.running = false
	h.mu.Unlock()

	close(h.quit)

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
}

// Stats returns hub counters for the health endpoint.
func (h *Hub) Stats() map[string]interface{} {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return map[string]interface{}{
		"active_clients":    len(h.clients),
		"total_connections": h.totalConnections,
		"messages_sent":     h.messagesSent,
	}
}

func clientContext(client *Client) context.Context {
	ctx := context.Background()
	if client.traceID != "" {
		ctx = infrastructure.WithTraceID(ctx, client.traceID)
	}
	return ctx
}
