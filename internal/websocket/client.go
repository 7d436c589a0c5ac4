package websocket

import (
	"bytes"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"campaignpulse/internal/infrastructure"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Clients only send heartbeats.
	maxMessageSize = 512
)

var (
	newline = []byte{'\n'}
	space   = []byte{' '}
)

// Client is the middleman between a WebSocket connection and the hub.
type Client struct {
	hub  *Hub
	conn Connection

	// Buffered channel of outbound messages.
	send chan []byte

	id          string
	traceID     string
	remoteAddr  string
	connectedAt time.Time

	logger *slog.Logger

	messagesSent  int64
	bytesSent     int64
	bytesReceived int64
}

// NewClient creates a client for a gorilla connection.
func NewClient(hub *Hub, conn *websocket.Conn, logger *slog.Logger) *Client {
	return NewClientWithConnection(hub, NewConnectionWrapper(conn), logger)
}

// NewClientWithConnection creates a client over any Connection. Tests use
// this with an in-memory connection.
func NewClientWithConnection(hub *Hub, conn Connection, logger *slog.Logger) *Client {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	id := uuid.New().String()
	logger = logger.With(
		slog.String("component", "websocket.client"),
		slog.String("client_id", id),
	)

	return &Client{
		hub:         hub,
		conn:        conn,
		send:        make(chan []byte, 256),
		id:          id,
		remoteAddr:  conn.RemoteAddr(),
		connectedAt: time.Now(),
		logger:      logger,
	}
}

// NewClientWithTrace creates a client carrying the upgrade request's trace
// ID so hub logs correlate with HTTP logs.
func NewClientWithTrace(hub *Hub, conn *websocket.Conn, traceID string, logger *slog.Logger) *Client {
	client := NewClient(hub, conn, logger)
	client.traceID = traceID
	client.logger = client.logger.With(slog.String("trace_id", traceID))
	return client
}

// ReadPump pumps messages from the connection to the hub. The dashboard
// only sends heartbeats; everything else is discarded.
func (c *Client) ReadPump() {
	defer func() {
		c.logger.InfoContext(clientContext(c), "client disconnected",
			slog.Duration("connection_duration", time.Since(c.connectedAt)),
			slog.Int64("bytes_received", c.bytesReceived))
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.ErrorContext(clientContext(c), "unexpected close error",
					slog.String("error", err.Error()))
			}
			break
		}
		message = bytes.TrimSpace(bytes.Replace(message, newline, space, -1))
		c.bytesReceived += int64(len(message))

		if string(message) == `{"type":"heartbeat"}` {
			// Pong handler already extended the read deadline.
			c.logger.Debug("heartbeat received")
			continue
		}
	}
}

// WritePump pumps messages from the hub to the connection and keeps the
// connection alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
		c.logger.InfoContext(clientContext(c), "write pump stopped",
			slog.Int64("messages_sent", c.messagesSent),
			slog.Int64("bytes_sent", c.bytesSent))
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.ErrorContext(clientContext(c), "error writing message",
					slog.String("error", err.Error()))
				return
			}
			c.messagesSent++
			c.bytesSent += int64(len(message))

			if m := GetOTelMetrics(); m != nil {
				m.RecordMessageSent(clientContext(c), int64(len(message)))
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.DebugContext(clientContext(c), "failed to send ping",
					slog.String("error", err.Error()))
				return
			}
		}
	}
}

// ServeWS registers a new client for an upgraded connection and starts its
// pumps.
func ServeWS(hub *Hub, conn *websocket.Conn, traceID string) {
	client := NewClientWithTrace(hub, conn, traceID, nil)
	client.hub.register <- client

	go client.WritePump()
	go client.ReadPump()
}
