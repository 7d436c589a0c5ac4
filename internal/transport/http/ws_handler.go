package http

import (
	"log/slog"
	"net/http"

	gorilla "github.com/gorilla/websocket"

	"campaignpulse/internal/config"
	"campaignpulse/internal/infrastructure"
	"campaignpulse/internal/middleware"
	"campaignpulse/internal/websocket"
)

// WSHandler upgrades /ws requests and hands the connection to the hub.
type WSHandler struct {
	hub      *websocket.Hub
	upgrader gorilla.Upgrader
	logger   *slog.Logger
}

// NewWSHandler creates the websocket upgrade handler. Origins outside the
// allowed list are rejected at the handshake; requests without an Origin
// header (curl, native clients) are let through.
func NewWSHandler(hub *websocket.Hub, wsCfg config.WebSocketConfig, allowedOrigins []string, logger *slog.Logger) *WSHandler {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("handler", "websocket"))

	allowed := make(map[string]struct{}, len(allowedOrigins))
	allowAll := false
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		allowed[origin] = struct{}{}
	}

	return &WSHandler{
		hub: hub,
		upgrader: gorilla.Upgrader{
			ReadBufferSize:  wsCfg.ReadBufferSize,
			WriteBufferSize: wsCfg.WriteBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || allowAll {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
		logger: logger,
	}
}

// ServeHTTP upgrades the connection and starts the client pumps.
func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the handshake error response.
		h.logger.WarnContext(ctx, "websocket upgrade failed",
			slog.String("request_id", middleware.GetReqID(ctx)),
			slog.String("origin", r.Header.Get("Origin")),
			slog.String("error", err.Error()),
		)
		return
	}

	traceID := middleware.GetReqID(ctx)
	if traceID == "" {
		traceID = infrastructure.GenerateTraceID()
	}

	h.logger.InfoContext(ctx, "websocket client connected",
		slog.String("request_id", traceID),
		slog.String("remote_addr", conn.RemoteAddr().String()),
	)

	websocket.ServeWS(h.hub, conn, traceID)
}
