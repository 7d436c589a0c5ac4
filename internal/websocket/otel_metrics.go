package websocket

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "campaignpulse.websocket"

// OTelMetrics provides OpenTelemetry metrics for WebSocket traffic.
type OTelMetrics struct {
	connectionsTotal   metric.Int64Counter
	connectionsActive  metric.Int64UpDownCounter
	connectionDuration metric.Float64Histogram

	messagesSent metric.Int64Counter
	messageBytes metric.Int64Counter

	broadcasts  metric.Int64Counter
	clientCount metric.Int64Gauge
}

// NewOTelMetrics creates the WebSocket metric instruments on the global
// meter provider.
func NewOTelMetrics() (*OTelMetrics, error) {
	meter := otel.Meter(meterName)

	connectionsTotal, err := meter.Int64Counter(
		"websocket_connections_total",
		metric.WithDescription("Total number of WebSocket connections"),
	)
	if err != nil {
		return nil, err
	}

	connectionsActive, err := meter.Int64UpDownCounter(
		"websocket_connections_active",
		metric.WithDescription("Number of active WebSocket connections"),
	)
	if err != nil {
		return nil, err
	}

	connectionDuration, err := meter.Float64Histogram(
		"websocket_connection_duration_seconds",
		metric.WithDescription("Duration of WebSocket connections"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	messagesSent, err := meter.Int64Counter(
		"websocket_messages_sent_total",
		metric.WithDescription("Total number of WebSocket messages sent"),
	)
	if err != nil {
		return nil, err
	}

	messageBytes, err := meter.Int64Counter(
		"websocket_message_bytes_total",
		metric.WithDescription("Total bytes of WebSocket messages sent"),
	)
	if err != nil {
		return nil, err
	}

	broadcasts, err := meter.Int64Counter(
		"websocket_broadcasts_total",
		metric.WithDescription("Total number of hub broadcasts"),
	)
	if err != nil {
		return nil, err
	}

	clientCount, err := meter.Int64Gauge(
		"websocket_clients",
		metric.WithDescription("Current number of connected clients"),
	)
	if err != nil {
		return nil, err
	}

	return &OTelMetrics{
		connectionsTotal:   connectionsTotal,
		connectionsActive:  connectionsActive,
		connectionDuration: connectionDuration,
		messagesSent:       messagesSent,
		messageBytes:       messageBytes,
		broadcasts:         broadcasts,
		clientCount:        clientCount,
	}, nil
}

// RecordConnection records a new client connection.
func (m *OTelMetrics) RecordConnection(ctx context.Context) {
	m.connectionsTotal.Add(ctx, 1)
	m.connectionsActive.Add(ctx, 1)
}

// RecordDisconnection records a client disconnect and its session length.
func (m *OTelMetrics) RecordDisconnection(ctx context.Context, duration time.Duration) {
	m.connectionsActive.Add(ctx, -1)
	m.connectionDuration.Record(ctx, duration.Seconds())
}

// RecordMessageSent records a message delivered to a client.
func (m *OTelMetrics) RecordMessageSent(ctx context.Context, size int64) {
	m.messagesSent.Add(ctx, 1)
	m.messageBytes.Add(ctx, size)
}

// RecordBroadcast records a hub broadcast fan-out.
func (m *OTelMetrics) RecordBroadcast(ctx context.Context, clients, size int64) {
	m.broadcasts.Add(ctx, 1)
	m.messageBytes.Add(ctx, size*clients)
}

// RecordClientCount records the current client count.
func (m *OTelMetrics) RecordClientCount(ctx context.Context, count int64) {
	m.clientCount.Record(ctx, count)
}

var (
	globalOTelMetrics *OTelMetrics
	otelMetricsOnce   sync.Once
)

// GetOTelMetrics returns the process-wide WebSocket metrics, creating them
// on first use. Returns nil when instrument creation fails; callers treat
// nil as metrics-disabled.
func GetOTelMetrics() *OTelMetrics {
	otelMetricsOnce.Do(func() {
		m, err := NewOTelMetrics()
		if err == nil {
			globalOTelMetrics = m
		}
	})
	return globalOTelMetrics
}
