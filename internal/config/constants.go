package config

import "time"

// Application constants - hardcoded values for the CampaignPulse system
const (
	// Application Info
	AppName    = "CampaignPulse"
	AppVersion = "0.1.0"

	// Dataset
	DatasetFileName  = "marketing_campaign.csv"
	DatasetGlob      = "*.csv"
	MinDatasetRows   = 1
	TrendWindowStart = 2019
	TrendWindowEnd   = 2024

	// Rate Limiting
	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50

	// Network Timeouts
	DefaultHTTPTimeout  = 30 * time.Second
	WebSocketPingPeriod = 30 * time.Second
	WebSocketPongWait   = 60 * time.Second

	// File Paths (relative to executable)
	DefaultDataDir    = "data"
	DefaultLogsDir    = "logs"
	DefaultWebDir     = "web"
	DefaultExportsDir = "exports"

	// WebSocket Buffer Sizes
	WebSocketReadBufferSize  = 1024
	WebSocketWriteBufferSize = 1024

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	MaxLogFileSize   = 100 * 1024 * 1024 // 100MB

	// Report generation
	ReportFileName          = "dashboard.html"
	ReportGenerationTimeout = 5 * time.Minute

	// Error Messages
	ErrDatasetMissing = "Dataset not found. Place marketing_campaign.csv in the data directory."
	ErrDatasetEmpty   = "Dataset contains no usable rows."

	// API Endpoints (internal)
	APIBasePath     = "/api"
	ChartsBasePath  = "/charts"
	HealthEndpoint  = "/healthz"
	MetricsEndpoint = "/metrics"

	// WebSocket Endpoints
	WebSocketEndpoint = "/ws"
)
