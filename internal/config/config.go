package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server        ServerConfig        `yaml:"server" envconfig:"SERVER"`
	Security      SecurityConfig      `yaml:"security" envconfig:"SECURITY"`
	Logging       LoggingConfig       `yaml:"logging" envconfig:"LOGGING"`
	Dataset       DatasetConfig       `yaml:"dataset" envconfig:"DATASET"`
	Export        ExportConfig        `yaml:"export" envconfig:"EXPORT"`
	Observability ObservabilityConfig `yaml:"observability" envconfig:"OBSERVABILITY"`
	Paths         PathsConfig         `yaml:"paths" envconfig:"PATHS"`
	WebSocket     WebSocketConfig     `yaml:"websocket" envconfig:"WEBSOCKET"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES" default:"1048576"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT" default:"60s"`
	OpenBrowser     bool          `yaml:"open_browser" envconfig:"OPEN_BROWSER" default:"false"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" default:"http://localhost:8080"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS" default:"true"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format      string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output      string `yaml:"output" envconfig:"OUTPUT" default:"both"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT" default:"true"`
}

// DatasetConfig controls where the marketing-campaign CSV is read from and
// whether the server watches it for changes.
type DatasetConfig struct {
	// Path points at the dataset CSV, or at a directory holding CSVs, in
	// which case the most recently modified one is loaded.
	Path           string        `yaml:"path" envconfig:"PATH" default:"data/marketing_campaign.csv"`
	Watch          bool          `yaml:"watch" envconfig:"WATCH" default:"true"`
	ReloadDebounce time.Duration `yaml:"reload_debounce" envconfig:"RELOAD_DEBOUNCE" default:"500ms"`
}

// ExportConfig controls CSV/XLSX export output
type ExportConfig struct {
	Dir       string `yaml:"dir" envconfig:"DIR" default:"exports"`
	CSVBOM    bool   `yaml:"csv_bom" envconfig:"CSV_BOM" default:"true"`
	ReportFile string `yaml:"report_file" envconfig:"REPORT_FILE" default:"dashboard.html"`
}

// ObservabilityConfig controls tracing and metrics
type ObservabilityConfig struct {
	Enabled     bool   `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	ServiceName string `yaml:"service_name" envconfig:"SERVICE_NAME" default:"campaignpulse"`
	TraceStdout bool   `yaml:"trace_stdout" envconfig:"TRACE_STDOUT" default:"false"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	ExecutableDir string `yaml:"executable_dir" envconfig:"EXECUTABLE_DIR"`
	DataDir       string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	ExportsDir    string `yaml:"exports_dir" envconfig:"EXPORTS_DIR" default:"exports"`
	WebDir        string `yaml:"web_dir" envconfig:"WEB_DIR" default:"web"`
	LogsDir       string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// WebSocketConfig contains WebSocket configuration
type WebSocketConfig struct {
	ReadBufferSize  int           `yaml:"read_buffer_size" envconfig:"READ_BUFFER_SIZE" default:"1024"`
	WriteBufferSize int           `yaml:"write_buffer_size" envconfig:"WRITE_BUFFER_SIZE" default:"1024"`
	PingPeriod      time.Duration `yaml:"ping_period" envconfig:"PING_PERIOD" default:"30s"`
	PongWait        time.Duration `yaml:"pong_wait" envconfig:"PONG_WAIT" default:"60s"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process("CAMPAIGN", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Load from config file if exists
	configFile := getConfigFilePath()
	if configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	// Resolve relative paths
	if err := cfg.resolvePaths(); err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Validate paths
	if err := cfg.ValidatePaths(); err != nil {
		return nil, fmt.Errorf("path validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence)
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Server.Port == 0 {
		envConfig.Server.Port = fileConfig.Server.Port
	}
	if envConfig.Server.ReadTimeout == 0 {
		envConfig.Server.ReadTimeout = fileConfig.Server.ReadTimeout
	}
	if envConfig.Server.WriteTimeout == 0 {
		envConfig.Server.WriteTimeout = fileConfig.Server.WriteTimeout
	}
	if envConfig.Dataset.Path == "" {
		envConfig.Dataset.Path = fileConfig.Dataset.Path
	}
	if envConfig.Export.Dir == "" {
		envConfig.Export.Dir = fileConfig.Export.Dir
	}
	if envConfig.Logging.Level == "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}

	return envConfig
}

// resolvePaths sets up the executable directory and validates paths
func (c *Config) resolvePaths() error {
	paths, err := GetPaths()
	if err != nil {
		return fmt.Errorf("failed to get paths: %w", err)
	}

	c.Paths.ExecutableDir = paths.ExecutableDir

	// Anchor a relative dataset path to the executable directory so the
	// binary behaves the same regardless of the working directory.
	if c.Dataset.Path != "" && !filepath.IsAbs(c.Dataset.Path) {
		c.Dataset.Path = filepath.Join(paths.ExecutableDir, c.Dataset.Path)
	}
	if c.Export.Dir != "" && !filepath.IsAbs(c.Export.Dir) {
		c.Export.Dir = filepath.Join(paths.ExecutableDir, c.Export.Dir)
	}

	return nil
}

// ValidatePaths validates that critical paths exist or can be created
func (c *Config) ValidatePaths() error {
	paths, err := GetPaths()
	if err != nil {
		return fmt.Errorf("failed to get paths: %w", err)
	}

	if err := paths.EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	paths.LogPathResolution()

	return nil
}

// GetDataDir returns the resolved data directory path
func (c *Config) GetDataDir() string {
	paths, err := GetPaths()
	if err != nil {
		if filepath.IsAbs(c.Paths.DataDir) {
			return c.Paths.DataDir
		}
		return filepath.Join(c.Paths.ExecutableDir, c.Paths.DataDir)
	}
	return paths.DataDir
}

// GetWebDir returns the resolved web directory path
func (c *Config) GetWebDir() string {
	paths, err := GetPaths()
	if err != nil {
		if filepath.IsAbs(c.Paths.WebDir) {
			return c.Paths.WebDir
		}
		return filepath.Join(c.Paths.ExecutableDir, c.Paths.WebDir)
	}
	return paths.WebDir
}

// GetLogsDir returns the resolved logs directory path
func (c *Config) GetLogsDir() string {
	paths, err := GetPaths()
	if err != nil {
		if filepath.IsAbs(c.Paths.LogsDir) {
			return c.Paths.LogsDir
		}
		return filepath.Join(c.Paths.ExecutableDir, c.Paths.LogsDir)
	}
	return paths.LogsDir
}

// GetDatasetPath returns the resolved dataset path (file or directory)
func (c *Config) GetDatasetPath() string {
	if c.Dataset.Path != "" {
		return c.Dataset.Path
	}
	paths, err := GetPaths()
	if err != nil {
		return filepath.Join(c.Paths.ExecutableDir, c.Paths.DataDir, DatasetFileName)
	}
	return paths.DatasetCSV
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	if len(c.Security.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one allowed origin must be specified")
	}

	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		c.Logging.Format = "json"
	}

	if c.Logging.Output != "both" && c.Logging.Output != "file" && c.Logging.Output != "stdout" {
		c.Logging.Output = "both"
	}

	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/app.log"
	}

	if c.Dataset.ReloadDebounce <= 0 {
		c.Dataset.ReloadDebounce = 500 * time.Millisecond
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
		"../configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			MaxHeaderBytes:  1 << 20, // 1MB
			ShutdownTimeout: 30 * time.Second,
			RequestTimeout:  60 * time.Second,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:8080"},
			EnableCORS:     true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     100,
				Burst:   50,
			},
		},
		Logging: LoggingConfig{
			Level:       "info",
			Format:      "json",
			Output:      "both",
			FilePath:    "logs/app.log",
			Development: true,
		},
		Dataset: DatasetConfig{
			Path:           filepath.Join("data", DatasetFileName),
			Watch:          true,
			ReloadDebounce: 500 * time.Millisecond,
		},
		Export: ExportConfig{
			Dir:        "exports",
			CSVBOM:     true,
			ReportFile: "dashboard.html",
		},
		Observability: ObservabilityConfig{
			Enabled:     true,
			ServiceName: "campaignpulse",
		},
		Paths: PathsConfig{
			DataDir:    "data",
			ExportsDir: "exports",
			WebDir:     "web",
			LogsDir:    "logs",
		},
		WebSocket: WebSocketConfig{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			PingPeriod:      30 * time.Second,
			PongWait:        60 * time.Second,
		},
	}
}
