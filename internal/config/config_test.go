package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.True(t, cfg.Security.EnableCORS)
	assert.NotEmpty(t, cfg.Security.AllowedOrigins)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Dataset.Watch)
	assert.Equal(t, 500*time.Millisecond, cfg.Dataset.ReloadDebounce)
	assert.Equal(t, "campaignpulse", cfg.Observability.ServiceName)
	assert.True(t, cfg.Export.CSVBOM)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:    "default config is valid",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "zero port rejected",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: true,
		},
		{
			name:    "port above range rejected",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "negative read timeout rejected",
			mutate:  func(c *Config) { c.Server.ReadTimeout = -time.Second },
			wantErr: true,
		},
		{
			name:    "zero write timeout rejected",
			mutate:  func(c *Config) { c.Server.WriteTimeout = 0 },
			wantErr: true,
		},
		{
			name:    "no allowed origins rejected",
			mutate:  func(c *Config) { c.Security.AllowedOrigins = nil },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateNormalizesLogging(t *testing.T) {
	cfg := Default()
	cfg.Logging.Format = "xml"
	cfg.Logging.Output = "syslog"
	cfg.Logging.FilePath = ""

	require.NoError(t, cfg.validate())

	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "both", cfg.Logging.Output)
	assert.Equal(t, "logs/app.log", cfg.Logging.FilePath)
}

func TestConfig_ValidateNormalizesDebounce(t *testing.T) {
	cfg := Default()
	cfg.Dataset.ReloadDebounce = 0

	require.NoError(t, cfg.validate())
	assert.Equal(t, 500*time.Millisecond, cfg.Dataset.ReloadDebounce)
}

func TestMergeConfigs(t *testing.T) {
	fileCfg := Config{}
	fileCfg.Server.Port = 9090
	fileCfg.Server.ReadTimeout = 5 * time.Second
	fileCfg.Dataset.Path = "elsewhere/campaigns.csv"
	fileCfg.Logging.Level = "debug"

	t.Run("file fills gaps", func(t *testing.T) {
		envCfg := Config{}
		merged := mergeConfigs(fileCfg, envCfg)

		assert.Equal(t, 9090, merged.Server.Port)
		assert.Equal(t, 5*time.Second, merged.Server.ReadTimeout)
		assert.Equal(t, "elsewhere/campaigns.csv", merged.Dataset.Path)
		assert.Equal(t, "debug", merged.Logging.Level)
	})

	t.Run("env wins over file", func(t *testing.T) {
		envCfg := Config{}
		envCfg.Server.Port = 8081
		envCfg.Dataset.Path = "data/env.csv"

		merged := mergeConfigs(fileCfg, envCfg)

		assert.Equal(t, 8081, merged.Server.Port)
		assert.Equal(t, "data/env.csv", merged.Dataset.Path)
	})
}

func TestConstants(t *testing.T) {
	assert.Equal(t, "marketing_campaign.csv", DatasetFileName)
	assert.Equal(t, 2019, TrendWindowStart)
	assert.Equal(t, 2024, TrendWindowEnd)
	assert.Equal(t, "dashboard.html", ReportFileName)
}
