// Package config provides centralized configuration management for the
// CampaignPulse dashboard. It handles loading configuration from multiple
// sources, validation, and provides a type-safe API for accessing
// configuration values throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration files (YAML)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern CAMPAIGN_* for namespacing:
//
//	CAMPAIGN_SERVER_PORT=8080
//	CAMPAIGN_DATASET_PATH=data/marketing_campaign.csv
//	CAMPAIGN_DATASET_WATCH=true
//	CAMPAIGN_LOGGING_LEVEL=info
//	CAMPAIGN_OBSERVABILITY_ENABLED=true
//
// # Path Management
//
// The package provides centralized path management through the Paths type,
// which handles all file system paths relative to the executable location:
//
//	paths, err := config.GetPaths()
//	if err != nil { ... }
//	dataset := paths.DatasetCSV
//
// All paths are executable-relative so the binaries behave identically
// regardless of the working directory they are launched from.
package config
