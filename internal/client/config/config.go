package config

import (
	"time"

	"github.com/dmitrijs2005/gophtimecard/internal/common"
)

// Config holds runtime settings for the timecard CLI.
type Config struct {
	ServiceBaseURL string
	RequestTimeout time.Duration
	MaxDays        int
	LogLevel       string
	PreviewDir     string

	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.ServiceBaseURL = common.DefaultServiceBaseURL
	c.RequestTimeout = 60 * time.Second
	c.MaxDays = 7
	c.LogLevel = "info"
	c.PreviewDir = "preview"
	c.S3Region = "us-east-1"
}

// LoadConfig builds a Config from defaults, a .env file, the environment,
// an optional JSON file and command-line flags. Later sources win.
// It panics on unreadable or malformed input.
func LoadConfig(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	loadDotEnv(".env")
	parseEnv(cfg)
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
