package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/dmitrijs2005/gophtimecard/internal/timex"
	"github.com/joho/godotenv"
)

const (
	EnvBaseURL       = "TIMECARD_API_BASE_URL"
	EnvLegacyBaseURL = "VITE_API_BASE_URL"
	EnvTimeout       = "TIMECARD_REQUEST_TIMEOUT"
	EnvLogLevel      = "TIMECARD_LOG_LEVEL"
	EnvS3Region      = "TIMECARD_S3_REGION"
	EnvS3Endpoint    = "TIMECARD_S3_ENDPOINT"
	EnvS3AccessKey   = "TIMECARD_S3_ACCESS_KEY"
	EnvS3SecretKey   = "TIMECARD_S3_SECRET_KEY"
)

// loadDotEnv copies variables from path into the process environment.
// Variables that are already set are left alone; a missing file is ignored.
func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}
}

// parseEnv overlays cfg with TIMECARD_* variables. The base URL falls back
// to VITE_API_BASE_URL so an existing web front-end .env keeps working.
func parseEnv(cfg *Config) {
	if v, ok := lookup(EnvBaseURL); ok {
		cfg.ServiceBaseURL = v
	} else if v, ok := lookup(EnvLegacyBaseURL); ok {
		cfg.ServiceBaseURL = v
	}

	if v, ok := lookup(EnvTimeout); ok {
		d, err := timex.ParseSeconds(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}

	if v, ok := lookup(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := lookup(EnvS3Region); ok {
		cfg.S3Region = v
	}
	if v, ok := lookup(EnvS3Endpoint); ok {
		cfg.S3BaseEndpoint = v
	}
	if v, ok := lookup(EnvS3AccessKey); ok {
		cfg.S3AccessKey = v
	}
	if v, ok := lookup(EnvS3SecretKey); ok {
		cfg.S3SecretKey = v
	}
}

// lookup treats empty variables as unset.
func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	return v, ok && v != ""
}
