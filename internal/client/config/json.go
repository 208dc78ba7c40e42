package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophtimecard/internal/flagx"
	"github.com/dmitrijs2005/gophtimecard/internal/timex"
)

// JsonConfig is the file format. Pointer fields distinguish "absent" from
// zero so a partial file only overrides what it names. request_timeout is a
// timex.Duration: "90s" or integer nanoseconds.
type JsonConfig struct {
	ServiceBaseURL *string         `json:"service_base_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	MaxDays        *int            `json:"max_days"`
	LogLevel       *string         `json:"log_level"`
	PreviewDir     *string         `json:"preview_dir"`
	S3Region       *string         `json:"s3_region"`
	S3BaseEndpoint *string         `json:"s3_endpoint"`
	S3AccessKey    *string         `json:"s3_access_key"`
	S3SecretKey    *string         `json:"s3_secret_key"`
}

// parseJson overlays cfg with the file named by -c or -config in args.
// Without either flag nothing happens. Read and decode errors panic.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setIf(&cfg.ServiceBaseURL, jc.ServiceBaseURL)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	setIf(&cfg.MaxDays, jc.MaxDays)
	setIf(&cfg.LogLevel, jc.LogLevel)
	setIf(&cfg.PreviewDir, jc.PreviewDir)
	setIf(&cfg.S3Region, jc.S3Region)
	setIf(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setIf(&cfg.S3AccessKey, jc.S3AccessKey)
	setIf(&cfg.S3SecretKey, jc.S3SecretKey)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
