// Package config loads runtime configuration for the timecard CLI.
//
// Sources, lowest precedence first:
//
//  1. Built-in defaults ((*Config).LoadDefaults).
//  2. A .env file in the working directory (godotenv). It never overrides
//     variables already present in the environment.
//  3. Environment: TIMECARD_API_BASE_URL (fallback VITE_API_BASE_URL),
//     TIMECARD_REQUEST_TIMEOUT, TIMECARD_LOG_LEVEL, TIMECARD_S3_REGION,
//     TIMECARD_S3_ENDPOINT, TIMECARD_S3_ACCESS_KEY, TIMECARD_S3_SECRET_KEY.
//  4. A JSON file selected with -c or -config:
//
//	{
//	  "service_base_url": "http://localhost:5000",
//	  "request_timeout": "60s",
//	  "max_days": 7,
//	  "log_level": "info",
//	  "preview_dir": "preview",
//	  "s3_region": "us-east-1"
//	}
//
//  5. Flags: -a base URL, -t timeout in seconds, -l log level.
package config
