package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/gophtimecard/internal/flagx"
)

// parseFlags overlays cfg with command-line flags:
//
//	-a string   TimecardService base URL
//	-t int      request timeout in seconds
//	-l string   log level (debug, info, warn, error)
//
// Other arguments are filtered out first so -c/-config does not trip the parser.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServiceBaseURL, "a", cfg.ServiceBaseURL, "TimecardService base URL")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
