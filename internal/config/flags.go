package config

import (
	"flag"
	"os"
	"time"

	"github.com/hkaraca/rmosdesk/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the reservation API host
//	-u string   base URL of the token-issuing service
//	-s string   path to the session file
//	-t int      request timeout in seconds
//	-v          verbose (debug) logging
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, so -c/-config stays available to the JSON loader.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-u", "-s", "-t", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the reservation API host")
	fs.StringVar(&cfg.AuthBaseURL, "u", cfg.AuthBaseURL, "base URL of the token-issuing service")
	fs.StringVar(&cfg.SessionFile, "s", cfg.SessionFile, "path to the session file")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
