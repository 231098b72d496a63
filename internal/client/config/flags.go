package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/gophmedia/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the media API
//	-b string   backend, "rest" or "s3"
//	-s int      site ID
//	-d string   path of the local media cache
//	-t int      request timeout in seconds
//	-i int      online check interval in seconds
//	-l string   log level
//
// os.Args is filtered with flagx.FilterArgs first so flags owned by other
// loaders are skipped.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-b", "-s", "-d", "-t", "-i", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "media API base URL")
	fs.StringVar(&cfg.Backend, "b", cfg.Backend, "backend: rest or s3")
	fs.Int64Var(&cfg.SiteID, "s", cfg.SiteID, "site ID")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "local media cache path")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
