package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/employeeboard/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Only the flags listed in the package doc are considered; everything else
// in os.Args is filtered out with flagx.FilterArgs.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-i", "-t", "-w", "-l"}, "-r")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "GraphQL endpoint URL")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	cacheTTL := fs.Int("t", int(cfg.CacheTTL.Seconds()), "cache TTL (in seconds)")
	requestTimeout := fs.Int("w", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.BoolVar(&cfg.Revalidate, "r", cfg.Revalidate, "revalidate cached reads in the background")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "log file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	cfg.CacheTTL = time.Duration(*cacheTTL) * time.Second
	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
