package config

import "time"

// Config holds runtime settings for the employeeboard CLI.
//
// Fields:
//   - ServerEndpointAddr: URL of the GraphQL endpoint.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - RequestTimeout: upper bound for a single request.
//   - CacheTTL: how long a cached query stays fresh; 0 keeps it fresh until
//     a mutation invalidates it.
//   - Revalidate: refresh fresh cache hits in the background.
//   - LogFile, LogDebug: diagnostics destination and verbosity.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
	CacheTTL            time.Duration
	Revalidate          bool
	LogFile             string
	LogDebug            bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8080/graphql"
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.CacheTTL = 30 * time.Second
	c.Revalidate = false
	c.LogFile = "employeeboard.log"
	c.LogDebug = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
