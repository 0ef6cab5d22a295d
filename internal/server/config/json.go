package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/employeeboard/internal/flagx"
	"github.com/dmitrijs2005/employeeboard/internal/timex"
)

// JsonConfig is the on-disk shape of the server configuration.
// Durations accept "5s" as well as integer nanoseconds.
type JsonConfig struct {
	EndpointAddr    string         `json:"endpoint_addr"`
	DatabaseDSN     string         `json:"database_dsn"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays values from the file named by -c/-config. Keys missing
// from the file keep their current values. A broken file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFile()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{
		EndpointAddr:    config.EndpointAddr,
		DatabaseDSN:     config.DatabaseDSN,
		ShutdownTimeout: timex.Duration{Duration: config.ShutdownTimeout},
	}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.ShutdownTimeout = c.ShutdownTimeout.Duration
}
