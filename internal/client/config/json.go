package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/employeeboard/internal/flagx"
	"github.com/dmitrijs2005/employeeboard/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// accept strings like "3s" as well as integer nanoseconds.
type JsonConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	CacheTTL            timex.Duration `json:"cache_ttl"`
	Revalidate          bool           `json:"revalidate"`
	LogFile             string         `json:"log_file"`
	LogDebug            bool           `json:"log_debug"`
}

// parseJson overlays Config with values from the file named by -c/-config.
// Keys missing from the file keep their current values. Read or unmarshal
// errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFile()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	jc := JsonConfig{
		ServerEndpointAddr:  cfg.ServerEndpointAddr,
		OnlineCheckInterval: timex.Duration{Duration: cfg.OnlineCheckInterval},
		RequestTimeout:      timex.Duration{Duration: cfg.RequestTimeout},
		CacheTTL:            timex.Duration{Duration: cfg.CacheTTL},
		Revalidate:          cfg.Revalidate,
		LogFile:             cfg.LogFile,
		LogDebug:            cfg.LogDebug,
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	cfg.RequestTimeout = jc.RequestTimeout.Duration
	cfg.CacheTTL = jc.CacheTTL.Duration
	cfg.Revalidate = jc.Revalidate
	cfg.LogFile = jc.LogFile
	cfg.LogDebug = jc.LogDebug
}
