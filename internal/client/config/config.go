package config

import "time"

// Config holds runtime settings for the DineBridge client.
//
// Fields:
//   - APIBaseURL: origin of the backend REST API. Read once at startup.
//   - LiveEndpoint: ws:// or wss:// endpoint of the live order channel.
//   - DatabaseFile: path of the local SQLite database.
//   - RequestTimeout: per-request transport timeout.
//   - MaxRetries: retry attempts for 5xx responses.
//   - RetryDelay: fixed pause between retry attempts.
type Config struct {
	APIBaseURL     string
	LiveEndpoint   string
	DatabaseFile   string
	RequestTimeout time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080/api"
	c.LiveEndpoint = "ws://127.0.0.1:8080/ws/orders"
	c.DatabaseFile = "dinebridge.db"
	c.RequestTimeout = 30 * time.Second
	c.MaxRetries = 3
	c.RetryDelay = time.Second
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
