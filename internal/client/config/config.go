// Package config loads runtime settings for the operator CLI.
package config

// Config holds runtime settings for the Veritas operator CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend HTTP API, without a trailing
//     slash (e.g. http://127.0.0.1:8080).
//   - SessionDir: directory name (under the current working directory)
//     where the session marker file is kept.
type Config struct {
	ServerBaseURL string
	SessionDir    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.SessionDir = ".veritas"
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
