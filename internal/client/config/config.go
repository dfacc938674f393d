package config

// Config holds runtime settings for the portal CLI.
type Config struct {
	// ServerURL is the base URL of the portal backend, without a trailing slash.
	ServerURL string
	// SessionDBPath is the SQLite file that keeps the agent key between runs.
	SessionDBPath string
	// PostsPageSize is how many posts a thread view and the post-write
	// re-read fetch.
	PostsPageSize int
	LogLevel      string
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8000"
	c.SessionDBPath = "portal.db"
	c.PostsPageSize = 50
	c.LogLevel = "info"
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
