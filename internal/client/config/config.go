package config

import "time"

// Config holds runtime settings for the Orbitar terminal client.
//
// Fields:
//   - APIEndpoint: base URL of the platform API, e.g. "https://api.orbitar.space/api/v1".
//   - Site: the site (subdomain) context the client starts in.
//   - StatusUpdateInterval: how often the background status poll runs.
//   - FeedPerPage: posts per feed page.
//   - DatabasePath: path of the local SQLite database for persisted state.
type Config struct {
	APIEndpoint          string
	Site                 string
	StatusUpdateInterval time.Duration
	FeedPerPage          int
	DatabasePath         string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIEndpoint = "http://127.0.0.1:8080/api/v1"
	c.Site = "main"
	c.StatusUpdateInterval = 60 * time.Second
	c.FeedPerPage = 20
	c.DatabasePath = "orbitar.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
