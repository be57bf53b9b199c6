package config

import (
	"encoding/json"
	"os"

	"github.com/spaceshelter/orbitar-sub001/internal/flagx"
	"github.com/spaceshelter/orbitar-sub001/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "60s"
// or as integer nanoseconds.
type JsonConfig struct {
	APIEndpoint          string         `json:"api_endpoint"`
	Site                 string         `json:"site"`
	StatusUpdateInterval timex.Duration `json:"status_update_interval"`
	FeedPerPage          int            `json:"feed_per_page"`
	DatabasePath         string         `json:"database_path"`
}

// parseJson overlays Config with values loaded from a JSON file located via
// the -c/-config flags. Missing file path means no JSON is loaded; read or
// unmarshal errors panic (caller should recover if desired). Zero-valued
// fields in the file do not override defaults.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIEndpoint != "" {
		cfg.APIEndpoint = jc.APIEndpoint
	}
	if jc.Site != "" {
		cfg.Site = jc.Site
	}
	if jc.StatusUpdateInterval.Duration != 0 {
		cfg.StatusUpdateInterval = jc.StatusUpdateInterval.Duration
	}
	if jc.FeedPerPage != 0 {
		cfg.FeedPerPage = jc.FeedPerPage
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
}
