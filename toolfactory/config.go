package toolfactory

import (
	"github.com/effective-security/x/configloader"
)

// Config for the ScrapingBee tools.
// The api_key value supports ${ENV} expansion, so the key can be kept out
// of the config file; the core client never reads the environment itself.
type Config struct {
	APIKey string `json:"api_key" yaml:"api_key"`
	// BaseURL overrides the production API endpoint, used in tests.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	// TimeoutSecs bounds a single upstream request.
	TimeoutSecs int `json:"timeout_secs,omitempty" yaml:"timeout_secs,omitempty"`
}

// LoadConfig from file
func LoadConfig(file string) (*Config, error) {
	cfg := new(Config)
	if file == "" {
		return cfg, nil
	}

	err := configloader.UnmarshalAndExpand(file, cfg)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
