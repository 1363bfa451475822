package toolfactory

import (
	"time"

	"github.com/effective-security/scrapebee/pkg/scrapingbee"
	"github.com/effective-security/scrapebee/tools"
	"github.com/effective-security/scrapebee/tools/scrape"
	"github.com/effective-security/scrapebee/tools/usage"
	"github.com/effective-security/scrapebee/tools/websearch"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/scrapebee", "toolfactory")

// Factory constructs the ScrapingBee tools from configuration.
// All tools share a single client, and with it the credential context.
type Factory struct {
	cfg    *Config
	client *scrapingbee.Client
}

// Load returns a factory from the config file at location.
func Load(location string) (*Factory, error) {
	cfg, err := LoadConfig(location)
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

// New creates a new tool factory
func New(cfg *Config) (*Factory, error) {
	var opts []scrapingbee.Option
	if cfg.BaseURL != "" {
		opts = append(opts, scrapingbee.WithBaseURL(cfg.BaseURL))
	}
	if cfg.TimeoutSecs > 0 {
		opts = append(opts, scrapingbee.WithTimeout(time.Duration(cfg.TimeoutSecs)*time.Second))
	}

	client, err := scrapingbee.New(cfg.APIKey, opts...)
	if err != nil {
		return nil, err
	}

	logger.KV(xlog.DEBUG, "status", "created_client", "base_url", cfg.BaseURL)

	return &Factory{
		cfg:    cfg,
		client: client,
	}, nil
}

// Client returns the shared ScrapingBee client.
func (f *Factory) Client() *scrapingbee.Client {
	return f.client
}

// Tools returns the scrape, search and usage tools sharing one client.
func (f *Factory) Tools() ([]tools.ITool, error) {
	scrapeTool, err := scrape.New(f.client)
	if err != nil {
		return nil, err
	}
	searchTool, err := websearch.New(f.client)
	if err != nil {
		return nil, err
	}
	usageTool, err := usage.New(f.client)
	if err != nil {
		return nil, err
	}
	return []tools.ITool{scrapeTool, searchTool, usageTool}, nil
}
