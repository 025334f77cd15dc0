package config

import (
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and validates the scrape target configuration file
func Load(path string) (*SiteConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read site config: %w", err)
	}

	var config SiteConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	setDefaults(&config)

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid site config %s: %w", path, err)
	}

	return &config, nil
}

// setDefaults applies default values to configuration
func setDefaults(config *SiteConfig) {
	if config.Settings.MaxArticles == 0 {
		config.Settings.MaxArticles = 5
	}
	if config.Settings.Timeout == 0 {
		config.Settings.Timeout = 10 // seconds
	}
}

// validate validates the configuration
func validate(config *SiteConfig) error {
	if config.Site.URL == "" {
		return fmt.Errorf("site URL is required")
	}

	parsed, err := url.Parse(config.Site.URL)
	if err != nil {
		return fmt.Errorf("site URL is not a valid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("site URL must use http or https")
	}

	if config.Settings.MaxArticles < 0 {
		return fmt.Errorf("max articles must be non-negative")
	}
	if config.Settings.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}

	return nil
}
