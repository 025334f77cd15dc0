package config

// SiteConfig represents the scrape target configuration
type SiteConfig struct {
	Site     SiteInfo     `yaml:"site"`
	Settings SiteSettings `yaml:"settings"`
}

// SiteInfo identifies the blog index being scraped
type SiteInfo struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// SiteSettings contains scrape processing settings
type SiteSettings struct {
	MaxArticles        int  `yaml:"max_articles"`
	Timeout            int  `yaml:"timeout"` // seconds
	ExtractReadability bool `yaml:"extract_readability"`
}
