package cfg

type Cfg struct {
	// HTTP server configuration
	Port string

	// Storage configuration
	DBPath string

	// Scraper configuration
	SiteConfigPath    string
	UserAgent         string
	SkipStartupScrape bool

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
