package config

import (
	"os"
	"strings"

	"jobscrape/internal/scrape/fetch"
	"jobscrape/internal/scrape/iqm"
	"jobscrape/internal/scrape/site"
	"jobscrape/internal/scrape/xanadu"

	"gopkg.in/yaml.v3"
)

// Adapter kinds a site entry can use.
const (
	AdapterIQM    = "iqm"
	AdapterXanadu = "xanadu"
	// AdapterRules builds a site purely from its selectors block.
	AdapterRules = "rules"
)

type Site struct {
	Name       string `yaml:"name"`
	Adapter    string `yaml:"adapter"`
	ListingURL string `yaml:"listing_url,omitempty"`
	BaseURL    string `yaml:"base_url,omitempty"`
	Output     string `yaml:"output,omitempty"`
	// Enabled and Enrich default to true / the global enrich setting when
	// left out.
	Enabled   *bool      `yaml:"enabled,omitempty"`
	Enrich    *bool      `yaml:"enrich,omitempty"`
	Selectors site.Rules `yaml:"selectors,omitempty"`
}

func (s Site) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

func (s Site) EnrichEnabled(global bool) bool {
	if s.Enrich == nil {
		return global
	}
	return *s.Enrich
}

// OutputFile is the CSV file name for the site, defaulting to <name>_jobs.csv.
func (s Site) OutputFile() string {
	if f := strings.TrimSpace(s.Output); f != "" {
		return f
	}
	return s.Name + "_jobs.csv"
}

type Config struct {
	Output struct {
		Dir        string `yaml:"dir"`
		SQLitePath string `yaml:"sqlite_path,omitempty"`
	} `yaml:"output"`

	Fetch struct {
		TimeoutSeconds    int     `yaml:"timeout_seconds"`
		UserAgent         string  `yaml:"user_agent"`
		RequestsPerSecond float64 `yaml:"requests_per_second"`
		Burst             int     `yaml:"burst"`
	} `yaml:"fetch"`

	Enrich struct {
		Enabled   bool   `yaml:"enabled"`
		Workers   int    `yaml:"workers"`
		Heading   string `yaml:"heading,omitempty"`
		Paragraph string `yaml:"paragraph,omitempty"`
	} `yaml:"enrich"`

	Filters struct {
		TitleAny       []string `yaml:"title_any,omitempty"`
		LocationsAllow []string `yaml:"locations_allow,omitempty"`
		LocationsBlock []string `yaml:"locations_block,omitempty"`
	} `yaml:"filters"`

	Sites []Site `yaml:"sites"`
}

// Default holds both built-in careers sites with enrichment on.
func Default() Config {
	var cfg Config
	cfg.Output.Dir = "."
	cfg.Fetch.TimeoutSeconds = 20
	cfg.Fetch.UserAgent = fetch.DefaultUserAgent
	cfg.Fetch.Burst = 1
	cfg.Enrich.Enabled = true
	cfg.Enrich.Workers = 4
	cfg.Sites = []Site{
		{
			Name:       AdapterIQM,
			Adapter:    AdapterIQM,
			ListingURL: iqm.DefaultListingURL,
			BaseURL:    iqm.DefaultBaseURL,
			Output:     "iqm_jobs.csv",
		},
		{
			Name:       AdapterXanadu,
			Adapter:    AdapterXanadu,
			ListingURL: xanadu.DefaultListingURL,
			Output:     "xanadu_jobs.csv",
		},
	}
	return cfg
}

// Load reads path on top of Default. A sites list in the file replaces the
// built-in one.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// SiteByName returns the configured site with that name.
func (c Config) SiteByName(name string) (Site, bool) {
	for _, s := range c.Sites {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Site{}, false
}
