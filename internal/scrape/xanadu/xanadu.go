// Package xanadu scrapes the Xanadu careers page.
//
// Each department is a <div class="department"> followed by its job cards as
// siblings. Hrefs are kept exactly as they appear on the page.
package xanadu

import (
	"jobscrape/internal/domain"
	"jobscrape/internal/scrape/site"
	"jobscrape/internal/scrape/types"
)

const (
	Name              = "xanadu"
	DefaultListingURL = "https://www.xanadu.ai/careers"
)

func DefaultRules() site.Rules {
	return site.Rules{
		Listing:        "div.job-posting",
		Title:          "h4",
		Link:           "a[href]",
		Location:       "ul li",
		Department:     "div.department",
		DepartmentMode: site.PrecedingSibling,
		LinkPolicy:     site.LinkVerbatim,
	}
}

type Config struct {
	ListingURL string
	BaseURL    string
	Rules      site.Rules
}

type Scraper struct {
	*site.Adapter
}

var _ types.SiteAdapter = (*Scraper)(nil)

func New(cfg Config) *Scraper {
	if cfg.ListingURL == "" {
		cfg.ListingURL = DefaultListingURL
	}
	return &Scraper{site.New(site.Config{
		Name:       Name,
		ListingURL: cfg.ListingURL,
		BaseURL:    cfg.BaseURL,
		Rules:      DefaultRules().Merge(cfg.Rules),
		Sections:   domain.DefaultSections,
	})}
}
