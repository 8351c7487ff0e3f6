// Package iqm scrapes the IQM careers board hosted on Teamtailor.
//
// Jobs are grouped under section headings that are not siblings of the job
// items, so the department is the nearest heading anywhere above the item.
// Hrefs on the board are relative and are made absolute against the board
// origin.
package iqm

import (
	"jobscrape/internal/domain"
	"jobscrape/internal/scrape/site"
	"jobscrape/internal/scrape/types"
)

const (
	Name              = "iqm"
	DefaultListingURL = "https://iqm.teamtailor.com/jobs"
	DefaultBaseURL    = "https://iqm.teamtailor.com"
)

func DefaultRules() site.Rules {
	return site.Rules{
		Listing:        "ul.jobs-list > li",
		Title:          ".job-title",
		Link:           "a[href]",
		Location:       "ul.job-meta li",
		Department:     "h1, h2, h3",
		DepartmentMode: site.PrecedingHeading,
		LinkPolicy:     site.LinkAbsolute,
	}
}

type Config struct {
	ListingURL string
	BaseURL    string
	Rules      site.Rules // overrides on top of DefaultRules
}

type Scraper struct {
	*site.Adapter
}

var _ types.SiteAdapter = (*Scraper)(nil)

func New(cfg Config) *Scraper {
	if cfg.ListingURL == "" {
		cfg.ListingURL = DefaultListingURL
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Scraper{site.New(site.Config{
		Name:       Name,
		ListingURL: cfg.ListingURL,
		BaseURL:    cfg.BaseURL,
		Rules:      DefaultRules().Merge(cfg.Rules),
		Sections:   domain.DefaultSections,
	})}
}
