package scrape

import (
	"fmt"
	"strings"

	"jobscrape/internal/config"
	"jobscrape/internal/scrape/iqm"
	"jobscrape/internal/scrape/site"
	"jobscrape/internal/scrape/types"
	"jobscrape/internal/scrape/xanadu"
)

// NewAdapter builds the SiteAdapter a configured site asks for.
func NewAdapter(s config.Site) (types.SiteAdapter, error) {
	var (
		a     types.SiteAdapter
		rules site.Rules
	)
	switch strings.ToLower(strings.TrimSpace(s.Adapter)) {
	case config.AdapterIQM:
		sc := iqm.New(iqm.Config{ListingURL: s.ListingURL, BaseURL: s.BaseURL, Rules: s.Selectors})
		a, rules = sc, sc.Rules()
	case config.AdapterXanadu:
		sc := xanadu.New(xanadu.Config{ListingURL: s.ListingURL, BaseURL: s.BaseURL, Rules: s.Selectors})
		a, rules = sc, sc.Rules()
	case config.AdapterRules:
		sc := site.New(site.Config{
			Name:       s.Name,
			ListingURL: s.ListingURL,
			BaseURL:    s.BaseURL,
			Rules:      s.Selectors,
		})
		a, rules = sc, sc.Rules()
	default:
		return nil, fmt.Errorf("site %q: unknown adapter %q", s.Name, s.Adapter)
	}

	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("site %q: %w", s.Name, err)
	}
	return a, nil
}
