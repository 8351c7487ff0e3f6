// Package site implements a SiteAdapter driven entirely by selector rules, so
// two careers pages that differ only in markup share one code path.
package site

import (
	"fmt"
	"strings"

	"jobscrape/internal/domain"
	"jobscrape/internal/scrape/types"
	"jobscrape/internal/scrape/util"

	"github.com/PuerkitoBio/goquery"
)

// DepartmentMode selects how the department heading of a listing is found.
type DepartmentMode string

const (
	// PrecedingSibling takes the closest earlier sibling of the listing
	// that matches the department selector.
	PrecedingSibling DepartmentMode = "preceding_sibling"
	// PrecedingHeading takes the closest matching element anywhere before
	// the listing in document order.
	PrecedingHeading DepartmentMode = "preceding_heading"
)

// LinkPolicy decides whether relative hrefs are made absolute.
type LinkPolicy string

const (
	LinkAbsolute LinkPolicy = "absolute"
	LinkVerbatim LinkPolicy = "verbatim"
)

type Rules struct {
	Listing        string         `yaml:"listing,omitempty"`
	Title          string         `yaml:"title,omitempty"`
	Link           string         `yaml:"link,omitempty"`
	Location       string         `yaml:"location,omitempty"`
	Department     string         `yaml:"department,omitempty"`
	DepartmentMode DepartmentMode `yaml:"department_mode,omitempty"`
	LinkPolicy     LinkPolicy     `yaml:"link_policy,omitempty"`
}

// Merge returns r with every non-empty field of o applied on top.
func (r Rules) Merge(o Rules) Rules {
	set := func(dst *string, v string) {
		if strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set(&r.Listing, o.Listing)
	set(&r.Title, o.Title)
	set(&r.Link, o.Link)
	set(&r.Location, o.Location)
	set(&r.Department, o.Department)
	if o.DepartmentMode != "" {
		r.DepartmentMode = o.DepartmentMode
	}
	if o.LinkPolicy != "" {
		r.LinkPolicy = o.LinkPolicy
	}
	return r
}

func (r Rules) Validate() error {
	var missing []string
	for _, f := range []struct{ name, v string }{
		{"listing", r.Listing},
		{"title", r.Title},
		{"link", r.Link},
		{"location", r.Location},
		{"department", r.Department},
	} {
		if strings.TrimSpace(f.v) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("selectors missing: %s", strings.Join(missing, ", "))
	}
	switch r.DepartmentMode {
	case PrecedingSibling, PrecedingHeading:
	default:
		return fmt.Errorf("unknown department_mode %q", r.DepartmentMode)
	}
	switch r.LinkPolicy {
	case LinkAbsolute, LinkVerbatim:
	default:
		return fmt.Errorf("unknown link_policy %q", r.LinkPolicy)
	}
	return nil
}

type Config struct {
	Name       string
	ListingURL string
	// BaseURL is prepended to relative links under LinkAbsolute. When
	// empty the origin of ListingURL is used.
	BaseURL  string
	Rules    Rules
	Sections []domain.Section
}

type Adapter struct {
	cfg Config
}

var _ types.SiteAdapter = (*Adapter)(nil)

func New(cfg Config) *Adapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = util.Origin(cfg.ListingURL)
	}
	if cfg.Sections == nil {
		cfg.Sections = domain.DefaultSections
	}
	return &Adapter{cfg: cfg}
}

func (a *Adapter) Name() string       { return a.cfg.Name }
func (a *Adapter) ListingURL() string { return a.cfg.ListingURL }
func (a *Adapter) BaseURL() string    { return a.cfg.BaseURL }
func (a *Adapter) Rules() Rules       { return a.cfg.Rules }

func (a *Adapter) DetailSections() []domain.Section {
	out := make([]domain.Section, len(a.cfg.Sections))
	copy(out, a.cfg.Sections)
	return out
}

func (a *Adapter) Listings(doc *goquery.Document) *goquery.Selection {
	return doc.Find(a.cfg.Rules.Listing)
}

func (a *Adapter) Title(item *goquery.Selection) (string, error) {
	t := util.CleanText(item.Find(a.cfg.Rules.Title).First().Text())
	if t == "" {
		return "", types.Missing(a.cfg.Name, domain.FieldTitle)
	}
	return t, nil
}

func (a *Adapter) Department(item *goquery.Selection) (string, error) {
	var head *goquery.Selection
	switch a.cfg.Rules.DepartmentMode {
	case PrecedingSibling:
		if prev := item.PrevAllFiltered(a.cfg.Rules.Department); prev.Length() > 0 {
			head = prev.First()
		}
	case PrecedingHeading:
		head = util.PrecedingMatch(item, a.cfg.Rules.Department)
	}
	if head == nil {
		return "", types.Missing(a.cfg.Name, domain.FieldDepartment)
	}
	t := util.CleanText(head.Text())
	if t == "" {
		return "", types.Missing(a.cfg.Name, domain.FieldDepartment)
	}
	return t, nil
}

func (a *Adapter) Location(item *goquery.Selection) (string, error) {
	loc := util.NormalizeLocation(util.ListText(item.Find(a.cfg.Rules.Location)))
	if loc == "" {
		return "", types.Missing(a.cfg.Name, domain.FieldLocation)
	}
	return loc, nil
}

func (a *Adapter) Link(item *goquery.Selection) (string, error) {
	anchor := item.Find(a.cfg.Rules.Link).First()
	if anchor.Length() == 0 && item.Is(a.cfg.Rules.Link) {
		anchor = item.First()
	}
	href := strings.TrimSpace(anchor.AttrOr("href", ""))
	if href == "" {
		return "", types.Missing(a.cfg.Name, domain.FieldLink)
	}
	if a.cfg.Rules.LinkPolicy == LinkAbsolute {
		return util.ResolveLink(a.cfg.BaseURL, href), nil
	}
	return href, nil
}
