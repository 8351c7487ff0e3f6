package config

import (
	"fmt"
	"net/url"
	"strings"

	"jobscrape/internal/scrape/site"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a trimmed copy of cfg together with what is
// wrong with it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Filters.TitleAny = trimList(out.Filters.TitleAny)
	out.Filters.LocationsAllow = trimList(out.Filters.LocationsAllow)
	out.Filters.LocationsBlock = trimList(out.Filters.LocationsBlock)
	out.Output.Dir = strings.TrimSpace(out.Output.Dir)

	// ---- Validation rules ----

	if out.Output.Dir == "" {
		res.addErr("output.dir is required")
	}

	if out.Fetch.TimeoutSeconds <= 0 {
		res.addErr("fetch.timeout_seconds must be > 0")
	}
	if out.Fetch.RequestsPerSecond < 0 {
		res.addErr("fetch.requests_per_second must be >= 0 (0 disables throttling)")
	}
	if out.Fetch.Burst < 0 {
		res.addErr("fetch.burst must be >= 0")
	}

	if out.Enrich.Workers < 1 {
		res.addErr("enrich.workers must be >= 1")
	} else if out.Enrich.Workers > 16 {
		res.addWarn("enrich.workers is high (%d); detail pages are fetched from one host.", out.Enrich.Workers)
	}

	// sites
	out.Sites = append([]Site(nil), cfg.Sites...)
	names := map[string]bool{}
	outputs := map[string]string{}
	enabled := 0
	for i := range out.Sites {
		s := &out.Sites[i]
		s.Name = strings.TrimSpace(s.Name)
		s.Adapter = strings.ToLower(strings.TrimSpace(s.Adapter))
		s.ListingURL = strings.TrimSpace(s.ListingURL)
		s.BaseURL = strings.TrimSpace(s.BaseURL)

		label := fmt.Sprintf("sites[%d]", i)
		if s.Name == "" {
			res.addErr("%s.name is required", label)
		} else {
			label = fmt.Sprintf("sites[%s]", s.Name)
			key := strings.ToLower(s.Name)
			if names[key] {
				res.addErr("%s: duplicate site name", label)
			}
			names[key] = true
		}

		switch s.Adapter {
		case AdapterIQM, AdapterXanadu:
		case AdapterRules:
			if err := s.Selectors.Validate(); err != nil {
				res.addErr("%s.selectors: %v", label, err)
			}
			if s.ListingURL == "" {
				res.addErr("%s.listing_url is required for adapter %q", label, AdapterRules)
			}
		case "":
			res.addErr("%s.adapter is required (iqm, xanadu or rules)", label)
		default:
			res.addErr("%s.adapter %q is unknown (iqm, xanadu or rules)", label, s.Adapter)
		}

		if m := s.Selectors.DepartmentMode; m != "" && m != site.PrecedingSibling && m != site.PrecedingHeading {
			res.addErr("%s.selectors.department_mode %q is unknown", label, m)
		}
		if p := s.Selectors.LinkPolicy; p != "" && p != site.LinkAbsolute && p != site.LinkVerbatim {
			res.addErr("%s.selectors.link_policy %q is unknown", label, p)
		}

		for _, u := range []struct{ key, v string }{{"listing_url", s.ListingURL}, {"base_url", s.BaseURL}} {
			if u.v == "" {
				continue
			}
			pu, err := url.Parse(u.v)
			if err != nil || pu.Scheme == "" || pu.Host == "" {
				res.addErr("%s.%s must be an absolute URL: %q", label, u.key, u.v)
			}
		}

		if s.IsEnabled() {
			enabled++
			if s.Name != "" {
				file := strings.ToLower(s.OutputFile())
				if other, ok := outputs[file]; ok {
					res.addWarn("%s writes the same file as sites[%s]; the later write wins.", label, other)
				}
				outputs[file] = s.Name
			}
		}
	}

	if enabled == 0 {
		res.addWarn("no sites enabled; nothing will be scraped.")
	}

	// simple conflict check
	blockSet := map[string]bool{}
	for _, b := range out.Filters.LocationsBlock {
		blockSet[strings.ToLower(b)] = true
	}
	for _, a := range out.Filters.LocationsAllow {
		if blockSet[strings.ToLower(a)] {
			res.addWarn("location appears in both allow and block: %q", a)
		}
	}

	return out, res
}
