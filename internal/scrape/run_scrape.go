package scrape

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"jobscrape/internal/config"
	"jobscrape/internal/domain"
	"jobscrape/internal/output"
	"jobscrape/internal/scrape/enrich"
	"jobscrape/internal/scrape/fetch"
	"jobscrape/internal/scrape/types"
	"jobscrape/internal/scrape/util"
	"jobscrape/internal/store"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"
)

type Runner struct {
	cfg config.Config
	get fetch.Getter
	db  *store.DB
}

// NewRunner wires a Runner for cfg. get may be nil, in which case an HTTP
// client is built from cfg.Fetch. db may be nil to skip the SQLite export.
func NewRunner(cfg config.Config, get fetch.Getter, db *store.DB) *Runner {
	if get == nil {
		limiter := util.NewHostLimiter(cfg.Fetch.RequestsPerSecond, cfg.Fetch.Burst)
		get = fetch.New(fetch.Config{
			Timeout:   time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second,
			UserAgent: cfg.Fetch.UserAgent,
		}, limiter)
	}
	return &Runner{cfg: cfg, get: get, db: db}
}

// Scrape fetches and parses one site and, when asked, enriches every record
// from its detail page. A listing page that cannot be fetched yields no
// records and no error.
func (r *Runner) Scrape(ctx context.Context, name string, a types.SiteAdapter, withDetails bool) []domain.JobRecord {
	body, err := r.get.Get(ctx, a.ListingURL())
	if err != nil {
		log.Printf("[site:%s] listing fetch failed: %v", name, err)
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		log.Printf("[site:%s] listing parse failed: %v", name, err)
		return nil
	}

	records := Parse(a, doc)
	fetched := len(records)
	records = filterRecords(name, r.cfg, records)
	log.Printf("[site:%s] fetched=%d kept=%d", name, fetched, len(records))

	if withDetails {
		r.enrichAll(ctx, name, a, records)
	}
	return records
}

// enrichAll fetches detail pages on a bounded pool. Each worker writes only
// its own index, so record order is unchanged.
func (r *Runner) enrichAll(ctx context.Context, name string, a types.SiteAdapter, records []domain.JobRecord) {
	e := enrich.New(r.get).WithSelectors(r.cfg.Enrich.Heading, r.cfg.Enrich.Paragraph)
	sections := a.DetailSections()
	found := make([]map[string]string, len(records))

	workers := r.cfg.Enrich.Workers
	if workers < 1 {
		workers = 1
	}
	var g errgroup.Group
	g.SetLimit(workers)

	for i := range records {
		link := records[i].Value(domain.FieldLink)
		if link == "" || link == domain.NoLink {
			continue
		}
		target := util.ResolveLink(a.ListingURL(), link)

		i := i
		g.Go(func() error {
			vals, err := e.Enrich(ctx, target, sections)
			if err != nil {
				log.Printf("[enrich:%s] %s: %v", name, target, err)
				return nil
			}
			found[i] = vals
			return nil
		})
	}
	_ = g.Wait()

	enriched := 0
	for i, vals := range found {
		if vals == nil {
			continue
		}
		for _, s := range sections {
			records[i].Set(s.Field, vals[s.Field])
		}
		enriched++
	}
	log.Printf("[enrich:%s] enriched=%d of %d", name, enriched, len(records))
}

// RunSite scrapes one configured site and writes its CSV (and SQLite rows
// when a database is attached). Only output failures are returned.
func (r *Runner) RunSite(ctx context.Context, s config.Site) (types.SiteResult, error) {
	a, err := NewAdapter(s)
	if err != nil {
		return types.SiteResult{Site: s.Name}, err
	}

	withDetails := s.EnrichEnabled(r.cfg.Enrich.Enabled)
	fields := append([]string(nil), domain.BasicFields...)
	if withDetails {
		for _, sec := range a.DetailSections() {
			fields = append(fields, sec.Field)
		}
	}

	records := r.Scrape(ctx, s.Name, a, withDetails)

	res := types.SiteResult{
		Site:    s.Name,
		Path:    r.outputPath(s),
		Fields:  fields,
		Records: records,
	}

	if err := output.WriteCSV(res.Path, fields, records); err != nil {
		return res, fmt.Errorf("site %s: %w", s.Name, err)
	}
	log.Printf("[csv:%s] wrote %d rows to %s", s.Name, len(records), res.Path)

	if r.db != nil {
		if err := store.ReplaceSiteJobs(ctx, r.db.Pool, s.Name, records); err != nil {
			return res, fmt.Errorf("site %s: sqlite export: %w", s.Name, err)
		}
	}
	return res, nil
}

// RunAll runs the named sites, or every enabled site when names is empty.
// Sites run concurrently; results come back in configuration order and
// per-site failures are joined.
func (r *Runner) RunAll(ctx context.Context, names []string) ([]types.SiteResult, error) {
	sites, err := r.selectSites(names)
	if err != nil {
		return nil, err
	}

	results := make([]types.SiteResult, len(sites))
	errs := make([]error, len(sites))

	var g errgroup.Group
	for i, s := range sites {
		i, s := i, s
		g.Go(func() error {
			log.Printf("[site:%s] Running...", s.Name)
			results[i], errs[i] = r.RunSite(ctx, s)
			if errs[i] != nil {
				log.Printf("[site:%s] error: %v", s.Name, errs[i])
			}
			return nil // best-effort: don't cancel siblings
		})
	}
	_ = g.Wait()

	return results, errors.Join(errs...)
}

func (r *Runner) selectSites(names []string) ([]config.Site, error) {
	if len(names) == 0 {
		var out []config.Site
		for _, s := range r.cfg.Sites {
			if s.IsEnabled() {
				out = append(out, s)
			}
		}
		return out, nil
	}

	var (
		out     []config.Site
		unknown []string
	)
	for _, n := range names {
		s, ok := r.cfg.SiteByName(strings.TrimSpace(n))
		if !ok {
			unknown = append(unknown, n)
			continue
		}
		out = append(out, s)
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown site(s): %s", strings.Join(unknown, ", "))
	}
	return out, nil
}

func (r *Runner) outputPath(s config.Site) string {
	file := s.OutputFile()
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(r.cfg.Output.Dir, file)
}
