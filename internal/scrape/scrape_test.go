package scrape

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"jobscrape/internal/config"
	"jobscrape/internal/domain"
	"jobscrape/internal/output"
	"jobscrape/internal/scrape/iqm"
	"jobscrape/internal/scrape/xanadu"
	"jobscrape/internal/store"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtures serves canned pages by URL and records what was requested.
type fixtures struct {
	mu    sync.Mutex
	pages map[string]string
	hits  []string
}

func (f *fixtures) Get(_ context.Context, rawURL string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hits = append(f.hits, rawURL)
	body, ok := f.pages[rawURL]
	if !ok {
		return nil, errors.New("404 " + rawURL)
	}
	return []byte(body), nil
}

const iqmListing = `<html><body>
<h2>Quantum Software</h2>
<ul class="jobs-list">
  <li>
    <a href="/jobs/42"><span class="job-title">Quantum Engineer</span></a>
    <ul class="job-meta"><li>Espoo</li></ul>
  </li>
  <li>
    <a href="https://x.example/jobs/7"><span class="job-title">Ingénieur 量子</span></a>
    <ul class="job-meta"><li>Paris</li></ul>
  </li>
</ul>
</body></html>`

const iqmDetail = `<html><body>
<h3>Role and Responsibilities</h3>
<p>  Build quantum things.  </p>
<h3>Basic Qualifications</h3>
<p>Physics degree.</p>
</body></html>`

const xanaduListing = `<html><body>
<div class="department">Photonics</div>
<div class="job-posting">
  <h4>Chip Designer</h4>
  <ul><li>Toronto</li></ul>
  <a href="/careers/apply/101">Apply</a>
</div>
<div class="job-posting">
  <ul><li>Toronto</li></ul>
</div>
</body></html>`

func testConfig(dir string) config.Config {
	cfg := config.Default()
	cfg.Output.Dir = dir
	return cfg
}

func iqmOnly(cfg config.Config) config.Config {
	s, _ := cfg.SiteByName("iqm")
	cfg.Sites = []config.Site{s}
	return cfg
}

func TestParseKeepsDocumentOrderAndPlaceholders(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(xanaduListing))
	require.NoError(t, err)

	recs := Parse(xanadu.New(xanadu.Config{}), doc)
	require.Len(t, recs, 2)

	assert.Equal(t, "Chip Designer", recs[0].Value(domain.FieldTitle))
	assert.Equal(t, "Photonics", recs[0].Value(domain.FieldDepartment))
	assert.Equal(t, "/careers/apply/101", recs[0].Value(domain.FieldLink))

	assert.Equal(t, domain.NoData, recs[1].Value(domain.FieldTitle))
	assert.Equal(t, "Photonics", recs[1].Value(domain.FieldDepartment))
	assert.Equal(t, domain.NoLink, recs[1].Value(domain.FieldLink))
	assert.Equal(t, domain.BasicFields, recs[1].Keys())
}

func TestParseMissingDepartmentIsNoData(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<ul class="jobs-list"><li><span class="job-title">A</span></li><li><span class="job-title">B</span></li></ul>`))
	require.NoError(t, err)

	recs := Parse(iqm.New(iqm.Config{}), doc)
	require.Len(t, recs, 2)
	for _, r := range recs {
		v, ok := r.Get(domain.FieldDepartment)
		assert.True(t, ok)
		assert.Equal(t, domain.NoData, v)
	}
}

func TestParseManyListings(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<div class="department">Ops</div>`)
	for i := 0; i < 25; i++ {
		fmt.Fprintf(&b, `<div class="job-posting"><h4>Job %d</h4><a href="/j/%d">x</a></div>`, i, i)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(b.String()))
	require.NoError(t, err)

	recs := Parse(xanadu.New(xanadu.Config{}), doc)
	require.Len(t, recs, 25)
	for i, r := range recs {
		assert.Equal(t, fmt.Sprintf("Job %d", i), r.Value(domain.FieldTitle))
	}
}

func TestRunSiteIQMEndToEnd(t *testing.T) {
	dir := t.TempDir()
	f := &fixtures{pages: map[string]string{
		"https://iqm.teamtailor.com/jobs":    iqmListing,
		"https://iqm.teamtailor.com/jobs/42": iqmDetail,
	}}
	cfg := iqmOnly(testConfig(dir))

	res, err := NewRunner(cfg, f, nil).RunAll(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, filepath.Join(dir, "iqm_jobs.csv"), res[0].Path)
	assert.Equal(t, domain.ExtendedFields, res[0].Fields)

	header, recs, err := output.ReadCSV(res[0].Path)
	require.NoError(t, err)
	assert.Equal(t, domain.ExtendedFields, header)
	require.Len(t, recs, 2)

	assert.Equal(t, "https://iqm.teamtailor.com/jobs/42", recs[0].Value(domain.FieldLink))
	assert.Equal(t, "https://x.example/jobs/7", recs[1].Value(domain.FieldLink))

	assert.Equal(t, "Quantum Software", recs[0].Value(domain.FieldDepartment))
	assert.Equal(t, "Build quantum things.", recs[0].Value(domain.FieldRoleResponsibilities))
	assert.Equal(t, "Physics degree.", recs[0].Value(domain.FieldBasicQualifications))
	assert.Equal(t, domain.InfoNotAvailable, recs[0].Value(domain.FieldPreferredQualifications))
	assert.Equal(t, domain.InfoNotAvailable, recs[0].Value(domain.FieldExtraInfo))

	// detail fetch failed: written without section values
	assert.Equal(t, "Ingénieur 量子", recs[1].Value(domain.FieldTitle))
	assert.Equal(t, "", recs[1].Value(domain.FieldRoleResponsibilities))
}

func TestRunSiteWithoutEnrichment(t *testing.T) {
	dir := t.TempDir()
	f := &fixtures{pages: map[string]string{"https://iqm.teamtailor.com/jobs": iqmListing}}
	cfg := iqmOnly(testConfig(dir))
	cfg.Enrich.Enabled = false

	res, err := NewRunner(cfg, f, nil).RunSite(context.Background(), cfg.Sites[0])
	require.NoError(t, err)
	assert.Equal(t, domain.BasicFields, res.Fields)
	assert.Equal(t, []string{"https://iqm.teamtailor.com/jobs"}, f.hits)

	b, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "title,department,location,link\n"))
}

func TestRunSiteXanaduResolvesDetailLinkButKeepsItVerbatim(t *testing.T) {
	dir := t.TempDir()
	f := &fixtures{pages: map[string]string{
		"https://www.xanadu.ai/careers":           xanaduListing,
		"https://www.xanadu.ai/careers/apply/101": `<h2>Extra Information</h2><p>Hybrid.</p>`,
	}}
	cfg := testConfig(dir)
	s, _ := cfg.SiteByName("xanadu")

	res, err := NewRunner(cfg, f, nil).RunSite(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, res.Records, 2)

	assert.Equal(t, "/careers/apply/101", res.Records[0].Value(domain.FieldLink))
	assert.Equal(t, "Hybrid.", res.Records[0].Value(domain.FieldExtraInfo))
	_, enriched := res.Records[1].Get(domain.FieldExtraInfo)
	assert.False(t, enriched, "record without a link is not enriched")
}

func TestRunSiteListingFetchFailureWritesHeaderOnly(t *testing.T) {
	dir := t.TempDir()
	cfg := iqmOnly(testConfig(dir))

	res, err := NewRunner(cfg, &fixtures{}, nil).RunSite(context.Background(), cfg.Sites[0])
	require.NoError(t, err)
	assert.Empty(t, res.Records)

	b, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(domain.ExtendedFields, ",")+"\n", string(b))
}

func TestRunSiteWriteFailureIsReturned(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	cfg := iqmOnly(testConfig(blocker))
	_, err := NewRunner(cfg, &fixtures{}, nil).RunAll(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "site iqm")
}

func TestRunTwiceIsByteIdentical(t *testing.T) {
	pages := map[string]string{
		"https://iqm.teamtailor.com/jobs":    iqmListing,
		"https://iqm.teamtailor.com/jobs/42": iqmDetail,
		"https://www.xanadu.ai/careers":      xanaduListing,
	}

	run := func() ([]byte, []byte) {
		cfg := testConfig(t.TempDir())
		res, err := NewRunner(cfg, &fixtures{pages: pages}, nil).RunAll(context.Background(), nil)
		require.NoError(t, err)
		require.Len(t, res, 2)
		a, err := os.ReadFile(res[0].Path)
		require.NoError(t, err)
		b, err := os.ReadFile(res[1].Path)
		require.NoError(t, err)
		return a, b
	}

	a1, b1 := run()
	a2, b2 := run()
	assert.Equal(t, a1, a2)
	assert.Equal(t, b1, b2)
}

func TestEnrichmentPoolKeepsOrder(t *testing.T) {
	var b strings.Builder
	pages := map[string]string{}
	b.WriteString(`<h2>Team</h2><ul class="jobs-list">`)
	for i := 0; i < 40; i++ {
		fmt.Fprintf(&b, `<li><a href="/jobs/%d"><span class="job-title">Job %d</span></a></li>`, i, i)
		pages[fmt.Sprintf("https://iqm.teamtailor.com/jobs/%d", i)] =
			fmt.Sprintf(`<h3>Role and Responsibilities</h3><p>Task %d</p>`, i)
	}
	b.WriteString(`</ul>`)
	pages["https://iqm.teamtailor.com/jobs"] = b.String()

	cfg := iqmOnly(testConfig(t.TempDir()))
	cfg.Enrich.Workers = 8

	res, err := NewRunner(cfg, &fixtures{pages: pages}, nil).RunSite(context.Background(), cfg.Sites[0])
	require.NoError(t, err)
	require.Len(t, res.Records, 40)
	for i, r := range res.Records {
		assert.Equal(t, fmt.Sprintf("Job %d", i), r.Value(domain.FieldTitle))
		assert.Equal(t, fmt.Sprintf("Task %d", i), r.Value(domain.FieldRoleResponsibilities))
	}
}

func TestRunAllSelectsSites(t *testing.T) {
	cfg := testConfig(t.TempDir())
	off := false
	cfg.Sites[1].Enabled = &off

	r := NewRunner(cfg, &fixtures{}, nil)

	res, err := r.RunAll(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "iqm", res[0].Site)

	res, err = r.RunAll(context.Background(), []string{"xanadu"})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "xanadu", res[0].Site)

	_, err = r.RunAll(context.Background(), []string{"greenhouse"})
	assert.EqualError(t, err, "unknown site(s): greenhouse")
}

func TestRunSiteExportsToSQLite(t *testing.T) {
	dir := t.TempDir()
	db, err := store.Open(filepath.Join(dir, "jobs.db"))
	require.NoError(t, err)
	defer db.Close()

	cfg := iqmOnly(testConfig(dir))
	cfg.Enrich.Enabled = false
	f := &fixtures{pages: map[string]string{"https://iqm.teamtailor.com/jobs": iqmListing}}

	_, err = NewRunner(cfg, f, db).RunSite(context.Background(), cfg.Sites[0])
	require.NoError(t, err)

	jobs, err := store.ListJobs(context.Background(), db.Pool, "iqm")
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "https://iqm.teamtailor.com/jobs/42", jobs[0].Link)
}

func TestRunSiteAppliesFilters(t *testing.T) {
	cfg := iqmOnly(testConfig(t.TempDir()))
	cfg.Enrich.Enabled = false
	cfg.Filters.LocationsBlock = []string{"paris"}
	f := &fixtures{pages: map[string]string{"https://iqm.teamtailor.com/jobs": iqmListing}}

	res, err := NewRunner(cfg, f, nil).RunSite(context.Background(), cfg.Sites[0])
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "Quantum Engineer", res.Records[0].Value(domain.FieldTitle))
}

func TestNewAdapter(t *testing.T) {
	a, err := NewAdapter(config.Site{Name: "iqm", Adapter: "IQM"})
	require.NoError(t, err)
	assert.Equal(t, iqm.DefaultListingURL, a.ListingURL())

	_, err = NewAdapter(config.Site{Name: "x", Adapter: "rules"})
	assert.Error(t, err)

	_, err = NewAdapter(config.Site{Name: "x", Adapter: "lever"})
	assert.EqualError(t, err, `site "x": unknown adapter "lever"`)
}
