// Package enrich fills the long-form sections of a job from its detail page.
package enrich

import (
	"bytes"
	"context"
	"fmt"

	"jobscrape/internal/domain"
	"jobscrape/internal/scrape/fetch"
	"jobscrape/internal/scrape/util"

	"github.com/PuerkitoBio/goquery"
)

const (
	DefaultHeading   = "h1, h2, h3, h4, h5, h6"
	DefaultParagraph = "p"
)

type Enricher struct {
	get       fetch.Getter
	heading   string
	paragraph string
}

// New returns an Enricher using the default heading and paragraph selectors.
func New(get fetch.Getter) *Enricher {
	return &Enricher{get: get, heading: DefaultHeading, paragraph: DefaultParagraph}
}

// WithSelectors overrides which elements count as headings and paragraphs.
// Blank arguments keep the current value.
func (e *Enricher) WithSelectors(heading, paragraph string) *Enricher {
	cp := *e
	if heading != "" {
		cp.heading = heading
	}
	if paragraph != "" {
		cp.paragraph = paragraph
	}
	return &cp
}

// Enrich fetches link and returns one value per section, keyed by the
// section's field. A fetch or parse failure returns an error and no values.
func (e *Enricher) Enrich(ctx context.Context, link string, sections []domain.Section) (map[string]string, error) {
	body, err := e.get.Get(ctx, link)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse detail page %s: %w", link, err)
	}
	return e.Extract(doc, sections), nil
}

// Extract reads the sections out of an already parsed detail page.
func (e *Enricher) Extract(doc *goquery.Document, sections []domain.Section) map[string]string {
	out := make(map[string]string, len(sections))
	for _, s := range sections {
		out[s.Field] = e.section(doc, s.Label)
	}
	return out
}

func (e *Enricher) section(doc *goquery.Document, label string) string {
	var head *goquery.Selection
	doc.Find(e.heading).EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if util.CleanText(h.Text()) == label {
			head = h
			return false
		}
		return true
	})
	if head == nil {
		return domain.InfoNotAvailable
	}

	p := util.FollowingMatch(head, e.paragraph)
	if p == nil {
		return domain.InfoNotAvailable
	}
	if t := util.CleanText(p.Text()); t != "" {
		return t
	}
	return domain.InfoNotAvailable
}
