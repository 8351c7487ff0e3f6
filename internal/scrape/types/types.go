package types

import (
	"fmt"

	"jobscrape/internal/domain"

	"github.com/PuerkitoBio/goquery"
)

// SiteAdapter knows where one careers site keeps its job fields.
type SiteAdapter interface {
	Name() string
	ListingURL() string

	// Listings returns the repeated job elements in document order.
	Listings(doc *goquery.Document) *goquery.Selection

	Title(item *goquery.Selection) (string, error)
	Department(item *goquery.Selection) (string, error)
	Location(item *goquery.Selection) (string, error)
	Link(item *goquery.Selection) (string, error)

	// DetailSections lists the headings looked up on a job's detail page.
	DetailSections() []domain.Section
}

// MissingFieldError reports an element the page layout was expected to have.
type MissingFieldError struct {
	Site  string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing %s", e.Site, e.Field)
}

func Missing(site, field string) error {
	return &MissingFieldError{Site: site, Field: field}
}

type SiteResult struct {
	Site    string
	Path    string
	Fields  []string
	Records []domain.JobRecord
}
