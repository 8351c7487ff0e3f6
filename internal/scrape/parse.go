package scrape

import (
	"log"

	"jobscrape/internal/domain"
	"jobscrape/internal/scrape/types"

	"github.com/PuerkitoBio/goquery"
)

// Parse turns every listing element of doc into a record, in document
// order. Fields the layout lacks get a placeholder instead of failing the
// listing.
func Parse(a types.SiteAdapter, doc *goquery.Document) []domain.JobRecord {
	items := a.Listings(doc)
	out := make([]domain.JobRecord, 0, items.Length())

	items.Each(func(i int, item *goquery.Selection) {
		orElse := func(placeholder string, v string, err error) string {
			if err != nil {
				log.Printf("[site:%s] listing #%d: %v", a.Name(), i, err)
				return placeholder
			}
			return v
		}

		title, err := a.Title(item)
		title = orElse(domain.NoData, title, err)
		dept, err := a.Department(item)
		dept = orElse(domain.NoData, dept, err)
		loc, err := a.Location(item)
		loc = orElse(domain.NoData, loc, err)
		link, err := a.Link(item)
		link = orElse(domain.NoLink, link, err)

		r := domain.NewJobRecord()
		r.Set(domain.FieldTitle, title)
		r.Set(domain.FieldDepartment, dept)
		r.Set(domain.FieldLocation, loc)
		r.Set(domain.FieldLink, link)
		out = append(out, r)
	})
	return out
}
