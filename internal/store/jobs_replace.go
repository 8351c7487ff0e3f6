package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"jobscrape/internal/domain"
)

// ReplaceSiteJobs swaps the exported rows of site for records in a single
// transaction. Nothing from earlier runs survives for that site.
func ReplaceSiteJobs(ctx context.Context, db *sql.DB, site string, records []domain.JobRecord) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM jobs WHERE site = ?;`, site); err != nil {
		return fmt.Errorf("clear site %s: %w", site, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO jobs(site, position, title, department, location, link,
  role_responsibilities, basic_qualifications, preferred_qualifications, extra_info, scraped_at)
VALUES(?,?,?,?,?,?,?,?,?,?,?);`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	at := time.Now().UTC().Format(time.RFC3339)
	for i, r := range records {
		j := jobFromRecord(site, i, r, at)
		if _, err := stmt.ExecContext(ctx,
			j.Site,
			j.Position,
			j.Title,
			j.Department,
			j.Location,
			j.Link,
			j.RoleResponsibilities,
			j.BasicQualifications,
			j.PreferredQualifications,
			j.ExtraInfo,
			j.ScrapedAt,
		); err != nil {
			return fmt.Errorf("insert %s #%d: %w", site, i, err)
		}
	}

	return tx.Commit()
}
