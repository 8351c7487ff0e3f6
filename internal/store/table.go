package store

import (
	"context"
	"database/sql"

	"jobscrape/internal/domain"
)

// Job is one exported row. Section fields are empty when the run did not
// enrich the site.
type Job struct {
	Site                    string
	Position                int
	Title                   string
	Department              string
	Location                string
	Link                    string
	RoleResponsibilities    string
	BasicQualifications     string
	PreferredQualifications string
	ExtraInfo               string
	ScrapedAt               string
}

func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS jobs (
  site TEXT NOT NULL,
  position INTEGER NOT NULL,
  title TEXT NOT NULL,
  department TEXT NOT NULL,
  location TEXT NOT NULL,
  link TEXT NOT NULL,
  role_responsibilities TEXT NOT NULL DEFAULT '',
  basic_qualifications TEXT NOT NULL DEFAULT '',
  preferred_qualifications TEXT NOT NULL DEFAULT '',
  extra_info TEXT NOT NULL DEFAULT '',
  scraped_at TEXT NOT NULL,
  PRIMARY KEY (site, position)
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}
	return tx.Commit()
}

// ListJobs returns the rows last exported for site in scrape order.
func ListJobs(ctx context.Context, db *sql.DB, site string) ([]Job, error) {
	rows, err := db.QueryContext(ctx, `
SELECT site, position, title, department, location, link,
       role_responsibilities, basic_qualifications, preferred_qualifications, extra_info, scraped_at
FROM jobs
WHERE site = ?
ORDER BY position ASC;`, site)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		var j Job
		if err := rows.Scan(
			&j.Site,
			&j.Position,
			&j.Title,
			&j.Department,
			&j.Location,
			&j.Link,
			&j.RoleResponsibilities,
			&j.BasicQualifications,
			&j.PreferredQualifications,
			&j.ExtraInfo,
			&j.ScrapedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func jobFromRecord(site string, pos int, r domain.JobRecord, at string) Job {
	return Job{
		Site:                    site,
		Position:                pos,
		Title:                   r.Value(domain.FieldTitle),
		Department:              r.Value(domain.FieldDepartment),
		Location:                r.Value(domain.FieldLocation),
		Link:                    r.Value(domain.FieldLink),
		RoleResponsibilities:    r.Value(domain.FieldRoleResponsibilities),
		BasicQualifications:     r.Value(domain.FieldBasicQualifications),
		PreferredQualifications: r.Value(domain.FieldPreferredQualifications),
		ExtraInfo:               r.Value(domain.FieldExtraInfo),
		ScrapedAt:               at,
	}
}
