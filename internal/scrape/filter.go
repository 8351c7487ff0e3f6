package scrape

import (
	"log"

	"jobscrape/internal/config"
	"jobscrape/internal/domain"
	"jobscrape/internal/scrape/util"
)

// ShouldKeepJob applies the optional filters block. With every list empty
// all records are kept.
func ShouldKeepJob(cfg config.Config, r domain.JobRecord) (keep bool, reason string) {
	if !passesLocation(cfg, r) {
		return false, "location"
	}
	if !matchesTitle(cfg, r) {
		return false, "no_title_match"
	}
	return true, ""
}

func passesLocation(cfg config.Config, r domain.JobRecord) bool {
	loc := r.Value(domain.FieldLocation)

	// Blocklist wins
	if util.ContainsAnyFold(loc, cfg.Filters.LocationsBlock) {
		return false
	}

	allow := cfg.Filters.LocationsAllow
	if len(allow) == 0 {
		return true
	}
	return util.ContainsAnyFold(loc, allow)
}

func matchesTitle(cfg config.Config, r domain.JobRecord) bool {
	if len(cfg.Filters.TitleAny) == 0 {
		return true
	}
	return util.ContainsAnyFold(r.Value(domain.FieldTitle), cfg.Filters.TitleAny)
}

func filterRecords(name string, cfg config.Config, in []domain.JobRecord) []domain.JobRecord {
	out := make([]domain.JobRecord, 0, len(in))
	for _, r := range in {
		keep, why := ShouldKeepJob(cfg, r)
		if !keep {
			log.Printf("[site:%s] skipped (%s) title=%q loc=%q link=%q",
				name, why, r.Value(domain.FieldTitle), r.Value(domain.FieldLocation), r.Value(domain.FieldLink))
			continue
		}
		out = append(out, r)
	}
	return out
}
