package matching

import (
	"context"

	"github.com/Sakshamyadav19/HireMe-Backend/internal/domain/model"
)

// CandidateFilter returns the ids of catalog entries that pass the structured predicates.
// Implementations return an empty slice, never an error, when nothing matches.
type CandidateFilter interface {
	Filter(ctx context.Context, f model.CatalogFilter) ([]string, error)
}

// CandidateFilterFunc adapts a function to CandidateFilter.
type CandidateFilterFunc func(ctx context.Context, f model.CatalogFilter) ([]string, error)

// Filter calls fn(ctx, f).
func (fn CandidateFilterFunc) Filter(ctx context.Context, f model.CatalogFilter) ([]string, error) {
	return fn(ctx, f)
}

// ExperienceOverlaps reports whether [lo, hi] intersects [years-window, years+window].
func ExperienceOverlaps(years, lo, hi, window int) bool {
	return lo <= years+window && hi >= years-window
}

// CountryMatches applies the country predicate. A nil candidate country skips the
// check and an entry with no country is open to every candidate.
func CountryMatches(candidate, entry *string) bool {
	if candidate == nil || entry == nil {
		return true
	}
	return *candidate == *entry
}

// MatchesFilter evaluates every structured predicate against one entry. The SQL
// candidate filter is the production path; this mirrors it for in-memory catalogs.
func MatchesFilter(e *model.CatalogEntry, f model.CatalogFilter) bool {
	if e == nil || e.Domain != f.Domain {
		return false
	}
	if !ExperienceOverlaps(f.ExperienceYears, e.ExperienceMin, e.ExperienceMax, f.Window) {
		return false
	}
	return CountryMatches(f.Country, e.Country)
}
