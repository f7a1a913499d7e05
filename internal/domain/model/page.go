package model

import (
	"fmt"
	"strings"
)

// PageDirection selects which side of a cursor a page is read from.
type PageDirection string

const (
	PageNext PageDirection = "next"
	PagePrev PageDirection = "prev"
)

// ParsePageDirection parses a direction, defaulting to next when empty.
func ParsePageDirection(raw string) (PageDirection, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(PageNext):
		return PageNext, nil
	case string(PagePrev):
		return PagePrev, nil
	default:
		return "", fmt.Errorf("invalid direction %q (valid options: next, prev)", raw)
	}
}

// Result page limits.
const (
	DefaultPageLimit = 50
	MaxPageLimit     = 100
)

// ClampPageLimit bounds a requested limit to [1, MaxPageLimit], using the default for non-positive values.
func ClampPageLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageLimit
	}
	if limit > MaxPageLimit {
		return MaxPageLimit
	}
	return limit
}

// CatalogPageRequest describes one page of the catalog listing.
type CatalogPageRequest struct {
	Cursor    *string
	Direction PageDirection
	Limit     int
	Domain    *Domain
}

// CatalogPage is a keyset-paginated slice of the catalog, newest first.
type CatalogPage struct {
	Jobs       []*CatalogEntry `json:"jobs"`
	NextCursor *string         `json:"next_cursor"`
	PrevCursor *string         `json:"prev_cursor"`
}

// MatchResultsPageRequest describes one page of a user's cached match results.
type MatchResultsPageRequest struct {
	UserID    string
	Cursor    *string
	Direction PageDirection
	Limit     int
}

// MatchResultsPage is an offset-cursor slice of the cached match list.
type MatchResultsPage struct {
	TotalMatches int           `json:"total_matches"`
	Matches      []MatchResult `json:"matches"`
	NextCursor   *string       `json:"next_cursor"`
	PrevCursor   *string       `json:"prev_cursor"`
}
