package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// ErrMatchJobNotFound is returned when a match job does not exist or belongs to another user.
	ErrMatchJobNotFound = errors.New("match job not found")

	// ErrCatalogEntryNotFound is returned when a catalog entry does not exist.
	ErrCatalogEntryNotFound = errors.New("catalog entry not found")

	// ErrInvalidCursor is returned when a catalog cursor token cannot be decoded.
	ErrInvalidCursor = errors.New("invalid cursor")

	// ErrCursorRequired is returned when paging backwards without a cursor.
	ErrCursorRequired = errors.New("cursor required for dir=prev")

	ErrUserIDRequired = errors.New("user_id is required")
	ErrJobIDRequired  = errors.New("job_id is required")
)
