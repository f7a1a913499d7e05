package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// MatchJobStatus represents the lifecycle state of a match job.
type MatchJobStatus string

const (
	// MatchJobPending indicates the job is persisted and waiting in the queue.
	MatchJobPending MatchJobStatus = "pending"
	// MatchJobProcessing indicates the worker has picked the job up.
	MatchJobProcessing MatchJobStatus = "processing"
	// MatchJobCompleted indicates results were written to the cache.
	MatchJobCompleted MatchJobStatus = "completed"
	// MatchJobFailed indicates processing stopped with an error.
	MatchJobFailed MatchJobStatus = "failed"
)

// ErrInvalidTransition is returned when a status change would leave a terminal state
// or skip a step of the lifecycle.
var ErrInvalidTransition = errors.New("invalid match job status transition")

// Valid returns true if the status is known.
func (s MatchJobStatus) Valid() bool {
	return s == MatchJobPending || s == MatchJobProcessing || s == MatchJobCompleted || s == MatchJobFailed
}

// Terminal reports whether no further transitions are allowed.
func (s MatchJobStatus) Terminal() bool {
	return s == MatchJobCompleted || s == MatchJobFailed
}

// CanTransitionTo reports whether moving from s to next is allowed.
// pending may move to processing or straight to failed (a job can fail before
// the worker marks it processing, e.g. on a recovered panic).
func (s MatchJobStatus) CanTransitionTo(next MatchJobStatus) bool {
	switch s {
	case MatchJobPending:
		return next == MatchJobProcessing || next == MatchJobFailed
	case MatchJobProcessing:
		return next == MatchJobCompleted || next == MatchJobFailed
	case MatchJobCompleted, MatchJobFailed:
		return false
	default:
		return false
	}
}

// ParseMatchJobStatus parses a status string.
func ParseMatchJobStatus(raw string) (MatchJobStatus, error) {
	s := MatchJobStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("invalid match job status: %q", raw)
	}
	return s, nil
}

// MatchJob tracks one asynchronous resume-matching request.
type MatchJob struct {
	ID        string         `json:"job_id"          db:"id"`
	UserID    string         `json:"-"               db:"user_id"`
	Status    MatchJobStatus `json:"status"          db:"status"`
	Error     *string        `json:"error"           db:"error"`
	CreatedAt time.Time      `json:"created_at"      db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"      db:"updated_at"`
}

// MatchJobStatusUpdate describes a status write performed by the worker.
type MatchJobStatusUpdate struct {
	ID     string
	Status MatchJobStatus
	Error  *string
}

// Validate checks the update is well formed. A failed status always carries a message.
func (u MatchJobStatusUpdate) Validate() error {
	if u.ID == "" {
		return errors.New("job id is required")
	}
	if !u.Status.Valid() {
		return fmt.Errorf("invalid status %q", u.Status)
	}
	if u.Status == MatchJobFailed && (u.Error == nil || *u.Error == "") {
		return errors.New("failed status requires an error message")
	}
	return nil
}

// ResumeUpload is one unit of work for the match queue.
type ResumeUpload struct {
	UserID   string
	Filename string
	Content  []byte
}

// Upload limits enforced before a job enters the queue.
const MaxResumeBytes = 10 << 20

// AllowedResumeExtensions lists the file types the parser accepts.
func AllowedResumeExtensions() []string {
	return []string{".pdf", ".docx", ".txt"}
}

// SavedJob is a catalog entry bookmarked by a user.
type SavedJob struct {
	UserID    string        `json:"-"`
	Job       *CatalogEntry `json:"job"`
	CreatedAt time.Time     `json:"saved_at"`
}
