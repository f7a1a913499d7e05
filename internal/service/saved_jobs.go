package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Sakshamyadav19/HireMe-Backend/internal/core"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/domain/model"
	apperrors "github.com/Sakshamyadav19/HireMe-Backend/internal/errors"
)

// SavedJobService manages a user's bookmarked catalog entries.
type SavedJobService struct {
	repo core.SavedJobRepository
}

// NewSavedJobService constructs a SavedJobService.
func NewSavedJobService(repo core.SavedJobRepository) (*SavedJobService, error) {
	if repo == nil {
		return nil, errors.New("SavedJobRepository is required")
	}
	return &SavedJobService{repo: repo}, nil
}

func validateSavedJobInput(userID, jobID string) error {
	if strings.TrimSpace(userID) == "" {
		return apperrors.Unauthorized("missing user identity")
	}
	if strings.TrimSpace(jobID) == "" {
		return apperrors.ValidationField("job_id", "job_id is required")
	}
	return nil
}

// Save bookmarks jobID for userID. Saving twice is not an error. An unknown
// catalog entry reports not found.
func (s *SavedJobService) Save(ctx context.Context, userID, jobID string) error {
	if err := validateSavedJobInput(userID, jobID); err != nil {
		return err
	}
	err := s.repo.Add(ctx, userID, jobID)
	switch {
	case apperrors.IsForeignKey(err):
		return apperrors.NotFound("job not found")
	case err != nil:
		return fmt.Errorf("save job: %w", err)
	}
	return nil
}

// Remove drops a bookmark. Removing one that does not exist reports not found.
func (s *SavedJobService) Remove(ctx context.Context, userID, jobID string) error {
	if err := validateSavedJobInput(userID, jobID); err != nil {
		return err
	}
	removed, err := s.repo.Remove(ctx, userID, jobID)
	if err != nil {
		return fmt.Errorf("remove saved job: %w", err)
	}
	if !removed {
		return apperrors.NotFound("saved job not found")
	}
	return nil
}

// List returns the user's bookmarks, newest first.
func (s *SavedJobService) List(ctx context.Context, userID string) ([]*model.SavedJob, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.Unauthorized("missing user identity")
	}
	saved, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list saved jobs: %w", err)
	}
	if saved == nil {
		saved = []*model.SavedJob{}
	}
	return saved, nil
}
