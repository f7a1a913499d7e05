package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Sakshamyadav19/HireMe-Backend/internal/core"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/data"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/domain/model"
	apperrors "github.com/Sakshamyadav19/HireMe-Backend/internal/errors"
)

// MatchStatusService answers status polls for match jobs.
type MatchStatusService struct {
	jobs core.MatchJobRepository
}

// NewMatchStatusService constructs a MatchStatusService.
func NewMatchStatusService(jobs core.MatchJobRepository) (*MatchStatusService, error) {
	if jobs == nil {
		return nil, errors.New("MatchJobRepository is required")
	}
	return &MatchStatusService{jobs: jobs}, nil
}

// Status returns the job when userID owns it. Unknown ids and other users' jobs
// produce the same not-found error.
func (s *MatchStatusService) Status(ctx context.Context, userID, jobID string) (*model.MatchJob, error) {
	if strings.TrimSpace(jobID) == "" || strings.TrimSpace(userID) == "" {
		return nil, apperrors.NotFound("match job not found")
	}
	job, err := s.jobs.GetForUser(ctx, jobID, userID)
	if errors.Is(err, data.ErrMatchJobNotFound) {
		return nil, apperrors.NotFound("match job not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get match job: %w", err)
	}
	return job, nil
}

// Lookup returns a job regardless of owner. It backs the admin CLI.
func (s *MatchStatusService) Lookup(ctx context.Context, jobID string) (*model.MatchJob, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if errors.Is(err, data.ErrMatchJobNotFound) {
		return nil, apperrors.NotFound("match job not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get match job: %w", err)
	}
	return job, nil
}
