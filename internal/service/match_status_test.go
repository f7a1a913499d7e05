package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Sakshamyadav19/HireMe-Backend/internal/data"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/domain/model"
	apperrors "github.com/Sakshamyadav19/HireMe-Backend/internal/errors"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/mocks"
)

func TestMatchStatusService_Status(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	jobs := mocks.NewMockMatchJobRepository(ctrl)
	svc, err := NewMatchStatusService(jobs)
	require.NoError(t, err)

	msg := "extract resume text: no text content found"
	owned := &model.MatchJob{ID: "job-1", UserID: "alice", Status: model.MatchJobFailed, Error: &msg}
	jobs.EXPECT().GetForUser(ctx, "job-1", "alice").Return(owned, nil)
	jobs.EXPECT().GetForUser(ctx, "job-1", "mallory").Return(nil, data.ErrMatchJobNotFound)
	jobs.EXPECT().GetForUser(ctx, "job-2", "alice").Return(nil, errors.New("timeout"))

	got, err := svc.Status(ctx, "alice", "job-1")
	require.NoError(t, err)
	assert.Equal(t, model.MatchJobFailed, got.Status)
	assert.Equal(t, &msg, got.Error)

	_, err = svc.Status(ctx, "mallory", "job-1")
	assert.True(t, apperrors.IsNotFound(err))

	_, err = svc.Status(ctx, "alice", "job-2")
	require.Error(t, err)
	assert.False(t, apperrors.IsNotFound(err))

	_, err = svc.Status(ctx, "alice", "")
	assert.True(t, apperrors.IsNotFound(err))
	_, err = svc.Status(ctx, "", "job-1")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestMatchStatusService_Lookup(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	jobs := mocks.NewMockMatchJobRepository(ctrl)
	svc, err := NewMatchStatusService(jobs)
	require.NoError(t, err)

	jobs.EXPECT().GetByID(ctx, "job-1").Return(&model.MatchJob{ID: "job-1", Status: model.MatchJobCompleted}, nil)
	jobs.EXPECT().GetByID(ctx, "nope").Return(nil, data.ErrMatchJobNotFound)

	got, err := svc.Lookup(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, model.MatchJobCompleted, got.Status)

	_, err = svc.Lookup(ctx, "nope")
	assert.True(t, apperrors.IsNotFound(err))

	_, err = NewMatchStatusService(nil)
	require.Error(t, err)
}
