package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Sakshamyadav19/HireMe-Backend/internal/domain/model"
	apperrors "github.com/Sakshamyadav19/HireMe-Backend/internal/errors"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/mocks"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/observability/statsd"
)

// processorFunc adapts a function to MatchTaskProcessor.
type processorFunc func(ctx context.Context, task MatchTask) error

func (fn processorFunc) Process(ctx context.Context, task MatchTask) error { return fn(ctx, task) }

func sequentialIDs() func() string {
	var (
		mu sync.Mutex
		n  int
	)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return "job-" + string(rune('0'+n))
	}
}

func pendingJob(id, userID string) *model.MatchJob {
	return &model.MatchJob{ID: id, UserID: userID, Status: model.MatchJobPending}
}

func validUpload() model.ResumeUpload {
	return model.ResumeUpload{UserID: "user-1", Filename: "resume.PDF", Content: []byte("%PDF-1.7")}
}

func TestMatchQueue_ValidateUpload(t *testing.T) {
	ctrl := gomock.NewController(t)
	q, err := NewMatchQueue(MatchQueueOptions{
		Jobs:           mocks.NewMockMatchJobRepository(ctrl),
		Processor:      processorFunc(func(context.Context, MatchTask) error { return nil }),
		MaxUploadBytes: 16,
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		upload   model.ResumeUpload
		wantCode apperrors.ErrorCode
		wantMsg  string
	}{
		{"missing user", model.ResumeUpload{Filename: "a.pdf", Content: []byte("x")}, apperrors.ErrCodeUnauthorized, "identity"},
		{"missing filename", model.ResumeUpload{UserID: "u", Content: []byte("x")}, apperrors.ErrCodeValidation, "no file"},
		{"empty content", model.ResumeUpload{UserID: "u", Filename: "a.pdf"}, apperrors.ErrCodeValidation, "empty"},
		{"too large", model.ResumeUpload{UserID: "u", Filename: "a.pdf", Content: make([]byte, 17)}, apperrors.ErrCodeValidation, "exceeds"},
		{"bad extension", model.ResumeUpload{UserID: "u", Filename: "a.exe", Content: []byte("x")}, apperrors.ErrCodeValidation, "unsupported file type"},
		{"no extension", model.ResumeUpload{UserID: "u", Filename: "resume", Content: []byte("x")}, apperrors.ErrCodeValidation, "unsupported file type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := q.Enqueue(context.Background(), tt.upload)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperrors.GetCode(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}

	for _, ok := range []string{"cv.pdf", "CV.DOCX", "notes.txt"} {
		assert.NoError(t, q.validateUpload(model.ResumeUpload{UserID: "u", Filename: ok, Content: []byte("x")}), ok)
	}
}

func TestMatchQueue_RejectsWhenStopped(t *testing.T) {
	ctrl := gomock.NewController(t)
	q, err := NewMatchQueue(MatchQueueOptions{
		Jobs:      mocks.NewMockMatchJobRepository(ctrl),
		Processor: processorFunc(func(context.Context, MatchTask) error { return nil }),
	})
	require.NoError(t, err)

	assert.False(t, q.Running())
	_, err = q.Enqueue(context.Background(), validUpload())
	require.Error(t, err)
	assert.True(t, apperrors.IsUnavailable(err))
}

func TestMatchQueue_ProcessesInFIFOOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	jobs := mocks.NewMockMatchJobRepository(ctrl)
	jobs.EXPECT().Create(gomock.Any(), gomock.Any(), "user-1").
		DoAndReturn(func(_ context.Context, id, userID string) (*model.MatchJob, error) {
			return pendingJob(id, userID), nil
		}).
		Times(3)

	var (
		mu   sync.Mutex
		seen []string
		wg   sync.WaitGroup
	)
	wg.Add(3)
	q, err := NewMatchQueue(MatchQueueOptions{
		Jobs: jobs,
		Processor: processorFunc(func(_ context.Context, task MatchTask) error {
			defer wg.Done()
			mu.Lock()
			seen = append(seen, task.JobID)
			mu.Unlock()
			return nil
		}),
		NewID:   sequentialIDs(),
		Metrics: statsd.NewRecorder(),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, q.Start(ctx))
	require.ErrorIs(t, q.Start(ctx), ErrMatchQueueRunning)

	for range 3 {
		job, enqueueErr := q.Enqueue(ctx, validUpload())
		require.NoError(t, enqueueErr)
		assert.Equal(t, model.MatchJobPending, job.Status)
	}

	waitOrFail(t, &wg)
	mu.Lock()
	assert.Equal(t, []string{"job-1", "job-2", "job-3"}, seen)
	mu.Unlock()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()
	require.NoError(t, q.Stop(stopCtx))
	assert.False(t, q.Running())
	require.NoError(t, q.Stop(stopCtx))
}

func TestMatchQueue_SurvivesFailingAndPanickingJobs(t *testing.T) {
	ctrl := gomock.NewController(t)
	jobs := mocks.NewMockMatchJobRepository(ctrl)
	jobs.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id, userID string) (*model.MatchJob, error) {
			return pendingJob(id, userID), nil
		}).
		Times(3)
	jobs.EXPECT().UpdateStatus(gomock.Any(), failedWith("job-2", "internal error: boom")).Return(true, nil)

	var wg sync.WaitGroup
	wg.Add(3)
	q, err := NewMatchQueue(MatchQueueOptions{
		Jobs: jobs,
		Processor: processorFunc(func(_ context.Context, task MatchTask) error {
			defer wg.Done()
			switch task.JobID {
			case "job-1":
				return errors.New("provider down")
			case "job-2":
				panic("boom")
			}
			return nil
		}),
		NewID: sequentialIDs(),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, q.Start(ctx))
	for range 3 {
		_, enqueueErr := q.Enqueue(ctx, validUpload())
		require.NoError(t, enqueueErr)
	}

	waitOrFail(t, &wg)
	assert.True(t, q.Running())
}

func TestMatchQueue_FullQueueFailsJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	jobs := mocks.NewMockMatchJobRepository(ctrl)
	jobs.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id, userID string) (*model.MatchJob, error) {
			return pendingJob(id, userID), nil
		}).
		Times(3)
	jobs.EXPECT().UpdateStatus(gomock.Any(), failedWith("job-3", "match queue is full")).Return(true, nil)

	started := make(chan struct{})
	release := make(chan struct{})
	q, err := NewMatchQueue(MatchQueueOptions{
		Jobs: jobs,
		Processor: processorFunc(func(ctx context.Context, task MatchTask) error {
			if task.JobID == "job-1" {
				close(started)
				<-release
			}
			return nil
		}),
		Capacity: 1,
		NewID:    sequentialIDs(),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, q.Start(ctx))
	defer close(release)

	_, err = q.Enqueue(ctx, validUpload())
	require.NoError(t, err)
	<-started

	_, err = q.Enqueue(ctx, validUpload())
	require.NoError(t, err)
	assert.Equal(t, 1, q.Depth())

	_, err = q.Enqueue(ctx, validUpload())
	require.Error(t, err)
	assert.True(t, apperrors.IsUnavailable(err))
}

func TestMatchQueue_RunStopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	q, err := NewMatchQueue(MatchQueueOptions{
		Jobs:      mocks.NewMockMatchJobRepository(ctrl),
		Processor: processorFunc(func(context.Context, MatchTask) error { return nil }),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- q.Run(ctx) }()

	require.Eventually(t, q.Running, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.False(t, q.Running())
}

func TestMatchQueue_JobTimeoutApplied(t *testing.T) {
	ctrl := gomock.NewController(t)
	jobs := mocks.NewMockMatchJobRepository(ctrl)
	jobs.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id, userID string) (*model.MatchJob, error) {
			return pendingJob(id, userID), nil
		})

	deadlines := make(chan bool, 1)
	q, err := NewMatchQueue(MatchQueueOptions{
		Jobs: jobs,
		Processor: processorFunc(func(ctx context.Context, _ MatchTask) error {
			_, ok := ctx.Deadline()
			deadlines <- ok
			return nil
		}),
		JobTimeout: time.Minute,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, q.Start(ctx))
	_, err = q.Enqueue(ctx, validUpload())
	require.NoError(t, err)

	select {
	case ok := <-deadlines:
		assert.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("job was not processed")
	}
}

func TestNewMatchQueue_Defaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	q, err := NewMatchQueue(MatchQueueOptions{
		Jobs:      mocks.NewMockMatchJobRepository(ctrl),
		Processor: processorFunc(func(context.Context, MatchTask) error { return nil }),
	})
	require.NoError(t, err)
	assert.Equal(t, defaultMatchQueueCapacity, q.Capacity())
	assert.Equal(t, defaultMatchJobTimeout, q.jobTimeout)
	assert.Equal(t, int64(model.MaxResumeBytes), q.maxBytes)

	_, err = NewMatchQueue(MatchQueueOptions{})
	require.Error(t, err)
}

func waitOrFail(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for queued jobs")
	}
}
