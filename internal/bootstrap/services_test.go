package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Sakshamyadav19/HireMe-Backend/config"
	httpx "github.com/Sakshamyadav19/HireMe-Backend/internal/http"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/mocks"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/service"
)

func TestErrorChannelCapacity(t *testing.T) {
	tests := []struct {
		name  string
		modes []config.ServiceMode
		want  int
	}{
		{
			name: "no services enabled",
			want: 0,
		},
		{
			name:  "http only",
			modes: []config.ServiceMode{config.ServiceModeHTTP},
			want:  1,
		},
		{
			name:  "http and match worker",
			modes: []config.ServiceMode{config.ServiceModeHTTP, config.ServiceModeMatchWorker},
			want:  2,
		},
		{
			name: "all services enabled",
			modes: []config.ServiceMode{
				config.ServiceModeHTTP,
				config.ServiceModeMatchWorker,
				config.ServiceModeReaper,
			},
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enabled := make(map[config.ServiceMode]bool, len(tt.modes))
			for _, mode := range tt.modes {
				enabled[mode] = true
			}

			if got := errorChannelCapacity(enabled); got != tt.want {
				t.Fatalf("errorChannelCapacity(%v) = %d, want %d", tt.modes, got, tt.want)
			}
		})
	}
}

func TestErrorChannelBufferSize(t *testing.T) {
	tests := []struct {
		name  string
		modes []config.ServiceMode
		want  int
	}{
		{
			name: "no services enabled",
			want: 1,
		},
		{
			name:  "reaper only",
			modes: []config.ServiceMode{config.ServiceModeReaper},
			want:  2,
		},
		{
			name: "all services enabled",
			modes: []config.ServiceMode{
				config.ServiceModeHTTP,
				config.ServiceModeMatchWorker,
				config.ServiceModeReaper,
			},
			want: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enabled := make(map[config.ServiceMode]bool, len(tt.modes))
			for _, mode := range tt.modes {
				enabled[mode] = true
			}

			if got := errorChannelBufferSize(enabled); got != tt.want {
				t.Fatalf("errorChannelBufferSize(%v) = %d, want %d", tt.modes, got, tt.want)
			}
		})
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLaunchBackground_SkipsDisabledMode(t *testing.T) {
	deps := &serviceStartupDeps{
		ctx:             context.Background(),
		logger:          discardLogger(),
		enabledServices: map[config.ServiceMode]bool{config.ServiceModeHTTP: true},
		errCh:           make(chan error, 1),
	}
	called := false
	done := launchBackground(deps.ctx, deps, backgroundService{
		mode:  config.ServiceModeReaper,
		name:  "reaper",
		start: func(context.Context) error { called = true; return nil },
	})
	assert.Nil(t, done)
	assert.False(t, called)
}

func TestLaunchBackground_ForwardsError(t *testing.T) {
	deps := &serviceStartupDeps{
		ctx:             context.Background(),
		logger:          discardLogger(),
		enabledServices: map[config.ServiceMode]bool{config.ServiceModeReaper: true},
		errCh:           make(chan error, 1),
	}
	boom := errors.New("boom")
	done := launchBackground(deps.ctx, deps, backgroundService{
		mode:  config.ServiceModeReaper,
		name:  "reaper",
		start: func(context.Context) error { return boom },
	})
	require.NotNil(t, done)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("background service did not finish")
	}
	select {
	case err := <-deps.errCh:
		require.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "reaper failed")
	default:
		t.Fatal("expected error on channel")
	}
}

func TestStartBackgroundServices_OnlyEnabled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	deps := &serviceStartupDeps{
		ctx:             ctx,
		logger:          discardLogger(),
		enabledServices: map[config.ServiceMode]bool{config.ServiceModeMatchWorker: true},
		errCh:           make(chan error, 2),
	}
	block := func(ctx context.Context) error { <-ctx.Done(); return nil }
	handles := startBackgroundServices(deps, []backgroundService{
		{mode: config.ServiceModeMatchWorker, name: "match worker", start: block},
		{mode: config.ServiceModeReaper, name: "reaper", start: block},
	})
	require.Len(t, handles, 1)
	assert.Equal(t, "match worker", handles[0].name)

	cancel()
	select {
	case <-handles[0].done:
	case <-time.After(time.Second):
		t.Fatal("match worker did not stop on cancel")
	}
}

func TestMatchWorkerBackgroundService_RequiresQueue(t *testing.T) {
	deps := &serviceStartupDeps{
		cfg:    &ServiceOrchestrationConfig{Config: &config.AppConfig{}},
		logger: discardLogger(),
	}
	svc := newMatchWorkerBackgroundService(deps)
	assert.Equal(t, config.ServiceModeMatchWorker, svc.mode)
	require.Error(t, svc.start(context.Background()))
}

func TestWaitForShutdown_SignalStopsBackgrounds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		<-ctx.Done()
		close(done)
	}()

	signals := make(chan os.Signal, 1)
	signals <- syscall.SIGTERM

	err := waitForShutdown(shutdownConfig{
		ctx:         ctx,
		cancel:      cancel,
		errCh:       make(chan error),
		logger:      discardLogger(),
		backgrounds: []backgroundServiceHandle{{mode: config.ServiceModeReaper, name: "reaper", done: done}},
		signals:     signals,
	})
	require.NoError(t, err)
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestWaitForShutdown_ReturnsServiceError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	boom := errors.New("reaper failed: boom")
	errCh <- boom

	err := waitForShutdown(shutdownConfig{
		ctx:     ctx,
		cancel:  cancel,
		errCh:   errCh,
		logger:  discardLogger(),
		signals: make(chan os.Signal),
	})
	require.ErrorIs(t, err, boom)
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestBuildObservability_DisabledHasNoSink(t *testing.T) {
	obs := buildObservability(discardLogger(), config.ObservabilityConfig{})
	assert.Nil(t, obs.MetricsSink)
	assert.Nil(t, obs.MetricsClient)
	assert.NoError(t, obs.Close())
}

func TestNewServices_RequiresDependencies(t *testing.T) {
	_, err := NewServices(context.Background(), nil)
	require.Error(t, err)

	_, err = NewServices(context.Background(), &ServiceDeps{Config: &config.AppConfig{}})
	require.Error(t, err)
}

type noopTaskProcessor struct{}

func (noopTaskProcessor) Process(context.Context, service.MatchTask) error { return nil }

func TestBuildReadinessProbes(t *testing.T) {
	db, err := sql.Open("pgx", "postgres://u:p@127.0.0.1:1/none?sslmode=disable")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	probeNames := func(probes []httpx.ReadinessProbe) []string {
		names := make([]string, 0, len(probes))
		for _, p := range probes {
			names = append(names, p.Name)
		}
		return names
	}

	t.Run("database only without cache or worker", func(t *testing.T) {
		probes := buildReadinessProbes(&serviceRepositories{DB: db}, nil, false)
		assert.Equal(t, []string{"database"}, probeNames(probes))
	})

	t.Run("worker probe tracks the consumer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		queue, err := service.NewMatchQueue(service.MatchQueueOptions{
			Jobs:      mocks.NewMockMatchJobRepository(ctrl),
			Processor: noopTaskProcessor{},
		})
		require.NoError(t, err)

		probes := buildReadinessProbes(&serviceRepositories{DB: db}, queue, true)
		require.Equal(t, []string{"database", "match_worker"}, probeNames(probes))

		worker := probes[1]
		require.Error(t, worker.Check(context.Background()))

		ctx, cancel := context.WithCancel(context.Background())
		require.NoError(t, queue.Start(ctx))
		assert.NoError(t, worker.Check(context.Background()))
		cancel()
		require.NoError(t, queue.Stop(context.Background()))
	})
}
