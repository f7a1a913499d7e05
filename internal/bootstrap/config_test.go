package bootstrap

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sakshamyadav19/HireMe-Backend/config"
)

func TestGetEnabledServices_StableOrder(t *testing.T) {
	cfg := &config.AppConfig{Services: "reaper, match-worker,http"}
	assert.Equal(t, []string{"http", "match-worker", "reaper"}, GetEnabledServices(cfg))

	assert.Empty(t, GetEnabledServices(nil))
	assert.Empty(t, GetEnabledServices(&config.AppConfig{Services: "bogus"}))
}

func TestValidateServiceConfig(t *testing.T) {
	valid := func() *config.AppConfig {
		return &config.AppConfig{
			Services: "http,match-worker",
			Auth:     config.AuthConfig{JWTSecret: "s3cret"},
			Matching: config.MatchingConfig{
				ExperienceWindow: 2,
				TopK:             200,
				SkillsWeight:     0.45,
				SemanticWeight:   0.40,
				ExperienceWeight: 0.15,
			},
		}
	}

	require.NoError(t, ValidateServiceConfig(valid()))
	require.Error(t, ValidateServiceConfig(nil))

	cfg := valid()
	cfg.Services = "match-worker"
	require.Error(t, ValidateServiceConfig(cfg), "worker without http")

	cfg = valid()
	cfg.Auth.JWTSecret = ""
	require.Error(t, ValidateServiceConfig(cfg), "http without secret")

	cfg = valid()
	cfg.Services = "reaper"
	cfg.Auth.JWTSecret = ""
	require.NoError(t, ValidateServiceConfig(cfg))

	cfg = valid()
	cfg.Matching.SkillsWeight = 0.9
	require.Error(t, ValidateServiceConfig(cfg), "weights must sum to one")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warn"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("nonsense"))
}

func TestNewLogger_HonoursLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup := newLogger(&buf, config.LoggingConfig{Level: "warn"})
	defer func() { _ = cleanup() }()

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestNewLogger_FansOutToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	var buf bytes.Buffer
	logger, cleanup := newLogger(&buf, config.LoggingConfig{Level: "info", File: path})

	logger.Info("match job queued", "job_id", "j1")
	require.NoError(t, cleanup())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(raw))), &rec))
	assert.Equal(t, "match job queued", rec["msg"])
	assert.Equal(t, "j1", rec["job_id"])
	assert.Contains(t, buf.String(), "match job queued")
}

func TestNewLogger_UnwritableFileFallsBackToStdout(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "missing", "app.log")
	logger, cleanup := newLogger(&buf, config.LoggingConfig{Level: "info", File: path})
	require.NoError(t, cleanup())

	logger.Info("still logging")
	assert.Contains(t, buf.String(), "failed to open log file")
	assert.Contains(t, buf.String(), "still logging")
}
