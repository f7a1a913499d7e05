package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultTestDBConfig(t *testing.T) {
	t.Run("defaults to local test database port 55432", func(t *testing.T) {
		for _, k := range []string{"TEST_DB_HOST", "TEST_DB_PORT", "TEST_DB_USER", "TEST_DB_PASSWORD", "TEST_DB_NAME"} {
			t.Setenv(k, "")
		}
		cfg := DefaultTestDBConfig()
		assert.Equal(t, TestDBConfig{
			Host: "localhost", Port: "55432", User: "hireme", Password: "hireme", DBName: "hireme",
		}, cfg)
	})

	t.Run("respects TEST_DB_* overrides", func(t *testing.T) {
		t.Setenv("TEST_DB_HOST", "postgres")
		t.Setenv("TEST_DB_PORT", "5432")
		cfg := DefaultTestDBConfig()
		assert.Equal(t, "postgres", cfg.Host)
		assert.Equal(t, "5432", cfg.Port)
	})
}

func TestTestDBConfig_DSN(t *testing.T) {
	t.Setenv("DB_SSL_MODE", "")
	cfg := TestDBConfig{Host: "db", Port: "5432", User: "u", Password: "p@ss", DBName: "hireme"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/hireme?sslmode=disable", cfg.DSN())
}

func TestEnvBool(t *testing.T) {
	for _, v := range []string{"1", "true", "YES", "y"} {
		t.Setenv("HIREME_TEST_FLAG", v)
		assert.True(t, envBool("HIREME_TEST_FLAG"), v)
	}
	t.Setenv("HIREME_TEST_FLAG", "no")
	assert.False(t, envBool("HIREME_TEST_FLAG"))
}

func TestCatalogEntryBuilder(t *testing.T) {
	e := NewCatalogEntry().
		WithID("j1").
		WithExperience(3, 6).
		WithSkills("Go", "SQL").
		WithCountry("USA").
		Build()

	assert.Equal(t, "j1", e.ID)
	assert.Equal(t, 3, e.ExperienceMin)
	assert.Equal(t, 6, e.ExperienceMax)
	assert.Equal(t, []string{"Go", "SQL"}, e.SkillsRequired)
	assert.Equal(t, "USA", *e.Country)
	assert.NoError(t, e.Validate())
}
