package data

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Sakshamyadav19/HireMe-Backend/internal/errors"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/testutil"
)

func TestSavedJobRepo(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		clock := NewFixedTimeProvider(testutil.TestTime())
		repo := NewSavedJobRepo(db, SavedJobRepoOptions{TimeProvider: clock})

		testutil.InsertCatalogEntry(t, db, testutil.NewCatalogEntry().WithID("j1").WithTitle("Backend").Build())
		testutil.InsertCatalogEntry(t, db, testutil.NewCatalogEntry().WithID("j2").WithTitle("Frontend").Build())

		require.NoError(t, repo.Add(ctx, "u1", "j1"))
		clock.AddTime(time.Minute)
		require.NoError(t, repo.Add(ctx, "u1", "j2"))
		require.NoError(t, repo.Add(ctx, "u1", "j1"), "saving twice is a no-op")

		saved, err := repo.List(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, saved, 2)
		assert.Equal(t, "j2", saved[0].Job.ID)
		assert.Equal(t, "Backend", saved[1].Job.Title)
		assert.True(t, saved[1].CreatedAt.Equal(testutil.TestTime()))

		err = repo.Add(ctx, "u1", "missing")
		assert.True(t, apperrors.IsForeignKey(err))

		removed, err := repo.Remove(ctx, "u1", "j1")
		require.NoError(t, err)
		assert.True(t, removed)
		removed, err = repo.Remove(ctx, "u1", "j1")
		require.NoError(t, err)
		assert.False(t, removed)

		other, err := repo.List(ctx, "u2")
		require.NoError(t, err)
		assert.Empty(t, other)
	})
}
