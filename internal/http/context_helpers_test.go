package httpx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/Sakshamyadav19/HireMe-Backend/internal/domain/auth"
)

func TestIdentityContext(t *testing.T) {
	ctx := context.Background()
	assert.Same(t, ctx, SetIdentityInContext(ctx, nil))
	assert.Empty(t, UserIDFromContext(ctx))

	_, ok := IdentityFromContext(ctx)
	assert.False(t, ok)

	ctx = SetIdentityInContext(ctx, &domainauth.Identity{UserID: "user-1"})
	id, ok := IdentityFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "user-1", id.UserID)
	assert.Equal(t, "user-1", UserIDFromContext(ctx))
}
