package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePageDirection(t *testing.T) {
	tests := []struct {
		raw     string
		want    PageDirection
		wantErr bool
	}{
		{raw: "", want: PageNext},
		{raw: "next", want: PageNext},
		{raw: " PREV ", want: PagePrev},
		{raw: "backwards", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParsePageDirection(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "valid options")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClampPageLimit(t *testing.T) {
	assert.Equal(t, DefaultPageLimit, ClampPageLimit(0))
	assert.Equal(t, DefaultPageLimit, ClampPageLimit(-5))
	assert.Equal(t, 1, ClampPageLimit(1))
	assert.Equal(t, 20, ClampPageLimit(20))
	assert.Equal(t, MaxPageLimit, ClampPageLimit(MaxPageLimit+1))
}
