package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCountry(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"USA", "USA"},
		{"usa", "USA"},
		{"US", "USA"},
		{"United States", "USA"},
		{"united states of america", "USA"},
		{"UK", "GBR"},
		{"United Kingdom", "GBR"},
		{"England", "GBR"},
		{"gb", "GBR"},
		{"Germany", "DEU"},
		{"DE", "DEU"},
		{"India", "IND"},
		{" Canada ", "CAN"},
		{"the Netherlands", "NLD"},
		{"Berlin, Germany", "DEU"},
		{"Toronto, ON, Canada", "CAN"},
		{"Remote", ""},
		{"Atlantis", ""},
		{"EU", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCountry(tt.in))
		})
	}
}

func TestNormalizeCountry_Idempotent(t *testing.T) {
	for _, in := range []string{"United States", "gb", "India", "Berlin, Germany"} {
		once := NormalizeCountry(in)
		assert.Equal(t, once, NormalizeCountry(once), in)
	}
}
