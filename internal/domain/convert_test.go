package domain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momentum/internal/domain"
)

func TestConvertWeight(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		from, to domain.Unit
		want     float64
	}{
		{"kg to lbs", 100.0, domain.Kilograms, domain.Pounds, 220.46226218},
		{"lbs to kg", 220.46226218, domain.Pounds, domain.Kilograms, 100.0},
		{"same unit kg", 80.0, domain.Kilograms, domain.Kilograms, 80.0},
		{"same unit lbs", 180.0, domain.Pounds, domain.Pounds, 180.0},
		{"unknown units", 50.0, "st", domain.Kilograms, 50.0},
		{"zero value", 0, domain.Kilograms, domain.Pounds, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.ConvertWeight(tc.value, tc.from, tc.to)
			assert.InDelta(t, tc.want, got, 0.001, "ConvertWeight(%v, %q, %q)", tc.value, tc.from, tc.to)
		})
	}
}

func TestToKilograms(t *testing.T) {
	assert.InDelta(t, 72.5747792, domain.ToKilograms(160, domain.Pounds), 1e-9)
	assert.Equal(t, 80.5, domain.ToKilograms(80.5, domain.Kilograms))
}

func TestParseUnit(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.Unit
		wantErr bool
	}{
		{"kg", domain.Kilograms, false},
		{"KG", domain.Kilograms, false},
		{"lbs", domain.Pounds, false},
		{" lb ", domain.Pounds, false},
		{"stone", "", true},
		{"", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := domain.ParseUnit(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestValidWeight(t *testing.T) {
	for _, w := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		assert.False(t, domain.ValidWeight(w), "ValidWeight(%v)", w)
	}
	assert.True(t, domain.ValidWeight(0.1))
}
