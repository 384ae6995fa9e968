package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePlayingHandicap_NoSlope(t *testing.T) {
	tests := []struct {
		name  string
		exact float64
		want  int
	}{
		{"whole number passes through", 9.0, 9},
		{"rounds down below half", 7.4, 7},
		{"rounds up above half", 7.6, 8},
		{"half rounds away from zero", 7.5, 8},
		{"negative half rounds away from zero", -7.5, -8},
		{"scratch", 0.0, 0},
		{"plus handicap", -2.3, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputePlayingHandicap(tt.exact, NeutralSlope, false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputePlayingHandicap_WithSlope(t *testing.T) {
	tests := []struct {
		name  string
		exact float64
		slope int
		want  int
	}{
		{"neutral slope is identity", 10.0, 113, 10},
		{"hard course grants more strokes", 10.0, 140, 12}, // 10*140/113 = 12.39
		{"easy course grants fewer strokes", 10.0, 90, 8},  // 10*90/113 = 7.96
		{"max slope", 10.0, 155, 14},                       // 13.72
		{"min slope", 10.0, 55, 5},                         // 4.87
		{"negative handicap scales too", -4.0, 140, -5},    // -4.96
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputePlayingHandicap(tt.exact, tt.slope, true)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputePlayingHandicap_SlopeOutOfRange(t *testing.T) {
	_, err := ComputePlayingHandicap(10.0, 54, true)
	assert.ErrorIs(t, err, ErrSlopeOutOfRange)

	_, err = ComputePlayingHandicap(10.0, 156, true)
	assert.ErrorIs(t, err, ErrSlopeOutOfRange)

	// With slope play off, the slope argument is ignored entirely — even an
	// invalid one must not produce an error.
	got, err := ComputePlayingHandicap(10.0, 0, false)
	assert.NoError(t, err)
	assert.Equal(t, 10, got)
}

func TestComputePlayingHandicap_Deterministic(t *testing.T) {
	first, err := ComputePlayingHandicap(11.3, 127, true)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		again, err := ComputePlayingHandicap(11.3, 127, true)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}
