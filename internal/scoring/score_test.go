package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeScore_EndToEnd(t *testing.T) {
	// Par 4, stroke index 1, playing handicap 10 over 9 holes, gross 5:
	// 10/9 gives every hole 1 stroke and the single hardest hole one more,
	// so this hole receives 2 → net 3 → one under net par → 3 points.
	holes := nineHoles()
	got, err := ComputeScore(5, 10, holes[0], holes)
	require.NoError(t, err)
	assert.Equal(t, 2, got.StrokesReceived)
	assert.Equal(t, 3, got.NetStrokes)
	assert.Equal(t, 3, got.StablefordPoints)
}

func TestComputeScore_StablefordTable(t *testing.T) {
	// Scratch player (no strokes received) on a par 4 — the classic table.
	holes := nineHoles()
	par4 := holes[0]

	tests := []struct {
		name  string
		gross int
		want  int
	}{
		{"hole in one on a par 4", 1, 5},
		{"eagle", 2, 4},
		{"birdie", 3, 3},
		{"par", 4, 2},
		{"bogey", 5, 1},
		{"double bogey", 6, 0},
		{"worse than double stays at zero", 9, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeScore(tt.gross, 0, par4, holes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StablefordPoints)
			assert.Equal(t, tt.gross, got.NetStrokes, "scratch net equals gross")
		})
	}
}

func TestComputeScore_StablefordMonotonicity(t *testing.T) {
	// For a fixed hole and handicap, points never increase as gross strokes
	// increase, and never go below zero.
	holes := nineHoles()
	for _, ph := range []int{-3, 0, 7, 15} {
		prev := int(^uint(0) >> 1) // max int
		for gross := 1; gross <= 12; gross++ {
			got, err := ComputeScore(gross, ph, holes[3], holes)
			require.NoError(t, err)
			assert.LessOrEqual(t, got.StablefordPoints, prev, "ph=%d gross=%d", ph, gross)
			assert.GreaterOrEqual(t, got.StablefordPoints, 0)
			prev = got.StablefordPoints
		}
	}
}

func TestComputeScore_NegativeHandicap(t *testing.T) {
	// Playing handicap -2 over 9 holes: stroke indexes 8 and 9 give a stroke
	// back. Hole 9 (index 9, par 4): gross 4 → net 5 → bogey → 1 point.
	holes := nineHoles()
	got, err := ComputeScore(4, -2, holes[8], holes)
	require.NoError(t, err)
	assert.Equal(t, -1, got.StrokesReceived)
	assert.Equal(t, 5, got.NetStrokes)
	assert.Equal(t, 1, got.StablefordPoints)

	// Hole 1 (index 1) is untouched by a -2 handicap.
	got, err = ComputeScore(4, -2, holes[0], holes)
	require.NoError(t, err)
	assert.Equal(t, 0, got.StrokesReceived)
	assert.Equal(t, 2, got.StablefordPoints)
}

func TestComputeScore_InvalidInput(t *testing.T) {
	holes := nineHoles()

	_, err := ComputeScore(0, 10, holes[0], holes)
	assert.ErrorIs(t, err, ErrInvalidGross)

	_, err = ComputeScore(-2, 10, holes[0], holes)
	assert.ErrorIs(t, err, ErrInvalidGross)

	_, err = ComputeScore(5, 10, Hole{Number: 14, Par: 4, StrokeIndex: 3}, holes)
	assert.ErrorIs(t, err, ErrHoleNotInSet)
}

func TestComputeScore_Deterministic(t *testing.T) {
	holes := shuffledIndexHoles()
	first, err := ComputeScore(6, 13, holes[4], holes)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		again, err := ComputeScore(6, 13, holes[4], holes)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}
