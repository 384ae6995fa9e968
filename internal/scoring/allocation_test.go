package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nineHoles builds a standard 9-hole set where hole N has stroke index N.
// Par pattern is a typical par-36 nine.
func nineHoles() []Hole {
	pars := []int{4, 5, 3, 4, 4, 5, 3, 4, 4}
	holes := make([]Hole, 9)
	for i := range holes {
		holes[i] = Hole{Number: i + 1, Par: pars[i], StrokeIndex: i + 1}
	}
	return holes
}

// shuffledIndexHoles builds a 9-hole set where stroke index does NOT follow
// hole number, to catch code that confuses the two.
func shuffledIndexHoles() []Hole {
	indexes := []int{5, 1, 9, 3, 7, 2, 8, 4, 6}
	holes := make([]Hole, 9)
	for i := range holes {
		holes[i] = Hole{Number: i + 1, Par: 4, StrokeIndex: indexes[i]}
	}
	return holes
}

func TestAllocateStrokes_Conservation(t *testing.T) {
	// The allocation must always hand out exactly the playing handicap, for
	// even splits, remainders, zero, and negative handicaps alike.
	holes := shuffledIndexHoles()
	for ph := -25; ph <= 30; ph++ {
		alloc, err := AllocateStrokes(ph, holes)
		require.NoError(t, err)
		sum := 0
		for _, s := range alloc {
			sum += s
		}
		assert.Equal(t, ph, sum, "playing handicap %d not conserved", ph)
	}
}

func TestAllocateStrokes_RemainderGoesToHardestHoles(t *testing.T) {
	// Playing handicap 11 over 9 holes: every hole gets 1, and the two
	// hardest (stroke index 1 and 2) get a second stroke.
	alloc, err := AllocateStrokes(11, nineHoles())
	require.NoError(t, err)

	for number, strokes := range alloc {
		assert.GreaterOrEqual(t, strokes, 1, "hole %d", number)
	}
	assert.Equal(t, 2, alloc[1], "stroke index 1 gets the first extra stroke")
	assert.Equal(t, 2, alloc[2], "stroke index 2 gets the second extra stroke")
	assert.Equal(t, 1, alloc[3])
}

func TestAllocateStrokes_ShuffledIndexFollowsIndexNotNumber(t *testing.T) {
	// With shuffled indexes, hole 2 carries stroke index 1 — it must get the
	// single extra stroke of a playing handicap of 10, not hole 1.
	alloc, err := AllocateStrokes(10, shuffledIndexHoles())
	require.NoError(t, err)
	assert.Equal(t, 2, alloc[2], "hole 2 has stroke index 1")
	assert.Equal(t, 1, alloc[1], "hole 1 has stroke index 5")
}

func TestAllocateStrokes_NegativeTakesFromEasiestHoles(t *testing.T) {
	// A plus player (playing handicap -3 over 9 holes) gives a stroke back on
	// the three EASIEST holes: stroke indexes 9, 8 and 7.
	alloc, err := AllocateStrokes(-3, nineHoles())
	require.NoError(t, err)

	assert.Equal(t, -1, alloc[9])
	assert.Equal(t, -1, alloc[8])
	assert.Equal(t, -1, alloc[7])
	assert.Equal(t, 0, alloc[1], "hardest hole is the last to give a stroke back")
	assert.Equal(t, 0, alloc[6])
}

func TestAllocateStrokes_LargeHandicap(t *testing.T) {
	// Playing handicap 20 over 9 holes: everyone gets 2, stroke indexes 1 and
	// 2 get a third.
	alloc, err := AllocateStrokes(20, nineHoles())
	require.NoError(t, err)
	assert.Equal(t, 3, alloc[1])
	assert.Equal(t, 3, alloc[2])
	assert.Equal(t, 2, alloc[9])
}

func TestValidateHoleSet_Errors(t *testing.T) {
	tests := []struct {
		name  string
		holes []Hole
		want  error
	}{
		{"empty set", nil, ErrInvalidHoleSet},
		{
			"duplicate stroke index",
			[]Hole{{Number: 1, Par: 4, StrokeIndex: 1}, {Number: 2, Par: 4, StrokeIndex: 1}},
			ErrInvalidHoleSet,
		},
		{
			"stroke index out of range",
			[]Hole{{Number: 1, Par: 4, StrokeIndex: 1}, {Number: 2, Par: 4, StrokeIndex: 3}},
			ErrInvalidHoleSet,
		},
		{
			"duplicate hole number",
			[]Hole{{Number: 1, Par: 4, StrokeIndex: 1}, {Number: 1, Par: 4, StrokeIndex: 2}},
			ErrInvalidHoleSet,
		},
		{
			"par below 3",
			[]Hole{{Number: 1, Par: 2, StrokeIndex: 1}},
			ErrInvalidPar,
		},
		{
			"par above 5",
			[]Hole{{Number: 1, Par: 6, StrokeIndex: 1}},
			ErrInvalidPar,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHoleSet(tt.holes)
			assert.ErrorIs(t, err, tt.want)

			// A broken hole set must also refuse allocation.
			_, err = AllocateStrokes(5, tt.holes)
			assert.Error(t, err)
		})
	}
}

func TestStrokesReceived_HoleNotInSet(t *testing.T) {
	_, err := StrokesReceived(10, 14, nineHoles())
	assert.ErrorIs(t, err, ErrHoleNotInSet)
}
