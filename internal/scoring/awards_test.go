package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		net, par int
		want     ScoreClass
	}{
		{2, 4, ClassEagle},
		{1, 4, ClassEagle}, // albatross still buckets as eagle
		{3, 4, ClassBirdie},
		{4, 4, ClassPar},
		{5, 4, ClassBogey},
		{6, 4, ClassDoubleOrWorse},
		{9, 4, ClassDoubleOrWorse},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.net, tt.par), "net %d on par %d", tt.net, tt.par)
	}
}

func awardsFixture() ([]Standing, []Entry, []Hole) {
	holes := nineHoles() // pars 4,5,3,4,4,5,3,4,4

	players := []Standing{
		{PlayerID: "ana", Name: "Ana", TotalPoints: 20, PlayingHandicap: 8},
		{PlayerID: "beto", Name: "Beto", TotalPoints: 11, PlayingHandicap: 12},
	}

	entries := []Entry{
		// Ana: a strong card with an ace on the par 3 seventh.
		{PlayerID: "ana", HoleNumber: 1, GrossStrokes: 4, NetStrokes: 3, StablefordPoints: 3},
		{PlayerID: "ana", HoleNumber: 2, GrossStrokes: 5, NetStrokes: 4, StablefordPoints: 3},
		{PlayerID: "ana", HoleNumber: 3, GrossStrokes: 3, NetStrokes: 3, StablefordPoints: 2},
		{PlayerID: "ana", HoleNumber: 7, GrossStrokes: 1, NetStrokes: 1, StablefordPoints: 4},
		{PlayerID: "ana", HoleNumber: 8, GrossStrokes: 7, NetStrokes: 6, StablefordPoints: 0, NoPasoRojas: true},
		// Beto: struggles, one abandoned hole with a placeholder gross.
		{PlayerID: "beto", HoleNumber: 1, GrossStrokes: 6, NetStrokes: 5, StablefordPoints: 1},
		{PlayerID: "beto", HoleNumber: 2, GrossStrokes: 8, NetStrokes: 7, StablefordPoints: 0, NoPasoRojas: true},
		{PlayerID: "beto", HoleNumber: 3, GrossStrokes: 9, NetStrokes: 9, StablefordPoints: 0, Abandoned: true, NoPasoRojas: true},
		{PlayerID: "beto", HoleNumber: 7, GrossStrokes: 4, NetStrokes: 3, StablefordPoints: 2},
	}
	return players, entries, holes
}

func TestDeriveAwards_PlayerHighlights(t *testing.T) {
	players, entries, holes := awardsFixture()
	got := DeriveAwards(players, entries, holes)
	require.Len(t, got.Players, 2)

	ana := got.Players[0]
	assert.Equal(t, "ana", ana.PlayerID)
	require.NotNil(t, ana.BestHole)
	assert.Equal(t, 7, ana.BestHole.HoleNumber, "the ace is the best hole")
	assert.Equal(t, 4, ana.BestHole.StablefordPoints)
	require.NotNil(t, ana.WorstHole)
	assert.Equal(t, 8, ana.WorstHole.HoleNumber)
	assert.Equal(t, 1, ana.HolesInOne)
	assert.Equal(t, 1, ana.NoPasoRojas)
	// Ana's classification: hole 1 birdie, hole 2 birdie, hole 3 par,
	// hole 7 eagle-or-better (folds into birdies), hole 8 double+.
	assert.Equal(t, 3, ana.Birdies)
	assert.Equal(t, 1, ana.Pars)
	assert.Equal(t, 0, ana.Bogeys)
	assert.Equal(t, 1, ana.DoublesOrWorse)

	beto := got.Players[1]
	// The abandoned hole 3 is excluded from highlights and buckets, but its
	// no-paso-rojas forfeit still counts.
	require.NotNil(t, beto.WorstHole)
	assert.Equal(t, 2, beto.WorstHole.HoleNumber)
	assert.Equal(t, 2, beto.NoPasoRojas)
	assert.Equal(t, 0, beto.HolesInOne)
	assert.Equal(t, 1, beto.Bogeys)
	assert.Equal(t, 1, beto.DoublesOrWorse)
}

func TestDeriveAwards_BestHoleTieGoesToLowestHoleNumber(t *testing.T) {
	players := []Standing{{PlayerID: "p", Name: "P"}}
	entries := []Entry{
		{PlayerID: "p", HoleNumber: 5, NetStrokes: 4, GrossStrokes: 4, StablefordPoints: 3},
		{PlayerID: "p", HoleNumber: 2, NetStrokes: 4, GrossStrokes: 4, StablefordPoints: 3},
	}
	got := DeriveAwards(players, entries, nineHoles())
	require.NotNil(t, got.Players[0].BestHole)
	assert.Equal(t, 2, got.Players[0].BestHole.HoleNumber)
}

func TestDeriveAwards_HoleDifficulty(t *testing.T) {
	players, entries, holes := awardsFixture()
	got := DeriveAwards(players, entries, holes)

	// Means: hole 1 → (3+1)/2 = 2.0, hole 2 → (3+0)/2 = 1.5,
	// hole 3 → 2.0 (Beto's abandoned card excluded), hole 7 → 3.0,
	// hole 8 → 0.0.
	require.NotNil(t, got.HardestHole)
	assert.Equal(t, 8, got.HardestHole.HoleNumber)
	assert.InDelta(t, 0.0, got.HardestHole.MeanStableford, 1e-9)
	require.NotNil(t, got.EasiestHole)
	assert.Equal(t, 7, got.EasiestHole.HoleNumber)
	assert.InDelta(t, 3.0, got.EasiestHole.MeanStableford, 1e-9)
}

func TestDeriveAwards_Paliza(t *testing.T) {
	players, entries, holes := awardsFixture()
	got := DeriveAwards(players, entries, holes)

	require.NotNil(t, got.Paliza)
	assert.Equal(t, "ana", got.Paliza.WinnerID)
	assert.Equal(t, "beto", got.Paliza.LastPlaceID)
	assert.Equal(t, 9, got.Paliza.PointsMargin)
}

func TestDeriveAwards_PalizaSuppressed(t *testing.T) {
	holes := nineHoles()

	// One player: no field, no thrashing.
	solo := DeriveAwards([]Standing{{PlayerID: "a", TotalPoints: 20}}, nil, holes)
	assert.Nil(t, solo.Paliza)

	// Level field: nothing to brag about.
	level := DeriveAwards([]Standing{
		{PlayerID: "a", TotalPoints: 15},
		{PlayerID: "b", TotalPoints: 15},
	}, nil, holes)
	assert.Nil(t, level.Paliza)
}

func TestDeriveAwards_Degenerate(t *testing.T) {
	holes := nineHoles()

	empty := DeriveAwards(nil, nil, holes)
	assert.Empty(t, empty.Players)
	assert.Nil(t, empty.HardestHole)
	assert.Nil(t, empty.EasiestHole)
	assert.Nil(t, empty.Paliza)

	// All entries abandoned: tallies stay at zero, highlights stay nil.
	allAbandoned := DeriveAwards(
		[]Standing{{PlayerID: "a", Name: "A"}},
		[]Entry{{PlayerID: "a", HoleNumber: 1, GrossStrokes: 5, Abandoned: true}},
		holes,
	)
	require.Len(t, allAbandoned.Players, 1)
	assert.Nil(t, allAbandoned.Players[0].BestHole)
	assert.Nil(t, allAbandoned.HardestHole)
}

func TestDeriveAwards_Deterministic(t *testing.T) {
	players, entries, holes := awardsFixture()
	first := DeriveAwards(players, entries, holes)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, DeriveAwards(players, entries, holes))
	}
}
