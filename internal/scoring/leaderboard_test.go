package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankPlayers_PointsDescending(t *testing.T) {
	ranked := RankPlayers([]Standing{
		{PlayerID: "a", TotalPoints: 12, PlayingHandicap: 10},
		{PlayerID: "b", TotalPoints: 18, PlayingHandicap: 14},
		{PlayerID: "c", TotalPoints: 15, PlayingHandicap: 6},
	})
	assert.Equal(t, []string{"b", "c", "a"}, ids(ranked))
}

func TestRankPlayers_TieBrokenByLowerHandicap(t *testing.T) {
	// Equal points: the lower playing handicap ranks higher, because the same
	// score off fewer strokes is the better round of golf.
	ranked := RankPlayers([]Standing{
		{PlayerID: "b", Name: "B", TotalPoints: 14, PlayingHandicap: 10},
		{PlayerID: "a", Name: "A", TotalPoints: 14, PlayingHandicap: 8},
	})
	assert.Equal(t, []string{"a", "b"}, ids(ranked))
}

func TestRankPlayers_FullTieKeepsInputOrder(t *testing.T) {
	// Identical points AND handicap: stable sort preserves the callers'
	// order, so repeated ranking of the same slice is deterministic.
	in := []Standing{
		{PlayerID: "x", TotalPoints: 10, PlayingHandicap: 9},
		{PlayerID: "y", TotalPoints: 10, PlayingHandicap: 9},
		{PlayerID: "z", TotalPoints: 10, PlayingHandicap: 9},
	}
	assert.Equal(t, []string{"x", "y", "z"}, ids(RankPlayers(in)))
}

func TestRankPlayers_DoesNotMutateInput(t *testing.T) {
	in := []Standing{
		{PlayerID: "low", TotalPoints: 1},
		{PlayerID: "high", TotalPoints: 20},
	}
	_ = RankPlayers(in)
	assert.Equal(t, "low", in[0].PlayerID, "caller's slice must stay untouched")
}

func TestRankPlayers_Degenerate(t *testing.T) {
	assert.Empty(t, RankPlayers(nil))
	assert.Empty(t, RankPlayers([]Standing{}))
}

func ids(ranked []Standing) []string {
	out := make([]string, len(ranked))
	for i, s := range ranked {
		out[i] = s.PlayerID
	}
	return out
}
