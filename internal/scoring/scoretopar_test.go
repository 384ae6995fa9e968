package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeScoreToPar(t *testing.T) {
	tests := []struct {
		name            string
		totalGross      int
		coursePar       int
		playingHandicap int
		holesScored     int
		numHoles        int
		anyAbandoned    bool
		wantValue       int
		wantDisplay     string
	}{
		{
			// Course par 36, playing handicap 9, gross 45: played exactly to
			// personal par.
			name:       "even round",
			totalGross: 45, coursePar: 36, playingHandicap: 9,
			holesScored: 9, numHoles: 9,
			wantValue: 0, wantDisplay: "E",
		},
		{
			name:       "over personal par",
			totalGross: 50, coursePar: 36, playingHandicap: 9,
			holesScored: 9, numHoles: 9,
			wantValue: 5, wantDisplay: "+5",
		},
		{
			name:       "under personal par",
			totalGross: 43, coursePar: 36, playingHandicap: 9,
			holesScored: 9, numHoles: 9,
			wantValue: -2, wantDisplay: "-2",
		},
		{
			name:       "plus handicap raises the bar",
			totalGross: 34, coursePar: 36, playingHandicap: -2,
			holesScored: 9, numHoles: 9,
			wantValue: 0, wantDisplay: "E",
		},
		{
			// Any abandoned hole makes the total incomparable.
			name:       "abandoned hole returns sentinel",
			totalGross: 45, coursePar: 36, playingHandicap: 9,
			holesScored: 9, numHoles: 9, anyAbandoned: true,
			wantValue: 0, wantDisplay: "-",
		},
		{
			name:       "incomplete card returns sentinel",
			totalGross: 30, coursePar: 36, playingHandicap: 9,
			holesScored: 6, numHoles: 9,
			wantValue: 0, wantDisplay: "-",
		},
		{
			name:       "zero gross returns sentinel",
			totalGross: 0, coursePar: 36, playingHandicap: 9,
			holesScored: 9, numHoles: 9,
			wantValue: 0, wantDisplay: "-",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeScoreToPar(tt.totalGross, tt.coursePar, tt.playingHandicap, tt.holesScored, tt.numHoles, tt.anyAbandoned)
			assert.Equal(t, tt.wantValue, got.Value)
			assert.Equal(t, tt.wantDisplay, got.Display)
		})
	}
}
