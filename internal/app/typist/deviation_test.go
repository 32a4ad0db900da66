package typist

import (
	"HumanTyper/internal/config"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeviationTableBands(t *testing.T) {
	table := NewDeviationTable(config.DefaultTiming())

	tests := []struct {
		name string
		draw float64
		r    rune
		want Deviation
	}{
		{"upper shift band", 0.029, 'A', ShiftMiss},
		{"upper corrected band", 0.031, 'A', CorrectedTypo},
		{"upper permanent band", 0.055, 'A', PermanentTypo},
		{"upper clean", 0.061, 'A', Clean},
		{"lower corrected band", 0.0, 'a', CorrectedTypo},
		{"lower permanent band", 0.025, 'a', PermanentTypo},
		{"lower clean", 0.031, 'a', Clean},
		{"accent band", 0.05, 'é', AccentDrop},
		{"accent clean", 0.071, 'é', Clean},
		{"upper accent", 0.09, 'É', AccentDrop},
		{"digit never deviates", 0.0, '7', Clean},
		{"punctuation never deviates", 0.0, '?', Clean},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Decide(tt.draw, tt.r))
		})
	}
}

func TestDeviationTableZeroRates(t *testing.T) {
	table := NewDeviationTable(config.Timing{})
	for _, r := range "Aaé7 " {
		assert.Equal(t, Clean, table.Decide(0, r))
	}
}

func TestDeviationString(t *testing.T) {
	assert.Equal(t, "shift-miss", ShiftMiss.String())
	assert.Equal(t, "accent-drop", AccentDrop.String())
	assert.Equal(t, "clean", Deviation(99).String())
}
