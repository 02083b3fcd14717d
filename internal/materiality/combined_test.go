package materiality

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/verdane/esgpulse/internal/contracts"
)

func TestCombineSingle_Weighted(t *testing.T) {
	// (10×2 + 30×4) / 40 = 3.5
	got := CombineSingle(
		contracts.ScoreOf(2),
		contracts.ScoreOf(4),
		contracts.RespondentCounts{Internal: 10, External: 30},
	)

	assert.Equal(t, 3.5, got.Value())
}

func TestCombineSingle_OnlyExternal(t *testing.T) {
	got := CombineSingle(
		contracts.MissingScore(),
		contracts.ScoreOf(3),
		contracts.RespondentCounts{Internal: 10, External: 30},
	)

	assert.Equal(t, 3.0, got.Value())
}

func TestCombineSingle_OnlyInternal(t *testing.T) {
	got := CombineSingle(
		contracts.ScoreOf(2.5),
		contracts.MissingScore(),
		contracts.RespondentCounts{Internal: 0, External: 0},
	)

	// A one-sided score needs no weighting, so zero counts are irrelevant
	assert.Equal(t, 2.5, got.Value())
}

func TestCombineSingle_NeitherSide(t *testing.T) {
	got := CombineSingle(
		contracts.MissingScore(),
		contracts.MissingScore(),
		contracts.RespondentCounts{Internal: 10, External: 30},
	)

	assert.False(t, got.Valid())
}

func TestCombineSingle_ZeroRespondents(t *testing.T) {
	got := CombineSingle(
		contracts.ScoreOf(2),
		contracts.ScoreOf(4),
		contracts.RespondentCounts{},
	)

	// Never NaN, never a panic
	assert.False(t, got.Valid())
}
