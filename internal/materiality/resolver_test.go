package materiality

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/verdane/esgpulse/internal/contracts"
)

func singleSide(severity, likelihood float64) *contracts.StakeholderAggregate {
	return &contracts.StakeholderAggregate{
		AvgSeverity:   contracts.ScoreOf(severity),
		AvgLikelihood: contracts.ScoreOf(likelihood),
	}
}

func TestResolveScores_Single(t *testing.T) {
	agg := contracts.RawAggregate{
		Internal: singleSide(2, 3),
		External: singleSide(1.5, 2),
	}

	res := ResolveScores(agg, contracts.ProvenanceSingle)

	assert.Equal(t, 6.0, res.Internal.Value())
	assert.Equal(t, 3.0, res.External.Value())
	assert.Same(t, agg.Internal, res.InternalDetail)
	assert.Same(t, agg.External, res.ExternalDetail)
}

func TestResolveScores_Single_MissingSide(t *testing.T) {
	agg := contracts.RawAggregate{
		External: singleSide(2, 2),
	}

	res := ResolveScores(agg, contracts.ProvenanceSingle)

	assert.False(t, res.Internal.Valid())
	assert.Equal(t, 4.0, res.External.Value())
	assert.Nil(t, res.InternalDetail)
}

func TestResolveScores_Single_NegativeClampedToZero(t *testing.T) {
	agg := contracts.RawAggregate{
		Internal: singleSide(-2, 3),
	}

	res := ResolveScores(agg, contracts.ProvenanceSingle)

	// A negative rating is "no signal", not a sign-bearing value
	assert.True(t, res.Internal.Valid())
	assert.Equal(t, 0.0, res.Internal.Value())
}

func TestResolveScores_Single_PartialFields(t *testing.T) {
	agg := contracts.RawAggregate{
		Internal: &contracts.StakeholderAggregate{
			AvgSeverity: contracts.ScoreOf(3),
			// likelihood absent
		},
	}

	res := ResolveScores(agg, contracts.ProvenanceSingle)
	assert.False(t, res.Internal.Valid())
}

func TestResolveScores_Double_PassThrough(t *testing.T) {
	agg := contracts.RawAggregate{
		Internal: &contracts.StakeholderAggregate{
			DisclosureRating: contracts.ScoreOf(2.7),
			// severity/likelihood deliberately set to prove no arithmetic runs
			AvgSeverity:   contracts.ScoreOf(4),
			AvgLikelihood: contracts.ScoreOf(4),
		},
	}

	res := ResolveScores(agg, contracts.ProvenanceDouble)

	assert.Equal(t, 2.7, res.Internal.Value())
	assert.False(t, res.External.Valid())
}

func TestResolveScores_Double_MissingRating(t *testing.T) {
	agg := contracts.RawAggregate{
		Internal: &contracts.StakeholderAggregate{},
	}

	res := ResolveScores(agg, contracts.ProvenanceDouble)
	assert.False(t, res.Internal.Valid())
}

func TestResolveScores_BothSidesAbsent(t *testing.T) {
	res := ResolveScores(contracts.RawAggregate{}, contracts.ProvenanceSingle)

	assert.False(t, res.Internal.Valid())
	assert.False(t, res.External.Valid())
}
