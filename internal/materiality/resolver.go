package materiality

import (
	"github.com/verdane/esgpulse/internal/contracts"
)

// Resolution is the per-disclosure output of score resolution: one
// normalized score per stakeholder side plus the raw aggregates behind them
type Resolution struct {
	Internal       contracts.Score
	External       contracts.Score
	InternalDetail *contracts.StakeholderAggregate
	ExternalDetail *contracts.StakeholderAggregate
}

// ResolveScores normalizes one disclosure's raw aggregates into per-side
// scores. Double-materiality rows pass the precomputed disclosure rating
// through untouched; single-materiality rows fall back to
// severity × likelihood. Pure, no I/O.
func ResolveScores(agg contracts.RawAggregate, source contracts.Provenance) Resolution {
	return Resolution{
		Internal:       resolveSide(agg.Internal, source),
		External:       resolveSide(agg.External, source),
		InternalDetail: agg.Internal,
		ExternalDetail: agg.External,
	}
}

// resolveSide scores a single stakeholder side. An absent side, or one with
// unusable fields, resolves to the "-" sentinel rather than an error.
func resolveSide(side *contracts.StakeholderAggregate, source contracts.Provenance) contracts.Score {
	if side == nil {
		return contracts.MissingScore()
	}

	if source == contracts.ProvenanceDouble {
		// The rating is computed upstream and treated as opaque here
		return side.DisclosureRating
	}

	// Single materiality: severity × likelihood, negatives clamped to zero
	severity, okSev := side.AvgSeverity.ClampNonNegative().Float()
	likelihood, okLik := side.AvgLikelihood.ClampNonNegative().Float()
	if !okSev || !okLik {
		return contracts.MissingScore()
	}

	return contracts.ScoreOf(severity * likelihood)
}
