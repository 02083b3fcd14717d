package materiality

import (
	"fmt"

	"github.com/verdane/esgpulse/internal/contracts"
)

// Severity bucket labels for tooltip text, shared by both axes
const (
	BucketVeryLow  = "Very Low"
	BucketLow      = "Low"
	BucketModerate = "Moderate"
	BucketHigh     = "High"
	BucketVeryHigh = "Very High"
)

// noDataTooltip is the sentinel tooltip for an empty chart series
const noDataTooltip = "No data"

// SeverityBucket labels a score value. Buckets are half-open on the upper
// boundary: (prev, v], so exactly 1.5 is still "Low".
func SeverityBucket(v float64) string {
	switch {
	case v <= 0.5:
		return BucketVeryLow
	case v <= 1.5:
		return BucketLow
	case v <= 2.5:
		return BucketModerate
	case v <= 3.5:
		return BucketHigh
	default:
		return BucketVeryHigh
	}
}

// ProjectMatrix turns scored rows into 2-D chart points for the selected
// stakeholder view. Rows whose selected side has no numeric score are
// excluded. For double-materiality rows x is the financial axis and y the
// impact axis; for single-materiality rows x is severity and y likelihood.
// Values outside the [0,4] chart domain pass through unclamped.
//
// The result is never empty: an empty projection yields the single
// (0, 0, "No data") sentinel so chart consumers always have a series.
func ProjectMatrix(rows []contracts.ScoredRow, stakeholder contracts.StakeholderType) []contracts.CoordinatePoint {
	points := make([]contracts.CoordinatePoint, 0, len(rows))

	for _, row := range rows {
		if !row.SideScore(stakeholder).Valid() {
			continue
		}

		detail := row.Detail(stakeholder)
		if detail == nil {
			continue
		}

		var xScore, yScore contracts.Score
		if row.Source == contracts.ProvenanceDouble {
			xScore = detail.FinalFinancialMateriality
			yScore = detail.FinalImpactMateriality
		} else {
			xScore = detail.AvgSeverity
			yScore = detail.AvgLikelihood
		}

		x, okX := xScore.Float()
		y, okY := yScore.Float()
		if !okX || !okY {
			continue
		}

		points = append(points, contracts.CoordinatePoint{
			X:       x,
			Y:       y,
			Tooltip: pointTooltip(row, x, y),
		})
	}

	if len(points) == 0 {
		return []contracts.CoordinatePoint{{X: 0, Y: 0, Tooltip: noDataTooltip}}
	}

	return points
}

// pointTooltip concatenates disclosure id, dimension, and both bucketed
// axis values with two decimals
func pointTooltip(row contracts.ScoredRow, x, y float64) string {
	return fmt.Sprintf("%s | %s | %.2f (%s) / %.2f (%s)",
		row.ID, row.Dimension,
		x, SeverityBucket(x),
		y, SeverityBucket(y),
	)
}
