package materiality

import (
	"strings"

	"github.com/verdane/esgpulse/internal/contracts"
)

// FilterDimensions restricts a summary to the dimensions named by the active
// filter set. Matching is case-insensitive on the dimension key only;
// individual disclosures are never filtered here. The "all" tag passes the
// summary through unchanged.
func FilterDimensions(summary contracts.DimensionSummary, fs contracts.FilterState) contracts.DimensionSummary {
	if fs.AllSelected() {
		return summary
	}

	var out contracts.DimensionSummary
	for _, block := range summary {
		if fs.Has(strings.ToLower(block.Dimension)) {
			out = append(out, block)
		}
	}
	return out
}

// ToggleFilter flips one dimension tag and returns the resulting state,
// enforcing the exclusivity of "all":
//   - selecting "all" clears every other tag
//   - selecting a dimension while "all" is active removes "all"
//   - deselecting the last dimension reverts to "all"
//
// The input state is never mutated.
func ToggleFilter(current contracts.FilterState, tag string) contracts.FilterState {
	tag = strings.ToLower(strings.TrimSpace(tag))
	next := contracts.FilterState{Stakeholder: current.Stakeholder}

	if tag == contracts.FilterAll {
		next.Dimensions = []string{contracts.FilterAll}
		return next
	}

	if current.Has(tag) {
		// Deselect, dropping "all" remnants along the way
		for _, t := range current.Dimensions {
			if t != tag && t != contracts.FilterAll {
				next.Dimensions = append(next.Dimensions, t)
			}
		}
		if len(next.Dimensions) == 0 {
			next.Dimensions = []string{contracts.FilterAll}
		}
		return next
	}

	// Select: "all" gives way to the specific tag
	for _, t := range current.Dimensions {
		if t != contracts.FilterAll {
			next.Dimensions = append(next.Dimensions, t)
		}
	}
	next.Dimensions = append(next.Dimensions, tag)
	return next
}
