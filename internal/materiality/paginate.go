package materiality

import (
	"math"
	"sort"

	"github.com/verdane/esgpulse/internal/contracts"
)

// DefaultPageSize is the table widget's page size
const DefaultPageSize = 10

// Page is one slice of the ranked table plus the figures the "X–Y of Z"
// caption needs. StartIndex/EndIndex are 1-based; both are 0 for an empty
// slice.
type Page struct {
	Rows       []contracts.ScoredRow `json:"rows"`
	TotalItems int                   `json:"total_items"`
	StartIndex int                   `json:"start_index"`
	EndIndex   int                   `json:"end_index"`
}

// Rank returns the rows sorted by combined score descending. Rows without a
// combined score sort below every numeric value, explicitly, not by string
// coercion. The sort is stable: ties keep their reconciliation order.
// The input slice is not modified.
func Rank(rows []contracts.ScoredRow) []contracts.ScoredRow {
	ranked := make([]contracts.ScoredRow, len(rows))
	copy(ranked, rows)

	sort.SliceStable(ranked, func(i, j int) bool {
		return sortValue(ranked[i].Combined) > sortValue(ranked[j].Combined)
	})

	return ranked
}

// sortValue maps a missing combined score to the lowest possible key
func sortValue(s contracts.Score) float64 {
	if v, ok := s.Float(); ok {
		return v
	}
	return math.Inf(-1)
}

// RankAndPaginate sorts, applies the optional top-N cut (0 = unbounded), and
// slices out the requested page. A page index past the end is allowed and
// yields an empty slice; clamping is the consumer's decision.
func RankAndPaginate(rows []contracts.ScoredRow, topN, page, pageSize int) Page {
	ranked := Rank(rows)

	if topN > 0 && topN < len(ranked) {
		ranked = ranked[:topN]
	}

	total := len(ranked)

	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 0 {
		page = 0
	}

	start := page * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	result := Page{
		Rows:       ranked[start:end],
		TotalItems: total,
	}

	if start < end {
		result.StartIndex = start + 1
		result.EndIndex = end
	}

	return result
}
