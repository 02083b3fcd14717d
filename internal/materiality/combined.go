package materiality

import (
	"github.com/verdane/esgpulse/internal/contracts"
)

// CombineSingle computes the respondent-weighted combined score for a
// single-materiality row. When only one side is numeric that side's value
// is the combined score; the missing side contributes no mass. Zero total
// respondents yields "-", never a division error.
func CombineSingle(internal, external contracts.Score, counts contracts.RespondentCounts) contracts.Score {
	internalVal, okInt := internal.Float()
	externalVal, okExt := external.Float()

	switch {
	case okInt && okExt:
		total := counts.Total()
		if total <= 0 {
			return contracts.MissingScore()
		}
		weighted := (float64(counts.Internal)*internalVal + float64(counts.External)*externalVal) / float64(total)
		return contracts.ScoreOf(weighted)
	case okInt:
		return internal
	case okExt:
		return external
	default:
		return contracts.MissingScore()
	}
}
