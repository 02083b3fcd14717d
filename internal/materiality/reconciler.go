package materiality

import (
	"github.com/verdane/esgpulse/internal/contracts"
)

// nullID is the placeholder the double-materiality endpoint emits for
// surveys that never ran a double assessment
const nullID = "null"

// Sources bundles the fully fetched, immutable inputs of one reconciliation
// run. Any summary may be empty; that is a valid state, not an error.
type Sources struct {
	SurveyType  contracts.SurveyType
	Double      contracts.DimensionSummary
	General     contracts.DimensionSummary
	Disclosures map[string]contracts.Disclosure
	Respondents contracts.RespondentCounts
}

// SourcesFromSnapshot extracts reconciler inputs from a joined snapshot
func SourcesFromSnapshot(snap *contracts.SurveySnapshot) Sources {
	return Sources{
		SurveyType:  snap.Survey.Type,
		Double:      snap.Materiality.MaterialitySummary,
		General:     snap.Aggregate.DimensionSummary,
		Disclosures: snap.DisclosureIndex(),
		Respondents: snap.Respondents(),
	}
}

// Reconcile merges the double-materiality and general aggregate sources into
// one ordered list of scored rows. Double-materiality rows come first, in
// source order, and claim their disclosure ids; general rows follow for ids
// not yet seen. The output order is a documented contract.
//
// A row with unusable fields degrades to "-" scores but is still included,
// so every known disclosure id appears at least once. The only exclusion is
// FINANCIAL-type disclosures under a single-materiality survey, which are
// meaningless without the double model.
func Reconcile(src Sources, fs contracts.FilterState) []contracts.ScoredRow {
	double := FilterDimensions(src.Double, fs)
	general := FilterDimensions(src.General, fs)

	seen := make(map[string]bool)
	rows := make([]contracts.ScoredRow, 0)

	if double.HasData() {
		for _, block := range double {
			for _, item := range block.Items {
				if item.ID == "" || item.ID == nullID {
					continue
				}
				rows = append(rows, src.buildRow(block.Dimension, item, contracts.ProvenanceDouble))
				seen[item.ID] = true
			}
		}
	}

	for _, block := range general {
		for _, item := range block.Items {
			if item.ID == "" {
				continue
			}
			// Double-materiality data takes precedence for ids in both sources
			if seen[item.ID] {
				continue
			}
			if src.SurveyType == contracts.SurveySingle {
				if ref, ok := src.Disclosures[item.ID]; ok && ref.Type == contracts.DisclosureFinancial {
					continue
				}
			}
			rows = append(rows, src.buildRow(block.Dimension, item, contracts.ProvenanceSingle))
			seen[item.ID] = true
		}
	}

	return rows
}

// buildRow resolves and scores one disclosure into its output row
func (src Sources) buildRow(dimension string, item contracts.DisclosureAggregate, source contracts.Provenance) contracts.ScoredRow {
	res := ResolveScores(item.Aggregate, source)

	row := contracts.ScoredRow{
		ID:             item.ID,
		Name:           item.ID,
		Dimension:      contracts.CanonicalDimension(dimension),
		Internal:       res.Internal,
		External:       res.External,
		Source:         source,
		InternalDetail: res.InternalDetail,
		ExternalDetail: res.ExternalDetail,
		CombinedDetail: contracts.CombinedDetail{
			InternalRespondents: src.Respondents.Internal,
			ExternalRespondents: src.Respondents.External,
		},
	}

	if ref, ok := src.Disclosures[item.ID]; ok && ref.Name != "" {
		row.Name = ref.Name
	}

	if source == contracts.ProvenanceDouble {
		// Pass the source-supplied overall value through, "-" if absent
		row.Combined = item.Aggregate.Overall
		row.CombinedDetail.Overall = item.Aggregate.Overall
	} else {
		row.Combined = CombineSingle(res.Internal, res.External, src.Respondents)
		row.CombinedDetail.Overall = row.Combined
	}

	return row
}
