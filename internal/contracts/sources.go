package contracts

import "time"

// RespondentCounts are the per-survey total response counts per stakeholder
// type, constant across all disclosures of that survey
type RespondentCounts struct {
	Internal int `json:"internal"`
	External int `json:"external"`
}

// Total returns the combined respondent mass
func (c RespondentCounts) Total() int {
	return c.Internal + c.External
}

// SurveyAggregateResult is the general (single-materiality) aggregate payload
type SurveyAggregateResult struct {
	DimensionSummary DimensionSummary `json:"dimension_summary"`
	TotalRespondents RespondentCounts `json:"total_respondents"`
}

// ImpactMaterialityResult is the double-materiality summary payload
type ImpactMaterialityResult struct {
	MaterialitySummary DimensionSummary `json:"materiality_summary"`
	TotalRespondents   RespondentCounts `json:"total_respondents"`
}

// RelationshipCount is one stakeholder-relationship bucket of the response
// rate breakdown. This feeds the response-rate chart and is never scored.
type RelationshipCount struct {
	Relationship string `json:"relationship"`
	Invited      int    `json:"invited"`
	Responded    int    `json:"responded"`
}

// StakeholderRelationship is the response breakdown by relationship type
type StakeholderRelationship struct {
	Breakdown []RelationshipCount `json:"breakdown"`
}

// SurveySnapshot joins the four independently fetched source payloads for
// one survey selection. The pipeline runs only over a fully joined snapshot;
// any payload may be explicitly empty, which is a valid state, not an error.
type SurveySnapshot struct {
	Survey       Survey                  `json:"survey"`
	Aggregate    SurveyAggregateResult   `json:"aggregate"`
	Materiality  ImpactMaterialityResult `json:"materiality"`
	Disclosures  []Disclosure            `json:"disclosures"`
	Relationship StakeholderRelationship `json:"relationship"`
	FetchedAt    time.Time               `json:"fetched_at"`
}

// Respondents returns the survey's respondent counts, preferring the general
// aggregate payload and falling back to the double-materiality one
func (s *SurveySnapshot) Respondents() RespondentCounts {
	if s.Aggregate.TotalRespondents.Total() > 0 {
		return s.Aggregate.TotalRespondents
	}
	return s.Materiality.TotalRespondents
}

// DisclosureIndex returns the reference records keyed by disclosure id
func (s *SurveySnapshot) DisclosureIndex() map[string]Disclosure {
	index := make(map[string]Disclosure, len(s.Disclosures))
	for _, d := range s.Disclosures {
		index[d.ID] = d
	}
	return index
}
