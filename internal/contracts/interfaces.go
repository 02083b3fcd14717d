package contracts

import "context"

// SourceFetcher retrieves the raw survey payloads from the survey platform.
// Fetches are independent of each other and joined by the assessment loader;
// the scoring pipeline itself never performs I/O.
type SourceFetcher interface {
	GetSurvey(ctx context.Context, surveyID string) (*Survey, error)
	GetSurveyAggregate(ctx context.Context, surveyID string) (*SurveyAggregateResult, error)
	GetImpactMateriality(ctx context.Context, surveyID string) (*ImpactMaterialityResult, error)
	GetDisclosures(ctx context.Context, surveyID string) ([]Disclosure, error)
	GetStakeholderRelationship(ctx context.Context, surveyID string) (*StakeholderRelationship, error)
}

// ReferenceStore persists survey metadata and disclosure reference records.
// Computed scores are deliberately outside its scope; they are recomputed
// from source data on every view.
type ReferenceStore interface {
	SaveSurvey(ctx context.Context, survey *Survey) error
	GetSurvey(ctx context.Context, surveyID string) (*Survey, error)
	SaveDisclosures(ctx context.Context, disclosures []Disclosure) error
	ListDisclosures(ctx context.Context, dimension string) ([]Disclosure, error)
}
