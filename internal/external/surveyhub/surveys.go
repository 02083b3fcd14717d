package surveyhub

import (
	"context"
	"errors"
	"fmt"

	"github.com/verdane/esgpulse/internal/contracts"
)

// GetSurvey retrieves the survey metadata
func (c *Client) GetSurvey(ctx context.Context, surveyID string) (*contracts.Survey, error) {
	var survey contracts.Survey
	if err := c.getJSON(ctx, "/api/surveys/"+surveyID, nil, &survey); err != nil {
		return nil, fmt.Errorf("get survey %s: %w", surveyID, err)
	}
	return &survey, nil
}

// GetSurveyAggregate retrieves the general (single-materiality) aggregate
// summary. A survey without aggregate data yields an empty result, which is
// a valid input to the pipeline.
func (c *Client) GetSurveyAggregate(ctx context.Context, surveyID string) (*contracts.SurveyAggregateResult, error) {
	var result contracts.SurveyAggregateResult
	err := c.getJSON(ctx, "/api/surveys/"+surveyID+"/aggregate", nil, &result)
	if errors.Is(err, errNotFound) {
		return &contracts.SurveyAggregateResult{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get survey aggregate %s: %w", surveyID, err)
	}
	return &result, nil
}

// GetImpactMateriality retrieves the double-materiality summary. Surveys
// that never ran a double assessment return 404 upstream; that degrades to
// an empty summary here.
func (c *Client) GetImpactMateriality(ctx context.Context, surveyID string) (*contracts.ImpactMaterialityResult, error) {
	var result contracts.ImpactMaterialityResult
	err := c.getJSON(ctx, "/api/surveys/"+surveyID+"/impact-materiality", nil, &result)
	if errors.Is(err, errNotFound) {
		return &contracts.ImpactMaterialityResult{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get impact materiality %s: %w", surveyID, err)
	}
	return &result, nil
}

// disclosureListResponse is the wire shape of the disclosure list endpoint
type disclosureListResponse struct {
	Disclosures []contracts.Disclosure `json:"disclosures"`
}

// GetDisclosures retrieves the disclosure reference records for a survey
func (c *Client) GetDisclosures(ctx context.Context, surveyID string) ([]contracts.Disclosure, error) {
	var result disclosureListResponse
	if err := c.getJSON(ctx, "/api/surveys/"+surveyID+"/disclosures", nil, &result); err != nil {
		return nil, fmt.Errorf("get disclosures %s: %w", surveyID, err)
	}
	return result.Disclosures, nil
}

// GetStakeholderRelationship retrieves the response breakdown by
// relationship type. It feeds the response-rate chart only and is never
// scored.
func (c *Client) GetStakeholderRelationship(ctx context.Context, surveyID string) (*contracts.StakeholderRelationship, error) {
	var result contracts.StakeholderRelationship
	err := c.getJSON(ctx, "/api/surveys/"+surveyID+"/stakeholder-relationship", nil, &result)
	if errors.Is(err, errNotFound) {
		return &contracts.StakeholderRelationship{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get stakeholder relationship %s: %w", surveyID, err)
	}
	return &result, nil
}
