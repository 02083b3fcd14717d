package contracts

import "strings"

// Dimension names as displayed. Storage is case-insensitive; these are the
// canonical casings.
const (
	DimensionEnvironmental = "Environmental"
	DimensionSocial        = "Social"
	DimensionGovernance    = "Governance"
)

// CanonicalDimension maps any casing of a dimension name to its display form.
// Unknown dimensions keep their text with the first letter capitalized.
func CanonicalDimension(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "environmental":
		return DimensionEnvironmental
	case "social":
		return DimensionSocial
	case "governance":
		return DimensionGovernance
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return trimmed
	}
	return strings.ToUpper(trimmed[:1]) + trimmed[1:]
}

// DisclosureType classifies a disclosure within the double-materiality model
type DisclosureType string

const (
	DisclosureImpact    DisclosureType = "IMPACT"
	DisclosureFinancial DisclosureType = "FINANCIAL"
)

// Disclosure is immutable reference data fetched once per survey
type Disclosure struct {
	ID        string         `json:"disclosure_id"`
	Name      string         `json:"name"`
	Dimension string         `json:"dimension"`
	Type      DisclosureType `json:"disclosure_type"`
}

// SurveyType distinguishes the two materiality models
type SurveyType string

const (
	SurveySingle SurveyType = "single"
	SurveyDouble SurveyType = "double"
)

// Survey is the metadata for one assessment survey
type Survey struct {
	ID   string     `json:"id"`
	Name string     `json:"name"`
	Type SurveyType `json:"survey_type"`
}

// StakeholderType identifies the respondent population
type StakeholderType string

const (
	StakeholderInternal StakeholderType = "internal"
	StakeholderExternal StakeholderType = "external"
)

// ParseStakeholderType normalizes a stakeholder filter value, defaulting to
// internal for anything unrecognized
func ParseStakeholderType(s string) StakeholderType {
	if strings.EqualFold(strings.TrimSpace(s), string(StakeholderExternal)) {
		return StakeholderExternal
	}
	return StakeholderInternal
}
