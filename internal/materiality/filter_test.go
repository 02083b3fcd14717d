package materiality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdane/esgpulse/internal/contracts"
)

func summaryOf(dimensions ...string) contracts.DimensionSummary {
	var s contracts.DimensionSummary
	for _, d := range dimensions {
		s = append(s, contracts.DimensionBlock{
			Dimension: d,
			Items:     []contracts.DisclosureAggregate{{ID: d + "-1"}},
		})
	}
	return s
}

func filterOf(tags ...string) contracts.FilterState {
	return contracts.FilterState{Dimensions: tags, Stakeholder: contracts.StakeholderInternal}
}

func TestFilterDimensions_AllPassesThrough(t *testing.T) {
	summary := summaryOf("Environmental", "Social", "Governance")

	got := FilterDimensions(summary, filterOf(contracts.FilterAll))
	assert.Equal(t, summary, got)
}

func TestFilterDimensions_CaseInsensitiveMatch(t *testing.T) {
	summary := summaryOf("ENVIRONMENTAL", "Social", "governance")

	got := FilterDimensions(summary, filterOf("environmental", "governance"))

	require.Len(t, got, 2)
	assert.Equal(t, "ENVIRONMENTAL", got[0].Dimension)
	assert.Equal(t, "governance", got[1].Dimension)
}

func TestFilterDimensions_NoMatch(t *testing.T) {
	summary := summaryOf("Environmental")

	got := FilterDimensions(summary, filterOf("social"))
	assert.Empty(t, got)
}

func TestFilterDimensions_Deterministic(t *testing.T) {
	summary := summaryOf("Social", "Environmental")
	fs := filterOf("environmental", "social")

	first := FilterDimensions(summary, fs)
	second := FilterDimensions(summary, fs)

	assert.Equal(t, first, second)
	// Source order is preserved, not filter order
	assert.Equal(t, "Social", first[0].Dimension)
}

func TestToggleFilter_SelectFromAll(t *testing.T) {
	got := ToggleFilter(filterOf(contracts.FilterAll), "social")
	assert.Equal(t, []string{"social"}, got.Dimensions)
}

func TestToggleFilter_DeselectLastRevertsToAll(t *testing.T) {
	got := ToggleFilter(filterOf("social"), "social")
	assert.Equal(t, []string{contracts.FilterAll}, got.Dimensions)
}

func TestToggleFilter_AddSecondTag(t *testing.T) {
	got := ToggleFilter(filterOf("social"), "governance")
	assert.Equal(t, []string{"social", "governance"}, got.Dimensions)
}

func TestToggleFilter_SelectAllClearsOthers(t *testing.T) {
	got := ToggleFilter(filterOf("social", "governance"), contracts.FilterAll)
	assert.Equal(t, []string{contracts.FilterAll}, got.Dimensions)
}

func TestToggleFilter_DeselectOneOfTwo(t *testing.T) {
	got := ToggleFilter(filterOf("social", "governance"), "social")
	assert.Equal(t, []string{"governance"}, got.Dimensions)
}

func TestToggleFilter_CaseInsensitiveTag(t *testing.T) {
	got := ToggleFilter(filterOf("social"), " Social ")
	assert.Equal(t, []string{contracts.FilterAll}, got.Dimensions)
}

func TestToggleFilter_DoesNotMutateInput(t *testing.T) {
	current := filterOf("social")
	_ = ToggleFilter(current, "governance")

	assert.Equal(t, []string{"social"}, current.Dimensions)
}

func TestToggleFilter_KeepsStakeholder(t *testing.T) {
	current := contracts.FilterState{
		Dimensions:  []string{"social"},
		Stakeholder: contracts.StakeholderExternal,
	}

	got := ToggleFilter(current, "governance")
	assert.Equal(t, contracts.StakeholderExternal, got.Stakeholder)
}
