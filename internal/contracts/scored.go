package contracts

// Provenance records which source produced a scored row. Double-materiality
// data wins during reconciliation when both sources know a disclosure.
type Provenance string

const (
	ProvenanceSingle Provenance = "SINGLE"
	ProvenanceDouble Provenance = "DOUBLE"
)

// CombinedDetail records how a combined score was obtained
type CombinedDetail struct {
	InternalRespondents int   `json:"internal_respondents"`
	ExternalRespondents int   `json:"external_respondents"`
	Overall             Score `json:"overall"`
}

// ScoredRow is the pipeline's primary working unit: one disclosure with its
// resolved per-stakeholder and combined scores. Rows are recomputed on every
// selection or filter change and never persisted.
type ScoredRow struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Dimension string     `json:"dimension"`
	Internal  Score      `json:"internal_score"`
	External  Score      `json:"external_score"`
	Combined  Score      `json:"combined_score"`
	Source    Provenance `json:"source"`

	InternalDetail *StakeholderAggregate `json:"internal_detail,omitempty"`
	ExternalDetail *StakeholderAggregate `json:"external_detail,omitempty"`
	CombinedDetail CombinedDetail        `json:"combined_detail"`
}

// Detail returns the raw aggregate for the requested stakeholder side
func (r ScoredRow) Detail(st StakeholderType) *StakeholderAggregate {
	if st == StakeholderExternal {
		return r.ExternalDetail
	}
	return r.InternalDetail
}

// SideScore returns the resolved score for the requested stakeholder side
func (r ScoredRow) SideScore(st StakeholderType) Score {
	if st == StakeholderExternal {
		return r.External
	}
	return r.Internal
}

// CoordinatePoint is one chart point in the [0,4] materiality matrix domain.
// Out-of-domain values pass through unclamped; clamping is a concern of the
// textual severity bucket only.
type CoordinatePoint struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Tooltip string  `json:"tooltip"`
}

// FilterAll is the dimension filter tag that selects every dimension. It is
// mutually exclusive with the individual dimension tags.
const FilterAll = "all"

// FilterState is the explicit, immutable view state threaded through each
// pipeline call. Dimensions holds lower-cased active tags in toggle order.
type FilterState struct {
	Dimensions  []string        `json:"dimensions"`
	Stakeholder StakeholderType `json:"stakeholder"`
}

// DefaultFilterState selects all dimensions and the internal stakeholder view
func DefaultFilterState() FilterState {
	return FilterState{
		Dimensions:  []string{FilterAll},
		Stakeholder: StakeholderInternal,
	}
}

// Has reports whether a dimension tag is active
func (f FilterState) Has(tag string) bool {
	for _, t := range f.Dimensions {
		if t == tag {
			return true
		}
	}
	return false
}

// AllSelected reports whether the filter passes every dimension through
func (f FilterState) AllSelected() bool {
	return len(f.Dimensions) == 0 || f.Has(FilterAll)
}
