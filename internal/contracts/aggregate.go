package contracts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// StakeholderAggregate holds the raw per-stakeholder ratings for one
// disclosure. Single-materiality surveys fill the severity/likelihood pair;
// double-materiality surveys fill the impact/financial fields and the
// precomputed disclosure rating. Absent fields decode as Missing.
type StakeholderAggregate struct {
	// Single materiality
	AvgSeverity   Score `json:"avg_severity"`
	AvgLikelihood Score `json:"avg_likelihood"`

	// Double materiality
	ImpactSeverity            Score `json:"impact_severity"`
	ImpactLikelihood          Score `json:"impact_likelihood"`
	ImpactMateriality         Score `json:"impact_materiality"`
	FinancialMateriality      Score `json:"financial_materiality"`
	FinalImpactMateriality    Score `json:"final_impact_materiality"`
	FinalFinancialMateriality Score `json:"final_financial_materiality"`
	DisclosureRating          Score `json:"disclosure_rating"`
	DisclosureRatingPercent   Score `json:"disclosure_rating_percent"`

	Count int `json:"count"`
}

// RawAggregate pairs the two stakeholder sides for one disclosure. Either
// side may be absent; both absent means "no data" for the disclosure. The
// overall double-materiality value is produced upstream and passed through
// untouched.
type RawAggregate struct {
	Internal *StakeholderAggregate `json:"internal,omitempty"`
	External *StakeholderAggregate `json:"external,omitempty"`
	Overall  Score                 `json:"overall_double_materiality"`
}

// IsEmpty reports whether neither stakeholder side carries data
func (a RawAggregate) IsEmpty() bool {
	return a.Internal == nil && a.External == nil
}

// rawAggregateAlias avoids recursing into UnmarshalJSON
type rawAggregateAlias struct {
	Internal json.RawMessage `json:"internal"`
	External json.RawMessage `json:"external"`
	Overall  Score           `json:"overall_double_materiality"`
}

// UnmarshalJSON decodes a raw aggregate, treating the "NA" placeholder (and
// null) on either side as an absent side
func (a *RawAggregate) UnmarshalJSON(data []byte) error {
	var alias rawAggregateAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return fmt.Errorf("decode raw aggregate: %w", err)
	}

	internal, err := decodeSide(alias.Internal)
	if err != nil {
		return fmt.Errorf("decode internal side: %w", err)
	}
	external, err := decodeSide(alias.External)
	if err != nil {
		return fmt.Errorf("decode external side: %w", err)
	}

	a.Internal = internal
	a.External = external
	a.Overall = alias.Overall
	return nil
}

// decodeSide interprets one stakeholder side: object, "NA", "-", or null
func decodeSide(raw json.RawMessage) (*StakeholderAggregate, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		// Placeholder string such as "NA"; any string means no data
		return nil, nil
	}

	var side StakeholderAggregate
	if err := json.Unmarshal(raw, &side); err != nil {
		return nil, err
	}
	return &side, nil
}

// DisclosureAggregate is one disclosure id with its raw aggregate
type DisclosureAggregate struct {
	ID        string       `json:"disclosure_id"`
	Aggregate RawAggregate `json:"aggregate"`
}

// DimensionBlock groups the disclosures of one dimension, in source order
type DimensionBlock struct {
	Dimension string                `json:"dimension"`
	Items     []DisclosureAggregate `json:"items"`
}

// DimensionSummary is the dimension → disclosure → aggregate mapping of one
// source payload. Upstream sends it as a JSON object; it is decoded through
// the token stream so that key order survives, because reconciliation order
// is a documented contract.
type DimensionSummary []DimensionBlock

// UnmarshalJSON decodes the nested summary object preserving key order
func (s *DimensionSummary) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode dimension summary: %w", err)
	}
	if tok == nil {
		*s = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("dimension summary: expected object, got %v", tok)
	}

	var out DimensionSummary
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("dimension summary key: %w", err)
		}
		dimension := keyTok.(string)

		block, err := decodeDimensionBlock(dec, dimension)
		if err != nil {
			return err
		}
		out = append(out, block)
	}

	// Consume closing '}'
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("dimension summary close: %w", err)
	}

	*s = out
	return nil
}

// decodeDimensionBlock reads one dimension's disclosure object in key order
func decodeDimensionBlock(dec *json.Decoder, dimension string) (DimensionBlock, error) {
	block := DimensionBlock{Dimension: dimension}

	tok, err := dec.Token()
	if err != nil {
		return block, fmt.Errorf("dimension %q: %w", dimension, err)
	}
	if tok == nil {
		return block, nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return block, fmt.Errorf("dimension %q: expected object, got %v", dimension, tok)
	}

	for dec.More() {
		idTok, err := dec.Token()
		if err != nil {
			return block, fmt.Errorf("dimension %q disclosure id: %w", dimension, err)
		}
		id := idTok.(string)

		var agg RawAggregate
		if err := dec.Decode(&agg); err != nil {
			return block, fmt.Errorf("dimension %q disclosure %q: %w", dimension, id, err)
		}

		block.Items = append(block.Items, DisclosureAggregate{ID: id, Aggregate: agg})
	}

	if _, err := dec.Token(); err != nil {
		return block, fmt.Errorf("dimension %q close: %w", dimension, err)
	}

	return block, nil
}

// MarshalJSON re-emits the summary as the upstream object shape, keeping
// order, so cached snapshots round-trip
func (s DimensionSummary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, block := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(block.Dimension)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteByte('{')
		for j, item := range block.Items {
			if j > 0 {
				buf.WriteByte(',')
			}
			id, err := json.Marshal(item.ID)
			if err != nil {
				return nil, err
			}
			value, err := json.Marshal(item.Aggregate)
			if err != nil {
				return nil, err
			}
			buf.Write(id)
			buf.WriteByte(':')
			buf.Write(value)
		}
		buf.WriteByte('}')
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// HasData reports whether at least one dimension carries at least one real
// disclosure id. The upstream double-materiality endpoint emits the literal
// id "null" for surveys that never ran a double assessment.
func (s DimensionSummary) HasData() bool {
	for _, block := range s {
		for _, item := range block.Items {
			if item.ID != "" && item.ID != "null" {
				return true
			}
		}
	}
	return false
}
