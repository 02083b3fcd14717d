package esrs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdane/esgpulse/internal/contracts"
)

const catalogHTML = `
<html><body>
<table class="disclosure-catalog">
<thead><tr><th>ID</th><th>Name</th><th>Dimension</th><th>Type</th></tr></thead>
<tbody>
<tr><td>E1-1</td><td>Climate change mitigation</td><td>environmental</td><td>impact</td></tr>
<tr><td>S1-4</td><td> Working conditions </td><td>social</td><td>IMPACT</td></tr>
<tr><td></td><td>Row without id</td><td>social</td><td>IMPACT</td></tr>
<tr><td>G1-3</td><td>Anti-corruption</td><td>governance</td><td>FINANCIAL</td></tr>
<tr><td>broken</td></tr>
</tbody>
</table>
</body></html>`

func TestParseCatalog(t *testing.T) {
	disclosures, err := ParseCatalog(strings.NewReader(catalogHTML))

	require.NoError(t, err)
	require.Len(t, disclosures, 3)

	assert.Equal(t, "E1-1", disclosures[0].ID)
	assert.Equal(t, "Climate change mitigation", disclosures[0].Name)
	assert.Equal(t, "Environmental", disclosures[0].Dimension)
	assert.Equal(t, contracts.DisclosureImpact, disclosures[0].Type)

	// Cell whitespace is trimmed
	assert.Equal(t, "Working conditions", disclosures[1].Name)

	assert.Equal(t, contracts.DisclosureFinancial, disclosures[2].Type)
}

func TestParseCatalog_NoTable(t *testing.T) {
	disclosures, err := ParseCatalog(strings.NewReader("<html><body><p>maintenance</p></body></html>"))

	require.NoError(t, err)
	assert.Empty(t, disclosures)
}
