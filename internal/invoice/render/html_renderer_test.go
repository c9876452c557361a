package render

import (
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/dhruvent/billing/internal/invoice/domain"
)

func testInput(t *testing.T, static bool) RenderInput {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	inv := domain.New(428, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), node.Generate)
	inv.BillTo = domain.Party{Name: "Acme Traders", Address: "12 Market Road", GSTIN: "33AAAAA0000A1Z5", Code: "33"}
	inv.Items[0].Apply(domain.FieldDescription, "Steel Rods")
	inv.Items[0].Apply(domain.FieldQuantity, "10")
	inv.Items[0].Apply(domain.FieldUnitPrice, "25.5")

	return RenderInput{
		Seller: SellerView{
			Name:  "Dhruv Enterprises",
			GSTIN: "33EMUPK6767C1ZL",
			Terms: "Subject to 'Dindigul' Jurisdiction",
		},
		State: domain.StateResponse{
			Invoice:       *inv,
			Totals:        inv.Totals(),
			AmountInWords: "Three Hundred One Only",
		},
		Static: static,
	}
}

func TestRenderInteractiveView(t *testing.T) {
	html, err := NewRenderer().RenderHTML(testInput(t, false))
	require.NoError(t, err)

	assert.Contains(t, html, `id="invoice"`)
	assert.Contains(t, html, "<input")
	assert.Contains(t, html, "<select")
	assert.Contains(t, html, "Acme Traders")
	assert.Contains(t, html, "Dhruv Enterprises")
	assert.Contains(t, html, "Three Hundred One Only")
}

func TestRenderStaticViewHasNoControls(t *testing.T) {
	html, err := NewRenderer().RenderHTML(testInput(t, true))
	require.NoError(t, err)

	assert.NotContains(t, html, "<input")
	assert.NotContains(t, html, "<select")
	assert.NotContains(t, html, "<button")
	assert.Contains(t, html, "Acme Traders")
	assert.Contains(t, html, "Steel Rods")
	assert.Contains(t, html, "255.00")
}

func TestRenderPadsItemTable(t *testing.T) {
	html, err := NewRenderer().RenderHTML(testInput(t, true))
	require.NoError(t, err)

	// One real row plus nine filler rows.
	assert.Equal(t, 9, strings.Count(html, "&nbsp;"))
}

func TestFillerRows(t *testing.T) {
	items := make([]domain.LineItem, 3)
	assert.Len(t, fillerRows(items), 7)

	items = make([]domain.LineItem, 12)
	assert.Empty(t, fillerRows(items))
}
