package render

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/invobook/invobook/internal/invoice/totals"
)

// 1x1 transparent PNG.
const tinyPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

func testInput(lineCount int) Input {
	lines := make([]LineView, 0, lineCount)
	items := make([]totals.Line, 0, lineCount)
	for i := 0; i < lineCount; i++ {
		l := totals.Line{Quantity: float64(i%5 + 1), Price: 99.5, TaxRate: 18}
		items = append(items, l)
		lines = append(lines, LineView{
			Name:     fmt.Sprintf("Item %d", i+1),
			Quantity: l.Quantity,
			Unit:     "PCS",
			Price:    l.Price,
			TaxRate:  l.TaxRate,
			Amount:   totals.LineAmount(l),
		})
	}

	return Input{
		Invoice: InvoiceView{
			Number:          "INV-0001",
			Date:            time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			CustomerName:    "Acme Traders",
			CustomerAddress: "12 Market Road, Industrial Estate, Pune, Maharashtra 411001",
			CustomerEmail:   "billing@acme.example",
			PlaceOfSupply:   "Maharashtra",
			Notes:           "Payment due within 15 days.",
			TaxRate:         9,
		},
		Business: BusinessView{
			Name:         "Sharma Electricals",
			AddressLine1: "4 MG Road",
			City:         "Pune",
			State:        "Maharashtra",
			Pin:          "411004",
			Phone:        "+91 98765 43210",
			Email:        "sales@sharma.example",
			TaxID:        "27AAAPL1234C1ZV",
		},
		Settings: SettingsView{CurrencySymbol: "₹", TaxLabel: "GST"},
		Totals:   totals.Compute(items, 9, 0),
		Lines:    lines,
	}
}

// Page objects are written uncompressed by the underlying engine, so the
// page count can be read straight off the bytes.
func pageCount(pdf []byte) int {
	return bytes.Count(pdf, []byte("/Type /Page")) - bytes.Count(pdf, []byte("/Type /Pages"))
}

func TestRender_SinglePage(t *testing.T) {
	r := NewRenderer(zap.NewNop())

	doc, err := r.Render(testInput(3))
	require.NoError(t, err)

	pdf := doc.Bytes()
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	assert.Equal(t, 1, pageCount(pdf))
}

func TestRender_ManyItemsPaginate(t *testing.T) {
	r := NewRenderer(zap.NewNop())

	doc, err := r.Render(testInput(80))
	require.NoError(t, err)

	// The table must spill over by breaking between rows, never inside one.
	assert.GreaterOrEqual(t, pageCount(doc.Bytes()), 2)
}

func TestRender_StageOrder(t *testing.T) {
	r := NewRenderer(zap.NewNop())

	var got []Stage
	_, err := r.RenderWithProgress(testInput(2), func(s Stage) {
		got = append(got, s)
	})
	require.NoError(t, err)

	assert.Equal(t, []Stage{
		StageStart, StageHeader, StageCustomer,
		StageItems, StageTotals, StageFooter, StageDone,
	}, got)
}

func TestRender_CorruptLogoIsNonFatal(t *testing.T) {
	r := NewRenderer(zap.NewNop())

	in := testInput(2)
	in.Settings.ShowLogo = true
	in.Business.Logo = "@@not-an-image@@"
	in.Business.Signature = "also garbage"

	doc, err := r.Render(in)
	require.NoError(t, err)
	assert.NotEmpty(t, doc.Bytes())
}

func TestRender_ValidLogoPlaced(t *testing.T) {
	r := NewRenderer(zap.NewNop())

	in := testInput(1)
	in.Settings.ShowLogo = true
	in.Business.Logo = tinyPNG
	in.Business.Signature = "data:image/png;base64," + tinyPNG

	doc, err := r.Render(in)
	require.NoError(t, err)
	assert.NotEmpty(t, doc.Bytes())
}

func TestDecodeImageBlob(t *testing.T) {
	_, ext, err := decodeImageBlob(tinyPNG)
	require.NoError(t, err)
	assert.Equal(t, "png", string(ext))

	_, _, err = decodeImageBlob("definitely not base64 \x00")
	assert.Error(t, err)

	_, _, err = decodeImageBlob("aGVsbG8gd29ybGQ=") // valid base64, not an image
	assert.Error(t, err)
}

func TestTotalsSummary_ShowsInvoiceDiscount(t *testing.T) {
	tt := totals.Compute([]totals.Line{{Quantity: 1, Price: 200}}, 10, 5)
	lines := totalsSummary("₹", tt)

	labels := make([]string, 0, len(lines))
	for _, l := range lines {
		labels = append(labels, l.label)
	}
	assert.Equal(t, []string{"Subtotal", "Discount", "Tax", "Round Off", "TOTAL"}, labels)

	// 200 less 5% discount is 190 taxable, 10% tax adds 19, total 209.
	assert.Equal(t, "Rs.200.00", lines[0].value)
	assert.Equal(t, "-Rs.10.00", lines[1].value)
	assert.Equal(t, "Rs.19.00", lines[2].value)
	assert.Equal(t, "Rs.209.00", lines[4].value)
	assert.True(t, lines[4].bold)
}

func TestTotalsSummary_NoDiscountLineWhenZero(t *testing.T) {
	lines := totalsSummary("₹", totals.Compute([]totals.Line{{Quantity: 1, Price: 100}}, 0, 0))
	for _, l := range lines {
		assert.NotEqual(t, "Discount", l.label)
	}
	assert.Len(t, lines, 4)
}

func TestFormatAmount_SymbolFallback(t *testing.T) {
	assert.Equal(t, "Rs.10.00", FormatAmount("₹", 10))
	assert.Equal(t, "$10.50", FormatAmount("$", 10.5))
	assert.Equal(t, "Rs.1.00", FormatAmount("", 1))
	assert.Equal(t, "Rs.1.00", FormatAmount("৳", 1)) // unmapped non-ASCII
	assert.Equal(t, "-Rs.0.40", FormatSigned("₹", -0.4))
	assert.Equal(t, "Rs.0.05", FormatSigned("₹", 0.05))
}
