package totals

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute_EmptyLines(t *testing.T) {
	got := Compute(nil, 18, 5)
	assert.Equal(t, Totals{}, got)

	got = Compute([]Line{}, 0, 0)
	assert.Zero(t, got.Subtotal)
	assert.Zero(t, got.Total)
	assert.Zero(t, got.RoundOff)
}

func TestCompute_SingleLineNoTaxNoDiscount(t *testing.T) {
	got := Compute([]Line{{Quantity: 3, Price: 10}}, 0, 0)

	assert.InDelta(t, 30, got.Subtotal, 1e-9)
	assert.InDelta(t, 30, got.TaxableAmount, 1e-9)
	assert.Zero(t, got.TaxAmount)
	assert.InDelta(t, 30, got.Total, 1e-9)
	assert.Zero(t, got.RoundOff)
}

func TestCompute_LineThenInvoiceLevelStacking(t *testing.T) {
	// gross=100 -> line discount 10 -> taxable 90 -> line tax 9 -> line total 99
	// invoice tax 5% on 99 -> exact 103.95 -> total 104, round-off +0.05
	got := Compute([]Line{{Quantity: 1, Price: 100, Discount: 10, TaxRate: 10}}, 5, 0)

	assert.InDelta(t, 99, got.Subtotal, 1e-9)
	assert.Zero(t, got.DiscountAmount)
	assert.InDelta(t, 99, got.TaxableAmount, 1e-9)
	assert.InDelta(t, 4.95, got.TaxAmount, 1e-9)
	assert.InDelta(t, 104, got.Total, 1e-9)
	assert.InDelta(t, 0.05, got.RoundOff, 1e-9)
}

func TestCompute_InvoiceDiscountBeforeTax(t *testing.T) {
	// subtotal 200 -> 10% discount -> taxable 180 -> 18% tax 32.40 -> exact 212.40
	got := Compute([]Line{{Quantity: 2, Price: 100}}, 18, 10)

	assert.InDelta(t, 200, got.Subtotal, 1e-9)
	assert.InDelta(t, 20, got.DiscountAmount, 1e-9)
	assert.InDelta(t, 180, got.TaxableAmount, 1e-9)
	assert.InDelta(t, 32.40, got.TaxAmount, 1e-9)
	assert.InDelta(t, 212, got.Total, 1e-9)
	assert.InDelta(t, -0.40, got.RoundOff, 1e-9)
}

func TestCompute_BlankFieldsContributeNothing(t *testing.T) {
	lines := []Line{
		{Quantity: 1, Price: 50},
		{}, // row the user has not filled in yet
		{Quantity: 2},
	}
	got := Compute(lines, 0, 0)
	assert.InDelta(t, 50, got.Subtotal, 1e-9)
}

func TestCompute_OutOfRangePercentagesAppliedLiterally(t *testing.T) {
	got := Compute([]Line{{Quantity: 1, Price: 100}}, 0, 150)
	assert.InDelta(t, -50, got.TaxableAmount, 1e-9)

	got = Compute([]Line{{Quantity: 1, Price: 100, Discount: -10}}, 0, 0)
	assert.InDelta(t, 110, got.Subtotal, 1e-9)
}

func TestCompute_RoundOffProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 5000; i++ {
		n := rng.Intn(8) + 1
		lines := make([]Line, n)
		for j := range lines {
			lines[j] = Line{
				Quantity: float64(rng.Intn(50)) + rng.Float64(),
				Price:    rng.Float64() * 1000,
				Discount: rng.Float64() * 100,
				TaxRate:  rng.Float64() * 28,
			}
		}
		taxRate := rng.Float64() * 28
		discount := rng.Float64() * 100

		got := Compute(lines, taxRate, discount)

		exact := got.TaxableAmount + got.TaxAmount
		assert.InDelta(t, got.Total-exact, got.RoundOff, 1e-9)
		assert.LessOrEqual(t, math.Abs(got.RoundOff), 0.5)
		assert.Equal(t, got.Total, math.Trunc(got.Total), "total must be a whole unit")
	}
}

func TestCompute_Deterministic(t *testing.T) {
	lines := []Line{
		{Quantity: 3, Price: 12.5, Discount: 5, TaxRate: 18},
		{Quantity: 1, Price: 999.99, TaxRate: 12},
	}
	a := Compute(lines, 18, 2.5)
	b := Compute(lines, 18, 2.5)
	assert.Equal(t, a, b)
}
