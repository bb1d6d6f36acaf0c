package calc

import (
	"testing"

	"github.com/facturio/facturio/internal/invoice/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotals(t *testing.T) {
	items, err := BuildItems([]domain.LineItemInput{
		{Description: "Design work", Quantity: "10", Rate: "100"},
		{Description: "Hosting", Quantity: "1", Rate: "250"},
	})
	require.NoError(t, err)

	rate, err := ParseTaxRate("20")
	require.NoError(t, err)

	totals := Compute(items, rate)
	assert.Equal(t, "1250", totals.Subtotal.String())
	assert.Equal(t, "250", totals.TaxAmount.String())
	assert.Equal(t, "1500", totals.Total.String())
}

func TestComputeZeroTaxRate(t *testing.T) {
	items, err := BuildItems([]domain.LineItemInput{
		{Description: "Consulting", Quantity: "3", Rate: "33.33"},
	})
	require.NoError(t, err)

	totals := Compute(items, decimal.Zero)
	assert.Equal(t, "99.99", totals.Subtotal.String())
	assert.True(t, totals.TaxAmount.IsZero())
	assert.Equal(t, "99.99", totals.Total.String())
}

func TestComputeIsIdempotent(t *testing.T) {
	items, err := BuildItems([]domain.LineItemInput{
		{Description: "Sprint", Quantity: "7", Rate: "142.857"},
	})
	require.NoError(t, err)

	rate := decimal.NewFromFloat(17.5)
	first := Compute(items, rate)
	second := Compute(first.Items, rate)

	assert.True(t, first.Subtotal.Equal(second.Subtotal))
	assert.True(t, first.TaxAmount.Equal(second.TaxAmount))
	assert.True(t, first.Total.Equal(second.Total))
}

func TestBuildItemsRejectsBadInput(t *testing.T) {
	cases := []struct {
		name   string
		inputs []domain.LineItemInput
	}{
		{"empty", nil},
		{"missing description", []domain.LineItemInput{{Quantity: "1", Rate: "10"}}},
		{"non numeric quantity", []domain.LineItemInput{{Description: "x", Quantity: "two", Rate: "10"}}},
		{"negative rate", []domain.LineItemInput{{Description: "x", Quantity: "1", Rate: "-5"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildItems(tc.inputs)
			assert.ErrorIs(t, err, domain.ErrInvalidItems)
		})
	}
}

func TestParseTaxRateBounds(t *testing.T) {
	_, err := ParseTaxRate("100")
	assert.NoError(t, err)

	_, err = ParseTaxRate("100.01")
	assert.ErrorIs(t, err, domain.ErrInvalidTaxRate)

	_, err = ParseTaxRate("-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTaxRate)

	_, err = ParseTaxRate("twenty")
	assert.ErrorIs(t, err, domain.ErrInvalidTaxRate)
}
