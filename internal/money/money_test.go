package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/emrekole/takip/internal/money"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestVATAmount(t *testing.T) {
	type testCase struct {
		name string
		base string
		rate string
		want string
	}

	tests := []testCase{
		{name: "StandardRate", base: "1000", rate: "20", want: "200"},
		{name: "ReducedRate", base: "1000", rate: "8", want: "80"},
		{name: "RoundsHalfUp", base: "33.33", rate: "18", want: "6"},
		{name: "SmallBase", base: "0.10", rate: "20", want: "0.02"},
		{name: "ZeroRate", base: "500", rate: "0", want: "0"},
		{name: "ZeroBase", base: "0", rate: "20", want: "0"},
		{name: "FractionalRate", base: "250", rate: "1.5", want: "3.75"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := money.VATAmount(d(tt.base), d(tt.rate))
			assert.True(t, d(tt.want).Equal(got), "got %s want %s", got, tt.want)
		})
	}
}

func TestTotalWithVAT(t *testing.T) {
	got := money.TotalWithVAT(d("1000"), d("20"))
	assert.True(t, d("1200").Equal(got), "got %s", got)
}

func TestDerive(t *testing.T) {
	t.Run("WithVAT", func(t *testing.T) {
		vat, total := money.Derive(d("1000"), true, d("20"))
		assert.True(t, d("200").Equal(vat), "vat %s", vat)
		assert.True(t, d("1200").Equal(total), "total %s", total)
	})

	t.Run("WithoutVAT", func(t *testing.T) {
		// No VAT means the total is the amount itself, untouched by rounding.
		vat, total := money.Derive(d("99.999"), false, d("20"))
		assert.True(t, vat.IsZero())
		assert.True(t, d("99.999").Equal(total), "total %s", total)
	})
}

func TestTotalWithVATEqualsBasePlusVAT(t *testing.T) {
	bases := []string{"0", "0.01", "12.34", "999.99", "123456.78"}
	rates := []string{"0", "1", "8", "18", "20", "100"}

	for _, b := range bases {
		for _, r := range rates {
			vat := money.VATAmount(d(b), d(r))
			total := money.TotalWithVAT(d(b), d(r))
			assert.True(t, d(b).Add(vat).Equal(total), "base %s rate %s", b, r)
		}
	}
}
