// Package services provides the pricing, validity and formatting helpers
// shared by the stores, forms and exports.
package services

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// GSTPercent is the tax rate applied to accessories and quotations.
const GSTPercent = 18

var gstRate = decimal.New(GSTPercent, -2)

// PricePreview is the live subtotal/tax/total shown while an accessory is edited.
type PricePreview struct {
	UnitPrice float64
	Qty       int
	Subtotal  float64
	TaxAmount float64 // Subtotal * 18%
	Total     float64 // Subtotal + TaxAmount
}

// AccessoryPreview prices an accessory from raw form input. Non-numeric or
// missing values count as zero. Tax and total are computed from the
// unrounded subtotal; all amounts are then rounded to 2 decimals.
func AccessoryPreview(unitPrice, qty string) PricePreview {
	price := parseAmount(unitPrice)
	n := parseQty(qty)

	raw := decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(n)))
	tax := raw.Mul(gstRate).Round(2)
	total := raw.Add(tax).Round(2)
	subtotal := raw.Round(2)

	return PricePreview{
		UnitPrice: price,
		Qty:       n,
		Subtotal:  subtotal.InexactFloat64(),
		TaxAmount: tax.InexactFloat64(),
		Total:     total.InexactFloat64(),
	}
}

// AccessoryLineTotal is qty * unit price rounded to 2 decimals, the value the
// backend stores as total_price.
func AccessoryLineTotal(unitPrice float64, qty int) float64 {
	return decimal.NewFromFloat(unitPrice).Mul(decimal.NewFromInt(int64(qty))).Round(2).InexactFloat64()
}

// parseAmount reads a finite number; NaN and infinities count as zero.
func parseAmount(s string) float64 {
	v := cast.ToFloat64(strings.TrimSpace(s))
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// parseQty reads the integer part of s; "08" is 8 and "2.5" is 2.
func parseQty(s string) int {
	s = strings.TrimSpace(s)
	if trimmed := strings.TrimLeft(s, "0"); trimmed != s {
		if trimmed == "" || trimmed[0] == '.' {
			trimmed = "0" + trimmed
		}
		s = trimmed
	}
	return cast.ToInt(s)
}
