package services

import (
	"math"
	"testing"
)

func TestAccessoryPreview(t *testing.T) {
	tests := []struct {
		name      string
		unitPrice string
		qty       string
		wantSub   float64
		wantTax   float64
		wantTotal float64
	}{
		{"basic", "285", "2", 570.00, 102.60, 672.60},
		{"decimal price", "99.99", "3", 299.97, 53.99, 353.96},
		{"rounds tax half up", "0.25", "1", 0.25, 0.05, 0.30},
		{"non-numeric price", "abc", "2", 0, 0, 0},
		{"missing qty", "285", "", 0, 0, 0},
		{"non-numeric qty", "285", "two", 0, 0, 0},
		{"fractional qty truncated", "100", "2.5", 200, 36, 236},
		{"leading zero qty", "100", "08", 800, 144, 944},
		{"padded input", " 1250.50 ", " 4 ", 5002.00, 900.36, 5902.36},
		{"NaN price", "NaN", "1", 0, 0, 0},
		{"infinite price", "Inf", "1", 0, 0, 0},
		{"negative infinite price", "-Inf", "3", 0, 0, 0},
		{"sub-paisa price taxed unrounded", "0.025", "1", 0.03, 0, 0.03},
		{"sub-paisa price times qty", "0.125", "3", 0.38, 0.07, 0.45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AccessoryPreview(tt.unitPrice, tt.qty)
			if math.Abs(got.Subtotal-tt.wantSub) > 0.001 {
				t.Errorf("Subtotal = %v, want %v", got.Subtotal, tt.wantSub)
			}
			if math.Abs(got.TaxAmount-tt.wantTax) > 0.001 {
				t.Errorf("TaxAmount = %v, want %v", got.TaxAmount, tt.wantTax)
			}
			if math.Abs(got.Total-tt.wantTotal) > 0.001 {
				t.Errorf("Total = %v, want %v", got.Total, tt.wantTotal)
			}
		})
	}
}

func TestAccessoryPreviewTotalIsSubtotalPlusTax(t *testing.T) {
	prices := []string{"1", "17.35", "285", "1999.99", "0.01"}
	qtys := []string{"1", "2", "7", "13"}

	for _, p := range prices {
		for _, q := range qtys {
			got := AccessoryPreview(p, q)
			if math.Abs(got.Total-(got.Subtotal+got.TaxAmount)) > 0.001 {
				t.Errorf("AccessoryPreview(%s, %s): total %v != subtotal %v + tax %v",
					p, q, got.Total, got.Subtotal, got.TaxAmount)
			}
			wantTax := math.Round(got.Subtotal*GSTPercent) / 100
			if math.Abs(got.TaxAmount-wantTax) > 0.011 {
				t.Errorf("AccessoryPreview(%s, %s): tax %v, want about %v", p, q, got.TaxAmount, wantTax)
			}
		}
	}
}

func TestAccessoryLineTotal(t *testing.T) {
	tests := []struct {
		name   string
		price  float64
		qty    int
		expect float64
	}{
		{"basic", 285, 2, 570},
		{"zero qty", 285, 0, 0},
		{"decimal", 99.99, 3, 299.97},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AccessoryLineTotal(tt.price, tt.qty)
			if math.Abs(got-tt.expect) > 0.001 {
				t.Errorf("AccessoryLineTotal(%v, %v) = %v, want %v", tt.price, tt.qty, got, tt.expect)
			}
		})
	}
}
