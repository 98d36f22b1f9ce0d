package services

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// QuoteLine is one priced row of a quotation.
type QuoteLine struct {
	Label      string
	Qty        int
	BeforeTax  float64
	GSTPercent float64
	GSTAmount  float64 // BeforeTax * GSTPercent / 100
	Total      float64 // BeforeTax + GSTAmount
}

// QuoteTotals holds the aggregated totals of a quotation.
type QuoteTotals struct {
	TotalBeforeTax float64
	GSTPercent     float64
	GSTAmount      float64
	RoundOff       float64
	GrandTotal     float64
	AmountInWords  string
}

// CalcQuoteLine prices one quotation row from its pre-tax amount.
func CalcQuoteLine(label string, qty int, beforeTax, gstPercent float64) QuoteLine {
	before := decimal.NewFromFloat(beforeTax).Round(2)
	gst := before.Mul(decimal.NewFromFloat(gstPercent)).Div(decimal.NewFromInt(100)).Round(2)
	return QuoteLine{
		Label:      label,
		Qty:        qty,
		BeforeTax:  before.InexactFloat64(),
		GSTPercent: gstPercent,
		GSTAmount:  gst.InexactFloat64(),
		Total:      before.Add(gst).InexactFloat64(),
	}
}

// CalcQuoteTotals sums the rows, derives the effective GST percent, rounds
// the grand total to the nearest rupee and spells it out.
func CalcQuoteTotals(lines []QuoteLine) QuoteTotals {
	before, gst := decimal.Zero, decimal.Zero
	for _, l := range lines {
		before = before.Add(decimal.NewFromFloat(l.BeforeTax))
		gst = gst.Add(decimal.NewFromFloat(l.GSTAmount))
	}

	var gstPercent float64
	if before.IsPositive() {
		gstPercent = gst.Div(before).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
	}

	subtotal := before.Add(gst)
	grand := subtotal.Round(0)

	return QuoteTotals{
		TotalBeforeTax: before.InexactFloat64(),
		GSTPercent:     gstPercent,
		GSTAmount:      gst.InexactFloat64(),
		RoundOff:       grand.Sub(subtotal).InexactFloat64(),
		GrandTotal:     grand.InexactFloat64(),
		AmountInWords:  AmountToWords(grand.InexactFloat64()),
	}
}

// AmountToWords converts a numeric amount to Indian English words.
// Example: 913183.00 → "Nine Lakhs Thirteen Thousand One Hundred and Eighty Three Rupees Only/-"
func AmountToWords(amount float64) string {
	if amount < 0 {
		return "Negative " + AmountToWords(-amount)
	}

	rupees := int64(math.Round(amount))
	if rupees == 0 {
		return "Zero Rupees Only/-"
	}
	return indianWords(rupees) + " Rupees Only/-"
}

var indianUnits = []struct {
	size int64
	name string
}{
	{10000000, "Crores"},
	{100000, "Lakhs"},
	{1000, "Thousand"},
}

func indianWords(n int64) string {
	var parts []string
	for _, u := range indianUnits {
		if n >= u.size {
			parts = append(parts, wordsUnder100(n/u.size)+" "+u.name)
			n %= u.size
		}
	}
	if n >= 100 {
		parts = append(parts, ones[n/100]+" Hundred")
		n %= 100
	}
	if n > 0 {
		if len(parts) > 0 {
			parts = append(parts, "and "+wordsUnder100(n))
		} else {
			parts = append(parts, wordsUnder100(n))
		}
	}
	return strings.Join(parts, " ")
}

// wordsUnder100 also covers crore counts above 99 by recursing.
func wordsUnder100(n int64) string {
	if n >= 100 {
		return indianWords(n)
	}
	if n < 20 {
		return ones[n]
	}
	result := tens[n/10]
	if n%10 != 0 {
		result += " " + ones[n%10]
	}
	return result
}

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}
