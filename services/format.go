package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Thaquidheen/hoch-frontend-sub002/models"
)

// DisplayDateLayout is how dates are shown in lists and exports.
const DisplayDateLayout = "02 Jan 2006"

var titleCaser = cases.Title(language.English)

// FormatINR formats a float64 amount into Indian Rupee notation.
// It uses the Indian numbering system where, after the rightmost 3 digits,
// digits are grouped in pairs (e.g., ₹1,23,45,678.90).
// The result always includes exactly 2 decimal places.
func FormatINR(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	intPart, decPart, _ := strings.Cut(raw, ".")

	result := "₹" + applyIndianGrouping(intPart) + "." + decPart
	if negative && raw != "0.00" {
		result = "-" + result
	}
	return result
}

// applyIndianGrouping inserts commas into an integer string using the
// Indian numbering system: the rightmost 3 digits form the first group,
// then every 2 digits form subsequent groups.
func applyIndianGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]

	for len(remaining) > 2 {
		result = remaining[len(remaining)-2:] + "," + result
		remaining = remaining[:len(remaining)-2]
	}
	if len(remaining) > 0 {
		result = remaining + "," + result
	}

	return result
}

// FormatDate renders a date as "02 Jan 2006"; the zero date is empty.
func FormatDate(d models.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DisplayDateLayout)
}

// FormatDateRange renders a rate window; an open end reads "onwards".
func FormatDateRange(from models.Date, to *models.Date) string {
	if to == nil {
		return FormatDate(from) + " onwards"
	}
	return FormatDate(from) + " to " + FormatDate(*to)
}

// Label turns an enum value such as "LUXURY" or "under_wall" into "Luxury"
// or "Under Wall".
func Label(value string) string {
	value = strings.ReplaceAll(strings.TrimSpace(value), "_", " ")
	return titleCaser.String(strings.ToLower(value))
}

// FormatCount renders counts with thousands separators ("1,204 rates").
func FormatCount(n int, noun string) string {
	if n != 1 {
		noun += "s"
	}
	return humanize.Comma(int64(n)) + " " + noun
}

// FormatAgo renders t relative to now ("3 minutes ago").
func FormatAgo(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.Time(t)
}
