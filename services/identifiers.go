package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z]{1}[1-9A-Z]{1}Z[0-9A-Z]{1}$`)
	phonePattern = regexp.MustCompile(`^(\+91[\- ]?)?[6-9][0-9]{9}$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	hexPattern   = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

// ValidateGSTIN validates a GSTIN (15-character alphanumeric). Empty is valid.
func ValidateGSTIN(gstin string) bool {
	gstin = strings.TrimSpace(strings.ToUpper(gstin))
	if gstin == "" {
		return true
	}
	return len(gstin) == 15 && gstinPattern.MatchString(gstin)
}

// ValidatePhone validates an Indian mobile number, optionally prefixed with +91.
func ValidatePhone(phone string) bool {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return true
	}
	return phonePattern.MatchString(phone)
}

// ValidateEmail validates an email address format.
func ValidateEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return true
	}
	return emailPattern.MatchString(email)
}

// ValidateHexColor accepts "#RRGGBB".
func ValidateHexColor(c string) bool {
	c = strings.TrimSpace(c)
	if c == "" {
		return true
	}
	return hexPattern.MatchString(c)
}

// GetFiscalYear returns the Indian fiscal year string for a given date.
// Indian fiscal year runs April to March.
// Jan 2026 → "25-26", May 2026 → "26-27"
func GetFiscalYear(t time.Time) string {
	startYear := t.Year()
	if t.Month() < time.April {
		startYear--
	}
	return fmt.Sprintf("%02d-%02d", startYear%100, (startYear+1)%100)
}

// QuotationNumber builds "HOCH-QT-{ref}-{fiscal year}-{seq}". The project id
// stands in for an empty reference number.
func QuotationNumber(referenceNumber string, projectID int, now time.Time, sequence int) string {
	ref := strings.TrimSpace(referenceNumber)
	if ref == "" {
		ref = fmt.Sprintf("P%d", projectID)
	}
	if sequence < 1 {
		sequence = 1
	}
	return fmt.Sprintf("HOCH-QT-%s-%s-%03d", ref, GetFiscalYear(now), sequence)
}
