package services

import (
	"errors"

	"github.com/Thaquidheen/hoch-frontend-sub002/models"
)

// RateStatus classifies a finish rate against a reference day.
type RateStatus string

const (
	RateCurrent RateStatus = "current"
	RateFuture  RateStatus = "future"
	RateExpired RateStatus = "expired"
)

var (
	ErrRateWindowOrder = errors.New("effective to must be after effective from")
	ErrRateStartInPast = errors.New("effective from cannot be earlier than yesterday")
)

// IsRateValidOn reports whether the rate applies on day d: it has started
// and its end date (if any) is still ahead.
func IsRateValidOn(rate models.FinishRate, d models.Date) bool {
	if rate.EffectiveFrom.After(d) {
		return false
	}
	return rate.EffectiveTo == nil || rate.EffectiveTo.After(d)
}

// ClassifyRate reports whether the rate is expired, future or current on today.
// A rate ending exactly today is current.
func ClassifyRate(rate models.FinishRate, today models.Date) RateStatus {
	switch {
	case rate.EffectiveTo != nil && rate.EffectiveTo.Before(today):
		return RateExpired
	case rate.EffectiveFrom.After(today):
		return RateFuture
	default:
		return RateCurrent
	}
}

// ValidateRateWindow checks the date rules applied when a rate is saved.
// creating enables the "not earlier than yesterday" rule for effective_from.
func ValidateRateWindow(from models.Date, to *models.Date, today models.Date, creating bool) error {
	if creating && from.Before(today.AddDays(-1)) {
		return ErrRateStartInPast
	}
	if to != nil && !to.After(from) {
		return ErrRateWindowOrder
	}
	return nil
}

// RateStats counts rates per classification.
type RateStats struct {
	Total     int
	Active    int
	Current   int
	Future    int
	Expired   int
	ByTier    map[models.BudgetTier]int
	Materials int // distinct materials priced
}

// CountRates classifies every rate against today.
func CountRates(rates []models.FinishRate, today models.Date) RateStats {
	stats := RateStats{ByTier: make(map[models.BudgetTier]int)}
	materials := make(map[int]bool)
	for _, r := range rates {
		stats.Total++
		if r.IsActive {
			stats.Active++
		}
		switch ClassifyRate(r, today) {
		case RateExpired:
			stats.Expired++
		case RateFuture:
			stats.Future++
		default:
			stats.Current++
		}
		stats.ByTier[r.BudgetTier]++
		materials[r.Material] = true
	}
	stats.Materials = len(materials)
	return stats
}

// CurrentRates keeps the rates valid on day, in input order.
func CurrentRates(rates []models.FinishRate, day models.Date) []models.FinishRate {
	out := make([]models.FinishRate, 0, len(rates))
	for _, r := range rates {
		if r.IsActive && IsRateValidOn(r, day) {
			out = append(out, r)
		}
	}
	return out
}
