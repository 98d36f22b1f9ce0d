package services

import (
	"errors"
	"testing"

	"github.com/Thaquidheen/hoch-frontend-sub002/models"
)

func rateWindow(from, to string) models.FinishRate {
	r := models.FinishRate{
		Material:      1,
		BudgetTier:    models.TierLuxury,
		UnitRate:      1200,
		EffectiveFrom: models.MustParseDate(from),
		IsActive:      true,
	}
	if to != "" {
		r.EffectiveTo = models.DatePtr(models.MustParseDate(to))
	}
	return r
}

func TestClassifyRate(t *testing.T) {
	rate := rateWindow("2025-01-01", "2025-06-01")

	tests := []struct {
		name  string
		today string
		want  RateStatus
	}{
		{"after window", "2025-07-01", RateExpired},
		{"before window", "2024-12-01", RateFuture},
		{"inside window", "2025-03-01", RateCurrent},
		{"first day", "2025-01-01", RateCurrent},
		{"last day", "2025-06-01", RateCurrent},
		{"day after end", "2025-06-02", RateExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyRate(rate, models.MustParseDate(tt.today))
			if got != tt.want {
				t.Errorf("ClassifyRate(%s) = %q, want %q", tt.today, got, tt.want)
			}
		})
	}
}

func TestClassifyOpenEndedRate(t *testing.T) {
	rate := rateWindow("2025-01-01", "")

	if got := ClassifyRate(rate, models.MustParseDate("2030-01-01")); got != RateCurrent {
		t.Errorf("open-ended rate in 2030 = %q, want current", got)
	}
	if got := ClassifyRate(rate, models.MustParseDate("2024-06-01")); got != RateFuture {
		t.Errorf("open-ended rate before start = %q, want future", got)
	}
}

func TestIsRateValidOn(t *testing.T) {
	bounded := rateWindow("2025-01-01", "2025-06-01")
	open := rateWindow("2025-01-01", "")

	tests := []struct {
		name string
		rate models.FinishRate
		day  string
		want bool
	}{
		{"bounded inside", bounded, "2025-03-01", true},
		{"bounded start day", bounded, "2025-01-01", true},
		{"bounded end day excluded", bounded, "2025-06-01", false},
		{"bounded before", bounded, "2024-12-31", false},
		{"bounded after", bounded, "2025-07-01", false},
		{"open far future", open, "2099-01-01", true},
		{"open before start", open, "2024-12-31", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsRateValidOn(tt.rate, models.MustParseDate(tt.day))
			if got != tt.want {
				t.Errorf("IsRateValidOn(%s) = %v, want %v", tt.day, got, tt.want)
			}
		})
	}
}

func TestValidateRateWindow(t *testing.T) {
	today := models.MustParseDate("2025-03-10")
	d := models.MustParseDate

	tests := []struct {
		name     string
		from     models.Date
		to       *models.Date
		creating bool
		want     error
	}{
		{"open ended today", today, nil, true, nil},
		{"yesterday allowed", d("2025-03-09"), nil, true, nil},
		{"two days ago rejected", d("2025-03-08"), nil, true, ErrRateStartInPast},
		{"past start fine when editing", d("2024-01-01"), nil, false, nil},
		{"to equals from", today, models.DatePtr(today), true, ErrRateWindowOrder},
		{"to before from", today, models.DatePtr(d("2025-03-01")), false, ErrRateWindowOrder},
		{"to after from", today, models.DatePtr(d("2025-03-11")), true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRateWindow(tt.from, tt.to, today, tt.creating)
			if !errors.Is(err, tt.want) {
				t.Errorf("ValidateRateWindow() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCountRates(t *testing.T) {
	today := models.MustParseDate("2025-03-01")
	expired := rateWindow("2024-01-01", "2024-12-31")
	future := rateWindow("2025-05-01", "")
	future.Material = 2
	current := rateWindow("2025-01-01", "")
	current.BudgetTier = models.TierEconomy
	current.IsActive = false

	stats := CountRates([]models.FinishRate{expired, future, current}, today)

	if stats.Total != 3 || stats.Expired != 1 || stats.Future != 1 || stats.Current != 1 {
		t.Errorf("CountRates() = %+v", stats)
	}
	if stats.Active != 2 {
		t.Errorf("Active = %d, want 2", stats.Active)
	}
	if stats.ByTier[models.TierLuxury] != 2 || stats.ByTier[models.TierEconomy] != 1 {
		t.Errorf("ByTier = %v", stats.ByTier)
	}
	if stats.Materials != 2 {
		t.Errorf("Materials = %d, want 2", stats.Materials)
	}
}

func TestCurrentRates(t *testing.T) {
	day := models.MustParseDate("2025-03-01")
	a := rateWindow("2025-01-01", "")
	a.ID = 1
	b := rateWindow("2025-01-01", "2025-02-01")
	b.ID = 2
	c := rateWindow("2025-01-01", "")
	c.ID = 3
	c.IsActive = false
	d := rateWindow("2024-06-01", "2025-12-31")
	d.ID = 4

	got := CurrentRates([]models.FinishRate{a, b, c, d}, day)
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 4 {
		t.Errorf("CurrentRates() ids = %v, want [1 4]", rateIDs(got))
	}
}

func rateIDs(rates []models.FinishRate) []int {
	ids := make([]int, len(rates))
	for i, r := range rates {
		ids[i] = r.ID
	}
	return ids
}
