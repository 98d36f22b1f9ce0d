package forms

import (
	"cmp"
	"errors"
	"math"
	"slices"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/cast"

	"github.com/Thaquidheen/hoch-frontend-sub002/models"
)

// toInt parses a whole number, tolerating leading zeros ("08").
func toInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if trimmed := strings.TrimLeft(s, "0"); trimmed != s {
		if trimmed == "" {
			trimmed = "0"
		}
		s = trimmed
	}
	if strings.ContainsAny(s, ".eE") {
		return 0, errors.New("not a whole number")
	}
	return cast.ToIntE(s)
}

// errNotFinite rejects NaN and infinities, which parse but cannot be priced.
var errNotFinite = errors.New("not a finite number")

func toFloat(s string) (float64, error) {
	n, err := cast.ToFloat64E(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
	if err != nil {
		return 0, err
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, errNotFinite
	}
	return n, nil
}

func toDate(s string) (models.Date, error) {
	return models.ParseDate(s)
}

// intAtLeast accepts whole numbers >= min. Empty input is left to Required.
func intAtLeast(min int, msg string) validation.Rule {
	return validation.By(func(v any) error {
		s, _ := v.(string)
		if s == "" {
			return nil
		}
		n, err := toInt(s)
		if err != nil || n < min {
			return errors.New(msg)
		}
		return nil
	})
}

// numberAbove accepts numbers > min, or >= min when inclusive.
func numberAbove(min float64, inclusive bool, msg string) validation.Rule {
	return validation.By(func(v any) error {
		s, _ := v.(string)
		if s == "" {
			return nil
		}
		n, err := toFloat(s)
		if err != nil || n < min || (!inclusive && n == min) {
			return errors.New(msg)
		}
		return nil
	})
}

// check turns a predicate over the raw input into a rule.
func check(ok func(string) bool, msg string) validation.Rule {
	return validation.By(func(v any) error {
		s, _ := v.(string)
		if s == "" || ok(s) {
			return nil
		}
		return errors.New(msg)
	})
}

func dateRule(msg string) validation.Rule {
	return validation.Date(models.DateLayout).Error(msg)
}

func sortByName(materials []models.Material) {
	slices.SortFunc(materials, func(a, b models.Material) int {
		return cmp.Or(strings.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
}
