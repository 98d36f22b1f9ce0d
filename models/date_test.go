package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain date", `"2025-03-01"`, "2025-03-01", false},
		{"timestamp truncated", `"2025-03-01T10:15:00Z"`, "2025-03-01", false},
		{"null", `null`, "", false},
		{"empty string", `""`, "", false},
		{"garbage", `"01/03/2025"`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tt.input), &d)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got := d.String(); got != tt.want {
				t.Errorf("Unmarshal(%s) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFinishRateOpenEndedEncodesNull(t *testing.T) {
	rate := FinishRate{
		Material:      3,
		BudgetTier:    TierLuxury,
		UnitRate:      1450,
		Currency:      CurrencyINR,
		EffectiveFrom: MustParseDate("2025-01-01"),
	}

	data, err := json.Marshal(rate)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if decoded["effective_to"] != nil {
		t.Errorf("effective_to = %v, want null", decoded["effective_to"])
	}
	if decoded["effective_from"] != "2025-01-01" {
		t.Errorf("effective_from = %v, want 2025-01-01", decoded["effective_from"])
	}
	if _, ok := decoded["id"]; ok {
		t.Error("expected id to be omitted for a new rate")
	}
}

func TestDateOrdering(t *testing.T) {
	from := MustParseDate("2025-01-01")
	to := MustParseDate("2025-06-01")

	if !from.Before(to) || to.Before(from) {
		t.Error("expected 2025-01-01 before 2025-06-01")
	}
	if !from.AddDays(151).Equal(to) {
		t.Errorf("AddDays(151) = %s, want %s", from.AddDays(151), to)
	}
	local := time.Date(2025, 3, 1, 23, 59, 0, 0, time.FixedZone("IST", 5*3600+1800))
	if got := DateOf(local).String(); got != "2025-03-01" {
		t.Errorf("DateOf = %s, want 2025-03-01", got)
	}
}

func TestMaterialEligibility(t *testing.T) {
	tests := []struct {
		role               MaterialRole
		cabinet, door, top bool
	}{
		{RoleBoth, true, true, true},
		{RoleCabinet, true, false, false},
		{RoleDoor, false, true, false},
		{RoleTop, false, false, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			m := Material{Role: tt.role}
			if m.UsableForCabinet() != tt.cabinet {
				t.Errorf("UsableForCabinet = %v, want %v", m.UsableForCabinet(), tt.cabinet)
			}
			if m.UsableForDoor() != tt.door {
				t.Errorf("UsableForDoor = %v, want %v", m.UsableForDoor(), tt.door)
			}
			if m.UsableForTop() != tt.top {
				t.Errorf("UsableForTop = %v, want %v", m.UsableForTop(), tt.top)
			}
		})
	}
}
