package services

import (
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/Thaquidheen/hoch-frontend-sub002/models"
)

var importMaterials = []models.Material{
	{ID: 3, Name: "Marine Ply", Role: models.RoleBoth, IsActive: true},
	{ID: 5, Name: "Acrylic", Role: models.RoleDoor, IsActive: true},
}

var importToday = models.MustParseDate("2025-03-01")

func TestParseRateFile_CSV(t *testing.T) {
	csvData := strings.Join([]string{
		"Material *,Budget Tier *,Unit Rate *,Effective From *,Effective To,Active,Notes",
		"marine ply,luxury,\"1,450\",2025-03-01,,yes,Revised",
		"5,ECONOMY,900.50,2025-02-28,2025-12-31,no,",
		"Teak,PREMIUM,abc,2024-01-01,,maybe,",
		"Acrylic,LUXURY,1200,2025-04-01,2025-03-15,,",
		",,,,,,",
	}, "\n")

	result, err := ParseRateFile(strings.NewReader(csvData), "rates.csv", importMaterials, importToday)
	if err != nil {
		t.Fatalf("ParseRateFile() error = %v", err)
	}

	if result.TotalRows != 5 || result.ValidRows != 2 || result.ErrorRows != 3 {
		t.Fatalf("rows total/valid/error = %d/%d/%d, want 5/2/3", result.TotalRows, result.ValidRows, result.ErrorRows)
	}
	if len(result.Rates) != 2 {
		t.Fatalf("expected 2 rates, got %d", len(result.Rates))
	}

	first := result.Rates[0]
	if first.Row != 2 || first.Rate.Material != 3 || first.Rate.BudgetTier != models.TierLuxury {
		t.Errorf("first rate = %+v", first)
	}
	if first.Rate.UnitRate != 1450 || first.Rate.EffectiveTo != nil || !first.Rate.IsActive {
		t.Errorf("first rate values = %+v", first.Rate)
	}
	if first.Rate.Currency != models.CurrencyINR || first.Rate.Notes != "Revised" {
		t.Errorf("first rate currency/notes = %q/%q", first.Rate.Currency, first.Rate.Notes)
	}

	second := result.Rates[1].Rate
	if second.Material != 5 || second.MaterialName != "Acrylic" || second.IsActive {
		t.Errorf("second rate = %+v", second)
	}
	if second.EffectiveTo == nil || second.EffectiveTo.String() != "2025-12-31" {
		t.Errorf("second rate effective_to = %v", second.EffectiveTo)
	}

	byRow := make(map[int][]string)
	for _, e := range result.Errors {
		byRow[e.Row] = append(byRow[e.Row], e.Field)
	}
	wantRow4 := []string{"Material", "Budget Tier", "Unit Rate", "Effective From", "Active"}
	if strings.Join(byRow[4], ",") != strings.Join(wantRow4, ",") {
		t.Errorf("row 4 error fields = %v, want %v", byRow[4], wantRow4)
	}
	if strings.Join(byRow[5], ",") != "Effective To" {
		t.Errorf("row 5 error fields = %v, want [Effective To]", byRow[5])
	}
	if len(byRow[6]) != 4 {
		t.Errorf("blank row should report 4 required fields, got %v", byRow[6])
	}
}

func TestParseRateFile_NonFiniteRate(t *testing.T) {
	csvData := strings.Join([]string{
		"Material *,Budget Tier *,Unit Rate *,Effective From *,Effective To,Active,Notes",
		"marine ply,LUXURY,NaN,2025-03-01,,yes,",
		"marine ply,ECONOMY,Inf,2025-03-01,,yes,",
	}, "\n")

	result, err := ParseRateFile(strings.NewReader(csvData), "rates.csv", importMaterials, importToday)
	if err != nil {
		t.Fatalf("ParseRateFile() error = %v", err)
	}
	if result.ValidRows != 0 || result.ErrorRows != 2 {
		t.Fatalf("rows valid/error = %d/%d, want 0/2", result.ValidRows, result.ErrorRows)
	}
	for _, e := range result.Errors {
		if e.Field != "Unit Rate" {
			t.Errorf("row %d: unexpected error on %s: %s", e.Row, e.Field, e.Message)
		}
	}
}

func TestParseRateFile_Excel(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	f.SetSheetRow(sheet, "A1", &[]any{"material", "budget_tier", "unit_rate", "effective_from"})
	f.SetSheetRow(sheet, "A2", &[]any{"Marine Ply", "ECONOMY", 780, "2025-03-02"})
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	f.Close()

	result, err := ParseRateFile(buf, "rates.XLSX", importMaterials, importToday)
	if err != nil {
		t.Fatalf("ParseRateFile() error = %v", err)
	}
	if result.ValidRows != 1 || len(result.Errors) != 0 {
		t.Fatalf("valid = %d, errors = %v", result.ValidRows, result.Errors)
	}
	if got := result.Rates[0].Rate.UnitRate; got != 780 {
		t.Errorf("UnitRate = %f, want 780", got)
	}
}

func TestParseRateFile_TemplateRoundTrip(t *testing.T) {
	tpl, err := GenerateRateTemplate()
	if err != nil {
		t.Fatalf("GenerateRateTemplate() error = %v", err)
	}

	f, err := excelize.OpenReader(bytesReader(tpl))
	if err != nil {
		t.Fatalf("template is not valid Excel: %v", err)
	}
	sheets := f.GetSheetList()
	f.Close()
	if len(sheets) != 2 || sheets[0] != "Finish Rates" || sheets[1] != "Instructions" {
		t.Errorf("sheets = %v", sheets)
	}

	// the example row must import cleanly
	result, err := ParseRateFile(bytesReader(tpl), "finish_rates_template.xlsx", importMaterials, importToday)
	if err != nil {
		t.Fatalf("ParseRateFile() error = %v", err)
	}
	if result.ValidRows != 1 || len(result.Errors) != 0 {
		t.Errorf("valid = %d, errors = %v", result.ValidRows, result.Errors)
	}
}

func TestParseRateFile_Format(t *testing.T) {
	csvData := "material,budget_tier,unit_rate,effective_from\nAcrylic,LUXURY,1200,2025-03-05\n"

	result, err := ParseRateFile(strings.NewReader(csvData), "upload", importMaterials, importToday)
	if err != nil {
		t.Fatalf("sniffed csv: error = %v", err)
	}
	if result.ValidRows != 1 {
		t.Errorf("sniffed csv: valid = %d, want 1", result.ValidRows)
	}

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	if _, err := ParseRateFile(bytesReader(png), "logo", importMaterials, importToday); err == nil {
		t.Error("expected an error for a PNG upload")
	}

	if _, err := ParseRateFile(strings.NewReader("material\n"), "rates.csv", importMaterials, importToday); err != errTooFewRows {
		t.Errorf("header only: error = %v, want errTooFewRows", err)
	}
}

func TestMapHeadersToFields(t *testing.T) {
	mapped, unknown := mapHeadersToFields([]string{"Unit Rate *", "budget_tier", "Colour"}, RateImportFields())

	if mapped[0] != "unit_rate" || mapped[1] != "budget_tier" || mapped[2] != "" {
		t.Errorf("mapped = %v", mapped)
	}
	if len(unknown) != 1 || unknown[0] != "Colour" {
		t.Errorf("unrecognized = %v", unknown)
	}
}

func TestGenerateErrorReport(t *testing.T) {
	report, err := GenerateErrorReport([]ValidationError{
		{Row: 4, Field: "Unit Rate", Message: "Unit Rate must be a number"},
		{Row: 7, Field: "Material", Message: "=HYPERLINK()"},
	})
	if err != nil {
		t.Fatalf("GenerateErrorReport() error = %v", err)
	}

	f, err := excelize.OpenReader(bytesReader(report))
	if err != nil {
		t.Fatalf("report is not valid Excel: %v", err)
	}
	defer f.Close()

	cells := map[string]string{
		"A1": "Row #",
		"A2": "4",
		"B2": "Unit Rate",
		"C3": "'=HYPERLINK()",
	}
	for cell, want := range cells {
		if got, _ := f.GetCellValue("Errors", cell); got != want {
			t.Errorf("%s = %q, want %q", cell, got, want)
		}
	}
}
