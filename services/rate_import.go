package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"

	"github.com/Thaquidheen/hoch-frontend-sub002/models"
)

// ImportField describes one column of the finish-rate import file.
type ImportField struct {
	Key          string
	Label        string
	Description  string
	ExampleValue string
	Required     bool
}

// RateImportFields returns the ordered columns of the finish-rate template.
func RateImportFields() []ImportField {
	return []ImportField{
		{Key: "material", Label: "Material", Description: "Material name or id", ExampleValue: "Marine Ply", Required: true},
		{Key: "budget_tier", Label: "Budget Tier", Description: "LUXURY or ECONOMY", ExampleValue: "LUXURY", Required: true},
		{Key: "unit_rate", Label: "Unit Rate", Description: "Rate per sqft in INR", ExampleValue: "1450", Required: true},
		{Key: "effective_from", Label: "Effective From", Description: "YYYY-MM-DD, not earlier than yesterday", ExampleValue: "2025-04-01", Required: true},
		{Key: "effective_to", Label: "Effective To", Description: "YYYY-MM-DD, blank for open-ended", ExampleValue: ""},
		{Key: "is_active", Label: "Active", Description: "yes/no, defaults to yes", ExampleValue: "yes"},
		{Key: "notes", Label: "Notes", Description: "Free text", ExampleValue: "Revised after vendor price change"},
	}
}

// ValidationError represents a single field-level error on one row.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportedRate is a valid row ready to be created.
type ImportedRate struct {
	Row  int
	Rate models.FinishRate
}

// RateImportResult is returned after parsing and validating an import file.
type RateImportResult struct {
	FileName  string            `json:"file_name"`
	TotalRows int               `json:"total_rows"`
	ValidRows int               `json:"valid_rows"`
	ErrorRows int               `json:"error_rows"`
	Errors    []ValidationError `json:"errors"`
	Rates     []ImportedRate    `json:"-"`
}

var errTooFewRows = errors.New("file must contain a header row and at least one data row")

// ParseRateFile reads a .csv or .xlsx file of finish rates and validates every
// row against the known materials. Files without a usable extension are
// sniffed. Rows with errors are reported, not returned as rates.
func ParseRateFile(r io.Reader, fileName string, materials []models.Material, today models.Date) (*RateImportResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}

	var headers []string
	var rows [][]string
	switch importFormat(fileName, data) {
	case "csv":
		headers, rows, err = parseCSV(bytes.NewReader(data))
	case "xlsx":
		headers, rows, err = parseExcel(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, err
	}

	fields := RateImportFields()
	columnKeys, _ := mapHeadersToFields(headers, fields)

	byName := make(map[string]models.Material, len(materials))
	byID := make(map[int]models.Material, len(materials))
	for _, m := range materials {
		byName[strings.ToLower(strings.TrimSpace(m.Name))] = m
		byID[m.ID] = m
	}

	result := &RateImportResult{FileName: fileName, TotalRows: len(rows)}
	errorRows := make(map[int]bool)

	for i, row := range rows {
		rowNum := i + 2 // header is row 1
		values := make(map[string]string, len(columnKeys))
		for col, key := range columnKeys {
			if key != "" && col < len(row) {
				values[key] = strings.TrimSpace(row[col])
			}
		}

		rate, rowErrs := validateRateRow(rowNum, values, fields, byName, byID, today)
		if len(rowErrs) > 0 {
			result.Errors = append(result.Errors, rowErrs...)
			errorRows[rowNum] = true
			continue
		}
		result.Rates = append(result.Rates, ImportedRate{Row: rowNum, Rate: rate})
	}

	result.ErrorRows = len(errorRows)
	result.ValidRows = result.TotalRows - result.ErrorRows
	return result, nil
}

func importFormat(fileName string, data []byte) string {
	lower := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lower, ".csv"):
		return "csv"
	case strings.HasSuffix(lower, ".xlsx"):
		return "xlsx"
	}
	mt := mimetype.Detect(data)
	switch {
	case mt.Is("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"):
		return "xlsx"
	case mt.Is("text/csv"), mt.Is("text/plain"):
		return "csv"
	}
	return ""
}

func validateRateRow(
	rowNum int,
	values map[string]string,
	fields []ImportField,
	byName map[string]models.Material,
	byID map[int]models.Material,
	today models.Date,
) (models.FinishRate, []ValidationError) {
	var errs []ValidationError
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Row: rowNum, Field: field, Message: msg})
	}

	for _, f := range fields {
		if f.Required && values[f.Key] == "" {
			add(f.Label, f.Label+" is required")
		}
	}

	rate := models.FinishRate{Currency: models.CurrencyINR, IsActive: true, Notes: values["notes"]}

	if v := values["material"]; v != "" {
		m, ok := byName[strings.ToLower(v)]
		if !ok {
			if id, err := strconv.Atoi(v); err == nil {
				m, ok = byID[id]
			}
		}
		if !ok {
			add("Material", fmt.Sprintf("Unknown material %q", v))
		} else {
			rate.Material = m.ID
			rate.MaterialName = m.Name
		}
	}

	if v := strings.ToUpper(values["budget_tier"]); v != "" {
		if !IsBudgetTier(v) {
			add("Budget Tier", "Budget Tier must be LUXURY or ECONOMY")
		}
		rate.BudgetTier = models.BudgetTier(v)
	}

	if v := values["unit_rate"]; v != "" {
		n, err := cast.ToFloat64E(strings.ReplaceAll(v, ",", ""))
		switch {
		case err != nil, math.IsNaN(n), math.IsInf(n, 0):
			add("Unit Rate", "Unit Rate must be a number")
		case n < 0:
			add("Unit Rate", "Unit Rate cannot be negative")
		default:
			rate.UnitRate = n
		}
	}

	fromOK := false
	if v := values["effective_from"]; v != "" {
		d, err := models.ParseDate(v)
		if err != nil {
			add("Effective From", "Effective From must be a date in YYYY-MM-DD format")
		} else {
			rate.EffectiveFrom = d
			fromOK = true
		}
	}
	if v := values["effective_to"]; v != "" {
		d, err := models.ParseDate(v)
		if err != nil {
			add("Effective To", "Effective To must be a date in YYYY-MM-DD format")
		} else {
			rate.EffectiveTo = &d
		}
	}
	if fromOK {
		switch err := ValidateRateWindow(rate.EffectiveFrom, rate.EffectiveTo, today, true); {
		case errors.Is(err, ErrRateStartInPast):
			add("Effective From", "Effective From cannot be earlier than yesterday")
		case errors.Is(err, ErrRateWindowOrder):
			add("Effective To", "Effective To must be after Effective From")
		}
	}

	if v := strings.ToLower(values["is_active"]); v != "" {
		switch v {
		case "yes", "y":
			rate.IsActive = true
		case "no", "n":
			rate.IsActive = false
		default:
			b, err := cast.ToBoolE(v)
			if err != nil {
				add("Active", "Active must be yes or no")
			}
			rate.IsActive = b
		}
	}

	return rate, errs
}

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, errTooFewRows
	}
	return allRows[0], allRows[1:], nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the first sheet.
func parseExcel(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, errTooFewRows
	}
	return rows[0], rows[1:], nil
}

// mapHeadersToFields maps uploaded column headers to field keys.
// Returns ordered list of field keys (one per column) and any unrecognized columns.
func mapHeadersToFields(headers []string, fields []ImportField) ([]string, []string) {
	labelToKey := make(map[string]string, len(fields)*2)
	for _, f := range fields {
		labelToKey[strings.ToLower(f.Label)] = f.Key
		labelToKey[f.Key] = f.Key
	}

	mapped := make([]string, len(headers))
	var unrecognized []string
	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		// the template marks required columns with a trailing " *"
		norm = strings.TrimSpace(strings.TrimSuffix(norm, " *"))

		if key, ok := labelToKey[norm]; ok {
			mapped[i] = key
		} else {
			unrecognized = append(unrecognized, h)
		}
	}
	return mapped, unrecognized
}

// GenerateRateTemplate creates the .xlsx import template: a header row with
// required columns starred, one example row, and an Instructions sheet.
func GenerateRateTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Finish Rates"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	fields := RateImportFields()
	for i, field := range fields {
		header := field.Label
		if field.Required {
			header += " *"
		}
		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("column name: %w", err)
		}
		f.SetCellValue(sheet, colName+"1", header)
		f.SetCellValue(sheet, colName+"2", field.ExampleValue)
		f.SetColWidth(sheet, colName, colName, 20)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(fields))
	f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle)

	if _, err := f.NewSheet("Instructions"); err != nil {
		return nil, fmt.Errorf("create instructions sheet: %w", err)
	}
	f.SetCellValue("Instructions", "A1", "Column")
	f.SetCellValue("Instructions", "B1", "Description")
	f.SetCellStyle("Instructions", "A1", "B1", headerStyle)
	f.SetColWidth("Instructions", "A", "A", 20)
	f.SetColWidth("Instructions", "B", "B", 50)
	for i, field := range fields {
		row := strconv.Itoa(i + 2)
		f.SetCellValue("Instructions", "A"+row, field.Label)
		f.SetCellValue("Instructions", "B"+row, field.Description)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write template: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateErrorReport creates a downloadable .xlsx file from validation errors.
func GenerateErrorReport(errs []ValidationError) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Errors"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DC2626"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	f.SetCellValue(sheet, "A1", "Row #")
	f.SetCellValue(sheet, "B1", "Field")
	f.SetCellValue(sheet, "C1", "Error")
	f.SetCellStyle(sheet, "A1", "C1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 22)
	f.SetColWidth(sheet, "C", "C", 55)

	for i, e := range errs {
		row := strconv.Itoa(i + 2)
		f.SetCellValue(sheet, "A"+row, e.Row)
		f.SetCellValue(sheet, "B"+row, sanitizeExcelCell(e.Field))
		f.SetCellValue(sheet, "C"+row, sanitizeExcelCell(e.Message))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write error report: %w", err)
	}
	return buf.Bytes(), nil
}
