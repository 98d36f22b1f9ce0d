package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const lineItemsSheet = "Line Items"

// GenerateLineItemsExcel writes the project's line items and quotation
// totals to a workbook and returns the file contents.
func GenerateLineItemsExcel(data QuotationData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, lineItemsSheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}
	sheet := lineItemsSheet

	columns := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L"}
	lastCol := columns[len(columns)-1]

	widths := []float64{5, 28, 20, 20, 10, 10, 10, 7, 10, 12, 12, 16}
	for i, c := range columns {
		if err := f.SetColWidth(sheet, c, c, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", c, err)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	cellStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create cell style: %w", err)
	}

	// 4 is the built-in "#,##0.00" format.
	amountStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
		NumFmt: 4,
	})
	if err != nil {
		return nil, fmt.Errorf("create amount style: %w", err)
	}

	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}

	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		NumFmt: 4,
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	title := data.ProjectName
	if title == "" {
		title = "Line Items"
	}
	if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheet, "A1", sanitizeExcelCell(title))
	f.SetCellStyle(sheet, "A1", lastCol+"1", titleStyle)

	subtitle := joinNonEmpty([]string{data.CustomerName, data.ReferenceNumber, data.Date}, " | ")
	if subtitle != "" {
		if err := f.MergeCell(sheet, "A2", lastCol+"2"); err != nil {
			return nil, fmt.Errorf("merge subtitle: %w", err)
		}
		f.SetCellValue(sheet, "A2", sanitizeExcelCell(subtitle))
		f.SetCellStyle(sheet, "A2", lastCol+"2", subtitleStyle)
	}

	headers := []string{
		"#", "Cabinet Type", "Cabinet Material", "Door Material",
		"Width (mm)", "Depth (mm)", "Height (mm)", "Qty", "Scope",
		"Cabinet Sqft", "Door Sqft", "Amount",
	}
	for i, h := range headers {
		f.SetCellValue(sheet, fmt.Sprintf("%s4", columns[i]), h)
	}
	f.SetCellStyle(sheet, "A4", lastCol+"4", headerStyle)

	row := 5
	for i, it := range data.LineItems {
		r := fmt.Sprintf("%d", row)
		values := []any{
			i + 1,
			sanitizeExcelCell(it.CabinetTypeName),
			sanitizeExcelCell(it.CabinetMaterialName),
			sanitizeExcelCell(it.DoorMaterialName),
			it.WidthMM,
			it.DepthMM,
			it.HeightMM,
			it.Qty,
			Label(string(it.Scope)),
			it.ComputedCabinetSqft,
			it.ComputedDoorSqft,
			it.LineTotalBeforeTax,
		}
		for j, v := range values {
			f.SetCellValue(sheet, columns[j]+r, v)
		}
		f.SetCellStyle(sheet, "A"+r, "K"+r, cellStyle)
		f.SetCellStyle(sheet, "J"+r, lastCol+r, amountStyle)
		row++
	}

	row++

	summary := []struct {
		label string
		value float64
	}{
		{"Total Before Tax:", data.Totals.TotalBeforeTax},
		{fmt.Sprintf("GST %.0f%%:", data.Totals.GSTPercent), data.Totals.GSTAmount},
		{"Round Off:", data.Totals.RoundOff},
		{"Grand Total:", data.Totals.GrandTotal},
	}
	for _, s := range summary {
		r := fmt.Sprintf("%d", row)
		f.SetCellValue(sheet, "K"+r, s.label)
		f.SetCellStyle(sheet, "K"+r, "K"+r, summaryLabelStyle)
		f.SetCellValue(sheet, lastCol+r, s.value)
		f.SetCellStyle(sheet, lastCol+r, lastCol+r, summaryValueStyle)
		row++
	}

	if data.Totals.AmountInWords != "" {
		r := fmt.Sprintf("%d", row)
		if err := f.MergeCell(sheet, "A"+r, lastCol+r); err != nil {
			return nil, fmt.Errorf("merge amount in words: %w", err)
		}
		f.SetCellValue(sheet, "A"+r, "Amount in Words: "+data.Totals.AmountInWords)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1,
		}
	}
	return borders
}
