package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/Thaquidheen/hoch-frontend-sub002/models"
)

var (
	defaultAccent = props.Color{Red: 33, Green: 37, Blue: 41}
	mutedGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	white         = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// GenerateQuotationPDF renders a customer quotation using the template's
// header, notes, terms and section switches.
func GenerateQuotationPDF(data QuotationData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)
	accent := ParseHexColor(data.Template.AccentColor)

	addQuoteHeader(m, data, accent)
	addQuoteNote(m, data.Template.HeaderNote)
	for _, s := range data.Sections {
		addQuoteSection(m, s, data.Template, accent)
	}
	addQuoteTotals(m, data, accent)
	addQuoteTerms(m, data.Template.Terms, accent)
	addQuoteNote(m, data.Template.FooterNote)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate quotation PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// ParseHexColor reads "#RRGGBB" (or "RRGGBB"). Anything else yields the
// default charcoal accent.
func ParseHexColor(hex string) props.Color {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return defaultAccent
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return defaultAccent
	}
	return props.Color{
		Red:   int(v >> 16 & 0xFF),
		Green: int(v >> 8 & 0xFF),
		Blue:  int(v & 0xFF),
	}
}

func addQuoteHeader(m core.Maroto, data QuotationData, accent props.Color) {
	tpl := data.Template

	m.AddRows(
		row.New(10).Add(
			col.New(7).Add(
				text.New(tpl.CompanyName, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
			col.New(5).Add(
				text.New("QUOTATION", props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: &accent,
				}),
			),
		),
	)

	contact := joinNonEmpty([]string{tpl.CompanyAddress, tpl.CompanyEmail, tpl.CompanyPhone}, " | ")
	m.AddRows(
		row.New(7).Add(
			col.New(8).Add(
				text.New(contact, props.Text{
					Size:  8,
					Align: align.Left,
					Color: mutedGray,
				}),
			),
			col.New(4).Add(
				text.New(fmt.Sprintf("Quote #: %s", data.Number), props.Text{
					Size:  9,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			),
		),
	)

	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(text.New(fmt.Sprintf("Date: %s", data.Date), props.Text{
				Size:  8,
				Align: align.Right,
			})),
		),
	)

	if tpl.GSTIN != "" {
		m.AddRows(
			row.New(6).Add(
				col.New(12).Add(text.New("GSTIN: "+tpl.GSTIN, props.Text{
					Size:  8,
					Align: align.Left,
					Color: mutedGray,
				})),
			),
		)
	}

	m.AddRows(row.New(3))

	label := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Left, Color: mutedGray}
	value := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Left}
	m.AddRows(
		row.New(6).Add(
			col.New(4).Add(text.New("PROJECT", label)),
			col.New(4).Add(text.New("CUSTOMER", label)),
			col.New(4).Add(text.New("REFERENCE", label)),
		),
		row.New(7).Add(
			col.New(4).Add(text.New(data.ProjectName, value)),
			col.New(4).Add(text.New(data.CustomerName, value)),
			col.New(4).Add(text.New(data.ReferenceNumber, value)),
		),
	)

	m.AddRows(row.New(4))
}

func addQuoteNote(m core.Maroto, note string) {
	if note == "" {
		return
	}
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(text.New(note, props.Text{
				Size:  8,
				Style: fontstyle.Italic,
				Align: align.Left,
			})),
		),
	)
	m.AddRows(row.New(3))
}

// addQuoteSection adds one section table. Unit prices and the tax columns
// are only printed when the template asks for them.
func addQuoteSection(m core.Maroto, s QuoteSection, tpl models.QuotationTemplate, accent props.Color) {
	headerCell := props.Cell{BackgroundColor: &accent}
	headerText := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Center, Color: white}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(text.New(strings.ToUpper(s.Title), props.Text{
				Size:  9,
				Style: fontstyle.Bold,
				Align: align.Left,
				Color: &accent,
			})),
		),
	)

	descWidth := 7
	if tpl.ShowUnitPrices {
		descWidth -= 2
	}
	if tpl.ShowTaxBreakdown {
		descWidth -= 2
	}

	header := row.New(8).Add(
		col.New(1).Add(text.New("#", headerText)).WithStyle(&headerCell),
		col.New(descWidth).Add(text.New("Description", headerTextLeft)).WithStyle(&headerCell),
		col.New(1).Add(text.New("Qty", headerText)).WithStyle(&headerCell),
	)
	if tpl.ShowUnitPrices {
		header = header.Add(col.New(2).Add(text.New("Unit Price", headerText)).WithStyle(&headerCell))
	}
	if tpl.ShowTaxBreakdown {
		header = header.Add(
			col.New(1).Add(text.New("GST%", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("GST Amt", headerText)).WithStyle(&headerCell),
		)
	}
	header = header.Add(col.New(3).Add(text.New("Amount", headerText)).WithStyle(&headerCell))
	m.AddRows(header)

	base := props.Text{Size: 7, Align: align.Center}
	left := base
	left.Align = align.Left
	right := base
	right.Align = align.Right
	stripe := &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 245, Blue: 245}}

	for i, l := range s.Lines {
		amount := l.BeforeTax
		if tpl.ShowTaxBreakdown {
			amount = l.Total
		}

		r := row.New(7).Add(
			col.New(1).Add(text.New(strconv.Itoa(i+1), base)),
			col.New(descWidth).Add(text.New(l.Label, left)),
			col.New(1).Add(text.New(strconv.Itoa(l.Qty), right)),
		)
		if tpl.ShowUnitPrices {
			unit := l.BeforeTax
			if l.Qty > 0 {
				unit = l.BeforeTax / float64(l.Qty)
			}
			r = r.Add(col.New(2).Add(text.New(FormatINR(unit), right)))
		}
		if tpl.ShowTaxBreakdown {
			r = r.Add(
				col.New(1).Add(text.New(fmt.Sprintf("%.0f%%", l.GSTPercent), base)),
				col.New(1).Add(text.New(FormatINR(l.GSTAmount), right)),
			)
		}
		r = r.Add(col.New(3).Add(text.New(FormatINR(amount), right)))
		if i%2 == 1 {
			r = r.WithStyle(stripe)
		}
		m.AddRows(r)
	}

	m.AddRows(row.New(4))
}

func addQuoteTotals(m core.Maroto, data QuotationData, accent props.Color) {
	summaryCell := &props.Cell{BackgroundColor: &props.Color{Red: 240, Green: 240, Blue: 240}}
	labelStyle := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}
	valueStyle := props.Text{Size: 8, Align: align.Right}

	rows := []struct {
		label string
		value float64
	}{
		{"Total Before Tax", data.Totals.TotalBeforeTax},
		{fmt.Sprintf("GST %.0f%%", data.Totals.GSTPercent), data.Totals.GSTAmount},
		{"Round Off", data.Totals.RoundOff},
	}
	for _, r := range rows {
		m.AddRows(
			row.New(7).Add(
				col.New(9).Add(text.New(r.label, labelStyle)).WithStyle(summaryCell),
				col.New(3).Add(text.New(FormatINR(r.value), valueStyle)).WithStyle(summaryCell),
			),
		)
	}

	grandCell := &props.Cell{BackgroundColor: &accent}
	grandStyle := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Color: white}
	m.AddRows(
		row.New(8).Add(
			col.New(9).Add(text.New("Grand Total", grandStyle)).WithStyle(grandCell),
			col.New(3).Add(text.New(FormatINR(data.Totals.GrandTotal), grandStyle)).WithStyle(grandCell),
		),
	)

	if data.Totals.AmountInWords != "" {
		m.AddRows(row.New(2))
		m.AddRows(
			row.New(8).Add(
				col.New(12).Add(
					text.New(fmt.Sprintf("Amount in Words: %s", data.Totals.AmountInWords), props.Text{
						Size:  8,
						Style: fontstyle.BoldItalic,
						Align: align.Left,
					}),
				),
			),
		)
	}

	m.AddRows(row.New(3))
}

// addQuoteTerms prints one row per non-empty line of the terms text.
func addQuoteTerms(m core.Maroto, terms string, accent props.Color) {
	if strings.TrimSpace(terms) == "" {
		return
	}

	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(text.New("TERMS & CONDITIONS", props.Text{
				Size:  8,
				Style: fontstyle.Bold,
				Align: align.Left,
				Color: &accent,
			})),
		),
	)

	termValue := props.Text{Size: 8, Align: align.Left}
	for _, line := range strings.Split(terms, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m.AddRows(row.New(6).Add(col.New(12).Add(text.New(line, termValue))))
	}

	m.AddRows(row.New(3))
}

// joinNonEmpty joins non-empty strings with the given separator.
func joinNonEmpty(parts []string, sep string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, sep)
}
