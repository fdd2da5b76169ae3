// Package export renders researched company profiles into a formatted
// multi-sheet XLSX benchmark workbook: the main Benchmark table plus
// summary, competitive-positioning and German-market analysis sheets.
package export

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/oratio-tech/competitor-cli/internal/model"
)

const (
	benchmarkSheet   = "Benchmark"
	summarySheet     = "Summary Analysis"
	positioningSheet = "Competitive Positioning"
	germanSheet      = "German Market Focus"
)

// Cell fill colors (ARGB).
const (
	headerColor     = "FF366092"
	fillDirect      = "FFE8F5E8"
	fillIndirect    = "FFFFF2E8"
	fillChatbotYes  = "FFE8F8E8"
	fillChatbotNo   = "FFF8E8E8"
	fillStageMature = "FFE8E8F8"
	fillStageEarly  = "FFF0F0F8"
)

// Exporter writes a profile collection to a benchmark workbook.
type Exporter struct {
	now func() time.Time
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithClock overrides the timestamp source used on the summary sheet.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) {
		e.now = now
	}
}

// NewExporter creates an Exporter.
func NewExporter(opts ...Option) *Exporter {
	e := &Exporter{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Write renders the workbook for the given profiles to path.
func (e *Exporter) Write(profiles []model.Profile, path string) error {
	if len(profiles) == 0 {
		return eris.New("export: no profiles to export")
	}

	f := xlsx.NewFile()

	if err := writeBenchmark(f, profiles); err != nil {
		return err
	}
	if err := writeSummary(f, profiles, e.now()); err != nil {
		return err
	}
	if err := writePositioning(f, profiles); err != nil {
		return err
	}
	if err := writeGermanMarket(f, profiles); err != nil {
		return err
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "export: save workbook")
	}

	zap.L().Info("benchmark workbook written",
		zap.String("path", path),
		zap.Int("companies", len(profiles)))
	return nil
}

// benchmarkHeader returns the Benchmark sheet column headers: identity
// columns followed by the attribute labels in their fixed order.
func benchmarkHeader() []string {
	header := make([]string, 0, 2+len(model.AttributeLabels))
	header = append(header, "Competitor", "Website")
	return append(header, model.AttributeLabels...)
}

var columnWidths = map[string]float64{
	"Competitor":                  20,
	"Website":                     25,
	"Business Model":              15,
	"AI-Powered Legal Chatbot":    25,
	"Stage":                       15,
	"Fundraising stage":           18,
	"Multilingual Support":        20,
	"Mobile & Web Accessibility":  25,
	"API Integration":             15,
	"Free Tier":                   12,
	"Subscription-Based":          18,
	"Pricing":                     20,
	"Target Audience":             20,
	"User Base & Growth Rate":     25,
	"Partnerships & Integrations": 30,
	"Coverage":                    15,
	"Product":                     35,
	"Founding Team (/5)":          18,
	"Direct / Indirect":           18,
	"Comment":                     30,
}

func writeBenchmark(f *xlsx.File, profiles []model.Profile) error {
	sheet, err := f.AddSheet(benchmarkSheet)
	if err != nil {
		return eris.Wrap(err, "export: add benchmark sheet")
	}

	header := benchmarkHeader()
	addHeaderRow(sheet, header)

	aiCol := columnIndex(header, "AI-Powered Legal Chatbot")
	stageCol := columnIndex(header, "Stage")
	directCol := columnIndex(header, "Direct / Indirect")

	body := dataStyle()
	for _, p := range profiles {
		row := sheet.AddRow()
		values := append([]string{p.Competitor, p.Website}, p.Values()...)
		for col, value := range values {
			cell := row.AddCell()
			cell.Value = value
			if color := cellFill(col, value, aiCol, stageCol, directCol); color != "" {
				cell.SetStyle(fillStyle(color))
			} else {
				cell.SetStyle(body)
			}
		}
	}

	for col, label := range header {
		width, ok := columnWidths[label]
		if !ok {
			width = 15
		}
		sheet.SetColWidth(col, col, width)
	}
	return nil
}

// cellFill returns the highlight color for a cell, or "" for the plain
// data style.
func cellFill(col int, value string, aiCol, stageCol, directCol int) string {
	lower := strings.ToLower(value)
	switch col {
	case directCol:
		if strings.Contains(lower, "indirect") {
			return fillIndirect
		}
		if strings.Contains(lower, "direct") {
			return fillDirect
		}
	case aiCol:
		if strings.Contains(lower, "yes") {
			return fillChatbotYes
		}
		if strings.Contains(lower, "no") {
			return fillChatbotNo
		}
	case stageCol:
		if containsAny(lower, []string{"series c", "established", "growth"}) {
			return fillStageMature
		}
		if containsAny(lower, []string{"series a", "series b"}) {
			return fillStageEarly
		}
	}
	return ""
}

func addHeaderRow(sheet *xlsx.Sheet, labels []string) {
	style := headerStyle()
	row := sheet.AddRow()
	for _, label := range labels {
		cell := row.AddCell()
		cell.Value = label
		cell.SetStyle(style)
	}
}

func headerStyle() *xlsx.Style {
	s := xlsx.NewStyle()
	s.Font = *xlsx.NewFont(12, "Arial")
	s.Font.Bold = true
	s.Font.Color = "FFFFFFFF"
	s.Fill = *xlsx.NewFill("solid", headerColor, headerColor)
	s.Alignment = xlsx.Alignment{Horizontal: "center", Vertical: "center", WrapText: true}
	s.Border = *xlsx.NewBorder("thin", "thin", "thin", "thin")
	s.ApplyFont = true
	s.ApplyFill = true
	s.ApplyAlignment = true
	s.ApplyBorder = true
	return s
}

func dataStyle() *xlsx.Style {
	s := xlsx.NewStyle()
	s.Font = *xlsx.NewFont(10, "Arial")
	s.Alignment = xlsx.Alignment{Horizontal: "left", Vertical: "top", WrapText: true}
	s.Border = *xlsx.NewBorder("thin", "thin", "thin", "thin")
	s.ApplyFont = true
	s.ApplyAlignment = true
	s.ApplyBorder = true
	return s
}

func fillStyle(color string) *xlsx.Style {
	s := dataStyle()
	s.Fill = *xlsx.NewFill("solid", color, color)
	s.ApplyFill = true
	return s
}

func columnIndex(header []string, label string) int {
	for i, h := range header {
		if h == label {
			return i
		}
	}
	return -1
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
