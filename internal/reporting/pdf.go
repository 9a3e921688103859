package reporting

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/aegisshield/irregular-report/internal/report"
)

// generatePDF renders a one-page summary for human review. It is not a
// regulatory submission format.
func (re *ReportEngine) generatePDF(r *report.Report) ([]byte, error) {
	cfg := re.config.PDF
	family := cfg.FontFamily
	if family == "" {
		family = "Arial"
	}
	size := float64(cfg.FontSize)
	if size <= 0 {
		size = 11
	}
	orientation := cfg.Orientation
	if orientation == "" {
		orientation = "P"
	}

	pdf := gofpdf.New(orientation, "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont(family, "B", size+5)
	pdf.Cell(0, 10, tr("Irregular Activity Report"))
	pdf.Ln(12)

	ev := &r.Event
	persons, corporates := countEntities(ev.Entities)

	rows := [][2]string{
		{"Report number", r.Metadata.ReportNumber},
		{"Report date", r.Metadata.ReportDate},
		{"Schema version", r.Version},
		{"Reporting entity", r.Source.ReportingEntityID},
		{"Reporting person", fullName(r.Source.ReportingPerson.FirstName, r.Source.ReportingPerson.LastName)},
		{"Event date", ev.EventDateTime},
		{"Persons", fmt.Sprint(persons)},
		{"Corporates", fmt.Sprint(corporates)},
		{"Accounts", fmt.Sprint(len(ev.Accounts))},
		{"Pledges", fmt.Sprint(len(ev.Pledges))},
		{"Transactions", fmt.Sprint(len(ev.Transactions))},
		{"Attachments", fmt.Sprint(len(ev.Attachments))},
	}

	for _, row := range rows {
		pdf.SetFont(family, "B", size)
		pdf.CellFormat(50, 7, tr(row[0]), "", 0, "L", false, 0, "")
		pdf.SetFont(family, "", size)
		pdf.CellFormat(0, 7, tr(row[1]), "", 1, "L", false, 0, "")
	}

	if ev.BriefDescription != "" {
		pdf.Ln(4)
		pdf.SetFont(family, "B", size)
		pdf.Cell(0, 7, tr("Brief description"))
		pdf.Ln(7)
		pdf.SetFont(family, "", size)
		pdf.MultiCell(0, 6, tr(ev.BriefDescription), "", "L", false)
	}

	return finalizePDF(pdf)
}

func finalizePDF(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func countEntities(entities []report.InvolvedEntity) (persons, corporates int) {
	for i := range entities {
		switch entities[i].Kind {
		case report.EntityKindPerson:
			persons++
		case report.EntityKindCorporate:
			corporates++
		}
	}
	return persons, corporates
}

func fullName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	}
	return first + " " + last
}
