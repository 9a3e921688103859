package reporting

import (
	"bytes"
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/aegisshield/irregular-report/internal/report"
)

const partiesSheet = "Parties"

var transactionHeaders = []string{
	"Transaction ID", "Date", "Type", "Local Amount", "Local Currency",
	"Original Amount", "Original Currency", "Committed", "Reported Before", "Comment",
}

var partyHeaders = []string{"Entity ID", "Kind", "Name", "ID Number", "ID Country"}

// generateExcel renders a workbook with a transaction schedule and a list
// of involved parties.
func (re *ReportEngine) generateExcel(r *report.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := re.config.Excel.SheetName
	if sheetName == "" {
		sheetName = "Transactions"
	}
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if _, err := f.NewSheet(partiesSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	if err := writeRow(f, sheetName, 1, toCells(transactionHeaders)); err != nil {
		return nil, err
	}
	for i := range r.Event.Transactions {
		tx := &r.Event.Transactions[i]
		row := []interface{}{
			tx.LocalID.String(),
			tx.Date,
			intCell(tx.TransactionTypeID),
			floatCell(tx.LocalCurrency.Amount),
			tx.LocalCurrency.CurrencyCode,
			floatCell(tx.OriginalCurrency.Amount),
			tx.OriginalCurrency.CurrencyCode,
			boolCell(tx.IsCommitted),
			boolCell(tx.ReportedBefore),
			tx.Comment,
		}
		if err := writeRow(f, sheetName, i+2, row); err != nil {
			return nil, err
		}
	}

	if err := writeRow(f, partiesSheet, 1, toCells(partyHeaders)); err != nil {
		return nil, err
	}
	row := 2
	for i := range r.Event.Entities {
		e := &r.Event.Entities[i]
		base := e.Base()
		if base == nil {
			continue
		}
		var name string
		switch e.Kind {
		case report.EntityKindPerson:
			name = fullName(e.Person.FirstName, e.Person.LastName)
		case report.EntityKindCorporate:
			name = e.Corporate.Name
		}
		cells := []interface{}{base.LocalID.String(), string(e.Kind), name, base.Identity.Number, base.Identity.Country}
		if err := writeRow(f, partiesSheet, row, cells); err != nil {
			return nil, err
		}
		row++
	}

	return finalizeExcel(f)
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", row, sheet, err)
	}
	return nil
}

func finalizeExcel(f *excelize.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func toCells(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func intCell(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func floatCell(v *float64) interface{} {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}
	return *v
}

func boolCell(v *bool) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
