// Package export renders a tabular sheet as an XLSX workbook or a PDF document.
package export

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"
)

var ErrNoColumns = errors.New("export: sheet has no columns")

// Sheet is a titled table. Every row should have len(Headers) cells.
type Sheet struct {
	Name     string
	Title    string
	Subtitle string
	Headers  []string
	Rows     [][]string
}

func (s Sheet) sheetName() string {
	name := s.Name
	if name == "" {
		name = "Sheet1"
	}
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}

// XLSX renders the sheet as a workbook: title, subtitle, a blank row, then a
// bold header row followed by the data rows.
func XLSX(s Sheet) ([]byte, error) {
	if len(s.Headers) == 0 {
		return nil, ErrNoColumns
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := s.sheetName()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, fmt.Errorf("failed to create title style: %w", err)
	}

	if err := f.SetCellValue(sheet, "A1", s.Title); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", titleStyle); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheet, "A2", s.Subtitle); err != nil {
		return nil, err
	}

	const headerRow = 4
	if err := f.SetSheetRow(sheet, cell(1, headerRow), &s.Headers); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}
	if err := f.SetCellStyle(sheet, cell(1, headerRow), cell(len(s.Headers), headerRow), bold); err != nil {
		return nil, err
	}

	for i, row := range s.Rows {
		if err := f.SetSheetRow(sheet, cell(1, headerRow+1+i), &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 28); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// PDF renders the sheet as a landscape A4 table. The first column is twice as
// wide as the others.
func PDF(s Sheet) ([]byte, error) {
	if len(s.Headers) == 0 {
		return nil, ErrNoColumns
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(8, 10, 8)
	pdf.SetAutoPageBreak(true, 10)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, s.Title)
	pdf.Ln(8)
	if s.Subtitle != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.Cell(0, 6, s.Subtitle)
		pdf.Ln(8)
	}

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	unit := (pageWidth - left - right) / float64(len(s.Headers)+1)
	width := func(col int) float64 {
		if col == 0 {
			return unit * 2
		}
		return unit
	}

	header := func() {
		pdf.SetFont("Helvetica", "B", 7)
		pdf.SetFillColor(230, 230, 230)
		for i, h := range s.Headers {
			pdf.CellFormat(width(i), 6, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 7)
	}
	header()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, row := range s.Rows {
		if pdf.GetY()+6 > pageHeight-bottom {
			pdf.AddPage()
			header()
		}
		for i := range s.Headers {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			align := "C"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(width(i), 6, value, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
