package grid

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX читает таблицу с активного листа; правила те же, что у ReadCSV.
func ReadXLSX(r io.Reader) (Grid, ImportReport, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Grid{}, ImportReport{}, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil {
		return Grid{}, ImportReport{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return fromRows(rows, nil)
}

// WriteXLSX выгружает таблицу в Excel: заголовок в A1, числа — числами.
func WriteXLSX(w io.Writer, g Grid) error {
	g = New(g.Type, g.Tiers)

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := make([]interface{}, 0, 3)
	for _, h := range g.header() {
		header = append(header, h)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := 2
	for _, t := range g.Tiers {
		var excelRow []interface{}
		if g.WidthOnly() {
			excelRow = []interface{}{t.Width, t.Price}
		} else {
			excelRow = []interface{}{t.Width, t.Drop, t.Price}
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
		row++
	}

	return f.Write(w)
}
