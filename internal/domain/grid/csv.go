package grid

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// ImportReport — сколько строк прочитали, приняли и отбросили.
type ImportReport struct {
	Rows     int   `json:"rows"`
	Imported int   `json:"imported"`
	Headers  int   `json:"headers"`
	Skipped  []int `json:"skipped,omitempty"` // номера строк файла (с 1), отброшенные как битые
}

// ReadCSV читает таблицу "width,price" или "width,drop,price".
// Строка, где первая колонка не число, считается заголовком и пропускается.
// Битые строки отбрасываются, импорт целиком не падает.
func ReadCSV(r io.Reader) (Grid, ImportReport, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var (
		rows  [][]string
		lines []int
		bad   []int
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				// одну кривую строку пропускаем, дальше читаем
				bad = append(bad, pe.StartLine)
				continue
			}
			return Grid{}, ImportReport{}, fmt.Errorf("read csv: %w", err)
		}
		line, _ := cr.FieldPos(0)
		rows = append(rows, rec)
		lines = append(lines, line)
	}

	g, rep, err := fromRows(rows, lines)
	if len(bad) > 0 {
		rep.Rows += len(bad)
		rep.Skipped = append(rep.Skipped, bad...)
		sort.Ints(rep.Skipped)
	}
	return g, rep, err
}

// fromRows общий разбор для CSV и XLSX. lines — номера строк файла;
// nil значит "по порядку с 1".
func fromRows(rows [][]string, lines []int) (Grid, ImportReport, error) {
	rep := ImportReport{}
	var (
		gtype Type
		tiers []Tier
	)

	for i, row := range rows {
		cells := trimTrailingEmpty(row)
		if len(cells) == 0 {
			continue
		}
		rep.Rows++
		line := i + 1
		if lines != nil {
			line = lines[i]
		}

		if _, ok := parseNumber(cells[0]); !ok {
			rep.Headers++
			continue
		}

		if gtype == "" {
			if len(cells) >= 3 {
				gtype = TypeWidthDrop
			} else {
				gtype = TypeWidth
			}
		}

		tier, ok := parseTier(gtype, cells)
		if !ok {
			rep.Skipped = append(rep.Skipped, line)
			continue
		}
		tiers = append(tiers, tier)
		rep.Imported++
	}

	if len(tiers) == 0 {
		return Grid{}, rep, ErrEmpty
	}
	return New(gtype, tiers), rep, nil
}

func parseTier(gtype Type, cells []string) (Tier, bool) {
	need := 2
	if gtype == TypeWidthDrop {
		need = 3
	}
	if len(cells) < need {
		return Tier{}, false
	}

	vals := make([]float64, need)
	for i := 0; i < need; i++ {
		v, ok := parseNumber(cells[i])
		if !ok || v < 0 {
			return Tier{}, false
		}
		vals[i] = v
	}
	if vals[0] <= 0 {
		return Tier{}, false
	}

	if gtype == TypeWidth {
		return Tier{Width: vals[0], Price: vals[1]}, true
	}
	if vals[1] <= 0 {
		return Tier{}, false
	}
	return Tier{Width: vals[0], Drop: vals[1], Price: vals[2]}, true
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func trimTrailingEmpty(row []string) []string {
	n := len(row)
	for n > 0 && strings.TrimSpace(row[n-1]) == "" {
		n--
	}
	return row[:n]
}

// header колонок для выгрузки.
func (g Grid) header() []string {
	if g.WidthOnly() {
		return []string{"width", "price"}
	}
	return []string{"width", "drop", "price"}
}

func (g Grid) record(t Tier) []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	if g.WidthOnly() {
		return []string{f(t.Width), f(t.Price)}
	}
	return []string{f(t.Width), f(t.Drop), f(t.Price)}
}

// WriteCSV выгружает таблицу с заголовком, строки в порядке порогов.
func WriteCSV(w io.Writer, g Grid) error {
	g = New(g.Type, g.Tiers)
	cw := csv.NewWriter(w)
	if err := cw.Write(g.header()); err != nil {
		return err
	}
	for _, t := range g.Tiers {
		if err := cw.Write(g.record(t)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
