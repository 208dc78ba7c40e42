// Package export writes reviewed timecards to an XLSX workbook, one sheet per
// timecard with a header row, the day rows and a closing total row.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophtimecard/internal/client/models"
	"github.com/dmitrijs2005/gophtimecard/internal/filex"
	"github.com/dmitrijs2005/gophtimecard/internal/logging"
	"github.com/xuri/excelize/v2"
)

var ErrNothingToExport = errors.New("no timecards to export")

// Headers is the first row of every sheet.
var Headers = []string{"Day", "Time In", "Time Out", "Hours Worked"}

const (
	TotalLabel   = "Total"
	maxSheetName = 31
)

type Exporter struct {
	log logging.Logger
}

func New(log logging.Logger) *Exporter {
	return &Exporter{log: log}
}

// Workbook builds the workbook for cards. The caller owns the returned file
// and must Close it.
func (e *Exporter) Workbook(cards []models.Timecard) (*excelize.File, error) {
	if len(cards) == 0 {
		return nil, ErrNothingToExport
	}

	f := excelize.NewFile()
	used := map[string]bool{}

	for i, card := range cards {
		sheet := SheetName(card.Name, i, used)
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				f.Close()
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("new sheet %q: %w", sheet, err)
		}
		if err := writeSheet(f, sheet, card); err != nil {
			f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	return f, nil
}

// WriteTo streams the workbook for cards to w.
func (e *Exporter) WriteTo(ctx context.Context, w io.Writer, cards []models.Timecard) error {
	start := time.Now()

	f, err := e.Workbook(cards)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}

	e.log.Info(ctx, "export.write",
		"sheets", len(cards),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// SaveAs writes the workbook to path, replacing any existing file.
func (e *Exporter) SaveAs(ctx context.Context, path string, cards []models.Timecard) error {
	var buf bytes.Buffer
	if err := e.WriteTo(ctx, &buf, cards); err != nil {
		return err
	}
	if err := filex.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, card models.Timecard) error {
	set := func(col, row int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheet, cell, v)
	}

	for i, h := range Headers {
		if err := set(i+1, 1, h); err != nil {
			return fmt.Errorf("header: %w", err)
		}
	}

	row := 2
	for _, d := range card.Days {
		values := []any{d.Day, d.TimeIn, d.TimeOut, hoursValue(d.HoursWorked)}
		for col, v := range values {
			if v == "" {
				continue
			}
			if err := set(col+1, row, v); err != nil {
				return fmt.Errorf("row %d: %w", row, err)
			}
		}
		row++
	}

	if err := set(1, row, TotalLabel); err != nil {
		return err
	}
	if err := set(4, row, hoursValue(card.TotalHoursWorked)); err != nil {
		return err
	}

	if err := f.SetColWidth(sheet, "A", "C", 12); err != nil {
		return fmt.Errorf("column width: %w", err)
	}
	if err := f.SetColWidth(sheet, "D", "D", 14); err != nil {
		return fmt.Errorf("column width: %w", err)
	}
	return nil
}

// hoursValue stores numeric hours as numbers so spreadsheet formulas work;
// anything else is kept verbatim.
func hoursValue(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	return s
}

// SheetName derives a valid, unique sheet name from a worker name.
func SheetName(name string, index int, used map[string]bool) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	clean = strings.Trim(clean, "'")
	if clean == "" {
		clean = "Timecard " + strconv.Itoa(index+1)
	}
	clean = truncate(clean, maxSheetName)

	candidate := clean
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := " (" + strconv.Itoa(n) + ")"
		candidate = truncate(clean, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
