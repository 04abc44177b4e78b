// Package export writes a visitor's attempt history as a downloadable
// table, one row per attempt.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"langlab/internal/models"
)

var header = []string{"Lesson", "Accuracy", "Fluency", "Completeness", "Time"}

const timeLayout = "2006-01-02 15:04"

// WriteCSV writes the history as CSV, chronological order preserved
func WriteCSV(w io.Writer, history []models.AttemptResult) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range history {
		row := []string{
			r.LessonKey,
			strconv.Itoa(r.Accuracy),
			strconv.Itoa(r.Fluency),
			strconv.Itoa(r.Completeness),
			r.At.Format(timeLayout),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the same rows as a spreadsheet with a bold header
func WriteXLSX(w io.Writer, history []models.AttemptResult) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "History"
	f.SetSheetName("Sheet1", sheet)

	for col, name := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return fmt.Errorf("set header cell: %w", err)
		}
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		f.SetRowStyle(sheet, 1, 1, style)
	}

	for i, r := range history {
		row := i + 2
		values := []interface{}{r.LessonKey, r.Accuracy, r.Fluency, r.Completeness, r.At.Format(timeLayout)}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("set data cell: %w", err)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
