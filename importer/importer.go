// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/danielhkuo/quickvote/models"
)

var (
	ErrNoHeader          = errors.New("sheet has no header row")
	ErrUnsupportedFormat = errors.New("unsupported file format, upload .xlsx or .csv")
)

// Parse reads question drafts from an uploaded file, picking the decoder by
// file extension.
func Parse(filename string, r io.Reader) ([]models.QuestionInput, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return ParseWorkbook(r)
	case ".csv":
		return ParseCSV(r)
	default:
		return nil, ErrUnsupportedFormat
	}
}

// ParseWorkbook reads the first sheet of an .xlsx workbook.
func ParseWorkbook(r io.Reader) ([]models.QuestionInput, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet rows: %w", err)
	}

	return ParseRows(rows)
}

// ParseCSV reads a comma-separated sheet. Rows may have different lengths.
func ParseCSV(r io.Reader) ([]models.QuestionInput, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}

	return ParseRows(rows)
}

// columns holds the detected layout of a question sheet
type columns struct {
	number      int
	text        int
	optionStart int
}

// detectColumns maps header cells to question columns. Missing headers fall
// back to number=0, text=1, options=2; without an option header the options
// start after the later of the two question columns.
func detectColumns(header []string) columns {
	number, text, option := -1, -1, -1
	for i, cell := range header {
		h := strings.ToLower(strings.TrimSpace(cell))
		if number == -1 && (strings.Contains(h, "question no") || h == "no" || h == "no.") {
			number = i
		}
		if text == -1 && (h == "question" || strings.Contains(h, "question text")) {
			text = i
		}
		if option == -1 && (strings.Contains(h, "option") || strings.Contains(h, "choice")) {
			option = i
		}
	}

	cols := columns{number: number, text: text, optionStart: option}
	if cols.number == -1 {
		cols.number = 0
	}
	if cols.text == -1 {
		cols.text = 1
	}
	if option == -1 {
		cols.optionStart = max(cols.number, cols.text) + 1
	}
	return cols
}

// ParseRows converts sheet rows (header first) into question drafts.
func ParseRows(rows [][]string) ([]models.QuestionInput, error) {
	if len(rows) == 0 || isBlank(rows[0]) {
		return nil, ErrNoHeader
	}

	cols := detectColumns(rows[0])
	questions := []models.QuestionInput{}

	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}

		q := models.QuestionInput{
			QuestionID: i + 1,
			Text:       strings.TrimSpace(cell(row, cols.text)),
			Options:    []string{},
		}
		if n, err := strconv.Atoi(strings.TrimSpace(cell(row, cols.number))); err == nil && n > 0 {
			q.QuestionID = n
		}

		if cols.optionStart < len(row) {
			for _, opt := range row[cols.optionStart:] {
				if opt = strings.TrimSpace(opt); opt != "" {
					q.Options = append(q.Options, opt)
				}
			}
		}

		questions = append(questions, q)
	}

	return questions, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
