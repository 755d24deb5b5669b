// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package importer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/danielhkuo/quickvote/models"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseWorkbook(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"Question No.", "Question", "Option 1", "Option 2", "Option 3"},
		{1, "Favorite language?", "Go", "Rust", "Zig"},
		{2, "Tabs or spaces?", "Tabs", "Spaces"},
	})

	questions, err := ParseWorkbook(buf)
	require.NoError(t, err)

	assert.Equal(t, []models.QuestionInput{
		{QuestionID: 1, Text: "Favorite language?", Options: []string{"Go", "Rust", "Zig"}},
		{QuestionID: 2, Text: "Tabs or spaces?", Options: []string{"Tabs", "Spaces"}},
	}, questions)
}

func TestParseWorkbook_Garbage(t *testing.T) {
	_, err := ParseWorkbook(strings.NewReader("not a zip archive"))
	assert.Error(t, err)
}

func TestParseRows_HeaderHeuristics(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]string
		expected []models.QuestionInput
	}{
		{
			name: "reordered columns with choice header",
			rows: [][]string{
				{"Question Text", "No", "Choice A", "Choice B"},
				{"Best editor?", "7", "vim", "emacs"},
			},
			expected: []models.QuestionInput{
				{QuestionID: 7, Text: "Best editor?", Options: []string{"vim", "emacs"}},
			},
		},
		{
			name: "unlabeled headers fall back to positions",
			rows: [][]string{
				{"#", "Prompt", "A", "B"},
				{"3", "Coffee?", "Yes", "No"},
			},
			expected: []models.QuestionInput{
				{QuestionID: 3, Text: "Coffee?", Options: []string{"Yes", "No"}},
			},
		},
		{
			name: "options follow the later question column",
			rows: [][]string{
				{"Extra", "Question No", "Notes", "Question", "A", "B"},
				{"x", "1", "skip", "Which?", "left", "right"},
			},
			expected: []models.QuestionInput{
				{QuestionID: 1, Text: "Which?", Options: []string{"left", "right"}},
			},
		},
		{
			name: "empty option cells dropped",
			rows: [][]string{
				{"No.", "Question", "Option 1", "Option 2", "Option 3"},
				{"1", "Pick", "", "b", "  "},
			},
			expected: []models.QuestionInput{
				{QuestionID: 1, Text: "Pick", Options: []string{"b"}},
			},
		},
		{
			name: "non-numeric number uses row position and blank rows are skipped",
			rows: [][]string{
				{"Question No", "Question", "Option"},
				{"", "", ""},
				{"Q-b", "Second", "y"},
			},
			expected: []models.QuestionInput{
				{QuestionID: 2, Text: "Second", Options: []string{"y"}},
			},
		},
		{
			name: "short rows",
			rows: [][]string{
				{"Question No", "Question", "Option 1"},
				{"4"},
			},
			expected: []models.QuestionInput{
				{QuestionID: 4, Text: "", Options: []string{}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			questions, err := ParseRows(tt.rows)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, questions)
		})
	}
}

func TestParseRows_NoHeader(t *testing.T) {
	_, err := ParseRows(nil)
	assert.ErrorIs(t, err, ErrNoHeader)

	_, err = ParseRows([][]string{{"", " "}})
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestParse_ByExtension(t *testing.T) {
	csvData := "Question No,Question,Option 1,Option 2\n1,Lunch?,Pizza,Salad\n"

	questions, err := Parse("questions.CSV", strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, []string{"Pizza", "Salad"}, questions[0].Options)

	buf := buildWorkbook(t, [][]interface{}{
		{"Question No", "Question", "Option 1"},
		{1, "Only", "one"},
	})
	questions, err = Parse("survey.xlsx", buf)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "Only", questions[0].Text)

	_, err = Parse("survey.pdf", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParseCSV_RaggedRows(t *testing.T) {
	csvData := "No,Question,Option 1,Option 2,Option 3\n1,A?,x,y,z\n2,B?,x\n"

	questions, err := ParseCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Len(t, questions[0].Options, 3)
	assert.Len(t, questions[1].Options, 1)
}
