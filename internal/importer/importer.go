// Package importer parses vocabulary spreadsheets into words
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ltalk/backend/internal/models"
	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for files that are neither .xlsx nor .csv
var ErrUnsupportedFormat = errors.New("unsupported file format, expected .xlsx or .csv")

// Format is a supported spreadsheet format
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// Result holds parsed words and per-row problems
type Result struct {
	Words     []models.Word `json:"words"`
	Errors    []string      `json:"errors"`
	TotalRows int           `json:"totalRows"`
}

// FormatFromFilename detects the spreadsheet format by file extension
func FormatFromFilename(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// Parse reads words from a spreadsheet
//
// Rows are "word, infinitive, translation" or "word, translation"; a header row
// starting with "word" is skipped, as are empty rows. Rows without a word or a
// translation are reported in Result.Errors.
func Parse(r io.Reader, format Format) (*Result, error) {
	var (
		rows [][]string
		err  error
	)
	switch format {
	case FormatXLSX:
		rows, err = readExcel(r)
	case FormatCSV:
		rows, err = readCSV(r)
	default:
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}

	result := &Result{
		Words:  make([]models.Word, 0, len(rows)),
		Errors: make([]string, 0),
	}
	for i, row := range rows {
		if isEmptyRow(row) {
			continue
		}
		if i == 0 && strings.EqualFold(strings.TrimSpace(row[0]), "word") {
			continue
		}

		result.TotalRows++
		word, err := parseRow(row)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
			continue
		}
		result.Words = append(result.Words, word)
	}

	return result, nil
}

func readExcel(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}

func parseRow(row []string) (models.Word, error) {
	cells := make([]string, len(row))
	for i, cell := range row {
		cells[i] = strings.TrimSpace(cell)
	}

	var word models.Word
	switch {
	case len(cells) >= 3:
		word = models.Word{Word: cells[0], Infinitive: cells[1], Translation: cells[2]}
	case len(cells) == 2:
		word = models.Word{Word: cells[0], Translation: cells[1]}
	default:
		return models.Word{}, fmt.Errorf("expected at least 2 columns, got %d", len(cells))
	}

	if word.Word == "" {
		return models.Word{}, fmt.Errorf("word is empty")
	}
	if word.Translation == "" {
		return models.Word{}, fmt.Errorf("translation is empty")
	}
	if word.Infinitive == "" {
		word.Infinitive = word.Word
	}
	return word, nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
