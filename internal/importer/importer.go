// Package importer bulk loads addresses from CSV or XLSX files.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"address-api/internal/models"
	"address-api/internal/validation"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrUnsupportedFormat is returned for files that are neither .csv nor .xlsx.
	ErrUnsupportedFormat = errors.New("importer: unsupported file format")
	// ErrInvalidRows is returned when rows fail validation and skipping is disabled.
	ErrInvalidRows = errors.New("importer: file contains invalid rows")
)

var requiredColumns = []string{"name", "latitude", "longitude"}

// Row is one data line of an import file.
type Row struct {
	Line  int
	Input models.AddressInput
}

// RowError ties a rejected row to its line number.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Store is the part of the repository the importer writes through.
type Store interface {
	EnsureSchema(ctx context.Context) error
	InsertBatch(ctx context.Context, addresses []models.Address) (int64, error)
}

// Result summarizes an import run.
type Result struct {
	Read     int
	Imported int64
	Rejected []RowError
}

// Options controls an import run.
type Options struct {
	Sheet       string // XLSX sheet; the first sheet when empty
	SkipInvalid bool
	DryRun      bool
}

// Import reads path, validates every row and bulk inserts the valid ones.
func Import(ctx context.Context, store Store, path string, opts Options) (Result, error) {
	rows, err := ReadFile(path, opts.Sheet)
	if err != nil {
		return Result{}, err
	}

	valid, rejected := Validate(rows)
	result := Result{Read: len(rows), Rejected: rejected}
	if len(rejected) > 0 && !opts.SkipInvalid {
		return result, fmt.Errorf("%w: %d of %d rejected, first: %v", ErrInvalidRows, len(rejected), len(rows), rejected[0])
	}
	if opts.DryRun || len(valid) == 0 {
		return result, nil
	}

	if err := store.EnsureSchema(ctx); err != nil {
		return result, err
	}
	imported, err := store.InsertBatch(ctx, valid)
	if err != nil {
		return result, err
	}
	result.Imported = imported

	return result, nil
}

// Validate runs every row through the address validation rules.
func Validate(rows []Row) ([]models.Address, []RowError) {
	valid := make([]models.Address, 0, len(rows))
	var rejected []RowError
	for _, row := range rows {
		addr, err := validation.ValidateAddress(row.Input)
		if err != nil {
			rejected = append(rejected, RowError{Line: row.Line, Err: err})
			continue
		}
		valid = append(valid, addr)
	}
	return valid, rejected
}

// ReadFile dispatches on the file extension.
func ReadFile(path, sheet string) ([]Row, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("importer: failed to open file: %w", err)
		}
		defer file.Close()
		return ReadCSV(file)
	case ".xlsx":
		return ReadXLSX(path, sheet)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ReadCSV parses a CSV stream whose header names the name, latitude and longitude columns.
func ReadCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.TrimLeadingSpace = true

	var records [][]string
	var lines []int
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("importer: failed to read csv: %w", err)
		}
		line, _ := reader.FieldPos(0)
		records = append(records, record)
		lines = append(lines, line)
	}

	return parseRecords(records, lines)
}

// ReadXLSX parses the given sheet of an Excel workbook.
func ReadXLSX(path, sheet string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("importer: failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("importer: failed to read sheet %q: %w", sheet, err)
	}

	lines := make([]int, len(records))
	for i := range records {
		lines[i] = i + 1
	}

	return parseRecords(records, lines)
}

// parseRecords maps data records to rows; lines holds the source line of each record.
func parseRecords(records [][]string, lines []int) ([]Row, error) {
	if len(records) == 0 {
		return nil, errors.New("importer: missing header row")
	}

	index, err := headerIndex(records[0])
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(records)-1)
	for i, record := range records[1:] {
		if isBlank(record) {
			continue
		}
		rows = append(rows, Row{
			Line: lines[i+1],
			Input: models.AddressInput{
				Name:      cell(record, index["name"]),
				Latitude:  parseCoord(cell(record, index["latitude"])),
				Longitude: parseCoord(cell(record, index["longitude"])),
			},
		})
	}

	return rows, nil
}

func headerIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("importer: header is missing column %q", col)
		}
	}
	return index, nil
}

func cell(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// parseCoord accepts both dot and comma decimal separators. Unparseable
// values become nil so validation reports the column as missing.
func parseCoord(val string) *float64 {
	val = strings.ReplaceAll(val, ",", ".")
	if val == "" {
		return nil
	}
	v, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return nil
	}
	return &v
}

func isBlank(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
