package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"epspulse/pkg/contracts/domain"
)

// LoadCSVGrid reads a CSV file into a RawGrid. The first record is the
// header row. Blank cells and blank records are preserved; ragged rows are
// accepted and read as blank-padded.
func LoadCSVGrid(path string) (domain.RawGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.RawGrid{}, fmt.Errorf("open csv file: %w", err)
	}
	defer f.Close()

	grid, err := ReadCSVGrid(f)
	if err != nil {
		return domain.RawGrid{}, fmt.Errorf("read %s: %w", path, err)
	}
	return grid, nil
}

// ReadCSVGrid reads CSV data from r into a RawGrid.
func ReadCSVGrid(r io.Reader) (domain.RawGrid, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return domain.RawGrid{}, fmt.Errorf("empty input: no header row")
	}
	if err != nil {
		return domain.RawGrid{}, fmt.Errorf("read header row: %w", err)
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return domain.RawGrid{}, fmt.Errorf("read row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, record)
	}

	return domain.RawGrid{Headers: header, Rows: rows}, nil
}

// LoadExcelGrid reads one sheet of an XLSX workbook into a RawGrid. An empty
// sheet name selects the first sheet. Row 0 is the header row; excelize
// already trims trailing empty cells, which RawGrid treats as blanks.
func LoadExcelGrid(path, sheet string) (domain.RawGrid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return domain.RawGrid{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return domain.RawGrid{}, fmt.Errorf("workbook %s has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return domain.RawGrid{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return domain.RawGrid{}, fmt.Errorf("sheet %q is empty: no header row", sheet)
	}

	return domain.RawGrid{Headers: rows[0], Rows: rows[1:]}, nil
}
