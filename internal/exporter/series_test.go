package exporter

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"epspulse/pkg/contracts/domain"
)

func floatPtr(v float64) *float64 { return &v }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// Strip the BOM before parsing.
	content := strings.TrimPrefix(string(data), "\xef\xbb\xbf")
	records, err := csv.NewReader(strings.NewReader(content)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestExportCompany(t *testing.T) {
	dir := t.TempDir()
	se := NewSeriesExporter(NewCSVWriter(testLogger()))

	points := []domain.AggregatedPoint{
		{
			Period:     domain.Period{Year: 2021, Quarter: 1},
			Date:       time.Date(2021, 3, 31, 23, 59, 59, 0, time.UTC),
			EPS:        floatPtr(1.0),
			SharePrice: floatPtr(10),
		},
		{
			Period:     domain.Period{Year: 2021, Quarter: 2},
			Date:       time.Date(2021, 6, 30, 23, 59, 59, 0, time.UTC),
			EPS:        nil,
			SharePrice: floatPtr(12.5),
		},
	}
	rates := []domain.GrowthPoint{
		{Date: time.Date(2021, 6, 30, 0, 0, 0, 0, time.UTC), EPSGrowthPct: 20, PriceGrowthPct: 25},
	}

	require.NoError(t, se.ExportCompany(dir, "Acme Corp", domain.Quarterly, points, rates))

	values := readCSV(t, filepath.Join(dir, "Acme_Corp_quarterly.csv"))
	require.Len(t, values, 3)
	assert.Equal(t, []string{"Period", "Date", "EPS", "SharePrice"}, values[0])
	assert.Equal(t, []string{"2021Q1", "2021-03-31", "1", "10"}, values[1])
	assert.Equal(t, []string{"2021Q2", "2021-06-30", "", "12.5"}, values[2])

	growth := readCSV(t, filepath.Join(dir, "Acme_Corp_quarterly_growth.csv"))
	require.Len(t, growth, 2)
	assert.Equal(t, []string{"Date", "EPS QoQ Growth %", "Price QoQ Growth %"}, growth[0])
	assert.Equal(t, []string{"2021-06-30", "20", "25"}, growth[1])
}

func TestExportCompanyEmptySeries(t *testing.T) {
	dir := t.TempDir()
	se := NewSeriesExporter(NewCSVWriter(testLogger()))

	require.NoError(t, se.ExportCompany(dir, "Empty", domain.Annual, nil, nil))

	values := readCSV(t, filepath.Join(dir, "Empty_annual.csv"))
	require.Len(t, values, 1, "header row only")
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{"zero", 0, "0"},
		{"integer", 20, "20"},
		{"trailing zeros trimmed", 12.500000, "12.5"},
		{"negative", -25.25, "-25.25"},
		{"six decimals kept", 1.123456, "1.123456"},
		{"seventh decimal rounded", 1.1234567, "1.123457"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatFloat(tt.input))
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "A_B_C", sanitizeFilename("A/B C"))
	assert.Equal(t, "Acme", sanitizeFilename("  Acme  "))
}
