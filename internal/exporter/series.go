package exporter

import (
	"fmt"
	"path/filepath"
	"strings"

	"epspulse/pkg/contracts/domain"
)

// SeriesExporter writes per-company aggregated and growth series to CSV.
type SeriesExporter struct {
	csvWriter *CSVWriter
}

// NewSeriesExporter creates a new series exporter.
func NewSeriesExporter(csvWriter *CSVWriter) *SeriesExporter {
	return &SeriesExporter{csvWriter: csvWriter}
}

// ExportCompany writes two files for one company into outputDir:
// <Company>_<granularity>.csv with the aggregated values and
// <Company>_<granularity>_growth.csv with the growth rates.
func (e *SeriesExporter) ExportCompany(outputDir, company string, granularity domain.Granularity,
	points []domain.AggregatedPoint, rates []domain.GrowthPoint) error {

	base := sanitizeFilename(company)

	valuesPath := filepath.Join(outputDir, fmt.Sprintf("%s_%s.csv", base, granularity))
	if err := e.csvWriter.WriteCSV(valuesPath, WriteOptions{
		Headers:   []string{"Period", "Date", "EPS", "SharePrice"},
		Records:   aggregatedRecords(points),
		BOMPrefix: true,
	}); err != nil {
		return fmt.Errorf("export %s values: %w", company, err)
	}

	growthPath := filepath.Join(outputDir, fmt.Sprintf("%s_%s_growth.csv", base, granularity))
	label := granularity.GrowthLabel()
	if err := e.csvWriter.WriteCSV(growthPath, WriteOptions{
		Headers:   []string{"Date", fmt.Sprintf("EPS %s Growth %%", label), fmt.Sprintf("Price %s Growth %%", label)},
		Records:   growthRecords(rates),
		BOMPrefix: true,
	}); err != nil {
		return fmt.Errorf("export %s growth: %w", company, err)
	}

	return nil
}

func aggregatedRecords(points []domain.AggregatedPoint) [][]string {
	records := make([][]string, 0, len(points))
	for _, p := range points {
		records = append(records, []string{
			p.Period.String(),
			p.Date.Format("2006-01-02"),
			formatNullable(p.EPS),
			formatNullable(p.SharePrice),
		})
	}
	return records
}

func growthRecords(rates []domain.GrowthPoint) [][]string {
	records := make([][]string, 0, len(rates))
	for _, r := range rates {
		records = append(records, []string{
			r.Date.Format("2006-01-02"),
			formatFloat(r.EPSGrowthPct),
			formatFloat(r.PriceGrowthPct),
		})
	}
	return records
}

// sanitizeFilename replaces path-hostile characters in a company name.
func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", " ", "_")
	return replacer.Replace(strings.TrimSpace(name))
}
