// Package exporter writes chart-ready series to CSV files.
//
// CSVWriter is the core writer: headers plus records, with an optional UTF-8
// BOM so Excel opens the files correctly. SeriesExporter builds on it to
// write one aggregated-values file and one growth-rates file per company.
//
// Example usage:
//
//	writer := exporter.NewCSVWriter()
//	se := exporter.NewSeriesExporter(writer)
//	err := se.ExportCompany(outDir, "Acme", domain.Quarterly, points, rates)
package exporter
