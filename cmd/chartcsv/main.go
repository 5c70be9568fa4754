package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"epspulse/internal/config"
	"epspulse/internal/dataprocessing"
	"epspulse/internal/exporter"
	"epspulse/internal/growth"
	"epspulse/internal/infrastructure"
	"epspulse/internal/validation"
	"epspulse/pkg/contracts/domain"
)

func main() {
	in := flag.String("in", "", "input file with the wide-format company grid")
	format := flag.String("format", "csv", "input format: csv | xlsx")
	sheet := flag.String("sheet", "", "worksheet name for xlsx input (defaults to the first sheet)")
	out := flag.String("out", "charts", "output directory for per-company csv files")
	granularity := flag.String("granularity", "quarterly", "aggregation granularity: quarterly | annual")
	from := flag.Int("from", 0, "first year to include (0 = series start)")
	to := flag.Int("to", 0, "last year to include (0 = series end)")
	company := flag.String("company", "", "export a single company (empty = all)")
	flag.Parse()

	logger, err := infrastructure.InitializeLogger(consoleLogConfig())
	if err != nil {
		slog.Warn("failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	if *in == "" {
		logger.Error("missing required -in flag")
		flag.Usage()
		os.Exit(1)
	}

	gran, ok := domain.ParseGranularity(*granularity)
	if !ok {
		logger.Error("invalid granularity", slog.String("granularity", *granularity))
		os.Exit(1)
	}

	logger.Info("starting chart export",
		slog.String("input", *in),
		slog.String("format", *format),
		slog.String("output_dir", *out),
		slog.String("granularity", string(gran)))

	if err := run(logger, *in, *format, *sheet, *out, *company, gran, *from, *to); err != nil {
		logger.Error("chart export failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger, in, format, sheet, out, company string,
	gran domain.Granularity, from, to int) error {

	validator := validation.NewFileValidator(logger)

	var grid domain.RawGrid
	var err error
	switch format {
	case "xlsx":
		if err := validator.ValidateExcelFile(in); err != nil {
			return err
		}
		grid, err = dataprocessing.LoadExcelGrid(in, sheet)
	case "csv":
		if err := validator.ValidateCSVFile(in); err != nil {
			return err
		}
		grid, err = dataprocessing.LoadCSVGrid(in)
	default:
		return fmt.Errorf("unknown input format %q", format)
	}
	if err != nil {
		return fmt.Errorf("load grid: %w", err)
	}
	if err := validator.ValidateOutputDirectory(out); err != nil {
		return err
	}

	dataset, err := dataprocessing.BuildDataset(context.Background(), grid, logger)
	if err != nil {
		return fmt.Errorf("build dataset: %w", err)
	}

	names := dataset.Order
	if company != "" {
		if _, ok := dataset.Company(company); !ok {
			return fmt.Errorf("company %q not found in input", company)
		}
		names = []string{company}
	}

	seriesExporter := exporter.NewSeriesExporter(exporter.NewCSVWriter(logger))

	exported := 0
	for _, name := range names {
		series, _ := dataset.Company(name)

		params := growth.Params{
			StartYear:   from,
			EndYear:     to,
			Granularity: gran,
			Now:         time.Now(),
		}
		if params.StartYear == 0 {
			params.StartYear = series.MinYear()
		}
		if params.EndYear == 0 {
			params.EndYear = series.MaxYear()
		}

		points := growth.Aggregate(series, params)
		if len(points) == 0 {
			logger.Warn("no data points in range, skipping",
				slog.String("company", name))
			continue
		}
		rates := growth.Rates(points)

		if err := seriesExporter.ExportCompany(out, name, gran, points, rates); err != nil {
			return fmt.Errorf("export %s: %w", name, err)
		}
		exported++
		logger.Info("company exported",
			slog.String("company", name),
			slog.Int("points", len(points)),
			slog.Int("growth_points", len(rates)))
	}

	logger.Info("chart export complete",
		slog.Int("companies", exported),
		slog.String("output_dir", out))
	return nil
}

func consoleLogConfig() config.LoggingConfig {
	return config.LoggingConfig{
		Level:  "info",
		Format: "text",
		Output: "console",
	}
}
