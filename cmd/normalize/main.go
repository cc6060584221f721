// Command normalize runs the sales normalization pipeline in batch mode:
// it reads a CSV or XLSX file, writes the normalized table as CSV with a
// UTF-8 BOM, and optionally prints the KPI aggregates.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"salesboard/internal/config"
	"salesboard/internal/dataprocessing"
	"salesboard/internal/exporter"
	"salesboard/internal/infrastructure"
)

func main() {
	inPath := flag.String("in", "", "input sales file (.csv or .xlsx)")
	outPath := flag.String("out", "normalized_sales.csv", "output CSV file")
	showKPIs := flag.Bool("kpis", false, "print KPI aggregates after normalizing")
	flag.Parse()

	logger, err := infrastructure.InitializeLogger(config.LoggingConfig{Level: "info", Output: "console"})
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}

	if *inPath == "" {
		logger.Error("missing required -in flag")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(context.Background(), logger, *inPath, *outPath, *showKPIs); err != nil {
		logger.Error("normalization failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, inPath, outPath string, showKPIs bool) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer in.Close()

	raw, err := dataprocessing.Load(in, inPath)
	if err != nil {
		return err
	}

	table, err := dataprocessing.NewNormalizer(logger).Normalize(ctx, raw)
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer out.Close()

	if err := exporter.WriteTable(out, table); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	logger.Info("normalization complete",
		slog.String("input", inPath),
		slog.String("output", outPath),
		slog.Int("rows", table.Len()),
		slog.Int("dropped_rows", table.DroppedRows))

	if showKPIs {
		kpis := dataprocessing.NewSummarizer(logger).Summarize(ctx, table)
		fmt.Printf("total sales:   %.0f\n", kpis.TotalSales)
		fmt.Printf("mean sales:    %.0f\n", kpis.MeanSales)
		fmt.Printf("best month:    %s (%.0f)\n", kpis.BestPeriod, kpis.BestSales)
		fmt.Printf("worst month:   %s (%.0f)\n", kpis.WorstPeriod, kpis.WorstSales)
	}

	return nil
}
