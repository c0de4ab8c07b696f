package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"forex-dashboard/internal/artifact"
	"forex-dashboard/internal/dashboard"
	"forex-dashboard/internal/reporting"
)

func main() {
	// Parse flags
	artifactDir := flag.String("artifact-dir", "data", "Directory containing the backtest artifact JSON files")
	outputDir := flag.String("output-dir", "docs", "Output directory for generated files")
	fixedTime := flag.String("generated-at", "", "Override report timestamp (RFC3339) for deterministic output")
	flag.Parse()

	ctx := context.Background()

	// Load artifacts from disk
	loader := artifact.NewLoader(artifact.LoaderOptions{
		Source: artifact.NewFilesystemSource(*artifactDir),
	})
	svc := dashboard.New(dashboard.Options{Loader: loader})
	if err := svc.LoadAll(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading artifacts: %v\n", err)
		os.Exit(1)
	}
	if dropped := svc.DroppedPairs(); len(dropped) > 0 {
		for _, d := range dropped {
			fmt.Fprintf(os.Stderr, "Warning: dropped pair %s: %s\n", d.PairID, d.Reason)
		}
	}

	// Generate report, with a fixed clock when requested
	gen := reporting.NewGenerator(svc)
	if *fixedTime != "" {
		ts, err := time.Parse(time.RFC3339, *fixedTime)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid --generated-at: %v\n", err)
			os.Exit(1)
		}
		gen = gen.WithClock(func() time.Time { return ts })
	}

	report, err := gen.Generate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating report: %v\n", err)
		os.Exit(1)
	}

	// Write output files
	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	mdPath := filepath.Join(*outputDir, "REPORT.md")
	if err := os.WriteFile(mdPath, []byte(reporting.RenderMarkdown(report)), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", mdPath, err)
		os.Exit(1)
	}

	csvPath := filepath.Join(*outputDir, "PAIR_METRICS.csv")
	if err := os.WriteFile(csvPath, []byte(reporting.RenderCSV(report.PairRows)), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", csvPath, err)
		os.Exit(1)
	}

	fmt.Println("Dashboard report generated successfully:")
	fmt.Printf("  - %s\n", mdPath)
	fmt.Printf("  - %s\n", csvPath)
}
