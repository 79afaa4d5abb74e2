package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"migration-coverage/internal/config"
	"migration-coverage/internal/progress"
	"migration-coverage/internal/report"
	"migration-coverage/internal/tree"
	"migration-coverage/internal/walker"
)

// runScan builds and aggregates the tree for root, prints it to stdout and
// writes the HTML and JSON reports.
func runScan(ctx context.Context, root string, cfg *config.Config, stdout io.Writer, logger logrus.FieldLogger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	outDir := cfg.OutputDir
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(root, outDir)
	}

	excluder, err := walker.NewExcluder(cfg.Exclude)
	if err != nil {
		return fmt.Errorf("failed to parse exclusions: %w", err)
	}
	if rel, ok := pathWithin(root, outDir); ok {
		// a later run must not scan its own report
		excluder.ExcludePath(rel)
	}
	classifier := walker.NewClassifier(cfg.Legacy, cfg.Target)

	bar := progress.New(os.Stderr, progress.IsTerminal(os.Stderr))
	builder := walker.NewBuilder(classifier, excluder,
		walker.WithWorkers(cfg.Workers),
		walker.WithLogger(logger),
		walker.WithProgress(bar),
	)

	logger.WithField("root", root).Info("Scanning directory")

	fileTree, err := builder.Build(ctx, root)
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", root, err)
	}
	bar.Finish()

	tree.Aggregate(fileTree)

	if err := report.Dump(stdout, root, fileTree); err != nil {
		return fmt.Errorf("failed to print tree: %w", err)
	}

	if err := report.RenderHTML(fileTree, outDir); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	serialized, err := tree.NewReport(fileTree, root)
	if err != nil {
		return fmt.Errorf("failed to fingerprint tree: %w", err)
	}
	if err := tree.Save(serialized, filepath.Join(outDir, report.JSONFileName)); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	totals := serialized.Totals
	fmt.Fprintf(stdout, "\nCoverage: %s\n", report.FormatCoverage(fileTree))
	fmt.Fprintf(stdout, "  Files: %d target, %d legacy in %d directories\n",
		totals.Target, totals.Legacy, totals.Directories)
	if ratio, err := totals.Ratio(); err == nil {
		fmt.Fprintf(stdout, "  Overall share of target files: %.1f%%\n", ratio*100)
	}
	fmt.Fprintf(stdout, "  Fingerprint: %s\n", serialized.Fingerprint)
	fmt.Fprintf(stdout, "  Report: %s\n", filepath.Join(outDir, report.PageFileName))

	return nil
}

// pathWithin returns target relative to root when target lies below root.
func pathWithin(root, target string) (string, bool) {
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
