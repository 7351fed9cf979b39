package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"moviedash/internal/charts"
	"moviedash/internal/dashboard"
	"moviedash/internal/logger"
	"moviedash/internal/models"
)

var (
	exportTargets []string
	exportOutDir  string
	exportKind    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the current charts as PNG and exit",
	Long: `Fetch both reports, render the charts and export them. Files go to the
configured export store and, with --out, to a local directory as well.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringSliceVar(&exportTargets, "target", nil, "chart targets to export (default: all)")
	exportCmd.Flags().StringVarP(&exportOutDir, "out", "o", "", "also write PNG files to this directory")
	exportCmd.Flags().StringVar(&exportKind, "kind", "", "chart kind: bar, horizontalBar, pie, line")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if exportKind != "" {
		kind, err := models.ParseChartKind(exportKind)
		if err != nil {
			return err
		}
		a.orch.SetChartKind(kind)
	}

	if err := a.orch.Load(ctx); err != nil {
		logger.Warn("Some reports failed to load, exporting what is available", logger.Fields{"error": err.Error()})
	}

	targets := exportTargets
	if len(targets) == 0 {
		for _, section := range models.Sections {
			targets = append(targets, dashboard.ChartTarget(section))
		}
	}

	return exportTo(ctx, cmd.OutOrStdout(), a.exporter, targets, exportOutDir)
}

// exportTo exports targets and prints one line per file. Empty charts are
// reported and skipped. It fails only when nothing could be exported.
func exportTo(ctx context.Context, out io.Writer, exporter *dashboard.Exporter, targets []string, outDir string) error {
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	exported := 0
	var errs []error
	for _, target := range targets {
		exp, err := exporter.Export(ctx, target)
		if errors.Is(err, charts.ErrEmptyState) {
			fmt.Fprintf(out, "%s: no data\n", target)
			continue
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}

		where := exp.Location
		if outDir != "" {
			path := filepath.Join(outDir, exp.Name)
			if err := os.WriteFile(path, exp.Data, 0644); err != nil {
				errs = append(errs, fmt.Errorf("failed to write %s: %w", path, err))
				continue
			}
			where = path
		}
		if where == "" {
			where = exp.Name + " (not stored)"
		}
		fmt.Fprintf(out, "%s: %s\n", target, where)
		exported++
	}

	if exported == 0 {
		errs = append(errs, fmt.Errorf("no charts exported"))
	}
	if exported == 0 || len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
