package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/config"
	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/domain/grid"
	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/domain/treatment"
	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/infra/db"
)

var (
	exportConfig string
	exportDir    string
	exportAll    bool
)

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Pricing grid tables",
}

var gridConvertCmd = &cobra.Command{
	Use:   "convert <in> <out>",
	Short: "Convert a grid between .csv and .xlsx (format by extension)",
	Args:  cobra.ExactArgs(2),
	RunE:  runGridConvert,
}

var gridExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every material grid from the database to XLSX files",
	RunE:  runGridExport,
}

func init() {
	gridExportCmd.Flags().StringVar(&exportConfig, "config", "config/example.yaml", "Path to config file")
	gridExportCmd.Flags().StringVar(&exportDir, "dir", "grids", "Output directory")
	gridExportCmd.Flags().BoolVar(&exportAll, "all", false, "Include inactive materials")

	gridCmd.AddCommand(gridConvertCmd, gridExportCmd)
	rootCmd.AddCommand(gridCmd)
}

func isXLSX(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

func readGrid(path string) (grid.Grid, grid.ImportReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return grid.Grid{}, grid.ImportReport{}, err
	}
	defer func() { _ = f.Close() }()

	if isXLSX(path) {
		return grid.ReadXLSX(f)
	}
	return grid.ReadCSV(f)
}

func writeGrid(path string, g grid.Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	var w func(io.Writer, grid.Grid) error = grid.WriteCSV
	if isXLSX(path) {
		w = grid.WriteXLSX
	}
	if err := w(f, g); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func runGridConvert(cmd *cobra.Command, args []string) error {
	g, rep, err := readGrid(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}
	if err := writeGrid(args[1], g); err != nil {
		return fmt.Errorf("write %s: %w", args[1], err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d tiers (%s)\n", args[1], len(g.Tiers), g.Type)
	if len(rep.Skipped) > 0 {
		fmt.Fprintf(out, "skipped lines: %v\n", rep.Skipped)
	}
	return nil
}

func runGridExport(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg, err := config.Load(exportConfig)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		return fmt.Errorf("database connection: %w", err)
	}
	defer pool.Close()

	materials, err := treatment.NewRepo(pool).ListMaterials(ctx, !exportAll)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		return err
	}

	n := 0
	for _, m := range materials {
		if m.Grid == nil {
			continue
		}
		path := filepath.Join(exportDir, fmt.Sprintf("material_%d.xlsx", m.ID))
		if err := writeGrid(path, *m.Grid); err != nil {
			return fmt.Errorf("material %d: %w", m.ID, err)
		}
		n++
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported %d grids to %s\n", n, exportDir)
	return nil
}
