package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gdg-garage/registration-api/internal/csvexport"
	"github.com/gdg-garage/registration-api/internal/database"
	"github.com/gdg-garage/registration-api/internal/handlers"
	"github.com/gdg-garage/registration-api/internal/store"
)

var (
	exportSearch string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export registrations as CSV",
	Long: `Write the same CSV the /admin/export endpoint serves.

Examples:
  # All registrations to stdout
  server export

  # Matching registrations to a dated file
  server export --search MIT --output auto

  # Explicit file
  server export -s MIT -o mit.csv`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportSearch, "search", "s", "", "substring matched against name, email, college and branch")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", `output file, "auto" for registrations_<date>.csv (default: stdout)`)
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	registrations, err := store.NewGormStore(db, store.WithTimeout(cfg.DBTimeout)).
		ListFiltered(cmd.Context(), exportSearch)
	if err != nil {
		return fmt.Errorf("list registrations: %w", err)
	}

	var w io.Writer = cmd.OutOrStdout()
	path := exportOutput
	if path == "auto" {
		path = handlers.ExportFilename(time.Now())
	}
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}

	if err := csvexport.Write(w, registrations); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	if path != "" {
		slog.Info("export written", "file", path, "rows", len(registrations))
	}
	return nil
}
