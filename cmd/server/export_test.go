package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdg-garage/registration-api/internal/config"
	"github.com/gdg-garage/registration-api/internal/csvexport"
	"github.com/gdg-garage/registration-api/internal/database"
	"github.com/gdg-garage/registration-api/internal/models"
	"github.com/gdg-garage/registration-api/internal/store"
)

func seed(t *testing.T, path string) {
	t.Helper()

	db, err := database.OpenSQLite(path)
	require.NoError(t, err)
	defer database.Close(db)

	s := store.NewGormStore(db)
	for _, f := range []models.RegistrationFields{
		{FullName: "Jane Doe", Email: "jane@x.com", Semester: "s3", PhoneNumber: "9876543210", Branch: "CS", College: "MIT"},
		{FullName: "John Roe", Email: "john@x.com", Semester: "s5", PhoneNumber: "1234567890", Branch: "EE", College: "Springfield, State"},
	} {
		_, err := s.Insert(context.Background(), f)
		require.NoError(t, err)
	}
}

func runExportCmd(t *testing.T, search, output string) string {
	t.Helper()

	exportSearch, exportOutput = search, output
	t.Cleanup(func() { exportSearch, exportOutput = "", "" })

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())

	require.NoError(t, runExport(cmd, nil))
	return out.String()
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "registrations.db")
	seed(t, dbPath)

	cfg = &config.Config{DatabaseDriver: database.DriverSQLite, DatabasePath: dbPath, DBTimeout: 5 * time.Second}
	t.Cleanup(func() { cfg = nil })

	t.Run("stdout", func(t *testing.T) {
		lines := strings.Split(runExportCmd(t, "", ""), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, strings.Join(csvexport.Header, ","), lines[0])
	})

	t.Run("search", func(t *testing.T) {
		lines := strings.Split(runExportCmd(t, "Springfield", ""), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[1], `"Springfield, State"`)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(dir, "out.csv")
		assert.Empty(t, runExportCmd(t, "MIT", path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		lines := strings.Split(string(data), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[1], "jane@x.com")
	})
}
