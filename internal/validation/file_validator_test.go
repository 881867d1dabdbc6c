package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/sebastian-gm/hr-data-insights/internal/errors"
)

func TestFileValidator_ValidateInputFile(t *testing.T) {
	dir := t.TempDir()
	validator := NewFileValidator(nil)

	csvPath := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("employee_id\n001\n"), 0644))
	xlsxPath := filepath.Join(dir, "data.xlsx")
	require.NoError(t, os.WriteFile(xlsxPath, []byte("stub"), 0644))
	lockPath := filepath.Join(dir, "~$data.xlsx")
	require.NoError(t, os.WriteFile(lockPath, []byte("stub"), 0644))
	jsonPath := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte("{}"), 0644))

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "csv file", path: csvPath, wantErr: false},
		{name: "xlsx file", path: xlsxPath, wantErr: false},
		{name: "missing file", path: filepath.Join(dir, "absent.csv"), wantErr: true},
		{name: "directory", path: dir, wantErr: true},
		{name: "unsupported extension", path: jsonPath, wantErr: true},
		{name: "excel lock file", path: lockPath, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateInputFile(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsIngestionError(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFileValidator_ValidateOutputDirectory(t *testing.T) {
	dir := t.TempDir()
	validator := NewFileValidator(nil)

	// Nested directories are created on demand.
	out := filepath.Join(dir, "processed", "deep", "out.csv")
	require.NoError(t, validator.ValidateOutputDirectory(out))
	info, err := os.Stat(filepath.Dir(out))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// A file in the way of the directory path fails.
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	err = validator.ValidateOutputDirectory(filepath.Join(blocker, "nested", "out.csv"))
	assert.Error(t, err)
}
