// Package validation checks input and output paths before a pipeline run
// starts, so path problems surface as one clear error instead of failing
// halfway through ingestion or export.
package validation

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/sebastian-gm/hr-data-insights/internal/errors"
)

// supportedExtensions are the dataset formats ingestion understands.
var supportedExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
}

// FileValidator validates dataset paths for the pipeline executables.
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator.
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{logger: logger}
}

// ValidateInputFile checks that the dataset file exists, is readable, and
// has a supported extension.
func (v *FileValidator) ValidateInputFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("Input file does not exist", slog.String("file", path))
		return errors.NewIngestionError("input file does not exist", err).
			WithContext("path", path)
	}
	if err != nil {
		return errors.NewIngestionError("failed to stat input file", err).
			WithContext("path", path)
	}
	if info.IsDir() {
		v.logger.Error("Input path is a directory", slog.String("path", path))
		return errors.NewIngestionError("input path is a directory, not a file", nil).
			WithContext("path", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExtensions[ext] {
		v.logger.Error("Unsupported input format",
			slog.String("file", path),
			slog.String("extension", ext))
		return errors.NewIngestionError("unsupported input format, expected .csv or .xlsx", nil).
			WithContext("path", path).
			WithContext("extension", ext)
	}

	// Excel leaves ~$ lock files next to open workbooks.
	if strings.HasPrefix(filepath.Base(path), "~$") {
		return errors.NewIngestionError("input file is an Excel lock file", nil).
			WithContext("path", path)
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("Input file is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return errors.NewIngestionError("input file is not readable", err).
			WithContext("path", path)
	}
	file.Close()

	v.logger.Debug("Input file validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateOutputDirectory ensures the directory for an output path exists
// and is writable.
func (v *FileValidator) ValidateOutputDirectory(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return errors.NewStorageError("failed to create output directory", err).
			WithContext("directory", dir)
	}

	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return errors.NewStorageError("output directory is not writable", err).
			WithContext("directory", dir)
	}
	file.Close()
	os.Remove(testFile)

	return nil
}
