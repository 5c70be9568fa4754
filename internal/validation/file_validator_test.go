package validation

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidateFile(t *testing.T) {
	v := NewFileValidator(testLogger())

	path := writeFile(t, "data.csv", "a,b,c\n")
	assert.NoError(t, v.ValidateFile(path))
}

func TestValidateFileMissing(t *testing.T) {
	v := NewFileValidator(testLogger())

	err := v.ValidateFile(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestValidateFileIsDirectory(t *testing.T) {
	v := NewFileValidator(testLogger())

	err := v.ValidateFile(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestValidateCSVFile(t *testing.T) {
	v := NewFileValidator(testLogger())

	assert.NoError(t, v.ValidateCSVFile(writeFile(t, "data.csv", "x\n")))

	err := v.ValidateCSVFile(writeFile(t, "data.txt", "x\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a CSV file")
}

func TestValidateExcelFile(t *testing.T) {
	v := NewFileValidator(testLogger())

	assert.NoError(t, v.ValidateExcelFile(writeFile(t, "book.xlsx", "pk")))

	err := v.ValidateExcelFile(writeFile(t, "book.csv", "x\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an Excel file")

	err = v.ValidateExcelFile(writeFile(t, "~$book.xlsx", "pk"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "temporary Excel file")
}

func TestValidateOutputDirectory(t *testing.T) {
	v := NewFileValidator(testLogger())

	dir := filepath.Join(t.TempDir(), "out", "nested")
	require.NoError(t, v.ValidateOutputDirectory(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// probe file must not linger
	_, err = os.Stat(filepath.Join(dir, ".write_test"))
	assert.True(t, os.IsNotExist(err))
}
