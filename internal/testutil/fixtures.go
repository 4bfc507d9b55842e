package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// MinimalPDF is a tiny but well-formed PDF header used as report content.
var MinimalPDF = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

// WriteReport writes MinimalPDF to dir/pdf/informe.pdf and returns the path.
func WriteReport(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "pdf", "informe.pdf")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir report dir: %v", err)
	}
	if err := os.WriteFile(path, MinimalPDF, 0o644); err != nil {
		t.Fatalf("write report: %v", err)
	}
	return path
}

// MissingReportPath returns a report path inside dir that does not exist.
func MissingReportPath(t *testing.T, dir string) string {
	t.Helper()
	return filepath.Join(dir, "pdf", "missing.pdf")
}

// WriteTables writes a YAML tables override file and returns its path.
func WriteTables(t *testing.T, dir, yaml string) string {
	t.Helper()
	path := filepath.Join(dir, "tables.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write tables: %v", err)
	}
	return path
}
