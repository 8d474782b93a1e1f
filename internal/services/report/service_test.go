package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/brfialho/pesquisa/internal/common"
)

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Acme Corp", "Acme_Corp"},
		{"A/B Co", "A-B_Co"},
		{"back\\slash", "back-slash"},
		{"Magazine Luiza", "Magazine_Luiza"},
		{"plain", "plain"},
	}

	for _, tc := range cases {
		if got := SanitizeFilename(tc.name); got != tc.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestSave_WritesReportFile(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, common.NewSilentLogger())

	r := sampleReport()
	r.Company = "Acme Corp"

	path, err := svc.Save(r)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if path != filepath.Join(dir, "Acme_Corp.txt") {
		t.Errorf("path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved report: %v", err)
	}
	if string(data) != svc.Format(r) {
		t.Error("saved bytes differ from formatted document")
	}
}

func TestSave_SanitizesPathSeparators(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, common.NewSilentLogger())

	r := sampleReport()
	r.Company = "A/B Co"

	path, err := svc.Save(r)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if path != filepath.Join(dir, "A-B_Co.txt") {
		t.Errorf("path = %q", path)
	}
}

func TestSave_CreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "relatorios")
	svc := NewService(dir, common.NewSilentLogger())

	if _, err := svc.Save(sampleReport()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("output dir not created: %v", err)
	}
}

func TestSave_WriteFailureReturnsError(t *testing.T) {
	// A file standing where the output directory should be makes the
	// write fail without touching permissions.
	base := t.TempDir()
	blocked := filepath.Join(base, "blocked")
	if err := os.WriteFile(blocked, []byte("x"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	svc := NewService(blocked, common.NewSilentLogger())
	if _, err := svc.Save(sampleReport()); err == nil {
		t.Error("expected an error when the output dir cannot be created")
	}
}

func TestNewService_DefaultDir(t *testing.T) {
	svc := NewService("", common.NewSilentLogger())
	if svc.outputDir != DefaultOutputDir {
		t.Errorf("outputDir = %q, want %q", svc.outputDir, DefaultOutputDir)
	}
}
