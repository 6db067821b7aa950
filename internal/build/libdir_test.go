package build

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetectLibDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "lib"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notadir"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		libDir   string
		wantPath string
		wantOK   bool
	}{
		{"relative present", "./lib", filepath.Join(dir, "lib"), true},
		{"relative missing", "./vendor/lib", filepath.Join(dir, "vendor", "lib"), false},
		{"file not dir", "notadir", filepath.Join(dir, "notadir"), false},
		{"absolute", filepath.Join(dir, "lib"), filepath.Join(dir, "lib"), true},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, ok := DetectLibDir(dir, tt.libDir)
			if path != tt.wantPath || ok != tt.wantOK {
				t.Errorf("DetectLibDir(%q) = (%q, %v), want (%q, %v)", tt.libDir, path, ok, tt.wantPath, tt.wantOK)
			}
		})
	}
}
