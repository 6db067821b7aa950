package build

import (
	"os"
	"path/filepath"
)

// DetectLibDir resolves the linker search path relative to the app directory
// and reports whether it exists as a directory. The Makefile is still valid
// without it; the SDK build step usually populates it before running make.
func DetectLibDir(appDir, libDir string) (string, bool) {
	if libDir == "" {
		return "", false
	}

	path := libDir
	if !filepath.IsAbs(libDir) {
		path = filepath.Join(appDir, libDir)
	}

	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return path, false
	}
	return path, true
}
