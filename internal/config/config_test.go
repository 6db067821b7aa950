package config

import (
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// UNIFIED CONFIG TESTS
// =============================================================================

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Manifest.DefaultName != "manifest.json" {
		t.Errorf("expected DefaultName=manifest.json, got %s", cfg.Manifest.DefaultName)
	}
	if !cfg.Manifest.Verify {
		t.Error("expected Verify=true by default")
	}
	if cfg.Recipe.Filename != "Makefile" {
		t.Errorf("expected Filename=Makefile, got %s", cfg.Recipe.Filename)
	}
	if cfg.Recipe.LibDir != "./lib" {
		t.Errorf("expected LibDir=./lib, got %s", cfg.Recipe.LibDir)
	}
	if cfg.Recipe.TagsEnvVar != "GO_BUILD_TAGS" {
		t.Errorf("expected TagsEnvVar=GO_BUILD_TAGS, got %s", cfg.Recipe.TagsEnvVar)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	// Ensure no env vars interfere
	t.Setenv("MAKEGEN_VERIFY", "")
	t.Setenv("MAKEGEN_SUPPORT_TAGS", "")
	t.Setenv("MAKEGEN_LIB_DIR", "")

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "makegen.yaml")

	cfg := DefaultConfig()
	cfg.Manifest.Verify = false
	cfg.Recipe.LibDir = "./vendor/lib"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Manifest.Verify {
		t.Error("expected Verify=false after round trip")
	}
	if loaded.Recipe.LibDir != "./vendor/lib" {
		t.Errorf("expected LibDir=./vendor/lib, got %s", loaded.Recipe.LibDir)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("MAKEGEN_VERIFY", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Manifest.DefaultName != "manifest.json" || !cfg.Manifest.Verify {
		t.Errorf("expected defaults, got %+v", cfg.Manifest)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "makegen.yaml")
	content := "recipe:\n  support_tags: false\n  filename: \"\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Recipe.SupportTags {
		t.Error("expected SupportTags=false from file")
	}
	if cfg.Recipe.Filename != "Makefile" {
		t.Errorf("blank filename should fall back to Makefile, got %q", cfg.Recipe.Filename)
	}
	if cfg.Recipe.Compiler != "go" {
		t.Errorf("expected Compiler=go, got %q", cfg.Recipe.Compiler)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "makegen.yaml")
	if err := os.WriteFile(path, []byte("recipe: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
