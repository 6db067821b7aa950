// Package build prepares an app directory for the SDK 3.5 build step.
// The SDK only accepts a manifest named manifest.json and builds by running
// make, so Prepare moves the manifest into place and writes the Makefile.
//
// Configuration is passed in explicitly; nothing here reads the process
// environment or working directory.
package build

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"makegen/internal/config"
	"makegen/internal/logging"
	"makegen/internal/manifest"
	"makegen/internal/recipe"
)

// Invocation holds the positional arguments of one run.
type Invocation struct {
	AppName      string
	AppDir       string
	ManifestName string
}

// Dir returns AppDir, or "." when it is empty.
func (inv Invocation) Dir() string {
	if inv.AppDir == "" {
		return "."
	}
	return inv.AppDir
}

// Report describes what Prepare did.
type Report struct {
	Manifest *manifest.Result
	Recipe   *recipe.Recipe

	// LibDirMissing is set when the linker search path does not exist yet.
	LibDirMissing bool
}

// NewSubstitutor builds the manifest substitutor from configuration.
func NewSubstitutor(cfg config.ManifestConfig, logger *zap.Logger) *manifest.Substitutor {
	return &manifest.Substitutor{
		DefaultName: cfg.DefaultName,
		Verify:      cfg.Verify,
		Logger:      logging.Get(logger, logging.CategoryManifest),
	}
}

// NewEmitter builds the Makefile emitter from configuration.
func NewEmitter(cfg config.RecipeConfig, logger *zap.Logger) *recipe.Emitter {
	return recipe.NewEmitter(recipe.Options{
		Filename:    cfg.Filename,
		Compiler:    cfg.Compiler,
		LibDir:      cfg.LibDir,
		SupportTags: cfg.SupportTags,
		TagsEnvVar:  cfg.TagsEnvVar,
	}, logging.Get(logger, logging.CategoryRecipe))
}

// Prepare substitutes the manifest and then emits the Makefile. Recipe
// options are validated first; a failed substitution stops the run before
// the Makefile is written.
func Prepare(inv Invocation, cfg *config.Config, logger *zap.Logger) (*Report, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	log := logging.Get(logger, logging.CategoryBuild)
	dir := inv.Dir()

	log.Debug("Preparing app directory",
		zap.String("app", inv.AppName),
		zap.String("dir", dir),
		zap.String("manifest", inv.ManifestName),
	)

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("app directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("app directory %s is not a directory", dir)
	}

	// Reject a bad recipe before the manifest is moved, so a failed run
	// leaves the app directory as it was.
	emitter := NewEmitter(cfg.Recipe, logger)
	if err := emitter.Validate(inv.AppName); err != nil {
		return nil, fmt.Errorf("makefile generation failed: %w", err)
	}

	res, err := NewSubstitutor(cfg.Manifest, logger).Substitute(dir, inv.ManifestName)
	if err != nil {
		return nil, fmt.Errorf("manifest substitution failed: %w", err)
	}

	rcp, err := emitter.Emit(dir, inv.AppName)
	if err != nil {
		return nil, fmt.Errorf("makefile generation failed: %w", err)
	}

	report := &Report{Manifest: res, Recipe: rcp}
	if _, ok := DetectLibDir(dir, cfg.Recipe.LibDir); !ok {
		report.LibDirMissing = true
		log.Warn("Library directory referenced by the Makefile does not exist yet",
			zap.String("lib_dir", filepath.Join(dir, cfg.Recipe.LibDir)))
	}
	return report, nil
}
