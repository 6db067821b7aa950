package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// ErrCustomManifestMissing is returned when the custom manifest to move does
// not exist. It is joined with the underlying os error, so
// errors.Is(err, os.ErrNotExist) also holds.
var ErrCustomManifestMissing = errors.New("custom manifest not found")

// Substitutor puts a custom manifest in place under the default name.
type Substitutor struct {
	// DefaultName is the target filename; DefaultName is used when empty.
	DefaultName string

	// Verify parses the moved manifest and logs its schemaVersion.
	Verify bool

	Logger *zap.Logger
}

// Result describes what Substitute did.
type Result struct {
	DefaultPath string
	CustomPath  string

	// Moved is false when the custom and default paths are the same file name.
	Moved bool

	// ReplacedExisting is true when a previous default manifest was removed.
	ReplacedExisting bool

	// Verification outcome, only populated when Verify is set and Moved.
	Verified      bool
	SchemaVersion string
	AppName       string
	VerifyErr     error
}

// Paths returns the default and custom manifest paths inside dir. A dir of
// "." yields bare filenames.
func (s *Substitutor) Paths(dir, customName string) (defaultPath, customPath string) {
	name := s.DefaultName
	if name == "" {
		name = DefaultName
	}
	return filepath.Join(dir, name), filepath.Join(dir, customName)
}

// Substitute makes <dir>/<DefaultName> hold the content of <dir>/<customName>.
//
// When the two paths differ, an existing default manifest is removed and the
// custom file is renamed onto it. The remove and rename are two separate
// steps; a crash between them leaves neither file.
func (s *Substitutor) Substitute(dir, customName string) (*Result, error) {
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	defaultPath, customPath := s.Paths(dir, customName)
	res := &Result{DefaultPath: defaultPath, CustomPath: customPath}

	if defaultPath == customPath {
		logger.Debug("Custom manifest already has the default name", zap.String("path", defaultPath))
		return res, nil
	}

	// Refuse before touching the default manifest, otherwise a repeated run
	// would delete the manifest moved by the previous one.
	if _, err := os.Stat(customPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrCustomManifestMissing, err)
		}
		return nil, fmt.Errorf("failed to stat custom manifest: %w", err)
	}

	if _, err := os.Stat(defaultPath); err == nil {
		logger.Info("Removing existing default manifest", zap.String("path", defaultPath))
		if err := os.Remove(defaultPath); err != nil {
			return nil, fmt.Errorf("failed to remove existing manifest: %w", err)
		}
		res.ReplacedExisting = true
	}

	logger.Info("Renaming manifest", zap.String("from", customPath), zap.String("to", defaultPath))
	if err := os.Rename(customPath, defaultPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrCustomManifestMissing, err)
		}
		return nil, fmt.Errorf("failed to rename manifest: %w", err)
	}
	res.Moved = true

	if s.Verify {
		s.verify(res, logger)
	}
	return res, nil
}

// verify never fails the substitution; problems are logged and recorded.
func (s *Substitutor) verify(res *Result, logger *zap.Logger) {
	m, err := Load(res.DefaultPath)
	if err != nil {
		res.VerifyErr = err
		logger.Warn("Could not verify manifest content", zap.Error(err))
		return
	}

	res.Verified = true
	res.SchemaVersion = m.SchemaVersionOrUnknown()
	res.AppName = m.ACAPPackageConf.Setup.AppName
	logger.Info("Verified manifest",
		zap.String("path", res.DefaultPath),
		zap.String("schemaVersion", res.SchemaVersion),
		zap.String("appName", res.AppName),
	)
}
