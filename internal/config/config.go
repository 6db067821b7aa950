package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up in the working directory when
// no --config flag is given.
const DefaultPath = "makegen.yaml"

// Config holds all makegen configuration.
type Config struct {
	// Manifest substitution
	Manifest ManifestConfig `yaml:"manifest"`

	// Generated build recipe
	Recipe RecipeConfig `yaml:"recipe"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// Terminal output
	UI UIConfig `yaml:"ui"`
}

// ManifestConfig configures the manifest substitutor.
type ManifestConfig struct {
	// Name the SDK build step expects (manifest.json)
	DefaultName string `yaml:"default_name"`

	// Parse the substituted manifest and report its schemaVersion
	Verify bool `yaml:"verify"`
}

// RecipeConfig configures the emitted Makefile.
type RecipeConfig struct {
	Filename string `yaml:"filename"`
	Compiler string `yaml:"compiler"`

	// Library search path baked into -extldflags (-L and -rpath)
	LibDir string `yaml:"lib_dir"`

	// Emit a TAGS_ARG variable that reads TagsEnvVar when make runs
	SupportTags bool   `yaml:"support_tags"`
	TagsEnvVar  string `yaml:"tags_env_var"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

// UIConfig configures terminal output.
type UIConfig struct {
	Color bool `yaml:"color"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Manifest: ManifestConfig{
			DefaultName: "manifest.json",
			Verify:      true,
		},

		Recipe: RecipeConfig{
			Filename:    "Makefile",
			Compiler:    "go",
			LibDir:      "./lib",
			SupportTags: true,
			TagsEnvVar:  "GO_BUILD_TAGS",
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},

		UI: UIConfig{
			Color: true,
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Defaults if config file doesn't exist
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	cfg.fillDefaults()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
// GO_BUILD_TAGS is deliberately absent: make reads it, not makegen.
func (c *Config) applyEnvOverrides() {
	if v, ok := envBool("MAKEGEN_VERIFY"); ok {
		c.Manifest.Verify = v
	}
	if v, ok := envBool("MAKEGEN_SUPPORT_TAGS"); ok {
		c.Recipe.SupportTags = v
	}
	if dir := os.Getenv("MAKEGEN_LIB_DIR"); dir != "" {
		c.Recipe.LibDir = dir
	}
	if level := os.Getenv("MAKEGEN_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if os.Getenv("NO_COLOR") != "" {
		c.UI.Color = false
	}
}

// fillDefaults restores required string fields a config file blanked out.
func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.Manifest.DefaultName == "" {
		c.Manifest.DefaultName = def.Manifest.DefaultName
	}
	if c.Recipe.Filename == "" {
		c.Recipe.Filename = def.Recipe.Filename
	}
	if c.Recipe.Compiler == "" {
		c.Recipe.Compiler = def.Recipe.Compiler
	}
	if c.Recipe.LibDir == "" {
		c.Recipe.LibDir = def.Recipe.LibDir
	}
	if c.Recipe.TagsEnvVar == "" {
		c.Recipe.TagsEnvVar = def.Recipe.TagsEnvVar
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = def.Logging.Format
	}
}

func envBool(key string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
