// Package recipe renders and writes the Makefile that compiles the app
// binary against the libraries bundled in ./lib.
package recipe

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"go.uber.org/zap"
)

// ErrInvalidOptions is returned when a value would corrupt the Makefile.
var ErrInvalidOptions = errors.New("invalid recipe options")

// Options control the emitted Makefile.
type Options struct {
	Filename string
	Compiler string
	LibDir   string

	// SupportTags adds a TAGS_ARG variable expanded by make from TagsEnvVar.
	SupportTags bool
	TagsEnvVar  string
}

// DefaultOptions reproduces the recipe the SDK 3.5 build step expects.
func DefaultOptions() Options {
	return Options{
		Filename:    "Makefile",
		Compiler:    "go",
		LibDir:      "./lib",
		SupportTags: true,
		TagsEnvVar:  "GO_BUILD_TAGS",
	}
}

// The leading and trailing blank lines are part of the expected output.
const makefileTemplate = `
.PHONY: build
{{- if .SupportTags}}

# Allow passing tags via environment variable {{.TagsEnvVar}}
TAGS_ARG := $(if $(strip $({{.TagsEnvVar}})),-tags "$({{.TagsEnvVar}})",)
{{- end}}

build:
	{{.Compiler}} build {{if .SupportTags}}$(TAGS_ARG) {{end}}-ldflags "-s -w  -extldflags '-L{{.LibDir}} -Wl,-rpath,{{.LibDir}}'" -o {{.BinaryName}} .

`

var tmpl = template.Must(template.New("Makefile").Parse(makefileTemplate))

type templateData struct {
	Options
	BinaryName string
}

// Recipe is a rendered Makefile and where it was written.
type Recipe struct {
	Path    string
	Content string
}

// Emitter writes Makefiles.
type Emitter struct {
	Options Options
	Logger  *zap.Logger
}

// NewEmitter returns an emitter; zero-valued option strings take defaults.
func NewEmitter(opts Options, logger *zap.Logger) *Emitter {
	def := DefaultOptions()
	if opts.Filename == "" {
		opts.Filename = def.Filename
	}
	if opts.Compiler == "" {
		opts.Compiler = def.Compiler
	}
	if opts.LibDir == "" {
		opts.LibDir = def.LibDir
	}
	if opts.TagsEnvVar == "" {
		opts.TagsEnvVar = def.TagsEnvVar
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Emitter{Options: opts, Logger: logger}
}

// Validate reports whether binaryName and the options render a usable
// Makefile. Callers run it before changing anything else on disk.
func (e *Emitter) Validate(binaryName string) error {
	if binaryName == "" {
		return fmt.Errorf("%w: binary name is empty", ErrInvalidOptions)
	}
	fields := map[string]string{
		"binary name":  binaryName,
		"compiler":     e.Options.Compiler,
		"lib dir":      e.Options.LibDir,
		"tags env var": e.Options.TagsEnvVar,
		"filename":     e.Options.Filename,
	}
	for name, v := range fields {
		if strings.ContainsAny(v, "\r\n") {
			return fmt.Errorf("%w: %s contains a line break", ErrInvalidOptions, name)
		}
	}
	if e.Options.SupportTags && strings.ContainsAny(e.Options.TagsEnvVar, " \t$()") {
		return fmt.Errorf("%w: tags env var %q is not a make variable name", ErrInvalidOptions, e.Options.TagsEnvVar)
	}
	return nil
}

// Render returns the Makefile text for binaryName without touching disk.
func (e *Emitter) Render(binaryName string) (string, error) {
	if err := e.Validate(binaryName); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, templateData{Options: e.Options, BinaryName: binaryName}); err != nil {
		return "", fmt.Errorf("failed to render makefile: %w", err)
	}
	return buf.String(), nil
}

// Emit renders the Makefile and writes it to outputDir, replacing any
// existing file.
func (e *Emitter) Emit(outputDir, binaryName string) (*Recipe, error) {
	content, err := e.Render(binaryName)
	if err != nil {
		return nil, err
	}

	logger := e.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	path := filepath.Join(outputDir, e.Options.Filename)
	logger.Debug("Creating Makefile", zap.String("path", path), zap.String("content", content))

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return nil, fmt.Errorf("failed to write makefile: %w", err)
	}

	logger.Info("Makefile created", zap.String("path", path), zap.String("binary", binaryName))
	return &Recipe{Path: path, Content: content}, nil
}
