// Package manifest moves a custom-named SDK manifest onto the name the SDK
// build step expects, and reads it back for diagnostics.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// DefaultName is the only manifest filename the SDK build step accepts.
const DefaultName = "manifest.json"

// UnknownSchemaVersion is reported when the manifest has no schemaVersion.
const UnknownSchemaVersion = "unknown"

// Manifest is the subset of the application manifest makegen inspects.
// Everything else in the file is left untouched and unparsed.
type Manifest struct {
	// Any JSON value; numbers keep their literal text.
	SchemaVersion   any             `json:"schemaVersion,omitempty"`
	ACAPPackageConf ACAPPackageConf `json:"acapPackageConf"`
}

type ACAPPackageConf struct {
	Setup Setup `json:"setup"`
}

type Setup struct {
	AppName string `json:"appName,omitempty"`
	Version string `json:"version,omitempty"`
}

// SchemaVersionOrUnknown returns the schemaVersion field as text, or
// "unknown" when it is absent or null.
func (m *Manifest) SchemaVersionOrUnknown() string {
	if m == nil || m.SchemaVersion == nil {
		return UnknownSchemaVersion
	}
	switch v := m.SchemaVersion.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(data)
	}
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse manifest %s: trailing data after JSON object", path)
	}
	return &m, nil
}
