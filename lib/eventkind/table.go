// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package eventkind

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/roomevents/lib/jsonvalue"
	"github.com/bureau-foundation/roomevents/lib/ref"
)

// defaultTable is the built-in kind table. See default.yaml.
//
//go:embed default.yaml
var defaultTable []byte

// Default returns the registry described by the embedded kind table.
// The registry is built once and shared; it is read-only like every
// Registry.
func Default() *Registry {
	return defaultRegistry()
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	registry, err := LoadYAML(bytes.NewReader(defaultTable))
	if err != nil {
		panic("eventkind: embedded default table is invalid: " + err.Error())
	}
	return registry
})

// tableFile is the on-disk shape shared by the YAML and JSONC formats.
type tableFile struct {
	Kinds []tableKind `yaml:"kinds" json:"kinds"`
}

// tableKind describes one kind. Field maps go from field name to JSON
// kind name ("string", "number", "bool", "array", "object", "null").
type tableKind struct {
	Type      string            `yaml:"type" json:"type"`
	Class     string            `yaml:"class" json:"class"`
	Required  map[string]string `yaml:"required,omitempty" json:"required,omitempty"`
	Optional  map[string]string `yaml:"optional,omitempty" json:"optional,omitempty"`
	Retain    []string          `yaml:"retain,omitempty" json:"retain,omitempty"`
	RetainAll bool              `yaml:"retain_all,omitempty" json:"retain_all,omitempty"`
}

// LoadYAML reads a YAML kind table. Unknown keys are rejected so that a
// typo like "retian" fails loudly instead of silently retaining nothing.
func LoadYAML(reader io.Reader) (*Registry, error) {
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)
	var table tableFile
	if err := decoder.Decode(&table); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("eventkind: empty kind table")
		}
		return nil, fmt.Errorf("eventkind: parsing YAML kind table: %w", err)
	}
	return table.registry()
}

// LoadJSONC reads a kind table written as JSON with comments and
// trailing commas.
func LoadJSONC(data []byte) (*Registry, error) {
	decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	decoder.DisallowUnknownFields()
	var table tableFile
	if err := decoder.Decode(&table); err != nil {
		return nil, fmt.Errorf("eventkind: parsing JSONC kind table: %w", err)
	}
	return table.registry()
}

// LoadFile reads a kind table from path, choosing the format by file
// extension: .yaml and .yml are YAML; .json and .jsonc are JSONC.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("eventkind: reading kind table: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		registry, err := LoadYAML(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return registry, nil
	case ".json", ".jsonc":
		registry, err := LoadJSONC(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return registry, nil
	default:
		return nil, fmt.Errorf("eventkind: %s: unsupported kind table extension (want .yaml, .yml, .json, or .jsonc)", path)
	}
}

// MarshalYAML renders a registry in the table format LoadYAML reads.
func MarshalYAML(registry *Registry) ([]byte, error) {
	var table tableFile
	for _, kind := range registry.Kinds() {
		table.Kinds = append(table.Kinds, tableKind{
			Type:      string(kind.eventType),
			Class:     kind.classification.String(),
			Required:  fieldMap(kind.required),
			Optional:  fieldMap(kind.optional),
			Retain:    kind.Retain(),
			RetainAll: kind.retainAll,
		})
	}
	var buffer bytes.Buffer
	encoder := yaml.NewEncoder(&buffer)
	encoder.SetIndent(2)
	if err := encoder.Encode(table); err != nil {
		return nil, fmt.Errorf("eventkind: encoding kind table: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("eventkind: encoding kind table: %w", err)
	}
	return buffer.Bytes(), nil
}

func (table tableFile) registry() (*Registry, error) {
	specs := make([]Spec, 0, len(table.Kinds))
	for index, entry := range table.Kinds {
		spec, err := entry.spec()
		if err != nil {
			return nil, fmt.Errorf("eventkind: kind %d (%q): %w", index, entry.Type, err)
		}
		specs = append(specs, spec)
	}
	return FromSpecs(specs...)
}

func (entry tableKind) spec() (Spec, error) {
	classification, err := ParseClassification(entry.Class)
	if err != nil {
		return Spec{}, err
	}
	required, err := parseFieldMap(entry.Required)
	if err != nil {
		return Spec{}, fmt.Errorf("required: %w", err)
	}
	optional, err := parseFieldMap(entry.Optional)
	if err != nil {
		return Spec{}, fmt.Errorf("optional: %w", err)
	}
	return Spec{
		Type:           ref.EventType(entry.Type),
		Classification: classification,
		Required:       required,
		Optional:       optional,
		Retain:         entry.Retain,
		RetainAll:      entry.RetainAll,
	}, nil
}

func parseFieldMap(fields map[string]string) ([]Field, error) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	result := make([]Field, 0, len(names))
	for _, name := range names {
		kind, err := jsonvalue.ParseKind(fields[name])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		result = append(result, Field{Name: name, Kind: kind})
	}
	return result, nil
}

func fieldMap(fields []Field) map[string]string {
	if len(fields) == 0 {
		return nil
	}
	result := make(map[string]string, len(fields))
	for _, field := range fields {
		result[field.Name] = field.Kind.String()
	}
	return result
}
