package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

// Supported document formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// Formats lists the supported document formats.
var Formats = []string{FormatJSON, FormatYAML, FormatTOML}

// FormatFromPath infers the document format from a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unknown document extension %q", filepath.Ext(path))
}

// Decode reads a document in the given format. Unknown fields are rejected.
func Decode(r io.Reader, format string) (Document, error) {
	var doc Document
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return Document{}, fmt.Errorf("decode json: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r, yaml.DisallowUnknownField()).Decode(&doc); err != nil {
			return Document{}, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&doc)
		if err != nil {
			return Document{}, fmt.Errorf("decode toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Document{}, fmt.Errorf("decode toml: unknown field %q", undecoded[0].String())
		}
	default:
		return Document{}, fmt.Errorf("unsupported format %q", format)
	}
	return doc, nil
}

// Encode writes doc in the given format.
func Encode(w io.Writer, format string, doc Document) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewEncoder(w).Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(doc); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
	return nil
}

// Read decodes a document from r and builds a forest from it.
func Read(r io.Reader, format string, opts Options) (*Forest, error) {
	doc, err := Decode(r, format)
	if err != nil {
		return nil, err
	}
	return Build(doc, opts)
}

// ReadJSON is Read for JSON documents.
func ReadJSON(r io.Reader, opts Options) (*Forest, error) { return Read(r, FormatJSON, opts) }

// ReadYAML is Read for YAML documents.
func ReadYAML(r io.Reader, opts Options) (*Forest, error) { return Read(r, FormatYAML, opts) }

// ReadTOML is Read for TOML documents.
func ReadTOML(r io.Reader, opts Options) (*Forest, error) { return Read(r, FormatTOML, opts) }

// Write encodes the subtrees below roots to w.
func Write(w io.Writer, format string, roots []Node) error {
	doc, err := FromRoots(roots)
	if err != nil {
		return err
	}
	return Encode(w, format, doc)
}

// WriteJSON is Write for JSON.
func WriteJSON(w io.Writer, roots []Node) error { return Write(w, FormatJSON, roots) }

// WriteYAML is Write for YAML.
func WriteYAML(w io.Writer, roots []Node) error { return Write(w, FormatYAML, roots) }

// WriteTOML is Write for TOML.
func WriteTOML(w io.Writer, roots []Node) error { return Write(w, FormatTOML, roots) }

// Marshal is Write into a byte slice.
func Marshal(format string, roots []Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, format, roots); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ImportFile reads the document at path, inferring the format from its
// extension, and returns the built forest.
func ImportFile(path string, opts Options) (*Forest, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, format, opts)
}

// ExportFile writes the subtrees below roots to path, inferring the format
// from its extension.
func ExportFile(path string, roots []Node) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	return WriteFile(path, format, roots)
}

// WriteFile writes the subtrees below roots to path in format. Nothing is
// created when the roots cannot be described, and a failed write or close
// removes the partial file.
func WriteFile(path, format string, roots []Node) (err error) {
	doc, err := FromRoots(roots)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()
	return Encode(f, format, doc)
}
