package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gridstack/pkg/errors"
	"github.com/matzehuels/gridstack/pkg/grid"
)

// Format is a layout file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatTOML:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (must be json or toml)", s)
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidFormat, "%s: no file extension", path)
	}
	return ParseFormat(ext)
}

// Document is the content of a layout file. Layout is the primary layout;
// Layouts holds per-breakpoint layouts.
type Document struct {
	Cols    int                    `json:"cols,omitempty" toml:"cols,omitempty"`
	Layout  grid.Layout            `json:"layout" toml:"layout"`
	Layouts map[string]grid.Layout `json:"layouts,omitempty" toml:"layouts,omitempty"`
}

// Validate checks every layout in d.
func (d Document) Validate() error {
	v := errors.NewValidator(errors.ErrCodeInvalidLayout)
	v.Check(d.Cols >= 0, "cols", "must not be negative, got %d", d.Cols)
	v.Merge("", grid.Validate(d.Layout))
	for _, name := range d.Breakpoints() {
		v.Merge("layouts."+name, grid.Validate(d.Layouts[name]))
	}
	return v.Err()
}

// Breakpoints returns the names in Layouts, sorted.
func (d Document) Breakpoints() []string {
	names := make([]string, 0, len(d.Layouts))
	for name := range d.Layouts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// =============================================================================
// Readers
// =============================================================================

// Read decodes a document in format f from r and validates it.
func Read(r io.Reader, f Format) (Document, error) {
	switch f {
	case FormatJSON:
		return ReadJSON(r)
	case FormatTOML:
		return ReadTOML(r)
	}
	return Document{}, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
}

// ReadJSON decodes a JSON document or a bare JSON array of items.
func ReadJSON(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read: %w", err)
	}

	var doc Document
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &doc.Layout)
	} else {
		err = json.Unmarshal(trimmed, &doc)
	}
	if err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
	}
	return finish(doc)
}

// ReadTOML decodes a TOML document. Unknown keys are rejected.
func ReadTOML(r io.Reader) (Document, error) {
	var doc Document
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Document{}, errors.New(errors.ErrCodeInvalidFormat, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return finish(doc)
}

func finish(doc Document) (Document, error) {
	if doc.Layout == nil {
		doc.Layout = grid.Layout{}
	}
	if err := doc.Validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Import reads and validates the layout file at path.
func Import(path string) (Document, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return Document{}, err
	}
	file, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	doc, err := Read(file, f)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// =============================================================================
// Writers
// =============================================================================

// Write encodes d in format f. Transient move markers are cleared first.
func Write(w io.Writer, d Document, f Format) error {
	d = clean(d)
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(d); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
}

// Export writes d to path in the format its extension names.
func Export(path string, d Document) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(file, d, f); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func clean(d Document) Document {
	out := Document{Cols: d.Cols, Layout: d.Layout.Normalize()}
	if len(d.Layouts) > 0 {
		out.Layouts = make(map[string]grid.Layout, len(d.Layouts))
		for name, l := range d.Layouts {
			out.Layouts[name] = l.Normalize()
		}
	}
	return out
}
