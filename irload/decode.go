package irload

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/teranos/stubgen/cdecl"
	"github.com/teranos/stubgen/errors"
	"github.com/teranos/stubgen/logger"
)

// Format is a document serialization
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// DetectFormat picks the format from the file extension
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.WithHint(
		errors.Wrapf(errors.ErrUnsupportedFormat, "%s", path),
		"unit documents must end in .yaml, .yml, .toml or .json")
}

// Decode reads a document. Unknown fields are rejected in every format.
func Decode(r io.Reader, format Format) (*Document, error) {
	var doc Document

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && err != io.EOF {
			return nil, errors.Wrap(err, "invalid YAML")
		}

	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&doc)
		if err != nil {
			return nil, errors.Wrap(err, "invalid TOML")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.Newf("unknown TOML key %q", undecoded[0].String())
		}

	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(err, "invalid JSON")
		}

	default:
		return nil, errors.Wrapf(errors.ErrUnsupportedFormat, "format %q", format)
	}

	return &doc, nil
}

// DecodeFile reads the document at path
func DecodeFile(path string) (*Document, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("unit document %s", path)
		}
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	doc, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", path)
	}
	return doc, nil
}

// LoadFile decodes and builds the unit at path. The unit name defaults to
// the file name without its extension.
func LoadFile(path string) (*cdecl.TranslationUnit, error) {
	doc, err := DecodeFile(path)
	if err != nil {
		return nil, err
	}

	unit, err := Build(doc, UnitName(path))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build %s", path)
	}
	return unit, nil
}

// Load is LoadFile with the signature batch exports expect
func Load(ctx context.Context, path string) (*cdecl.TranslationUnit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	unit, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	logger.LoggerFromContext(ctx).Debugw("Loaded unit",
		logger.FieldUnit, unit.Name,
		logger.FieldFile, path,
		logger.FieldCount, len(unit.Declarations))
	return unit, nil
}

// UnitName derives a unit name from a document path
func UnitName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
