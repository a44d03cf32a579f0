// Package load reads schema graphs from files and databases.
//
// A graph document is either a list of nodes or an object holding the list
// under "nodes". JSON, YAML and MessagePack accept both shapes, CUE requires
// the object form. GraphQL SDL documents are converted to nodes, see
// FromGraphQL.
package load

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/syssam/structgen/schema"
)

// Format is the encoding of a graph document.
type Format string

// Supported formats.
const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
	FormatCUE     Format = "cue"
	FormatGraphQL Format = "graphql"
)

// ErrUnknownFormat is returned for files whose format cannot be detected.
var ErrUnknownFormat = errors.New("structgen: unknown schema format")

// document is the object form of a graph document.
type document struct {
	Nodes []schema.Node `json:"nodes" yaml:"nodes" msgpack:"nodes"`
}

// FormatOf returns the format of the file based on its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".msgpack", ".mpk":
		return FormatMsgpack, nil
	case ".cue":
		return FormatCUE, nil
	case ".graphql", ".graphqls", ".gql":
		return FormatGraphQL, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// File reads and decodes the graph document at path.
func File(path string) ([]schema.Node, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	nodes, err := Decode(format, filepath.Base(path), buf)
	if err != nil {
		return nil, fmt.Errorf("schema %q: %w", path, err)
	}
	return nodes, nil
}

// Decode decodes a graph document. The name is used in error positions.
func Decode(format Format, name string, buf []byte) ([]schema.Node, error) {
	switch format {
	case FormatJSON:
		return decodeJSON(buf)
	case FormatYAML:
		return decodeYAML(buf)
	case FormatMsgpack:
		return decodeMsgpack(buf)
	case FormatCUE:
		return decodeCUE(name, buf)
	case FormatGraphQL:
		return FromGraphQL(name, buf)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func decodeJSON(buf []byte) ([]schema.Node, error) {
	if trimmed := bytes.TrimSpace(buf); len(trimmed) > 0 && trimmed[0] == '[' {
		var nodes []schema.Node
		if err := json.Unmarshal(trimmed, &nodes); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		return nodes, nil
	}
	var doc document
	if err := json.Unmarshal(buf, &doc); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return doc.Nodes, nil
}

func decodeYAML(buf []byte) ([]schema.Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(buf, &root); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, nil
	}
	var (
		doc document
		err error
	)
	if body := root.Content[0]; body.Kind == yaml.SequenceNode {
		err = body.Decode(&doc.Nodes)
	} else {
		err = body.Decode(&doc)
	}
	if err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return doc.Nodes, nil
}

func decodeMsgpack(buf []byte) ([]schema.Node, error) {
	var nodes []schema.Node
	if err := msgpack.Unmarshal(buf, &nodes); err == nil {
		return nodes, nil
	}
	var doc document
	if err := msgpack.Unmarshal(buf, &doc); err != nil {
		return nil, fmt.Errorf("decode msgpack: %w", err)
	}
	return doc.Nodes, nil
}

func decodeCUE(name string, buf []byte) ([]schema.Node, error) {
	v := cuecontext.New().CompileBytes(buf, cue.Filename(name))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compile cue: %w", err)
	}
	list := v.LookupPath(cue.ParsePath("nodes"))
	if !list.Exists() {
		return nil, errors.New("cue: missing top-level nodes field")
	}
	if err := list.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("validate cue: %w", err)
	}
	var nodes []schema.Node
	if err := list.Decode(&nodes); err != nil {
		return nil, fmt.Errorf("decode cue: %w", err)
	}
	return nodes, nil
}
