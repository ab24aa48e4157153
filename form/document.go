package form

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Document is a form definition as stored or transmitted.
type Document struct {
	ID     string  `json:"id,omitempty"    yaml:"id,omitempty"`
	Title  string  `json:"title,omitempty" yaml:"title,omitempty"`
	Fields []Field `json:"fields"          yaml:"fields" jsonschema:"required"`
}

// Format is the encoding of a form document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat guesses the encoding of content. Anything that starts like a
// JSON object or array is JSON, everything else is treated as YAML.
func DetectFormat(content []byte) Format {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

// DecodeDocument reads a JSON or YAML form document. A bare list of fields is
// accepted as a document without id or title. When no field declares an
// order, document position is used.
func DecodeDocument(r io.Reader) (*Document, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read form document: %w", err)
	}
	return ParseDocument(content)
}

// ParseDocument is DecodeDocument over an in-memory buffer.
func ParseDocument(content []byte) (*Document, error) {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return nil, ErrDocumentEmpty
	}

	doc := &Document{}
	var err error
	switch DetectFormat(trimmed) {
	case FormatJSON:
		if trimmed[0] == '[' {
			err = json.Unmarshal(trimmed, &doc.Fields)
		} else {
			err = json.Unmarshal(trimmed, doc)
		}
	default:
		err = decodeYAML(trimmed, doc)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDocumentInvalid, err)
	}

	if !hasExplicitOrder(doc.Fields) {
		doc.Fields = Sequence(doc.Fields)
	}
	return doc, nil
}

func decodeYAML(content []byte, doc *Document) error {
	var node yaml.Node
	if err := yaml.Unmarshal(content, &node); err != nil {
		return err
	}
	if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
		return node.Content[0].Decode(&doc.Fields)
	}
	return node.Decode(doc)
}

func hasExplicitOrder(fields []Field) bool {
	for _, f := range fields {
		if f.Order != 0 {
			return true
		}
	}
	return false
}
