package geo

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ErrEmptyDocument is returned when a YAML input holds no document.
var ErrEmptyDocument = errors.New("empty YAML document")

// YAMLToJSON converts a YAML document into JSON, preserving mapping key order.
func YAMLToJSON(data []byte) ([]byte, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}

	return NodeToJSON(&root)
}

// NodeToJSON renders an already parsed YAML node as JSON.
func NodeToJSON(node *yaml.Node) ([]byte, error) {
	if node == nil || node.Kind == 0 {
		return nil, ErrEmptyDocument
	}

	var buf bytes.Buffer
	if err := writeNode(&buf, node); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func writeNode(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return ErrEmptyDocument
		}
		return writeNode(buf, n.Content[0])

	case yaml.AliasNode:
		return writeNode(buf, n.Alias)

	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(n.Content[i].Value)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := writeNode(buf, n.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')

	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeNode(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')

	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return fmt.Errorf("line %d: %w", n.Line, err)
		}
		// timestamps stay in the exact form they were written
		if _, ok := v.(time.Time); ok {
			v = n.Value
		}
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("line %d: %w", n.Line, err)
		}
		buf.Write(data)

	default:
		return fmt.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
	}

	return nil
}
