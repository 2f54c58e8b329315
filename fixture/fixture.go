// Package fixture provides a small document model over YAML ASTs, used by
// golden and property tests to independently re-derive the key sets that the
// generated loaders are expected to accept or reject.
package fixture

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
)

// Sentinel errors returned while loading or walking a fixture document.
var (
	ErrEmptyDocument = errors.New("fixture: document has no body")
	ErrNotMapping    = errors.New("fixture: node is not a mapping")
	ErrKeyNotFound   = errors.New("fixture: key not found")
)

// Document wraps the first YAML document in a fixture file.
type Document struct {
	body ast.Node
}

// Parse reads a fixture's first document and returns its root node.
// Repeated mapping keys are accepted so that DuplicateKeys can report
// them.
func Parse(data []byte) (*Document, error) {
	file, err := parser.ParseBytes(data, parser.ParseComments, parser.AllowDuplicateMapKey())
	if err != nil {
		return nil, fmt.Errorf("fixture: parse: %w", err)
	}

	if len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return nil, ErrEmptyDocument
	}

	return &Document{body: file.Docs[0].Body}, nil
}

// Body returns the document's root node.
func (d *Document) Body() ast.Node {
	return d.body
}

// Keys returns the mapping keys present at the document root, in document
// order. It fails if the root is not a mapping.
func (d *Document) Keys() ([]string, error) {
	return mappingKeys(d.body)
}

// SequenceLength returns the length of the sequence found at the given
// dotted key path (e.g. "items" or "widgets.colors"), descending through
// nested mappings one key at a time.
func (d *Document) SequenceLength(keyPath string) (int, error) {
	node, err := d.lookup(keyPath)
	if err != nil {
		return 0, err
	}

	seq, ok := node.(*ast.SequenceNode)
	if !ok {
		return 0, fmt.Errorf("fixture: %q is not a sequence", keyPath)
	}

	return len(seq.Values), nil
}

// lookup descends through nested mappings following a dotted key path.
func (d *Document) lookup(keyPath string) (ast.Node, error) {
	node := d.body

	for _, part := range strings.Split(keyPath, ".") {
		mn, ok := node.(*ast.MappingNode)
		if !ok {
			return nil, fmt.Errorf("%w: at %q", ErrNotMapping, part)
		}

		var found ast.Node

		for _, mvn := range mn.Values {
			if mvn.Key.String() == part {
				found = mvn.Value

				break
			}
		}

		if found == nil {
			return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, part)
		}

		node = found
	}

	return node, nil
}

// DuplicateKeys walks the document and returns every mapping key that
// appears more than once within the same mapping, in first-seen order.
func (d *Document) DuplicateKeys() []string {
	v := &duplicateVisitor{seen: map[*ast.MappingNode]map[string]bool{}}

	ast.Walk(v, d.body)

	return v.dups
}

type duplicateVisitor struct {
	seen map[*ast.MappingNode]map[string]bool
	dups []string
}

// Visit implements the [ast.Visitor] interface.
func (v *duplicateVisitor) Visit(node ast.Node) ast.Visitor {
	mn, ok := node.(*ast.MappingNode)
	if !ok {
		return v
	}

	byKey := v.seen[mn]
	if byKey == nil {
		byKey = map[string]bool{}
		v.seen[mn] = byKey
	}

	for _, mvn := range mn.Values {
		key := mvn.Key.String()
		if byKey[key] {
			v.dups = append(v.dups, key)

			continue
		}

		byKey[key] = true
	}

	return v
}

// mappingKeys returns the ordered keys of a mapping node.
func mappingKeys(node ast.Node) ([]string, error) {
	mn, ok := node.(*ast.MappingNode)
	if !ok {
		if mvn, ok := node.(*ast.MappingValueNode); ok {
			return []string{mvn.Key.String()}, nil
		}

		return nil, ErrNotMapping
	}

	keys := make([]string, 0, len(mn.Values))
	for _, mvn := range mn.Values {
		keys = append(keys, mvn.Key.String())
	}

	return keys, nil
}
