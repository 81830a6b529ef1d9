package content

import (
	"fmt"
	"io"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// yamlNode is the on-disk shape of one block. IDs are optional in documents;
// missing IDs are assigned sequentially so fixtures stay terse.
type yamlNode struct {
	ID       int64      `yaml:"id,omitempty"`
	Kind     Kind       `yaml:"kind"`
	Attrs    Attrs      `yaml:"attrs,omitempty"`
	Children []yamlNode `yaml:"children,omitempty"`
}

type yamlDocument struct {
	Blocks []yamlNode `yaml:"blocks"`
}

var knownKinds = map[Kind]struct{}{
	KindForm:         {},
	KindFieldset:     {},
	KindTextField:    {},
	KindBooleanField: {},
	KindSelectField:  {},
	KindMultiSelect:  {},
	KindCaptchaField: {},
	KindSubmitButton: {},
}

// Parse decodes a YAML content document into block trees. Every block needs a
// known kind; blocks without an explicit ID receive the next free sequential
// one.
func Parse(raw []byte) ([]*Node, error) {
	var doc yamlDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("content: decode document: %w", err)
	}
	if len(doc.Blocks) == 0 {
		return nil, fmt.Errorf("content: document has no blocks")
	}

	next := maxAssignedID(doc.Blocks) + 1
	out := make([]*Node, 0, len(doc.Blocks))
	for i := range doc.Blocks {
		node, err := buildNode(doc.Blocks[i], &next)
		if err != nil {
			return nil, err
		}
		out = append(out, node)
	}
	return out, nil
}

// Load reads and parses a content document from a reader.
func Load(r io.Reader) ([]*Node, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("content: read document: %w", err)
	}
	return Parse(raw)
}

// LoadFS reads and parses a content document from a filesystem.
func LoadFS(fsys fs.FS, name string) ([]*Node, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("content: read %q: %w", name, err)
	}
	return Parse(raw)
}

// FindForm returns the first form container whose configured name matches, or
// the first form of any name when name is empty.
func FindForm(trees []*Node, name string) (*Node, bool) {
	for _, tree := range trees {
		var found *Node
		tree.Walk(func(n *Node) bool {
			if found != nil {
				return false
			}
			if n.Kind == KindForm && (name == "" || n.Attrs.Name == name) {
				found = n
				return false
			}
			return true
		})
		if found != nil {
			return found, true
		}
	}
	return nil, false
}

func buildNode(in yamlNode, next *int64) (*Node, error) {
	if _, ok := knownKinds[in.Kind]; !ok {
		return nil, fmt.Errorf("content: unknown block kind %q", in.Kind)
	}

	id := in.ID
	if id == 0 {
		id = *next
		*next++
	}

	node := &Node{ID: id, Kind: in.Kind, Attrs: in.Attrs}
	for i := range in.Children {
		child, err := buildNode(in.Children[i], next)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}

func maxAssignedID(blocks []yamlNode) int64 {
	var max int64
	for i := range blocks {
		if blocks[i].ID > max {
			max = blocks[i].ID
		}
		if childMax := maxAssignedID(blocks[i].Children); childMax > max {
			max = childMax
		}
	}
	return max
}
