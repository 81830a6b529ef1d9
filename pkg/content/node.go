package content

// Kind identifies the block type an editor placed in the tree.
type Kind string

const (
	KindForm         Kind = "form"
	KindFieldset     Kind = "fieldset"
	KindTextField    Kind = "text-field"
	KindBooleanField Kind = "boolean-field"
	KindSelectField  Kind = "select-field"
	KindMultiSelect  Kind = "multiselect-field"
	KindCaptchaField Kind = "captcha-field"
	KindSubmitButton Kind = "submit-button"
)

// Class partitions block kinds by how field collection treats them. Containers
// recurse into children, field leaves contribute exactly one spec, and opaque
// blocks contribute nothing.
type Class int

const (
	ClassOpaque Class = iota
	ClassContainer
	ClassField
)

// RedirectKind selects where a form sends the visitor after a successful
// submission.
type RedirectKind string

const (
	RedirectToPage RedirectKind = "page"
	RedirectToURL  RedirectKind = "url"
)

// Attrs is the type-specific configuration bag editors fill in per block. Only
// the attributes relevant to a block's kind are consulted; the rest stay zero.
type Attrs struct {
	// Field blocks.
	Label           string `yaml:"label,omitempty"`
	HelpText        string `yaml:"help_text,omitempty"`
	Placeholder     string `yaml:"placeholder,omitempty"`
	Required        bool   `yaml:"required,omitempty"`
	RequiredMessage string `yaml:"required_message,omitempty"`
	MinValue        *int   `yaml:"min_value,omitempty"`
	MaxValue        *int   `yaml:"max_value,omitempty"`
	OptionSetID     string `yaml:"option_set,omitempty"`

	// Form container.
	Name         string       `yaml:"name,omitempty"`
	ErrorMessage string       `yaml:"error_message,omitempty"`
	Recipients   []string     `yaml:"recipients,omitempty"`
	RedirectKind RedirectKind `yaml:"redirect,omitempty"`
	PageID       string       `yaml:"page,omitempty"`
	URL          string       `yaml:"url,omitempty"`

	// Submit button.
	ButtonLabel string `yaml:"button_label,omitempty"`
}

// Node is one block in the editor-managed content tree. The tree is owned and
// mutated by the CMS; this library only ever reads it. Children keep the
// editor-defined placement order.
type Node struct {
	ID       int64
	Kind     Kind
	Attrs    Attrs
	Children []*Node
}

// Class reports how field collection treats this node.
func (n *Node) Class() Class {
	if n == nil {
		return ClassOpaque
	}
	switch n.Kind {
	case KindForm, KindFieldset:
		return ClassContainer
	case KindTextField, KindBooleanField, KindSelectField, KindMultiSelect, KindCaptchaField:
		return ClassField
	default:
		return ClassOpaque
	}
}

// SubmitLabel returns the label of the first submit button in the subtree, or
// the empty string when the editor did not place one.
func (n *Node) SubmitLabel() string {
	if n == nil {
		return ""
	}
	if n.Kind == KindSubmitButton {
		return n.Attrs.ButtonLabel
	}
	for _, child := range n.Children {
		if label := child.SubmitLabel(); label != "" {
			return label
		}
	}
	return ""
}

// Walk visits n and every descendant in depth-first, child order. The visitor
// returning false stops descent into that node's children.
func (n *Node) Walk(visit func(*Node) bool) {
	if n == nil || visit == nil {
		return
	}
	if !visit(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(visit)
	}
}
