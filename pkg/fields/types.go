package fields

import "fmt"

// FieldKind is the tagged variant describing which input a field spec maps to.
type FieldKind string

const (
	KindText         FieldKind = "text"
	KindBoolean      FieldKind = "boolean"
	KindSingleChoice FieldKind = "single-choice"
	KindMultiChoice  FieldKind = "multi-choice"
	KindCaptcha      FieldKind = "captcha"
)

const (
	ValidationRuleRequired   = "required"
	ValidationRuleMinLength  = "minLength"
	ValidationRuleMaxLength  = "maxLength"
	ValidationRuleMinChoices = "minChoices"
	ValidationRuleMaxChoices = "maxChoices"
)

// ValidationRule represents a single constraint applied to a field. Rule
// thresholds encode their value in Params["value"] so snapshots stay stable
// across renderers and the generic validator.
type ValidationRule struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// Option is one selectable value for choice fields. Value is what travels on
// the wire; Label is what editors configured for display.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FieldSpec describes one validatable input derived from a field block.
type FieldSpec struct {
	Name          string            `json:"name"`
	Kind          FieldKind         `json:"kind"`
	Label         string            `json:"label,omitempty"`
	HelpText      string            `json:"helpText,omitempty"`
	Placeholder   string            `json:"placeholder,omitempty"`
	Required      bool              `json:"required"`
	Options       []Option          `json:"options,omitempty"`
	Validations   []ValidationRule  `json:"validations,omitempty"`
	ErrorMessages map[string]string `json:"errorMessages,omitempty"`
}

// Rule returns the first validation rule of the given kind, if present.
func (f FieldSpec) Rule(kind string) (ValidationRule, bool) {
	for _, rule := range f.Validations {
		if rule.Kind == kind {
			return rule, true
		}
	}
	return ValidationRule{}, false
}

// FieldName derives the schema key for a field block from its node ID. The
// derivation is injective over distinct IDs, which keeps schema keys unique
// within a well-formed tree.
func FieldName(id int64) string {
	return fmt.Sprintf("field-%d", id)
}

// FormSchema is the collected mapping of field name to spec for one form.
// Lookup is by name; Names preserves the editor-defined traversal order for
// presentation. Callers must not attach semantics to emission order.
type FormSchema struct {
	specs map[string]FieldSpec
	order []string
}

// NewFormSchema constructs an empty schema.
func NewFormSchema() FormSchema {
	return FormSchema{specs: make(map[string]FieldSpec)}
}

// Len reports the number of collected fields.
func (s FormSchema) Len() int {
	return len(s.specs)
}

// Field looks up a spec by name.
func (s FormSchema) Field(name string) (FieldSpec, bool) {
	spec, ok := s.specs[name]
	return spec, ok
}

// Names returns field names in first-seen insertion order.
func (s FormSchema) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Fields returns the specs in insertion order.
func (s FormSchema) Fields() []FieldSpec {
	out := make([]FieldSpec, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.specs[name])
	}
	return out
}

// Add inserts or replaces a spec under its name. Later writers win on
// collision; the original position is kept so presentation order stays
// deterministic.
func (s *FormSchema) Add(spec FieldSpec) {
	if s.specs == nil {
		s.specs = make(map[string]FieldSpec)
	}
	if _, exists := s.specs[spec.Name]; !exists {
		s.order = append(s.order, spec.Name)
	}
	s.specs[spec.Name] = spec
}

// Merge folds other into s using Add semantics for every entry.
func (s *FormSchema) Merge(other FormSchema) {
	for _, name := range other.order {
		s.Add(other.specs[name])
	}
}
