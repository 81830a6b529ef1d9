package collector

import (
	"context"
	"fmt"
	"strconv"

	"github.com/goliatone/go-formblocks/pkg/content"
	"github.com/goliatone/go-formblocks/pkg/fields"
)

func defaultBuilders() map[content.Kind]Builder {
	return map[content.Kind]Builder{
		content.KindTextField:    buildTextField,
		content.KindBooleanField: buildBooleanField,
		content.KindSelectField:  buildSelectField,
		content.KindMultiSelect:  buildMultiSelectField,
		content.KindCaptchaField: buildCaptchaField,
	}
}

func baseSpec(node *content.Node, kind fields.FieldKind) fields.FieldSpec {
	spec := fields.FieldSpec{
		Name:     fields.FieldName(node.ID),
		Kind:     kind,
		Label:    node.Attrs.Label,
		HelpText: node.Attrs.HelpText,
	}
	if spec.Label == "" {
		spec.Label = fields.DefaultLabeler(spec.Name)
	}
	if msg := node.Attrs.RequiredMessage; msg != "" {
		spec.ErrorMessages = map[string]string{"required": msg}
	}
	return spec
}

func buildTextField(_ context.Context, node *content.Node, _ Deps) (fields.FieldSpec, error) {
	spec := baseSpec(node, fields.KindText)
	spec.Required = node.Attrs.Required
	spec.Placeholder = node.Attrs.Placeholder

	if min := node.Attrs.MinValue; min != nil && *min > 0 {
		spec.Validations = append(spec.Validations, fields.ValidationRule{
			Kind:   fields.ValidationRuleMinLength,
			Params: map[string]string{"value": strconv.Itoa(*min)},
		})
	}
	if max := node.Attrs.MaxValue; max != nil && *max > 0 {
		spec.Validations = append(spec.Validations, fields.ValidationRule{
			Kind:   fields.ValidationRuleMaxLength,
			Params: map[string]string{"value": strconv.Itoa(*max)},
		})
	}
	return spec, nil
}

func buildBooleanField(_ context.Context, node *content.Node, _ Deps) (fields.FieldSpec, error) {
	spec := baseSpec(node, fields.KindBoolean)
	spec.Required = node.Attrs.Required
	return spec, nil
}

func buildSelectField(ctx context.Context, node *content.Node, deps Deps) (fields.FieldSpec, error) {
	spec := baseSpec(node, fields.KindSingleChoice)
	spec.Required = node.Attrs.Required

	opts, err := resolveOptions(ctx, node, deps)
	if err != nil {
		return fields.FieldSpec{}, err
	}
	spec.Options = opts
	return spec, nil
}

// buildMultiSelectField reproduces the legacy forms plugin behaviour verbatim:
// the required flag follows min_value's truthiness rather than the required
// checkbox, and the max-choices bound is built from min_value as well.
// TODO: confirm with product whether max-choices should read max_value before
// changing either bound.
func buildMultiSelectField(ctx context.Context, node *content.Node, deps Deps) (fields.FieldSpec, error) {
	spec := baseSpec(node, fields.KindMultiChoice)

	min := node.Attrs.MinValue
	spec.Required = min != nil && *min > 0

	if min != nil && *min > 0 {
		spec.Validations = append(spec.Validations, fields.ValidationRule{
			Kind:   fields.ValidationRuleMinChoices,
			Params: map[string]string{"value": strconv.Itoa(*min)},
		})
	}
	if max := node.Attrs.MaxValue; max != nil && *max > 0 && min != nil {
		spec.Validations = append(spec.Validations, fields.ValidationRule{
			Kind:   fields.ValidationRuleMaxChoices,
			Params: map[string]string{"value": strconv.Itoa(*min)},
		})
	}

	opts, err := resolveOptions(ctx, node, deps)
	if err != nil {
		return fields.FieldSpec{}, err
	}
	spec.Options = opts
	return spec, nil
}

func buildCaptchaField(_ context.Context, node *content.Node, _ Deps) (fields.FieldSpec, error) {
	spec := baseSpec(node, fields.KindCaptcha)
	spec.Required = true
	return spec, nil
}

func resolveOptions(ctx context.Context, node *content.Node, deps Deps) ([]fields.Option, error) {
	id := node.Attrs.OptionSetID
	if id == "" {
		return nil, nil
	}
	if deps.Options == nil {
		return nil, fmt.Errorf("option set %q configured but no provider wired", id)
	}
	opts, err := deps.Options.OptionSet(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("resolve option set %q: %w", id, err)
	}
	return opts, nil
}
