// Package tui renders collected forms as an interactive terminal session
// driven by survey prompts.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-formblocks/pkg/fields"
	"github.com/goliatone/go-formblocks/pkg/render"
	"github.com/goliatone/go-formblocks/pkg/validation"
)

const defaultMaxAttempts = 3

// Renderer implements render.Renderer for terminal-driven sessions. Each
// field is prompted in schema order and re-prompted while its constraints
// fail, then the collected answers are serialized.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	maxAttempts  int
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
		maxAttempts:  defaultMaxAttempts,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = newSurveyDriver()
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	if r.outputFormat == OutputFormatFormURLEncoded {
		return "application/x-www-form-urlencoded"
	}
	return "application/json"
}

// Render walks the schema, prompts for each field, and returns the collected
// answers. Prefilled values from opts seed prompt defaults.
func (r *Renderer) Render(ctx context.Context, form render.Form, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	answers := url.Values{}
	for _, spec := range form.Schema.Fields() {
		if err := r.promptField(ctx, spec, opts.Values[spec.Name], answers); err != nil {
			return nil, err
		}
	}
	return r.serialize(form.Schema, answers)
}

func (r *Renderer) promptField(ctx context.Context, spec fields.FieldSpec, seed []string, answers url.Values) error {
	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		values, err := r.askOnce(ctx, spec, seed)
		if err != nil {
			return err
		}

		messages := validateOne(ctx, spec, values)
		if len(messages) == 0 {
			answers[spec.Name] = values
			return nil
		}
		for _, msg := range messages {
			if err := r.driver.Info(ctx, fmt.Sprintf("%s: %s", displayLabel(spec), msg)); err != nil {
				return err
			}
		}
		// Answers that failed become the default for the retry.
		seed = values
	}
	return fmt.Errorf("%w for %q", ErrTooManyAttempts, spec.Name)
}

func (r *Renderer) askOnce(ctx context.Context, spec fields.FieldSpec, seed []string) ([]string, error) {
	label := displayLabel(spec)
	help := strings.TrimSpace(spec.HelpText)

	switch spec.Kind {
	case fields.KindBoolean:
		checked, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: label,
			Default: len(seed) > 0 && seed[0] == "true",
			Help:    help,
		})
		if err != nil {
			return nil, err
		}
		if checked {
			return []string{"true"}, nil
		}
		return nil, nil

	case fields.KindSingleChoice:
		labels, values := optionLists(spec)
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      labels,
			DefaultIndex: seedIndex(values, seed),
			Help:         help,
		})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(values) {
			return nil, nil
		}
		return []string{values[idx]}, nil

	case fields.KindMultiChoice:
		labels, values := optionLists(spec)
		indices, err := r.driver.MultiSelect(ctx, SelectConfig{
			Message:  label,
			Options:  labels,
			Defaults: seedIndices(values, seed),
			Help:     help,
		})
		if err != nil {
			return nil, err
		}
		out := make([]string, 0, len(indices))
		for _, idx := range indices {
			if idx >= 0 && idx < len(values) {
				out = append(out, values[idx])
			}
		}
		return out, nil

	default:
		defaultVal := ""
		if len(seed) > 0 {
			defaultVal = seed[0]
		}
		answer, err := r.driver.Input(ctx, InputConfig{
			Message:     label,
			Default:     defaultVal,
			Help:        help,
			Placeholder: spec.Placeholder,
		})
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(answer) == "" {
			return nil, nil
		}
		return []string{answer}, nil
	}
}

func (r *Renderer) serialize(schema fields.FormSchema, answers url.Values) ([]byte, error) {
	if r.outputFormat == OutputFormatFormURLEncoded {
		return []byte(answers.Encode()), nil
	}

	out := make(map[string]any, schema.Len())
	for _, spec := range schema.Fields() {
		values := answers[spec.Name]
		switch spec.Kind {
		case fields.KindMultiChoice:
			if values == nil {
				values = []string{}
			}
			out[spec.Name] = values
		case fields.KindBoolean:
			out[spec.Name] = len(values) > 0 && values[0] == "true"
		default:
			if len(values) > 0 {
				out[spec.Name] = values[0]
			} else {
				out[spec.Name] = ""
			}
		}
	}
	return json.MarshalIndent(out, "", "  ")
}

// validateOne checks a single answered field against its constraints using a
// one-field validation form. Captcha verification is left to the submission
// pipeline; in a terminal session the captcha response is just carried along.
func validateOne(ctx context.Context, spec fields.FieldSpec, values []string) []string {
	schema := fields.NewFormSchema()
	schema.Add(spec)

	form := validation.New(schema)
	submitted := url.Values{}
	if len(values) > 0 {
		submitted[spec.Name] = values
	}
	form.Bind(submitted)
	if form.Validate(ctx) {
		return nil
	}
	return form.Errors()[spec.Name]
}

func displayLabel(spec fields.FieldSpec) string {
	if label := strings.TrimSpace(spec.Label); label != "" {
		return label
	}
	return spec.Name
}

func optionLists(spec fields.FieldSpec) (labels, values []string) {
	labels = make([]string, 0, len(spec.Options))
	values = make([]string, 0, len(spec.Options))
	for _, opt := range spec.Options {
		label := opt.Label
		if strings.TrimSpace(label) == "" {
			label = opt.Value
		}
		labels = append(labels, label)
		values = append(values, opt.Value)
	}
	return labels, values
}

func seedIndex(values, seed []string) int {
	if len(seed) == 0 {
		return -1
	}
	return indexOf(values, seed[0])
}

func seedIndices(values, seed []string) []int {
	if len(seed) == 0 {
		return nil
	}
	return indicesOf(values, seed)
}
