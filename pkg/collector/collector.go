// Package collector walks a content-block tree rooted at a form container and
// gathers the flat field schema used to validate and render submissions.
package collector

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formblocks/pkg/content"
	"github.com/goliatone/go-formblocks/pkg/fields"
	"github.com/goliatone/go-formblocks/pkg/options"
)

// Builder constructs the FieldSpec for one leaf field node.
type Builder func(ctx context.Context, node *content.Node, deps Deps) (fields.FieldSpec, error)

// Deps carries the external collaborators builders may consult.
type Deps struct {
	Options options.Provider
}

// Option customises a Collector.
type Option func(*Collector)

// WithOptionsProvider injects the option-set provider consulted by choice
// field builders.
func WithOptionsProvider(provider options.Provider) Option {
	return func(c *Collector) {
		c.deps.Options = provider
	}
}

// WithBuilder registers or replaces the builder for a block kind. Registration
// happens through explicit constructor calls during application startup, never
// as an import side effect.
func WithBuilder(kind content.Kind, builder Builder) Option {
	return func(c *Collector) {
		if builder == nil {
			delete(c.builders, kind)
			return
		}
		c.builders[kind] = builder
	}
}

// Collector produces form schemas from content trees. The zero set of
// registered builders is the default table covering the five field kinds.
type Collector struct {
	builders map[content.Kind]Builder
	deps     Deps
}

// New constructs a Collector with the default builder table, applying any
// provided options.
func New(opts ...Option) *Collector {
	c := &Collector{
		builders: defaultBuilders(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Collect walks node and returns the schema of every field-kind descendant
// reachable through container links, in depth-first editor order. Container
// nodes recurse, field leaves contribute exactly one entry, and any other node
// contributes nothing. Collection is a pure function of the tree's current
// attribute state; the schema is rebuilt on every call and never cached.
func (c *Collector) Collect(ctx context.Context, node *content.Node) (fields.FormSchema, error) {
	schema := fields.NewFormSchema()
	if node == nil {
		return schema, nil
	}

	switch node.Class() {
	case content.ClassContainer:
		for _, child := range node.Children {
			childSchema, err := c.Collect(ctx, child)
			if err != nil {
				return fields.FormSchema{}, err
			}
			// Later entries overwrite earlier ones of the same name.
			schema.Merge(childSchema)
		}
		return schema, nil

	case content.ClassField:
		builder, ok := c.builders[node.Kind]
		if !ok {
			return fields.FormSchema{}, fmt.Errorf("collector: no builder registered for kind %q", node.Kind)
		}
		spec, err := builder(ctx, node, c.deps)
		if err != nil {
			return fields.FormSchema{}, fmt.Errorf("collector: build field %d: %w", node.ID, err)
		}
		schema.Add(spec)
		return schema, nil

	default:
		return schema, nil
	}
}
