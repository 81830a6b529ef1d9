// Package vanilla renders collected forms as dependency-free HTML.
package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-formblocks/pkg/render"
	rendertemplate "github.com/goliatone/go-formblocks/pkg/render/template"
	gotemplate "github.com/goliatone/go-formblocks/pkg/render/template/gotemplate"
)

// Option customises the renderer configuration.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer renders forms with the embedded template bundle by default.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer}, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "vanilla"
}

// ContentType reports the media type of rendered output.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the HTML for a collected form.
func (r *Renderer) Render(_ context.Context, form render.Form, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	result, err := r.templates.RenderTemplate("templates/form.tmpl", buildViewModel(form, options))
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}
