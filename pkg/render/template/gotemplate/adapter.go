// Package gotemplate backs the template seam with a pongo2 template set.
package gotemplate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-formblocks/pkg/render/template"
)

// Option configures the adapter before construction.
type Option func(*config)

type config struct {
	baseDir    string
	templates  fs.FS
	extension  string
	globalData map[string]any
}

// WithBaseDir loads templates from a directory on disk.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from an fs.FS.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithExtension overrides the default template extension.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// WithGlobalData seeds context values available to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globalData == nil {
			cfg.globalData = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globalData[strings.TrimSpace(key)] = value
		}
	}
}

// WithGoTemplateOptions exists for compatibility with callers configuring the
// go-template engine directly and is currently a no-op.
func WithGoTemplateOptions(_ ...gotemplatepkg.Option) Option {
	return func(*config) {}
}

// Engine satisfies the template.TemplateRenderer seam using a pongo2-backed
// template set. Parsed templates are cached per path.
type Engine struct {
	mu sync.RWMutex

	templateSet *pongo2.TemplateSet
	templates   map[string]*pongo2.Template
	tplExt      string
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine using the provided options.
func New(options ...Option) (*Engine, error) {
	cfg := &config{
		extension: ".tmpl",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	if cfg.baseDir == "" && cfg.templates == nil {
		return nil, errors.New("gotemplate: need to provide either base dir or fs.FS")
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
	}

	engine := &Engine{
		templateSet: pongo2.NewSet("formblocks", loaders...),
		templates:   make(map[string]*pongo2.Template),
		tplExt:      cfg.extension,
	}

	if err := engine.GlobalContext(cfg.globalData); err != nil {
		return nil, fmt.Errorf("gotemplate: apply global data: %w", err)
	}
	return engine, nil
}

// RenderTemplate renders a named template from the configured loaders.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.templateSet == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	templatePath := name
	if !strings.HasSuffix(templatePath, e.tplExt) {
		templatePath += e.tplExt
	}

	tmpl, err := e.getTemplate(templatePath)
	if err != nil {
		return "", err
	}
	return e.execute(tmpl, templatePath, data, out...)
}

// RenderString renders inline template content.
func (e *Engine) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.templateSet == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	tmpl, err := e.templateSet.FromString(templateContent)
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse template string: %w", err)
	}
	return e.execute(tmpl, "inline", data, out...)
}

// GlobalContext seeds global data on the template set.
func (e *Engine) GlobalContext(data any) error {
	if e == nil || e.templateSet == nil {
		return errors.New("gotemplate: engine is nil")
	}
	if data == nil {
		return nil
	}

	globalCtx, err := convertToContext(data)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.templateSet.Globals == nil {
		e.templateSet.Globals = make(pongo2.Context)
	}
	e.templateSet.Globals.Update(globalCtx)
	return nil
}

func (e *Engine) execute(tmpl *pongo2.Template, name string, data any, out ...io.Writer) (string, error) {
	viewContext, err := convertToContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: convert data: %w", err)
	}

	var buf bytes.Buffer

	e.mu.RLock()
	err = tmpl.ExecuteWriter(viewContext, &buf)
	e.mu.RUnlock()

	if err != nil {
		return "", fmt.Errorf("gotemplate: execute template %q: %w", name, err)
	}

	rendered := buf.String()
	for _, w := range out {
		if _, err := w.Write([]byte(rendered)); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

func (e *Engine) getTemplate(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[path]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}

	tmpl, err := e.templateSet.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load template %q: %w", path, err)
	}

	e.templates[path] = tmpl
	return tmpl, nil
}

func convertToContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return v, nil
	case map[string]any:
		out := make(pongo2.Context, len(v))
		for key, value := range v {
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			out[key] = value
		}
		return out, nil
	default:
		m, err := jsonToMap(v)
		if err != nil {
			return nil, err
		}
		return pongo2.Context(m), nil
	}
}

func jsonToMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
