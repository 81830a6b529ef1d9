// Package forms orchestrates the full submission pipeline: collect the field
// schema from a content tree, render it, validate a submission, persist it,
// notify recipients, and resolve the success redirect.
package forms

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/goliatone/go-formblocks/pkg/captcha"
	"github.com/goliatone/go-formblocks/pkg/collector"
	"github.com/goliatone/go-formblocks/pkg/content"
	"github.com/goliatone/go-formblocks/pkg/notify"
	"github.com/goliatone/go-formblocks/pkg/redirect"
	"github.com/goliatone/go-formblocks/pkg/render"
	"github.com/goliatone/go-formblocks/pkg/validation"
)

// SubmissionStore persists validated submissions.
type SubmissionStore interface {
	SaveSubmission(ctx context.Context, formName string, data map[string]string, senderIP string) (int64, error)
}

// Option customises a Processor.
type Option func(*Processor)

// WithCollector replaces the schema collector.
func WithCollector(c *collector.Collector) Option {
	return func(p *Processor) {
		if c != nil {
			p.collector = c
		}
	}
}

// WithRegistry wires the renderer registry consulted by Render.
func WithRegistry(registry *render.Registry) Option {
	return func(p *Processor) {
		if registry != nil {
			p.registry = registry
		}
	}
}

// WithDefaultRenderer names the renderer used when a request does not pick
// one.
func WithDefaultRenderer(name string) Option {
	return func(p *Processor) {
		if name != "" {
			p.defaultRenderer = name
		}
	}
}

// WithStore wires submission persistence. Without a store, successful
// submissions are not persisted.
func WithStore(store SubmissionStore) Option {
	return func(p *Processor) {
		p.store = store
	}
}

// WithNotifier wires the notifier invoked after a submission is accepted.
func WithNotifier(notifier notify.Notifier) Option {
	return func(p *Processor) {
		p.notifier = notifier
	}
}

// WithRedirectResolver wires success URL resolution.
func WithRedirectResolver(resolver *redirect.Resolver) Option {
	return func(p *Processor) {
		if resolver != nil {
			p.redirects = resolver
		}
	}
}

// WithCaptchaVerifier wires the verifier consulted for captcha fields.
func WithCaptchaVerifier(verifier captcha.Verifier) Option {
	return func(p *Processor) {
		p.verifier = verifier
	}
}

// Processor ties the pipeline stages together. Construct one per application
// and share it across requests; each call collects a fresh schema from the
// tree's current state.
type Processor struct {
	collector       *collector.Collector
	registry        *render.Registry
	defaultRenderer string
	store           SubmissionStore
	notifier        notify.Notifier
	redirects       *redirect.Resolver
	verifier        captcha.Verifier
}

// New constructs a Processor with a default collector and redirect resolver.
func New(options ...Option) *Processor {
	p := &Processor{
		collector:       collector.New(),
		registry:        render.NewRegistry(),
		defaultRenderer: "vanilla",
		redirects:       redirect.New(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	return p
}

// Request describes one render of a form tree.
type Request struct {
	Form     *content.Node
	Renderer string
	Options  render.RenderOptions
}

// Render collects the schema for the form tree and hands it to the requested
// renderer.
func (p *Processor) Render(ctx context.Context, req Request) ([]byte, error) {
	if req.Form == nil {
		return nil, errors.New("forms: form node is required")
	}

	schema, err := p.collector.Collect(ctx, req.Form)
	if err != nil {
		return nil, err
	}

	name := req.Renderer
	if name == "" {
		name = p.defaultRenderer
	}
	renderer, err := p.registry.Get(name)
	if err != nil {
		return nil, err
	}

	return renderer.Render(ctx, render.Form{
		Name:        req.Form.Attrs.Name,
		Action:      req.Options.Action,
		Method:      req.Options.Method,
		SubmitLabel: req.Form.SubmitLabel(),
		Schema:      schema,
	}, req.Options)
}

// SubmitRequest describes one submission against a form tree.
type SubmitRequest struct {
	Form     *content.Node
	Values   url.Values
	RemoteIP string
}

// SubmitResult reports the outcome of a submission.
type SubmitResult struct {
	OK bool
	// Errors holds per-field messages when validation failed.
	Errors validation.Errors
	// ErrorMessage is the editor-configured form level message shown on
	// failure, when one is set.
	ErrorMessage string
	// RedirectURL is where the visitor goes after an accepted submission.
	RedirectURL string
	// SubmissionID is the stored row ID, zero when no store is wired.
	SubmissionID int64
}

// Submit validates the submission against the tree's current schema. On
// success it persists the data, notifies recipients, and resolves the
// redirect target. A misconfigured redirect fails the submission even when
// the data validated cleanly.
func (p *Processor) Submit(ctx context.Context, req SubmitRequest) (SubmitResult, error) {
	if req.Form == nil {
		return SubmitResult{}, errors.New("forms: form node is required")
	}

	schema, err := p.collector.Collect(ctx, req.Form)
	if err != nil {
		return SubmitResult{}, err
	}

	form := validation.New(schema,
		validation.WithCaptchaVerifier(p.verifier),
		validation.WithRemoteIP(req.RemoteIP),
	)
	form.Bind(req.Values)
	if !form.Validate(ctx) {
		return SubmitResult{
			Errors:       form.Errors(),
			ErrorMessage: req.Form.Attrs.ErrorMessage,
		}, nil
	}

	target, err := p.redirects.Resolve(ctx, req.Form)
	if err != nil {
		return SubmitResult{}, err
	}

	result := SubmitResult{OK: true, RedirectURL: target}
	data := form.Data()

	if p.store != nil {
		id, err := p.store.SaveSubmission(ctx, req.Form.Attrs.Name, data, req.RemoteIP)
		if err != nil {
			return SubmitResult{}, fmt.Errorf("forms: persist submission: %w", err)
		}
		result.SubmissionID = id
	}

	if p.notifier != nil {
		err := p.notifier.Notify(ctx, notify.Submission{
			FormName:   req.Form.Attrs.Name,
			Recipients: req.Form.Attrs.Recipients,
			Data:       data,
			SenderIP:   req.RemoteIP,
		})
		if err != nil {
			return SubmitResult{}, fmt.Errorf("forms: notify recipients: %w", err)
		}
	}

	return result, nil
}
