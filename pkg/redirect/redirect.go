// Package redirect resolves where a form sends the visitor after a successful
// submission.
package redirect

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-formblocks/pkg/content"
)

// ErrNotConfigured reports a form container with no usable redirect target.
// This is a fatal misconfiguration surfaced immediately, never retried.
var ErrNotConfigured = errors.New("redirect: form is not configured properly")

// PageURLResolver turns a CMS page reference into an absolute URL. The CMS
// owns page data; this package only asks for the final address.
type PageURLResolver interface {
	PageURL(ctx context.Context, pageID string) (string, error)
}

// PageURLFunc adapts a function to the PageURLResolver interface.
type PageURLFunc func(ctx context.Context, pageID string) (string, error)

// PageURL calls the wrapped function.
func (f PageURLFunc) PageURL(ctx context.Context, pageID string) (string, error) {
	return f(ctx, pageID)
}

// Resolver resolves success URLs for form containers.
type Resolver struct {
	pages PageURLResolver
}

// Option customises a Resolver.
type Option func(*Resolver)

// WithPageURLResolver wires the CMS page lookup used for page-kind redirects.
func WithPageURLResolver(pages PageURLResolver) Option {
	return func(r *Resolver) {
		r.pages = pages
	}
}

// New constructs a Resolver.
func New(opts ...Option) *Resolver {
	r := &Resolver{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Resolve returns the success URL for a form container node.
func (r *Resolver) Resolve(ctx context.Context, form *content.Node) (string, error) {
	if form == nil {
		return "", ErrNotConfigured
	}
	switch form.Attrs.RedirectKind {
	case content.RedirectToPage:
		if form.Attrs.PageID == "" || r.pages == nil {
			return "", ErrNotConfigured
		}
		target, err := r.pages.PageURL(ctx, form.Attrs.PageID)
		if err != nil {
			return "", fmt.Errorf("redirect: resolve page %q: %w", form.Attrs.PageID, err)
		}
		return target, nil
	case content.RedirectToURL:
		if form.Attrs.URL == "" {
			return "", ErrNotConfigured
		}
		return form.Attrs.URL, nil
	default:
		return "", ErrNotConfigured
	}
}
