// Package web exposes collected forms over HTTP: GET renders a form, POST
// validates the submission and redirects on success.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/goliatone/go-formblocks/pkg/content"
	"github.com/goliatone/go-formblocks/pkg/forms"
	"github.com/goliatone/go-formblocks/pkg/render"
)

const sessionName = "formblocks_session"

// FormSource resolves a form container by name for incoming requests.
type FormSource interface {
	Form(ctx context.Context, name string) (*content.Node, error)
}

// TreeSource serves forms from an in-memory set of content trees.
type TreeSource []*content.Node

// Form finds the named form container in the trees.
func (t TreeSource) Form(_ context.Context, name string) (*content.Node, error) {
	form, ok := content.FindForm(t, name)
	if !ok {
		return nil, fmt.Errorf("web: form %q not found", name)
	}
	return form, nil
}

// Option customises a Server.
type Option func(*Server)

// WithSessionSecret sets the cookie session signing key.
func WithSessionSecret(secret string) Option {
	return func(s *Server) {
		if secret != "" {
			s.sessionSecret = secret
		}
	}
}

// WithCookieSecure marks session and CSRF cookies secure-only.
func WithCookieSecure(secure bool) Option {
	return func(s *Server) {
		s.cookieSecure = secure
	}
}

// WithRenderer selects the renderer name handed to the processor.
func WithRenderer(name string) Option {
	return func(s *Server) {
		if name != "" {
			s.renderer = name
		}
	}
}

// Server mounts the form routes on an echo instance.
type Server struct {
	Echo *echo.Echo

	processor     *forms.Processor
	source        FormSource
	renderer      string
	sessionSecret string
	cookieSecure  bool
}

// New wires middleware and routes. The returned server is ready to serve via
// its Echo field.
func New(processor *forms.Processor, source FormSource, options ...Option) (*Server, error) {
	if processor == nil {
		return nil, fmt.Errorf("web: processor is required")
	}
	if source == nil {
		return nil, fmt.Errorf("web: form source is required")
	}

	s := &Server{
		Echo:          echo.New(),
		processor:     processor,
		source:        source,
		sessionSecret: "formblocks-dev-secret",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	e := s.Echo
	e.HideBanner = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			c.Logger().Infof("%s %s -> %d (%s)", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(session.Middleware(s.newSessionStore()))
	e.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
		TokenLookup:    "header:X-CSRF-Token,form:_csrf",
		CookieName:     "_csrf",
		CookiePath:     "/",
		CookieSameSite: http.SameSiteLaxMode,
		CookieSecure:   s.cookieSecure,
		ErrorHandler: func(err error, c echo.Context) error {
			return c.String(http.StatusForbidden, "Forbidden")
		},
	}))

	e.GET("/forms/:name", s.showForm)
	e.POST("/forms/:name", s.submitForm)

	return s, nil
}

func (s *Server) newSessionStore() *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(s.sessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   60 * 60,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.cookieSecure,
	}
	return store
}

// flash carries a failed submission across the redirect back to the form.
type flash struct {
	Values       map[string][]string `json:"values"`
	Errors       map[string][]string `json:"errors"`
	ErrorMessage string              `json:"errorMessage,omitempty"`
}

func (s *Server) showForm(c echo.Context) error {
	name := c.Param("name")
	form, err := s.source.Form(c.Request().Context(), name)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("form %q not found", name))
	}

	opts := render.RenderOptions{
		Action: c.Request().URL.Path,
		Hidden: map[string]string{"_csrf": csrfToken(c)},
	}

	status := http.StatusOK
	if stashed, ok := popFlash(c); ok {
		opts.Values = stashed.Values
		opts.Errors = stashed.Errors
		if stashed.ErrorMessage != "" {
			opts.Errors = mergedFormError(opts.Errors, stashed.ErrorMessage)
		}
		status = http.StatusUnprocessableEntity
	}

	body, err := s.processor.Render(c.Request().Context(), forms.Request{
		Form:     form,
		Renderer: s.renderer,
		Options:  opts,
	})
	if err != nil {
		return fmt.Errorf("web: render form %q: %w", name, err)
	}
	return c.HTMLBlob(status, body)
}

func (s *Server) submitForm(c echo.Context) error {
	name := c.Param("name")
	form, err := s.source.Form(c.Request().Context(), name)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("form %q not found", name))
	}

	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form body")
	}
	values.Del("_csrf")

	result, err := s.processor.Submit(c.Request().Context(), forms.SubmitRequest{
		Form:     form,
		Values:   values,
		RemoteIP: c.RealIP(),
	})
	if err != nil {
		return fmt.Errorf("web: submit form %q: %w", name, err)
	}

	if !result.OK {
		if err := pushFlash(c, flash{
			Values:       values,
			Errors:       result.Errors,
			ErrorMessage: result.ErrorMessage,
		}); err != nil {
			return fmt.Errorf("web: stash submission feedback: %w", err)
		}
		return c.Redirect(http.StatusSeeOther, c.Request().URL.Path)
	}

	return c.Redirect(http.StatusSeeOther, result.RedirectURL)
}

// pushFlash stores the failed submission in the session as JSON so the
// cookie codec never needs type registration.
func pushFlash(c echo.Context, f flash) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(f)
	if err != nil {
		return err
	}
	sess.Values["flash"] = string(payload)
	return sess.Save(c.Request(), c.Response())
}

func popFlash(c echo.Context) (flash, bool) {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return flash{}, false
	}
	raw, ok := sess.Values["flash"].(string)
	if !ok || raw == "" {
		return flash{}, false
	}
	delete(sess.Values, "flash")
	_ = sess.Save(c.Request(), c.Response())

	var f flash
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		return flash{}, false
	}
	return f, true
}

func mergedFormError(errs map[string][]string, message string) map[string][]string {
	if errs == nil {
		errs = make(map[string][]string)
	}
	errs["__all__"] = append([]string{message}, errs["__all__"]...)
	return errs
}

func csrfToken(c echo.Context) string {
	token, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	return token
}
