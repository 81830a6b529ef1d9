package web_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/goliatone/go-formblocks/pkg/content"
	"github.com/goliatone/go-formblocks/pkg/forms"
	"github.com/goliatone/go-formblocks/pkg/render"
	"github.com/goliatone/go-formblocks/pkg/renderers/vanilla"
	"github.com/goliatone/go-formblocks/pkg/web"
)

var csrfInputPattern = regexp.MustCompile(`name="_csrf" value="([^"]+)"`)

func intPtr(v int) *int { return &v }

func testTree() *content.Node {
	return &content.Node{
		ID:   1,
		Kind: content.KindForm,
		Attrs: content.Attrs{
			Name:         "contact",
			ErrorMessage: "Please fix the errors below.",
			RedirectKind: content.RedirectToURL,
			URL:          "/thanks",
		},
		Children: []*content.Node{
			{
				ID:   2,
				Kind: content.KindTextField,
				Attrs: content.Attrs{
					Label:    "Full Name",
					Required: true,
					MinValue: intPtr(2),
				},
			},
			{ID: 3, Kind: content.KindSubmitButton, Attrs: content.Attrs{ButtonLabel: "Send"}},
		},
	}
}

func newServer(t *testing.T) *web.Server {
	t.Helper()

	registry := render.NewRegistry()
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("vanilla.New() error = %v", err)
	}
	registry.MustRegister(renderer)

	processor := forms.New(forms.WithRegistry(registry))
	server, err := web.New(processor, web.TreeSource{testTree()},
		web.WithSessionSecret("test-secret"),
	)
	if err != nil {
		t.Fatalf("web.New() error = %v", err)
	}
	return server
}

func get(t *testing.T, server *web.Server, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	server.Echo.ServeHTTP(rec, req)
	return rec
}

func TestShowFormIncludesCSRFToken(t *testing.T) {
	server := newServer(t)

	rec := get(t, server, "/forms/contact", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET status = %d, body: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `name="field-2"`) {
		t.Errorf("form field missing:\n%s", body)
	}
	if !csrfInputPattern.MatchString(body) {
		t.Errorf("hidden CSRF input missing:\n%s", body)
	}
}

func TestShowFormUnknownName(t *testing.T) {
	server := newServer(t)

	rec := get(t, server, "/forms/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("GET status = %d, want 404", rec.Code)
	}
}

func TestSubmitSuccessRedirects(t *testing.T) {
	server := newServer(t)

	first := get(t, server, "/forms/contact", nil)
	token := csrfInputPattern.FindStringSubmatch(first.Body.String())
	if token == nil {
		t.Fatal("no CSRF token rendered")
	}
	cookies := first.Result().Cookies()

	form := url.Values{
		"_csrf":   {token[1]},
		"field-2": {"Jane Doe"},
	}
	req := httptest.NewRequest(http.MethodPost, "/forms/contact", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	server.Echo.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("POST status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if location := rec.Header().Get("Location"); location != "/thanks" {
		t.Errorf("Location = %q, want /thanks", location)
	}
}

func TestSubmitFailureFlashesErrors(t *testing.T) {
	server := newServer(t)

	first := get(t, server, "/forms/contact", nil)
	token := csrfInputPattern.FindStringSubmatch(first.Body.String())
	if token == nil {
		t.Fatal("no CSRF token rendered")
	}
	cookies := first.Result().Cookies()

	form := url.Values{"_csrf": {token[1]}}
	req := httptest.NewRequest(http.MethodPost, "/forms/contact", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	server.Echo.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("POST status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if location := rec.Header().Get("Location"); location != "/forms/contact" {
		t.Errorf("Location = %q, want the form itself", location)
	}

	// Follow the redirect with the session cookie carrying the flash.
	cookies = append(cookies, rec.Result().Cookies()...)
	second := get(t, server, "/forms/contact", cookies)
	if second.Code != http.StatusUnprocessableEntity {
		t.Fatalf("GET after failure status = %d", second.Code)
	}
	body := second.Body.String()
	if !strings.Contains(body, "This field is required.") {
		t.Errorf("field error missing after redirect:\n%s", body)
	}
	if !strings.Contains(body, "Please fix the errors below.") {
		t.Errorf("form error message missing after redirect:\n%s", body)
	}
}

func TestSubmitWithoutCSRFTokenForbidden(t *testing.T) {
	server := newServer(t)

	req := httptest.NewRequest(http.MethodPost, "/forms/contact",
		strings.NewReader("field-2=Jane"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	server.Echo.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("POST status = %d, want 403", rec.Code)
	}
}
