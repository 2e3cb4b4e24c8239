// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	htmltemplate "html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/flamego/csrf"
	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/humaidq/hepaguard/templates"
	"github.com/humaidq/hepaguard/theme"
)

type testSession struct {
	id    string
	data  map[interface{}]interface{}
	flash interface{}
}

func newTestSession() *testSession {
	return &testSession{
		id:   "test-session",
		data: make(map[interface{}]interface{}),
	}
}

func (s *testSession) ID() string {
	return s.id
}

func (s *testSession) RegenerateID(http.ResponseWriter, *http.Request) error {
	return nil
}

func (s *testSession) Get(key interface{}) interface{} {
	return s.data[key]
}

func (s *testSession) Set(key, val interface{}) {
	s.data[key] = val
}

func (s *testSession) SetFlash(val interface{}) {
	s.flash = val
}

func (s *testSession) Delete(key interface{}) {
	delete(s.data, key)
}

func (s *testSession) Flush() {
	s.data = make(map[interface{}]interface{})
}

func (s *testSession) Encode() ([]byte, error) {
	return nil, nil
}

func (s *testSession) HasChanged() bool {
	return true
}

type testCSRF struct {
	token string
}

func (c testCSRF) Token() string {
	return c.token
}

func (c testCSRF) ValidToken(string) bool {
	return true
}

func (c testCSRF) Error(http.ResponseWriter) {}

func (c testCSRF) Validate(flamego.Context) {}

// newTestApp wires the dashboard routes with the embedded templates and
// test doubles for the session and CSRF middleware.
func newTestApp(t *testing.T, s session.Session, e *Engine) *flamego.Flame {
	t.Helper()

	fs, err := template.EmbedFS(templates.Templates, ".", []string{".html"})
	if err != nil {
		t.Fatalf("failed to load templates: %v", err)
	}

	f := flamego.New()
	f.Use(template.Templater(template.Options{
		FileSystem: fs,
		FuncMaps:   []htmltemplate.FuncMap{TemplateFuncs()},
	}))
	f.Use(func(c flamego.Context) {
		c.MapTo(s, (*session.Session)(nil))
		c.MapTo(testCSRF{token: "test-token"}, (*csrf.CSRF)(nil))
		c.Map(e)
		c.Next()
	})
	f.Use(CSRFInjector())
	f.Use(ThemeInjector(theme.Default))

	f.Get("/", PredictForm)
	f.Post("/predict", Predict)
	f.Get("/analytics", Analytics)
	f.Get("/patients", ListPatients)
	f.Post("/patients", SavePatient)
	f.Get("/patients/{id}", ViewPatient)
	f.Post("/patients/{id}/delete", DeletePatient)
	f.Get("/healthz", Healthz)

	return f
}

func performGET(t *testing.T, f *flamego.Flame, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, req)

	return rec
}

func performFormPOST(t *testing.T, f *flamego.Flame, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, req)

	return rec
}

func performMalformedFormPOST(t *testing.T, f *flamego.Flame, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader("%"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, req)

	return rec
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, wantLocation string) {
	t.Helper()

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}

	if got := rec.Header().Get("Location"); got != wantLocation {
		t.Fatalf("expected redirect %q, got %q", wantLocation, got)
	}
}

func assertFlash(t *testing.T, s *testSession, wantType FlashType, wantMessage string) {
	t.Helper()

	msg, ok := s.flash.(FlashMessage)
	if !ok {
		t.Fatalf("expected flash message, got %T", s.flash)
	}

	if msg.Type != wantType || msg.Message != wantMessage {
		t.Fatalf("unexpected flash message: %#v", msg)
	}
}

func assertNoFlash(t *testing.T, s *testSession) {
	t.Helper()

	if s.flash != nil {
		t.Fatalf("expected no flash message, got %#v", s.flash)
	}
}

func assertBodyContains(t *testing.T, rec *httptest.ResponseRecorder, want ...string) {
	t.Helper()

	body := rec.Body.String()
	for _, w := range want {
		if !strings.Contains(body, w) {
			t.Fatalf("expected body to contain %q, got:\n%s", w, body)
		}
	}
}
