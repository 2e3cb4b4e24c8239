// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/flamego/flamego"

	"github.com/humaidq/hepaguard/model"
	"github.com/humaidq/hepaguard/routes"
)

func TestConfigureEmptyNotFoundHandlerReturnsStatusOnly(t *testing.T) {
	t.Parallel()

	f := flamego.New()
	configureEmptyNotFoundHandler(f)

	req := httptest.NewRequest(http.MethodGet, "/does-not-exist", nil)
	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}

	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty 404 body, got %q", rec.Body.String())
	}
}

func TestParseRuntimeEnv(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value   string
		dev     bool
		wantErr bool
	}{
		{value: "", dev: false},
		{value: "production", dev: false},
		{value: " PROD ", dev: false},
		{value: "development", dev: true},
		{value: "dev", dev: true},
		{value: "staging", wantErr: true},
	}

	for _, tt := range tests {
		dev, err := parseRuntimeEnv(tt.value)
		if tt.wantErr {
			if !errors.Is(err, errInvalidRuntimeEnv) {
				t.Fatalf("parseRuntimeEnv(%q) expected errInvalidRuntimeEnv, got %v", tt.value, err)
			}

			continue
		}

		if err != nil || dev != tt.dev {
			t.Fatalf("parseRuntimeEnv(%q) = %v, %v; want %v", tt.value, dev, err, tt.dev)
		}
	}
}

func TestCSRFSecret(t *testing.T) {
	t.Setenv(csrfSecretEnv, "")

	if _, err := csrfSecret(false); !errors.Is(err, errCSRFSecretRequired) {
		t.Fatalf("expected errCSRFSecretRequired in production, got %v", err)
	}

	if _, err := csrfSecret(true); err != nil {
		t.Fatalf("expected empty secret to be allowed in development, got %v", err)
	}

	t.Setenv(csrfSecretEnv, "s3cret")

	got, err := csrfSecret(false)
	if err != nil || got != "s3cret" {
		t.Fatalf("csrfSecret() = %q, %v", got, err)
	}
}

func TestNewWebAppServesStaticAndHealth(t *testing.T) {
	t.Parallel()

	engine := routes.TrainEngine(filepath.Join(t.TempDir(), "missing.csv"), model.DefaultTrainOptions())

	f, err := newWebApp(engine, false, "test-secret")
	if err != nil {
		t.Fatalf("newWebApp failed: %v", err)
	}

	tests := []struct {
		path string
		want int
	}{
		{path: "/healthz", want: http.StatusOK},
		{path: "/hepaguard.css", want: http.StatusOK},
		{path: "/", want: http.StatusOK},
		{path: "/nope", want: http.StatusNotFound},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		rec := httptest.NewRecorder()
		f.ServeHTTP(rec, req)

		if rec.Code != tt.want {
			t.Fatalf("GET %s: expected status %d, got %d", tt.path, tt.want, rec.Code)
		}
	}
}
