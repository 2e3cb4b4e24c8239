/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"encoding/json"
	"net/http"

	"github.com/flamego/flamego"
)

// HealthStatus is the liveness response body.
type HealthStatus struct {
	Status     string `json:"status"`
	ModelReady bool   `json:"model_ready"`
}

// Healthz reports liveness and whether the classifier is loaded.
func Healthz(c flamego.Context, e *Engine) {
	w := c.ResponseWriter()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(HealthStatus{Status: "ok", ModelReady: e.Ready()}); err != nil {
		logger.Warn("Failed to write health response", "error", err)
	}
}
