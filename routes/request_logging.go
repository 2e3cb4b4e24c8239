/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/flamego/flamego"

	"github.com/humaidq/hepaguard/logging"
)

var (
	logger        = logging.Logger(logging.SourceWeb)
	requestLogger = logging.Logger(logging.SourceWebRequest)
)

// RequestLogger logs request metadata and timing for each HTTP request.
func RequestLogger(c flamego.Context) {
	start := time.Now()

	c.Next()

	status := c.ResponseWriter().Status()
	if status == 0 {
		status = http.StatusOK
	}

	fields := []interface{}{
		"event", "request",
		"status", status,
		"duration_ms", time.Since(start).Milliseconds(),
	}
	fields = append(fields, baseRequestFields(c)...)

	requestLogger.Info("request", fields...)
}

func baseRequestFields(c flamego.Context) []interface{} {
	return []interface{}{
		"method", c.Request().Method,
		"path", c.Request().URL.Path,
		"ip", clientIP(c),
		"user_agent", c.Request().UserAgent(),
	}
}

func clientIP(c flamego.Context) string {
	forwardedFor := c.Request().Header.Get("X-Forwarded-For")
	if forwardedFor != "" {
		if idx := strings.Index(forwardedFor, ","); idx != -1 {
			forwardedFor = forwardedFor[:idx]
		}

		if ip := strings.TrimSpace(forwardedFor); ip != "" {
			return ip
		}
	}

	return c.RemoteAddr()
}
