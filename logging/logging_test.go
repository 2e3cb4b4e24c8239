// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"testing"

	"github.com/charmbracelet/log"
)

func TestLoggerInitializers(t *testing.T) {
	t.Parallel()

	Init()
	if l := Logger(SourceApp); l == nil {
		t.Fatal("Logger returned nil")
	}
	if l := StdLogger(SourceWeb); l == nil {
		t.Fatal("StdLogger returned nil")
	}
}

func TestLevelFromEnv(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want log.Level
	}{
		{in: "", want: log.DebugLevel},
		{in: "info", want: log.InfoLevel},
		{in: "warn", want: log.WarnLevel},
		{in: "bogus", want: log.DebugLevel},
	}

	for _, tt := range tests {
		if got := levelFromEnv(tt.in); got != tt.want {
			t.Fatalf("levelFromEnv(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
