package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"ERR", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"trace", zerolog.InfoLevel},
	}
	for _, c := range cases {
		if got := parseLevel(c.in); got != c.want {
			t.Fatalf("parseLevel(%q)=%v, want %v", c.in, got, c.want)
		}
	}
}

func TestInit_Level(t *testing.T) {
	Init("debug", false)
	if L().GetLevel() != zerolog.DebugLevel {
		t.Fatalf("expected debug level, got %v", L().GetLevel())
	}
	Init("warn", true)
	if L().GetLevel() != zerolog.WarnLevel {
		t.Fatalf("expected warn level, got %v", L().GetLevel())
	}
}

func TestInitWriter_Format(t *testing.T) {
	cases := []struct {
		name   string
		pretty bool
		json   bool
	}{
		{"json", false, true},
		{"console", true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			initWriter(&buf, "info", tc.pretty)
			L().Info().Str("version", "FIX.4.4").Msg("loaded")
			L().Debug().Msg("hidden")

			out := buf.String()
			if got := strings.HasPrefix(out, "{"); got != tc.json {
				t.Fatalf("json=%v for output %q", got, out)
			}
			if !strings.Contains(out, "FIX.4.4") || strings.Contains(out, "hidden") {
				t.Fatalf("unexpected output %q", out)
			}
		})
	}
}

// L falls back to an initialized logger when Init was never called.
func TestLoggerAccessor_NotNil(t *testing.T) {
	base = zerolog.Logger{}
	lg := L()
	if lg == nil {
		t.Fatalf("logger is nil")
	}
	if lg.GetLevel() != zerolog.InfoLevel {
		t.Fatalf("expected info fallback, got %v", lg.GetLevel())
	}
}
