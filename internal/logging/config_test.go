package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		raw  string
		want zerolog.Level
		ok   bool
	}{
		{"", zerolog.InfoLevel, false},
		{"debug", zerolog.DebugLevel, true},
		{" WARNING ", zerolog.WarnLevel, true},
		{"off", zerolog.Disabled, true},
		{"loud", zerolog.InfoLevel, false},
	}
	for _, tc := range cases {
		got, ok := ParseLevel(tc.raw)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseLevel(%q) = %v,%v want %v,%v", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestApplyBypassWritesJSON(t *testing.T) {
	prev := log.Logger
	prevLevel := zerolog.GlobalLevel()
	defer func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	}()

	var buf bytes.Buffer
	Apply(Config{Level: zerolog.InfoLevel, Bypass: true, Out: &buf})
	log.Info().Str("kind", "NoteOn").Msg("decoded")
	log.Debug().Msg("suppressed")

	out := buf.String()
	if !strings.Contains(out, `"kind":"NoteOn"`) {
		t.Fatalf("expected structured field, got %q", out)
	}
	if strings.Contains(out, "suppressed") {
		t.Fatalf("debug line leaked at info level: %q", out)
	}
}

func TestResolveAppliesEnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvLogBypass, "true")
	cfg := Resolve(ProfileRuntime)
	if cfg.Level != zerolog.WarnLevel {
		t.Fatalf("level = %v, want warn", cfg.Level)
	}
	if !cfg.Bypass || !cfg.Timestamp {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	t.Setenv(EnvLogLevel, "")
	if got := Resolve(ProfileTest).Level; got != zerolog.DebugLevel {
		t.Fatalf("test profile level = %v, want debug", got)
	}
}
