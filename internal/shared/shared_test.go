package shared

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseISODuration(t *testing.T) {
	tc := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "seconds only", input: "PT45S", want: 45},
		{name: "minutes and seconds", input: "PT4M13S", want: 253},
		{name: "hours minutes seconds", input: "PT1H2M3S", want: 3723},
		{name: "hours only", input: "PT2H", want: 7200},
		{name: "with days", input: "P1DT1S", want: 86401},
		{name: "zero", input: "PT0S", want: 0},
		{name: "weeks", input: "P1W", want: 604800},
		{name: "fractional seconds", input: "PT1.5S", want: 1},
		{name: "negative", input: "-PT5S", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "bare P", input: "P", wantErr: true},
		{name: "bare PT", input: "PT", wantErr: true},
		{name: "garbage", input: "4:13", wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseISODuration(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseISODuration(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Errorf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseISODuration(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tc := []struct {
		seconds int
		want    string
	}{
		{0, "0:00"},
		{59, "0:59"},
		{253, "4:13"},
		{3723, "1:02:03"},
		{-5, "0:00"},
	}

	for _, tt := range tc {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}

	if got := HumanizeISODuration("PT1H2M3S"); got != "1:02:03" {
		t.Errorf("HumanizeISODuration() = %q", got)
	}
	if got := HumanizeISODuration("P0D-live"); got != "P0D-live" {
		t.Errorf("unparsable durations should be returned as-is, got %q", got)
	}
}

func TestLogger(t *testing.T) {
	t.Run("SetLogLevelString", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)

		SetLogLevelString(logger, "WARN")
		if logger.GetLevel() != log.WarnLevel {
			t.Errorf("expected warn level, got %v", logger.GetLevel())
		}

		logger.Info("hidden")
		if strings.Contains(buf.String(), "hidden") {
			t.Error("info message should be filtered at warn level")
		}

		SetLogLevelString(logger, "nonsense")
		if logger.GetLevel() != log.InfoLevel {
			t.Errorf("unknown levels should fall back to info, got %v", logger.GetLevel())
		}
	})

	t.Run("WithLogger adds fields", func(t *testing.T) {
		var buf bytes.Buffer
		logger := WithLogger(NewLogger(&buf), "component", "resolver")
		logger.Info("hello")
		if !strings.Contains(buf.String(), "component=resolver") {
			t.Errorf("expected child logger fields in output, got %q", buf.String())
		}
	})
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b {
		t.Error("expected unique IDs")
	}
	if len(a) != 36 {
		t.Errorf("expected uuid string of length 36, got %d", len(a))
	}
}

func TestBrowserCommand(t *testing.T) {
	for _, goos := range []string{"darwin", "linux", "windows"} {
		cmd, err := browserCommand(goos, "http://127.0.0.1:3000")
		if err != nil {
			t.Errorf("%s: unexpected error %v", goos, err)
			continue
		}
		if cmd.Args[len(cmd.Args)-1] != "http://127.0.0.1:3000" {
			t.Errorf("%s: url should be the last argument, got %v", goos, cmd.Args)
		}
	}

	if _, err := browserCommand("plan9", "http://x"); !errors.Is(err, ErrNotImplemented) {
		t.Errorf("expected ErrNotImplemented, got %v", err)
	}
}
