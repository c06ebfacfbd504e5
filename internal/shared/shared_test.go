package shared

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNormalizeTrackKey(t *testing.T) {
	tc := []struct {
		name   string
		title  string
		artist string
		want   string
	}{
		{
			name:   "basic normalization",
			title:  "Song Title",
			artist: "Artist Name",
			want:   "song title|artist name",
		},
		{
			name:   "extra whitespace",
			title:  "  Song   Title  ",
			artist: "  Artist   Name  ",
			want:   "song title|artist name",
		},
		{
			name:   "mixed case",
			title:  "SoNg TiTlE",
			artist: "ArTiSt NaMe",
			want:   "song title|artist name",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTrackKey(tt.title, tt.artist)
			if got != tt.want {
				t.Errorf("NormalizeTrackKey() = %v, want %v", got, tt.want)
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
		{180, "3:00"},
		{3725, "1:02:05"},
		{-4, "0:00"},
	}

	for _, tt := range tc {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	t.Run("Empty Defaults To Info", func(t *testing.T) {
		ll, err := ParseLogLevel("")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if ll != log.InfoLevel {
			t.Errorf("expected info level, got %v", ll)
		}
	})

	t.Run("Mixed Case", func(t *testing.T) {
		ll, err := ParseLogLevel(" DEBUG ")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if ll != log.DebugLevel {
			t.Errorf("expected debug level, got %v", ll)
		}
	})

	t.Run("Unknown Level", func(t *testing.T) {
		_, err := ParseLogLevel("chatty")
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := WithLogger(NewLogger(&buf), "req", "abc")
	SetLogLevel(logger, log.DebugLevel)
	logger.Debug("dispatching")

	if !strings.Contains(buf.String(), "req=abc") {
		t.Errorf("expected child logger fields in output, got %q", buf.String())
	}
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b {
		t.Error("expected unique ids")
	}
	if len(a) != 36 {
		t.Errorf("expected uuid string, got %q", a)
	}
}
