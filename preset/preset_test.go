package preset

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-texture/dsp/core"
	"github.com/cwbudde/algo-texture/dsp/generators"
	"github.com/cwbudde/algo-texture/engine"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	p := New("dust")
	p.Author = "someone"
	p.License = "CC0-1.0"
	p.State.Noise[1].Enabled = true
	p.State.Noise[1].Type = generators.Brown
	p.State.Noise[1].Density = 0.25
	p.State.Crackle[0].Shape = generators.Linear
	p.State.Glitch[1].Repeat = 6
	p.State.Gate.Inverted = true
	p.State.Pitch.Fine = -12.5
	p.State.Global.PlayMode = engine.Hold
	p.State.Global.EntropyDepth = 0.7

	var buf bytes.Buffer
	if err := Encode(&buf, p); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	got, issues, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("issues = %v", issues)
	}
	if got != p {
		t.Fatalf("round trip = %+v, want %+v", got, p)
	}
}

func TestEncodeWritesLabels(t *testing.T) {
	p := New("labels")
	p.State.Noise[0].Type = generators.Pink
	p.State.Noise[0].Enabled = true

	var buf bytes.Buffer
	if err := Encode(&buf, p); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"type": "pink"`, `"enabled": true`, `"play_mode": "on"`, `"version": 1`, `"rgate"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("output lacks %s:\n%s", want, out)
		}
	}
}

func TestDecodeBestEffort(t *testing.T) {
	doc := `{
		"version": 1,
		"name": "partial",
		"modules": {
			"noise1": {"type": "Brown", "density": "0.5", "gain": "loud", "wobble": 3},
			"crackle2": {"shape": 2, "enabled": true, "rate": 1000},
			"reverb": {"mix": 1}
		},
		"global": {"entropy_rate": [1, 2], "play_mode": "hold"}
	}`

	p, issues, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	s := p.State
	if s.Noise[0].Type != generators.Brown || s.Noise[0].Density != 0.5 {
		t.Fatalf("noise1 = %+v", s.Noise[0])
	}
	if s.Noise[0].Gain != generators.NoiseGainRange.Default {
		t.Fatalf("malformed gain changed the default: %v", s.Noise[0].Gain)
	}
	if !s.Crackle[1].Enabled || s.Crackle[1].Shape != generators.Triangle || s.Crackle[1].Rate != 100 {
		t.Fatalf("crackle2 = %+v", s.Crackle[1])
	}
	if s.Global.PlayMode != engine.Hold {
		t.Fatalf("play mode = %v", s.Global.PlayMode)
	}

	var got []string
	for _, is := range issues {
		got = append(got, is.Module+"."+is.Param)
	}
	want := []string{"global.entropy_rate", "noise1.gain", "noise1.wobble", "reverb."}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("issues = %v, want %v", got, want)
	}
}

func TestDecodeSkipsMalformedSections(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		wantGain float64
		want     string
	}{
		{
			name:     "module not an object",
			doc:      `{"version": 1, "modules": {"noise1": {"gain": 0.9}, "crackle1": "oops"}}`,
			wantGain: 0.9,
			want:     "crackle1.",
		},
		{
			name:     "name not a string",
			doc:      `{"version": 1, "name": 7, "author": "me", "modules": {"noise1": {"gain": 0.9}}}`,
			wantGain: 0.9,
			want:     "metadata.name",
		},
		{
			name:     "global not an object",
			doc:      `{"version": 1, "modules": {"noise1": {"gain": 0.9}}, "global": 5}`,
			wantGain: 0.9,
			want:     "global.",
		},
		{
			name:     "modules not an object",
			doc:      `{"version": 1, "modules": [1, 2]}`,
			wantGain: generators.NoiseGainRange.Default,
			want:     "modules.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, issues, err := Decode(strings.NewReader(tt.doc))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if got := p.State.Noise[0].Gain; got != tt.wantGain {
				t.Fatalf("noise1 gain = %v, want %v", got, tt.wantGain)
			}
			if len(issues) != 1 || issues[0].Module+"."+issues[0].Param != tt.want {
				t.Fatalf("issues = %v, want [%s]", issues, tt.want)
			}
		})
	}
}

func TestDecodeMetadataSurvivesMalformedField(t *testing.T) {
	doc := `{"version": 1, "name": 7, "author": "me", "license": "CC0", "modules": {}}`

	p, _, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if p.Name != "" || p.Author != "me" || p.License != "CC0" {
		t.Fatalf("metadata = %q %q %q", p.Name, p.Author, p.License)
	}
}

func TestDecodeDuplicateModule(t *testing.T) {
	doc := `{"version": 1, "modules": {"noise1": {"gain": 0.9}, "NOISE1": {"gain": 0.1}}}`

	for range 10 {
		p, issues, err := Decode(strings.NewReader(doc))
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if got := p.State.Noise[0].Gain; got != 0.1 {
			t.Fatalf("noise1 gain = %v, want 0.1", got)
		}
		if len(issues) != 1 || issues[0].Module != "noise1" || issues[0].Reason != "duplicate module" {
			t.Fatalf("issues = %v", issues)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, _, err := Decode(strings.NewReader("{not json")); err == nil {
		t.Fatal("expected error for invalid json")
	}
	for _, doc := range []string{`{"version": 2, "modules": {}}`, `{"modules": {}}`} {
		if _, _, err := Decode(strings.NewReader(doc)); !errors.Is(err, ErrUnsupportedVersion) {
			t.Fatalf("Decode(%s) error = %v, want ErrUnsupportedVersion", doc, err)
		}
	}
}

func TestFileRoundTripAndApply(t *testing.T) {
	e, err := engine.New(core.DefaultProcessorConfig())
	if err != nil {
		t.Fatalf("engine.New() error = %v", err)
	}
	if _, err := e.Set(engine.Gate, "max_gain", 0.6); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "p.json")
	if err := WriteFile(path, Capture(e, "captured")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	var logs bytes.Buffer
	log := logrus.New()
	log.SetOutput(&logs)
	p, issues, err := ReadFile(path, log)
	if err != nil || len(issues) != 0 {
		t.Fatalf("ReadFile() = %v, %v", issues, err)
	}
	if !strings.Contains(logs.String(), "preset loaded") {
		t.Fatalf("log = %q", logs.String())
	}

	other, _ := engine.New(core.DefaultProcessorConfig())
	Apply(other, p)
	if v, _ := other.Get(engine.Gate, "max_gain"); v != 0.6 {
		t.Fatalf("max_gain = %v, want 0.6", v)
	}

	if _, _, err := ReadFile(filepath.Join(t.TempDir(), "missing.json"), log); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file error = %v", err)
	}
}
