package preset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-texture/dsp/param"
	"github.com/cwbudde/algo-texture/engine"
)

// Version is the document version written by Encode.
const Version = 1

// ErrUnsupportedVersion is returned for documents newer than Version or
// without a positive version.
var ErrUnsupportedVersion = errors.New("preset: unsupported version")

// Preset is an engine state with descriptive metadata.
type Preset struct {
	Version int
	Name    string
	Author  string
	License string
	State   engine.State
}

// Issue describes one part of a document that was skipped.
type Issue struct {
	Module string
	Param  string
	Reason string
}

func (i Issue) String() string {
	if i.Param == "" {
		return fmt.Sprintf("%s: %s", i.Module, i.Reason)
	}
	return fmt.Sprintf("%s.%s: %s", i.Module, i.Param, i.Reason)
}

type document struct {
	Version int                                   `json:"version"`
	Name    string                                `json:"name,omitempty"`
	Author  string                                `json:"author,omitempty"`
	License string                                `json:"license,omitempty"`
	Modules map[string]map[string]json.RawMessage `json:"modules"`
	Global  map[string]json.RawMessage            `json:"global,omitempty"`
}

// New returns a preset holding the default engine state.
func New(name string) Preset {
	return Preset{Version: Version, Name: name, State: engine.DefaultState()}
}

// Capture returns a preset holding the engine's current state.
func Capture(e *engine.Engine, name string) Preset {
	p := New(name)
	p.State = e.State()
	return p
}

// Apply restores p into e.
func Apply(e *engine.Engine, p Preset) {
	e.SetState(p.State)
}

// Encode writes p as indented JSON. Enum values are written as labels and
// booleans as JSON booleans.
func Encode(w io.Writer, p Preset) error {
	doc := document{
		Version: Version,
		Name:    p.Name,
		Author:  p.Author,
		License: p.License,
		Modules: make(map[string]map[string]json.RawMessage),
	}

	s := p.State
	for _, id := range engine.Modules() {
		specs, err := engine.Specs(id)
		if err != nil {
			return err
		}

		values := make(map[string]json.RawMessage, len(specs))
		for _, spec := range specs {
			v, err := s.Get(id, spec.Name)
			if err != nil {
				return err
			}
			raw, err := encodeValue(spec, v)
			if err != nil {
				return fmt.Errorf("preset: %v.%s: %w", id, spec.Name, err)
			}
			values[spec.Name] = raw
		}

		if id == engine.Global {
			doc.Global = values
		} else {
			doc.Modules[id.String()] = values
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Decode reads a document. Missing parameters keep their defaults. Only
// unparseable JSON and an unsupported version are errors; malformed
// metadata, modules and values are skipped and reported as issues.
func Decode(r io.Reader) (Preset, []Issue, error) {
	var top map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&top); err != nil {
		return Preset{}, nil, fmt.Errorf("preset: invalid json: %w", err)
	}

	var version int
	if raw, ok := top["version"]; ok {
		if err := json.Unmarshal(raw, &version); err != nil {
			return Preset{}, nil, fmt.Errorf("%w: %s", ErrUnsupportedVersion, bytes.TrimSpace(raw))
		}
	}
	if version < 1 || version > Version {
		return Preset{}, nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	p := Preset{Version: version, State: engine.DefaultState()}

	var issues []Issue
	for _, m := range []struct {
		key string
		dst *string
	}{
		{"name", &p.Name},
		{"author", &p.Author},
		{"license", &p.License},
	} {
		raw, ok := top[m.key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, m.dst); err != nil {
			issues = append(issues, Issue{Module: "metadata", Param: m.key, Reason: "malformed value"})
		}
	}

	var modules map[string]json.RawMessage
	if raw, ok := top["modules"]; ok {
		if err := json.Unmarshal(raw, &modules); err != nil {
			issues = append(issues, Issue{Module: "modules", Reason: "malformed modules"})
		}
	}

	// Module names match case-insensitively, so sorted keys make the
	// first spelling of a module win deterministically.
	seen := make(map[engine.ModuleID]bool, len(modules))
	for _, module := range slices.Sorted(maps.Keys(modules)) {
		id, err := engine.ParseModuleID(module)
		if err != nil || id == engine.Global {
			issues = append(issues, Issue{Module: module, Reason: "unknown module"})
			continue
		}
		if seen[id] {
			issues = append(issues, Issue{Module: module, Reason: "duplicate module"})
			continue
		}
		seen[id] = true

		var values map[string]json.RawMessage
		if err := json.Unmarshal(modules[module], &values); err != nil {
			issues = append(issues, Issue{Module: module, Reason: "malformed module"})
			continue
		}
		issues = append(issues, decodeModule(&p.State, id, module, values)...)
	}

	if raw, ok := top["global"]; ok {
		var values map[string]json.RawMessage
		if err := json.Unmarshal(raw, &values); err != nil {
			issues = append(issues, Issue{Module: "global", Reason: "malformed module"})
		} else {
			issues = append(issues, decodeModule(&p.State, engine.Global, "global", values)...)
		}
	}

	slices.SortFunc(issues, func(a, b Issue) int {
		if c := strings.Compare(a.Module, b.Module); c != 0 {
			return c
		}
		return strings.Compare(a.Param, b.Param)
	})
	return p, issues, nil
}

func decodeModule(s *engine.State, id engine.ModuleID, module string, values map[string]json.RawMessage) []Issue {
	specs, _ := engine.Specs(id)

	var issues []Issue
	for name, raw := range values {
		spec, ok := lookup(specs, name)
		if !ok {
			issues = append(issues, Issue{Module: module, Param: name, Reason: "unknown parameter"})
			continue
		}
		v, err := decodeValue(spec, raw)
		if err != nil {
			issues = append(issues, Issue{Module: module, Param: name, Reason: err.Error()})
			continue
		}
		if _, err := s.Set(id, name, v); err != nil {
			issues = append(issues, Issue{Module: module, Param: name, Reason: err.Error()})
		}
	}
	return issues
}

func lookup(specs []param.Spec, name string) (param.Spec, bool) {
	for _, s := range specs {
		if s.Name == name {
			return s, true
		}
	}
	return param.Spec{}, false
}

func encodeValue(spec param.Spec, v float64) (json.RawMessage, error) {
	switch spec.Kind {
	case param.Bool:
		return json.Marshal(v != 0)
	case param.Enum:
		if l := spec.Label(v); l != "" {
			return json.Marshal(l)
		}
		return json.Marshal(int(v))
	case param.Int:
		return json.Marshal(int(v))
	default:
		return json.Marshal(v)
	}
}

// decodeValue accepts numbers, booleans, enum labels and numeric strings.
func decodeValue(spec param.Spec, raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return num, nil
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return param.BoolValue(b), nil
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		if v, ok := spec.ParseLabel(str); ok {
			return v, nil
		}
		if v, err := strconv.ParseFloat(str, 64); err == nil {
			return v, nil
		}
		return 0, fmt.Errorf("invalid value %q", str)
	}

	return 0, fmt.Errorf("invalid value %s", string(raw))
}

// ReadFile decodes the preset at path and logs every issue.
func ReadFile(path string, log logrus.FieldLogger) (Preset, []Issue, error) {
	f, err := os.Open(path)
	if err != nil {
		return Preset{}, nil, fmt.Errorf("preset: %w", err)
	}
	defer f.Close()

	p, issues, err := Decode(f)
	if err != nil {
		return Preset{}, nil, fmt.Errorf("preset %s: %w", path, err)
	}

	for _, is := range issues {
		log.WithFields(logrus.Fields{
			"file":   path,
			"module": is.Module,
			"param":  is.Param,
		}).Warn(is.Reason)
	}
	log.WithFields(logrus.Fields{
		"file":    path,
		"name":    p.Name,
		"author":  p.Author,
		"skipped": len(issues),
	}).Info("preset loaded")

	return p, issues, nil
}

// WriteFile encodes p to path.
func WriteFile(path string, p Preset) error {
	var buf bytes.Buffer
	if err := Encode(&buf, p); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("preset: %w", err)
	}
	return nil
}
