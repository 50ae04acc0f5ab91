package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-texture/dsp/param"
	"github.com/cwbudde/algo-texture/engine"
)

// parseAssignment splits "module.param=value" and resolves the value against
// the parameter spec. Enum labels and true/false are accepted.
func parseAssignment(s string) (engine.ModuleID, string, float64, error) {
	key, raw, ok := strings.Cut(s, "=")
	if !ok {
		return 0, "", 0, fmt.Errorf("-set %q: want module.param=value", s)
	}
	mod, name, ok := strings.Cut(strings.TrimSpace(key), ".")
	if !ok || name == "" {
		return 0, "", 0, fmt.Errorf("-set %q: want module.param=value", s)
	}
	id, err := engine.ParseModuleID(mod)
	if err != nil {
		return 0, "", 0, fmt.Errorf("-set %q: %w", s, err)
	}
	specs, err := engine.Specs(id)
	if err != nil {
		return 0, "", 0, err
	}
	var spec param.Spec
	found := false
	for _, sp := range specs {
		if sp.Name == name {
			spec, found = sp, true
			break
		}
	}
	if !found {
		return 0, "", 0, fmt.Errorf("-set %q: %w: %s.%s", s, engine.ErrUnknownParameter, id, name)
	}

	raw = strings.TrimSpace(raw)
	if v, ok := spec.ParseLabel(raw); ok {
		return id, name, v, nil
	}
	if b, err := strconv.ParseBool(raw); err == nil && spec.Kind == param.Bool {
		return id, name, param.BoolValue(b), nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, "", 0, fmt.Errorf("-set %q: invalid value %q", s, raw)
	}
	return id, name, v, nil
}
