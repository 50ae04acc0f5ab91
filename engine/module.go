package engine

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-texture/dsp/core"
	"github.com/cwbudde/algo-texture/dsp/effects"
	"github.com/cwbudde/algo-texture/dsp/generators"
	"github.com/cwbudde/algo-texture/dsp/param"
)

// ModuleID addresses one module instance, or the global controls.
type ModuleID int

const (
	Noise1 ModuleID = iota
	Noise2
	Crackle1
	Crackle2
	Glitch1
	Glitch2
	Gate
	Pitch
	Global

	numModules = int(Global)
)

var moduleNames = [...]string{
	Noise1:   "noise1",
	Noise2:   "noise2",
	Crackle1: "crackle1",
	Crackle2: "crackle2",
	Glitch1:  "glitch1",
	Glitch2:  "glitch2",
	Gate:     "rgate",
	Pitch:    "pitch",
	Global:   "global",
}

func (id ModuleID) String() string {
	if !id.valid() {
		return fmt.Sprintf("ModuleID(%d)", int(id))
	}
	return moduleNames[id]
}

func (id ModuleID) valid() bool {
	return id >= Noise1 && id <= Global
}

// Modules returns every ModuleID in pipeline order, followed by Global.
func Modules() []ModuleID {
	ids := make([]ModuleID, 0, len(moduleNames))
	for id := Noise1; id <= Global; id++ {
		ids = append(ids, id)
	}
	return ids
}

// ParseModuleID resolves a module name such as "noise1" or "rgate".
func ParseModuleID(name string) (ModuleID, error) {
	for id, n := range moduleNames {
		if strings.EqualFold(n, name) {
			return ModuleID(id), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownModule, name)
}

// Module is the capability shared by every pipeline stage.
type Module interface {
	Enabled() bool
	SetEnabled(on bool) bool
	Reset()
	Process(buf core.Stereo)
}

// Parameterized modules expose their parameters by name.
type Parameterized interface {
	Parameters() []param.Spec
	Parameter(name string) (float64, bool)
	SetParameter(name string, v float64) (changed, ok bool)
}

// Modulated modules follow the shared entropy value.
type Modulated interface {
	SetEntropy(e float64)
}

type stage interface {
	Module
	Parameterized
}

var (
	_ stage     = (*generators.Noise)(nil)
	_ stage     = (*generators.Crackle)(nil)
	_ stage     = (*effects.Glitch)(nil)
	_ stage     = (*effects.Burster)(nil)
	_ stage     = (*effects.Drift)(nil)
	_ Modulated = (*generators.Noise)(nil)
	_ Modulated = (*generators.Crackle)(nil)
	_ Modulated = (*effects.Drift)(nil)
)
