// Package domain defines the core types and interfaces for the cake game.
// All other packages depend on domain; domain depends on nothing.
package domain

import "fmt"

// Mode is the top-level activity phase.
type Mode int

const (
	ModeMaking Mode = iota
	ModeDecorating
	ModeViewing
)

// String returns a human-readable mode.
func (m Mode) String() string {
	switch m {
	case ModeMaking:
		return "making"
	case ModeDecorating:
		return "decorating"
	case ModeViewing:
		return "viewing"
	default:
		return "unknown"
	}
}

// Making steps. Step is only meaningful while Mode is ModeMaking.
const (
	StepIntro       = 0
	StepIngredients = 1
	StepMixing      = 2
	StepBaking      = 3
	StepBakeResult  = 4
	StepHandoff     = 5
)

// StageState is the (mode, step) pair driving which activity accepts input.
type StageState struct {
	Mode Mode
	Step int
}

// Is reports whether the stage is exactly (mode, step).
func (s StageState) Is(mode Mode, step int) bool {
	return s.Mode == mode && s.Step == step
}

// String returns e.g. "making/2 (mixing)".
func (s StageState) String() string {
	if s.Mode != ModeMaking {
		return s.Mode.String()
	}
	return fmt.Sprintf("making/%d (%s)", s.Step, StepName(s.Step))
}

// StepName names a making step.
func StepName(step int) string {
	switch step {
	case StepIntro:
		return "intro"
	case StepIngredients:
		return "ingredients"
	case StepMixing:
		return "mixing"
	case StepBaking:
		return "baking"
	case StepBakeResult:
		return "bake result"
	case StepHandoff:
		return "handoff"
	default:
		return "unknown"
	}
}
