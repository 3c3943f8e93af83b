package format

import (
	"errors"
	"fmt"
)

// ErrUnknownPhase indicates a phase name outside pre, inline, post and all.
var ErrUnknownPhase = errors.New("unknown phase")

// Phase selects which part of formatting runs.
type Phase string

const (
	// PhasePre is reserved for transformations before the rule pipeline.
	// It currently leaves the text unchanged.
	PhasePre Phase = "pre"

	// PhaseInline runs the rule pipeline.
	PhaseInline Phase = "inline"

	// PhasePost is reserved for transformations after the rule pipeline.
	// It currently leaves the text unchanged.
	PhasePost Phase = "post"

	// PhaseAll runs pre, inline and post in order.
	PhaseAll Phase = "all"
)

// ParsePhase converts a phase name. The empty string selects PhaseInline.
func ParsePhase(name string) (Phase, error) {
	switch phase := Phase(name); phase {
	case "":
		return PhaseInline, nil
	case PhasePre, PhaseInline, PhasePost, PhaseAll:
		return phase, nil
	default:
		return "", fmt.Errorf("%w %q; must be one of: pre, inline, post, all", ErrUnknownPhase, name)
	}
}

// RunsPipeline reports whether the rule pipeline runs in this phase.
func (p Phase) RunsPipeline() bool {
	return p == PhaseInline || p == PhaseAll
}
