package format

import "fmt"

// Stage groups rules by what they may assume about the text. Stages run
// in ascending order.
type Stage int

const (
	// StageStructural rules introduce or move delimiters: braces onto
	// header lines, trailing closures, header commas, leading dots.
	// Everything later assumes these tokens are in place.
	StageStructural Stage = iota

	// StageHeader rules change token boundaries inside |...| headers,
	// which spacing must then normalize.
	StageHeader

	// StageSpacing rules normalize whitespace around single tokens. They
	// commute with each other.
	StageSpacing

	// StageIndent rules reason about whole lines.
	StageIndent

	// StageLayout rules measure normalized lines against the column limit
	// to collapse or expand constructs.
	StageLayout

	// StageCleanup rules remove trailing whitespace and stray semicolons
	// that earlier stages can leave behind.
	StageCleanup
)

var stageNames = [...]string{
	StageStructural: "structural",
	StageHeader:     "header",
	StageSpacing:    "spacing",
	StageIndent:     "indent",
	StageLayout:     "layout",
	StageCleanup:    "cleanup",
}

// AllStages returns every stage in execution order.
func AllStages() []Stage {
	return []Stage{StageStructural, StageHeader, StageSpacing, StageIndent, StageLayout, StageCleanup}
}

// String returns the stage name.
func (s Stage) String() string {
	if s >= 0 && int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// ParseStage converts a stage name.
func ParseStage(name string) (Stage, error) {
	for i, n := range stageNames {
		if n == name {
			return Stage(i), nil
		}
	}
	return 0, fmt.Errorf("unknown stage %q", name)
}
