package layering

import (
	"slices"
	"strings"
)

// Level identifies the precedence of a layer. Higher levels override lower
// levels when layering.
type Level int

const (
	// LevelUnknown guards against misconfiguration so call sites can detect
	// missing metadata.
	LevelUnknown Level = iota
	// LevelBase is the weakest layer: the descriptor's own asset table.
	LevelBase
	// LevelDefault is the overlay of the locale the descriptor was authored in.
	LevelDefault
	// LevelRequested is the strongest layer: the overlay for the requested
	// locale.
	LevelRequested
)

func (l Level) String() string {
	switch l {
	case LevelBase:
		return "base"
	case LevelDefault:
		return "default"
	case LevelRequested:
		return "requested"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string representation into the corresponding Level.
// Returns LevelUnknown for unrecognised values.
func ParseLevel(value string) Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "base":
		return LevelBase
	case "default":
		return LevelDefault
	case "requested":
		return LevelRequested
	default:
		return LevelUnknown
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	*l = ParseLevel(string(text))
	return nil
}

// Chain describes an ordered layering sequence from strongest to weakest.
type Chain struct {
	ordered []Level
}

// NewChain constructs a chain, dropping unknown and repeated levels. The
// result always places stronger levels before weaker ones.
func NewChain(levels ...Level) Chain {
	filtered := make([]Level, 0, len(levels))
	for _, level := range levels {
		if level == LevelUnknown || slices.Contains(filtered, level) {
			continue
		}
		filtered = append(filtered, level)
	}
	slices.SortFunc(filtered, func(a, b Level) int { return int(b) - int(a) })
	return Chain{ordered: filtered}
}

// Ordered returns the layering sequence from strongest (index 0) to weakest.
func (c Chain) Ordered() []Level {
	out := make([]Level, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Strongest returns the first level in the chain (LevelUnknown if empty).
func (c Chain) Strongest() Level {
	if len(c.ordered) == 0 {
		return LevelUnknown
	}
	return c.ordered[0]
}

// Weakest returns the final level in the chain (LevelUnknown if empty).
func (c Chain) Weakest() Level {
	if len(c.ordered) == 0 {
		return LevelUnknown
	}
	return c.ordered[len(c.ordered)-1]
}
