package ast

import "fmt"

// Level is a triage outcome.
type Level string

const (
	LevelEmergency  Level = "emergency"
	LevelUrgent     Level = "urgent"
	LevelLessUrgent Level = "less_urgent"
	LevelNonUrgent  Level = "non_urgent"
)

// DefaultLevel is used when a protocol does not name one.
const DefaultLevel = LevelNonUrgent

// Levels returns every level from most to least severe.
func Levels() []Level {
	return []Level{LevelEmergency, LevelUrgent, LevelLessUrgent, LevelNonUrgent}
}

// ParseLevel validates s as a Level.
func ParseLevel(s string) (Level, error) {
	l := Level(s)
	if l.Severity() == 0 {
		return "", fmt.Errorf("unknown triage level %q", s)
	}
	return l, nil
}

// Severity ranks levels: emergency is 4, non_urgent is 1, unknown is 0.
func (l Level) Severity() int {
	switch l {
	case LevelEmergency:
		return 4
	case LevelUrgent:
		return 3
	case LevelLessUrgent:
		return 2
	case LevelNonUrgent:
		return 1
	default:
		return 0
	}
}

// MoreSevereThan reports whether l ranks above other.
func (l Level) MoreSevereThan(other Level) bool {
	return l.Severity() > other.Severity()
}

// String returns the level name.
func (l Level) String() string { return string(l) }
