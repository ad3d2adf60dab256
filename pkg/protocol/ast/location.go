package ast

import "fmt"

// Location is the position of a node in its source file.
type Location struct {
	File   string // Path to the protocol file
	Line   int    // Line number (1-based)
	Column int    // Column number (1-based)
}

// String returns "file:line:column".
func (l Location) String() string {
	if l.File == "" {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// IsValid reports whether the location has file and line information.
func (l Location) IsValid() bool {
	return l.File != "" && l.Line > 0
}
