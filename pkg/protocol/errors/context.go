package errors

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"mercator-hq/triage/pkg/protocol/ast"
)

// ExtractContext returns the source lines around location, marking the
// offending line with '>' and a caret under its column.
func ExtractContext(source []byte, location ast.Location, contextLines int) string {
	if location.Line <= 0 || len(source) == 0 {
		return ""
	}

	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(source))
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if scanner.Err() != nil || location.Line > len(lines) {
		return ""
	}

	errorLine := location.Line - 1
	start := max(errorLine-contextLines, 0)
	end := min(errorLine+contextLines, len(lines)-1)

	var sb strings.Builder
	width := len(fmt.Sprintf("%d", end+1))
	for i := start; i <= end; i++ {
		prefix := "  "
		if i == errorLine {
			prefix = "> "
		}
		sb.WriteString(fmt.Sprintf("%s%*d | %s\n", prefix, width, i+1, lines[i]))
		if i == errorLine && location.Column > 0 {
			sb.WriteString(fmt.Sprintf("  %s | %s^\n", strings.Repeat(" ", width), strings.Repeat(" ", location.Column-1)))
		}
	}
	return sb.String()
}

// AddContext fills Context on every entry of el from source.
func AddContext(el *ErrorList, source []byte) {
	for _, e := range el.Errors {
		if e.Context == "" {
			e.Context = ExtractContext(source, e.Location, 2)
		}
	}
}
