package logging

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"mercator-hq/triage/pkg/config"
)

// Redactor masks patient-identifying data in log fields.
type Redactor struct {
	patterns []*redactPattern
}

type redactPattern struct {
	name        string
	regex       *regexp.Regexp
	replacement string
}

// Built-in pattern names.
const (
	PatternEmail = "email"
	PatternPhone = "phone"
)

// sensitiveKeys are attribute keys whose values are always masked. Keys
// starting with "patient" are masked too.
var sensitiveKeys = []string{
	"email",
	"phone",
}

// NewRedactor creates a Redactor with the default patterns plus custom
// ones. Invalid custom patterns are skipped.
func NewRedactor(custom []config.RedactPattern) *Redactor {
	r := &Redactor{
		patterns: []*redactPattern{
			{
				name:        PatternEmail,
				regex:       regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`),
				replacement: "***@***",
			},
			{
				name:        PatternPhone,
				regex:       regexp.MustCompile(`\b(?:\+?\d{1,3}[-.\s])?\(?\d{3}\)?[-.\s]\d{3}[-.\s]\d{4}\b`),
				replacement: "***-***-****",
			},
		},
	}

	for _, p := range custom {
		regex, err := regexp.Compile(p.Pattern)
		if err != nil {
			continue
		}
		r.patterns = append(r.patterns, &redactPattern{
			name:        p.Name,
			regex:       regex,
			replacement: p.Replacement,
		})
	}

	return r
}

// PatternCount returns the number of active patterns.
func (r *Redactor) PatternCount() int {
	return len(r.patterns)
}

// RedactString applies every pattern to value.
func (r *Redactor) RedactString(value string) string {
	if value == "" {
		return value
	}
	for _, p := range r.patterns {
		value = p.regex.ReplaceAllString(value, p.replacement)
	}
	return value
}

// RedactAttr masks the attribute's value if its key is sensitive and
// applies the patterns to string values. Groups are redacted recursively.
func (r *Redactor) RedactAttr(a slog.Attr) slog.Attr {
	v := a.Value.Resolve()

	switch {
	case v.Kind() == slog.KindGroup:
		group := v.Group()
		out := make([]any, len(group))
		for i, ga := range group {
			out[i] = r.RedactAttr(ga)
		}
		return slog.Group(a.Key, out...)

	case isSensitiveKey(a.Key):
		return slog.String(a.Key, RedactName(valueString(v)))

	case v.Kind() == slog.KindString:
		return slog.String(a.Key, r.RedactString(v.String()))
	}

	return slog.Attr{Key: a.Key, Value: v}
}

func valueString(v slog.Value) string {
	if v.Kind() == slog.KindString {
		return v.String()
	}
	if s, ok := v.Any().(fmt.Stringer); ok {
		return s.String()
	}
	return v.String()
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	if strings.HasPrefix(lower, "patient") {
		return true
	}
	for _, k := range sensitiveKeys {
		if lower == k {
			return true
		}
	}
	return false
}

// RedactName keeps the first letter of a name, e.g. "Ana Souza" → "A***".
func RedactName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	r := []rune(name)
	return string(r[0]) + "***"
}
