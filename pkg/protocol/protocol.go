package protocol

import (
	"mercator-hq/triage/pkg/protocol/ast"
	"mercator-hq/triage/pkg/protocol/compiler"
	perrors "mercator-hq/triage/pkg/protocol/errors"
	"mercator-hq/triage/pkg/protocol/parser"
	"mercator-hq/triage/pkg/protocol/validator"
)

// Options tunes loading. The zero value uses parser defaults and
// non-strict validation.
type Options struct {
	// Strict fails validation on warnings.
	Strict bool

	// MaxDepth bounds condition nesting; 0 means parser.DefaultMaxDepth.
	MaxDepth int

	// MaxFileSize bounds protocol files in bytes; 0 means
	// parser.DefaultMaxFileSize.
	MaxFileSize int64
}

func (o Options) parser() *parser.Parser {
	p := parser.NewParser()
	if o.MaxDepth > 0 {
		p.WithMaxDepth(o.MaxDepth)
	}
	if o.MaxFileSize > 0 {
		p.WithMaxFileSize(o.MaxFileSize)
	}
	return p
}

// ParseAndValidate parses and validates the protocol file at path.
func ParseAndValidate(path string) (*ast.Protocol, error) {
	p, _, err := parseAndValidate(Options{}, func(ps *parser.Parser) (*ast.Protocol, error) {
		return ps.Parse(path)
	})
	return p, err
}

// ParseAndValidateBytes parses and validates protocol YAML from memory.
func ParseAndValidateBytes(data []byte, source string) (*ast.Protocol, error) {
	p, _, err := parseAndValidate(Options{}, func(ps *parser.Parser) (*ast.Protocol, error) {
		return ps.ParseBytes(data, source)
	})
	return p, err
}

// Load parses, validates and compiles the protocol file at path. The
// returned warnings are non-fatal validation findings.
func Load(path string, opts Options) (*compiler.Compiled, []*perrors.Error, error) {
	p, warnings, err := parseAndValidate(opts, func(ps *parser.Parser) (*ast.Protocol, error) {
		return ps.Parse(path)
	})
	if err != nil {
		return nil, warnings, err
	}
	c, err := compiler.Compile(p)
	return c, warnings, err
}

// LoadBytes is Load for protocol YAML held in memory.
func LoadBytes(data []byte, source string, opts Options) (*compiler.Compiled, []*perrors.Error, error) {
	p, warnings, err := parseAndValidate(opts, func(ps *parser.Parser) (*ast.Protocol, error) {
		return ps.ParseBytes(data, source)
	})
	if err != nil {
		return nil, warnings, err
	}
	c, err := compiler.Compile(p)
	return c, warnings, err
}

// Validate checks an already parsed protocol.
func Validate(p *ast.Protocol, strict bool) ([]*perrors.Error, error) {
	return validator.NewValidator().WithStrict(strict).Validate(p)
}

func parseAndValidate(opts Options, parse func(*parser.Parser) (*ast.Protocol, error)) (*ast.Protocol, []*perrors.Error, error) {
	p, err := parse(opts.parser())
	if err != nil {
		return nil, nil, err
	}
	warnings, err := Validate(p, opts.Strict)
	if err != nil {
		return nil, warnings, err
	}
	return p, warnings, nil
}
