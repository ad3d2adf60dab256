package parser

import (
	"fmt"
	"os"

	"mercator-hq/triage/pkg/protocol/ast"
	perrors "mercator-hq/triage/pkg/protocol/errors"
)

const (
	// DefaultMaxFileSize bounds protocol files to 1MB.
	DefaultMaxFileSize = 1 << 20

	// DefaultMaxDepth bounds condition nesting.
	DefaultMaxDepth = 16
)

// Parser parses protocol files.
type Parser struct {
	maxFileSize int64
	maxDepth    int
}

// NewParser returns a parser with default limits.
func NewParser() *Parser {
	return &Parser{
		maxFileSize: DefaultMaxFileSize,
		maxDepth:    DefaultMaxDepth,
	}
}

// WithMaxFileSize sets the maximum file size in bytes.
func (p *Parser) WithMaxFileSize(size int64) *Parser {
	p.maxFileSize = size
	return p
}

// WithMaxDepth sets the maximum condition nesting depth.
func (p *Parser) WithMaxDepth(depth int) *Parser {
	p.maxDepth = depth
	return p
}

// Parse reads and parses the protocol file at path.
func (p *Parser) Parse(path string) (*ast.Protocol, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &perrors.Error{
			Type:     perrors.ErrorTypeIO,
			Severity: perrors.SeverityError,
			Message:  fmt.Sprintf("Failed to access file: %v", err),
			Location: ast.Location{File: path},
		}
	}
	if info.Size() > p.maxFileSize {
		return nil, &perrors.Error{
			Type:     perrors.ErrorTypeIO,
			Severity: perrors.SeverityError,
			Message:  fmt.Sprintf("File size %d exceeds maximum %d bytes", info.Size(), p.maxFileSize),
			Location: ast.Location{File: path},
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &perrors.Error{
			Type:     perrors.ErrorTypeIO,
			Severity: perrors.SeverityError,
			Message:  fmt.Sprintf("Failed to read file: %v", err),
			Location: ast.Location{File: path},
		}
	}

	return p.ParseBytes(data, path)
}

// ParseBytes parses protocol YAML. source names the origin in locations.
func (p *Parser) ParseBytes(data []byte, source string) (*ast.Protocol, error) {
	if int64(len(data)) > p.maxFileSize {
		return nil, &perrors.Error{
			Type:     perrors.ErrorTypeIO,
			Severity: perrors.SeverityError,
			Message:  fmt.Sprintf("Input size %d exceeds maximum %d bytes", len(data), p.maxFileSize),
			Location: ast.Location{File: source},
		}
	}

	root, err := decodeDocument(data)
	if err != nil {
		return nil, &perrors.Error{
			Type:       perrors.ErrorTypeSyntax,
			Severity:   perrors.SeverityError,
			Message:    fmt.Sprintf("YAML parsing failed: %v", err),
			Location:   ast.Location{File: source, Line: 1},
			Suggestion: "Check YAML syntax (indentation, colons, quotes)",
		}
	}

	b := newBuilder(source, p.maxDepth)
	protocol, err := b.buildProtocol(root)
	if err != nil {
		if list, ok := err.(*perrors.ErrorList); ok {
			perrors.AddContext(list, data)
		}
		return nil, err
	}
	return protocol, nil
}

// Parse parses the file at path with a default parser.
func Parse(path string) (*ast.Protocol, error) {
	return NewParser().Parse(path)
}

// ParseBytes parses data with a default parser.
func ParseBytes(data []byte, source string) (*ast.Protocol, error) {
	return NewParser().ParseBytes(data, source)
}
