package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"mercator-hq/triage/pkg/protocol/ast"
	"mercator-hq/triage/pkg/protocol/parser"
	"mercator-hq/triage/pkg/triage"
)

// FileSource loads protocols from YAML files on disk.
type FileSource struct {
	path        string
	maxDepth    int
	maxFileSize int64
	debounce    time.Duration
	logger      *slog.Logger
}

// NewFileSource creates a new file-based protocol source.
// The path can be either a single file or a directory.
func NewFileSource(path string, logger *slog.Logger) *FileSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSource{
		path:        path,
		maxDepth:    parser.DefaultMaxDepth,
		maxFileSize: parser.DefaultMaxFileSize,
		debounce:    DefaultDebounceInterval,
		logger:      logger,
	}
}

// WithMaxDepth bounds condition nesting in loaded files.
func (s *FileSource) WithMaxDepth(depth int) *FileSource {
	if depth > 0 {
		s.maxDepth = depth
	}
	return s
}

// WithMaxFileSize bounds the size of loaded files in bytes.
func (s *FileSource) WithMaxFileSize(size int64) *FileSource {
	if size > 0 {
		s.maxFileSize = size
	}
	return s
}

// WithDebounceInterval sets the quiet period Watch waits for before
// sending an event.
func (s *FileSource) WithDebounceInterval(d time.Duration) *FileSource {
	if d > 0 {
		s.debounce = d
	}
	return s
}

// Path returns the watched file or directory.
func (s *FileSource) Path() string {
	return s.path
}

// Load parses every protocol file under the configured path.
func (s *FileSource) Load(ctx context.Context) ([]*ast.Protocol, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path %q: %w", s.path, err)
	}

	files := []string{s.path}
	if info.IsDir() {
		files, err = collectProtocolFiles(s.path)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			s.logger.Warn("no protocol files found", "path", s.path)
			return nil, nil
		}
	}

	p := parser.NewParser().WithMaxDepth(s.maxDepth).WithMaxFileSize(s.maxFileSize)

	var (
		protocols []*ast.Protocol
		errs      []error
	)
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		protocol, err := p.Parse(file)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to parse protocol file %q: %w", file, err))
			continue
		}

		s.logger.Debug("loaded protocol file",
			"path", file,
			"protocol", protocol.Name,
			"rule_count", len(protocol.Rules),
		)
		protocols = append(protocols, protocol)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return protocols, nil
}

// collectProtocolFiles returns the .yaml and .yml files under dir in
// lexical order, skipping hidden files and directories.
func collectProtocolFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if strings.HasPrefix(d.Name(), ".") && path != dir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() || !hasProtocolExtension(path) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %q: %w", dir, err)
	}

	return files, nil
}

func hasProtocolExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Watch sends an event after each burst of changes to protocol files.
// The channel is closed when ctx is cancelled.
func (s *FileSource) Watch(ctx context.Context) (<-chan triage.Event, error) {
	cfg := DefaultFileWatcherConfig()
	cfg.Path = s.path
	cfg.DebounceInterval = s.debounce

	fw, err := NewFileWatcher(cfg, s.logger)
	if err != nil {
		return nil, err
	}

	eventCh := make(chan triage.Event)
	send := func(ev triage.Event) {
		select {
		case eventCh <- ev:
		case <-ctx.Done():
		}
	}

	go func() {
		defer close(eventCh)
		defer fw.Close()

		err := fw.Watch(ctx, func(ev fsnotify.Event) {
			send(triage.Event{Type: eventType(ev.Op), Path: ev.Name})
		})
		if err != nil {
			send(triage.Event{Error: err})
		}
	}()

	return eventCh, nil
}

func eventType(op fsnotify.Op) triage.EventType {
	switch {
	case op.Has(fsnotify.Create):
		return triage.EventCreated
	case op.Has(fsnotify.Remove), op.Has(fsnotify.Rename):
		return triage.EventDeleted
	default:
		return triage.EventModified
	}
}
