// Package source provides protocol sources for the triage engine.
//
// # File Source
//
// The file source loads protocols from YAML files on disk and watches
// for changes using fsnotify:
//
//	src := source.NewFileSource("protocols/", logger)
//	protocols, err := src.Load(ctx)
//
// A directory is walked recursively for .yaml and .yml files, skipping
// hidden entries. A single file that fails to parse fails the whole load
// so the engine keeps its previous protocols.
//
// # Hot-Reload
//
// Watch sends one event per burst of file system changes; bursts are
// collapsed by a debouncer:
//
//	events, err := src.Watch(ctx)
//	for event := range events {
//		if event.Error != nil {
//			continue
//		}
//		protocols, err := src.Load(ctx)
//	}
//
// # In-Memory Source
//
// The in-memory source is useful for testing. SetProtocols notifies
// watchers like a file change would.
package source
