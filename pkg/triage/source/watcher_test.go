package source

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestDebouncer_CoalescesBursts(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Stop()

	var calls atomic.Int32
	var last atomic.Int32
	for i := 1; i <= 5; i++ {
		n := int32(i)
		d.Trigger(func() {
			calls.Add(1)
			last.Store(n)
		})
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(200 * time.Millisecond)

	if got := calls.Load(); got != 1 {
		t.Errorf("expected 1 call, got %d", got)
	}
	if got := last.Load(); got != 5 {
		t.Errorf("expected the last callback to run, got %d", got)
	}
}

func TestDebouncer_Stop(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Stop()
	d.Trigger(func() { calls.Add(1) })

	time.Sleep(100 * time.Millisecond)

	if got := calls.Load(); got != 0 {
		t.Errorf("expected no calls after Stop, got %d", got)
	}
}

func TestFileWatcher_ShouldProcessEvent(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultFileWatcherConfig()
	cfg.Path = dir

	fw, err := NewFileWatcher(cfg, testLogger())
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	defer fw.Close()

	tests := []struct {
		name string
		file string
		want bool
	}{
		{"yaml", "respiratory.yaml", true},
		{"yml upper case", "RESPIRATORY.YML", true},
		{"other extension", "notes.txt", false},
		{"hidden", ".respiratory.yaml", false},
	}

	if fw.shouldProcessEvent(fsnotify.Event{Name: filepath.Join(dir, "a.yaml"), Op: fsnotify.Chmod}) {
		t.Error("chmod events should be ignored")
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := fsnotify.Event{Name: filepath.Join(dir, tt.file), Op: fsnotify.Write}
			if got := fw.shouldProcessEvent(ev); got != tt.want {
				t.Errorf("shouldProcessEvent(%s) = %v, want %v", tt.file, got, tt.want)
			}
		})
	}
}

func TestFileWatcher_NewSubdirectory(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultFileWatcherConfig()
	cfg.Path = dir
	cfg.DebounceInterval = 20 * time.Millisecond

	fw, err := NewFileWatcher(cfg, testLogger())
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	defer fw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan fsnotify.Event, 8)
	go func() {
		_ = fw.Watch(ctx, func(ev fsnotify.Event) { changes <- ev })
	}()

	// Give Watch time to start reading events.
	time.Sleep(50 * time.Millisecond)

	created := filepath.Join(dir, "cardiology", "chest.yaml")
	writeFile(t, created, protocolYAML("chest"))

	select {
	case ev := <-changes:
		if ev.Name != created {
			t.Errorf("event for %s, want %s", ev.Name, created)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event for a protocol file in a new subdirectory")
	}

	// Later writes in the new directory are watched directly.
	second := filepath.Join(dir, "cardiology", "stroke.yaml")
	writeFile(t, second, protocolYAML("stroke"))

	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev := <-changes:
			if ev.Name == second {
				return
			}
		case <-timeout:
			t.Fatal("no event for a later write in the new subdirectory")
		}
	}
}
