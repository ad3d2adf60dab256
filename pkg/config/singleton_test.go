package config

import (
	"sync"
	"testing"
)

func resetGlobal() {
	SetConfig(nil)
	initOnce = sync.Once{}
}

func TestInitialize(t *testing.T) {
	resetGlobal()
	t.Cleanup(resetGlobal)

	path := writeConfig(t, `
engine:
  workers: 3
`)
	if err := Initialize(path); err != nil {
		t.Fatalf("failed to initialize config: %v", err)
	}

	cfg := GetConfig()
	if cfg == nil {
		t.Fatal("expected non-nil config after initialization")
	}
	if cfg.Engine.Workers != 3 {
		t.Errorf("expected 3 workers, got %d", cfg.Engine.Workers)
	}

	// Later calls are ignored.
	other := writeConfig(t, `
engine:
  workers: 9
`)
	if err := Initialize(other); err != nil {
		t.Fatalf("second Initialize returned error: %v", err)
	}
	if GetConfig().Engine.Workers != 3 {
		t.Error("expected the first configuration to be kept")
	}
}

func TestMustGetConfig_Panics(t *testing.T) {
	resetGlobal()
	t.Cleanup(resetGlobal)

	defer func() {
		if recover() == nil {
			t.Error("expected panic when configuration is not set")
		}
	}()
	MustGetConfig()
}

func TestSetConfig(t *testing.T) {
	resetGlobal()
	t.Cleanup(resetGlobal)

	cfg := Default()
	SetConfig(cfg)
	if MustGetConfig() != cfg {
		t.Error("expected MustGetConfig to return the installed config")
	}
}
