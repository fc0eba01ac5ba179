package arbor

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arbor.yaml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigPartialOverride(t *testing.T) {
	path := writeConfigFile(t, `
title: shadow demo
width: 1920
height: 1080
shadow_map_size: 4096
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Title != "shadow demo" || cfg.Width != 1920 || cfg.Height != 1080 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.ShadowMapSize != 4096 {
		t.Fatalf("ShadowMapSize = %d, want 4096", cfg.ShadowMapSize)
	}

	// Untouched fields keep their defaults.
	def := DefaultConfig()
	if cfg.Samples != def.Samples || cfg.VSync != def.VSync {
		t.Fatalf("defaults clobbered: %+v", cfg)
	}
	if cfg.AmbientLight != def.AmbientLight || cfg.MaxPointLights != def.MaxPointLights {
		t.Fatalf("defaults clobbered: %+v", cfg)
	}
}

func TestLoadConfigVSyncFalse(t *testing.T) {
	path := writeConfigFile(t, "vsync: false\n")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.VSync {
		t.Fatal("explicit vsync: false should override the default")
	}
}

func TestLoadConfigClearColor(t *testing.T) {
	path := writeConfigFile(t, "clear_color: {r: 0.5, g: 0.25, b: 0.125, a: 1}\n")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := Color{R: 0.5, G: 0.25, B: 0.125, A: 1}
	if cfg.ClearColor != want {
		t.Fatalf("ClearColor = %+v, want %+v", cfg.ClearColor, want)
	}
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if cfg != DefaultConfig() {
		t.Fatalf("missing file should still yield defaults, got %+v", cfg)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := writeConfigFile(t, "width: [not a number\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}
