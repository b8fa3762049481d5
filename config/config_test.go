package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Particles.Count != 3000 {
		t.Errorf("particles.count = %d, want 3000", cfg.Particles.Count)
	}
	if cfg.Particles.MaxSampleAttempts != 100 {
		t.Errorf("particles.max_sample_attempts = %d, want 100", cfg.Particles.MaxSampleAttempts)
	}
	if cfg.Particles.AlphaThreshold != 128 {
		t.Errorf("particles.alpha_threshold = %d, want 128", cfg.Particles.AlphaThreshold)
	}
	if cfg.Text.FontFraction != 8 || cfg.Text.MinFontSize != 30 || cfg.Text.MaxFontSize != 120 {
		t.Errorf("text sizing = (%v, %v, %v), want (8, 30, 120)",
			cfg.Text.FontFraction, cfg.Text.MinFontSize, cfg.Text.MaxFontSize)
	}
	if cfg.Text.Padding != 15 {
		t.Errorf("text.padding = %v, want 15", cfg.Text.Padding)
	}
	if !cfg.Animation.Enabled {
		t.Error("animation should be enabled by default")
	}
	if cfg.Derived.ReferenceArea != 800*200 {
		t.Errorf("derived reference area = %v, want %v", cfg.Derived.ReferenceArea, 800*200)
	}
}

func TestLoadMergesUserFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("text:\n  value: \"Hi\"\nparticles:\n  count: 500\nanimation:\n  enabled: false\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Text.Value != "Hi" {
		t.Errorf("text.value = %q, want %q", cfg.Text.Value, "Hi")
	}
	if cfg.Particles.Count != 500 {
		t.Errorf("particles.count = %d, want 500", cfg.Particles.Count)
	}
	if cfg.Animation.Enabled {
		t.Error("animation.enabled should be overridden to false")
	}
	// Untouched fields keep their defaults
	if cfg.Text.Padding != 15 {
		t.Errorf("text.padding = %v, want default 15", cfg.Text.Padding)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"inverted font range", "text:\n  min_font_size: 200\n  max_font_size: 100\n"},
		{"negative padding", "text:\n  padding: -1\n"},
		{"empty life range", "particles:\n  life_min: 300\n  life_max: 100\n"},
		{"zero attempts", "particles:\n  max_sample_attempts: 0\n"},
		{"unknown active theme", "theme:\n  active: sepia\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestThemeNamesSorted(t *testing.T) {
	cfg := Defaults()
	names := cfg.Derived.ThemeNames
	if len(names) != 2 || names[0] != "dark" || names[1] != "light" {
		t.Errorf("theme names = %v, want [dark light]", names)
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg := Defaults()
	cfg.Text.Value = "Roundtrip"

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.Text.Value != "Roundtrip" {
		t.Errorf("text.value = %q, want %q", loaded.Text.Value, "Roundtrip")
	}
}
