package config

import (
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestLoadAndResolve(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	os.WriteFile(path, []byte(`{"base_dir": "`+filepath.ToSlash(dir)+`", "models_dir": "skins", "width": 300, "frames": 4}`), 0644)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Resolve(Flags{Height: 200})

	if cfg.ModelsDir != filepath.Join(dir, "skins") {
		t.Errorf("ModelsDir = %q", cfg.ModelsDir)
	}
	if cfg.BlocksJSON != filepath.Join(dir, "blocks.json") {
		t.Errorf("BlocksJSON = %q", cfg.BlocksJSON)
	}
	if cfg.OutputDir != filepath.Join(dir, "renders") {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.Width != 300 || cfg.Height != 200 || cfg.Frames != 4 {
		t.Errorf("size %dx%d frames %d", cfg.Width, cfg.Height, cfg.Frames)
	}
	if cfg.Supersample != 2 || cfg.Workers != runtime.NumCPU() || cfg.FPS != 12 {
		t.Errorf("defaults: supersample %d workers %d fps %v", cfg.Supersample, cfg.Workers, cfg.FPS)
	}
}

func TestResolveFlagsOverride(t *testing.T) {
	cfg := Config{BaseDir: "/data", OutputDir: "/abs/out", Width: 100, Workers: 2}
	cfg.Resolve(Flags{DataDir: "/other", Width: 640, Workers: 8, Terrain: true})

	if cfg.BaseDir != "/other" || cfg.Width != 640 || cfg.Height != 640 || cfg.Workers != 8 || !cfg.Terrain {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if cfg.OutputDir != "/abs/out" {
		t.Errorf("absolute OutputDir rewritten to %q", cfg.OutputDir)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "none.json")); err == nil {
		t.Error("missing file: want error")
	}
	path := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(path, []byte("{width:"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("malformed file: want error")
	}
}

func TestBackgroundAndValidate(t *testing.T) {
	tests := []struct {
		bg      string
		want    color.NRGBA
		wantErr bool
	}{
		{"", color.NRGBA{}, false},
		{"#1a334d", color.NRGBA{0x1a, 0x33, 0x4d, 255}, false},
		{"ffffff", color.NRGBA{255, 255, 255, 255}, false},
		{"#fff", color.NRGBA{}, true},
		{"#zzzzzz", color.NRGBA{}, true},
	}
	for _, tt := range tests {
		c := Config{Background: tt.bg}
		got, err := c.BackgroundColor()
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("BackgroundColor(%q) = %v, %v; want %v, err %v", tt.bg, got, err, tt.want, tt.wantErr)
		}
		if err := c.Validate(); (err != nil) != tt.wantErr {
			t.Errorf("Validate(%q) = %v", tt.bg, err)
		}
	}

	if err := (&Config{FillRatio: 1.5}).Validate(); err == nil {
		t.Error("fill ratio 1.5: want error")
	}
	if err := (&Config{Supersample: 16}).Validate(); err == nil {
		t.Error("supersample 16: want error")
	}
}
