package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"cubevox/internal/scene"
)

// texdump writes the built-in demo textures with the descriptions that use
// them, laid out so that `render -data <dir> -terrain` picks them up.
func main() {
	out := flag.String("out", "assets", "Directory to write the demo assets to")
	flag.Parse()

	model := scene.DemoModelFile()
	files := []struct {
		path string
		img  image.Image
		desc any
	}{
		{path: filepath.Join("models", model.Texture), img: scene.DemoSkin()},
		{path: filepath.Join("models", "demo.json"), desc: model},
		{path: scene.DemoRegistryFile().Atlas, img: scene.DemoAtlas()},
		{path: "blocks.json", desc: scene.DemoRegistryFile()},
	}

	for _, f := range files {
		path := filepath.Join(*out, f.path)
		var err error
		if f.img != nil {
			err = writePNG(path, f.img)
		} else {
			err = writeJSON(path, f.desc)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("  %s\n", path)
	}
}

func writePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
