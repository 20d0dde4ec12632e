package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"cubevox/internal/batch"
	"cubevox/internal/config"
	"cubevox/internal/engine"
	"cubevox/internal/texture"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	dataDir := flag.String("data", "", "Base directory holding models/ and blocks.json (default: cwd)")
	outputDir := flag.String("output", "", "Output directory (default: <data>/renders)")
	width := flag.Int("width", 0, "Output width in pixels (default: 512)")
	height := flag.Int("height", 0, "Output height in pixels (default: width)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	frames := flag.Int("frames", 0, "Frames per model; more than 1 renders a walk cycle")
	withTerrain := flag.Bool("terrain", false, "Also render the terrain scene")
	only := flag.String("only", "", "Render only the scene with this name")
	verbose := flag.Bool("v", false, "Log pipeline activity to stderr")

	flag.Parse()

	if *verbose {
		engine.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		DataDir:   *dataDir,
		OutputDir: *outputDir,
		Width:     *width,
		Height:    *height,
		Workers:   *workers,
		Frames:    *frames,
		Terrain:   *withTerrain,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	bg, _ := cfg.BackgroundColor()

	jobs := batch.FindJobs(cfg.ModelsDir, cfg.BlocksJSON, cfg.Terrain)
	if *only != "" {
		var filtered []batch.Job
		for _, j := range jobs {
			if j.Name == *only {
				filtered = append(filtered, j)
			}
		}
		jobs = filtered
	}

	if len(jobs) == 0 {
		fmt.Println("No scenes to render.")
		os.Exit(0)
	}

	// Build texture index for skins not stored next to their descriptions
	texIndex := texture.BuildIndex(cfg.BaseDir)
	fmt.Printf("Textures: %d indexed\n", texIndex.Len())

	fmt.Println("Cube model and voxel terrain renderer → WebP")
	fmt.Printf("Scenes: %d, Frames: %d, Workers: %d\n", len(jobs), cfg.Frames, cfg.Workers)
	fmt.Printf("Size: %dx%d (x%d supersampled)\n", cfg.Width, cfg.Height, cfg.Supersample)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	// Run batch
	results := batch.Run(batch.Config{
		OutputDir:   cfg.OutputDir,
		Cache:       texture.NewCache(),
		Index:       texIndex,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Supersample: cfg.Supersample,
		Frames:      cfg.Frames,
		FPS:         cfg.FPS,
		FillRatio:   cfg.FillRatio,
		Background:  bg,
		Workers:     cfg.Workers,
		Progress:    2 * time.Second,
	}, jobs)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
			fmt.Printf("  %s (%s): %d image(s), %d triangles\n", r.Name, r.Kind, len(r.Images), r.Triangles)
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(jobs))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := min(len(errors), 20)
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
