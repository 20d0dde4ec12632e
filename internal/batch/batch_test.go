package batch

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"testing"
)

func TestFindJobs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"zombie.json", "archer.json", "notes.txt"} {
		os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644)
	}

	jobs := FindJobs(dir, "blocks.json", true)
	if len(jobs) != 3 {
		t.Fatalf("jobs = %+v, want 3", jobs)
	}
	if jobs[0].Name != "archer" || jobs[1].Name != "zombie" || jobs[0].Kind != KindModel {
		t.Errorf("model jobs = %+v", jobs[:2])
	}
	if jobs[2].Kind != KindTerrain || jobs[2].Path != "blocks.json" {
		t.Errorf("terrain job = %+v", jobs[2])
	}

	empty := FindJobs(filepath.Join(dir, "none"), "", false)
	if len(empty) != 1 || empty[0].Kind != KindDemo {
		t.Errorf("jobs without models = %+v, want the demo", empty)
	}
}

func TestRunWritesImagesAndManifest(t *testing.T) {
	out := t.TempDir()
	cfg := Config{
		OutputDir:   out,
		Width:       32,
		Height:      32,
		Supersample: 2,
		Frames:      2,
		FPS:         10,
		FillRatio:   0.9,
		Workers:     2,
	}
	jobs := []Job{
		{Name: "demo", Kind: KindDemo},
		{Name: "terrain", Kind: KindTerrain, Path: filepath.Join(out, "no-blocks.json")},
		{Name: "ghost", Kind: KindModel, Path: filepath.Join(out, "ghost.json")},
	}

	results := Run(cfg, jobs)
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}

	demo := results[0]
	if !demo.Success || len(demo.Images) != 2 || demo.Triangles == 0 {
		t.Fatalf("demo result = %+v", demo)
	}
	if demo.Images[1] != "demo/frame_001.webp" {
		t.Errorf("demo frame path = %q", demo.Images[1])
	}
	terrain := results[1]
	if !terrain.Success || len(terrain.Images) != 1 || terrain.Images[0] != "terrain.webp" {
		t.Fatalf("terrain result = %+v", terrain)
	}
	if results[2].Success || results[2].Error == "" {
		t.Errorf("missing model should fail: %+v", results[2])
	}

	for _, r := range results[:2] {
		for _, img := range r.Images {
			st, err := os.Stat(filepath.Join(out, filepath.FromSlash(img)))
			if err != nil || st.Size() == 0 {
				t.Errorf("image %s: %v", img, err)
			}
		}
	}

	manifest := filepath.Join(out, "manifest.json")
	if err := WriteManifest(manifest, results); err != nil {
		t.Fatalf("WriteManifest: %v", err)
	}
	data, err := os.ReadFile(manifest)
	if err != nil {
		t.Fatal(err)
	}
	var entries []ManifestEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[0].Name != "demo" || entries[1].Kind != KindTerrain {
		t.Errorf("manifest = %+v", entries)
	}
}

func TestUnknownJobKind(t *testing.T) {
	res := Run(Config{OutputDir: t.TempDir(), Width: 8, Height: 8, Workers: 1}, []Job{{Name: "x", Kind: "sprite"}})
	if res[0].Success || res[0].Error == "" {
		t.Errorf("result = %+v, want failure", res[0])
	}
}

func TestRunKeepsJobOrder(t *testing.T) {
	var jobs []Job
	for i := 0; i < 12; i++ {
		kind := "sprite"
		if i%4 == 0 {
			kind = KindDemo
		}
		jobs = append(jobs, Job{Name: fmt.Sprintf("job%02d", i), Kind: kind})
	}
	cfg := Config{OutputDir: t.TempDir(), Width: 8, Height: 8, Frames: 1, Workers: 4}
	results := Run(cfg, jobs)
	if len(results) != len(jobs) {
		t.Fatalf("results = %d, want %d", len(results), len(jobs))
	}
	for i, r := range results {
		if r.Name != jobs[i].Name {
			t.Errorf("result %d = %s, want %s", i, r.Name, jobs[i].Name)
		}
		if want := jobs[i].Kind == KindDemo; r.Success != want {
			t.Errorf("%s success = %v, want %v (%s)", r.Name, r.Success, want, r.Error)
		}
	}
}

func TestWriteWebP(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	path := filepath.Join(dir, "a", "b.webp")
	if err := writeWebP(path, img); err != nil {
		t.Fatalf("writeWebP: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) < 12 || string(raw[:4]) != "RIFF" || string(raw[8:12]) != "WEBP" {
		t.Errorf("output is not a WebP file: % x", raw[:min(len(raw), 12)])
	}

	blocker := filepath.Join(dir, "file")
	os.WriteFile(blocker, nil, 0644)
	if err := writeWebP(filepath.Join(blocker, "x.webp"), img); err == nil {
		t.Error("writing under a regular file: want error")
	}
}
