// Package batch renders scenes to WebP files on a worker pool. Every job
// gets its own raster device, so the cube and terrain pipelines stay
// single-threaded; only decoded textures are shared.
package batch

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"cubevox/internal/cubes"
	"cubevox/internal/engine"
	"cubevox/internal/mathutil"
	"cubevox/internal/postprocess"
	"cubevox/internal/raster"
	"cubevox/internal/scene"
	"cubevox/internal/texture"

	"github.com/HugoSmits86/nativewebp"
	"github.com/alitto/pond/v2"
)

// Job kinds.
const (
	KindModel   = "model"
	KindTerrain = "terrain"
	KindDemo    = "demo"
)

// Job names one scene to render.
type Job struct {
	Name string
	Kind string
	Path string // model description or block registry
}

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir   string
	Cache       *texture.Cache
	Index       *texture.Index // fallback lookup for model skins; may be nil
	Width       int
	Height      int
	Supersample int
	Frames      int
	FPS         float64
	FillRatio   float64
	Background  color.NRGBA
	Workers     int
	Progress    time.Duration // progress report interval; 0 disables
}

// Result holds the outcome of processing one job.
type Result struct {
	Name      string
	Kind      string
	Source    string
	Images    []string // relative to the output directory
	Triangles int      // rasterized in the first frame
	Success   bool
	Error     string
}

// FindJobs lists one model job per description in modelsDir, sorted by
// name. Without descriptions it returns the demo model. withTerrain appends
// the terrain job built from blocksJSON.
func FindJobs(modelsDir, blocksJSON string, withTerrain bool) []Job {
	var jobs []Job
	paths, _ := filepath.Glob(filepath.Join(modelsDir, "*.json"))
	sort.Strings(paths)
	for _, p := range paths {
		jobs = append(jobs, Job{
			Name: strings.TrimSuffix(filepath.Base(p), filepath.Ext(p)),
			Kind: KindModel,
			Path: p,
		})
	}
	if len(jobs) == 0 {
		jobs = append(jobs, Job{Name: "demo", Kind: KindDemo})
	}
	if withTerrain {
		jobs = append(jobs, Job{Name: "terrain", Kind: KindTerrain, Path: blocksJSON})
	}
	return jobs
}

// Run processes all jobs using a worker pool.
func Run(cfg Config, jobs []Job) []Result {
	if cfg.Cache == nil {
		cfg.Cache = texture.NewCache()
	}
	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if cfg.Progress > 0 {
		go func() {
			ticker := time.NewTicker(cfg.Progress)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						elapsed := time.Since(start).Seconds()
						rate := float64(p) / elapsed
						fmt.Printf("  [%d/%d] %.1f scenes/sec\n", p, total, rate)
					}
				}
			}
		}()
	}

	pool := pond.NewPool(max(cfg.Workers, 1))
	group := pool.NewGroup()
	for i := range jobs {
		group.Submit(func() {
			results[i] = processJob(cfg, jobs[i])
			processed.Add(1)
		})
	}
	group.Wait()
	pool.StopAndWait()
	close(done)

	return results
}

func processJob(cfg Config, job Job) (res Result) {
	res = Result{Name: job.Name, Kind: job.Kind, Source: job.Path}
	fail := func(err error) Result {
		res.Error = err.Error()
		engine.Logger().Warn("batch: job failed", "job", job.Name, "err", err)
		return res
	}

	// Contract violations in the pipelines panic; report them per job.
	defer func() {
		if r := recover(); r != nil {
			res = fail(fmt.Errorf("panic: %v", r))
		}
	}()

	dev := raster.NewDevice(cfg.Cache)
	animate := cfg.Frames > 1 && job.Kind != KindTerrain
	s, err := buildScene(cfg, dev, job, animate)
	if err != nil {
		return fail(err)
	}

	frames := cfg.Frames
	if !animate {
		frames = 1
	}
	pad := float32(1.05)
	if animate {
		// Leave room for the swing and spin of later frames.
		pad = 1.3
	}
	cam := scene.Camera(s, pad)

	fps := cfg.FPS
	if fps <= 0 {
		fps = 12
	}
	ss := max(cfg.Supersample, 1)
	for i := 0; i < frames; i++ {
		if animate {
			s.Advance(float64(i) / fps)
		}
		var tris int
		img := dev.Render(cfg.Width*ss, cfg.Height*ss, cfg.Background, func(p *raster.Pass) {
			s.Draw(p, cam)
			tris = p.Triangles
		})
		if i == 0 {
			res.Triangles = tris
		}
		img = finish(cfg, job, img)

		rel := job.Name + ".webp"
		if frames > 1 {
			rel = filepath.Join(job.Name, fmt.Sprintf("frame_%03d.webp", i))
		}
		if err := writeWebP(filepath.Join(cfg.OutputDir, rel), img); err != nil {
			return fail(err)
		}
		res.Images = append(res.Images, filepath.ToSlash(rel))
	}

	engine.Logger().Debug("batch: job rendered", "job", job.Name, "frames", frames, "triangles", res.Triangles)
	res.Success = true
	return res
}

func buildScene(cfg Config, dev *raster.Device, job Job, animate bool) (scene.Scene, error) {
	var ctrl cubes.AnimController
	if animate {
		ctrl = cubes.DefaultSwing
	}
	switch job.Kind {
	case KindModel:
		return scene.LoadModel(dev, cubes.NewCubeEngine(dev), job.Path, cfg.Index, ctrl)
	case KindDemo:
		skin := dev.AddTexture(scene.DemoSkin())
		root := scene.DemoHumanoid()
		m := cubes.NewModel(dev, mathutil.Identity(), skin, root, root.PartCount())
		return scene.NewModelScene(job.Name, dev, cubes.NewCubeEngine(dev), m, ctrl), nil
	case KindTerrain:
		return scene.LoadTerrain(dev, job.Path)
	default:
		return nil, fmt.Errorf("batch: unknown job kind %q", job.Kind)
	}
}

// finish downsamples a supersampled frame and, for models, crops and
// centers it when a fill ratio is set.
func finish(cfg Config, job Job, img *image.NRGBA) *image.NRGBA {
	if cfg.Supersample > 1 {
		img = postprocess.Downsample(img, cfg.Width, cfg.Height)
	}
	if cfg.FillRatio > 0 && job.Kind != KindTerrain && cfg.Background.A == 0 {
		img = postprocess.CropAndFit(img, cfg.Width, cfg.Height, cfg.FillRatio)
	}
	return img
}

func writeWebP(path string, img image.Image) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("WebP encode: %w", err)
	}
	return nil
}
