package texture

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ftrvxmtrx/tga"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x), uint8(y), 200, 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestLoadTexturePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skin.png")
	writePNG(t, path, 64, 32)

	img, err := LoadTexture(path)
	if err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 32 {
		t.Errorf("size = %v, want 64x32", img.Bounds())
	}
	if got := img.NRGBAAt(3, 5); got != (color.NRGBA{3, 5, 200, 255}) {
		t.Errorf("pixel (3,5) = %v", got)
	}
}

func TestLoadTextureFormats(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	for i := range src.Pix {
		src.Pix[i] = 255
	}
	cases := []struct {
		name   string
		encode func(io.Writer, image.Image) error
	}{
		{"skin.png", png.Encode},
		{"skin.tga", tga.Encode},
		{"skin.jpg", func(w io.Writer, m image.Image) error { return jpeg.Encode(w, m, nil) }},
		{"skin.JPEG", func(w io.Writer, m image.Image) error { return jpeg.Encode(w, m, nil) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tc.name)
			f, err := os.Create(path)
			if err != nil {
				t.Fatal(err)
			}
			if err := tc.encode(f, src); err != nil {
				t.Fatal(err)
			}
			f.Close()

			img, err := LoadTexture(path)
			if err != nil {
				t.Fatalf("LoadTexture: %v", err)
			}
			if img.Bounds() != image.Rect(0, 0, 8, 4) {
				t.Errorf("bounds = %v, want 8x4", img.Bounds())
			}
			if a := img.NRGBAAt(2, 2).A; a != 255 {
				t.Errorf("alpha = %d, want 255", a)
			}
		})
	}
}

func TestLoadTextureErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadTexture(filepath.Join(dir, "a.bmp")); err == nil {
		t.Error("unsupported extension: want error")
	}
	if _, err := LoadTexture(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("missing file: want error")
	}
	bad := filepath.Join(dir, "bad.png")
	os.WriteFile(bad, []byte("not a png"), 0644)
	if _, err := LoadTexture(bad); err == nil {
		t.Error("corrupt file: want error")
	}
}

func TestIndexPrefersPNG(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "blocks")
	os.MkdirAll(sub, 0755)
	os.WriteFile(filepath.Join(sub, "Grass.jpg"), []byte{}, 0644)
	os.WriteFile(filepath.Join(sub, "grass.png"), []byte{}, 0644)
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte{}, 0644)

	idx := BuildIndex(dir)
	if idx.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", idx.Len())
	}
	p, ok := idx.ResolvePath(`textures\GRASS.tga`)
	if !ok || filepath.Base(p) != "grass.png" {
		t.Errorf("ResolvePath = %q, %v; want grass.png", p, ok)
	}
	if _, ok := idx.ResolvePath("stone"); ok {
		t.Error("ResolvePath(stone) should fail")
	}
}

func TestCacheLoadsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atlas.png")
	writePNG(t, path, 16, 16)

	c := NewCache()
	var wg sync.WaitGroup
	imgs := make([]*image.NRGBA, 8)
	for i := range imgs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			img, err := c.Load(path)
			if err != nil {
				t.Error(err)
			}
			imgs[i] = img
		}(i)
	}
	wg.Wait()

	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	first, _ := c.Load(path)
	for i, img := range imgs {
		if img != first {
			t.Errorf("load %d returned a different image", i)
		}
	}

	if _, err := c.Load(filepath.Join(t.TempDir(), "gone.png")); err == nil {
		t.Error("missing texture: want error")
	}
}
