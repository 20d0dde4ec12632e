// Package modelfile loads cube models from their JSON bone-hierarchy
// description. Positions and part sizes are given in skin pixels; the loader
// converts them to model units (16 px per unit).
package modelfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"cubevox/internal/cubes"
	"cubevox/internal/engine"
	"cubevox/internal/mathutil"
	"cubevox/internal/texture"

	"github.com/go-gl/mathgl/mgl32"
)

// pixel is the size of one skin pixel in model units.
const pixel = 1.0 / cubes.PxPerUnit

// File is a parsed model description.
type File struct {
	Name    string   `json:"name"`
	Texture string   `json:"texture"` // relative to the description file
	Root    BoneFile `json:"root"`

	// AbsolutePath is filled in by Load when the file does not carry it.
	AbsolutePath string `json:"absolute_path,omitempty"`
}

// BoneFile is one bone of the description.
type BoneFile struct {
	Name     string     `json:"name,omitempty"`
	Position []float32  `json:"position,omitempty"`
	Rotation []float32  `json:"rotation,omitempty"` // Euler XYZ, degrees
	Scale    []float32  `json:"scale,omitempty"`
	Bones    []BoneFile `json:"bones"`
	Parts    []PartFile `json:"parts"`
}

// PartFile is one cube of a bone.
type PartFile struct {
	Name      string    `json:"name,omitempty"`
	Position  []float32 `json:"position,omitempty"`
	Rotation  []float32 `json:"rotation,omitempty"`
	Scale     []float32 `json:"scale,omitempty"`
	TexOffset []uint32  `json:"tex_offset"` // pixels
}

// Load reads and parses the description at path.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("modelfile: read %s: %w", path, err)
	}

	var f File
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("modelfile: parse %s: %w", path, err)
	}

	if f.AbsolutePath == "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("modelfile: resolve %s: %w", path, err)
		}
		if resolved, err := filepath.EvalSymlinks(abs); err == nil {
			abs = resolved
		}
		f.AbsolutePath = abs
	}
	return &f, nil
}

// TexturePath returns the skin path resolved against the description's
// directory.
func (f *File) TexturePath() string {
	if filepath.IsAbs(f.Texture) {
		return f.Texture
	}
	return filepath.Join(filepath.Dir(f.AbsolutePath), filepath.FromSlash(f.Texture))
}

// Bone converts the description into a bone tree for a skin of texW×texH
// pixels.
func (f *File) Bone(texW, texH uint32) (*cubes.Bone, error) {
	if texW == 0 || texH == 0 {
		return nil, fmt.Errorf("modelfile: %s: empty texture size %dx%d", f.Name, texW, texH)
	}
	return f.Root.bone("root", texW, texH)
}

// ResolveTexture returns TexturePath when that file exists. Otherwise it
// looks the texture's stem up in idx, which may be nil.
func (f *File) ResolveTexture(idx *texture.Index) string {
	path := f.TexturePath()
	if _, err := os.Stat(path); err == nil || idx == nil {
		return path
	}
	if p, ok := idx.ResolvePath(f.Texture); ok {
		return p
	}
	return path
}

// Model loads the skin through dev and bakes the model at the identity
// transform. idx, when non-nil, resolves skins missing next to the
// description.
func (f *File) Model(dev engine.Device, idx *texture.Index) (*cubes.Model, error) {
	tex, err := dev.LoadTexture(f.ResolveTexture(idx))
	if err != nil {
		return nil, fmt.Errorf("modelfile: load texture for %s: %w", f.Name, err)
	}
	w, h := dev.TextureSize(tex)

	root, err := f.Bone(w, h)
	if err != nil {
		return nil, err
	}
	return cubes.NewModel(dev, mathutil.Identity(), tex, root, root.PartCount()), nil
}

func (b *BoneFile) bone(path string, texW, texH uint32) (*cubes.Bone, error) {
	if b.Name != "" {
		path = b.Name
	}
	t, err := decodeTransform(path, b.Position, b.Rotation, b.Scale)
	if err != nil {
		return nil, err
	}

	out := &cubes.Bone{
		Label:     b.Name,
		Transform: t,
		Parts:     make([]cubes.Part, 0, len(b.Parts)),
		Children:  make([]*cubes.Bone, 0, len(b.Bones)),
	}
	for i := range b.Parts {
		p, err := b.Parts[i].part(fmt.Sprintf("%s/part[%d]", path, i), texW, texH)
		if err != nil {
			return nil, err
		}
		out.Parts = append(out.Parts, p)
	}
	for i := range b.Bones {
		c, err := b.Bones[i].bone(fmt.Sprintf("%s/bone[%d]", path, i), texW, texH)
		if err != nil {
			return nil, err
		}
		out.Children = append(out.Children, c)
	}
	return out, nil
}

func (p *PartFile) part(path string, texW, texH uint32) (cubes.Part, error) {
	t, err := decodeTransform(path, p.Position, p.Rotation, p.Scale)
	if err != nil {
		return cubes.Part{}, err
	}
	if len(p.TexOffset) != 2 {
		return cubes.Part{}, fmt.Errorf("modelfile: %s: tex_offset needs 2 values, got %d", path, len(p.TexOffset))
	}
	return cubes.Part{
		Transform: t,
		TexOffset: mgl32.Vec2{
			float32(p.TexOffset[0]) / float32(texW),
			float32(p.TexOffset[1]) / float32(texH),
		},
	}, nil
}

func decodeTransform(path string, pos, rot, scale []float32) (mathutil.Transform, error) {
	t := mathutil.Identity()
	var err error
	if t.Position, err = decodeVec(path, "position", pos, pixel, mgl32.Vec3{}); err != nil {
		return t, err
	}
	euler, err := decodeVec(path, "rotation", rot, 1, mgl32.Vec3{})
	if err != nil {
		return t, err
	}
	t.Rotation = mathutil.EulerDegrees(euler[0], euler[1], euler[2])
	// A missing scale means unit scale, not one pixel.
	if t.Scale, err = decodeVec(path, "scale", scale, pixel, mgl32.Vec3{1, 1, 1}); err != nil {
		return t, err
	}
	return t, nil
}

func decodeVec(path, field string, v []float32, mult float32, def mgl32.Vec3) (mgl32.Vec3, error) {
	if v == nil {
		return def, nil
	}
	if len(v) != 3 {
		return def, fmt.Errorf("modelfile: %s: %s needs 3 values, got %d", path, field, len(v))
	}
	return mgl32.Vec3{v[0], v[1], v[2]}.Mul(mult), nil
}
