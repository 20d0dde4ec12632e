package cubes

import (
	"cubevox/internal/engine"
	"cubevox/internal/mathutil"

	"github.com/go-gl/mathgl/mgl32"
)

// PxPerUnit is the number of texels covering one model unit.
const PxPerUnit = 16.0

// Bone is a node of a cube model: a local transform, leaf parts and child
// bones. Parts are emitted before children, children in declaration order.
type Bone struct {
	Label     string // optional, used to target bones from animation code
	Transform mathutil.Transform
	Parts     []Part
	Children  []*Bone
}

// Part is a single textured cube attached to a bone.
type Part struct {
	Transform mathutil.Transform
	// TexOffset is the top-left corner of the part's skin region in
	// normalized atlas coordinates.
	TexOffset mgl32.Vec2
}

// NewBone returns an unlabeled bone with an identity transform.
func NewBone(label string) *Bone {
	return &Bone{Label: label, Transform: mathutil.Identity()}
}

// Find returns the first bone in pre-order whose label matches, or nil.
func (b *Bone) Find(label string) *Bone {
	if b == nil {
		return nil
	}
	if b.Label == label {
		return b
	}
	for _, c := range b.Children {
		if f := c.Find(label); f != nil {
			return f
		}
	}
	return nil
}

// PartCount returns the number of parts in the subtree rooted at b.
func (b *Bone) PartCount() int {
	if b == nil {
		return 0
	}
	n := len(b.Parts)
	for _, c := range b.Children {
		n += c.PartCount()
	}
	return n
}

// Clone returns a deep copy of the subtree rooted at b.
func (b *Bone) Clone() *Bone {
	if b == nil {
		return nil
	}
	c := &Bone{
		Label:     b.Label,
		Transform: b.Transform,
		Parts:     append([]Part(nil), b.Parts...),
		Children:  make([]*Bone, len(b.Children)),
	}
	for i, ch := range b.Children {
		c.Children[i] = ch.Clone()
	}
	return c
}

// CubeInstance is the per-part record consumed by the cube pipeline.
type CubeInstance struct {
	Model  mgl32.Mat4
	Normal mgl32.Mat3
	// TexSplits holds five U split points (row 0 and [1][0]) and three V
	// split points ([1][1:4]) of the part's cross-shaped skin region.
	TexSplits [2][4]float32
}

// InstanceSize is the packed size of a CubeInstance in bytes.
const InstanceSize = (16 + 9 + 8) * 4

// Generate builds the instance of a part whose world matrix is matrix and
// whose accumulated rotation is rotation. Scale is the part's local scale,
// used with pxPerUnit to size its skin region on a texW×texH texture.
func Generate(matrix mgl32.Mat4, rotation mgl32.Quat, scale mgl32.Vec3, texOffset mgl32.Vec2, texW, texH, pxPerUnit float32) CubeInstance {
	xScale := scale[0] * pxPerUnit / texW
	yyScale := scale[1] * pxPerUnit / texH
	zxScale := scale[2] * pxPerUnit / texW
	zyScale := scale[2] * pxPerUnit / texH

	ox, oy := texOffset[0], texOffset[1]
	return CubeInstance{
		Model:  matrix,
		Normal: rotation.Mat4().Mat3(),
		TexSplits: [2][4]float32{
			{
				ox,
				ox + zxScale,
				ox + zxScale + xScale,
				ox + zxScale + xScale + zxScale,
			},
			{
				ox + zxScale + xScale + zxScale + xScale,
				oy,
				oy + zyScale,
				oy + zyScale + yyScale,
			},
		},
	}
}

// USplits returns the five U split points.
func (c CubeInstance) USplits() [5]float32 {
	s := c.TexSplits
	return [5]float32{s[0][0], s[0][1], s[0][2], s[0][3], s[1][0]}
}

// VSplits returns the three V split points.
func (c CubeInstance) VSplits() [3]float32 {
	s := c.TexSplits
	return [3]float32{s[1][1], s[1][2], s[1][3]}
}

// SplitUV maps a cube-mesh texture coordinate (U in quarters, V in halves)
// onto the instance's skin region.
func (c CubeInstance) SplitUV(u, v float32) (float32, float32) {
	us := c.USplits()
	vs := c.VSplits()
	return piecewise(us[:], u), piecewise(vs[:], v)
}

// piecewise interpolates t in [0,1] across len(points)-1 equal segments.
func piecewise(points []float32, t float32) float32 {
	segs := len(points) - 1
	f := t * float32(segs)
	i := int(f)
	if i >= segs {
		i = segs - 1
	}
	if i < 0 {
		i = 0
	}
	frac := f - float32(i)
	return points[i] + (points[i+1]-points[i])*frac
}

// AppendInstances packs instances little-endian onto buf.
func AppendInstances(buf []byte, instances []CubeInstance) []byte {
	for _, in := range instances {
		buf = engine.AppendFloats(buf, in.Model[:]...)
		buf = engine.AppendFloats(buf, in.Normal[:]...)
		buf = engine.AppendFloats(buf, in.TexSplits[0][:]...)
		buf = engine.AppendFloats(buf, in.TexSplits[1][:]...)
	}
	return buf
}

// DecodeInstances unpacks count instances written by AppendInstances.
func DecodeInstances(data []byte, count int) []CubeInstance {
	if n := len(data) / InstanceSize; count > n {
		count = n
	}
	out := make([]CubeInstance, count)
	for i := range out {
		f := engine.ReadFloats(data[i*InstanceSize:], InstanceSize/4)
		copy(out[i].Model[:], f[0:16])
		copy(out[i].Normal[:], f[16:25])
		copy(out[i].TexSplits[0][:], f[25:29])
		copy(out[i].TexSplits[1][:], f[29:33])
	}
	return out
}
