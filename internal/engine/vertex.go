package engine

import (
	"encoding/binary"
	"math"

	"cubevox/internal/mathutil"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is the shared mesh vertex: position, texture coordinates, normal.
type Vertex struct {
	Position  [3]float32
	TexCoords [2]float32
	Normal    [3]float32
}

// VertexSize is the packed size of a Vertex in bytes.
const VertexSize = 8 * 4

// AppendVertices packs vertices little-endian onto buf.
func AppendVertices(buf []byte, vs []Vertex) []byte {
	for _, v := range vs {
		buf = AppendFloats(buf, v.Position[:]...)
		buf = AppendFloats(buf, v.TexCoords[:]...)
		buf = AppendFloats(buf, v.Normal[:]...)
	}
	return buf
}

// DecodeVertices unpacks a buffer written by AppendVertices.
func DecodeVertices(data []byte) []Vertex {
	n := len(data) / VertexSize
	out := make([]Vertex, n)
	for i := range out {
		f := ReadFloats(data[i*VertexSize:], 8)
		out[i] = Vertex{
			Position:  [3]float32{f[0], f[1], f[2]},
			TexCoords: [2]float32{f[3], f[4]},
			Normal:    [3]float32{f[5], f[6], f[7]},
		}
	}
	return out
}

// TransformRaw is the per-draw record of a chunk: model and normal matrix.
type TransformRaw struct {
	Model  mgl32.Mat4
	Normal mgl32.Mat3
}

// TransformRawSize is the packed size of a TransformRaw in bytes.
const TransformRawSize = (16 + 9) * 4

// NewTransformRaw captures t for upload.
func NewTransformRaw(t mathutil.Transform) TransformRaw {
	return TransformRaw{Model: t.Mat(), Normal: t.NormalMat()}
}

// Bytes packs the record little-endian, matrices column-major.
func (r TransformRaw) Bytes() []byte {
	buf := make([]byte, 0, TransformRawSize)
	buf = AppendFloats(buf, r.Model[:]...)
	return AppendFloats(buf, r.Normal[:]...)
}

// DecodeTransformRaw unpacks the first record of data.
func DecodeTransformRaw(data []byte) TransformRaw {
	f := ReadFloats(data, 25)
	var r TransformRaw
	copy(r.Model[:], f[:16])
	copy(r.Normal[:], f[16:])
	return r
}

// AppendFloats packs float32 values little-endian onto buf.
func AppendFloats(buf []byte, fs ...float32) []byte {
	for _, f := range fs {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
	}
	return buf
}

// ReadFloats unpacks n little-endian float32 values from data.
func ReadFloats(data []byte, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return out
}
