package terrain

import "cubevox/internal/engine"

// Unit-cube faces in block-local space, two triangles each. Positions span
// [0,1]; texture coordinates span one atlas tile.
var (
	cubeTop = [6]engine.Vertex{
		{Position: [3]float32{0, 1, 0}, TexCoords: [2]float32{0, 0}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{0, 1, 1}, TexCoords: [2]float32{0, 1}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{1, 1, 0}, TexCoords: [2]float32{1, 0}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{0, 1, 1}, TexCoords: [2]float32{0, 1}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{1, 1, 1}, TexCoords: [2]float32{1, 1}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{1, 1, 0}, TexCoords: [2]float32{1, 0}, Normal: [3]float32{0, 1, 0}},
	}

	cubeBottom = [6]engine.Vertex{
		{Position: [3]float32{1, 0, 0}, TexCoords: [2]float32{1, 0}, Normal: [3]float32{0, -1, 0}},
		{Position: [3]float32{0, 0, 1}, TexCoords: [2]float32{0, 1}, Normal: [3]float32{0, -1, 0}},
		{Position: [3]float32{0, 0, 0}, TexCoords: [2]float32{0, 0}, Normal: [3]float32{0, -1, 0}},
		{Position: [3]float32{1, 0, 0}, TexCoords: [2]float32{0, 1}, Normal: [3]float32{0, -1, 0}},
		{Position: [3]float32{1, 0, 1}, TexCoords: [2]float32{1, 1}, Normal: [3]float32{0, -1, 0}},
		{Position: [3]float32{0, 0, 1}, TexCoords: [2]float32{1, 0}, Normal: [3]float32{0, -1, 0}},
	}

	cubeNorth = [6]engine.Vertex{
		{Position: [3]float32{1, 0, 1}, TexCoords: [2]float32{1, 0}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{0, 1, 1}, TexCoords: [2]float32{0, 1}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{0, 0, 1}, TexCoords: [2]float32{0, 0}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{1, 0, 1}, TexCoords: [2]float32{1, 0}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{1, 1, 1}, TexCoords: [2]float32{1, 1}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{0, 1, 1}, TexCoords: [2]float32{0, 1}, Normal: [3]float32{0, 0, 1}},
	}

	cubeSouth = [6]engine.Vertex{
		{Position: [3]float32{0, 0, 0}, TexCoords: [2]float32{1, 0}, Normal: [3]float32{0, 0, -1}},
		{Position: [3]float32{0, 1, 0}, TexCoords: [2]float32{0, 1}, Normal: [3]float32{0, 0, -1}},
		{Position: [3]float32{1, 0, 0}, TexCoords: [2]float32{0, 0}, Normal: [3]float32{0, 0, -1}},
		{Position: [3]float32{0, 1, 0}, TexCoords: [2]float32{1, 0}, Normal: [3]float32{0, 0, -1}},
		{Position: [3]float32{1, 1, 0}, TexCoords: [2]float32{1, 1}, Normal: [3]float32{0, 0, -1}},
		{Position: [3]float32{1, 0, 0}, TexCoords: [2]float32{0, 1}, Normal: [3]float32{0, 0, -1}},
	}

	cubeEast = [6]engine.Vertex{
		{Position: [3]float32{1, 0, 0}, TexCoords: [2]float32{0, 0}, Normal: [3]float32{1, 0, 0}},
		{Position: [3]float32{1, 1, 0}, TexCoords: [2]float32{1, 0}, Normal: [3]float32{1, 0, 0}},
		{Position: [3]float32{1, 0, 1}, TexCoords: [2]float32{0, 1}, Normal: [3]float32{1, 0, 0}},
		{Position: [3]float32{1, 1, 0}, TexCoords: [2]float32{1, 0}, Normal: [3]float32{1, 0, 0}},
		{Position: [3]float32{1, 1, 1}, TexCoords: [2]float32{1, 1}, Normal: [3]float32{1, 0, 0}},
		{Position: [3]float32{1, 0, 1}, TexCoords: [2]float32{0, 1}, Normal: [3]float32{1, 0, 0}},
	}

	cubeWest = [6]engine.Vertex{
		{Position: [3]float32{0, 0, 1}, TexCoords: [2]float32{0, 1}, Normal: [3]float32{-1, 0, 0}},
		{Position: [3]float32{0, 1, 0}, TexCoords: [2]float32{1, 0}, Normal: [3]float32{-1, 0, 0}},
		{Position: [3]float32{0, 0, 0}, TexCoords: [2]float32{0, 0}, Normal: [3]float32{-1, 0, 0}},
		{Position: [3]float32{0, 0, 1}, TexCoords: [2]float32{0, 1}, Normal: [3]float32{-1, 0, 0}},
		{Position: [3]float32{0, 1, 1}, TexCoords: [2]float32{1, 1}, Normal: [3]float32{-1, 0, 0}},
		{Position: [3]float32{0, 1, 0}, TexCoords: [2]float32{1, 0}, Normal: [3]float32{-1, 0, 0}},
	}
)

// Face identifies one of the six block faces.
type Face int

const (
	Above Face = iota
	Below
	North
	South
	East
	West
)

var faceNames = [...]string{"above", "below", "north", "south", "east", "west"}

func (f Face) String() string {
	if f < 0 || int(f) >= len(faceNames) {
		return "unknown"
	}
	return faceNames[f]
}

// FaceVertices returns a copy of the unit geometry of face f.
func FaceVertices(f Face) [6]engine.Vertex {
	switch f {
	case Above:
		return cubeTop
	case Below:
		return cubeBottom
	case North:
		return cubeNorth
	case South:
		return cubeSouth
	case East:
		return cubeEast
	default:
		return cubeWest
	}
}
