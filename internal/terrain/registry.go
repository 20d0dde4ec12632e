package terrain

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"cubevox/internal/engine"
)

var (
	// ErrUnknownMaterial is returned for ids without a definition.
	ErrUnknownMaterial = errors.New("terrain: unknown material")
	// ErrInvalidRegistry is returned when a definition list cannot form a
	// registry.
	ErrInvalidRegistry = errors.New("terrain: invalid registry")
)

// Registry maps material ids to block definitions. It is built once and not
// modified afterwards.
type Registry struct {
	atlas  string
	defs   []BlockDef
	byName map[string]Material
}

// NewRegistry builds a registry whose ids are the positions in defs. Ids 0
// (air) and 1 (boundary) must be present.
func NewRegistry(atlas string, defs []BlockDef) (*Registry, error) {
	if len(defs) < 2 {
		return nil, fmt.Errorf("%w: need definitions for ids 0 and 1, got %d", ErrInvalidRegistry, len(defs))
	}
	if len(defs) > 1<<16 {
		return nil, fmt.Errorf("%w: %d definitions exceed the uint16 id space", ErrInvalidRegistry, len(defs))
	}
	r := &Registry{
		atlas:  atlas,
		defs:   make([]BlockDef, len(defs)),
		byName: make(map[string]Material, len(defs)),
	}
	for i, d := range defs {
		if d.Renderer == nil {
			d.Renderer = NoneRenderer{}
		}
		if d.Name != "" {
			if _, dup := r.byName[d.Name]; dup {
				return nil, fmt.Errorf("%w: duplicate material name %q", ErrInvalidRegistry, d.Name)
			}
			r.byName[d.Name] = Material(i)
		}
		r.defs[i] = d
	}
	if !r.defs[Boundary].Transparent {
		engine.Logger().Warn("terrain: boundary material is opaque; chunk edges will not be drawn", "name", r.defs[Boundary].Name)
	}
	return r, nil
}

// Atlas returns the atlas texture name the registry's tile indices refer to.
func (r *Registry) Atlas() string { return r.atlas }

// Len returns the number of defined materials.
func (r *Registry) Len() int { return len(r.defs) }

// Def returns the definition of id.
func (r *Registry) Def(id Material) (*BlockDef, error) {
	if int(id) >= len(r.defs) {
		return nil, fmt.Errorf("%w: id %d (registry has %d)", ErrUnknownMaterial, id, len(r.defs))
	}
	return &r.defs[id], nil
}

// Lookup returns the id of the material called name.
func (r *Registry) Lookup(name string) (Material, bool) {
	m, ok := r.byName[name]
	return m, ok
}

// def is the unchecked lookup used on ids already validated by Chunk.Set.
func (r *Registry) def(id Material) *BlockDef { return &r.defs[id] }

// RegistryFile is the JSON form of a registry.
//
//	{"atlas": "blocks.png", "blocks": [
//	  {"name": "air", "transparent": true, "renderer": "none"},
//	  {"name": "grass", "renderer": "standard", "faces": [0, 1, 0, 0, 0, 0]}]}
type RegistryFile struct {
	Atlas  string      `json:"atlas"`
	Blocks []BlockFile `json:"blocks"`
}

// BlockFile is one entry of a RegistryFile. Faces lists the atlas tiles for
// above, below, north, south, east and west; a single value applies to all.
type BlockFile struct {
	Name        string   `json:"name"`
	Transparent bool     `json:"transparent"`
	Renderer    string   `json:"renderer"`
	Faces       []uint16 `json:"faces,omitempty"`
	Custom      string   `json:"custom,omitempty"`
}

// LoadRegistry reads a JSON registry. Blocks with renderer "custom" name
// their geometry function in customs.
func LoadRegistry(path string, customs map[string]CustomRenderer) (*Registry, error) {
	f, err := ReadRegistryFile(path)
	if err != nil {
		return nil, err
	}
	r, err := f.Registry(customs)
	if err != nil {
		return nil, fmt.Errorf("terrain: %s: %w", path, err)
	}
	return r, nil
}

// ReadRegistryFile parses a JSON registry without resolving its renderers,
// for callers that need the atlas before building custom renderers.
func ReadRegistryFile(path string) (RegistryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RegistryFile{}, fmt.Errorf("terrain: read %s: %w", path, err)
	}
	var f RegistryFile
	if err := json.Unmarshal(data, &f); err != nil {
		return RegistryFile{}, fmt.Errorf("terrain: parse %s: %w", path, err)
	}
	return f, nil
}

// Registry converts the file form into a registry.
func (f RegistryFile) Registry(customs map[string]CustomRenderer) (*Registry, error) {
	defs := make([]BlockDef, len(f.Blocks))
	for i, b := range f.Blocks {
		r, err := b.renderer(customs)
		if err != nil {
			return nil, fmt.Errorf("block %d (%s): %w", i, b.Name, err)
		}
		defs[i] = BlockDef{Name: b.Name, Transparent: b.Transparent, Renderer: r}
	}
	return NewRegistry(f.Atlas, defs)
}

func (b BlockFile) renderer(customs map[string]CustomRenderer) (Renderer, error) {
	switch strings.ToLower(b.Renderer) {
	case "", "none":
		return NoneRenderer{}, nil
	case "block_entity", "blockentity":
		return BlockEntityRenderer{}, nil
	case "standard":
		switch len(b.Faces) {
		case 1:
			return Uniform(b.Faces[0]), nil
		case 6:
			f := b.Faces
			return StandardRenderer{f[0], f[1], f[2], f[3], f[4], f[5]}, nil
		default:
			return nil, fmt.Errorf("%w: standard renderer needs 1 or 6 faces, got %d", ErrInvalidRegistry, len(b.Faces))
		}
	case "custom":
		c, ok := customs[b.Custom]
		if !ok || c == nil {
			return nil, fmt.Errorf("%w: no custom renderer %q", ErrInvalidRegistry, b.Custom)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: unknown renderer %q", ErrInvalidRegistry, b.Renderer)
	}
}
