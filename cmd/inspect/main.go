package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"cubevox/internal/cubes"
	"cubevox/internal/modelfile"
	"cubevox/internal/raster"
	"cubevox/internal/scene"
	"cubevox/internal/terrain"
)

func main() {
	blocks := flag.String("blocks", "", "Inspect the terrain built from this block registry (missing: demo registry)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: inspect model.json | inspect -blocks blocks.json\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	switch {
	case *blocks != "" || flag.NArg() == 0:
		inspectTerrain(*blocks)
	default:
		inspectModel(flag.Arg(0))
	}
}

func inspectModel(path string) {
	f, err := modelfile.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	dev := raster.NewDevice(nil)
	m, err := f.Model(dev, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	w, h := dev.TextureSize(m.Texture)

	fmt.Printf("Model: %s\n", f.Name)
	fmt.Printf("Texture: %s (%dx%d)\n", f.TexturePath(), w, h)
	fmt.Printf("Instances: %d (%d bytes)\n", m.Instances().Len(), m.Instances().Buffer().Size())
	lo, hi := m.Bounds()
	fmt.Printf("BBox: X[%.3f, %.3f] Y[%.3f, %.3f] Z[%.3f, %.3f]\n", lo[0], hi[0], lo[1], hi[1], lo[2], hi[2])
	printBone(m.Root, 0)
}

func printBone(b *cubes.Bone, depth int) {
	label := b.Label
	if label == "" {
		label = "(unnamed)"
	}
	p := b.Transform.Position
	fmt.Printf("%s%s pos=(%.3f, %.3f, %.3f) parts=%d\n", strings.Repeat("  ", depth+1), label, p[0], p[1], p[2], len(b.Parts))
	for _, c := range b.Children {
		printBone(c, depth+1)
	}
}

func inspectTerrain(path string) {
	dev := raster.NewDevice(nil)
	s, err := scene.LoadTerrain(dev, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, c := range s.Chunks() {
		reg := c.Registry()
		counts := make(map[terrain.Material]int)
		for x := 0; x < terrain.ChunkSize; x++ {
			for y := 0; y < terrain.ChunkSize; y++ {
				for z := 0; z < terrain.ChunkSize; z++ {
					cell, _ := c.Get(terrain.Pos{X: x, Y: y, Z: z})
					counts[cell.Material]++
				}
			}
		}

		fmt.Printf("Chunk %d: %d vertices (%d triangles)\n", c.ID, c.VertexCount(), c.VertexCount()/3)
		for id := 0; id < reg.Len(); id++ {
			n := counts[terrain.Material(id)]
			if n == 0 {
				continue
			}
			def, _ := reg.Def(terrain.Material(id))
			fmt.Printf("  %-10s %5d blocks\n", def.Name, n)
		}

		lo, hi, ok := c.Bounds()
		if ok {
			fmt.Printf("  BBox: %v .. %v\n", lo, hi)
		}
	}
}
