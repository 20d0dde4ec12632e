package terrain

import "testing"

func TestTileUV(t *testing.T) {
	tests := []struct {
		name         string
		atlas        AtlasSize
		index        uint16
		u, v         float32
		wantU, wantV float32
	}{
		{"first tile origin", AtlasSize{256, 16}, 0, 0, 0, 0, 0},
		{"first tile corner", AtlasSize{256, 16}, 0, 1, 1, 0.0625, 1},
		{"index 3 on 256px", AtlasSize{256, 256}, 3, 0, 0, 0.1875, 0},
		{"index 3 far corner", AtlasSize{256, 256}, 3, 1, 1, 0.25, 0.0625},
		{"wraps to next row", AtlasSize{64, 64}, 5, 0, 0, 0.25, 0.25},
		{"two tile strip", AtlasSize{32, 16}, 1, 0.5, 0.5, 0.75, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, v := tt.atlas.TileUV(tt.index, tt.u, tt.v)
			if u != tt.wantU || v != tt.wantV {
				t.Errorf("TileUV(%d, %v, %v) = (%v, %v), want (%v, %v)", tt.index, tt.u, tt.v, u, v, tt.wantU, tt.wantV)
			}
		})
	}
}
