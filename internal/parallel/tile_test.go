package parallel

import (
	"sync"
	"testing"
)

// =============================================================================
// Tile Tests
// =============================================================================

func TestTile_Constants(t *testing.T) {
	if TileWidth != 64 || TileHeight != 64 {
		t.Errorf("tile size = %dx%d, want 64x64", TileWidth, TileHeight)
	}
	if TileBytes != 64*64*4 {
		t.Errorf("TileBytes = %d, want %d", TileBytes, 64*64*4)
	}
}

func TestTile_Bounds(t *testing.T) {
	tests := []struct {
		name         string
		tile         Tile
		wantX, wantY int
		wantW, wantH int
	}{
		{"first tile", Tile{X: 0, Y: 0, Width: 64, Height: 64}, 0, 0, 64, 64},
		{"second row", Tile{X: 0, Y: 1, Width: 64, Height: 64}, 0, 64, 64, 64},
		{"edge tile", Tile{X: 2, Y: 3, Width: 32, Height: 16}, 128, 192, 32, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, w, h := tt.tile.Bounds()
			if x != tt.wantX || y != tt.wantY || w != tt.wantW || h != tt.wantH {
				t.Errorf("Bounds() = (%d,%d,%d,%d), want (%d,%d,%d,%d)",
					x, y, w, h, tt.wantX, tt.wantY, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestTile_PixelOffset(t *testing.T) {
	tile := &Tile{Width: 64, Height: 64, Data: make([]byte, TileBytes)}

	tests := []struct {
		name   string
		px, py int
		want   int
	}{
		{"top-left", 0, 0, 0},
		{"second pixel", 1, 0, 4},
		{"second row", 0, 1, 64 * 4},
		{"out of bounds negative", -1, 0, -1},
		{"out of bounds x", 64, 0, -1},
		{"out of bounds y", 0, 64, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tile.PixelOffset(tt.px, tt.py); got != tt.want {
				t.Errorf("PixelOffset(%d,%d) = %d, want %d", tt.px, tt.py, got, tt.want)
			}
		})
	}
}

func TestTile_CopyTo(t *testing.T) {
	const width, height = 100, 70
	dst := make([]byte, width*height*4)

	// Edge tile in the second column and second row: 36x6 pixels.
	tile := &Tile{X: 1, Y: 1, Width: width - 64, Height: height - 64}
	tile.Data = make([]byte, tile.Width*tile.Height*4)
	for i := range tile.Data {
		tile.Data[i] = 0xAB
	}

	tile.CopyTo(dst, width*4)

	for y := range height {
		for x := range width {
			got := dst[(y*width+x)*4]
			inside := x >= 64 && y >= 64
			if inside && got != 0xAB {
				t.Fatalf("pixel (%d,%d) = %#x, want 0xab", x, y, got)
			}
			if !inside && got != 0 {
				t.Fatalf("pixel (%d,%d) outside tile was written", x, y)
			}
		}
	}
}

// =============================================================================
// TilePool Tests
// =============================================================================

func TestTilePool_GetZeroed(t *testing.T) {
	pool := NewTilePool()

	tile := pool.Get(TileWidth, TileHeight)
	for i := range tile.Data {
		tile.Data[i] = 0xFF
	}
	tile.X, tile.Y = 5, 6
	pool.Put(tile)

	again := pool.Get(TileWidth, TileHeight)
	if again.X != 0 || again.Y != 0 {
		t.Errorf("reused tile position = (%d,%d), want (0,0)", again.X, again.Y)
	}
	for i, b := range again.Data {
		if b != 0 {
			t.Fatalf("reused tile byte %d = %d, want 0", i, b)
		}
	}
}

func TestTilePool_EdgeSizes(t *testing.T) {
	pool := NewTilePool()

	tile := pool.Get(13, 7)
	if tile.Width != 13 || tile.Height != 7 || len(tile.Data) != 13*7*4 {
		t.Errorf("Get(13,7) = %dx%d with %d bytes", tile.Width, tile.Height, len(tile.Data))
	}
	if pool.Get(0, 7) != nil || pool.Get(7, -1) != nil {
		t.Error("Get with non-positive size should return nil")
	}
	pool.Put(nil)
}

func TestTilePool_Concurrent(t *testing.T) {
	pool := NewTilePool()

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				tile := pool.Get(64, 1+i%64)
				tile.Data[0] = 1
				pool.Put(tile)
			}
		}()
	}
	wg.Wait()
}

// =============================================================================
// TileGrid Tests
// =============================================================================

func TestTileGrid_Dimensions(t *testing.T) {
	tests := []struct {
		name           string
		width, height  int
		tilesX, tilesY int
	}{
		{"exact", 128, 128, 2, 2},
		{"HD", 1920, 1080, 30, 17},
		{"tiny", 1, 1, 1, 1},
		{"empty", 0, 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewTileGrid(tt.width, tt.height, nil)
			defer g.Close()

			if g.TilesX() != tt.tilesX || g.TilesY() != tt.tilesY {
				t.Errorf("grid = %dx%d tiles, want %dx%d", g.TilesX(), g.TilesY(), tt.tilesX, tt.tilesY)
			}
			if g.TileCount() != tt.tilesX*tt.tilesY {
				t.Errorf("TileCount() = %d, want %d", g.TileCount(), tt.tilesX*tt.tilesY)
			}
		})
	}
}

func TestTileGrid_CoversCanvasOnce(t *testing.T) {
	const width, height = 200, 130
	g := NewTileGrid(width, height, NewTilePool())
	defer g.Close()

	seen := make([]int, width*height)
	for _, tile := range g.Tiles() {
		x0, y0, w, h := tile.Bounds()
		for y := y0; y < y0+h; y++ {
			for x := x0; x < x0+w; x++ {
				seen[y*width+x]++
			}
		}
	}
	for i, n := range seen {
		if n != 1 {
			t.Fatalf("pixel %d covered %d times", i, n)
		}
	}
}

func TestTileGrid_TileAtPixel(t *testing.T) {
	g := NewTileGrid(200, 130, nil)
	defer g.Close()

	tile := g.TileAtPixel(150, 100)
	if tile == nil || tile.X != 2 || tile.Y != 1 {
		t.Fatalf("TileAtPixel(150,100) = %+v, want tile (2,1)", tile)
	}
	if tile.Width != TileWidth || tile.Height != TileHeight {
		t.Errorf("interior tile size = %dx%d, want 64x64", tile.Width, tile.Height)
	}

	// 200 = 3*64 + 8, so column 3 is the narrow right edge.
	edge := g.TileAtPixel(195, 100)
	if edge == nil || edge.X != 3 || edge.Y != 1 {
		t.Fatalf("TileAtPixel(195,100) = %+v, want tile (3,1)", edge)
	}
	if edge.Width != 8 || edge.Height != 64 {
		t.Errorf("edge tile size = %dx%d, want 8x64", edge.Width, edge.Height)
	}

	// 130 = 2*64 + 2, so row 2 is the short bottom edge.
	corner := g.TileAtPixel(199, 129)
	if corner == nil || corner.Width != 8 || corner.Height != 2 {
		t.Errorf("corner tile = %+v, want 8x2", corner)
	}
	if g.TileAtPixel(200, 0) != nil || g.TileAtPixel(-1, 0) != nil {
		t.Error("TileAtPixel outside canvas should return nil")
	}
}

func TestTileGrid_Close(t *testing.T) {
	g := NewTileGrid(128, 64, nil)
	g.Close()

	if g.TileCount() != 0 || g.TileAt(0, 0) != nil {
		t.Error("grid should be empty after Close")
	}
}
