package parallel

// TileGrid covers a width x height canvas with tiles in row-major order.
//
// Thread safety: the grid itself is not safe for concurrent mutation, but
// distinct tiles may be filled concurrently.
type TileGrid struct {
	tiles  []*Tile
	tilesX int
	tilesY int
	width  int
	height int
	pool   *TilePool
}

// NewTileGrid allocates tiles from pool for a width x height canvas.
// A nil pool uses a private one. Non-positive sizes give an empty grid.
func NewTileGrid(width, height int, pool *TilePool) *TileGrid {
	if pool == nil {
		pool = NewTilePool()
	}
	g := &TileGrid{pool: pool}
	if width <= 0 || height <= 0 {
		return g
	}

	g.width, g.height = width, height
	g.tilesX = (width + TileWidth - 1) / TileWidth
	g.tilesY = (height + TileHeight - 1) / TileHeight
	g.tiles = make([]*Tile, 0, g.tilesX*g.tilesY)

	for ty := range g.tilesY {
		h := min(TileHeight, height-ty*TileHeight)
		for tx := range g.tilesX {
			w := min(TileWidth, width-tx*TileWidth)
			t := pool.Get(w, h)
			t.X, t.Y = tx, ty
			g.tiles = append(g.tiles, t)
		}
	}
	return g
}

// TileAt returns the tile at tile coordinates (tx, ty), or nil.
func (g *TileGrid) TileAt(tx, ty int) *Tile {
	if tx < 0 || tx >= g.tilesX || ty < 0 || ty >= g.tilesY {
		return nil
	}
	return g.tiles[ty*g.tilesX+tx]
}

// TileAtPixel returns the tile containing canvas pixel (px, py), or nil.
func (g *TileGrid) TileAtPixel(px, py int) *Tile {
	if px < 0 || px >= g.width || py < 0 || py >= g.height {
		return nil
	}
	return g.TileAt(px/TileWidth, py/TileHeight)
}

// Tiles returns all tiles in row-major order. The slice must not be modified.
func (g *TileGrid) Tiles() []*Tile {
	return g.tiles
}

// TileCount returns the number of tiles.
func (g *TileGrid) TileCount() int {
	return len(g.tiles)
}

// TilesX returns the number of tile columns.
func (g *TileGrid) TilesX() int { return g.tilesX }

// TilesY returns the number of tile rows.
func (g *TileGrid) TilesY() int { return g.tilesY }

// Close hands all tiles back to the pool. The grid is empty afterwards.
func (g *TileGrid) Close() {
	for _, t := range g.tiles {
		g.pool.Put(t)
	}
	g.tiles = nil
	g.tilesX, g.tilesY = 0, 0
	g.width, g.height = 0, 0
}
