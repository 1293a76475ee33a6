package parallel

import "sync"

// TilePool recycles tile storage between renders.
//
// Every render of a given canvas size asks for the same set of tile sizes
// (full tiles plus the right and bottom edge tiles), so a sync.Pool per
// size keeps steady-state rendering allocation free.
//
// Thread safety: TilePool is safe for concurrent use.
type TilePool struct {
	// pools maps poolKey(width, height) to *sync.Pool.
	pools sync.Map
}

// NewTilePool creates an empty tile pool.
func NewTilePool() *TilePool {
	return &TilePool{}
}

// Get returns a zeroed tile of the given size, or nil for non-positive sizes.
func (p *TilePool) Get(width, height int) *Tile {
	if width <= 0 || height <= 0 {
		return nil
	}

	t := p.poolFor(width, height).Get().(*Tile)
	t.X, t.Y = 0, 0
	t.Reset()
	return t
}

// Put returns a tile to the pool. A nil tile is ignored.
func (p *TilePool) Put(t *Tile) {
	if t == nil {
		return
	}
	p.poolFor(t.Width, t.Height).Put(t)
}

func (p *TilePool) poolFor(width, height int) *sync.Pool {
	key := poolKey(width, height)
	if v, ok := p.pools.Load(key); ok {
		return v.(*sync.Pool)
	}

	fresh := &sync.Pool{
		New: func() any {
			return &Tile{
				Width:  width,
				Height: height,
				Data:   make([]byte, width*height*4),
			}
		},
	}
	v, _ := p.pools.LoadOrStore(key, fresh)
	return v.(*sync.Pool)
}

// poolKey packs a tile size into one map key. Tiles never exceed
// TileWidth x TileHeight, so 16 bits per side is plenty.
func poolKey(width, height int) uint32 {
	return uint32(width&0xFFFF)<<16 | uint32(height&0xFFFF) //nolint:gosec // masked to 16 bits
}
