// Package parallel provides the fork-join machinery used to fill a pixel
// buffer from many independent per-pixel computations.
//
// Two ways of carving up a buffer are offered:
//
//   - Partition splits the linear pixel index space into equal contiguous
//     spans. Each span maps to one disjoint byte range of the destination
//     buffer, so workers write straight into it.
//   - TileGrid covers the buffer with 64x64 tiles. Each tile renders into its
//     own pooled storage and is then copied into its rectangle of the buffer.
//
// In both cases the regions are disjoint by construction, so no locking is
// needed on the destination. WorkerPool runs the work and blocks until every
// region is done.
package parallel

// Tile size constants.
const (
	// TileWidth is the width of a tile in pixels.
	TileWidth = 64

	// TileHeight is the height of a tile in pixels.
	TileHeight = 64

	// TilePixels is the number of pixels in a full tile.
	TilePixels = TileWidth * TileHeight

	// TileBytes is the size of a full tile in bytes (RGBA).
	TileBytes = TilePixels * 4
)

// Tile is a rectangular region of the canvas with its own RGBA storage.
// Edge tiles are smaller when the canvas is not a multiple of the tile size.
type Tile struct {
	// X and Y are the tile column and row, 0-based.
	X, Y int

	// Width and Height are the tile's size in pixels.
	Width, Height int

	// Data holds Width*Height RGBA pixels, row-major.
	Data []byte
}

// Reset zeroes the tile's pixels.
func (t *Tile) Reset() {
	clear(t.Data)
}

// Bounds returns the tile's top-left corner in canvas space and its size.
func (t *Tile) Bounds() (x, y, w, h int) {
	return t.X * TileWidth, t.Y * TileHeight, t.Width, t.Height
}

// PixelOffset returns the byte offset of tile-local pixel (px, py) in Data,
// or -1 if the pixel lies outside the tile.
func (t *Tile) PixelOffset(px, py int) int {
	if px < 0 || px >= t.Width || py < 0 || py >= t.Height {
		return -1
	}
	return (py*t.Width + px) * 4
}

// Stride returns the row stride of Data in bytes.
func (t *Tile) Stride() int {
	return t.Width * 4
}

// CopyTo writes the tile's rows into dst, a row-major RGBA canvas with the
// given stride in bytes. Rows or columns falling outside dst are skipped.
//
// Tiles of one grid cover disjoint rectangles, so CopyTo may run for all of
// them concurrently against the same dst.
func (t *Tile) CopyTo(dst []byte, dstStride int) {
	ox, oy, _, _ := t.Bounds()
	src := t.Stride()

	n := min(src, dstStride-ox*4)
	if n <= 0 {
		return
	}

	for row := range t.Height {
		at := (oy+row)*dstStride + ox*4
		if at+n > len(dst) {
			return
		}
		copy(dst[at:at+n], t.Data[row*src:row*src+n])
	}
}
