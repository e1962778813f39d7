package island

// Grid is a dense 3D tile grid built from a room's sparse tile data. Cells
// are addressed by linear GridIndex (x + y*extentX + z*extentX*extentY) or
// by coordinates; coordinate lookups wrap on looping axes.
type Grid struct {
	extentX, extentY, extentZ    int
	loopingX, loopingY, loopingZ bool
	cells                        []TileData
}

// CreateGrid builds a dense grid of the room's extents, default-filled with
// the empty tile, with every sparse tile entry overlaid at its index.
// Sparse entries outside the grid are dropped. The receiver is not modified.
func (r *Room) CreateGrid() *Grid {
	g := &Grid{
		extentX:  int(r.ExtentX),
		extentY:  int(r.ExtentY),
		extentZ:  int(r.ExtentZ),
		loopingX: r.LoopingX,
		loopingY: r.LoopingY,
		loopingZ: r.LoopingZ,
	}
	g.cells = make([]TileData, g.extentX*g.extentY*g.extentZ)
	for index, tile := range r.Tiles {
		g.Set(index, tile)
	}
	return g
}

// TotalSize returns the number of cells in the grid.
func (g *Grid) TotalSize() int { return len(g.cells) }

// Extents returns the grid dimensions in cells, ordered X, Y, Z.
func (g *Grid) Extents() (x, y, z int) { return g.extentX, g.extentY, g.extentZ }

// Get returns the tile at a linear index, or the empty tile if the index is
// out of range.
func (g *Grid) Get(index GridIndex) TileData {
	if index < 0 || int(index) >= len(g.cells) {
		return TileData{}
	}
	return g.cells[index]
}

// Set stores a tile at a linear index. Out-of-range indexes are ignored.
func (g *Grid) Set(index GridIndex, tile TileData) {
	if index < 0 || int(index) >= len(g.cells) {
		return
	}
	g.cells[index] = tile
}

// At returns the tile at grid coordinates. Coordinates on a looping axis
// wrap; out-of-range coordinates on a non-looping axis report ok=false.
func (g *Grid) At(x, y, z int) (tile TileData, ok bool) {
	x, ok = wrap(x, g.extentX, g.loopingX)
	if !ok {
		return TileData{}, false
	}
	y, ok = wrap(y, g.extentY, g.loopingY)
	if !ok {
		return TileData{}, false
	}
	z, ok = wrap(z, g.extentZ, g.loopingZ)
	if !ok {
		return TileData{}, false
	}
	return g.cells[x+y*g.extentX+z*g.extentX*g.extentY], true
}

// Index returns the linear index of grid coordinates, applying the same
// wrapping rules as At.
func (g *Grid) Index(x, y, z int) (GridIndex, bool) {
	x, okX := wrap(x, g.extentX, g.loopingX)
	y, okY := wrap(y, g.extentY, g.loopingY)
	z, okZ := wrap(z, g.extentZ, g.loopingZ)
	if !okX || !okY || !okZ {
		return 0, false
	}
	return GridIndex(x + y*g.extentX + z*g.extentX*g.extentY), true
}

func wrap(c, extent int, looping bool) (int, bool) {
	if extent <= 0 {
		return 0, false
	}
	if looping {
		c %= extent
		if c < 0 {
			c += extent
		}
		return c, true
	}
	if c < 0 || c >= extent {
		return 0, false
	}
	return c, true
}
