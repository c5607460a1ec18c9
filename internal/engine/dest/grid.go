package dest

// Grid holds the per-bench destination state the spatial passes operate
// on. Slices are row-major, rows*cols long. Skip marks blocks outside
// the period filter; the passes read them as neighbours but never
// rewrite them.
type Grid struct {
	Rows, Cols int

	DestC []Code // economic classification
	DestD []Code // diluted destination
	Dilfg []int
	Wardc []int
	Skip  []bool
}

// NewGrid allocates a grid with every block classified waste.
func NewGrid(rows, cols int) *Grid {
	n := rows * cols
	g := &Grid{
		Rows:  rows,
		Cols:  cols,
		DestC: make([]Code, n),
		DestD: make([]Code, n),
		Dilfg: make([]int, n),
		Wardc: make([]int, n),
		Skip:  make([]bool, n),
	}
	for i := range g.DestC {
		g.DestC[i] = WN
		g.DestD[i] = WN
		g.Dilfg[i] = DilWasteUnchanged
	}
	return g
}

func (g *Grid) idx(r, c int) int { return r*g.Cols + c }

// neighbours fills m with the 3x3 stencil of vs around (r, c):
//
//	0 1 2
//	3 4 5
//	6 7 8
func neighbours[T any](g *Grid, vs []T, r, c int, m *[9]T) {
	i := g.idx(r, c)
	m[0], m[1], m[2] = vs[i-g.Cols-1], vs[i-g.Cols], vs[i-g.Cols+1]
	m[3], m[4], m[5] = vs[i-1], vs[i], vs[i+1]
	m[6], m[7], m[8] = vs[i+g.Cols-1], vs[i+g.Cols], vs[i+g.Cols+1]
}
