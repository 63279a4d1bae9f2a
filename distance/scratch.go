package distance

// Scratch is a grow-only two dimensional table of ints.
// Capacity only ever increases until Release is called. Cells are not
// cleared between acquisitions, callers must write every cell they read.
type Scratch struct {
	cells    []int
	rows     int
	cols     int
	maxCells int // 0 means unlimited
	grows    int
}

// NewScratch creates an empty scratch table.
// maxCells caps the total number of cells the table may hold; 0 disables the cap.
func NewScratch(maxCells int) *Scratch {
	if maxCells < 0 {
		maxCells = 0
	}
	return &Scratch{maxCells: maxCells}
}

// Acquire ensures the table holds at least rows x cols cells and returns a
// view of exactly that size. When the table has to grow, each dimension grows
// to the larger of the current and requested sizes.
//
// If growth would exceed the cell limit, ErrScratchLimit is returned and the
// existing table is left untouched.
func (s *Scratch) Acquire(rows, cols int) (Grid, error) {
	if rows <= 0 || cols <= 0 {
		return Grid{}, ErrInvalidDimensions
	}

	if rows > s.rows || cols > s.cols {
		newRows := max(rows, s.rows)
		newCols := max(cols, s.cols)
		if newRows > maxInt/newCols {
			return Grid{}, ErrScratchLimit
		}
		total := newRows * newCols
		if s.maxCells > 0 && total > s.maxCells {
			return Grid{}, ErrScratchLimit
		}
		s.cells = make([]int, total)
		s.rows = newRows
		s.cols = newCols
		s.grows++
	}

	return Grid{
		cells:  s.cells,
		stride: s.cols,
		rows:   rows,
		cols:   cols,
	}, nil
}

// Release frees the table memory. Calling Release more than once is safe.
// The scratch may be acquired again afterwards and will regrow on demand.
func (s *Scratch) Release() {
	s.cells = nil
	s.rows = 0
	s.cols = 0
}

// Rows returns the current row capacity.
func (s *Scratch) Rows() int {
	return s.rows
}

// Cols returns the current column capacity.
func (s *Scratch) Cols() int {
	return s.cols
}

// Grows returns how many times the table has been reallocated.
func (s *Scratch) Grows() int {
	return s.grows
}

const maxInt = int(^uint(0) >> 1)

// Grid is a rows x cols window onto a Scratch.
// A Grid is only valid until the next Acquire or Release on its Scratch.
type Grid struct {
	cells  []int
	stride int
	rows   int
	cols   int
}

// At returns the value at row i, column j.
func (g Grid) At(i, j int) int {
	return g.cells[i*g.stride+j]
}

// Set stores v at row i, column j.
func (g Grid) Set(i, j, v int) {
	g.cells[i*g.stride+j] = v
}

// Rows returns the number of rows in the view.
func (g Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns in the view.
func (g Grid) Cols() int {
	return g.cols
}
