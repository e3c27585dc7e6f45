package sim

// Occupant identifies what sits in a grid cell.
type Occupant int

const (
	OccupantNone Occupant = iota
	OccupantSnake
	OccupantFood
	OccupantObstacle
)

type GridCell struct {
	Occupied bool
	Occupant Occupant
	// Index is the occupant's index in its owning list: the body index
	// for OccupantSnake (-1 for the head), the list index for food and
	// obstacles. Zero and meaningless for OccupantNone.
	Index int
}

// Grid is the occupancy map. It is rebuilt from snake/food/obstacle
// state every tick; queries are O(1), rebuild is O(width*height).
// Out-of-bounds queries return zero values rather than failing.
type Grid struct {
	Width  int
	Height int
	cells  []GridCell
}

func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		cells:  make([]GridCell, width*height),
	}
}

func (g *Grid) InBounds(p Vec2) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = GridCell{}
	}
}

// MarkOccupied records an occupant at p. Out-of-bounds marks are dropped.
func (g *Grid) MarkOccupied(p Vec2, occ Occupant, index int) {
	if !g.InBounds(p) {
		return
	}
	g.cells[p.Y*g.Width+p.X] = GridCell{
		Occupied: true,
		Occupant: occ,
		Index:    index,
	}
}

func (g *Grid) IsOccupied(p Vec2) bool {
	if !g.InBounds(p) {
		return false
	}
	return g.cells[p.Y*g.Width+p.X].Occupied
}

func (g *Grid) At(p Vec2) GridCell {
	if !g.InBounds(p) {
		return GridCell{}
	}
	return g.cells[p.Y*g.Width+p.X]
}

// FindRandomEmptyCell picks an unoccupied cell uniformly, or ok=false
// when the board is full. Rejection sampling first, then a linear scan
// from a random offset so a nearly full board still terminates.
func (g *Grid) FindRandomEmptyCell(r *Rand) (Vec2, bool) {
	total := g.Width * g.Height
	for try := 0; try < 32; try++ {
		p := Vec2{X: r.Intn(g.Width), Y: r.Intn(g.Height)}
		if !g.IsOccupied(p) {
			return p, true
		}
	}
	start := r.Intn(total)
	for i := 0; i < total; i++ {
		idx := (start + i) % total
		if !g.cells[idx].Occupied {
			return Vec2{X: idx % g.Width, Y: idx / g.Width}, true
		}
	}
	return Vec2{}, false
}

// Rebuild repopulates the map from current entity positions.
func (g *Grid) Rebuild(snake *Snake, food, obstacles []Vec2) {
	g.Clear()
	for i, p := range obstacles {
		g.MarkOccupied(p, OccupantObstacle, i)
	}
	for i, p := range food {
		g.MarkOccupied(p, OccupantFood, i)
	}
	if snake != nil {
		for i := len(snake.Body) - 1; i >= 0; i-- {
			g.MarkOccupied(snake.Body[i].Pos, OccupantSnake, i)
		}
		g.MarkOccupied(snake.Head.Pos, OccupantSnake, -1)
	}
}
