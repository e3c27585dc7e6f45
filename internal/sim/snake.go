package sim

// Segment is one cell of the snake. Rot and Scale are presentation
// hints for the renderer; no gameplay decision ever reads them.
type Segment struct {
	Pos   Vec2
	Rot   float64
	Scale float64
}

// TailConsumeResult reports what a level-10 tail consume removed: the
// vacated cells (for the particle collaborator) and the strategic
// payload consumed by scoring.
type TailConsumeResult struct {
	Vacated     []Vec2
	BonusPoints int
	// SpeedBoostMs is a temporary movement-rate bonus window; zero
	// when the consume was fully clamped away.
	SpeedBoostMs    float64
	SpeedMultiplier float64
}

// Snake owns the segment chain and direction state. The head is
// logically distinct from Body[0]; Body is ordered tail-last. While
// Alive the chain never drops below MinLength cells total.
type Snake struct {
	Head Segment
	Body []Segment

	Dir       Vec2
	QueuedDir Vec2
	HasQueued bool

	Speed float64 // scales the move interval, clamped [MinSpeed, MaxSpeed]

	// PrevHead is the head position before the most recent advance,
	// kept for continuous collision sampling.
	PrevHead Vec2

	Alive bool
}

func NewSnake(start Vec2, dir Vec2) *Snake {
	s := &Snake{
		Head:  Segment{Pos: start, Rot: dirAngle(dir), Scale: 1.0},
		Dir:   dir,
		Speed: 1.0,
		Alive: true,
	}
	s.PrevHead = start
	// Body trails opposite the starting direction.
	back := Vec2{X: -dir.X, Y: -dir.Y}
	p := start
	for i := 0; i < StartLength-1; i++ {
		p = p.Add(back)
		s.Body = append(s.Body, Segment{Pos: p, Rot: s.Head.Rot, Scale: 1.0})
	}
	return s
}

// Length is the total cell count, head included.
func (s *Snake) Length() int {
	return 1 + len(s.Body)
}

// QueueDirection requests a direction change for the next move. The
// sole rejection rule is exact reversal of the current direction;
// rejected directions are silently dropped.
func (s *Snake) QueueDirection(d Vec2) {
	if d == (Vec2{}) {
		return
	}
	if d.IsOpposite(s.Dir) {
		return
	}
	s.QueuedDir = d
	s.HasQueued = true
}

// Move advances the head one cell and shifts every body segment to its
// predecessor's position. The queued direction, if any, becomes the
// direction first. No-op while dead.
func (s *Snake) Move() {
	if !s.Alive {
		return
	}
	if s.HasQueued {
		if !s.QueuedDir.IsOpposite(s.Dir) {
			s.Dir = s.QueuedDir
		}
		s.HasQueued = false
	}
	s.advanceTo(s.Head.Pos.Add(s.Dir))
}

// MoveBy advances the head n cells in the current direction as a single
// step (Dash). The body still shifts once per step so collision
// sampling between PrevHead and Head covers the gap.
func (s *Snake) MoveBy(n int) {
	if !s.Alive || n <= 0 {
		return
	}
	target := s.Head.Pos
	for i := 0; i < n; i++ {
		target = target.Add(s.Dir)
	}
	s.advanceTo(target)
}

func (s *Snake) advanceTo(newHead Vec2) {
	s.PrevHead = s.Head.Pos

	prev := s.Head
	s.Head.Pos = newHead
	s.Head.Rot = dirAngle(s.Dir)

	for i := range s.Body {
		s.Body[i], prev = prev, s.Body[i]
	}
	// The old tail cell falls off the end; growth happens in Grow at
	// eat time, not here.
	s.refreshScales()
}

// Grow appends n segments at the current tail cell. Appending at the
// exact last occupied cell (not a projected cell beyond it) is
// intentional: new segments surface as the tail vacates.
func (s *Snake) Grow(n int) {
	if n <= 0 {
		return
	}
	tail := s.Head
	if len(s.Body) > 0 {
		tail = s.Body[len(s.Body)-1]
	}
	for i := 0; i < n; i++ {
		s.Body = append(s.Body, tail)
	}
	s.refreshScales()
}

// Shrink removes up to n trailing segments, never dropping total length
// below MinLength. Returns how many were actually removed.
func (s *Snake) Shrink(n int) int {
	if n <= 0 {
		return 0
	}
	removable := s.Length() - MinLength
	if n > removable {
		n = removable
	}
	if n <= 0 {
		return 0
	}
	s.Body = s.Body[:len(s.Body)-n]
	s.refreshScales()
	return n
}

// ConsumeTail eats up to n tail segments, clamped to MinLength. The
// evolution gate (level 10 only) is enforced by the coordinator, not
// here. Returns the vacated cells and the strategic payload.
func (s *Snake) ConsumeTail(n int) TailConsumeResult {
	if n <= 0 {
		return TailConsumeResult{}
	}
	removable := s.Length() - MinLength
	if n > removable {
		n = removable
	}
	if n <= 0 {
		return TailConsumeResult{}
	}
	vacated := make([]Vec2, 0, n)
	for i := 0; i < n; i++ {
		vacated = append(vacated, s.Body[len(s.Body)-1-i].Pos)
	}
	s.Body = s.Body[:len(s.Body)-n]
	s.refreshScales()
	return TailConsumeResult{
		Vacated:         vacated,
		BonusPoints:     n * TailConsumePoints,
		SpeedBoostMs:    2000,
		SpeedMultiplier: 1.25,
	}
}

// SetSpeed clamps into [MinSpeed, MaxSpeed]. Speed scales the interval
// between moves, never the per-move distance.
func (s *Snake) SetSpeed(v float64) {
	s.Speed = clampF(v, MinSpeed, MaxSpeed)
}

// Kill transitions Alive -> Dead. Move becomes a no-op afterwards.
func (s *Snake) Kill() {
	s.Alive = false
}

// refreshScales tapers segment scale toward the tail. Presentation
// only; collision reads positions exclusively.
func (s *Snake) refreshScales() {
	s.Head.Scale = 1.0
	n := len(s.Body)
	for i := range s.Body {
		t := float64(i+1) / float64(n+1)
		s.Body[i].Scale = 1.0 - 0.45*t
	}
}
