package sim

// RunState is the coordinator's lifecycle state.
type RunState int

const (
	StatePlaying RunState = iota
	StatePaused
	StateGameOver
)

// GameOverReason records what ended the run.
type GameOverReason int

const (
	ReasonNone GameOverReason = iota
	ReasonBoundary
	ReasonSelfCollision
	ReasonObstacle
)

// Session owns every mutable piece of the simulation for one run:
// snake, evolution, powers, grid, scoring, food and obstacles. It is
// single-threaded and advances only through Update; collaborators see
// snapshots and the drained event queue, never the live state.
type Session struct {
	state RunState

	snake     *Snake
	evolution *EvolutionState
	powers    *PowerSet
	grid      *Grid
	scorer    *Scorer

	food      []Vec2
	obstacles []Vec2

	seed uint64
	rng  *Rand

	clockMs float64 // simulation clock, sum of accepted dt
	moveAcc float64 // ms accumulated toward the next move

	// Temporary movement-rate window granted by tail consumption.
	tempSpeedMs   float64
	tempSpeedMult float64

	lastCollision CollisionResult
	lastEvolution *EvolutionResult
	lastEffects   []PowerEffect

	gameOverReason GameOverReason
	gameOverLevel  int

	events eventQueue
}

func NewSession(seed uint64) *Session {
	s := &Session{seed: seed}
	s.init()
	return s
}

func (s *Session) init() {
	s.state = StatePlaying
	s.rng = NewRand(splitmix64(s.seed))
	s.grid = NewGrid(GridWidth, GridHeight)
	start := Vec2{X: GridWidth / 2, Y: GridHeight / 2}
	s.snake = NewSnake(start, DirRight)
	s.snake.SetSpeed(LevelSpeed(MinEvoLevel))
	s.evolution = NewEvolutionState()
	s.powers = NewPowerSet()
	s.scorer = NewScorer()
	s.clockMs = 0
	s.moveAcc = 0
	s.tempSpeedMs = 0
	s.tempSpeedMult = 1.0
	s.lastCollision = CollisionResult{}
	s.lastEvolution = nil
	s.lastEffects = nil
	s.gameOverReason = ReasonNone
	s.gameOverLevel = 0
	s.events.reset()

	s.food = s.food[:0]
	s.obstacles = s.obstacles[:0]
	s.spawnObstacles(ObstacleCount)
	for i := 0; i < FoodCount; i++ {
		s.spawnFood()
	}
	s.rebuildGrid()
}

// Reset restores start-of-run values in place, reusing the run seed so
// the board layout repeats deterministically.
func (s *Session) Reset() {
	s.init()
}

func (s *Session) State() RunState        { return s.state }
func (s *Session) Score() int             { return s.scorer.Score }
func (s *Session) ComboMult() float64     { return s.scorer.ComboMult }
func (s *Session) ClockMs() float64       { return s.clockMs }
func (s *Session) Reason() GameOverReason { return s.gameOverReason }
func (s *Session) Evolution() int         { return s.evolution.Level }
func (s *Session) Seed() uint64           { return s.seed }

// DrainEvents hands the tick's outbound events to the caller and
// empties the queue.
func (s *Session) DrainEvents() []Event {
	return s.events.drain()
}

// Pause stops ticking without ending the run. No-op once game over.
func (s *Session) Pause() {
	if s.state == StatePlaying {
		s.state = StatePaused
	}
}

func (s *Session) Resume() {
	if s.state == StatePaused {
		s.state = StatePlaying
	}
}

// QueueDirection forwards to the snake; exact reversals are silently
// dropped there. Ignored outside active play.
func (s *Session) QueueDirection(d Vec2) {
	if s.state != StatePlaying {
		return
	}
	s.snake.QueueDirection(d)
}

// Update advances one logical step: movement (rate-limited by speed),
// power timers, temporary windows, survival scoring, then the grid
// rebuild. dtMs must be bounded and non-negative; the caller clamps
// runaway frame deltas before handing them in.
func (s *Session) Update(dtMs float64) {
	if s.state != StatePlaying || dtMs < 0 {
		return
	}
	s.clockMs += dtMs
	s.lastEvolution = nil

	// Movement runs at its own rate: one cell per interval, possibly
	// several intervals inside a large dt, never partial cells.
	s.moveAcc += dtMs
	for s.state == StatePlaying && s.moveAcc >= s.moveIntervalMs() {
		s.moveAcc -= s.moveIntervalMs()
		s.stepMove()
	}

	if s.tempSpeedMs > 0 {
		s.tempSpeedMs -= dtMs
		if s.tempSpeedMs <= 0 {
			s.tempSpeedMs = 0
			s.tempSpeedMult = 1.0
		}
	}

	for _, k := range s.powers.Tick(dtMs) {
		s.events.push(Event{Type: EventPowerExpired, Power: k})
	}

	if s.state == StatePlaying {
		if pts := s.scorer.TickSurvival(dtMs); pts > 0 {
			s.events.push(Event{Type: EventSurvivalBonus, Value: pts})
		}
	}

	s.rebuildGrid()
}

// moveIntervalMs derives the ms-per-cell rate from snake speed and the
// active rate-modifying powers.
func (s *Session) moveIntervalMs() float64 {
	mult := s.snake.Speed * s.tempSpeedMult
	if s.powers.IsActive(PowerSpeedBoost) {
		mult *= ParamsFor(PowerSpeedBoost).SpeedMult
	}
	if s.powers.IsActive(PowerTimeWarp) {
		mult *= ParamsFor(PowerTimeWarp).SpeedMult
	}
	mult = clampF(mult, MinSpeed, MaxSpeed)
	return BaseMoveIntervalMs / mult
}

// stepMove advances the snake one cell and interprets the resulting
// collision. Alive -> Dead fires here, exactly once, via TriggerGameOver.
func (s *Session) stepMove() {
	s.snake.Move()
	s.resolveCollision()
}

// resolveCollision runs the mandatory evaluation order: boundary, self
// (continuous when the head crossed more than one cell), food,
// obstacle. First match wins. PhaseShift bypasses self and obstacle.
func (s *Session) resolveCollision() {
	head := s.snake.Head.Pos
	phasing := s.powers.IsActive(PowerPhaseShift)

	res := CheckBoundary(head, s.grid.Width, s.grid.Height)
	if res.Kind == CollisionNone && !phasing {
		res = CheckContinuous(head, s.snake.Body, s.snake.PrevHead)
	}
	if res.Kind == CollisionNone {
		res = CheckFood(head, s.food)
	}
	if res.Kind == CollisionNone && !phasing {
		res = CheckObstacle(head, s.obstacles)
	}
	s.lastCollision = res

	switch res.Kind {
	case CollisionNone:
	case CollisionFood:
		s.eatFood(res.FoodIndex)
	case CollisionBoundary:
		s.TriggerGameOver(ReasonBoundary, s.evolution.Level)
	case CollisionSelf:
		s.TriggerGameOver(ReasonSelfCollision, s.evolution.Level)
	case CollisionObstacle:
		s.TriggerGameOver(ReasonObstacle, s.evolution.Level)
	}

	// Magnet widens pickup: sweep food within range of the new head.
	if s.state == StatePlaying && s.powers.IsActive(PowerMagnet) {
		r := ParamsFor(PowerMagnet).PickupRange
		for i := 0; i < len(s.food); {
			f := s.food[i]
			if abs(f.X-head.X) <= r && abs(f.Y-head.Y) <= r {
				n := len(s.food)
				s.eatFood(i)
				if len(s.food) == n {
					// Slot i holds the respawned pellet now; skip it so
					// a respawn inside the radius is not eaten again in
					// the same step.
					i++
				}
				continue
			}
			i++
		}
	}
}

// eatFood consumes the pellet at list index i: growth, progress,
// combo-scored points, respawn.
func (s *Session) eatFood(i int) {
	if i < 0 || i >= len(s.food) {
		return
	}
	cell := s.food[i]
	s.snake.Grow(GrowthPerFood)

	pts := s.scorer.AddEvent(FoodBasePoints, LevelScoreMult(s.evolution.Level), s.clockMs)
	s.events.push(Event{Type: EventFoodEaten, Cell: cell, Value: pts})

	if res := s.evolution.AddProgress(FoodProgressAmount); res != nil {
		s.applyEvolution(res)
	}

	// Respawn in place in the list to keep food indices stable.
	s.rebuildGrid()
	if p, ok := s.grid.FindRandomEmptyCell(s.rng); ok {
		s.food[i] = p
	} else {
		s.food = append(s.food[:i], s.food[i+1:]...)
	}
}

// applyEvolution unlocks the new powers, grants the level bonus, and
// applies the level's speed and length baselines.
func (s *Session) applyEvolution(res *EvolutionResult) {
	for _, k := range res.UnlockedPowers {
		s.powers.Unlock(k)
	}
	s.scorer.OnEvolution(res.NewLevel)
	s.snake.SetSpeed(LevelSpeed(res.NewLevel))
	s.snake.Grow(1)
	s.lastEvolution = res
	s.events.push(Event{Type: EventEvolved, Cell: s.snake.Head.Pos, Value: res.NewLevel})
}

// SetSpeed is the debug/test entry point for the movement rate; the
// value silently clamps to the legal range rather than failing.
func (s *Session) SetSpeed(v float64) {
	s.snake.SetSpeed(v)
}

// ForceEvolution is the debug/test path: jump levels, back-fill powers.
func (s *Session) ForceEvolution(level int) {
	if res := s.evolution.ForceEvolution(level); res != nil {
		s.applyEvolution(res)
	}
}

// ActivatePower runs the legality checks and resolves the kind's
// environmental interaction. Failures are typed values; state is never
// partially mutated on failure.
func (s *Session) ActivatePower(kind PowerKind) (PowerEffect, ActivateFailure) {
	if s.state != StatePlaying {
		return PowerEffect{}, ActivateNotPlaying
	}
	if f := s.powers.Activate(kind); f != ActivateOK {
		return PowerEffect{}, f
	}

	eff := s.resolveEffect(kind)
	s.lastEffects = append(s.lastEffects, eff)
	s.events.push(Event{Type: EventPowerActivated, Power: kind, Cell: s.snake.Head.Pos})
	s.rebuildGrid()
	return eff, ActivateOK
}

func (s *Session) resolveEffect(kind PowerKind) PowerEffect {
	p := ParamsFor(kind)
	eff := PowerEffect{Kind: kind}

	switch kind {
	case PowerSpeedBoost, PowerTimeWarp:
		eff.DurationMs = p.DurationMs
		eff.SpeedMult = p.SpeedMult
	case PowerPhaseShift:
		eff.DurationMs = p.DurationMs
	case PowerMagnet:
		eff.DurationMs = p.DurationMs
	case PowerVenomStrike:
		idx, cells, path := lineHits(s.snake.Head.Pos, s.snake.Dir, p.Range, s.obstacles)
		eff.DestroyedObstacles = idx
		eff.DestroyedCells = cells
		eff.PathCells = path
		s.destroyObstacles(idx)
	case PowerFireBreath:
		idx, cells := coneHits(s.snake.Head.Pos, s.snake.Dir, p.Range, p.ConeHalfDeg, s.obstacles)
		eff.DestroyedObstacles = idx
		eff.DestroyedCells = cells
		s.destroyObstacles(idx)
	case PowerTailWhip:
		tail := s.snake.Head.Pos
		if n := len(s.snake.Body); n > 0 {
			tail = s.snake.Body[n-1].Pos
		}
		idx, cells := areaHits(tail, p.AreaRadius, s.obstacles)
		eff.DestroyedObstacles = idx
		eff.DestroyedCells = cells
		s.destroyObstacles(idx)
	case PowerDash:
		eff.DashCells = p.DashCells
		s.dash(p.DashCells)
	case PowerOuroboros:
		eff.TailConsume = s.consumeTail(1)
	}
	return eff
}

// dash lunges the head several cells in one move. Continuous collision
// sampling in resolveCollision covers the skipped cells, so the body
// cannot be tunneled through.
func (s *Session) dash(cells int) {
	s.snake.MoveBy(cells)
	s.resolveCollision()
}

// ConsumeTailSegment is the external command form of Ouroboros tail
// eating: legal only at evolution level 10, clamped to minimum length.
// ok=false reports a rejected command; nothing is mutated then.
func (s *Session) ConsumeTailSegment(n int) (TailConsumeResult, bool) {
	if s.state != StatePlaying || s.evolution.Level < MaxEvoLevel || n <= 0 {
		return TailConsumeResult{}, false
	}
	res := s.consumeTail(n)
	if len(res.Vacated) == 0 {
		return TailConsumeResult{}, false
	}
	return res, true
}

func (s *Session) consumeTail(n int) TailConsumeResult {
	res := s.snake.ConsumeTail(n)
	if len(res.Vacated) == 0 {
		return res
	}
	s.scorer.AddFlat(res.BonusPoints)
	if res.SpeedBoostMs > 0 {
		s.tempSpeedMs = res.SpeedBoostMs
		s.tempSpeedMult = res.SpeedMultiplier
	}
	for _, cell := range res.Vacated {
		s.events.push(Event{Type: EventTailConsumed, Cell: cell, Value: TailConsumePoints})
	}
	s.rebuildGrid()
	return res
}

// TriggerGameOver is idempotent and one-way: the first call freezes the
// run; later calls change nothing, whatever their arguments.
func (s *Session) TriggerGameOver(reason GameOverReason, level int) {
	if s.state == StateGameOver {
		return
	}
	s.state = StateGameOver
	s.gameOverReason = reason
	s.gameOverLevel = level
	s.snake.Kill()
	s.events.push(Event{Type: EventGameOver, Cell: s.snake.Head.Pos, Value: level})
}

func (s *Session) destroyObstacles(indices []int) {
	if len(indices) == 0 {
		return
	}
	// Remove back to front so earlier indices stay valid.
	for i := len(indices) - 1; i >= 0; i-- {
		idx := indices[i]
		if idx < 0 || idx >= len(s.obstacles) {
			continue
		}
		cell := s.obstacles[idx]
		s.obstacles = append(s.obstacles[:idx], s.obstacles[idx+1:]...)
		s.events.push(Event{Type: EventObstacleDestroyed, Cell: cell})
	}
}

func (s *Session) spawnFood() {
	if p, ok := s.grid.FindRandomEmptyCell(s.rng); ok {
		s.food = append(s.food, p)
		s.grid.MarkOccupied(p, OccupantFood, len(s.food)-1)
	}
}

// spawnObstacles seeds the run's obstacle layout, keeping a clear lane
// around the snake's starting row.
func (s *Session) spawnObstacles(count int) {
	start := s.snake.Head.Pos
	s.rebuildGrid()
	for tries := 0; len(s.obstacles) < count && tries < count*16; tries++ {
		p, ok := s.grid.FindRandomEmptyCell(s.rng)
		if !ok {
			return
		}
		if abs(p.X-start.X) <= 4 && abs(p.Y-start.Y) <= 2 {
			continue
		}
		s.obstacles = append(s.obstacles, p)
		s.grid.MarkOccupied(p, OccupantObstacle, len(s.obstacles)-1)
	}
}

func (s *Session) rebuildGrid() {
	s.grid.Rebuild(s.snake, s.food, s.obstacles)
}
