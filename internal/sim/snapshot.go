package sim

// Snapshots are deep copies taken after a tick completes. Collaborators
// may hold them across frames; mutating a snapshot never touches the
// simulation.

type SnakeSnapshot struct {
	Head  Segment
	Body  []Segment
	Dir   Vec2
	Alive bool
}

type EvolutionSnapshot struct {
	Level            int
	FoodProgress     float64
	UnlockedPowers   []PowerKind
	JustTransitioned *EvolutionResult // nil on ticks without a transition
}

type PowerVisualSnapshot struct {
	ActivePowers []PowerKind
	Cooldowns    [PowerKindCount]float64
	Durations    [PowerKindCount]float64
	// LastActivationEffects holds the effects produced since the
	// previous power snapshot, in activation order. Commands run before
	// the tick in the shell's frame, so these survive across Update and
	// are consumed when the snapshot is taken.
	LastActivationEffects []PowerEffect
}

type BoardSnapshot struct {
	Width     int
	Height    int
	Food      []Vec2
	Obstacles []Vec2
}

func (s *Session) SnakeSnapshot() SnakeSnapshot {
	body := make([]Segment, len(s.snake.Body))
	copy(body, s.snake.Body)
	return SnakeSnapshot{
		Head:  s.snake.Head,
		Body:  body,
		Dir:   s.snake.Dir,
		Alive: s.snake.Alive,
	}
}

func (s *Session) EvolutionSnapshot() EvolutionSnapshot {
	var just *EvolutionResult
	if s.lastEvolution != nil {
		cp := *s.lastEvolution
		cp.UnlockedPowers = append([]PowerKind(nil), s.lastEvolution.UnlockedPowers...)
		just = &cp
	}
	return EvolutionSnapshot{
		Level:            s.evolution.Level,
		FoodProgress:     s.evolution.FoodProgress,
		UnlockedPowers:   s.evolution.UnlockedPowers(),
		JustTransitioned: just,
	}
}

func (s *Session) PowerSnapshot() PowerVisualSnapshot {
	var snap PowerVisualSnapshot
	for k := PowerKind(0); k < PowerKindCount; k++ {
		st := s.powers.State(k)
		snap.Cooldowns[k] = st.CooldownRemaining
		snap.Durations[k] = st.DurationRemaining
		if st.Active {
			snap.ActivePowers = append(snap.ActivePowers, k)
		}
	}
	snap.LastActivationEffects = append([]PowerEffect(nil), s.lastEffects...)
	s.lastEffects = s.lastEffects[:0]
	return snap
}

func (s *Session) BoardSnapshot() BoardSnapshot {
	return BoardSnapshot{
		Width:     s.grid.Width,
		Height:    s.grid.Height,
		Food:      append([]Vec2(nil), s.food...),
		Obstacles: append([]Vec2(nil), s.obstacles...),
	}
}

// LastCollision is the most recent CollisionResult, consumed by the
// coordinator to decide game-over; exposed read-only for diagnostics.
func (s *Session) LastCollision() CollisionResult {
	return s.lastCollision
}
