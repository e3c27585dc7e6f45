package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession() *Session {
	return NewSession(12345)
}

func TestSessionInitialState(t *testing.T) {
	s := newTestSession()

	assert.Equal(t, StatePlaying, s.State())
	assert.Equal(t, StartLength, s.snake.Length())
	assert.Equal(t, MinEvoLevel, s.Evolution())
	assert.Len(t, s.food, FoodCount)
	assert.Len(t, s.obstacles, ObstacleCount)
	assert.Zero(t, s.Score())

	// Nothing spawns on top of the snake.
	for _, f := range s.food {
		assert.NotEqual(t, s.snake.Head.Pos, f)
	}
}

func TestSessionMovementRate(t *testing.T) {
	s := newTestSession()
	start := s.snake.Head.Pos

	// Below the move interval nothing moves.
	s.Update(BaseMoveIntervalMs / 2)
	assert.Equal(t, start, s.snake.Head.Pos)

	// Crossing it moves exactly one cell.
	s.Update(BaseMoveIntervalMs / 2)
	assert.Equal(t, start.Add(DirRight), s.snake.Head.Pos)
}

func TestSessionEatFood(t *testing.T) {
	s := newTestSession()
	// Plant a pellet directly in the snake's path.
	s.food[0] = s.snake.Head.Pos.Add(DirRight)
	s.rebuildGrid()
	lenBefore := s.snake.Length()

	s.Update(BaseMoveIntervalMs)

	assert.Equal(t, lenBefore+GrowthPerFood, s.snake.Length())
	assert.Greater(t, s.Score(), 0)
	assert.Equal(t, FoodProgressAmount, s.evolution.FoodProgress)
	// The pellet respawned somewhere else, list length unchanged.
	assert.Len(t, s.food, FoodCount)

	var sawEat bool
	for _, e := range s.DrainEvents() {
		if e.Type == EventFoodEaten {
			sawEat = true
		}
	}
	assert.True(t, sawEat)
}

func TestSessionBoundaryGameOver(t *testing.T) {
	s := newTestSession()
	// Clear the lane so only the wall can end the run.
	s.obstacles = nil
	s.food = nil
	s.rebuildGrid()

	for i := 0; i < GridWidth+2; i++ {
		s.Update(BaseMoveIntervalMs)
	}

	assert.Equal(t, StateGameOver, s.State())
	assert.Equal(t, ReasonBoundary, s.Reason())
	assert.False(t, s.snake.Alive)
	assert.Equal(t, CollisionBoundary, s.LastCollision().Kind)
}

func TestSessionGameOverIdempotent(t *testing.T) {
	s := newTestSession()
	s.TriggerGameOver(ReasonSelfCollision, 4)
	s.DrainEvents()

	score := s.Score()
	reason := s.Reason()
	level := s.gameOverLevel

	// A second call with different arguments changes nothing and emits
	// nothing.
	s.TriggerGameOver(ReasonObstacle, 9)
	assert.Equal(t, score, s.Score())
	assert.Equal(t, reason, s.Reason())
	assert.Equal(t, level, s.gameOverLevel)
	assert.Empty(t, s.DrainEvents())

	// And the frozen session ignores further ticks and commands.
	head := s.snake.Head.Pos
	s.Update(10 * BaseMoveIntervalMs)
	assert.Equal(t, head, s.snake.Head.Pos)
	_, fail := s.ActivatePower(PowerSpeedBoost)
	assert.Equal(t, ActivateNotPlaying, fail)
}

func TestSessionPauseFreezesTicks(t *testing.T) {
	s := newTestSession()
	s.Pause()
	head := s.snake.Head.Pos
	s.Update(5 * BaseMoveIntervalMs)
	assert.Equal(t, head, s.snake.Head.Pos)

	s.Resume()
	s.Update(BaseMoveIntervalMs)
	assert.NotEqual(t, head, s.snake.Head.Pos)
}

func TestSessionActivateSpeedBoost(t *testing.T) {
	s := newTestSession()
	s.ForceEvolution(2)

	eff, fail := s.ActivatePower(PowerSpeedBoost)
	require.Equal(t, ActivateOK, fail)
	assert.Equal(t, PowerSpeedBoost, eff.Kind)
	assert.Equal(t, 1.5, eff.SpeedMult)
	assert.True(t, s.powers.IsActive(PowerSpeedBoost))

	_, fail = s.ActivatePower(PowerSpeedBoost)
	assert.Equal(t, ActivateOnCooldown, fail)
}

func TestSessionSpeedBoostShortensInterval(t *testing.T) {
	s := newTestSession()
	base := s.moveIntervalMs()

	s.ForceEvolution(2)
	_, fail := s.ActivatePower(PowerSpeedBoost)
	require.Equal(t, ActivateOK, fail)

	boosted := s.moveIntervalMs()
	assert.Less(t, boosted, base)
}

func TestSessionVenomStrikeDestroysObstacles(t *testing.T) {
	s := newTestSession()
	s.ForceEvolution(3)
	s.obstacles = []Vec2{
		s.snake.Head.Pos.Add(Vec2{X: 2, Y: 0}),
		s.snake.Head.Pos.Add(Vec2{X: 0, Y: 5}), // off the strike line
	}
	s.rebuildGrid()

	eff, fail := s.ActivatePower(PowerVenomStrike)
	require.Equal(t, ActivateOK, fail)
	assert.Equal(t, []int{0}, eff.DestroyedObstacles)
	assert.Len(t, s.obstacles, 1)

	var destroyed bool
	for _, e := range s.DrainEvents() {
		if e.Type == EventObstacleDestroyed {
			destroyed = true
		}
	}
	assert.True(t, destroyed)
}

func TestSessionDashContinuousCollision(t *testing.T) {
	s := newTestSession()
	s.ForceEvolution(4)
	s.obstacles = nil
	s.food = nil

	// Wrap the body so it crosses the dash path beyond the safe zone.
	body := []Vec2{
		{X: 19, Y: 15}, {X: 18, Y: 15}, {X: 17, Y: 15}, {X: 16, Y: 15},
		{X: 22, Y: 15}, // index 4: two cells ahead of the head
		{X: 23, Y: 15},
	}
	s.snake.Head.Pos = Vec2{X: 20, Y: 15}
	s.snake.PrevHead = s.snake.Head.Pos
	s.snake.Body = segs(body...)
	s.rebuildGrid()

	_, fail := s.ActivatePower(PowerDash)
	require.Equal(t, ActivateOK, fail)

	// The lunge tunnels across (22,15); continuous sampling catches it.
	assert.Equal(t, StateGameOver, s.State())
	assert.Equal(t, ReasonSelfCollision, s.Reason())
	assert.Equal(t, Vec2{X: 22, Y: 15}, s.LastCollision().Cell)
}

func TestSessionPhaseShiftBypassesObstacles(t *testing.T) {
	s := newTestSession()
	s.ForceEvolution(6)
	s.obstacles = []Vec2{s.snake.Head.Pos.Add(DirRight)}
	s.food = nil
	s.rebuildGrid()

	_, fail := s.ActivatePower(PowerPhaseShift)
	require.Equal(t, ActivateOK, fail)

	s.Update(BaseMoveIntervalMs) // walks straight into the obstacle cell
	assert.Equal(t, StatePlaying, s.State())
}

func TestSessionConsumeTailGating(t *testing.T) {
	t.Run("rejected below level 10", func(t *testing.T) {
		s := newTestSession()
		s.snake.Grow(5)
		_, ok := s.ConsumeTailSegment(1)
		assert.False(t, ok)
		assert.Equal(t, StartLength+5+0, s.snake.Length())
	})

	t.Run("legal at level 10, clamped to minimum", func(t *testing.T) {
		s := newTestSession()
		s.ForceEvolution(MaxEvoLevel)
		s.snake.Grow(4)
		scoreBefore := s.Score()

		res, ok := s.ConsumeTailSegment(100)
		require.True(t, ok)
		assert.Equal(t, MinLength, s.snake.Length())
		assert.NotEmpty(t, res.Vacated)
		assert.Greater(t, s.Score(), scoreBefore)
		assert.Greater(t, s.tempSpeedMs, 0.0)
	})
}

func TestSessionEvolutionThroughFood(t *testing.T) {
	s := newTestSession()

	// Feed pellets until level 2: 50 progress at 10 per pellet.
	for i := 0; i < 5; i++ {
		s.food[0] = s.snake.Head.Pos.Add(DirRight)
		s.rebuildGrid()
		s.Update(BaseMoveIntervalMs)
		require.Equal(t, StatePlaying, s.State(), "died on pellet %d", i)
	}

	assert.Equal(t, 2, s.Evolution())
	assert.True(t, s.powers.IsUnlocked(PowerSpeedBoost))

	snap := s.EvolutionSnapshot()
	assert.Equal(t, 2, snap.Level)
	assert.Contains(t, snap.UnlockedPowers, PowerSpeedBoost)
}

func TestSessionReset(t *testing.T) {
	s := newTestSession()
	foodBefore := append([]Vec2(nil), s.food...)

	s.ForceEvolution(7)
	s.Update(BaseMoveIntervalMs * 3)
	s.TriggerGameOver(ReasonObstacle, 7)

	s.Reset()

	assert.Equal(t, StatePlaying, s.State())
	assert.Equal(t, MinEvoLevel, s.Evolution())
	assert.Zero(t, s.Score())
	assert.Equal(t, StartLength, s.snake.Length())
	assert.True(t, s.snake.Alive)
	assert.Empty(t, s.DrainEvents())
	// Same seed, same layout.
	assert.Equal(t, foodBefore, s.food)
}

func TestSessionNegativeDeltaIgnored(t *testing.T) {
	s := newTestSession()
	head := s.snake.Head.Pos
	s.Update(-500)
	assert.Equal(t, head, s.snake.Head.Pos)
	assert.Zero(t, s.ClockMs())
}

func TestSessionEffectSnapshotSurvivesTick(t *testing.T) {
	s := newTestSession()
	s.ForceEvolution(3)
	s.obstacles = []Vec2{s.snake.Head.Pos.Add(Vec2{X: 2, Y: 0})}
	s.food = nil
	s.rebuildGrid()

	// Shell frame order: commands first, then the tick, then the
	// frame's snapshot. The effect must still be visible after Update.
	_, fail := s.ActivatePower(PowerVenomStrike)
	require.Equal(t, ActivateOK, fail)
	s.Update(1)

	snap := s.PowerSnapshot()
	require.Len(t, snap.LastActivationEffects, 1)
	assert.Equal(t, PowerVenomStrike, snap.LastActivationEffects[0].Kind)
	assert.NotEmpty(t, snap.LastActivationEffects[0].DestroyedObstacles)

	// Taking the snapshot consumes the effects; the next frame starts
	// clean.
	assert.Empty(t, s.PowerSnapshot().LastActivationEffects)
}

func TestSessionMagnetWidensPickup(t *testing.T) {
	s := newTestSession()
	s.ForceEvolution(7)
	s.SetSpeed(1.0)
	s.obstacles = nil
	// Off the movement path; inside the pickup box only once the head
	// has advanced a cell.
	s.food = []Vec2{s.snake.Head.Pos.Add(Vec2{X: 3, Y: 2})}
	s.rebuildGrid()

	_, fail := s.ActivatePower(PowerMagnet)
	require.Equal(t, ActivateOK, fail)
	lenBefore := s.snake.Length()
	progressBefore := s.evolution.FoodProgress

	s.Update(BaseMoveIntervalMs)

	assert.Equal(t, lenBefore+GrowthPerFood, s.snake.Length())
	assert.Equal(t, progressBefore+FoodProgressAmount, s.evolution.FoodProgress)
	assert.Len(t, s.food, 1)

	var eats int
	for _, e := range s.DrainEvents() {
		if e.Type == EventFoodEaten {
			eats++
		}
	}
	assert.Equal(t, 1, eats)
}

func TestSessionMagnetRespawnNotChainEaten(t *testing.T) {
	s := newTestSession()
	s.ForceEvolution(7)
	s.SetSpeed(1.0)

	head := s.snake.Head.Pos
	next := head.Add(DirRight)
	pellet := next.Add(Vec2{X: 1, Y: 2})
	spare := next.Add(Vec2{X: 0, Y: 1})
	s.food = []Vec2{pellet}

	// Wall off every other cell so the respawn is forced onto the spare
	// cell, which also sits inside the pickup box.
	free := map[Vec2]bool{next: true, pellet: true, spare: true, head: true}
	for _, seg := range s.snake.Body {
		free[seg.Pos] = true
	}
	s.obstacles = s.obstacles[:0]
	for y := 0; y < GridHeight; y++ {
		for x := 0; x < GridWidth; x++ {
			if p := (Vec2{X: x, Y: y}); !free[p] {
				s.obstacles = append(s.obstacles, p)
			}
		}
	}
	s.rebuildGrid()

	_, fail := s.ActivatePower(PowerMagnet)
	require.Equal(t, ActivateOK, fail)

	s.Update(BaseMoveIntervalMs)

	// One pellet eaten; the one that respawned inside the box stays.
	require.Equal(t, StatePlaying, s.State())
	var eats int
	for _, e := range s.DrainEvents() {
		if e.Type == EventFoodEaten {
			eats++
		}
	}
	assert.Equal(t, 1, eats)
	assert.Equal(t, []Vec2{spare}, s.food)
}

func TestSessionDeterministicReplay(t *testing.T) {
	dirs := []Vec2{DirUp, DirDown, DirLeft, DirRight}

	run := func(cmdSeed uint64) (int, Vec2, float64) {
		s := NewSession(99)
		r := NewRand(cmdSeed)
		for i := 0; i < 400 && s.State() == StatePlaying; i++ {
			if r.Float64() < 0.3 {
				s.QueueDirection(dirs[r.Range(0, len(dirs)-1)])
			}
			s.Update(r.Float64() * 40)
		}
		return s.Score(), s.snake.Head.Pos, s.ClockMs()
	}

	score1, head1, clock1 := run(7)
	score2, head2, clock2 := run(7)
	assert.Equal(t, score1, score2)
	assert.Equal(t, head1, head2)
	assert.Equal(t, clock1, clock2)
}

func TestSessionSnapshotsAreCopies(t *testing.T) {
	s := newTestSession()

	snake := s.SnakeSnapshot()
	snake.Body[0].Pos = Vec2{X: -99, Y: -99}
	assert.NotEqual(t, Vec2{X: -99, Y: -99}, s.snake.Body[0].Pos)

	board := s.BoardSnapshot()
	board.Food[0] = Vec2{X: -99, Y: -99}
	assert.NotEqual(t, Vec2{X: -99, Y: -99}, s.food[0])
}
