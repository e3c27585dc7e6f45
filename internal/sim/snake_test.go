package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnakeReversalRejected(t *testing.T) {
	s := NewSnake(Vec2{X: 10, Y: 10}, DirRight)
	require.Equal(t, 3, s.Length())

	s.QueueDirection(DirLeft) // exact reversal: silently dropped
	s.Move()

	assert.Equal(t, DirRight, s.Dir)
	assert.Equal(t, Vec2{X: 11, Y: 10}, s.Head.Pos)
}

func TestSnakeQueueDirection(t *testing.T) {
	t.Run("perpendicular accepted", func(t *testing.T) {
		s := NewSnake(Vec2{X: 10, Y: 10}, DirRight)
		s.QueueDirection(DirUp)
		s.Move()
		assert.Equal(t, DirUp, s.Dir)
		assert.Equal(t, Vec2{X: 10, Y: 9}, s.Head.Pos)
	})

	t.Run("zero vector dropped", func(t *testing.T) {
		s := NewSnake(Vec2{X: 10, Y: 10}, DirRight)
		s.QueueDirection(Vec2{})
		assert.False(t, s.HasQueued)
	})

	t.Run("queue then reverse relative to new direction", func(t *testing.T) {
		// Queueing up then moving makes down the reversal, not left.
		s := NewSnake(Vec2{X: 10, Y: 10}, DirRight)
		s.QueueDirection(DirUp)
		s.Move()
		s.QueueDirection(DirDown)
		s.Move()
		assert.Equal(t, DirUp, s.Dir)
	})
}

func TestSnakeMoveShiftsBody(t *testing.T) {
	s := NewSnake(Vec2{X: 10, Y: 10}, DirRight)
	// Start: head (10,10), body (9,10) (8,10).
	s.Move()

	assert.Equal(t, Vec2{X: 11, Y: 10}, s.Head.Pos)
	assert.Equal(t, Vec2{X: 10, Y: 10}, s.Body[0].Pos)
	assert.Equal(t, Vec2{X: 9, Y: 10}, s.Body[1].Pos)
	assert.Equal(t, Vec2{X: 10, Y: 10}, s.PrevHead)
}

func TestSnakeMoveWhileDead(t *testing.T) {
	s := NewSnake(Vec2{X: 5, Y: 5}, DirRight)
	s.Kill()
	s.Move()
	assert.Equal(t, Vec2{X: 5, Y: 5}, s.Head.Pos)
}

func TestSnakeGrowShrinkRoundTrip(t *testing.T) {
	s := NewSnake(Vec2{X: 10, Y: 10}, DirRight)
	before := s.Length()

	s.Grow(2)
	assert.Equal(t, before+2, s.Length())
	tail := s.Body[len(s.Body)-1].Pos
	// New segments appear at the exact last occupied cell.
	assert.Equal(t, s.Body[len(s.Body)-2].Pos, tail)

	removed := s.Shrink(2)
	assert.Equal(t, 2, removed)
	assert.Equal(t, before, s.Length())
}

func TestSnakeShrinkFloor(t *testing.T) {
	s := NewSnake(Vec2{X: 10, Y: 10}, DirRight)
	removed := s.Shrink(100)
	assert.Equal(t, 0, removed)
	assert.Equal(t, MinLength, s.Length())

	s.Grow(5)
	removed = s.Shrink(100)
	assert.Equal(t, 5, removed)
	assert.Equal(t, MinLength, s.Length())
}

func TestSnakeGrowthAppearsOnMove(t *testing.T) {
	s := NewSnake(Vec2{X: 10, Y: 10}, DirRight)
	s.Grow(1)
	got := s.Length()
	s.Move()
	// Moving never changes length; only Grow/Shrink/ConsumeTail do.
	assert.Equal(t, got, s.Length())
}

func TestSnakeConsumeTail(t *testing.T) {
	t.Run("clamped to minimum length", func(t *testing.T) {
		s := NewSnake(Vec2{X: 10, Y: 10}, DirRight)
		res := s.ConsumeTail(3)
		assert.Empty(t, res.Vacated)
		assert.Equal(t, MinLength, s.Length())
	})

	t.Run("returns vacated cells and payload", func(t *testing.T) {
		s := NewSnake(Vec2{X: 10, Y: 10}, DirRight)
		s.Grow(4)
		tail := s.Body[len(s.Body)-1].Pos
		res := s.ConsumeTail(2)
		require.Len(t, res.Vacated, 2)
		assert.Equal(t, tail, res.Vacated[0])
		assert.Equal(t, 2*TailConsumePoints, res.BonusPoints)
		assert.Greater(t, res.SpeedBoostMs, 0.0)
	})
}

func TestSnakeSetSpeedClamps(t *testing.T) {
	s := NewSnake(Vec2{X: 10, Y: 10}, DirRight)
	s.SetSpeed(99)
	assert.Equal(t, MaxSpeed, s.Speed)
	s.SetSpeed(0)
	assert.Equal(t, MinSpeed, s.Speed)
	s.SetSpeed(1.7)
	assert.Equal(t, 1.7, s.Speed)
}

func TestSnakeMinLengthInvariant(t *testing.T) {
	// For all reachable states: dead, or head+body >= MinLength.
	s := NewSnake(Vec2{X: 10, Y: 10}, DirRight)
	ops := []func(){
		func() { s.Move() },
		func() { s.Shrink(10) },
		func() { s.ConsumeTail(10) },
		func() { s.Grow(3) },
		func() { s.Shrink(2) },
		func() { s.ConsumeTail(2) },
		func() { s.Move() },
	}
	for _, op := range ops {
		op()
		if s.Alive {
			assert.GreaterOrEqual(t, s.Length(), MinLength)
		}
	}
}

func TestSnakeSafeZoneAfterMove(t *testing.T) {
	// Immediately after a move the head never collides with the safe
	// segments, whatever turns were queued.
	s := NewSnake(Vec2{X: 10, Y: 10}, DirRight)
	s.Grow(6)
	dirs := []Vec2{DirUp, DirLeft, DirDown, DirRight, DirUp, DirLeft}
	for _, d := range dirs {
		s.QueueDirection(d)
		s.Move()
		res := CheckSelf(s.Head.Pos, s.Body)
		if res.Kind == CollisionSelf {
			assert.GreaterOrEqual(t, res.SegmentIndex, SafeSegmentCount)
		}
	}
}
