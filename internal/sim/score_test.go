package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComboWindow(t *testing.T) {
	sc := NewScorer()

	// First event establishes the chain at 1.0x.
	sc.AddEvent(10, 1.0, 0)
	assert.Equal(t, 1.0, sc.ComboMult)

	// Inside the window: +0.1 each.
	sc.AddEvent(10, 1.0, 1000)
	assert.InDelta(t, 1.1, sc.ComboMult, 1e-9)
	sc.AddEvent(10, 1.0, 2000)
	assert.InDelta(t, 1.2, sc.ComboMult, 1e-9)

	// Exactly on the window edge still counts.
	sc.AddEvent(10, 1.0, 2000+ComboWindowMs)
	assert.InDelta(t, 1.3, sc.ComboMult, 1e-9)

	// Outside the window: instant reset to 1.0.
	sc.AddEvent(10, 1.0, 2000+ComboWindowMs+ComboWindowMs+1)
	assert.Equal(t, 1.0, sc.ComboMult)
}

func TestComboCap(t *testing.T) {
	sc := NewScorer()
	now := 0.0
	for i := 0; i < 50; i++ {
		sc.AddEvent(10, 1.0, now)
		now += 100
	}
	assert.InDelta(t, ComboMax, sc.ComboMult, 1e-9)
}

func TestComboAppliedToPoints(t *testing.T) {
	sc := NewScorer()
	require.Equal(t, 10, sc.AddEvent(10, 1.0, 0))
	// 10 * 1.1 combo * 2.0 level = 22.
	assert.Equal(t, 22, sc.AddEvent(10, 2.0, 500))
}

func TestEvolutionBonusAndComboReset(t *testing.T) {
	sc := NewScorer()
	sc.AddEvent(10, 1.0, 0)
	sc.AddEvent(10, 1.0, 500)
	require.InDelta(t, 1.1, sc.ComboMult, 1e-9)

	bonus := sc.OnEvolution(3)
	assert.Equal(t, 4000, bonus) // 1000 * 2^(3-1)
	assert.Equal(t, 1.0, sc.ComboMult)

	// The chain restarts: the next event does not continue the old one.
	sc.AddEvent(10, 1.0, 600)
	assert.Equal(t, 1.0, sc.ComboMult)
}

func TestEvolutionBonusSchedule(t *testing.T) {
	tests := []struct {
		level int
		bonus int
	}{
		{2, 2000},
		{5, 16000},
		{10, 512000},
	}
	for _, tt := range tests {
		sc := NewScorer()
		assert.Equal(t, tt.bonus, sc.OnEvolution(tt.level))
	}
}

func TestSurvivalBonus(t *testing.T) {
	sc := NewScorer()

	assert.Zero(t, sc.TickSurvival(SurvivalBonusTickMs-1))
	assert.Equal(t, SurvivalBonusPoints, sc.TickSurvival(1))

	// A huge tick pays every full window it covers.
	assert.Equal(t, 3*SurvivalBonusPoints, sc.TickSurvival(3*SurvivalBonusTickMs))
}

func TestScorerReset(t *testing.T) {
	sc := NewScorer()
	sc.AddEvent(10, 1.0, 0)
	sc.AddEvent(10, 1.0, 100)
	sc.OnEvolution(4)
	sc.Reset()

	assert.Zero(t, sc.Score)
	assert.Equal(t, 1.0, sc.ComboMult)
}

func TestLevelScoreMult(t *testing.T) {
	assert.Equal(t, 1.0, LevelScoreMult(1))
	assert.InDelta(t, 3.25, LevelScoreMult(10), 1e-9)
	// Clamped outside the level range.
	assert.Equal(t, 1.0, LevelScoreMult(-3))
	assert.InDelta(t, 3.25, LevelScoreMult(99), 1e-9)
}
