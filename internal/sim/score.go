package sim

import "math"

// Scorer does the deterministic scoring bookkeeping: combo multiplier,
// evolution bonuses, survival bonus. High-score persistence lives
// outside the core.
type Scorer struct {
	Score int

	// Combo: +ComboStep per scoring event landing within ComboWindowMs
	// of the previous one, capped at ComboMax. An event outside the
	// window, or any evolution transition, resets to 1.0.
	ComboMult    float64
	lastEventAt  float64 // sim clock ms of the previous scoring event
	haveLastEvt  bool
	survivalAcc  float64 // ms since the last survival bonus
	survivalPaid int     // bonuses granted this run
}

func NewScorer() *Scorer {
	return &Scorer{ComboMult: 1.0}
}

// AddEvent scores one event worth basePoints at simulation time nowMs,
// applying and then advancing the combo. levelMult is the evolution
// level's score multiplier. Returns the points granted.
func (sc *Scorer) AddEvent(basePoints int, levelMult float64, nowMs float64) int {
	if sc.haveLastEvt && nowMs-sc.lastEventAt <= ComboWindowMs {
		sc.ComboMult = math.Min(sc.ComboMult+ComboStep, ComboMax)
	} else {
		sc.ComboMult = 1.0
	}
	sc.lastEventAt = nowMs
	sc.haveLastEvt = true

	pts := int(float64(basePoints) * sc.ComboMult * levelMult)
	sc.Score += pts
	return pts
}

// AddFlat adds points that bypass the combo pipeline (tail consume
// payloads, debug grants).
func (sc *Scorer) AddFlat(points int) {
	if points > 0 {
		sc.Score += points
	}
}

// OnEvolution grants the level bonus and deliberately resets the combo:
// an evolution is a fresh start.
func (sc *Scorer) OnEvolution(newLevel int) int {
	bonus := EvolutionBonusBase * (1 << (newLevel - 1))
	sc.Score += bonus
	sc.ComboMult = 1.0
	sc.haveLastEvt = false
	return bonus
}

// TickSurvival accumulates played time and pays the survival bonus for
// every full SurvivalBonusTickMs window. Returns the points granted
// this tick (usually 0).
func (sc *Scorer) TickSurvival(dtMs float64) int {
	sc.survivalAcc += dtMs
	granted := 0
	for sc.survivalAcc >= SurvivalBonusTickMs {
		sc.survivalAcc -= SurvivalBonusTickMs
		sc.survivalPaid++
		granted += SurvivalBonusPoints
	}
	sc.Score += granted
	return granted
}

// LevelScoreMult is the evolution level's score multiplier.
func LevelScoreMult(level int) float64 {
	return 1.0 + 0.25*float64(clamp(level, MinEvoLevel, MaxEvoLevel)-1)
}

// Reset restores start-of-run values in place.
func (sc *Scorer) Reset() {
	*sc = Scorer{ComboMult: 1.0}
}
