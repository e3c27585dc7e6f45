package sim

// EvolutionResult is emitted when a level transition occurs.
type EvolutionResult struct {
	NewLevel       int
	UnlockedPowers []PowerKind
}

// EvolutionState accumulates food progress and gates level advances.
// Level only moves up within a run; Reset is the sole way down.
type EvolutionState struct {
	Level        int
	FoodProgress float64
	// unlocked tracks which kinds this run has earned, indexed by
	// PowerKind ordinal.
	unlocked [PowerKindCount]bool
}

func NewEvolutionState() *EvolutionState {
	return &EvolutionState{Level: MinEvoLevel}
}

// RequiredFoodFor returns the total progress needed to reach level.
// Levels outside [MinEvoLevel, MaxEvoLevel] clamp to the schedule ends.
func RequiredFoodFor(level int) float64 {
	return evoFoodSchedule[clamp(level, MinEvoLevel, MaxEvoLevel)]
}

// AddProgress accumulates and advances through every level whose
// threshold the new total crosses. At level 10 it degrades to pure
// bookkeeping: progress still accumulates, nothing transitions.
// A non-nil result means at least one transition happened.
func (e *EvolutionState) AddProgress(amount float64) *EvolutionResult {
	if amount < 0 {
		amount = 0
	}
	e.FoodProgress += amount

	var res *EvolutionResult
	for e.Level < MaxEvoLevel && e.FoodProgress >= RequiredFoodFor(e.Level+1) {
		e.Level++
		newKinds := e.unlockKindsFor(e.Level)
		if res == nil {
			res = &EvolutionResult{NewLevel: e.Level}
		} else {
			res.NewLevel = e.Level
		}
		res.UnlockedPowers = append(res.UnlockedPowers, newKinds...)
	}
	return res
}

// ForceEvolution jumps straight to level (clamped), back-filling every
// intervening power. Debug/test path; never fails.
func (e *EvolutionState) ForceEvolution(level int) *EvolutionResult {
	level = clamp(level, MinEvoLevel, MaxEvoLevel)
	if level <= e.Level {
		return nil
	}
	res := &EvolutionResult{NewLevel: level}
	for e.Level < level {
		e.Level++
		res.UnlockedPowers = append(res.UnlockedPowers, e.unlockKindsFor(e.Level)...)
	}
	if e.FoodProgress < RequiredFoodFor(level) {
		e.FoodProgress = RequiredFoodFor(level)
	}
	return res
}

func (e *EvolutionState) unlockKindsFor(level int) []PowerKind {
	var out []PowerKind
	for kind := PowerKind(0); kind < PowerKindCount; kind++ {
		if powerParams[kind].UnlockLevel == level && !e.unlocked[kind] {
			e.unlocked[kind] = true
			out = append(out, kind)
		}
	}
	return out
}

func (e *EvolutionState) IsUnlocked(kind PowerKind) bool {
	if kind < 0 || kind >= PowerKindCount {
		return false
	}
	return e.unlocked[kind]
}

// UnlockedPowers returns the earned kinds in ordinal order.
func (e *EvolutionState) UnlockedPowers() []PowerKind {
	var out []PowerKind
	for kind := PowerKind(0); kind < PowerKindCount; kind++ {
		if e.unlocked[kind] {
			out = append(out, kind)
		}
	}
	return out
}

// Reset restores start-of-run values in place.
func (e *EvolutionState) Reset() {
	e.Level = MinEvoLevel
	e.FoodProgress = 0
	e.unlocked = [PowerKindCount]bool{}
}
