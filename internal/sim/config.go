package sim

// Grid dimensions (in cells).
// 4:3 board that fills the fixed window at whole-pixel cell sizes.
const (
	GridWidth  = 40
	GridHeight = 30
)

// Snake movement.
const (
	// Base interval between one-cell moves at speed 1.0.
	BaseMoveIntervalMs = 150.0
	MinSpeed           = 0.1
	MaxSpeed           = 3.0
	StartLength        = 3 // head + 2 body segments
	MinLength          = 3 // head + body, floor for shrink/tail consume
	GrowthPerFood      = 2
)

// Self-collision exemption: the first SafeSegmentCount body segments
// nearest the head are skipped, because a tight turn can place the head
// adjacent to them for one move without a true overlap. Empirically
// tuned; tested as a boundary, not proven safe for arbitrary speed
// multipliers.
const SafeSegmentCount = 4

// Evolution.
const (
	MinEvoLevel = 1
	MaxEvoLevel = 10
)

// evoFoodSchedule[level] is the total food progress required to reach
// that level. Strictly increasing; never mutated at runtime.
var evoFoodSchedule = [MaxEvoLevel + 1]float64{
	0,    // unused (levels start at 1)
	0,    // level 1
	50,   // level 2
	120,  // level 3
	220,  // level 4
	360,  // level 5
	550,  // level 6
	800,  // level 7
	1050, // level 8
	1300, // level 9
	1600, // level 10 — Ouroboros
}

// Scoring.
const (
	FoodBasePoints      = 10
	FoodProgressAmount  = 10.0
	ComboWindowMs       = 3000.0
	ComboStep           = 0.1
	ComboMax            = 3.0
	EvolutionBonusBase  = 1000
	SurvivalBonusTickMs = 30000.0
	SurvivalBonusPoints = 500
	TailConsumePoints   = 50 // per consumed segment
)

// Session board population.
const (
	FoodCount     = 3
	ObstacleCount = 12
)

// LevelSpeed returns the snake speed multiplier for an evolution level.
// Starts at 1.0 and increases by 0.08 per level, inside the clamp range.
func LevelSpeed(level int) float64 {
	return clampF(1.0+float64(level-1)*0.08, MinSpeed, MaxSpeed)
}
