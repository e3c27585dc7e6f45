package sim

import "math"

type PowerKind int

const (
	PowerSpeedBoost  PowerKind = iota // level 2: 1.5x movement rate
	PowerVenomStrike                  // level 3: straight-line obstacle destruction
	PowerDash                         // level 4: instant multi-cell lunge
	PowerFireBreath                   // level 5: cone obstacle destruction
	PowerPhaseShift                   // level 6: pass through obstacles and self
	PowerMagnet                       // level 7: widened food pickup radius
	PowerTailWhip                     // level 8: area blast around the tail
	PowerTimeWarp                     // level 9: halved movement rate
	PowerOuroboros                    // level 10: tail self-consumption

	PowerKindCount // must stay last
)

var powerNames = [PowerKindCount]string{
	"Speed Boost", "Venom Strike", "Dash", "Fire Breath", "Phase Shift",
	"Magnet", "Tail Whip", "Time Warp", "Ouroboros",
}

func (k PowerKind) String() string {
	if k < 0 || k >= PowerKindCount {
		return "Unknown"
	}
	return powerNames[k]
}

// PowerParams are the fixed per-kind numbers. The table never changes
// at runtime outside the explicit debug override.
type PowerParams struct {
	UnlockLevel int
	CooldownMs  float64
	DurationMs  float64 // 0 for instant powers
	SpeedMult   float64 // movement-rate factor for duration powers
	Range       int     // cells, for line/cone geometry
	ConeHalfDeg float64 // cone half-angle, FireBreath only
	AreaRadius  int     // cells, TailWhip only
	DashCells   int     // Dash only
	PickupRange int     // Magnet only
}

var powerParams = [PowerKindCount]PowerParams{
	PowerSpeedBoost:  {UnlockLevel: 2, CooldownMs: 8000, DurationMs: 3000, SpeedMult: 1.5},
	PowerVenomStrike: {UnlockLevel: 3, CooldownMs: 5000, Range: 6},
	PowerDash:        {UnlockLevel: 4, CooldownMs: 6000, DashCells: 3},
	PowerFireBreath:  {UnlockLevel: 5, CooldownMs: 9000, Range: 5, ConeHalfDeg: 45},
	PowerPhaseShift:  {UnlockLevel: 6, CooldownMs: 12000, DurationMs: 4000},
	PowerMagnet:      {UnlockLevel: 7, CooldownMs: 10000, DurationMs: 5000, PickupRange: 2},
	PowerTailWhip:    {UnlockLevel: 8, CooldownMs: 7000, AreaRadius: 3},
	PowerTimeWarp:    {UnlockLevel: 9, CooldownMs: 15000, DurationMs: 4000, SpeedMult: 0.5},
	PowerOuroboros:   {UnlockLevel: 10, CooldownMs: 4000},
}

// ParamsFor returns the fixed parameter row for a kind.
func ParamsFor(kind PowerKind) PowerParams {
	if kind < 0 || kind >= PowerKindCount {
		return PowerParams{}
	}
	return powerParams[kind]
}

// PowerState is a 2-axis timer machine: cooldown gates reactivation,
// duration tracks the active window of non-instant powers.
type PowerState struct {
	Kind              PowerKind
	Unlocked          bool
	Active            bool
	CooldownRemaining float64 // ms, floored at 0
	DurationRemaining float64 // ms, floored at 0
}

// ActivateFailure enumerates the typed rejection results.
type ActivateFailure int

const (
	ActivateOK ActivateFailure = iota
	ActivateNotUnlocked
	ActivateOnCooldown
	ActivateAlreadyActive
	ActivateNotPlaying // session is paused or game over
)

func (f ActivateFailure) String() string {
	switch f {
	case ActivateOK:
		return "ok"
	case ActivateNotUnlocked:
		return "not unlocked"
	case ActivateOnCooldown:
		return "on cooldown"
	case ActivateAlreadyActive:
		return "already active"
	case ActivateNotPlaying:
		return "not playing"
	}
	return "unknown"
}

// PowerEffect is the typed activation payload. Kind selects which
// fields carry data; consumers switch on Kind exhaustively.
type PowerEffect struct {
	Kind PowerKind

	// VenomStrike / FireBreath / TailWhip: obstacle list indices hit,
	// ascending, plus their cells for the particle collaborator.
	DestroyedObstacles []int
	DestroyedCells     []Vec2

	// VenomStrike: cells the strike traversed.
	PathCells []Vec2

	// Dash: cells the head should lunge across.
	DashCells int

	// SpeedBoost / TimeWarp / PhaseShift / Magnet: window length.
	DurationMs float64
	SpeedMult  float64

	// Ouroboros: filled in by the coordinator after the tail consume.
	TailConsume TailConsumeResult
}

// PowerSet holds one slot per kind in a fixed array indexed by ordinal,
// so lookups are total and exhaustiveness is compiler-checked.
type PowerSet struct {
	states [PowerKindCount]PowerState
}

func NewPowerSet() *PowerSet {
	ps := &PowerSet{}
	for k := PowerKind(0); k < PowerKindCount; k++ {
		ps.states[k].Kind = k
	}
	return ps
}

// Unlock creates the live entry for kind. Entries persist until Reset.
func (ps *PowerSet) Unlock(kind PowerKind) {
	if kind < 0 || kind >= PowerKindCount {
		return
	}
	ps.states[kind].Unlocked = true
}

func (ps *PowerSet) IsUnlocked(kind PowerKind) bool {
	if kind < 0 || kind >= PowerKindCount {
		return false
	}
	return ps.states[kind].Unlocked
}

// State returns a copy of the slot for inspection.
func (ps *PowerSet) State(kind PowerKind) PowerState {
	if kind < 0 || kind >= PowerKindCount {
		return PowerState{}
	}
	return ps.states[kind]
}

// IsActive reports whether a duration power is currently running.
func (ps *PowerSet) IsActive(kind PowerKind) bool {
	if kind < 0 || kind >= PowerKindCount {
		return false
	}
	return ps.states[kind].Active
}

// Activate checks legality in the fixed order NotUnlocked -> OnCooldown
// -> AlreadyActive, then starts both timers. On any failure no state
// changes. The geometric interaction itself is resolved by the
// coordinator, which owns obstacle positions.
func (ps *PowerSet) Activate(kind PowerKind) ActivateFailure {
	if kind < 0 || kind >= PowerKindCount || !ps.states[kind].Unlocked {
		return ActivateNotUnlocked
	}
	st := &ps.states[kind]
	if st.CooldownRemaining > 0 {
		return ActivateOnCooldown
	}
	p := powerParams[kind]
	if p.DurationMs > 0 && st.Active {
		return ActivateAlreadyActive
	}
	st.CooldownRemaining = p.CooldownMs
	st.DurationRemaining = p.DurationMs
	st.Active = p.DurationMs > 0
	return ActivateOK
}

// Tick decrements every entry's timers by elapsed ms, flooring at 0.
// Active flips to false exactly when the duration reaches 0. Returns
// the kinds that expired this tick.
func (ps *PowerSet) Tick(dtMs float64) []PowerKind {
	var expired []PowerKind
	for k := range ps.states {
		st := &ps.states[k]
		if st.CooldownRemaining > 0 {
			st.CooldownRemaining -= dtMs
			if st.CooldownRemaining < 0 {
				st.CooldownRemaining = 0
			}
		}
		if st.Active {
			st.DurationRemaining -= dtMs
			if st.DurationRemaining <= 0 {
				st.DurationRemaining = 0
				st.Active = false
				expired = append(expired, PowerKind(k))
			}
		}
	}
	return expired
}

// OverrideParams replaces one kind's parameter row. Debug/test only.
func OverrideParams(kind PowerKind, p PowerParams) {
	if kind < 0 || kind >= PowerKindCount {
		return
	}
	powerParams[kind] = p
}

// Reset clears every slot back to locked, inactive, zero timers.
func (ps *PowerSet) Reset() {
	for k := PowerKind(0); k < PowerKindCount; k++ {
		ps.states[k] = PowerState{Kind: k}
	}
}

// --- Environmental interaction geometry -------------------------------
//
// Pure queries over obstacle positions. They compute which obstacle
// indices a power hits; the coordinator removes them and emits events.

// lineHits collects obstacles on the straight ray from origin (exclusive)
// along dir, up to rangeCells away. Indices ascend for determinism.
func lineHits(origin, dir Vec2, rangeCells int, obstacles []Vec2) (idx []int, cells []Vec2, path []Vec2) {
	p := origin
	for step := 0; step < rangeCells; step++ {
		p = p.Add(dir)
		path = append(path, p)
		for i, o := range obstacles {
			if o == p {
				idx = append(idx, i)
				cells = append(cells, o)
			}
		}
	}
	return idx, cells, path
}

// coneHits collects obstacles within rangeCells of origin whose bearing
// from dir is inside the half-angle.
func coneHits(origin, dir Vec2, rangeCells int, halfDeg float64, obstacles []Vec2) (idx []int, cells []Vec2) {
	halfRad := halfDeg * math.Pi / 180
	dirAng := dirAngle(dir)
	for i, o := range obstacles {
		d := o.Sub(origin)
		if d == (Vec2{}) {
			continue
		}
		if d.X*d.X+d.Y*d.Y > rangeCells*rangeCells {
			continue
		}
		ang := math.Atan2(float64(d.Y), float64(d.X))
		diff := math.Abs(angDiff(dirAng, ang))
		if diff <= halfRad+1e-9 {
			idx = append(idx, i)
			cells = append(cells, o)
		}
	}
	return idx, cells
}

// areaHits collects obstacles within radius (Chebyshev) of center.
func areaHits(center Vec2, radius int, obstacles []Vec2) (idx []int, cells []Vec2) {
	for i, o := range obstacles {
		if abs(o.X-center.X) <= radius && abs(o.Y-center.Y) <= radius {
			idx = append(idx, i)
			cells = append(cells, o)
		}
	}
	return idx, cells
}

func angDiff(a, b float64) float64 {
	d := b - a
	for d <= -math.Pi {
		d += 2 * math.Pi
	}
	for d > math.Pi {
		d -= 2 * math.Pi
	}
	return d
}
