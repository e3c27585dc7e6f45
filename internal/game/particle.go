package game

import (
	"math"

	"github.com/T0rr1/Ouroboros-sub001/internal/sim"
)

type ParticleKind uint8

const (
	ParticleSpark ParticleKind = iota
	ParticleFire
	ParticleGlow
	ParticleDebris
)

type Particle struct {
	X, Y   float64 // cell units
	VX, VY float64 // cells per second

	Size float64

	Life    float64
	MaxLife float64

	Col  RGB
	Kind ParticleKind
}

// ParticleSystem is pure VFX: it consumes simulation events and decides
// nothing. Capacity overflow overwrites the oldest entries.
type ParticleSystem struct {
	Max    int
	P      []Particle
	rng    *randLCG
	ovrIdx int
}

// randLCG is a tiny local generator so burst shapes don't consume the
// simulation's deterministic stream.
type randLCG struct{ s uint64 }

func (r *randLCG) next() float64 {
	r.s = r.s*6364136223846793005 + 1442695040888963407
	return float64(r.s>>11) * (1.0 / (1 << 53))
}

func NewParticleSystem(maxParticles int, seed uint64) *ParticleSystem {
	if maxParticles <= 0 {
		maxParticles = MaxParticles
	}
	if seed == 0 {
		seed = 1
	}
	return &ParticleSystem{
		Max: maxParticles,
		P:   make([]Particle, 0, maxParticles),
		rng: &randLCG{s: seed},
	}
}

func (ps *ParticleSystem) Clear() {
	ps.P = ps.P[:0]
	ps.ovrIdx = 0
}

func (ps *ParticleSystem) Add(p Particle) {
	if len(ps.P) < ps.Max {
		ps.P = append(ps.P, p)
		return
	}
	if ps.ovrIdx >= ps.Max {
		ps.ovrIdx = 0
	}
	ps.P[ps.ovrIdx] = p
	ps.ovrIdx++
}

func (ps *ParticleSystem) Update(dt float64) {
	alive := ps.P[:0]
	for _, p := range ps.P {
		p.Life += dt
		if p.Life >= p.MaxLife {
			continue
		}
		p.X += p.VX * dt
		p.Y += p.VY * dt
		p.VX *= 1 - 2.2*dt
		p.VY *= 1 - 2.2*dt
		alive = append(alive, p)
	}
	ps.P = alive
	if len(ps.P) < ps.Max {
		ps.ovrIdx = 0
	}
}

func (ps *ParticleSystem) burst(x, y float64, count int, speed float64, col RGB, kind ParticleKind, life float64) {
	for i := 0; i < count; i++ {
		ang := ps.rng.next() * 2 * math.Pi
		v := speed * (0.4 + 0.6*ps.rng.next())
		ps.Add(Particle{
			X: x, Y: y,
			VX: math.Cos(ang) * v, VY: math.Sin(ang) * v,
			Size:    0.18 + 0.22*ps.rng.next(),
			MaxLife: life * (0.6 + 0.8*ps.rng.next()),
			Col:     col,
			Kind:    kind,
		})
	}
}

// HandleEvent spawns the burst matching one simulation event.
func (ps *ParticleSystem) HandleEvent(e sim.Event, evoLevel int) {
	x := float64(e.Cell.X)
	y := float64(e.Cell.Y)
	switch e.Type {
	case sim.EventFoodEaten:
		ps.burst(x, y, 14, 4.0, Palette.Food, ParticleSpark, 0.5)
	case sim.EventEvolved:
		ps.burst(x, y, 60, 7.0, EvoHeadColor(e.Value), ParticleGlow, 1.0)
	case sim.EventObstacleDestroyed:
		ps.burst(x, y, 24, 5.0, Palette.Obstacle, ParticleDebris, 0.7)
		ps.burst(x, y, 10, 3.0, Palette.FireMid, ParticleFire, 0.5)
	case sim.EventTailConsumed:
		ps.burst(x, y, 18, 4.5, EvoHeadColor(evoLevel), ParticleSpark, 0.6)
	case sim.EventPowerActivated:
		col := Palette.Glow
		switch e.Power {
		case sim.PowerVenomStrike:
			col = Palette.Venom
		case sim.PowerFireBreath:
			col = Palette.FireMid
		}
		ps.burst(x, y, 20, 5.5, col, ParticleGlow, 0.6)
	case sim.EventGameOver:
		ps.burst(x, y, 80, 8.0, Palette.FireCool, ParticleFire, 1.2)
	}
}

// RenderData appends sprite vertices for live particles; fire and glow
// go to the additive buffer.
func (ps *ParticleSystem) RenderData(normBuf, glowBuf *[]float32) {
	for _, p := range ps.P {
		t := p.Life / p.MaxLife
		a := 1.0 - t
		col := p.Col
		switch p.Kind {
		case ParticleFire:
			if t < 0.5 {
				col = lerpRGB(Palette.FireHot, Palette.FireMid, t*2.0)
			} else {
				col = lerpRGB(Palette.FireMid, Palette.FireCool, (t-0.5)*2.0)
			}
			*glowBuf = pushSprite(*glowBuf, p.X, p.Y, p.Size*3, col.Mul(uint8(200*a)), 1.0, 0)
		case ParticleGlow:
			*glowBuf = pushSprite(*glowBuf, p.X, p.Y, p.Size*3, col.Mul(uint8(160*a)), 1.0, 0)
		default:
			*normBuf = pushSprite(*normBuf, p.X, p.Y, p.Size, col, a, 0)
		}
	}
}
