package game

// Window defaults.
const (
	WindowWidth  = 800
	WindowHeight = 600
	WindowTitle  = "Ouroboros"
)

// Frame timing.
const (
	// MaxFrameDt bounds the per-frame delta handed to the simulation,
	// so a backgrounded window never triggers a runaway catch-up. The
	// core itself assumes a bounded dt; this is the caller-side clamp.
	MaxFrameDt = 0.1 // seconds
)

// Particles.
const (
	MaxParticles = 4000
)

// Audio synthesis.
const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)
