package game

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/T0rr1/Ouroboros-sub001/internal/sim"
)

func RunDesktop() {
	runtime.LockOSThread()

	window, err := initWindow()
	if err != nil {
		panic(err)
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		panic(fmt.Errorf("gl init: %w", err))
	}

	if err := InitAudio(); err != nil {
		fmt.Fprintf(os.Stderr, "audio init failed (continuing without sound): %v\n", err)
	}

	// Seed from environment or clock.
	seed := uint64(time.Now().UnixNano())
	if s := os.Getenv("OUROBOROS_SEED"); s != "" {
		if v, err := strconv.ParseUint(s, 10, 64); err == nil {
			seed = v
		}
	}

	// GL state.
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)

	rend, err := NewRenderer()
	if err != nil {
		panic(fmt.Errorf("renderer: %w", err))
	}
	defer rend.Destroy()

	session := sim.NewSession(seed)
	particles := NewParticleSystem(MaxParticles, seed^0xBEAD)
	input := NewInput()

	elapsed := 0.0
	last := glfw.GetTime()
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := now - last
		last = now
		// The core assumes a bounded dt; clamp here, at the caller.
		if dt > MaxFrameDt {
			dt = MaxFrameDt
		}
		elapsed += dt

		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}

		wasOver := session.State() == sim.StateGameOver
		input.Apply(window, session)
		if wasOver && session.State() == sim.StatePlaying {
			// Enter restarted the run; leftover death debris belongs to
			// the old one.
			particles.Clear()
		}
		session.Update(dt * 1000)

		evo := session.EvolutionSnapshot()
		for _, e := range session.DrainEvents() {
			particles.HandleEvent(e, evo.Level)
			switch e.Type {
			case sim.EventFoodEaten:
				PlaySound(SoundEat)
			case sim.EventEvolved:
				PlaySound(SoundEvolve)
			case sim.EventPowerActivated:
				PlaySound(SoundPower)
			case sim.EventTailConsumed:
				PlaySound(SoundTailConsume)
			case sim.EventObstacleDestroyed:
				PlaySound(SoundDestroy)
			case sim.EventSurvivalBonus:
				PlaySound(SoundBonus)
			case sim.EventGameOver:
				PlaySound(SoundGameOver)
			}
		}
		particles.Update(dt)

		updateTitle(window, session, evo)

		board := session.BoardSnapshot()
		rend.BuildFrame(board, session.SnakeSnapshot(), evo, session.PowerSnapshot(), particles, elapsed)
		rend.Draw(fbW, fbH, board.Width, board.Height)

		window.SwapBuffers()
	}
}

// updateTitle carries the score readout; a font pipeline is more than
// this HUD needs.
func updateTitle(window *glfw.Window, session *sim.Session, evo sim.EvolutionSnapshot) {
	switch session.State() {
	case sim.StateGameOver:
		window.SetTitle(fmt.Sprintf("%s — game over, score %d (Enter to restart)",
			WindowTitle, session.Score()))
	case sim.StatePaused:
		window.SetTitle(fmt.Sprintf("%s — paused, score %d", WindowTitle, session.Score()))
	default:
		window.SetTitle(fmt.Sprintf("%s — score %d  lvl %d  combo x%.1f",
			WindowTitle, session.Score(), evo.Level, session.ComboMult()))
	}
}
