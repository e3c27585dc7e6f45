package game

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/T0rr1/Ouroboros-sub001/internal/sim"
)

type Input struct {
	prevKeys map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{prevKeys: make(map[glfw.Key]bool)}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// powerKeys maps the digit row onto power ordinals.
var powerKeys = [...]glfw.Key{
	glfw.Key1, glfw.Key2, glfw.Key3, glfw.Key4, glfw.Key5,
	glfw.Key6, glfw.Key7, glfw.Key8, glfw.Key9,
}

// Apply translates this frame's keyboard state into core commands.
// Direction keys queue; reversals are dropped inside the core.
func (in *Input) Apply(window *glfw.Window, session *sim.Session) {
	switch {
	case window.GetKey(glfw.KeyUp) == glfw.Press || window.GetKey(glfw.KeyW) == glfw.Press:
		session.QueueDirection(sim.DirUp)
	case window.GetKey(glfw.KeyDown) == glfw.Press || window.GetKey(glfw.KeyS) == glfw.Press:
		session.QueueDirection(sim.DirDown)
	case window.GetKey(glfw.KeyLeft) == glfw.Press || window.GetKey(glfw.KeyA) == glfw.Press:
		session.QueueDirection(sim.DirLeft)
	case window.GetKey(glfw.KeyRight) == glfw.Press || window.GetKey(glfw.KeyD) == glfw.Press:
		session.QueueDirection(sim.DirRight)
	}

	for i, key := range powerKeys {
		if in.JustPressed(window, key) {
			if _, fail := session.ActivatePower(sim.PowerKind(i)); fail != sim.ActivateOK {
				PlaySound(SoundPowerDenied)
			}
		}
	}

	if in.JustPressed(window, glfw.KeyT) {
		if _, ok := session.ConsumeTailSegment(1); !ok {
			PlaySound(SoundPowerDenied)
		}
	}

	if in.JustPressed(window, glfw.KeyP) {
		switch session.State() {
		case sim.StatePlaying:
			session.Pause()
		case sim.StatePaused:
			session.Resume()
		}
	}

	if in.JustPressed(window, glfw.KeyEnter) && session.State() == sim.StateGameOver {
		session.Reset()
	}
}
