package game

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/T0rr1/Ouroboros-sub001/internal/sim"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

const spriteStride = 8 // x, y, size, r, g, b, a, rotation

// Renderer draws the whole frame from immutable simulation snapshots
// with a single point-sprite pipeline: one alpha-blended pass for
// cells/segments, one additive pass for glow.
type Renderer struct {
	spriteProg uint32
	glowProg   uint32
	vao        uint32
	vbo        uint32

	uOrigin     int32
	uCellPx     int32
	uResolution int32

	glowUOrigin     int32
	glowUCellPx     int32
	glowUResolution int32

	// Reusable per-frame vertex buffers.
	normBuf []float32
	glowBuf []float32
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{}

	var err error
	if r.spriteProg, err = linkProgram(spriteVertSrc, spriteFragSrc); err != nil {
		return nil, fmt.Errorf("sprite program: %w", err)
	}
	if r.glowProg, err = linkProgram(spriteVertSrc, glowFragSrc); err != nil {
		return nil, fmt.Errorf("glow program: %w", err)
	}

	r.uOrigin = gl.GetUniformLocation(r.spriteProg, gl.Str("uOrigin\x00"))
	r.uCellPx = gl.GetUniformLocation(r.spriteProg, gl.Str("uCellPx\x00"))
	r.uResolution = gl.GetUniformLocation(r.spriteProg, gl.Str("uResolution\x00"))
	r.glowUOrigin = gl.GetUniformLocation(r.glowProg, gl.Str("uOrigin\x00"))
	r.glowUCellPx = gl.GetUniformLocation(r.glowProg, gl.Str("uCellPx\x00"))
	r.glowUResolution = gl.GetUniformLocation(r.glowProg, gl.Str("uResolution\x00"))

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	stride := int32(spriteStride * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, stride, glOffset(2*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(3*4))
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointer(3, 1, gl.FLOAT, false, stride, glOffset(7*4))
	gl.BindVertexArray(0)

	return r, nil
}

func (r *Renderer) Destroy() {
	gl.DeleteBuffers(1, &r.vbo)
	gl.DeleteVertexArrays(1, &r.vao)
	gl.DeleteProgram(r.spriteProg)
	gl.DeleteProgram(r.glowProg)
}

func pushSprite(buf []float32, x, y, size float64, col RGB, alpha, rot float64) []float32 {
	return append(buf,
		float32(x), float32(y), float32(size),
		float32(col.R)/255, float32(col.G)/255, float32(col.B)/255, float32(alpha),
		float32(rot),
	)
}

// BuildFrame fills the vertex buffers from the tick's snapshots.
func (r *Renderer) BuildFrame(
	board sim.BoardSnapshot,
	snake sim.SnakeSnapshot,
	evo sim.EvolutionSnapshot,
	powers sim.PowerVisualSnapshot,
	particles *ParticleSystem,
	elapsed float64,
) {
	r.normBuf = r.normBuf[:0]
	r.glowBuf = r.glowBuf[:0]

	// Checkerboard floor.
	for y := 0; y < board.Height; y++ {
		for x := 0; x < board.Width; x++ {
			col := Palette.GridDark
			if (x+y)%2 == 0 {
				col = Palette.GridLight
			}
			r.normBuf = pushSprite(r.normBuf, float64(x), float64(y), 1.0, col, 1.0, 0)
		}
	}

	for _, o := range board.Obstacles {
		r.normBuf = pushSprite(r.normBuf, float64(o.X), float64(o.Y), 0.95, Palette.Obstacle, 1.0, 0)
		r.normBuf = pushSprite(r.normBuf, float64(o.X), float64(o.Y), 0.55, Palette.ObstacleHi, 1.0, 0)
	}

	// Food pulses gently so pellets read against the floor.
	pulse := 0.72 + 0.08*math.Sin(elapsed*5)
	for _, f := range board.Food {
		r.glowBuf = pushSprite(r.glowBuf, float64(f.X), float64(f.Y), 2.2, Palette.Food.Mul(110), 1.0, 0)
		r.normBuf = pushSprite(r.normBuf, float64(f.X), float64(f.Y), pulse, Palette.Food, 1.0, math.Pi/4)
	}

	// Body tail-last, drawn neck-first so the head overlaps it.
	n := len(snake.Body)
	for i := n - 1; i >= 0; i-- {
		seg := snake.Body[i]
		t := float64(i+1) / float64(n+1)
		col := EvoSegmentColor(evo.Level, t)
		if !snake.Alive {
			col = lerpRGB(col, Palette.DeadSnake, 0.7)
		}
		r.normBuf = pushSprite(r.normBuf,
			float64(seg.Pos.X), float64(seg.Pos.Y), 0.92*seg.Scale, col, 1.0, seg.Rot)
	}

	headCol := EvoHeadColor(evo.Level)
	if !snake.Alive {
		headCol = lerpRGB(headCol, Palette.DeadSnake, 0.7)
	}
	r.normBuf = pushSprite(r.normBuf,
		float64(snake.Head.Pos.X), float64(snake.Head.Pos.Y), 1.0, headCol, 1.0, snake.Head.Rot)

	// Active duration powers put a glow halo on the head.
	if snake.Alive && len(powers.ActivePowers) > 0 {
		r.glowBuf = pushSprite(r.glowBuf,
			float64(snake.Head.Pos.X), float64(snake.Head.Pos.Y), 3.4, Palette.Glow.Mul(130), 1.0, 0)
	}

	particles.RenderData(&r.normBuf, &r.glowBuf)
}

// Draw renders the built frame. The board is centered in the
// framebuffer at the largest whole-pixel cell size that fits.
func (r *Renderer) Draw(fbW, fbH, gridW, gridH int) {
	cellPx := fbW / gridW
	if v := fbH / gridH; v < cellPx {
		cellPx = v
	}
	if cellPx < 1 {
		cellPx = 1
	}
	originX := (fbW - gridW*cellPx) / 2
	originY := (fbH - gridH*cellPx) / 2

	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.ClearColor(
		float32(Palette.Background.R)/255,
		float32(Palette.Background.G)/255,
		float32(Palette.Background.B)/255, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.Enable(gl.BLEND)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	if len(r.normBuf) > 0 {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		gl.UseProgram(r.spriteProg)
		gl.Uniform2f(r.uOrigin, float32(originX), float32(originY))
		gl.Uniform1f(r.uCellPx, float32(cellPx))
		gl.Uniform2f(r.uResolution, float32(fbW), float32(fbH))
		gl.BufferData(gl.ARRAY_BUFFER, len(r.normBuf)*4, gl.Ptr(r.normBuf), gl.STREAM_DRAW)
		gl.DrawArrays(gl.POINTS, 0, int32(len(r.normBuf)/spriteStride))
	}

	if len(r.glowBuf) > 0 {
		gl.BlendFunc(gl.ONE, gl.ONE)
		gl.UseProgram(r.glowProg)
		gl.Uniform2f(r.glowUOrigin, float32(originX), float32(originY))
		gl.Uniform1f(r.glowUCellPx, float32(cellPx))
		gl.Uniform2f(r.glowUResolution, float32(fbW), float32(fbH))
		gl.BufferData(gl.ARRAY_BUFFER, len(r.glowBuf)*4, gl.Ptr(r.glowBuf), gl.STREAM_DRAW)
		gl.DrawArrays(gl.POINTS, 0, int32(len(r.glowBuf)/spriteStride))
	}

	gl.BindVertexArray(0)
}
