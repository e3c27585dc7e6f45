package game

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Mul(k uint8) RGB {
	return RGB{
		R: uint8((uint16(c.R) * uint16(k)) / 255),
		G: uint8((uint16(c.G) * uint16(k)) / 255),
		B: uint8((uint16(c.B) * uint16(k)) / 255),
	}
}

func lerpU8(a, b uint8, t float64) uint8 {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

func lerpRGB(a, b RGB, t float64) RGB {
	return RGB{R: lerpU8(a.R, b.R, t), G: lerpU8(a.G, b.G, t), B: lerpU8(a.B, b.B, t)}
}

var Palette = struct {
	Background RGB
	GridDark   RGB
	GridLight  RGB
	Food       RGB
	Obstacle   RGB
	ObstacleHi RGB
	DeadSnake  RGB
	Glow       RGB
	Venom      RGB
	FireHot    RGB
	FireMid    RGB
	FireCool   RGB
}{
	Background: RGB{R: 16, G: 20, B: 24},
	GridDark:   RGB{R: 22, G: 27, B: 32},
	GridLight:  RGB{R: 26, G: 32, B: 38},
	Food:       RGB{R: 255, G: 120, B: 90},
	Obstacle:   RGB{R: 104, G: 108, B: 112},
	ObstacleHi: RGB{R: 140, G: 144, B: 150},
	DeadSnake:  RGB{R: 90, G: 96, B: 90},
	Glow:       RGB{R: 255, G: 200, B: 90},
	Venom:      RGB{R: 140, G: 255, B: 80},
	FireHot:    RGB{R: 255, G: 210, B: 110},
	FireMid:    RGB{R: 255, G: 150, B: 70},
	FireCool:   RGB{R: 190, G: 70, B: 45},
}

// evoPalette is the head colour per evolution level 1..10: toxic green
// through cyan and ice blue up to the violet Ouroboros apex.
var evoPalette = [10]RGB{
	{R: 40, G: 200, B: 26},
	{R: 70, G: 220, B: 60},
	{R: 80, G: 235, B: 130},
	{R: 90, G: 225, B: 175},
	{R: 95, G: 215, B: 205},
	{R: 120, G: 200, B: 225},
	{R: 145, G: 185, B: 245},
	{R: 180, G: 155, B: 250},
	{R: 205, G: 135, B: 255},
	{R: 225, G: 120, B: 255},
}

// EvoHeadColor returns the head colour for an evolution level.
func EvoHeadColor(level int) RGB {
	if level < 1 {
		level = 1
	}
	if level > len(evoPalette) {
		level = len(evoPalette)
	}
	return evoPalette[level-1]
}

// EvoSegmentColor fades toward a darker tail so body depth stays
// readable; t runs 0 at the neck to 1 at the tail tip.
func EvoSegmentColor(level int, t float64) RGB {
	head := EvoHeadColor(level)
	tail := RGB{
		R: uint8(float64(head.R) * 0.42),
		G: uint8(float64(head.G) * 0.42),
		B: uint8(float64(head.B) * 0.42),
	}
	return lerpRGB(head, tail, t)
}
