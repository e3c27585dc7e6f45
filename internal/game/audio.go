package game

import (
	"io"
	"math"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

type SoundKind int

const (
	SoundEat SoundKind = iota
	SoundEvolve
	SoundPower
	SoundPowerDenied
	SoundTailConsume
	SoundDestroy
	SoundBonus
	SoundGameOver
)

type AudioSystem struct {
	ctx   *oto.Context
	ready chan struct{}
}

var globalAudio *AudioSystem

var sfxVolume = 0.55

// InitAudio initializes the audio system.
func InitAudio() error {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return err
	}
	globalAudio = &AudioSystem{ctx: ctx, ready: ready}
	return nil
}

// PlaySound plays a procedurally generated sound effect. Silently does
// nothing when audio never initialized.
func PlaySound(kind SoundKind) {
	if globalAudio == nil {
		return
	}
	select {
	case <-globalAudio.ready:
	default:
		return
	}
	samples := generateSound(kind)
	if len(samples) == 0 {
		return
	}
	go func() {
		reader := &soundReader{data: samples}
		player := globalAudio.ctx.NewPlayer(reader)
		player.SetVolume(sfxVolume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// putStereoF32 writes one float32 sample to both channels.
func putStereoF32(buf []byte, i int, sample float64) {
	bits := math.Float32bits(float32(sample))
	off := i * 8
	buf[off] = byte(bits)
	buf[off+1] = byte(bits >> 8)
	buf[off+2] = byte(bits >> 16)
	buf[off+3] = byte(bits >> 24)
	buf[off+4] = byte(bits)
	buf[off+5] = byte(bits >> 8)
	buf[off+6] = byte(bits >> 16)
	buf[off+7] = byte(bits >> 24)
}

// softSat is a gentle tanh-style saturator to avoid harsh clipping.
func softSat(x float64) float64 {
	if x > 1.5 {
		return 1
	}
	if x < -1.5 {
		return -1
	}
	return x * (1 - x*x/6.75)
}

// adsr computes a simple envelope over normalized progress [0..1].
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		d := (progress - attack) / decay
		return 1 - d*(1-sustain)
	case progress > 1-release:
		return sustain * (1 - progress) / release
	default:
		return sustain
	}
}

// fm is a single-modulator FM voice.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	return math.Sin(2*math.Pi*carrier*t + modIdx*math.Sin(2*math.Pi*carrier*modRatio*t))
}

func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(*seed>>11)*(2.0/(1<<53)) - 1.0
}

func makeBuf(n int) []byte { return make([]byte, n*8) }

func generateSound(kind SoundKind) []byte {
	switch kind {
	case SoundEat:
		return genEat()
	case SoundEvolve:
		return genEvolve()
	case SoundPower:
		return genPower()
	case SoundPowerDenied:
		return genDenied()
	case SoundTailConsume:
		return genTailConsume()
	case SoundDestroy:
		return genDestroy()
	case SoundBonus:
		return genBonus()
	case SoundGameOver:
		return genGameOver()
	}
	return nil
}

// genEat: snappy FM pop with ascending pitch.
func genEat() []byte {
	n := int(0.09 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.01, 0.5, 0.0, 0.1)
		freq := 480 + 720*p
		s := fm(t, freq, 2.0, 3.5*env) * env * 0.5
		s += math.Sin(2*math.Pi*freq*3*t) * env * 0.06
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genEvolve: rising three-note arpeggio with shimmer.
func genEvolve() []byte {
	n := int(0.6 * SampleRate)
	buf := makeBuf(n)
	notes := []float64{440, 554, 659}
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		note := notes[clampInt(int(p*3), 0, 2)]
		env := adsr(math.Mod(p*3, 1), 0.05, 0.3, 0.5, 0.3)
		s := fm(t, note, 2.0, 1.5) * env * 0.35
		s += math.Sin(2*math.Pi*note*2*t) * env * 0.12 * p
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genPower: quick bright sweep upward.
func genPower() []byte {
	n := int(0.22 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.02, 0.4, 0.3, 0.3)
		freq := 300 + 900*p*p
		s := fm(t, freq, 1.5, 2.0*env) * env * 0.4
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genDenied: short low double-buzz for rejected commands.
func genDenied() []byte {
	n := int(0.14 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		gate := 1.0
		if p > 0.4 && p < 0.55 {
			gate = 0
		}
		env := (1 - p) * gate
		s := math.Sin(2*math.Pi*160*t) * env * 0.35
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genTailConsume: gooey low thud with filtered noise.
func genTailConsume() []byte {
	n := int(0.20 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(11111)
	lp := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := math.Exp(-p * 7)
		lp = lp*0.88 + lcg(&seed)*0.12
		thump := fm(t, 75, 0.5, 1.2) * math.Exp(-p*20)
		s := (lp*0.55 + thump*0.55) * env
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genDestroy: noise crack with a pitch-dropping body.
func genDestroy() []byte {
	n := int(0.3 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(7777)
	lp := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := math.Exp(-p * 6)
		lp = lp*0.8 + lcg(&seed)*0.2
		body := math.Sin(2*math.Pi*(120-70*p)*t) * 0.5
		s := (lp*0.5 + body) * env * 0.6
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genBonus: sparkling two-voice chime.
func genBonus() []byte {
	n := int(0.35 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.01, 0.3, 0.4, 0.4)
		s := fm(t, 880, 2.0, 1.0) * env * 0.25
		s += fm(t, 1320, 3.0, 0.5) * env * 0.12
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genGameOver: slow descending minor sweep with rumble.
func genGameOver() []byte {
	n := int(1.1 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(333)
	lp := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.02, 0.2, 0.6, 0.4)
		freq := 330 - 210*p
		s := fm(t, freq, 0.5, 1.8) * env * 0.4
		lp = lp*0.95 + lcg(&seed)*0.05
		s += lp * env * 0.2
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
