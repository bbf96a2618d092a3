package main

import (
	"image/color"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	// maxParticles bounds the live pool; spawns beyond it are dropped.
	maxParticles = 50
	// particleDecay gives a ~50 tick lifetime from full life.
	particleDecay = 0.02
)

// particle is one short-lived movement mote in screen space.
type particle struct {
	x, y   float64
	vx, vy float64
	life   float64
	decay  float64
	size   float64
	col    color.NRGBA
}

// particleSystem owns every live particle. Like the player store it is only
// touched from the game loop goroutine.
type particleSystem struct {
	live []particle
	rng  *rand.Rand

	spawned int64
	dropped int64
}

func newParticleSystem(seed int64) *particleSystem {
	return &particleSystem{rng: rand.New(rand.NewSource(seed))}
}

// spawn adds one particle near the given point with jittered position and
// velocity. A no-op once the pool is full.
func (ps *particleSystem) spawn(x, y float64) {
	if len(ps.live) >= maxParticles {
		ps.dropped++
		return
	}
	ps.spawned++
	ps.live = append(ps.live, particle{
		x:     x + (ps.rng.Float64()-0.5)*20,
		y:     y + (ps.rng.Float64()-0.5)*20,
		vx:    (ps.rng.Float64() - 0.5) * 2,
		vy:    (ps.rng.Float64() - 0.5) * 2,
		life:  1.0,
		decay: particleDecay,
		size:  1 + ps.rng.Float64()*3,
		// Narrow cyan/blue band.
		col: color.NRGBA{R: 0x40, G: uint8(0x90 + ps.rng.Intn(0x60)), B: 0xff, A: 0xff},
	})
}

// tick advances every particle and removes the expired. Reverse traversal
// keeps in-place removal from skipping entries.
func (ps *particleSystem) tick() {
	for i := len(ps.live) - 1; i >= 0; i-- {
		p := &ps.live[i]
		p.x += p.vx
		p.y += p.vy
		p.life -= p.decay
		// Epsilon absorbs float drift so a life-1.0 particle with the
		// default decay expires on tick 50 exactly.
		if p.life <= 1e-9 {
			ps.live[i] = ps.live[len(ps.live)-1]
			ps.live = ps.live[:len(ps.live)-1]
		}
	}
}

func (ps *particleSystem) count() int {
	return len(ps.live)
}

// draw renders live particles with alpha fading alongside remaining life.
// Expired particles never reach here; tick removed them already.
func (ps *particleSystem) draw(dst *ebiten.Image) {
	for i := range ps.live {
		p := &ps.live[i]
		if p.life <= 0 {
			continue
		}
		c := p.col
		c.A = uint8(p.life * 255)
		vector.DrawFilledRect(dst, float32(p.x), float32(p.y), float32(p.size), float32(p.size), c, false)
	}
}
