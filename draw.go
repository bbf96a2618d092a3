package main

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/hako/durafmt"
	"golang.org/x/image/font/basicfont"
)

const (
	// cullMargin expands the viewport for draw culling so sprites
	// straddling the edge still render.
	cullMargin = 50

	bgTileSize  = 256
	minimapSize = 128
	minimapPad  = 10
)

type labelKey struct {
	text  string
	local bool
}

// renderer holds the drawing-side caches: the background tile, rendered
// name labels, and the HUD font face. Labels are keyed by their final
// display string, so disambiguation suffixes get their own entries and
// stale keys simply go unused.
type renderer struct {
	face   text.Face
	bgTile *ebiten.Image
	labels map[labelKey]*ebiten.Image
}

func newRenderer() *renderer {
	return &renderer{
		face:   text.NewGoXFace(basicfont.Face7x13),
		labels: make(map[labelKey]*ebiten.Image),
	}
}

func (r *renderer) text(dst *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, r.face, op)
}

func (r *renderer) ensureBGTile() {
	if r.bgTile != nil {
		return
	}
	t := ebiten.NewImage(bgTileSize, bgTileSize)
	t.Fill(color.NRGBA{0x1e, 0x3a, 0x24, 0xff})
	grid := color.NRGBA{0x2a, 0x4a, 0x30, 0xff}
	vector.DrawFilledRect(t, 0, 0, bgTileSize, 1, grid, false)
	vector.DrawFilledRect(t, 0, 0, 1, bgTileSize, grid, false)
	r.bgTile = t
}

// drawBackground blits the viewport-cropped slice of the tiled world
// ground.
func (r *renderer) drawBackground(dst *ebiten.Image, view viewport) {
	r.ensureBGTile()
	x0 := int(math.Floor(view.X/bgTileSize)) * bgTileSize
	y0 := int(math.Floor(view.Y/bgTileSize)) * bgTileSize
	for y := y0; y < int(view.Y+view.H); y += bgTileSize {
		for x := x0; x < int(view.X+view.W); x += bgTileSize {
			if x >= worldWidth || y >= worldHeight {
				continue
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(x)-view.X, float64(y)-view.Y)
			dst.DrawImage(r.bgTile, op)
		}
	}
}

// drawPlayer renders one sprite anchored at its bottom center and the name
// label above it. Returns the screen-space foot position for particle
// spawning.
func (r *renderer) drawPlayer(dst *ebiten.Image, img *ebiten.Image, p Player, label string, isLocal bool, view viewport) (float64, float64) {
	sx := p.X - view.X
	sy := p.Y - view.Y

	w := float64(img.Bounds().Dx())
	h := float64(img.Bounds().Dy())

	if isLocal {
		vector.StrokeCircle(dst, float32(sx), float32(sy-h/2), float32(w/2+6), 2,
			color.NRGBA{0xff, 0xe8, 0x66, 0xa0}, true)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(sx-w/2, sy-h)
	dst.DrawImage(img, op)

	if tag := r.labelImage(label, isLocal); tag != nil {
		tw := float64(tag.Bounds().Dx())
		top := &ebiten.DrawImageOptions{}
		top.GeoM.Translate(sx-tw/2, sy-h-float64(tag.Bounds().Dy())-4)
		dst.DrawImage(tag, top)
	}
	return sx, sy
}

// labelImage returns the cached pre-rendered name tag, building it on first
// use.
func (r *renderer) labelImage(label string, local bool) *ebiten.Image {
	if label == "" {
		return nil
	}
	key := labelKey{text: label, local: local}
	if img, ok := r.labels[key]; ok {
		return img
	}
	w, h := text.Measure(label, r.face, 0)
	img := ebiten.NewImage(int(w)+8, int(h)+4)
	img.Fill(color.NRGBA{0, 0, 0, 0x8c})
	clr := color.Color(color.White)
	if local {
		clr = color.NRGBA{0xff, 0xe8, 0x66, 0xff}
	}
	r.text(img, label, 4, 2, clr)
	r.labels[key] = img
	return img
}

// drawMinimap paints the scaled-down world with one marker per player and
// the current viewport rectangle.
func (r *renderer) drawMinimap(dst *ebiten.Image, s *Session) {
	scale := float64(minimapSize) / worldWidth
	ox := float64(dst.Bounds().Dx()-minimapSize) - minimapPad
	oy := float64(minimapPad)

	vector.DrawFilledRect(dst, float32(ox), float32(oy), minimapSize, minimapSize,
		color.NRGBA{0x10, 0x18, 0x12, 0xc8}, false)

	for id, p := range s.store.players {
		c := color.NRGBA{0xc8, 0xc8, 0xc8, 0xff}
		if id == s.localID {
			c = color.NRGBA{0xff, 0xe8, 0x66, 0xff}
		}
		vector.DrawFilledRect(dst, float32(ox+p.X*scale-1), float32(oy+p.Y*scale-1), 3, 3, c, false)
	}

	vector.StrokeRect(dst, float32(ox+s.view.X*scale), float32(oy+s.view.Y*scale),
		float32(s.view.W*scale), float32(s.view.H*scale), 1,
		color.NRGBA{0xff, 0xff, 0xff, 0xa0}, false)
}

// drawHUD paints the player count, session uptime, movement indicator and
// optional FPS readout along the bottom edge.
func (r *renderer) drawHUD(dst *ebiten.Image, s *Session) {
	y := float64(dst.Bounds().Dy()) - 20

	line := fmt.Sprintf("Players: %s", humanize.Comma(int64(s.store.count())))
	if up := durafmt.Parse(s.uptime().Truncate(time.Second)).LimitFirstN(2); up != nil {
		line += "   Up: " + up.String()
	}
	if s.input.moving() {
		line += "   Moving"
	}
	if gs.ShowFPS {
		line += fmt.Sprintf("   %0.0f FPS", ebiten.ActualFPS())
	}
	r.text(dst, line, 10, y, color.White)

	if !s.joined {
		r.text(dst, "Connecting...", 10, 10, color.NRGBA{0xff, 0xc0, 0xc0, 0xff})
	}
}

// drawClickTarget pulses a ring at the active click-move target. The pulse
// phase rides the animation clock.
func (r *renderer) drawClickTarget(dst *ebiten.Image, s *Session) {
	if !s.input.clickActive {
		return
	}
	sx := s.input.clickX - s.view.X
	sy := s.input.clickY - s.view.Y
	radius := 8 + 3*math.Sin(s.clock)
	vector.StrokeCircle(dst, float32(sx), float32(sy), float32(radius), 2,
		color.NRGBA{0x66, 0xd8, 0xff, 0xd0}, true)
}
