package main

import (
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// dirKeys maps each movement direction to its keyboard bindings.
var dirKeys = map[Direction][]ebiten.Key{
	DirUp:    {ebiten.KeyArrowUp, ebiten.KeyW},
	DirDown:  {ebiten.KeyArrowDown, ebiten.KeyS},
	DirLeft:  {ebiten.KeyArrowLeft, ebiten.KeyA},
	DirRight: {ebiten.KeyArrowRight, ebiten.KeyD},
}

// Game drives the frame loop. It owns the session and the drawing-side
// caches; Ebiten calls Update and Draw on the same goroutine, which is the
// only place session state is touched.
type Game struct {
	sess  *Session
	net   *netClient
	rend  *renderer
	cache *avatarCache

	prevDown map[Direction]bool
	names    map[string]string

	inboundDone bool

	// assetReady is flipped by loader goroutines when an avatar frame
	// finishes decoding; Update folds it back into the dirty flag.
	assetReady atomic.Bool
}

func newGame(sess *Session, net *netClient) *Game {
	g := &Game{
		sess:     sess,
		net:      net,
		rend:     newRenderer(),
		prevDown: make(map[Direction]bool),
		names:    make(map[string]string),
	}
	g.cache = newAvatarCache(func() { g.assetReady.Store(true) })
	sess.avatarsRegistered = func(avatars map[string]Avatar) {
		if gs.PrecacheAvatars {
			go g.cache.precache(avatars)
		}
	}
	return g
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.drainNetwork()
	g.pollInput()

	g.sess.clock += animClockRate
	g.sess.particles.tick()

	if g.assetReady.Swap(false) {
		g.sess.dirty = true
	}
	if g.sess.consumeDirty() {
		g.rebuildNames()
	}
	return nil
}

// drainNetwork applies every queued inbound message. A closed channel means
// the connection is gone for good; further sends are already no-ops.
func (g *Game) drainNetwork() {
	if g.net == nil || g.inboundDone {
		return
	}
	for {
		select {
		case data, ok := <-g.net.inbound():
			if !ok {
				g.inboundDone = true
				return
			}
			g.sess.handleMessage(data)
		default:
			return
		}
	}
}

// pollInput turns raw key and pointer transitions into session input
// events. Both bindings of a direction count as one key identity.
func (g *Game) pollInput() {
	for dir, keys := range dirKeys {
		down := false
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				down = true
				break
			}
		}
		if down && !g.prevDown[dir] {
			g.sess.keyDown(dir)
		} else if !down && g.prevDown[dir] {
			g.sess.keyUp(dir)
		}
		g.prevDown[dir] = down
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		g.sess.click(float64(mx), float64(my))
	}
}

func (g *Game) rebuildNames() {
	g.names = make(map[string]string, g.sess.store.count())
	for id, p := range g.sess.store.players {
		g.names[id] = g.sess.store.displayName(p)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	s := g.sess
	g.rend.drawBackground(screen, s.view)

	for id, p := range s.store.players {
		if !s.view.contains(p.X, p.Y, cullMargin) {
			continue
		}
		av, ok := s.store.avatar(p.Avatar)
		if !ok {
			continue
		}
		isLocal := id == s.localID
		idx := frameIndex(p, isLocal, s.clock)
		ref, ok := frameRef(av, p.Facing, idx)
		if !ok {
			continue
		}
		img, ok := g.cache.image(frameKey{avatar: av.Name, dir: p.Facing, idx: idx}, ref)
		if !ok {
			continue
		}
		fx, fy := g.rend.drawPlayer(screen, img, p, g.names[id], isLocal, s.view)
		if p.Moving {
			s.particles.spawn(fx, fy)
		}
	}

	s.particles.draw(screen)
	g.rend.drawClickTarget(screen, s)
	g.rend.drawMinimap(screen, s)
	g.rend.drawHUD(screen, s)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.sess.setViewSize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}
