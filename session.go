package main

import (
	"encoding/json"
	"time"

	"golang.org/x/time/rate"
)

// moveRate limits outbound movement intents. Key presses are naturally
// sparse; the limiter mostly tames click spam.
const (
	moveRatePerSec = 15
	moveBurst      = 5
)

// Session owns the client-side mirror of one connection to the world
// service: the player store, viewport, particle pool, and input state. The
// frame-loop driver owns the Session; nothing here is a package global.
type Session struct {
	store     *playerStore
	view      viewport
	particles *particleSystem
	input     *inputState

	net     wire
	limiter *rate.Limiter
	metrics *sessionMetrics

	localID   string
	joined    bool
	startedAt time.Time

	// clock drives the local walk cycle; advances every game tick.
	clock float64

	// dirty marks that store contents changed since the last frame
	// consumed it. Mutations never render directly.
	dirty bool

	// avatarsRegistered is invoked whenever new avatar definitions land,
	// so the asset pipeline can start fetching frames. Optional.
	avatarsRegistered func(map[string]Avatar)
}

func newSession(net wire) *Session {
	return &Session{
		store:     newPlayerStore(),
		particles: newParticleSystem(time.Now().UnixNano()),
		input:     newInputState(),
		net:       net,
		limiter:   rate.NewLimiter(rate.Limit(moveRatePerSec), moveBurst),
		metrics:   &sessionMetrics{},
		startedAt: time.Now(),
	}
}

// setViewSize records the display surface size used by viewport recomputes.
func (s *Session) setViewSize(w, h float64) {
	if s.view.W == w && s.view.H == h {
		return
	}
	s.view.W = w
	s.view.H = h
	s.recomputeView()
}

func (s *Session) recomputeView() {
	var local *Player
	if s.joined {
		if p, ok := s.store.get(s.localID); ok {
			local = &p
		}
	}
	s.view = recomputeViewport(local, worldWidth, worldHeight, s.view.W, s.view.H)
}

// handleMessage applies one inbound message to local state. Malformed
// payloads and unknown actions are dropped; the connection stays up.
func (s *Session) handleMessage(data []byte) {
	var msg serverMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.metrics.incDropped()
		Log.Warnf("discarding malformed message: %v", err)
		return
	}
	switch msg.Action {
	case actJoinGame:
		s.handleJoinReply(msg)
	case actPlayerJoined:
		s.handlePlayerJoined(msg)
	case actPlayersMoved:
		s.handlePlayersMoved(msg)
	case actPlayerLeft:
		s.handlePlayerLeft(msg)
	default:
		s.metrics.incUnknown()
		Log.Debugf("ignoring unknown action %q", msg.Action)
		return
	}
	s.metrics.incHandled()
}

func (s *Session) handleJoinReply(msg serverMessage) {
	if !msg.Success {
		// No retry and no recovery path; the client stays pre-join.
		Log.Errorf("join rejected: %s", msg.Error)
		return
	}
	s.localID = msg.PlayerID
	s.joined = true
	s.store.applyFullSnapshot(msg.Players, msg.Avatars)
	s.recomputeView()
	s.dirty = true
	Log.Infof("joined as %s with %d players, %d avatars",
		msg.PlayerID, len(msg.Players), len(msg.Avatars))
	if s.avatarsRegistered != nil && len(msg.Avatars) > 0 {
		s.avatarsRegistered(msg.Avatars)
	}
}

func (s *Session) handlePlayerJoined(msg serverMessage) {
	if msg.Player == nil {
		s.metrics.incDropped()
		return
	}
	s.store.upsertPlayer(*msg.Player)
	if msg.Avatar != nil {
		s.store.registerAvatarIfAbsent(*msg.Avatar)
		if s.avatarsRegistered != nil {
			s.avatarsRegistered(map[string]Avatar{msg.Avatar.Name: *msg.Avatar})
		}
	}
	s.dirty = true
}

func (s *Session) handlePlayersMoved(msg serverMessage) {
	s.store.mergePositions(msg.Players)
	// The original client recentered whenever the local id was known, even
	// when only remote players moved. Recompute is idempotent, so the
	// conservative behavior is kept.
	if s.joined {
		s.recomputeView()
	}
	s.dirty = true
}

func (s *Session) handlePlayerLeft(msg serverMessage) {
	s.store.remove(msg.PlayerID)
	s.dirty = true
}

// consumeDirty reports and clears the dirty flag. Only the frame loop
// decides when state changes turn into rendering work.
func (s *Session) consumeDirty() bool {
	d := s.dirty
	s.dirty = false
	return d
}

// ready gates input handling on "connected and local identity known".
func (s *Session) ready() bool {
	return s.joined && s.net != nil && !s.net.isClosed()
}

// Input entry points, called by the frame loop with raw key and pointer
// transitions. Everything is ignored until the session is ready.

func (s *Session) keyDown(dir Direction) {
	if !s.ready() {
		return
	}
	s.input.keyDown(dir, s)
}

func (s *Session) keyUp(dir Direction) {
	if !s.ready() {
		return
	}
	s.input.keyUp(dir, s)
}

func (s *Session) click(sx, sy float64) {
	if !s.ready() {
		return
	}
	s.input.click(sx, sy, s.view, s)
}

// Outbound intents. Each is a no-op when the transport is not open.

func (s *Session) sendJoin(username string) {
	s.write(encodeJoin(username))
}

func (s *Session) sendMove(dir Direction) {
	if !s.limiter.Allow() {
		s.metrics.incLimited()
		return
	}
	s.write(encodeMove(dir))
}

func (s *Session) sendMoveTo(x, y float64) {
	if !s.limiter.Allow() {
		s.metrics.incLimited()
		return
	}
	s.write(encodeMoveTo(x, y))
}

func (s *Session) sendStop() {
	s.write(encodeStop())
}

func (s *Session) write(b []byte) {
	if s.net == nil || s.net.isClosed() {
		return
	}
	if s.net.send(b) {
		s.metrics.incSent()
	}
}

func (s *Session) localPlayer() (Player, bool) {
	if !s.joined {
		return Player{}, false
	}
	return s.store.get(s.localID)
}

func (s *Session) uptime() time.Duration {
	return time.Since(s.startedAt)
}
