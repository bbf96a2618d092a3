package main

// intentSender is the outbound side the input state machine talks to. The
// live implementation serializes intents onto the wire; tests substitute a
// recorder.
type intentSender interface {
	sendMove(dir Direction)
	sendMoveTo(x, y float64)
	sendStop()
}

// inputState tracks held directional keys and the single in-flight click
// target. It never mutates player positions; it only emits intents, and the
// server answers with authoritative snapshots.
type inputState struct {
	held map[Direction]bool

	clickActive bool
	clickX      float64
	clickY      float64
}

func newInputState() *inputState {
	return &inputState{held: make(map[Direction]bool)}
}

// keyDown handles a press of a directional key. Repeats for an
// already-held direction are ignored. Starting key movement ends the
// click-target indicator; the server arbitrates actual movement.
func (in *inputState) keyDown(dir Direction, s intentSender) {
	if in.held[dir] {
		return
	}
	in.held[dir] = true
	in.clickActive = false
	s.sendMove(dir)
}

// keyUp handles a release. Only when no direction remains held does a
// single stop intent go out.
func (in *inputState) keyUp(dir Direction, s intentSender) {
	if !in.held[dir] {
		return
	}
	delete(in.held, dir)
	if !in.anyHeld() {
		s.sendStop()
	}
}

// click converts a surface position to a clamped world target, records it,
// and asks the server to walk there.
func (in *inputState) click(sx, sy float64, view viewport, s intentSender) {
	wx, wy := view.screenToWorld(sx, sy)
	in.clickActive = true
	in.clickX = wx
	in.clickY = wy
	s.sendMoveTo(wx, wy)
}

func (in *inputState) anyHeld() bool {
	return len(in.held) > 0
}

// moving is the derived best-effort flag behind the HUD movement
// indicator.
func (in *inputState) moving() bool {
	return in.anyHeld() || in.clickActive
}
