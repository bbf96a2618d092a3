package main

import "testing"

type recordSender struct {
	moves   []Direction
	moveTos [][2]float64
	stops   int
}

func (r *recordSender) sendMove(dir Direction)  { r.moves = append(r.moves, dir) }
func (r *recordSender) sendMoveTo(x, y float64) { r.moveTos = append(r.moveTos, [2]float64{x, y}) }
func (r *recordSender) sendStop()               { r.stops++ }

func TestKeyStateStopGating(t *testing.T) {
	in := newInputState()
	s := &recordSender{}

	in.keyDown(DirUp, s)
	in.keyDown(DirLeft, s)
	in.keyUp(DirUp, s)
	if s.stops != 0 {
		t.Fatalf("stop sent while left still held")
	}
	in.keyUp(DirLeft, s)
	if s.stops != 1 {
		t.Fatalf("stops = %d, want exactly 1", s.stops)
	}
	if len(s.moves) != 2 || s.moves[0] != DirUp || s.moves[1] != DirLeft {
		t.Fatalf("moves = %v", s.moves)
	}
}

func TestKeyDownRepeatIgnored(t *testing.T) {
	in := newInputState()
	s := &recordSender{}

	in.keyDown(DirRight, s)
	in.keyDown(DirRight, s)
	if len(s.moves) != 1 {
		t.Fatalf("repeat press emitted %d moves", len(s.moves))
	}
}

func TestKeyUpWithoutDownIgnored(t *testing.T) {
	in := newInputState()
	s := &recordSender{}

	in.keyUp(DirDown, s)
	if s.stops != 0 {
		t.Fatalf("stop sent for a key that was never down")
	}
}

func TestClickRecordsClampedTarget(t *testing.T) {
	in := newInputState()
	s := &recordSender{}
	view := viewport{X: 1248, Y: 1448, W: 800, H: 600}

	in.click(790, 590, view, s)
	if !in.clickActive {
		t.Fatal("click target not active")
	}
	if len(s.moveTos) != 1 {
		t.Fatalf("moveTos = %v", s.moveTos)
	}
	got := s.moveTos[0]
	if got[0] > worldWidth || got[1] > worldHeight {
		t.Fatalf("target (%v,%v) outside world", got[0], got[1])
	}
	if got[0] != in.clickX || got[1] != in.clickY {
		t.Fatalf("recorded target (%v,%v) != sent (%v,%v)", in.clickX, in.clickY, got[0], got[1])
	}
}

func TestKeyDownCancelsClickIndicator(t *testing.T) {
	in := newInputState()
	s := &recordSender{}

	in.click(100, 100, viewport{W: 800, H: 600}, s)
	if !in.clickActive {
		t.Fatal("click target not active")
	}
	in.keyDown(DirUp, s)
	if in.clickActive {
		t.Fatal("click indicator survived key movement")
	}
}

func TestMovingFlag(t *testing.T) {
	in := newInputState()
	s := &recordSender{}

	if in.moving() {
		t.Fatal("idle input reports moving")
	}
	in.keyDown(DirUp, s)
	if !in.moving() {
		t.Fatal("held key not reported as moving")
	}
	in.keyUp(DirUp, s)
	if in.moving() {
		t.Fatal("released input still reports moving")
	}
	in.click(10, 10, viewport{W: 800, H: 600}, s)
	if !in.moving() {
		t.Fatal("active click target not reported as moving")
	}
}
