package main

import "testing"

func TestFrameIndexLocalMovingUsesClock(t *testing.T) {
	p := Player{Moving: true, Frame: 2}
	tests := []struct {
		clock float64
		want  int
	}{
		{0, 0},
		{0.9, 0},
		{1.0, 1},
		{2.5, 2},
		{3.0, 0},
		{7.2, 1},
	}
	for _, tt := range tests {
		if got := frameIndex(p, true, tt.clock); got != tt.want {
			t.Errorf("frameIndex(clock=%v)=%d, want %d", tt.clock, got, tt.want)
		}
	}
}

func TestFrameIndexRemoteUsesServerFrame(t *testing.T) {
	p := Player{Moving: true, Frame: 2}
	if got := frameIndex(p, false, 99); got != 2 {
		t.Errorf("remote frame = %d, want 2", got)
	}
	p.Frame = -1
	if got := frameIndex(p, false, 99); got != 0 {
		t.Errorf("missing server frame = %d, want default 0", got)
	}
}

func TestFrameIndexLocalIdleUsesServerFrame(t *testing.T) {
	p := Player{Moving: false, Frame: 1}
	if got := frameIndex(p, true, 42); got != 1 {
		t.Errorf("idle local frame = %d, want 1", got)
	}
}

func TestFrameRefMisses(t *testing.T) {
	a := Avatar{Name: "av", Frames: map[Direction][]string{
		DirDown: {"d0", "d1", "d2"},
	}}

	if ref, ok := frameRef(a, DirDown, 1); !ok || ref != "d1" {
		t.Fatalf("frameRef hit = %q,%v", ref, ok)
	}
	if _, ok := frameRef(a, DirUp, 0); ok {
		t.Error("unknown direction reported as hit")
	}
	if _, ok := frameRef(a, DirDown, 3); ok {
		t.Error("out-of-range index reported as hit")
	}
	if _, ok := frameRef(a, DirDown, -1); ok {
		t.Error("negative index reported as hit")
	}
	if _, ok := frameRef(Avatar{}, Direction("sideways"), 0); ok {
		t.Error("empty avatar reported as hit")
	}
}
