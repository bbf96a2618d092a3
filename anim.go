package main

import "math"

// walkFrames is the length of a walking cycle.
const walkFrames = 3

// animClockRate is how far the animation clock advances per game tick.
// floor(clock) mod walkFrames picks the frame, so one walk frame lasts
// about 1/rate ticks.
const animClockRate = 0.2

// frameIndex picks the sprite frame for a player. The local player gets a
// locally-driven walk cycle while moving, which stays smooth regardless of
// how often the server pushes updates. Everyone else shows whatever frame
// the server last reported.
func frameIndex(p Player, isLocal bool, clock float64) int {
	if isLocal && p.Moving {
		return int(math.Floor(clock)) % walkFrames
	}
	if p.Frame < 0 {
		return 0
	}
	return p.Frame
}

// frameRef resolves an avatar frame to its image reference. A miss (unknown
// direction or out-of-range index) means the player is skipped this frame;
// that is a transient condition, not an error.
func frameRef(a Avatar, dir Direction, idx int) (string, bool) {
	frames, ok := a.Frames[dir]
	if !ok || idx < 0 || idx >= len(frames) {
		return "", false
	}
	return frames[idx], true
}
