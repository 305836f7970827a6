// Package anim provides frame animations and an animated sprite that keeps
// its own state time.
package anim

import "math"

// PlayMode controls how state time maps to a frame.
type PlayMode int

const (
	PlayNormal PlayMode = iota
	PlayReversed
	PlayLoop
	PlayLoopReversed
	PlayLoopPingPong
)

// ParsePlayMode converts a manifest name to a play mode. Unknown names play once.
func ParsePlayMode(name string) PlayMode {
	switch name {
	case "reversed":
		return PlayReversed
	case "loop":
		return PlayLoop
	case "loop-reversed":
		return PlayLoopReversed
	case "pingpong", "loop-pingpong":
		return PlayLoopPingPong
	default:
		return PlayNormal
	}
}

// Animation is a sequence of frames shown for a fixed duration each.
type Animation[T any] struct {
	frames        []T
	frameDuration float64
	mode          PlayMode
}

// New creates an animation. frameDuration is in seconds.
func New[T any](frameDuration float64, mode PlayMode, frames ...T) *Animation[T] {
	return &Animation[T]{
		frames:        frames,
		frameDuration: frameDuration,
		mode:          mode,
	}
}

// Len returns the number of frames.
func (a *Animation[T]) Len() int {
	return len(a.frames)
}

// Mode returns the play mode.
func (a *Animation[T]) Mode() PlayMode {
	return a.mode
}

// Duration returns the length of one pass over the frames.
func (a *Animation[T]) Duration() float64 {
	return float64(len(a.frames)) * a.frameDuration
}

// KeyFrameIndex returns the frame index shown at stateTime.
func (a *Animation[T]) KeyFrameIndex(stateTime float64) int {
	n := len(a.frames)
	if n <= 1 || a.frameDuration <= 0 {
		return 0
	}
	frame := int(math.Floor(stateTime / a.frameDuration))
	if frame < 0 {
		frame = 0
	}

	switch a.mode {
	case PlayNormal:
		return min(n-1, frame)
	case PlayReversed:
		return max(n-frame-1, 0)
	case PlayLoop:
		return frame % n
	case PlayLoopReversed:
		return n - frame%n - 1
	case PlayLoopPingPong:
		i := frame % ((n * 2) - 2)
		if i >= n {
			i = n - 2 - (i - n)
		}
		return i
	}
	return 0
}

// KeyFrame returns the frame shown at stateTime. An empty animation yields
// the zero value.
func (a *Animation[T]) KeyFrame(stateTime float64) T {
	var zero T
	if len(a.frames) == 0 {
		return zero
	}
	return a.frames[a.KeyFrameIndex(stateTime)]
}

// IsFinished reports whether a non-looping animation has played through.
func (a *Animation[T]) IsFinished(stateTime float64) bool {
	switch a.mode {
	case PlayNormal, PlayReversed:
		return stateTime >= a.Duration()
	}
	return false
}
