package anim

// Sprite plays an animation, advancing its own state time on Update.
type Sprite[T any] struct {
	anim      *Animation[T]
	stateTime float64
	playing   bool
}

// NewSprite creates a sprite that starts playing immediately.
func NewSprite[T any](a *Animation[T]) *Sprite[T] {
	return &Sprite[T]{anim: a, playing: true}
}

// Update advances the state time while playing.
func (s *Sprite[T]) Update(delta float64) {
	if s.playing {
		s.stateTime += delta
	}
}

// Frame returns the current frame.
func (s *Sprite[T]) Frame() T {
	return s.anim.KeyFrame(s.stateTime)
}

// Play resumes playback.
func (s *Sprite[T]) Play() { s.playing = true }

// Pause freezes the current frame.
func (s *Sprite[T]) Pause() { s.playing = false }

// Stop pauses and rewinds to the first frame.
func (s *Sprite[T]) Stop() {
	s.playing = false
	s.stateTime = 0
}

// IsPlaying reports whether Update advances the animation.
func (s *Sprite[T]) IsPlaying() bool {
	return s.playing
}

// IsFinished reports whether a non-looping animation reached its end.
func (s *Sprite[T]) IsFinished() bool {
	return s.anim.IsFinished(s.stateTime)
}

// SetAnimation swaps the animation and rewinds.
func (s *Sprite[T]) SetAnimation(a *Animation[T]) {
	s.anim = a
	s.stateTime = 0
}
