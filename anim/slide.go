// Package anim animates the game-over banner.
package anim

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	DefaultDuration = float32(2)
	DefaultStep     = float32(0.1)
)

// Slide moves a banner from above its resting place down to offset 0.
// It advances in fixed steps: a frame shorter than one step does not move it.
type Slide struct {
	start    float32
	duration float32
	step     float32
	steps    int

	tween   *gween.Tween
	offset  float32
	acc     float32
	done    int
	running bool
}

// NewSlide starts the banner 1.25 half-heights above rest
func NewSlide(textHeight, duration, step float32) *Slide {
	if step <= 0 {
		step = DefaultStep
	}
	steps := int(math.Floor(float64(duration)/float64(step) + 1e-6))
	if steps < 1 {
		steps = 1
	}
	s := &Slide{
		start:    textHeight / 2 * 1.25,
		duration: float32(steps) * step,
		step:     step,
		steps:    steps,
	}
	s.Reset()
	return s
}

// Reset parks the banner at its start offset without moving it
func (s *Slide) Reset() {
	s.tween = gween.New(s.start, 0, s.duration, ease.Linear)
	s.offset = s.start
	s.acc = 0
	s.done = 0
	s.running = false
}

func (s *Slide) Start() {
	s.Reset()
	s.running = true
}

// Update advances by dt seconds and returns the current offset
func (s *Slide) Update(dt float32) float32 {
	if !s.running {
		return s.offset
	}
	s.acc += dt
	for s.running && s.acc >= s.step {
		s.acc -= s.step
		s.done++
		current, finished := s.tween.Update(s.step)
		s.offset = current
		if finished || s.done >= s.steps {
			s.offset = 0
			s.running = false
		}
	}
	return s.offset
}

func (s *Slide) Offset() float32 { return s.offset }
func (s *Slide) Running() bool   { return s.running }
func (s *Slide) Finished() bool  { return s.done >= s.steps }
func (s *Slide) Steps() int      { return s.steps }
