package tui

import "github.com/charmbracelet/harmonica"

// swayField eases every degree of freedom toward its target offset with
// one shared spring, so mode switches blend instead of jumping.
type swayField struct {
	spring harmonica.Spring
	pos    []float64
	vel    []float64
}

func newSwayField(fps int, frequency, damping float64) swayField {
	return swayField{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)}
}

func (s *swayField) resize(n int) {
	if len(s.pos) == n {
		return
	}
	s.pos = make([]float64, n)
	s.vel = make([]float64, n)
}

func (s *swayField) follow(targets []float64) {
	for i, t := range targets {
		if i >= len(s.pos) {
			return
		}
		s.pos[i], s.vel[i] = s.spring.Update(s.pos[i], s.vel[i], t)
	}
}
