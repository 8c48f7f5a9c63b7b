package editor

import (
	"time"

	"chart-board/pkg/geometry"
)

// LaserPoint is one transient point of the laser trail, kept in screen
// space because the trail follows the pointer, not the world.
type LaserPoint struct {
	At    geometry.Point2D
	Added time.Time
}

// appendLaser records a trail point. The trail never touches the scene or
// the history.
func (s *Session) appendLaser(screen geometry.Point2D) {
	s.laser = append(s.laser, LaserPoint{At: screen, Added: s.now()})
	s.emitScene()
}

// LaserPoints prunes aged-out points and returns a copy of the live trail.
func (s *Session) LaserPoints() []LaserPoint {
	s.pruneLaser()
	return append([]LaserPoint(nil), s.laser...)
}

// LaserActive reports whether any trail points are still alive, i.e. the
// canvas must keep scheduling repaint frames.
func (s *Session) LaserActive() bool {
	s.pruneLaser()
	return len(s.laser) > 0
}

// LaserFade returns the configured fade-out duration.
func (s *Session) LaserFade() time.Duration {
	return s.laserFade
}

// LaserAlpha returns the 0..1 opacity of a trail point at the given time,
// fading linearly to zero over the configured duration.
func (s *Session) LaserAlpha(p LaserPoint, at time.Time) float64 {
	age := at.Sub(p.Added)
	if age < 0 {
		return 1
	}
	if age >= s.laserFade {
		return 0
	}
	return 1 - float64(age)/float64(s.laserFade)
}

func (s *Session) pruneLaser() {
	cutoff := s.now().Add(-s.laserFade)
	keep := s.laser[:0]
	for _, p := range s.laser {
		if p.Added.After(cutoff) {
			keep = append(keep, p)
		}
	}
	s.laser = keep
}
