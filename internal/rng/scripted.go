package rng

// Scripted replays fixed draws. Once the script runs out it keeps returning
// the fallback value. Intended for tests that need exact outcomes.
type Scripted struct {
	Floats   []float64
	Ints     []int
	Fallback float64

	floatPos int
	intPos   int
}

// Script returns a Scripted source that yields floats in order.
func Script(floats ...float64) *Scripted {
	return &Scripted{Floats: floats, Fallback: 0.999}
}

func (s *Scripted) Float64() float64 {
	if s.floatPos < len(s.Floats) {
		v := s.Floats[s.floatPos]
		s.floatPos++
		return v
	}
	return s.Fallback
}

// IntN returns the next scripted int modulo n, or derives one from the
// next float when no ints are scripted.
func (s *Scripted) IntN(n int) int {
	if s.intPos < len(s.Ints) {
		v := s.Ints[s.intPos]
		s.intPos++
		return ((v % n) + n) % n
	}
	return min(int(s.Float64()*float64(n)), n-1)
}

func (s *Scripted) Uint64() uint64 {
	return uint64(s.Float64() * (1 << 53))
}

// Consumed reports how many float draws were taken.
func (s *Scripted) Consumed() int { return s.floatPos }
