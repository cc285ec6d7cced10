package arena

// stubSource replays scripted values so tests can steer the engine exactly.
type stubSource struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (s *stubSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[s.fi%len(s.floats)]
	s.fi++
	return v
}

func (s *stubSource) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[s.ii%len(s.ints)]
	s.ii++
	return v % n
}

var _ Source = (*stubSource)(nil)
