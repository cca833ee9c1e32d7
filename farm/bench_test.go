package farm

import "testing"

func BenchmarkSessionStep(b *testing.B) {
	s := newTestSession(b, withBalance(1e9))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Step(0.016, RawInput{Right: true, Spawn: i%2 == 0})
	}
}

func BenchmarkRegistryTickAll(b *testing.B) {
	r := NewRegistry(Player{})
	for range 1000 {
		r.Spawn(Vec2{}, 1e12)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.TickAll(0.016)
	}
}
