package farm

import (
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/plus3/bloodfarm/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	press   = RawInput{Spawn: true}
	release = RawInput{}
)

func newTestSession(t testing.TB, mutate ...func(*Config)) *Session {
	t.Helper()

	cfg := DefaultConfig()
	for _, m := range mutate {
		m(&cfg)
	}

	session, err := NewSession(cfg, WithLogger(slog.New(slog.DiscardHandler)))
	require.NoError(t, err)
	return session
}

func withBalance(balance float32) func(*Config) {
	return func(c *Config) { c.StartingBalance = balance }
}

func TestMove(t *testing.T) {
	tests := []struct {
		name  string
		input InputSnapshot
		want  Vec2
	}{
		{"idle", InputSnapshot{}, Vec2{X: 1, Y: 1}},
		{"up", InputSnapshot{Up: true}, Vec2{X: 1, Y: 51}},
		{"down", InputSnapshot{Down: true}, Vec2{X: 1, Y: -49}},
		{"left", InputSnapshot{Left: true}, Vec2{X: -49, Y: 1}},
		{"right", InputSnapshot{Right: true}, Vec2{X: 51, Y: 1}},
		{"up and right", InputSnapshot{Up: true, Right: true}, Vec2{X: 51, Y: 51}},
		{"up and down cancel", InputSnapshot{Up: true, Down: true}, Vec2{X: 1, Y: 1}},
		{"left and right cancel", InputSnapshot{Left: true, Right: true}, Vec2{X: 1, Y: 1}},
		{"everything cancels", InputSnapshot{Up: true, Down: true, Left: true, Right: true}, Vec2{X: 1, Y: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			player := Player{Position: Vec2{X: 1, Y: 1}, Speed: 100}
			Move(&player, tt.input, 0.5)
			assert.Equal(t, tt.want, player.Position)
		})
	}

	t.Run("opposite presses cancel at any position", func(t *testing.T) {
		player := Player{Position: Vec2{X: 0.1, Y: 1234.567}, Speed: 333.3}
		Move(&player, InputSnapshot{Up: true, Down: true}, 0.0173)
		assert.Equal(t, float32(1234.567), player.Position.Y)
	})

	t.Run("no clamping", func(t *testing.T) {
		player := Player{Speed: 100}
		for range 100 {
			Move(&player, InputSnapshot{Left: true}, 1)
		}
		assert.Equal(t, float32(-10000), player.Position.X)
	})
}

func TestSpawnSystem(t *testing.T) {
	t.Run("balance equal to cost succeeds", func(t *testing.T) {
		s := newTestSession(t, withBalance(10))
		s.Step(0, press)

		assert.Equal(t, float32(0), s.World().Economy.Balance())
		assert.Equal(t, 1, s.World().Registry.Len())
	})

	t.Run("balance one below cost is rejected", func(t *testing.T) {
		s := newTestSession(t, withBalance(9))
		s.Step(0, press)

		assert.Equal(t, float32(9), s.World().Economy.Balance())
		assert.Equal(t, 0, s.World().Registry.Len())
		assert.Equal(t, 1, s.Ledger().Rejected)
	})

	t.Run("balance of five rejects a spawn costing ten", func(t *testing.T) {
		s := newTestSession(t, withBalance(5))
		s.Step(0.1, press)

		assert.Equal(t, float32(5), s.World().Economy.Balance())
		assert.Equal(t, 0, s.World().Registry.Len())
	})

	t.Run("holding the action spawns once", func(t *testing.T) {
		s := newTestSession(t)
		for range 5 {
			s.Step(0.01, press)
		}
		assert.Equal(t, 1, s.World().Registry.Len())
		assert.Equal(t, float32(90), s.World().Economy.Balance())

		s.Step(0.01, release)
		s.Step(0.01, press)
		assert.Equal(t, 2, s.World().Registry.Len())
		assert.Equal(t, float32(80), s.World().Economy.Balance())
	})

	t.Run("brain appears where the player stands after moving", func(t *testing.T) {
		s := newTestSession(t)
		s.Step(0.5, RawInput{Right: true, Up: true, Spawn: true})

		brains := s.World().Registry.Brains()
		require.Len(t, brains, 1)
		assert.Equal(t, Vec2{X: 50, Y: 50}, brains[0].Position)
	})

	t.Run("runs out of money", func(t *testing.T) {
		s := newTestSession(t)
		for range 12 {
			s.Step(0, press)
			s.Step(0, release)
		}
		assert.Equal(t, 10, s.World().Registry.Len())
		assert.Equal(t, float32(0), s.World().Economy.Balance())
		assert.Equal(t, 2, s.Ledger().Rejected)
	})
}

func TestLifetimeSystem(t *testing.T) {
	t.Run("round trip nets the margin", func(t *testing.T) {
		s := newTestSession(t)

		s.Step(0.5, press)
		assert.Equal(t, float32(90), s.World().Economy.Balance())

		s.Step(0.5, release)
		s.Step(0.5, release)
		assert.Equal(t, float32(90), s.World().Economy.Balance())
		assert.Equal(t, 1, s.World().Registry.Len())

		s.Step(0.5, release)
		assert.Equal(t, float32(105), s.World().Economy.Balance())
		assert.Equal(t, 0, s.World().Registry.Len())

		ledger := s.Ledger()
		assert.Equal(t, 1, ledger.Spawned)
		assert.Equal(t, 1, ledger.Expired)
		assert.Equal(t, float32(5), ledger.Net())
	})

	t.Run("countdown matches elapsed time", func(t *testing.T) {
		s := newTestSession(t)
		s.Step(0, press)

		for _, dt := range []float64{0.25, 0.5, 0.125} {
			before := s.World().Registry.Brains()[0].Remaining
			s.Step(dt, release)
			after := s.World().Registry.Brains()[0].Remaining
			assert.Equal(t, before-dt, after)
		}
	})

	t.Run("spawns expire and pay out in creation order", func(t *testing.T) {
		s := newTestSession(t)

		var expired []BrainExpired
		ecs.Subscribe(s.Events(), func(ev BrainExpired) {
			expired = append(expired, ev)
		})

		var spawned []ecs.EntityId
		ecs.Subscribe(s.Events(), func(ev BrainSpawned) {
			spawned = append(spawned, ev.Id)
		})

		s.Step(0, press)
		s.Step(0.1, release)
		s.Step(0, press)
		require.Len(t, spawned, 2)
		assert.Equal(t, float32(80), s.World().Economy.Balance())

		for range 100 {
			s.Step(0.1, release)
		}

		require.Len(t, expired, 2)
		assert.Equal(t, spawned[0], expired[0].Id)
		assert.Equal(t, spawned[1], expired[1].Id)
		assert.Equal(t, float32(95), expired[0].Balance)
		assert.Equal(t, float32(110), expired[1].Balance)
		assert.Less(t, expired[0].Step, expired[1].Step)
	})

	t.Run("simultaneous expiries keep creation order", func(t *testing.T) {
		s := newTestSession(t)

		var order []ecs.EntityId
		var balances []float32
		ecs.Subscribe(s.Events(), func(ev BrainExpired) {
			order = append(order, ev.Id)
			balances = append(balances, ev.Balance)
		})

		var spawned []ecs.EntityId
		ecs.Subscribe(s.Events(), func(ev BrainSpawned) {
			spawned = append(spawned, ev.Id)
		})

		s.Step(0, press)
		s.Step(0.1, release)
		s.Step(0, press)
		s.Step(5, release)

		assert.Equal(t, spawned, order)
		assert.Equal(t, []float32{95, 110}, balances)
		assert.Equal(t, 0, s.World().Registry.Len())
	})

	t.Run("removed brains are never paid", func(t *testing.T) {
		s := newTestSession(t)
		s.Step(0, press)

		id := s.World().Registry.Brains()[0].Id
		require.NoError(t, s.World().Registry.Remove(id))

		assert.NotPanics(t, func() { s.Step(5, release) })
		assert.Equal(t, float32(90), s.World().Economy.Balance())
	})
}

func TestBalanceNeverNegative(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for _, start := range []float32{0, 5, 10, 25, 100} {
		s := newTestSession(t, withBalance(start))
		for step := range 2000 {
			raw := RawInput{
				Up:    rng.IntN(2) == 0,
				Down:  rng.IntN(2) == 0,
				Left:  rng.IntN(2) == 0,
				Right: rng.IntN(2) == 0,
				Spawn: rng.IntN(2) == 0,
			}
			s.Step(rng.Float64()*0.2, raw)
			require.GreaterOrEqual(t, s.World().Economy.Balance(), float32(0), "start=%v step=%d", start, step)
		}

		ledger := s.Ledger()
		live := s.World().Registry.Len()
		assert.Equal(t, ledger.Spawned, ledger.Expired+live)
		assert.InDelta(t, float64(start+ledger.Net()), float64(s.World().Economy.Balance()), 1e-2)
	}
}
