package ecs_test

import "github.com/plus3/bloodfarm/ecs"

// Common test types
type Position struct {
	X, Y float32
}

type Body struct {
	Position
	DX, DY float32
}

type Health struct {
	Current int
	Max     int
}

// testWorld is the world every scheduler test runs against.
type testWorld struct {
	Bodies  *ecs.Arena[Body]
	Healths *ecs.Arena[Health]
	Trace   []string
}

func newTestWorld() *testWorld {
	return &testWorld{
		Bodies:  ecs.NewArena[Body](0),
		Healths: ecs.NewArena[Health](0),
	}
}
