package ecs_test

import (
	"fmt"

	"github.com/plus3/bloodfarm/ecs"
)

type counterWorld struct {
	Ticks int
	Log   []string
}

type tickSystem struct{}

func (tickSystem) Execute(frame *ecs.UpdateFrame[*counterWorld]) {
	frame.World.Ticks++
	step := frame.Step
	frame.Commands.Defer(func() {
		frame.World.Log = append(frame.World.Log, fmt.Sprintf("step %d done", step))
	})
}

// ExampleScheduler shows systems running once per step, with deferred work
// executed after every system has finished.
func ExampleScheduler() {
	world := &counterWorld{}
	scheduler := ecs.NewScheduler(world)
	scheduler.Register(tickSystem{})

	scheduler.Once(0.016)
	scheduler.Once(0.016)

	fmt.Println("ticks:", world.Ticks)
	for _, line := range world.Log {
		fmt.Println(line)
	}
	fmt.Println("system:", scheduler.Stats().Systems[0].Name)
	// Output:
	// ticks: 2
	// step 0 done
	// step 1 done
	// system: tickSystem
}

// ExampleArena shows that ids stay in creation order even after a freed
// slot is reused.
func ExampleArena() {
	arena := ecs.NewArena[string](0)
	a := arena.Insert("a")
	arena.Insert("b")
	_ = arena.Remove(a)
	arena.Insert("c")

	for id, name := range arena.All() {
		fmt.Println(id, *name)
	}
	// Output:
	// 2 b
	// 3 c
}
