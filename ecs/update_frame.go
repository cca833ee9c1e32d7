package ecs

// UpdateFrame is handed to every system during a single step.
// World is the state owned by the scheduler; Commands collects work that must
// only run after every system of the step has finished.
type UpdateFrame[W any] struct {
	DeltaTime float64
	Step      uint64
	World     W
	Commands  *Commands
}
