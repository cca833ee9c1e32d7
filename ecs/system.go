package ecs

// System represents a behavior that runs once per step against the world W.
// Systems may keep custom state in their own fields between steps.
type System[W any] interface {
	Execute(frame *UpdateFrame[W])
}

// SystemFunc adapts a plain function to the System interface.
type SystemFunc[W any] func(frame *UpdateFrame[W])

// Execute calls f(frame).
func (f SystemFunc[W]) Execute(frame *UpdateFrame[W]) {
	f(frame)
}
