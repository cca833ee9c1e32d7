package ecs

// Commands buffers work that is executed at the end of a step, after every
// system has run. Systems use it to notify observers without exposing a
// half-updated world.
type Commands struct {
	defers []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Defer queues fn to run when the commands are flushed.
func (c *Commands) Defer(fn func()) {
	if fn == nil {
		return
	}
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.defers)
}

// Flush runs the queued operations in the order they were queued and resets
// the buffer. Operations queued while flushing run in the same flush.
func (c *Commands) Flush() {
	for i := 0; i < len(c.defers); i++ {
		c.defers[i]()
		c.defers[i] = nil
	}
	c.defers = c.defers[:0]
}
