package farm

// ActionState is the per-step state of an edge-triggered action.
type ActionState uint8

const (
	// Idle means the action is not active this step.
	Idle ActionState = iota
	// JustActivated means the action became active this step.
	JustActivated
	// Held means the action was already active on the previous step.
	Held
)

func (s ActionState) String() string {
	switch s {
	case Idle:
		return "idle"
	case JustActivated:
		return "just-activated"
	case Held:
		return "held"
	default:
		return "unknown"
	}
}

// Active reports whether the action is active this step.
func (s ActionState) Active() bool {
	return s == JustActivated || s == Held
}

// NextActionState derives this step's state from the previous and current raw
// signals.
func NextActionState(previous, current bool) ActionState {
	switch {
	case !current:
		return Idle
	case previous:
		return Held
	default:
		return JustActivated
	}
}

// RawInput is the level signal of every action, as polled by a frontend.
type RawInput struct {
	Up, Down, Left, Right bool
	Spawn                 bool
}

// InputSnapshot is what the systems consume during a step.
type InputSnapshot struct {
	Up, Down, Left, Right bool
	Spawn                 ActionState
}

// InputTracker turns raw level signals into snapshots by remembering the
// previous step's spawn signal.
type InputTracker struct {
	spawnPrev bool
}

// Next returns the snapshot for this step and remembers raw for the next one.
func (t *InputTracker) Next(raw RawInput) InputSnapshot {
	snapshot := InputSnapshot{
		Up:    raw.Up,
		Down:  raw.Down,
		Left:  raw.Left,
		Right: raw.Right,
		Spawn: NextActionState(t.spawnPrev, raw.Spawn),
	}
	t.spawnPrev = raw.Spawn
	return snapshot
}

// Reset forgets the previous signal, so a held action is seen as newly
// activated on the next step.
func (t *InputTracker) Reset() {
	t.spawnPrev = false
}

// Held returns raw input for a step in which the frontend cannot read the
// keyboard: movement is released and the spawn signal stays at its last
// level, so regaining focus with the key down is not a new press.
func (t *InputTracker) Held() RawInput {
	return RawInput{Spawn: t.spawnPrev}
}
