package main

import "github.com/plus3/bloodfarm/farm"

// Script produces a deterministic input sequence: the player walks a square
// and taps the spawn action at a fixed cadence.
type Script struct {
	SpawnEvery int
	TurnEvery  int
}

var walk = [...]farm.RawInput{
	{Right: true},
	{Up: true},
	{Left: true},
	{Down: true},
}

// Input returns the raw input for step. A spawn press lasts a single step so
// that every press is a fresh activation.
func (s Script) Input(step int) farm.RawInput {
	var raw farm.RawInput
	if s.TurnEvery > 0 {
		raw = walk[(step/s.TurnEvery)%len(walk)]
	}
	if s.SpawnEvery > 0 && step%s.SpawnEvery == 0 {
		raw.Spawn = true
	}
	return raw
}
