// Package farm implements the Blood Harvester Farm simulation: a player walks
// the plane, spends currency to plant brains, and every brain pays back more
// than it cost once its lifetime runs out.
//
// A Session owns the World and runs three systems per step, always in this
// order: MovementSystem, SpawnSystem, LifetimeSystem.
package farm
