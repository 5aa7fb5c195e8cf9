// Package resource holds the life-support resource model: a generic three-field vector
// used both for current levels (unsigned) and for signed per-interval deltas
package resource

import (
	"golang.org/x/exp/constraints"
)

// Number constrains Vector to plain numeric element types
type Number interface {
	constraints.Integer | constraints.Float
}

// Vector describes oxygen, energy and life of one quantity
// Use Levels (uint16) for amounts and Delta (int16) for change rates
type Vector[T Number] struct {
	Oxygen T `yaml:"oxygen" json:"oxygen"`
	Energy T `yaml:"energy" json:"energy"`
	Life   T `yaml:"life" json:"life"`
}

// Levels is the current amount of each resource
type Levels = Vector[uint16]

// Delta is a signed change applied to the resource accumulator
type Delta = Vector[int16]

// Add returns a+b component-wise, element overflow semantics apply
func Add[T Number](a, b Vector[T]) Vector[T] {
	return Vector[T]{
		Oxygen: a.Oxygen + b.Oxygen,
		Energy: a.Energy + b.Energy,
		Life:   a.Life + b.Life,
	}
}

// Sub returns a-b component-wise, element overflow semantics apply
func Sub[T Number](a, b Vector[T]) Vector[T] {
	return Vector[T]{
		Oxygen: a.Oxygen - b.Oxygen,
		Energy: a.Energy - b.Energy,
		Life:   a.Life - b.Life,
	}
}

func (v Vector[T]) Add(o Vector[T]) Vector[T] { return Add(v, o) }

func (v Vector[T]) Sub(o Vector[T]) Vector[T] { return Sub(v, o) }

// IsZero reports whether all three components are zero
func (v Vector[T]) IsZero() bool {
	return v.Oxygen == 0 && v.Energy == 0 && v.Life == 0
}

// Values returns the components in oxygen, energy, life order
func (v Vector[T]) Values() [3]T {
	return [3]T{v.Oxygen, v.Energy, v.Life}
}

// FromValues builds a vector from oxygen, energy, life order
func FromValues[T Number](vals [3]T) Vector[T] {
	return Vector[T]{Oxygen: vals[0], Energy: vals[1], Life: vals[2]}
}
