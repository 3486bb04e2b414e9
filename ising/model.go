// Package ising defines synthetic Ising models. A model couples a
// fixed-topology undirected graph with a mutable ±1 spin state and the
// parameters of the Boltzmann distribution that Gibbs sampling targets.
// See arXiv:1602.07415 for the sampling scheme the models are built for.
package ising

import (
	"log"
	"math"
	"math/rand"
)

// Spin is the value of a single vertex, always +1 or -1.
type Spin = int8

// A Model is an Ising model over a fixed graph. The adjacency structure is
// immutable after construction. The spin state is mutated in place by
// samplers, possibly from multiple goroutines without synchronization.
type Model struct {
	// Beta is the inverse temperature that scales neighbor interactions.
	Beta float64

	// Prior is the external field weight applied uniformly to all vertices.
	Prior float64

	adjacency [][]int32
	spins     []Spin
}

// NewModel creates a Model over the given adjacency structure. The adjacency
// must be symmetric, self-loop free, and in range. All spins start at +1.
func NewModel(adjacency [][]int32, beta, prior float64) *Model {
	adjacencyMustBeValid(adjacency)

	m := &Model{
		Beta:      beta,
		Prior:     prior,
		adjacency: adjacency,
		spins:     make([]Spin, len(adjacency)),
	}

	for i := range m.spins {
		m.spins[i] = 1
	}

	return m
}

func adjacencyMustBeValid(adjacency [][]int32) {
	numVertices := len(adjacency)

	for u, neighbors := range adjacency {
		for _, v := range neighbors {
			if int(v) < 0 || int(v) >= numVertices {
				log.Panicf("vertex %d has out-of-range neighbor %d", u, v)
			}

			if int(v) == u {
				log.Panicf("vertex %d has a self loop", u)
			}

			if !contains(adjacency[v], int32(u)) {
				log.Panicf("edge (%d, %d) is not symmetric", u, v)
			}
		}
	}
}

func contains(neighbors []int32, v int32) bool {
	for _, n := range neighbors {
		if n == v {
			return true
		}
	}

	return false
}

// NumVertices returns the number of vertices in the model graph.
func (m *Model) NumVertices() int {
	return len(m.adjacency)
}

// Neighbors returns the neighbor list of vertex v. The returned slice must
// not be modified.
func (m *Model) Neighbors(v int) []int32 {
	return m.adjacency[v]
}

// Adjacency returns the full adjacency structure. The returned slices must
// not be modified.
func (m *Model) Adjacency() [][]int32 {
	return m.adjacency
}

// Spin returns the current spin of vertex v.
func (m *Model) Spin(v int) Spin {
	return m.spins[v]
}

// SetSpin assigns the spin of vertex v.
func (m *Model) SetSpin(v int, s Spin) {
	if s != 1 && s != -1 {
		log.Panicf("spin must be +1 or -1, got %d", s)
	}

	m.spins[v] = s
}

// RandomizeSpins draws a fresh ±1 state for every vertex.
func (m *Model) RandomizeSpins(rng *rand.Rand) {
	for i := range m.spins {
		if rng.Intn(2) == 0 {
			m.spins[i] = 1
		} else {
			m.spins[i] = -1
		}
	}
}

// SetUniformSpins assigns the same spin to every vertex.
func (m *Model) SetUniformSpins(s Spin) {
	for i := range m.spins {
		m.SetSpin(i, s)
	}
}

// LocalField returns the field acting on vertex v given the current state of
// its neighbors. The neighbor spins may be concurrently mutated by other
// goroutines; the value read is whatever happens to be in memory.
func (m *Model) LocalField(v int) float64 {
	sum := 0
	for _, n := range m.adjacency[v] {
		sum += int(m.spins[n])
	}

	return m.Prior + m.Beta*float64(sum)
}

// UpProbability returns the conditional probability that vertex v takes spin
// +1 given the current spins of its neighbors.
func (m *Model) UpProbability(v int) float64 {
	return 1.0 / (1.0 + math.Exp(-2.0*m.LocalField(v)))
}

// Magnetization returns the mean spin over all vertices, in [-1, 1].
func (m *Model) Magnetization() float64 {
	sum := 0
	for _, s := range m.spins {
		sum += int(s)
	}

	return float64(sum) / float64(len(m.spins))
}

// InteractionEnergy returns the negated sum of s_u*s_v over all edges. The
// external field term is not included.
func (m *Model) InteractionEnergy() float64 {
	sum := 0
	for u, neighbors := range m.adjacency {
		for _, v := range neighbors {
			sum += int(m.spins[u]) * int(m.spins[v])
		}
	}

	// Each undirected edge is counted from both endpoints.
	return -float64(sum) / 2.0
}
