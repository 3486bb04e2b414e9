package ising

import (
	"log"
	"math/rand"
)

// RandomGraphConfig describes a random graph with a hard bound on vertex
// degrees. Edges are inserted by rejection sampling over vertex pairs, so the
// generated graphs are bounded-degree but not regular.
type RandomGraphConfig struct {
	// NumVertices is the number of vertices in the graph.
	NumVertices int

	// MaxDegree is the maximum degree of any vertex.
	MaxDegree int

	// MaxEdges caps the number of edge insertions. Zero means
	// NumVertices*NumVertices.
	MaxEdges int

	// MaxTries caps the number of consecutive rejected pairs before the
	// generator gives up and returns the graph built so far. Zero means
	// NumVertices*NumVertices.
	MaxTries int
}

// Generate builds the adjacency structure of a random bounded-degree graph.
// The generator keeps drawing random vertex pairs, rejecting self loops,
// duplicate edges, and pairs that would push an endpoint over MaxDegree.
// Generation stops once MaxEdges edges are placed or MaxTries consecutive
// draws are rejected, whichever comes first.
func (c RandomGraphConfig) Generate(rng *rand.Rand) [][]int32 {
	c.mustBeValid()

	maxEdges := c.MaxEdges
	if maxEdges == 0 {
		maxEdges = c.NumVertices * c.NumVertices
	}

	maxTries := c.MaxTries
	if maxTries == 0 {
		maxTries = c.NumVertices * c.NumVertices
	}

	adjacency := make([][]int32, c.NumVertices)

	for i := 0; i < maxEdges; i++ {
		u, v, ok := c.drawEdge(adjacency, rng, maxTries)
		if !ok {
			return adjacency
		}

		adjacency[u] = append(adjacency[u], int32(v))
		adjacency[v] = append(adjacency[v], int32(u))
	}

	return adjacency
}

func (c RandomGraphConfig) drawEdge(
	adjacency [][]int32,
	rng *rand.Rand,
	maxTries int,
) (u, v int, ok bool) {
	u = rng.Intn(c.NumVertices)
	v = rng.Intn(c.NumVertices)

	numTries := 0
	for !c.edgeIsInsertable(adjacency, u, v) {
		u = rng.Intn(c.NumVertices)
		v = rng.Intn(c.NumVertices)

		numTries++
		if numTries >= maxTries {
			return 0, 0, false
		}
	}

	return u, v, true
}

func (c RandomGraphConfig) edgeIsInsertable(
	adjacency [][]int32,
	u, v int,
) bool {
	if u == v {
		return false
	}

	if len(adjacency[u]) >= c.MaxDegree || len(adjacency[v]) >= c.MaxDegree {
		return false
	}

	return !contains(adjacency[u], int32(v))
}

func (c RandomGraphConfig) mustBeValid() {
	if c.NumVertices <= 1 {
		log.Panic("random graph needs at least 2 vertices")
	}

	if c.MaxDegree <= 0 {
		log.Panic("max degree must be positive")
	}
}
