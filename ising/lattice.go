package ising

import "log"

// LatticeConfig describes a 2D lattice with 4-connectivity. Vertices are
// numbered in row-major order, so cell (x, y) is vertex y*Width+x.
type LatticeConfig struct {
	Width, Height int

	// Wrap connects the opposite borders, turning the lattice into a torus so
	// that every vertex has exactly 4 neighbors.
	Wrap bool
}

var latticeNeighborOffsets = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// Generate builds the adjacency structure of the lattice.
func (c LatticeConfig) Generate() [][]int32 {
	c.mustBeValid()

	adjacency := make([][]int32, c.Width*c.Height)

	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			u := y*c.Width + x
			adjacency[u] = c.neighborsOf(x, y)
		}
	}

	return adjacency
}

func (c LatticeConfig) neighborsOf(x, y int) []int32 {
	neighbors := make([]int32, 0, 4)

	for _, d := range latticeNeighborOffsets {
		nx, ny := x+d[0], y+d[1]

		if c.Wrap {
			nx = (nx + c.Width) % c.Width
			ny = (ny + c.Height) % c.Height
		} else if nx < 0 || nx >= c.Width || ny < 0 || ny >= c.Height {
			continue
		}

		neighbors = append(neighbors, int32(ny*c.Width+nx))
	}

	return neighbors
}

func (c LatticeConfig) mustBeValid() {
	if c.Width <= 0 || c.Height <= 0 {
		log.Panic("lattice dimensions must be positive")
	}

	// Wrapping a side of length 1 creates self loops, and length 2 creates
	// duplicate edges.
	if c.Wrap && (c.Width < 3 || c.Height < 3) {
		log.Panic("wrapped lattice requires both sides to be at least 3")
	}
}
