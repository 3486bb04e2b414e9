package ising

import (
	"fmt"
	"io"
)

// DegreeStats summarizes the degree distribution of an adjacency structure.
type DegreeStats struct {
	Min, Max  int
	Avg       float64
	NumEdges  int
	NumVertex int
}

// ComputeDegreeStats scans the adjacency structure and reports degree
// statistics.
func ComputeDegreeStats(adjacency [][]int32) DegreeStats {
	if len(adjacency) == 0 {
		return DegreeStats{}
	}

	stats := DegreeStats{
		Min:       len(adjacency[0]),
		NumVertex: len(adjacency),
	}

	degreeSum := 0
	for _, neighbors := range adjacency {
		degree := len(neighbors)
		degreeSum += degree

		if degree < stats.Min {
			stats.Min = degree
		}

		if degree > stats.Max {
			stats.Max = degree
		}
	}

	stats.Avg = float64(degreeSum) / float64(len(adjacency))
	stats.NumEdges = degreeSum / 2

	return stats
}

// Fprint writes the statistics in the traditional console format.
func (s DegreeStats) Fprint(w io.Writer) {
	fmt.Fprintf(w, "Graph statistics:\n")
	fmt.Fprintf(w, "Vertices: %d\n", s.NumVertex)
	fmt.Fprintf(w, "Edges: %d\n", s.NumEdges)
	fmt.Fprintf(w, "Min Degree: %d\n", s.Min)
	fmt.Fprintf(w, "Max Degree: %d\n", s.Max)
	fmt.Fprintf(w, "Avg Degree: %f\n", s.Avg)
}

// FprintAdjacency dumps the neighbor list of every vertex, one vertex per
// line.
func FprintAdjacency(w io.Writer, adjacency [][]int32) {
	for u, neighbors := range adjacency {
		fmt.Fprintf(w, "%d: ", u)

		for i, v := range neighbors {
			if i != 0 {
				fmt.Fprint(w, ", ")
			}

			fmt.Fprintf(w, "%d", v)
		}

		fmt.Fprintln(w)
	}
}
