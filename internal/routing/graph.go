// Package routing holds the delay-weighted station graph, the shortest-path
// search over it, and the snapshot type the refresh job publishes.
package routing

// Graph is a directed weighted graph over station codes. Edge weights model
// "cost of this leg right now": scheduled duration plus the delay of the
// train currently assigned to the leg. Upserting an existing edge
// overwrites its weight (last write wins), so the scan order of the
// schedule table determines the final weight of shared legs.
//
// A Graph is built once per refresh tick and never mutated after
// publication.
type Graph struct {
	weights   map[string]map[string]float64
	neighbors map[string][]string
}

func NewGraph() *Graph {
	return &Graph{
		weights:   make(map[string]map[string]float64),
		neighbors: make(map[string][]string),
	}
}

// UpsertEdge adds the directed edge from->to, or overwrites its weight if
// it already exists. Neighbor order is first-insertion order, which keeps
// search expansion deterministic for a given input scan order.
func (g *Graph) UpsertEdge(from, to string, weight float64) {
	out, ok := g.weights[from]
	if !ok {
		out = make(map[string]float64)
		g.weights[from] = out
	}
	if _, exists := out[to]; !exists {
		g.neighbors[from] = append(g.neighbors[from], to)
	}
	out[to] = weight
}

// Weight returns the edge weight and whether the edge exists.
func (g *Graph) Weight(from, to string) (float64, bool) {
	w, ok := g.weights[from][to]
	return w, ok
}

// Neighbors returns the stations reachable one hop from the given station,
// in edge insertion order. The returned slice must not be modified.
func (g *Graph) Neighbors(from string) []string {
	return g.neighbors[from]
}

// EdgeCount returns the number of directed edges in the graph.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, out := range g.weights {
		n += len(out)
	}
	return n
}

// HasNode reports whether the station appears as an edge origin.
func (g *Graph) HasNode(station string) bool {
	return len(g.neighbors[station]) > 0
}
