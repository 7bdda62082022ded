package routing

import "math"

// edgePenaltyFactor is applied to edges already used by a found path when
// searching for alternates. Doubling rather than removing keeps the edge
// usable when no detour exists at all.
const edgePenaltyFactor = 2.0

// FindAlternateRoutes returns up to k alternates to the fastest path from
// start to end, cheapest first. Each round re-runs the search on a copy of
// the graph with every edge of every previously found path penalized, which
// steers the search onto different legs without forbidding reuse outright.
// Duplicate paths and unreachable results end the search early.
//
// The reported cost of each alternate is its true (unpenalized) cost under
// the same traversal rule as FindFastestRoute.
func FindAlternateRoutes(g *Graph, stationDelays map[string]int, start, end string, k int) []Alternate {
	primaryCost, primaryPath := FindFastestRoute(g, stationDelays, start, end)
	if math.IsInf(primaryCost, 1) || k <= 0 {
		return nil
	}

	penalized := clone(g)
	seen := map[string]bool{pathKey(primaryPath): true}
	penalizePath(penalized, primaryPath)

	var alternates []Alternate
	for round := 0; round < k; round++ {
		cost, path := FindFastestRoute(penalized, stationDelays, start, end)
		if math.IsInf(cost, 1) {
			break
		}
		key := pathKey(path)
		if !seen[key] {
			seen[key] = true
			alternates = append(alternates, Alternate{
				Cost: pathCost(g, stationDelays, path),
				Path: path,
			})
		}
		penalizePath(penalized, path)
	}
	return alternates
}

// Alternate is a non-primary path suggestion with its real cost.
type Alternate struct {
	Cost float64
	Path []string
}

func clone(g *Graph) *Graph {
	copied := NewGraph()
	for from, out := range g.neighbors {
		for _, to := range out {
			copied.UpsertEdge(from, to, g.weights[from][to])
		}
	}
	return copied
}

func penalizePath(g *Graph, path []string) {
	for i := 0; i+1 < len(path); i++ {
		if w, ok := g.Weight(path[i], path[i+1]); ok {
			g.UpsertEdge(path[i], path[i+1], w*edgePenaltyFactor)
		}
	}
}

// pathCost replays a path on the original graph under the traversal rule of
// FindFastestRoute. Missing edges yield +Inf.
func pathCost(g *Graph, stationDelays map[string]int, path []string) float64 {
	total := 0.0
	for i := 0; i+1 < len(path); i++ {
		w, ok := g.Weight(path[i], path[i+1])
		if !ok {
			return math.Inf(1)
		}
		total += w + float64(stationDelays[path[i]])
	}
	return total
}

func pathKey(path []string) string {
	key := ""
	for _, s := range path {
		key += s + "\x00"
	}
	return key
}
