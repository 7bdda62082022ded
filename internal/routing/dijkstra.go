package routing

import (
	"container/heap"
	"math"
)

// frontierItem is one entry in the search frontier: the accumulated cost to
// reach station, and the path taken so far (not including station itself).
type frontierItem struct {
	cost    float64
	station string
	path    []string
	seq     uint64
}

// frontier is a min-heap ordered by accumulated cost. Ties dequeue in
// insertion order via the sequence number, so equal-cost expansions are
// deterministic for a given push order.
type frontier []*frontierItem

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].cost != f[j].cost {
		return f[i].cost < f[j].cost
	}
	return f[i].seq < f[j].seq
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) { *f = append(*f, x.(*frontierItem)) }

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*f = old[:n-1]
	return item
}

// FindFastestRoute runs a Dijkstra search from start to end over the given
// graph. A station is finalized the first time it is popped; later pops of
// the same station are discarded, so under non-negative weights the first
// completion of end is minimal.
//
// Traversal cost of an edge is its weight plus the per-station delay of the
// station being departed from. Edge weights already include the delay of
// the train assigned to the leg, so a delayed train's departure station is
// charged twice. That is the modeled behavior of this system, kept
// deliberately; see DESIGN.md.
//
// If end is unreachable the cost is +Inf and the path nil. start == end is
// not special-cased here; the API layer rejects it before searching.
func FindFastestRoute(g *Graph, stationDelays map[string]int, start, end string) (float64, []string) {
	visited := make(map[string]bool)
	var seq uint64

	queue := &frontier{{cost: 0, station: start, path: nil, seq: seq}}
	heap.Init(queue)

	for queue.Len() > 0 {
		item := heap.Pop(queue).(*frontierItem)
		if visited[item.station] {
			continue
		}
		visited[item.station] = true

		path := append(append([]string(nil), item.path...), item.station)
		if item.station == end {
			return item.cost, path
		}

		for _, neighbor := range g.Neighbors(item.station) {
			if visited[neighbor] {
				continue
			}
			weight, _ := g.Weight(item.station, neighbor)
			total := item.cost + weight + float64(stationDelays[item.station])
			seq++
			heap.Push(queue, &frontierItem{cost: total, station: neighbor, path: path, seq: seq})
		}
	}

	return math.Inf(1), nil
}
