// Package delays produces per-train delay values for the refresh job.
//
// Delay generation sits behind the Source interface so that the simulated
// distribution used here can be swapped for real telemetry without touching
// route search or status resolution.
package delays

import "math/rand/v2"

// MaxSimulatedDelayMin bounds the simulated distribution: delays are drawn
// uniformly from [0, MaxSimulatedDelayMin] minutes, inclusive.
const MaxSimulatedDelayMin = 30

// Source produces a delay value in minutes for every requested train.
// Implementations must return an entry for each train ID; an error aborts
// the refresh tick and the previous snapshot stays in force.
type Source interface {
	Delays(trainIDs []string) (map[string]int, error)
}

// SimulatedSource draws a fresh uniform delay for every train on each call.
// It stands in for a live delay feed.
type SimulatedSource struct {
	maxDelay int
	intN     func(n int) int
}

// NewSimulatedSource returns a source backed by the shared math/rand/v2
// generator.
func NewSimulatedSource() *SimulatedSource {
	return &SimulatedSource{maxDelay: MaxSimulatedDelayMin, intN: rand.IntN}
}

// NewSimulatedSourceWithRand returns a source using the provided integer
// generator, for deterministic tests.
func NewSimulatedSourceWithRand(intN func(n int) int) *SimulatedSource {
	return &SimulatedSource{maxDelay: MaxSimulatedDelayMin, intN: intN}
}

func (s *SimulatedSource) Delays(trainIDs []string) (map[string]int, error) {
	result := make(map[string]int, len(trainIDs))
	for _, id := range trainIDs {
		result[id] = s.intN(s.maxDelay + 1)
	}
	return result, nil
}

// FixedSource returns the same delay map on every call. Useful in tests and
// as a null source for deployments that want delay-free routing.
type FixedSource map[string]int

func (f FixedSource) Delays(trainIDs []string) (map[string]int, error) {
	result := make(map[string]int, len(trainIDs))
	for _, id := range trainIDs {
		result[id] = f[id]
	}
	return result, nil
}
