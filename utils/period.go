package utils

import "github.com/sheikhrachel/gol-tiles/model"

// Cycle describes the first repetition found in a sequence.
type Cycle struct {
	Start  int // first generation of the repeating run
	Period int // 1 for a still life, 2 for a blinker, ...
}

// DetectPeriod reports the earliest generation that repeats an earlier one.
// An extinct board repeats with period 1 like any other still life.
func DetectPeriod(seq model.Sequence) (Cycle, bool) {
	seen := make(map[string][]int, len(seq))
	for i, g := range seq {
		h := g.Hash()
		for _, j := range seen[h] {
			if seq[j].Equal(g) {
				return Cycle{Start: j, Period: i - j}, true
			}
		}
		seen[h] = append(seen[h], i)
	}
	return Cycle{}, false
}
