package rules

const (
	// BirthNeighbors is the exact live-neighbor count that brings a dead cell to life.
	BirthNeighbors = 3
	// SurviveMin and SurviveMax bound the live-neighbor count that keeps a live cell alive.
	SurviveMin = 2
	SurviveMax = 3
)

/*
ApplyConwayRules applies Conway's Game of Life rules (B3/S23) to determine the next state of a cell.

A live cell survives with two or three live neighbors and dies otherwise.
A dead cell becomes alive with exactly three live neighbors.
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	if alive {
		return neighbors >= SurviveMin && neighbors <= SurviveMax
	}
	return neighbors == BirthNeighbors
}
