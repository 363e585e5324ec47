package engine

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikhrachel/gol-tiles/model"
)

func gridWith(t *testing.T, rows, cols int, alive ...[2]int) *model.Grid {
	t.Helper()
	g, err := model.NewGrid(rows, cols)
	require.NoError(t, err)
	for _, rc := range alive {
		g.Set(rc[0], rc[1], true)
	}
	return g
}

func livingCells(g *model.Grid) map[[2]int]bool {
	out := map[[2]int]bool{}
	for r := range g.Rows() {
		for c := range g.Cols() {
			if g.Alive(r, c) {
				out[[2]int{r, c}] = true
			}
		}
	}
	return out
}

func TestCountLiveNeighborsExcludesSelf(t *testing.T) {
	g := gridWith(t, 3, 3, [2]int{1, 1})
	assert.Equal(t, 0, CountLiveNeighbors(g, 1, 1))
	for r := range 3 {
		for c := range 3 {
			if r == 1 && c == 1 {
				continue
			}
			assert.Equal(t, 1, CountLiveNeighbors(g, r, c), "cell (%d,%d)", r, c)
		}
	}
}

func TestCountLiveNeighborsWrapsAroundCorner(t *testing.T) {
	g := gridWith(t, 4, 4, [2]int{0, 0})

	wrapped := map[[2]int]bool{
		{3, 3}: true, {3, 0}: true, {3, 1}: true,
		{0, 3}: true, {0, 1}: true,
		{1, 3}: true, {1, 0}: true, {1, 1}: true,
	}
	for r := range 4 {
		for c := range 4 {
			want := 0
			if wrapped[[2]int{r, c}] {
				want = 1
			}
			assert.Equal(t, want, CountLiveNeighbors(g, r, c), "cell (%d,%d)", r, c)
		}
	}
}

func TestCountLiveNeighborsFullGrid(t *testing.T) {
	g, err := (&model.RandomInitializer{Density: 1}).Initialize(5, 4)
	require.NoError(t, err)
	for r := range 5 {
		for c := range 4 {
			assert.Equal(t, 8, CountLiveNeighbors(g, r, c))
		}
	}
}

func TestStepAllDeadStaysDead(t *testing.T) {
	g := gridWith(t, 6, 7)
	next, err := New().Step(g)
	require.NoError(t, err)
	assert.Zero(t, next.CountLiving())
}

func TestStepAllAliveDiesFromOverpopulation(t *testing.T) {
	for _, dims := range [][2]int{{3, 3}, {4, 6}, {9, 5}} {
		g, err := (&model.RandomInitializer{Density: 1}).Initialize(dims[0], dims[1])
		require.NoError(t, err)

		next, err := New().Step(g)
		require.NoError(t, err)
		assert.Zero(t, next.CountLiving(), "dims %v", dims)
		assert.Equal(t, dims[0]*dims[1], g.CountLiving(), "input must not change")
	}
}

func TestStepSingleCellDies(t *testing.T) {
	g := gridWith(t, 3, 3, [2]int{1, 1})
	next, err := New().Step(g)
	require.NoError(t, err)
	assert.Zero(t, next.CountLiving())
	assert.Equal(t, 3, next.Rows())
	assert.Equal(t, 3, next.Cols())
}

func TestStepBlinkerOscillates(t *testing.T) {
	horizontal := gridWith(t, 5, 5, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})
	snapshot := horizontal.Clone()
	e := New()

	vertical, err := e.Step(horizontal)
	require.NoError(t, err)
	assert.Equal(t, map[[2]int]bool{{1, 2}: true, {2, 2}: true, {3, 2}: true}, livingCells(vertical))
	assert.True(t, horizontal.Equal(snapshot), "input grid was modified")

	back, err := e.Step(vertical)
	require.NoError(t, err)
	assert.True(t, back.Equal(horizontal))
}

func TestStepBlockIsStill(t *testing.T) {
	g := gridWith(t, 6, 6)
	g.Stamp(model.Block, 5, 5) // straddles both seams

	next, err := New().Step(g)
	require.NoError(t, err)
	assert.True(t, next.Equal(g))
}

func TestGliderCrossesSeam(t *testing.T) {
	g := gridWith(t, 8, 8)
	g.Stamp(model.Glider, 6, 6)

	seq, err := New().Simulate(g, 5)
	require.NoError(t, err)

	want := gridWith(t, 8, 8)
	want.Stamp(model.Glider, 7, 7)
	assert.True(t, seq.At(4).Equal(want), "got\n%s", seq.At(4))
}

func TestStepIndependentOfWorkerCount(t *testing.T) {
	g, err := model.NewRandomInitializer(99).Initialize(23, 17)
	require.NoError(t, err)

	serial, err := New(WithWorkers(1)).Step(g)
	require.NoError(t, err)
	for _, n := range []int{2, 3, 8, 64} {
		parallel, err := New(WithWorkers(n)).Step(g)
		require.NoError(t, err)
		assert.True(t, serial.Equal(parallel), "workers=%d", n)
	}
}

func TestStepRejectsInvalidGrid(t *testing.T) {
	_, err := New().Step(nil)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = New().Step(&model.Grid{})
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestSimulateSingleGeneration(t *testing.T) {
	g := gridWith(t, 4, 4, [2]int{0, 0}, [2]int{2, 3})
	seq, err := New().Simulate(g, 1)
	require.NoError(t, err)
	require.Len(t, seq, 1)
	assert.True(t, seq.At(0).Equal(g))
}

func TestSimulateIsolatesInitialGrid(t *testing.T) {
	g := gridWith(t, 4, 4, [2]int{1, 1})
	seq, err := New().Simulate(g, 2)
	require.NoError(t, err)

	g.Set(3, 3, true)
	assert.False(t, seq.At(0).Alive(3, 3))
}

func TestSimulateDeterministicAndDimensionPreserving(t *testing.T) {
	g, err := model.NewRandomInitializer(3).Initialize(12, 9)
	require.NoError(t, err)
	e := New()

	first, err := e.Simulate(g, 10)
	require.NoError(t, err)
	second, err := e.Simulate(g, 10)
	require.NoError(t, err)

	require.Len(t, first, 10)
	require.Len(t, second, 10)
	for i := range first {
		assert.True(t, first.At(i).Equal(second.At(i)), "generation %d", i)
		assert.Equal(t, 12, first.At(i).Rows())
		assert.Equal(t, 9, first.At(i).Cols())
	}
	for i := 1; i < len(first); i++ {
		next, err := e.Step(first.At(i - 1))
		require.NoError(t, err)
		assert.True(t, next.Equal(first.At(i)), "generation %d", i)
	}
}

func TestSimulateRejectsBadArguments(t *testing.T) {
	g := gridWith(t, 3, 3)
	for _, n := range []int{0, -1} {
		seq, err := New().Simulate(g, n)
		assert.Nil(t, seq)
		assert.True(t, errors.Is(err, ErrInvalidArgument), "count %d", n)
	}

	seq, err := New().Simulate(nil, 3)
	assert.Nil(t, seq)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}
