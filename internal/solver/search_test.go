package solver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testModel builds a model over days*shifts slots with uniform capacity.
// Slot indices are ordered by (day, shift).
func testModel(days, shifts, capacity int) *Model {
	slots := days * shifts
	caps := make([]int, slots)
	for i := range caps {
		caps[i] = capacity
	}
	return NewModel(slots,
		caps,
		func(s int) int { return s/shifts + 1 },
		func(s int) int { return s % shifts },
	)
}

func fullDomain(m *Model) []int {
	d := make([]int, m.Slots)
	for i := range d {
		d[i] = i
	}
	return d
}

func solveParams() Params {
	return Params{Timeout: 2 * time.Second, Workers: 2, Seed: 1}
}

func TestSolveEmptyModelIsOptimal(t *testing.T) {
	m := testModel(2, 2, 1)
	res := Solve(m, solveParams())
	assert.Equal(t, Optimal, res.Status)
	assert.Empty(t, res.Assignment)
}

func TestSolveEmptyDomainIsNoSolution(t *testing.T) {
	m := testModel(2, 2, 1)
	m.AddVariable("a", nil, 1)
	res := Solve(m, solveParams())
	assert.Equal(t, NoSolution, res.Status)
}

func TestSolvePinnedVariableKeepsItsSlot(t *testing.T) {
	m := testModel(3, 2, 1)
	vi := m.AddVariable("pinned", []int{4}, 1)
	res := Solve(m, solveParams())
	require.Equal(t, Optimal, res.Status)
	assert.Equal(t, 4, res.Assignment[vi])
}

func TestSolveSlotExclusiveSeparatesVariables(t *testing.T) {
	m := testModel(1, 2, 5)
	a := m.AddVariable("a", fullDomain(m), 1)
	b := m.AddVariable("b", fullDomain(m), 1)
	m.AddSlotExclusive([]int{a, b})
	res := Solve(m, solveParams())
	require.Equal(t, Optimal, res.Status)
	assert.NotEqual(t, res.Assignment[a], res.Assignment[b])
}

func TestSolveDayExclusiveSeparatesDays(t *testing.T) {
	m := testModel(2, 2, 5)
	a := m.AddVariable("a", fullDomain(m), 1)
	b := m.AddVariable("b", fullDomain(m), 1)
	m.AddDayExclusive([]int{a, b})
	res := Solve(m, solveParams())
	require.Equal(t, Optimal, res.Status)
	assert.NotEqual(t, m.DayOf(res.Assignment[a]), m.DayOf(res.Assignment[b]))
}

func TestSolveMinDayGapHonored(t *testing.T) {
	m := testModel(5, 1, 5)
	first := m.AddVariable("first", fullDomain(m), 1)
	second := m.AddVariable("second", fullDomain(m), 1)
	m.AddMinDayGap(first, second, 2)
	res := Solve(m, solveParams())
	require.Equal(t, Optimal, res.Status)
	assert.GreaterOrEqual(t, m.DayOf(res.Assignment[second]), m.DayOf(res.Assignment[first])+2)
}

func TestSolveCapacityOverflowIsNoSolution(t *testing.T) {
	m := testModel(1, 1, 1)
	m.AddVariable("a", fullDomain(m), 1)
	m.AddVariable("b", fullDomain(m), 1)
	res := Solve(m, Params{Timeout: 200 * time.Millisecond, Workers: 2, Seed: 1})
	assert.Equal(t, NoSolution, res.Status)
}

func TestSolveCapacityCountsWeights(t *testing.T) {
	m := testModel(2, 1, 3)
	a := m.AddVariable("a", fullDomain(m), 3)
	b := m.AddVariable("b", fullDomain(m), 3)
	res := Solve(m, solveParams())
	require.Equal(t, Optimal, res.Status)
	assert.NotEqual(t, res.Assignment[a], res.Assignment[b])
}

func TestSolveReducesPenaltyToZero(t *testing.T) {
	m := testModel(3, 1, 5)
	a := m.AddVariable("a", fullDomain(m), 1)
	b := m.AddVariable("b", fullDomain(m), 1)
	m.AddPenalty("same_day", 100, func(assign []int) int {
		if m.DayOf(assign[a]) == m.DayOf(assign[b]) {
			return 1
		}
		return 0
	})
	res := Solve(m, solveParams())
	require.Equal(t, Optimal, res.Status)
	assert.Equal(t, int64(0), res.Cost)
	assert.Equal(t, 0, res.Violations["same_day"])
}

func TestSolveBalancedOrderSpreadsLoad(t *testing.T) {
	m := testModel(4, 2, 10)
	for i := 0; i < 8; i++ {
		m.AddVariable("c", fullDomain(m), 1)
	}
	p := solveParams()
	p.Order = OrderBalanced
	res := Solve(m, p)
	require.Equal(t, Optimal, res.Status)

	perDay := map[int]int{}
	for _, slot := range res.Assignment {
		perDay[m.DayOf(slot)]++
	}
	for day := 1; day <= 4; day++ {
		assert.Equal(t, 2, perDay[day], "day %d", day)
	}
}

func TestSolveEarlyOrderPrefersFirstSlots(t *testing.T) {
	m := testModel(5, 2, 10)
	a := m.AddVariable("a", fullDomain(m), 1)
	p := solveParams()
	p.Order = OrderEarly
	res := Solve(m, p)
	require.Equal(t, Optimal, res.Status)
	assert.Equal(t, 0, res.Assignment[a])
}

func TestSolveReportsFeasibleWhenPenaltyUnavoidable(t *testing.T) {
	m := testModel(1, 1, 5)
	a := m.AddVariable("a", fullDomain(m), 1)
	b := m.AddVariable("b", fullDomain(m), 1)
	m.AddPenalty("same_slot", 10, func(assign []int) int {
		if assign[a] == assign[b] {
			return 1
		}
		return 0
	})
	res := Solve(m, Params{Timeout: 300 * time.Millisecond, Workers: 1, Seed: 1})
	require.Equal(t, Feasible, res.Status)
	assert.Equal(t, int64(10), res.Cost)
	assert.Equal(t, 1, res.Violations["same_slot"])
}
