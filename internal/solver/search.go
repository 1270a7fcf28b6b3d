package solver

import (
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

type Status int

const (
	NoSolution Status = iota
	Feasible
	Optimal
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "OPTIMAL"
	case Feasible:
		return "FEASIBLE"
	}
	return "NO_SOLUTION"
}

// ValueOrder selects the value-ordering heuristic used during greedy
// construction.
type ValueOrder int

const (
	// OrderRandom picks a random feasible slot.
	OrderRandom ValueOrder = iota
	// OrderEarly picks the feasible slot with the lowest (day, shift).
	OrderEarly
	// OrderBalanced picks the feasible slot whose day, then slot, currently
	// holds the fewest assignments. Used when uniform distribution is on.
	OrderBalanced
)

type Params struct {
	Timeout time.Duration
	Workers int
	Order   ValueOrder
	Seed    int64
}

type Result struct {
	Status     Status
	Assignment []int
	Cost       int64
	Violations map[string]int
}

type shared struct {
	mu     sync.Mutex
	found  bool
	cost   int64
	assign []int
	stop   atomic.Bool
}

// Solve searches for a minimum-cost feasible assignment until the wall-clock
// budget elapses. There is no mid-search cancellation beyond the timeout.
func Solve(m *Model, p Params) Result {
	if p.Workers <= 0 {
		p.Workers = 1
	}
	if p.Timeout <= 0 {
		p.Timeout = time.Minute
	}
	if p.Seed == 0 {
		p.Seed = time.Now().UnixNano()
	}

	for _, v := range m.vars {
		if len(v.Domain) == 0 {
			return Result{Status: NoSolution}
		}
	}
	if len(m.vars) == 0 {
		return Result{Status: Optimal, Assignment: []int{}, Violations: map[string]int{}}
	}

	m.buildMembership()
	deadline := time.Now().Add(p.Timeout)

	best := &shared{cost: math.MaxInt64}
	var wg sync.WaitGroup
	for w := 0; w < p.Workers; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			runWorker(m, p.Order, seed, deadline, best)
		}(p.Seed + int64(w))
	}
	wg.Wait()

	if !best.found {
		return Result{Status: NoSolution}
	}
	status := Feasible
	if best.cost == 0 {
		status = Optimal
	}
	return Result{
		Status:     status,
		Assignment: best.assign,
		Cost:       best.cost,
		Violations: m.violations(best.assign),
	}
}

func runWorker(m *Model, order ValueOrder, seed int64, deadline time.Time, best *shared) {
	rng := rand.New(rand.NewSource(seed))
	state := newSearchState(m)
	for time.Now().Before(deadline) && !best.stop.Load() {
		if !state.construct(rng, order) {
			continue
		}
		cost := m.evaluate(state.assign)
		cost = state.improve(rng, cost, deadline, best)
		best.offer(state.assign, cost)
		if cost == 0 {
			best.stop.Store(true)
			return
		}
	}
}

func (b *shared) offer(assign []int, cost int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.found || cost < b.cost {
		b.found = true
		b.cost = cost
		b.assign = make([]int, len(assign))
		copy(b.assign, assign)
	}
}

type searchState struct {
	m         *Model
	assign    []int
	usage     []int
	dayCount  []int
	slotCount []int
	varOrder  []int
	maxDay    int
}

func newSearchState(m *Model) *searchState {
	maxDay := 0
	for s := 0; s < m.Slots; s++ {
		if d := m.DayOf(s); d > maxDay {
			maxDay = d
		}
	}
	return &searchState{
		m:         m,
		assign:    make([]int, len(m.vars)),
		usage:     make([]int, m.Slots),
		dayCount:  make([]int, maxDay+1),
		slotCount: make([]int, m.Slots),
		varOrder:  make([]int, len(m.vars)),
		maxDay:    maxDay,
	}
}

// construct builds a feasible assignment greedily in a shuffled variable
// order. Returns false on a dead end; callers restart.
func (s *searchState) construct(rng *rand.Rand, order ValueOrder) bool {
	for i := range s.assign {
		s.assign[i] = -1
		s.varOrder[i] = i
	}
	for i := range s.usage {
		s.usage[i] = 0
		s.slotCount[i] = 0
	}
	for i := range s.dayCount {
		s.dayCount[i] = 0
	}
	rng.Shuffle(len(s.varOrder), func(i, j int) {
		s.varOrder[i], s.varOrder[j] = s.varOrder[j], s.varOrder[i]
	})

	for _, vi := range s.varOrder {
		slot := s.pickValue(rng, order, vi)
		if slot < 0 {
			return false
		}
		s.place(vi, slot)
	}
	return true
}

func (s *searchState) pickValue(rng *rand.Rand, order ValueOrder, vi int) int {
	m := s.m
	domain := m.vars[vi].Domain
	switch order {
	case OrderEarly:
		// slot indices are ordered by (day, shift) already
		for _, slot := range domain {
			if m.feasible(s.assign, s.usage, vi, slot) {
				return slot
			}
		}
	case OrderBalanced:
		bestSlot := -1
		for _, slot := range domain {
			if !m.feasible(s.assign, s.usage, vi, slot) {
				continue
			}
			if bestSlot < 0 || s.lessLoaded(slot, bestSlot) {
				bestSlot = slot
			}
		}
		return bestSlot
	default:
		start := 0
		if len(domain) > 1 {
			start = rng.Intn(len(domain))
		}
		for i := 0; i < len(domain); i++ {
			slot := domain[(start+i)%len(domain)]
			if m.feasible(s.assign, s.usage, vi, slot) {
				return slot
			}
		}
	}
	return -1
}

func (s *searchState) lessLoaded(a, b int) bool {
	da, db := s.dayCount[s.m.DayOf(a)], s.dayCount[s.m.DayOf(b)]
	if da != db {
		return da < db
	}
	if s.slotCount[a] != s.slotCount[b] {
		return s.slotCount[a] < s.slotCount[b]
	}
	return a < b
}

func (s *searchState) place(vi, slot int) {
	s.assign[vi] = slot
	s.usage[slot] += s.m.vars[vi].Weight
	s.dayCount[s.m.DayOf(slot)]++
	s.slotCount[slot]++
}

func (s *searchState) unplace(vi int) {
	slot := s.assign[vi]
	s.assign[vi] = -1
	s.usage[slot] -= s.m.vars[vi].Weight
	s.dayCount[s.m.DayOf(slot)]--
	s.slotCount[slot]--
}

// improve hill-climbs single-variable moves, accepting only strict cost
// reductions, until the moves go stale or the deadline passes.
func (s *searchState) improve(rng *rand.Rand, cost int64, deadline time.Time, best *shared) int64 {
	m := s.m
	if len(m.penalties) == 0 || cost == 0 {
		return cost
	}
	maxStale := 200 + 20*len(m.vars)
	stale := 0
	checked := 0
	for stale < maxStale && cost > 0 {
		checked++
		if checked%64 == 0 {
			if time.Now().After(deadline) || best.stop.Load() {
				break
			}
		}
		vi := rng.Intn(len(m.vars))
		domain := m.vars[vi].Domain
		if len(domain) < 2 {
			stale++
			continue
		}
		old := s.assign[vi]
		candidate := domain[rng.Intn(len(domain))]
		if candidate == old {
			stale++
			continue
		}
		s.unplace(vi)
		if !m.feasible(s.assign, s.usage, vi, candidate) {
			s.place(vi, old)
			stale++
			continue
		}
		s.place(vi, candidate)
		next := m.evaluate(s.assign)
		if next < cost {
			cost = next
			stale = 0
			continue
		}
		s.unplace(vi)
		s.place(vi, old)
		stale++
	}
	return cost
}
