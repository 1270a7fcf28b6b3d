// Package solver is a generic finite-domain optimization backend. A model
// holds one variable per decision (domain = candidate slot indices), hard
// constraints (slot capacity, slot/day exclusivity, minimum day gaps) and
// weighted soft penalty terms. The search is a parallel randomized greedy
// construction with hill-climbing under a wall-clock budget; callers receive
// a feasible or best-found assignment, or a no-solution report.
package solver

// Variable is one decision with a finite slot domain. A single-element domain
// acts as a hard pin. Weight is the capacity the variable consumes in
// whichever slot it is assigned to.
type Variable struct {
	Name   string
	Domain []int
	Weight int
}

type gapConstraint struct {
	first  int
	second int
	minGap int
}

// Penalty is one weighted soft term. Cost receives the complete assignment
// (slot index per variable) and returns a violation count; the solver
// minimizes the weighted sum of all penalties.
type Penalty struct {
	Name   string
	Weight int
	Cost   func(assign []int) int
}

// Model is a set of variables plus constraints over a fixed slot range.
// DayOf and ShiftOf project a slot index onto its day and shift ordinals.
type Model struct {
	Slots   int
	DayOf   func(slot int) int
	ShiftOf func(slot int) int

	vars     []*Variable
	capacity []int

	slotExclusive [][]int
	dayExclusive  [][]int
	gaps          []gapConstraint
	penalties     []*Penalty

	// per-variable constraint membership, built lazily before solving
	varSlotGroups [][]int
	varDayGroups  [][]int
	varGaps       [][]int
}

// NewModel creates an empty model over slots slots with the given per-slot
// capacity.
func NewModel(slots int, capacity []int, dayOf, shiftOf func(int) int) *Model {
	cap := make([]int, slots)
	copy(cap, capacity)
	return &Model{
		Slots:    slots,
		DayOf:    dayOf,
		ShiftOf:  shiftOf,
		capacity: cap,
	}
}

// AddVariable registers a decision and returns its index. Domains are copied.
func (m *Model) AddVariable(name string, domain []int, weight int) int {
	d := make([]int, len(domain))
	copy(d, domain)
	m.vars = append(m.vars, &Variable{Name: name, Domain: d, Weight: weight})
	return len(m.vars) - 1
}

// AddSlotExclusive constrains the group to at most one assigned variable per
// slot (hard student no-clash).
func (m *Model) AddSlotExclusive(vars []int) {
	if len(vars) < 2 {
		return
	}
	g := make([]int, len(vars))
	copy(g, vars)
	m.slotExclusive = append(m.slotExclusive, g)
}

// AddDayExclusive constrains the group to at most one assigned variable per
// day (hard cohort same-day rule).
func (m *Model) AddDayExclusive(vars []int) {
	if len(vars) < 2 {
		return
	}
	g := make([]int, len(vars))
	copy(g, vars)
	m.dayExclusive = append(m.dayExclusive, g)
}

// AddMinDayGap requires day(second) >= day(first) + minGap.
func (m *Model) AddMinDayGap(first, second, minGap int) {
	m.gaps = append(m.gaps, gapConstraint{first: first, second: second, minGap: minGap})
}

// AddPenalty registers a weighted soft term.
func (m *Model) AddPenalty(name string, weight int, cost func(assign []int) int) {
	if weight <= 0 {
		return
	}
	m.penalties = append(m.penalties, &Penalty{Name: name, Weight: weight, Cost: cost})
}

func (m *Model) Len() int { return len(m.vars) }

func (m *Model) buildMembership() {
	m.varSlotGroups = make([][]int, len(m.vars))
	m.varDayGroups = make([][]int, len(m.vars))
	m.varGaps = make([][]int, len(m.vars))
	for gi, g := range m.slotExclusive {
		for _, vi := range g {
			m.varSlotGroups[vi] = append(m.varSlotGroups[vi], gi)
		}
	}
	for gi, g := range m.dayExclusive {
		for _, vi := range g {
			m.varDayGroups[vi] = append(m.varDayGroups[vi], gi)
		}
	}
	for gi, g := range m.gaps {
		m.varGaps[g.first] = append(m.varGaps[g.first], gi)
		m.varGaps[g.second] = append(m.varGaps[g.second], gi)
	}
}

// feasible reports whether assigning slot s to variable vi respects every
// hard constraint, given the partial assignment (unassigned = -1) and the
// current per-slot usage excluding vi.
func (m *Model) feasible(assign []int, usage []int, vi, s int) bool {
	v := m.vars[vi]
	if usage[s]+v.Weight > m.capacity[s] {
		return false
	}
	for _, gi := range m.varSlotGroups[vi] {
		for _, other := range m.slotExclusive[gi] {
			if other != vi && assign[other] == s {
				return false
			}
		}
	}
	day := m.DayOf(s)
	for _, gi := range m.varDayGroups[vi] {
		for _, other := range m.dayExclusive[gi] {
			if other != vi && assign[other] >= 0 && m.DayOf(assign[other]) == day {
				return false
			}
		}
	}
	for _, gi := range m.varGaps[vi] {
		g := m.gaps[gi]
		if g.first == vi {
			if other := assign[g.second]; other >= 0 && m.DayOf(other) < day+g.minGap {
				return false
			}
		} else {
			if other := assign[g.first]; other >= 0 && day < m.DayOf(other)+g.minGap {
				return false
			}
		}
	}
	return true
}

// evaluate returns the weighted soft cost of a complete assignment.
func (m *Model) evaluate(assign []int) int64 {
	var total int64
	for _, p := range m.penalties {
		total += int64(p.Weight) * int64(p.Cost(assign))
	}
	return total
}

// violations returns the raw per-penalty counts of a complete assignment.
func (m *Model) violations(assign []int) map[string]int {
	out := make(map[string]int, len(m.penalties))
	for _, p := range m.penalties {
		out[p.Name] += p.Cost(assign)
	}
	return out
}
