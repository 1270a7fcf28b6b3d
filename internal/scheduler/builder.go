package scheduler

import (
	"time"

	"github.com/samber/lo"

	"github.com/rhyrak/exam-schedule/internal/solver"
	"github.com/rhyrak/exam-schedule/pkg/model"
)

// Objective weights, in descending priority. Scaled to integers; the early
// day/shift terms keep the 10:1 ratio of the original tuning.
const (
	weightStudentSameSlot = 100_000_000
	weightCohortSameDay   = 10_000_000
	weightStudentSameDay  = 5_000_000
	weightMaxPerDay       = 5_000
	weightMaxPerShift     = 2_000
	weightEarlyDay        = 10
	weightEarlyShift      = 1
)

type phaseOptions struct {
	name            string
	timeLimit       time.Duration
	allowedDays     []int
	prioritizeEarly bool
	relaxed         bool
	uniform         bool
}

// buildModel constructs the decision model of one phase: one variable per
// course in the subset with a slot domain (pinned for carry-forward
// fixations, filtered by the restricted-day window), the hard constraint
// families, and the weighted objective terms. The returned slice maps
// variable indices back to course identifiers.
func (ctx *SolveContext) buildModel(courses []model.CourseID, fixed map[model.CourseID]model.Slot, opts phaseOptions) (*solver.Model, []model.CourseID) {
	inPhase := map[model.CourseID]int{}
	for i, id := range courses {
		inPhase[id] = i
	}

	// Fixed usage of slots by courses outside this phase's subset still
	// consumes room capacity.
	capacity := make([]int, ctx.slotCount())
	for s := range capacity {
		capacity[s] = ctx.capacity
	}
	for id, slot := range fixed {
		if _, ok := inPhase[id]; ok {
			continue
		}
		info := ctx.registry.Info(id)
		if info == nil {
			continue
		}
		s := ctx.slotOf(slot)
		if s < 0 {
			continue
		}
		capacity[s] -= info.GroupCount
		if capacity[s] < 0 {
			capacity[s] = 0
		}
	}

	m := solver.NewModel(ctx.slotCount(), capacity, ctx.dayOfSlot, ctx.shiftOrdinalOfSlot)

	allowed := map[int]bool{}
	for _, d := range opts.allowedDays {
		allowed[d] = true
	}

	varWeights := make([]int, len(courses))
	for i, id := range courses {
		info := ctx.registry.Info(id)
		varWeights[i] = info.GroupCount

		var domain []int
		if slot, ok := fixed[id]; ok {
			// carry-forward fixation: a hard pin, never re-decided and never
			// blocked by the day window
			domain = []int{ctx.slotOf(slot)}
		} else {
			for s := 0; s < ctx.slotCount(); s++ {
				if opts.allowedDays != nil && !allowed[ctx.dayOfSlot(s)] {
					continue
				}
				domain = append(domain, s)
			}
		}
		m.AddVariable(string(id), domain, info.GroupCount)
	}

	// split-gap: second half at least SplitMinDayGap days after the first
	for _, pair := range ctx.registry.Splits() {
		first, okF := inPhase[pair.First]
		second, okS := inPhase[pair.Second]
		if okF && okS {
			m.AddMinDayGap(first, second, ctx.cfg.SplitMinDayGap)
		}
	}

	ctx.addStudentConstraints(m, inPhase, opts)
	ctx.addCohortConstraints(m, inPhase, opts)
	ctx.addPreferenceTerms(m, varWeights, opts)

	return m, courses
}

// addStudentConstraints imposes the per-student families: no two courses in
// one slot (hard, or a heavily weighted soft term in relaxed phases), and the
// always-soft single-day load term.
func (ctx *SolveContext) addStudentConstraints(m *solver.Model, inPhase map[model.CourseID]int, opts phaseOptions) {
	var clashVars [][]int
	for _, sid := range ctx.studentIDs {
		vars := ctx.phaseVars(ctx.studentCourses[sid], inPhase)
		if len(vars) < 2 {
			continue
		}
		clashVars = append(clashVars, vars)
	}
	if len(clashVars) == 0 {
		return
	}

	if ctx.cfg.StudentNoClash {
		if opts.relaxed {
			m.AddPenalty("student_same_slot", weightStudentSameSlot, func(assign []int) int {
				total := 0
				for _, vars := range clashVars {
					total += excessPerKey(assign, vars, func(s int) int { return s })
				}
				return total
			})
		} else {
			for _, vars := range clashVars {
				m.AddSlotExclusive(vars)
			}
		}
	}

	m.AddPenalty("student_same_day", weightStudentSameDay, func(assign []int) int {
		total := 0
		for _, vars := range clashVars {
			total += excessPerKey(assign, vars, m.DayOf)
		}
		return total
	})
}

// addCohortConstraints imposes the cohort families: same-day exclusivity
// (hard or relaxed) and the always-soft consecutive-day term.
func (ctx *SolveContext) addCohortConstraints(m *solver.Model, inPhase map[model.CourseID]int, opts phaseOptions) {
	var cohortVars [][]int
	for _, key := range ctx.cohortKeys {
		vars := ctx.phaseVars(ctx.cohortCourses[key], inPhase)
		if len(vars) < 2 {
			continue
		}
		cohortVars = append(cohortVars, vars)
	}
	if len(cohortVars) == 0 {
		return
	}

	if opts.relaxed {
		m.AddPenalty("cohort_same_day", weightCohortSameDay, func(assign []int) int {
			total := 0
			for _, vars := range cohortVars {
				total += excessPerKey(assign, vars, m.DayOf)
			}
			return total
		})
	} else {
		for _, vars := range cohortVars {
			m.AddDayExclusive(vars)
		}
	}

	m.AddPenalty("cohort_consecutive_day", ctx.cfg.ConsecutiveDayPenalty, func(assign []int) int {
		total := 0
		for _, vars := range cohortVars {
			days := map[int]bool{}
			for _, vi := range vars {
				days[m.DayOf(assign[vi])] = true
			}
			for d := range days {
				if days[d+1] {
					total++
				}
			}
		}
		return total
	})
}

// addPreferenceTerms adds the early-day/early-shift preferences and, under
// uniform distribution, the load-balancing minimax terms.
func (ctx *SolveContext) addPreferenceTerms(m *solver.Model, varWeights []int, opts phaseOptions) {
	if opts.uniform {
		days := len(ctx.days)
		m.AddPenalty("max_exams_per_day", weightMaxPerDay, func(assign []int) int {
			counts := make([]int, days+1)
			for _, s := range assign {
				counts[m.DayOf(s)]++
			}
			return lo.Max(counts)
		})
		shifts := len(ctx.shifts)
		m.AddPenalty("max_exams_per_shift", weightMaxPerShift, func(assign []int) int {
			counts := make([]int, shifts)
			for _, s := range assign {
				counts[s%shifts]++
			}
			return lo.Max(counts)
		})
		return
	}

	if opts.prioritizeEarly {
		m.AddPenalty("early_day_preference", weightEarlyDay, func(assign []int) int {
			total := 0
			for vi, s := range assign {
				total += m.DayOf(s) * varWeights[vi]
			}
			return total
		})
	}
	m.AddPenalty("early_shift_preference", weightEarlyShift, func(assign []int) int {
		total := 0
		for _, s := range assign {
			total += m.ShiftOf(s)
		}
		return total
	})
}

// phaseVars maps a course list onto the phase's variable indices, dropping
// courses outside the subset.
func (ctx *SolveContext) phaseVars(courses []model.CourseID, inPhase map[model.CourseID]int) []int {
	var vars []int
	for _, id := range courses {
		if vi, ok := inPhase[id]; ok {
			vars = append(vars, vi)
		}
	}
	return vars
}

// excessPerKey counts assignments beyond the first sharing one key (slot or
// day), i.e. sum over keys of max(0, n-1).
func excessPerKey(assign []int, vars []int, keyOf func(slot int) int) int {
	counts := map[int]int{}
	for _, vi := range vars {
		counts[keyOf(assign[vi])]++
	}
	excess := 0
	for _, n := range counts {
		if n > 1 {
			excess += n - 1
		}
	}
	return excess
}
