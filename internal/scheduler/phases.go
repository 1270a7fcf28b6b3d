package scheduler

import (
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/rhyrak/exam-schedule/internal/solver"
	"github.com/rhyrak/exam-schedule/pkg/model"
)

// phasePlan is the course decomposition of one solve invocation. Phases are
// strictly forward-committing: each consumes the previous phase's output as
// fixed input and there is no backtracking across phases.
type phasePlan struct {
	machine []model.CourseID
	common  []model.CourseID
	prio    []model.CourseID
	all     []model.CourseID
	// window is the Phase 2 day-window size (max over priority entries)
	window int
	// reserved marks the day indices withheld for Phase 0
	reserved []int
}

// machineChunk is one contiguous run of machine rooms inside a reserved slot.
type machineChunk struct {
	slot  int
	start int
	count int
}

type solveState struct {
	fixed        map[model.CourseID]model.Slot
	machineAlloc map[model.CourseID][]machineChunk
	phaseStatus  map[string]string
	violations   map[string]int
}

// planPhases classifies courses: Phase 0 takes machine-mode courses when
// reserved days and machine rooms exist, Phase 1 the courses shared by more
// than one cohort, Phase 2 the priority cohorts' private courses, Phase 3
// everything the optimizer owns.
func (ctx *SolveContext) planPhases() phasePlan {
	var plan phasePlan

	machineActive := len(ctx.machineDayIdxs) > 0 && len(ctx.rooms.Machine) > 0
	isMachine := map[model.CourseID]bool{}
	for _, id := range ctx.registry.Courses() {
		if ctx.registry.Info(id).Machine && machineActive {
			isMachine[id] = true
			plan.machine = append(plan.machine, id)
		}
	}
	if len(plan.machine) > 0 {
		plan.reserved = ctx.machineDayIdxs
	}

	refs := map[model.CourseID]int{}
	for _, key := range ctx.cohortKeys {
		for _, id := range lo.Uniq(ctx.cohortCourses[key]) {
			refs[id]++
		}
	}

	common := map[model.CourseID]bool{}
	for _, id := range ctx.registry.Courses() {
		if isMachine[id] {
			continue
		}
		plan.all = append(plan.all, id)
		if refs[id] > 1 {
			common[id] = true
			plan.common = append(plan.common, id)
		}
	}

	if len(ctx.priority) > 0 {
		seen := map[model.CourseID]bool{}
		for _, p := range ctx.priority {
			if p.WindowDays > plan.window {
				plan.window = p.WindowDays
			}
			for _, id := range ctx.cohortCourses[p.Key()] {
				if !common[id] && !isMachine[id] && !seen[id] {
					seen[id] = true
					plan.prio = append(plan.prio, id)
				}
			}
		}
	}
	return plan
}

// generalDays returns the usable day indices minus the reserved Phase 0 days.
func (ctx *SolveContext) generalDays(reserved []int) []int {
	var days []int
	for _, d := range ctx.days {
		if !lo.Contains(reserved, d.Index) {
			days = append(days, d.Index)
		}
	}
	return days
}

// packMachineCourses assigns machine-mode courses by deterministic
// bin-packing: each course's groups fill the reserved slot's machine-room
// pool in order, spilling into the next reserved slot when exhausted. The
// first chunk's slot is recorded as the course's representative fixation.
func (ctx *SolveContext) packMachineCourses(plan phasePlan, st *solveState) error {
	roomsPerSlot := len(ctx.rooms.Machine)
	var slots []int
	for _, d := range plan.reserved {
		for pos := range ctx.shifts {
			slots = append(slots, ctx.slotIndex(d, pos))
		}
	}

	slotIdx, used := 0, 0
	for _, id := range plan.machine {
		info := ctx.registry.Info(id)
		remaining := info.GroupCount
		for remaining > 0 {
			if slotIdx >= len(slots) {
				return fmt.Errorf("machine pool exhausted: course %s needs %d more groups", id, remaining)
			}
			fit := roomsPerSlot - used
			if fit > remaining {
				fit = remaining
			}
			st.machineAlloc[id] = append(st.machineAlloc[id], machineChunk{
				slot:  slots[slotIdx],
				start: used,
				count: fit,
			})
			remaining -= fit
			used += fit
			if used >= roomsPerSlot {
				slotIdx++
				used = 0
			}
		}
		st.fixed[id] = ctx.slotFromIndex(st.machineAlloc[id][0].slot)
	}
	return nil
}

// runPhase builds and solves one phase's model. Returns the phase's slot
// assignments, or ok=false when the solver finds no solution in its budget.
func (ctx *SolveContext) runPhase(log *zap.Logger, courses []model.CourseID, st *solveState, opts phaseOptions) (map[model.CourseID]model.Slot, bool) {
	log.Info("phase starting",
		zap.String("phase", opts.name),
		zap.Int("courses", len(courses)),
		zap.Bool("relaxed", opts.relaxed),
		zap.Bool("uniform", opts.uniform),
	)

	m, varCourses := ctx.buildModel(courses, st.fixed, opts)

	order := solver.OrderRandom
	if opts.uniform {
		order = solver.OrderBalanced
	} else if opts.prioritizeEarly {
		order = solver.OrderEarly
	}

	res := solver.Solve(m, solver.Params{
		Timeout: opts.timeLimit,
		Workers: ctx.cfg.Workers,
		Order:   order,
	})
	st.phaseStatus[opts.name] = res.Status.String()
	if res.Status == solver.NoSolution {
		log.Warn("phase found no solution", zap.String("phase", opts.name))
		return nil, false
	}

	for name, count := range res.Violations {
		st.violations[name] = count
	}

	out := make(map[model.CourseID]model.Slot, len(varCourses))
	for vi, id := range varCourses {
		out[id] = ctx.slotFromIndex(res.Assignment[vi])
	}
	log.Info("phase solved",
		zap.String("phase", opts.name),
		zap.String("status", res.Status.String()),
		zap.Int64("cost", res.Cost),
	)
	return out, true
}

// orchestrate runs the fixed phase sequence. Phase 1 and Phase 3 failures are
// fatal; Phase 2 failures defer its courses to Phase 3 silently.
func (ctx *SolveContext) orchestrate(log *zap.Logger) (*solveState, error) {
	st := &solveState{
		fixed:        map[model.CourseID]model.Slot{},
		machineAlloc: map[model.CourseID][]machineChunk{},
		phaseStatus:  map[string]string{},
		violations:   map[string]int{},
	}

	plan := ctx.planPhases()
	relaxed := !ctx.cfg.CohortSameDayHard
	general := ctx.generalDays(plan.reserved)

	if len(plan.machine) > 0 {
		if err := ctx.packMachineCourses(plan, st); err != nil {
			return nil, err
		}
		st.phaseStatus["phase0"] = model.StatusOptimal
		log.Info("phase 0 packed machine courses", zap.Int("courses", len(plan.machine)))
	}

	if len(plan.common) > 0 {
		assigned, ok := ctx.runPhase(log, plan.common, st, phaseOptions{
			name:        "phase1",
			timeLimit:   ctx.cfg.PhaseTimeout,
			allowedDays: general,
			relaxed:     relaxed,
			uniform:     true,
		})
		if !ok {
			return nil, fmt.Errorf("phase 1 (shared courses) found no solution")
		}
		mergeFixed(st.fixed, assigned)
	}

	if len(plan.prio) > 0 {
		window := plan.window
		if window > len(general) {
			window = len(general)
		}
		assigned, ok := ctx.runPhase(log, plan.prio, st, phaseOptions{
			name:            "phase2",
			timeLimit:       ctx.cfg.PhaseTimeout / 2,
			allowedDays:     general[:window],
			prioritizeEarly: true,
			relaxed:         relaxed,
		})
		if ok {
			mergeFixed(st.fixed, assigned)
		} else {
			log.Warn("phase 2 deferred priority courses to phase 3",
				zap.Int("courses", len(plan.prio)))
		}
	}

	if len(plan.all) > 0 {
		assigned, ok := ctx.runPhase(log, plan.all, st, phaseOptions{
			name:        "phase3",
			timeLimit:   ctx.cfg.PhaseTimeout * 3 / 2,
			allowedDays: general,
			relaxed:     relaxed,
			uniform:     true,
		})
		if !ok {
			return nil, fmt.Errorf("phase 3 (complete set) found no solution")
		}
		mergeFixed(st.fixed, assigned)
	}

	return st, nil
}

func mergeFixed(dst, src map[model.CourseID]model.Slot) {
	for id, slot := range src {
		dst[id] = slot
	}
}
