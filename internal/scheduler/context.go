package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"

	apperr "github.com/rhyrak/exam-schedule/pkg/errors"
	"github.com/rhyrak/exam-schedule/pkg/model"
)

// Input is the normalized table set produced by the loaders. It is the full
// input contract of one solve invocation.
type Input struct {
	Courses     []*model.Course
	Enrollments []*model.Enrollment
	CohortRows  []*model.CohortRow
	Days        []model.ExamDay
	Shifts      []model.Shift
	Rooms       model.RoomPool
	Priority    []*model.PriorityWindow
	MachineDays []time.Time
}

// SolveContext holds every derived table for one solve invocation. It is
// built fresh per call and read-only afterwards; the engine keeps no state
// between invocations.
type SolveContext struct {
	cfg      model.SchedulerConfig
	registry *Registry

	days   []model.ExamDay
	shifts []model.Shift
	rooms  model.RoomPool

	// capacity is the group budget of one general slot.
	capacity int

	// post-split course lists
	cohortCourses  map[model.CohortKey][]model.CourseID
	cohortKeys     []model.CohortKey
	studentCourses map[string][]model.CourseID
	studentIDs     []string
	studentNames   map[string]string

	// exam groups of the original (pre-split) courses
	groupsByCourse map[model.CourseID][]model.ExamGroup

	priority       []*model.PriorityWindow
	machineDayIdxs []int
}

// NewSolveContext validates the input tables and derives the solve state:
// deduplicated enrollments, the split-course registry, cohort and student
// course lists rewritten to synthetic identifiers, and the exam groups.
func NewSolveContext(input Input, cfg model.SchedulerConfig) (*SolveContext, error) {
	if len(input.Courses) == 0 {
		return nil, apperr.Clone(apperr.ErrInput, "course table is empty")
	}
	if len(input.Days) == 0 {
		return nil, apperr.Clone(apperr.ErrInput, "no usable exam days")
	}
	if len(input.Shifts) == 0 {
		return nil, apperr.Clone(apperr.ErrInput, "shift table is empty")
	}
	if input.Rooms.Size() == 0 {
		return nil, apperr.Clone(apperr.ErrInput, "no usable rooms")
	}
	for _, c := range input.Courses {
		if c.GroupCount <= 0 {
			return nil, apperr.Clone(apperr.ErrInput,
				fmt.Sprintf("course %s has non-positive group count %d", c.ID, c.GroupCount))
		}
	}
	for _, p := range input.Priority {
		if p.WindowDays <= 0 {
			return nil, apperr.Clone(apperr.ErrInput,
				fmt.Sprintf("priority entry %s has non-positive day window", p.Key()))
		}
	}

	ctx := &SolveContext{
		cfg:          cfg,
		days:         input.Days,
		shifts:       input.Shifts,
		rooms:        input.Rooms,
		priority:     input.Priority,
		studentNames: map[string]string{},
	}

	ctx.capacity = cfg.MaxGroupsPerSlot
	if ctx.capacity <= 0 {
		ctx.capacity = input.Rooms.Size()
	}

	ctx.registry = SplitCourses(input.Courses, cfg.SplitThreshold)

	enrollments := dedupeEnrollments(input.Enrollments)
	ctx.groupsByCourse = DistributeStudents(input.Courses, enrollments)

	// student -> post-split course list
	ctx.studentCourses = map[string][]model.CourseID{}
	for _, e := range enrollments {
		if !ctx.registry.Knows(e.CourseID) {
			continue
		}
		ctx.studentCourses[e.StudentID] = append(ctx.studentCourses[e.StudentID], e.CourseID)
		ctx.studentNames[e.StudentID] = e.Name
	}
	for id, courses := range ctx.studentCourses {
		ctx.studentCourses[id] = ctx.registry.Rewrite(lo.Uniq(courses))
	}
	ctx.studentIDs = lo.Keys(ctx.studentCourses)
	sort.Strings(ctx.studentIDs)

	// cohort -> post-split course list
	ctx.cohortCourses = map[model.CohortKey][]model.CourseID{}
	for _, row := range input.CohortRows {
		if !ctx.registry.Knows(row.CourseID) {
			continue
		}
		key := row.Key()
		ctx.cohortCourses[key] = append(ctx.cohortCourses[key], row.CourseID)
	}
	for key, courses := range ctx.cohortCourses {
		ctx.cohortCourses[key] = ctx.registry.Rewrite(lo.Uniq(courses))
	}
	ctx.cohortKeys = lo.Keys(ctx.cohortCourses)
	sort.Slice(ctx.cohortKeys, func(i, j int) bool {
		a, b := ctx.cohortKeys[i], ctx.cohortKeys[j]
		if a.Program != b.Program {
			return a.Program < b.Program
		}
		return a.EntryYear < b.EntryYear
	})

	ctx.machineDayIdxs = matchMachineDays(input.Days, input.MachineDays)
	return ctx, nil
}

// dedupeEnrollments collapses duplicate (student, course) records, keeping
// the first occurrence.
func dedupeEnrollments(in []*model.Enrollment) []*model.Enrollment {
	type pair struct {
		student string
		course  model.CourseID
	}
	seen := map[pair]bool{}
	out := make([]*model.Enrollment, 0, len(in))
	for _, e := range in {
		k := pair{student: e.StudentID, course: e.CourseID}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, e)
	}
	return out
}

func matchMachineDays(days []model.ExamDay, reserved []time.Time) []int {
	var idxs []int
	for _, d := range days {
		for _, r := range reserved {
			if d.Date.Equal(r) {
				idxs = append(idxs, d.Index)
				break
			}
		}
	}
	return idxs
}

// Slot indexing: slot = (day-1)*len(shifts) + shiftPos, ordered by
// (day, shift).

func (ctx *SolveContext) slotCount() int {
	return len(ctx.days) * len(ctx.shifts)
}

func (ctx *SolveContext) dayOfSlot(slot int) int {
	return slot/len(ctx.shifts) + 1
}

func (ctx *SolveContext) shiftPosOfSlot(slot int) int {
	return slot % len(ctx.shifts)
}

func (ctx *SolveContext) shiftOrdinalOfSlot(slot int) int {
	return ctx.shifts[ctx.shiftPosOfSlot(slot)].Ordinal
}

func (ctx *SolveContext) slotIndex(day, shiftPos int) int {
	return (day-1)*len(ctx.shifts) + shiftPos
}

func (ctx *SolveContext) slotOf(s model.Slot) int {
	for pos, sh := range ctx.shifts {
		if sh.Ordinal == s.Shift {
			return ctx.slotIndex(s.Day, pos)
		}
	}
	return -1
}

func (ctx *SolveContext) slotFromIndex(slot int) model.Slot {
	return model.Slot{Day: ctx.dayOfSlot(slot), Shift: ctx.shiftOrdinalOfSlot(slot)}
}

func (ctx *SolveContext) dateOfDay(day int) time.Time {
	return ctx.days[day-1].Date
}
