package scheduler

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	apperr "github.com/rhyrak/exam-schedule/pkg/errors"
	"github.com/rhyrak/exam-schedule/pkg/model"
)

// Engine is the solve facade. It is stateless across invocations: every call
// to Solve derives a fresh SolveContext from its input tables.
type Engine struct {
	cfg model.SchedulerConfig
	log *zap.Logger
}

// NewEngine returns an engine with the given tunables. A nil logger is
// replaced by a no-op one.
func NewEngine(cfg model.SchedulerConfig, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{cfg: cfg, log: log}
}

// Solve runs the phased pipeline end to end and returns a terminal result.
// The status is OPTIMAL when no soft-constraint violations remain, FEASIBLE
// when some do, INFEASIBLE when a fatal phase finds no solution, and ERROR
// for invalid input or an internal fault. No partial schedule is returned
// for INFEASIBLE or ERROR.
func (e *Engine) Solve(input Input) (res model.Result) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("solve panicked", zap.Any("panic", r))
			res = model.Result{Status: model.StatusError, Err: fmt.Sprintf("internal error: %v", r)}
		}
		res.Stats.Elapsed = time.Since(start)
	}()

	ctx, err := NewSolveContext(input, e.cfg)
	if err != nil {
		e.log.Error("input rejected", zap.Error(err))
		return model.Result{Status: model.StatusError, Err: apperr.FromError(err).Message}
	}

	e.log.Info("solve starting",
		zap.Int("courses", len(input.Courses)),
		zap.Int("days", len(ctx.days)),
		zap.Int("shifts", len(ctx.shifts)),
		zap.Int("rooms", ctx.rooms.Size()),
		zap.Int("splitCourses", len(ctx.registry.Splits())),
	)

	st, err := ctx.orchestrate(e.log)
	if err != nil {
		e.log.Warn("solve infeasible", zap.Error(err))
		return model.Result{
			Status: model.StatusInfeasible,
			Err:    err.Error(),
			Stats:  ctx.stats(st),
		}
	}

	records := ctx.AssignRooms(st)
	if ok, report := ValidateSchedule(records, ctx.registry, ctx.capacity, ctx.cfg.SplitMinDayGap); !ok {
		e.log.Warn("schedule failed structural checks", zap.String("report", report))
	}
	res = model.Result{
		Status:         model.StatusOptimal,
		Records:        records,
		StudentRecords: ctx.studentRecords(records),
		Violations:     ctx.AuditAdjacentDays(st),
		Stats:          ctx.stats(st),
	}
	for _, name := range softFamilies {
		if res.Stats.ViolationCounts[name] > 0 {
			res.Status = model.StatusFeasible
			break
		}
	}

	e.log.Info("solve finished",
		zap.String("status", res.Status),
		zap.Int("records", len(res.Records)),
		zap.Int("adjacentDayConflicts", len(res.Violations)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res
}

// softFamilies are the violation counters that demote OPTIMAL to FEASIBLE.
var softFamilies = []string{
	"student_same_slot",
	"cohort_same_day",
	"student_same_day",
	"cohort_consecutive_day",
}

// studentRecords merges the exam-group membership with the placed schedule
// into the per-student export.
func (ctx *SolveContext) studentRecords(records []model.ScheduleRecord) []model.StudentScheduleRecord {
	var out []model.StudentScheduleRecord
	for _, r := range records {
		for _, g := range ctx.groupsByCourse[r.CourseID] {
			if g.Number != r.Group {
				continue
			}
			for _, m := range g.Members {
				out = append(out, model.StudentScheduleRecord{
					StudentID: m.StudentID,
					Name:      m.Name,
					CourseID:  r.CourseID,
					Group:     r.Group,
					DateSTR:   r.DateSTR,
					Shift:     r.Shift,
					Room:      r.Room,
				})
			}
		}
	}
	return out
}

func (ctx *SolveContext) stats(st *solveState) model.SolveStats {
	stats := model.SolveStats{
		Courses:         len(ctx.registry.Courses()) - len(ctx.registry.Splits()),
		Students:        len(ctx.studentIDs),
		Cohorts:         len(ctx.cohortKeys),
		Days:            len(ctx.days),
		Shifts:          len(ctx.shifts),
		Rooms:           ctx.rooms.Size(),
		SplitCourses:    len(ctx.registry.Splits()),
		PhaseStatus:     map[string]string{},
		ViolationCounts: map[string]int{},
	}
	for _, groups := range ctx.groupsByCourse {
		stats.ExamGroups += len(groups)
	}
	if st != nil {
		for k, v := range st.phaseStatus {
			stats.PhaseStatus[k] = v
		}
		for k, v := range st.violations {
			stats.ViolationCounts[k] = v
		}
	}
	return stats
}
