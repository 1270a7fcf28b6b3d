package scheduler

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/rhyrak/exam-schedule/pkg/model"
)

// AuditAdjacentDays reports, per cohort, every pair of calendar-adjacent
// exam days. Adjacency is measured on calendar dates, not day indices, so a
// weekend between two usable days breaks the pair. The report is
// informational and never changes the solve status.
func (ctx *SolveContext) AuditAdjacentDays(st *solveState) []model.Violation {
	var out []model.Violation
	for _, key := range ctx.cohortKeys {
		byDay := map[int][]string{}
		for _, id := range ctx.cohortCourses[key] {
			slot, ok := st.fixed[id]
			if !ok {
				continue
			}
			orig := string(ctx.registry.Info(id).Original)
			byDay[slot.Day] = append(byDay[slot.Day], orig)
		}
		days := lo.Keys(byDay)
		sort.Ints(days)
		for i := 0; i+1 < len(days); i++ {
			first, second := days[i], days[i+1]
			d1, d2 := ctx.dateOfDay(first), ctx.dateOfDay(second)
			if d2.Sub(d1).Hours() != 24 {
				continue
			}
			out = append(out, model.Violation{
				Program:    key.Program,
				EntryYear:  key.EntryYear,
				FirstDay:   d1.Format(model.DateLayout),
				FirstList:  courseList(byDay[first]),
				SecondDay:  d2.Format(model.DateLayout),
				SecondList: courseList(byDay[second]),
			})
		}
	}
	return out
}

func courseList(ids []string) string {
	ids = lo.Uniq(ids)
	sort.Strings(ids)
	return strings.Join(ids, " ")
}
