package cli

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/rhyrak/exam-schedule/internal/csvio"
	"github.com/rhyrak/exam-schedule/pkg/model"
)

// newValidateCmd checks the input tables for referential defects without
// solving: duplicate courses, enrollments and cohort rows pointing at
// unknown courses, and priority entries for cohorts with no members.
func newValidateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the input tables for integrity defects",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := csvio.LoadInput(app.Cfg.Input.Paths(), app.Cfg.Input.Delimiter)
			if err != nil {
				return err
			}

			failures := 0
			report := func(ok bool, name, detail string) {
				if ok {
					fmt.Printf("[  OK]: %s\n", name)
					return
				}
				failures++
				fmt.Printf("[FAIL]: %s\n%s", name, detail)
			}

			known := map[model.CourseID]bool{}
			var dupDetail string
			for _, c := range input.Courses {
				if known[c.ID] {
					dupDetail += fmt.Sprintf("- Duplicate course %s\n", c.ID)
				}
				known[c.ID] = true
			}
			report(dupDetail == "", "Duplicate course check.", dupDetail)

			var enrollDetail string
			for _, id := range lo.Uniq(lo.Map(input.Enrollments, func(e *model.Enrollment, _ int) model.CourseID { return e.CourseID })) {
				if !known[id] {
					enrollDetail += fmt.Sprintf("- Enrollment references unknown course %s\n", id)
				}
			}
			report(enrollDetail == "", "Enrollment reference check.", enrollDetail)

			cohorts := map[model.CohortKey]bool{}
			var cohortDetail string
			for _, row := range input.CohortRows {
				cohorts[row.Key()] = true
				if !known[row.CourseID] {
					cohortDetail += fmt.Sprintf("- Cohort %s references unknown course %s\n", row.Key(), row.CourseID)
				}
			}
			report(cohortDetail == "", "Cohort reference check.", cohortDetail)

			var prioDetail string
			for _, p := range input.Priority {
				if !cohorts[p.Key()] {
					prioDetail += fmt.Sprintf("- Priority entry %s has no cohort members\n", p.Key())
				}
			}
			report(prioDetail == "", "Priority cohort check.", prioDetail)

			machineCourses := lo.CountBy(input.Courses, func(c *model.Course) bool { return c.MachineMode() })
			if machineCourses > 0 && (len(input.MachineDays) == 0 || len(input.Rooms.Machine) == 0) {
				fmt.Printf("[WARN]: %d machine courses but no reserved days or machine rooms; the optimizer will place them\n", machineCourses)
			}

			if failures > 0 {
				return fmt.Errorf("%d integrity check(s) failed", failures)
			}
			fmt.Println("Passed all tests")
			return nil
		},
	}
}
