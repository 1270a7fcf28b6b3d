package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rhyrak/exam-schedule/internal/csvio"
	"github.com/rhyrak/exam-schedule/internal/scheduler"
	"github.com/rhyrak/exam-schedule/pkg/model"
)

func newSolveCmd(app *App) *cobra.Command {
	var timeout string

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve the timetable and export the schedule tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("timeout") {
				d, err := parseTimeout(timeout)
				if err != nil {
					return err
				}
				app.Cfg.Solver.PhaseTimeout = d
			}

			input, err := csvio.LoadInput(app.Cfg.Input.Paths(), app.Cfg.Input.Delimiter)
			if err != nil {
				return err
			}

			engine := scheduler.NewEngine(app.Cfg.Solver, app.Log)
			res := engine.Solve(input)

			switch res.Status {
			case model.StatusInfeasible:
				return fmt.Errorf("no feasible schedule: %s", res.Err)
			case model.StatusError:
				return fmt.Errorf("solve failed: %s", res.Err)
			}

			delim := app.Cfg.Input.Delimiter
			if err := csvio.ExportSchedule(res.Records, app.Cfg.Output.ScheduleFile, delim); err != nil {
				return err
			}
			if err := csvio.ExportStudentSchedule(res.StudentRecords, app.Cfg.Output.StudentsFile, delim); err != nil {
				return err
			}
			if err := csvio.ExportViolations(res.Violations, app.Cfg.Output.ViolationsFile, delim); err != nil {
				return err
			}

			app.Log.Info("schedule exported",
				zap.String("status", res.Status),
				zap.String("schedule", app.Cfg.Output.ScheduleFile),
				zap.String("students", app.Cfg.Output.StudentsFile),
				zap.String("violations", app.Cfg.Output.ViolationsFile),
			)

			fmt.Printf("Status: %s\n", res.Status)
			fmt.Printf("Courses: %d (split: %d)\n", res.Stats.Courses, res.Stats.SplitCourses)
			fmt.Printf("Exam groups: %d\n", res.Stats.ExamGroups)
			fmt.Printf("Adjacent-day conflicts: %d\n", len(res.Violations))
			fmt.Printf("Elapsed: %s\n", res.Stats.Elapsed)
			return nil
		},
	}

	cmd.Flags().StringVar(&timeout, "timeout", "", "Per-phase time budget, e.g. 30s")
	cmd.Flags().IntVar(&app.Cfg.Solver.Workers, "workers", app.Cfg.Solver.Workers, "Parallel solver workers")
	cmd.Flags().BoolVar(&app.Cfg.Solver.CohortSameDayHard, "cohort-same-day-hard", app.Cfg.Solver.CohortSameDayHard, "Treat cohort same-day separation as a hard constraint")
	cmd.Flags().StringVar(&app.Cfg.Output.ScheduleFile, "out", app.Cfg.Output.ScheduleFile, "Schedule output file")

	return cmd
}
