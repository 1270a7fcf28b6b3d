package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rhyrak/exam-schedule/internal/config"
)

// App carries the process configuration and logger into the subcommands.
type App struct {
	Cfg *config.Config
	Log *zap.Logger
}

// NewRootCmd creates the top-level "examsched" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "examsched",
		Short:         "Constraint-based exam timetabling engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&app.Cfg.Input.CoursesFile, "courses", app.Cfg.Input.CoursesFile, "Course table")
	root.PersistentFlags().StringVar(&app.Cfg.Input.StudentsFile, "students", app.Cfg.Input.StudentsFile, "Enrollment table")
	root.PersistentFlags().StringVar(&app.Cfg.Input.CohortsFile, "cohorts", app.Cfg.Input.CohortsFile, "Cohort membership table")
	root.PersistentFlags().StringVar(&app.Cfg.Input.DaysFile, "days", app.Cfg.Input.DaysFile, "Calendar table")
	root.PersistentFlags().StringVar(&app.Cfg.Input.ShiftsFile, "shifts", app.Cfg.Input.ShiftsFile, "Shift table")
	root.PersistentFlags().StringVar(&app.Cfg.Input.RoomsFile, "rooms", app.Cfg.Input.RoomsFile, "Room table")
	root.PersistentFlags().StringVar(&app.Cfg.Input.PriorityFile, "priority", app.Cfg.Input.PriorityFile, "Priority window table (optional)")
	root.PersistentFlags().StringVar(&app.Cfg.Input.MachineDaysFile, "machine-days", app.Cfg.Input.MachineDaysFile, "Reserved machine-day table (optional)")

	root.AddCommand(
		newSolveCmd(app),
		newValidateCmd(app),
		newCheckCapacityCmd(app),
	)

	return root
}

func parseTimeout(raw string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeout must be positive, got %s", d)
	}
	return d, nil
}
