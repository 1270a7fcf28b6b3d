package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rhyrak/exam-schedule/internal/csvio"
)

// newCheckCapacityCmd compares the exam-group demand against the slot
// capacity of the calendar before any solving happens: general groups
// against general slots, machine groups against the reserved days' machine
// rooms.
func newCheckCapacityCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check-capacity",
		Short: "Compare exam-group demand against calendar capacity",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := csvio.LoadInput(app.Cfg.Input.Paths(), app.Cfg.Input.Delimiter)
			if err != nil {
				return err
			}

			perSlot := app.Cfg.Solver.MaxGroupsPerSlot
			if perSlot <= 0 {
				perSlot = input.Rooms.Size()
			}

			reserved := map[string]bool{}
			machineActive := len(input.MachineDays) > 0 && len(input.Rooms.Machine) > 0
			if machineActive {
				for _, d := range input.MachineDays {
					reserved[d.Format("2006-01-02")] = true
				}
			}
			generalDays := 0
			reservedDays := 0
			for _, d := range input.Days {
				if reserved[d.Date.Format("2006-01-02")] {
					reservedDays++
				} else {
					generalDays++
				}
			}

			generalGroups, machineGroups := 0, 0
			for _, c := range input.Courses {
				if c.MachineMode() && machineActive {
					machineGroups += c.GroupCount
				} else {
					generalGroups += c.GroupCount
				}
			}

			generalCapacity := generalDays * len(input.Shifts) * perSlot
			machineCapacity := reservedDays * len(input.Shifts) * len(input.Rooms.Machine)

			fmt.Printf("General: %d groups over %d days x %d shifts x %d rooms = %d seats\n",
				generalGroups, generalDays, len(input.Shifts), perSlot, generalCapacity)
			if machineActive {
				fmt.Printf("Machine: %d groups over %d days x %d shifts x %d rooms = %d seats\n",
					machineGroups, reservedDays, len(input.Shifts), len(input.Rooms.Machine), machineCapacity)
			}

			if generalGroups > generalCapacity {
				return fmt.Errorf("insufficient general capacity: %d groups, %d seats", generalGroups, generalCapacity)
			}
			if machineGroups > machineCapacity {
				return fmt.Errorf("insufficient machine capacity: %d groups, %d seats", machineGroups, machineCapacity)
			}
			fmt.Println("Capacity is sufficient")
			return nil
		},
	}
}
