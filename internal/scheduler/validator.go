package scheduler

import (
	"fmt"

	"github.com/rhyrak/exam-schedule/pkg/model"
)

// ValidateSchedule checks an exported schedule for structural defects:
// duplicate (course, group) rows, a room hosting two groups in one slot,
// slots over the group budget, and split halves closer than the minimum day
// gap. Returns false and a report for invalid schedules.
func ValidateSchedule(records []model.ScheduleRecord, reg *Registry, capacity, minGap int) (bool, string) {
	var message string
	var valid bool = true
	var hasDuplicate bool = false
	var hasRoomCollision bool = false
	var hasOverCapacity bool = false
	var hasGapViolation bool = false

	type groupKey struct {
		course model.CourseID
		group  int
	}
	type slotKey struct {
		day   int
		shift int
	}

	seen := make(map[groupKey]bool)
	roomUse := make(map[slotKey]map[string]bool)
	slotLoad := make(map[slotKey]int)
	for _, r := range records {
		gk := groupKey{course: r.CourseID, group: r.Group}
		if seen[gk] {
			valid = false
			hasDuplicate = true
			message += fmt.Sprintf("- Course %s group %d scheduled twice\n", r.CourseID, r.Group)
		}
		seen[gk] = true

		sk := slotKey{day: r.Day, shift: r.Shift}
		if roomUse[sk] == nil {
			roomUse[sk] = make(map[string]bool)
		}
		if roomUse[sk][r.Room] {
			valid = false
			hasRoomCollision = true
			message += fmt.Sprintf("- Room %s assigned multiple times on %s shift %d\n", r.Room, r.DateSTR, r.Shift)
		}
		roomUse[sk][r.Room] = true
		slotLoad[sk]++
	}

	if capacity > 0 {
		for sk, load := range slotLoad {
			if load > capacity {
				valid = false
				hasOverCapacity = true
				message += fmt.Sprintf("- Day %d shift %d holds %d groups, budget is %d\n", sk.day, sk.shift, load, capacity)
			}
		}
	}

	if reg != nil {
		for _, pair := range reg.Splits() {
			firstCount := reg.Info(pair.First).GroupCount
			firstDay, secondDay := -1, -1
			for _, r := range records {
				if r.CourseID != pair.Original {
					continue
				}
				if r.Group <= firstCount {
					firstDay = r.Day
				} else {
					secondDay = r.Day
				}
			}
			if firstDay < 0 || secondDay < 0 {
				continue
			}
			gap := secondDay - firstDay
			if gap < 0 {
				gap = -gap
			}
			if gap < minGap {
				valid = false
				hasGapViolation = true
				message += fmt.Sprintf("- Split course %s halves are %d days apart, minimum is %d\n", pair.Original, gap, minGap)
			}
		}
	}

	if hasGapViolation {
		message = "[FAIL]: Split day-gap check.\n" + message
	} else {
		message = "[  OK]: Split day-gap check.\n" + message
	}
	if hasOverCapacity {
		message = "[FAIL]: Slot capacity check.\n" + message
	} else {
		message = "[  OK]: Slot capacity check.\n" + message
	}
	if hasRoomCollision {
		message = "[FAIL]: Room collision check.\n" + message
	} else {
		message = "[  OK]: Room collision check.\n" + message
	}
	if hasDuplicate {
		message = "[FAIL]: Duplicate group check.\n" + message
	} else {
		message = "[  OK]: Duplicate group check.\n" + message
	}

	return valid, message
}
