package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rhyrak/exam-schedule/pkg/model"
)

func TestValidateScheduleAcceptsCleanSchedule(t *testing.T) {
	records := []model.ScheduleRecord{
		{CourseID: "A", Group: 1, Day: 1, Shift: 1, Room: "R1", DateSTR: "2026-06-01"},
		{CourseID: "A", Group: 2, Day: 1, Shift: 1, Room: "R2", DateSTR: "2026-06-01"},
		{CourseID: "B", Group: 1, Day: 2, Shift: 1, Room: "R1", DateSTR: "2026-06-02"},
	}
	valid, msg := ValidateSchedule(records, nil, 5, 2)
	assert.True(t, valid, msg)
	assert.NotContains(t, msg, "[FAIL]")
}

func TestValidateScheduleFlagsDuplicateGroup(t *testing.T) {
	records := []model.ScheduleRecord{
		{CourseID: "A", Group: 1, Day: 1, Shift: 1, Room: "R1"},
		{CourseID: "A", Group: 1, Day: 2, Shift: 1, Room: "R2"},
	}
	valid, msg := ValidateSchedule(records, nil, 5, 2)
	assert.False(t, valid)
	assert.Contains(t, msg, "[FAIL]: Duplicate group check.")
	assert.Contains(t, msg, "scheduled twice")
}

func TestValidateScheduleFlagsRoomCollision(t *testing.T) {
	records := []model.ScheduleRecord{
		{CourseID: "A", Group: 1, Day: 1, Shift: 1, Room: "R1"},
		{CourseID: "B", Group: 1, Day: 1, Shift: 1, Room: "R1"},
	}
	valid, msg := ValidateSchedule(records, nil, 5, 2)
	assert.False(t, valid)
	assert.Contains(t, msg, "[FAIL]: Room collision check.")
}

func TestValidateScheduleFlagsOverCapacity(t *testing.T) {
	records := []model.ScheduleRecord{
		{CourseID: "A", Group: 1, Day: 1, Shift: 1, Room: "R1"},
		{CourseID: "B", Group: 1, Day: 1, Shift: 1, Room: "R2"},
		{CourseID: "C", Group: 1, Day: 1, Shift: 1, Room: "R3"},
	}
	valid, msg := ValidateSchedule(records, nil, 2, 2)
	assert.False(t, valid)
	assert.Contains(t, msg, "[FAIL]: Slot capacity check.")
}

func TestValidateScheduleFlagsSplitGapViolation(t *testing.T) {
	reg := SplitCourses([]*model.Course{
		{ID: "BIG", GroupCount: 30, Category: model.RoomLecture},
	}, 25)

	records := []model.ScheduleRecord{
		{CourseID: "BIG", Group: 1, Day: 1, Shift: 1, Room: "R1"},
		{CourseID: "BIG", Group: 16, Day: 2, Shift: 1, Room: "R2"},
	}
	valid, msg := ValidateSchedule(records, reg, 5, 2)
	assert.False(t, valid)
	assert.Contains(t, msg, "[FAIL]: Split day-gap check.")

	records[1].Day = 3
	valid, msg = ValidateSchedule(records, reg, 5, 2)
	assert.True(t, valid, msg)
}
