package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhyrak/exam-schedule/pkg/model"
)

func testContext(t *testing.T, input Input, cfg model.SchedulerConfig) *SolveContext {
	t.Helper()
	ctx, err := NewSolveContext(input, cfg)
	require.NoError(t, err)
	return ctx
}

func TestAssignRoomsDealsCategoriesRoundRobin(t *testing.T) {
	pool := model.RoomPool{
		Lecture:  []model.Room{{ID: "L1", Category: model.RoomLecture}, {ID: "L2", Category: model.RoomLecture}},
		Computer: []model.Room{{ID: "PC1", Category: model.RoomComputer}},
	}
	ctx := testContext(t, Input{
		Courses: []*model.Course{
			{ID: "LECT", GroupCount: 2, Category: model.RoomLecture},
			{ID: "LAB", GroupCount: 1, Category: model.RoomComputer},
		},
		Days:   testDays(2),
		Shifts: testShifts(1),
		Rooms:  pool,
	}, testConfig())

	st := &solveState{
		fixed: map[model.CourseID]model.Slot{
			"LECT": {Day: 1, Shift: 1},
			"LAB":  {Day: 1, Shift: 1},
		},
		machineAlloc: map[model.CourseID][]machineChunk{},
	}

	records := ctx.AssignRooms(st)
	require.Len(t, records, 3)

	rooms := map[model.CourseID][]string{}
	for _, r := range records {
		rooms[r.CourseID] = append(rooms[r.CourseID], r.Room)
		assert.Equal(t, 1, r.Day)
		assert.Equal(t, "2026-06-01", r.DateSTR)
	}
	assert.Equal(t, []string{"L1", "L2"}, rooms["LECT"])
	assert.Equal(t, []string{"PC1"}, rooms["LAB"])
}

func TestAssignRoomsFallsBackToGeneralPool(t *testing.T) {
	// no dedicated computer rooms: computer groups use the general pool
	ctx := testContext(t, Input{
		Courses: []*model.Course{{ID: "LAB", GroupCount: 1, Category: model.RoomComputer}},
		Days:    testDays(1),
		Shifts:  testShifts(1),
		Rooms:   lectureRooms(2),
	}, testConfig())

	st := &solveState{
		fixed:        map[model.CourseID]model.Slot{"LAB": {Day: 1, Shift: 1}},
		machineAlloc: map[model.CourseID][]machineChunk{},
	}

	records := ctx.AssignRooms(st)
	require.Len(t, records, 1)
	assert.Equal(t, "R1", records[0].Room)
}

func TestAssignRoomsRenumbersSplitHalves(t *testing.T) {
	ctx := testContext(t, Input{
		Courses: []*model.Course{{ID: "BIG", GroupCount: 30, Category: model.RoomLecture}},
		Days:    testDays(6),
		Shifts:  testShifts(1),
		Rooms:   lectureRooms(9),
	}, testConfig())

	st := &solveState{
		fixed: map[model.CourseID]model.Slot{
			"BIG_D1": {Day: 1, Shift: 1},
			"BIG_D2": {Day: 3, Shift: 1},
		},
		machineAlloc: map[model.CourseID][]machineChunk{},
	}

	records := ctx.AssignRooms(st)
	require.Len(t, records, 30)
	groups := map[int]int{}
	for _, r := range records {
		assert.Equal(t, model.CourseID("BIG"), r.CourseID)
		groups[r.Group] = r.Day
	}
	assert.Equal(t, 1, groups[1])
	assert.Equal(t, 1, groups[15])
	assert.Equal(t, 3, groups[16])
	assert.Equal(t, 3, groups[30])
}

func TestAssignRoomsIsDeterministic(t *testing.T) {
	ctx := testContext(t, Input{
		Courses: []*model.Course{
			{ID: "B", GroupCount: 2, Category: model.RoomLecture},
			{ID: "A", GroupCount: 1, Category: model.RoomLecture},
		},
		Days:   testDays(2),
		Shifts: testShifts(2),
		Rooms:  lectureRooms(4),
	}, testConfig())

	st := &solveState{
		fixed: map[model.CourseID]model.Slot{
			"A": {Day: 1, Shift: 2},
			"B": {Day: 1, Shift: 2},
		},
		machineAlloc: map[model.CourseID][]machineChunk{},
	}

	first := ctx.AssignRooms(st)
	second := ctx.AssignRooms(st)
	assert.Equal(t, first, second)
	// sorted by course then group within the slot
	assert.Equal(t, model.CourseID("A"), first[0].CourseID)
	assert.Equal(t, "R1", first[0].Room)
}
