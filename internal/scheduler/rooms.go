package scheduler

import (
	"sort"

	"github.com/rhyrak/exam-schedule/pkg/model"
)

type placement struct {
	original model.CourseID
	internal model.CourseID
	group    int
	category model.RoomCategory
}

// AssignRooms deterministically maps every solved (course, group) to a
// concrete room. Within each slot the groups are partitioned by room
// category, sorted by (course, group), and dealt round-robin across the
// category's room list, falling back to the whole general pool when a
// category has no dedicated rooms. Split halves are reported under their
// original identifier with contiguous group numbers.
func (ctx *SolveContext) AssignRooms(st *solveState) []model.ScheduleRecord {
	bySlot := map[int][]placement{}
	for _, id := range ctx.registry.Courses() {
		if _, machine := st.machineAlloc[id]; machine {
			continue
		}
		slot, ok := st.fixed[id]
		if !ok {
			continue
		}
		info := ctx.registry.Info(id)
		s := ctx.slotOf(slot)
		for g := 1; g <= info.GroupCount; g++ {
			bySlot[s] = append(bySlot[s], placement{
				original: info.Original,
				internal: id,
				group:    g + info.GroupOffset,
				category: info.Category,
			})
		}
	}

	var records []model.ScheduleRecord
	slots := make([]int, 0, len(bySlot))
	for s := range bySlot {
		slots = append(slots, s)
	}
	sort.Ints(slots)

	general := ctx.rooms.General()
	for _, s := range slots {
		lecture := filterPlacements(bySlot[s], model.RoomLecture)
		computer := filterPlacements(bySlot[s], model.RoomComputer)
		records = append(records, ctx.dealRooms(s, lecture, ctx.rooms.Lecture, general)...)
		records = append(records, ctx.dealRooms(s, computer, ctx.rooms.Computer, general)...)
	}

	records = append(records, ctx.machineRecords(st)...)

	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		if a.Shift != b.Shift {
			return a.Shift < b.Shift
		}
		if a.CourseID != b.CourseID {
			return a.CourseID < b.CourseID
		}
		return a.Group < b.Group
	})
	return records
}

func filterPlacements(in []placement, cat model.RoomCategory) []placement {
	var out []placement
	for _, p := range in {
		// lecture hosts anything that is not explicitly computer-based
		if (cat == model.RoomComputer) == (p.category == model.RoomComputer) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].original != out[j].original {
			return out[i].original < out[j].original
		}
		return out[i].group < out[j].group
	})
	return out
}

func (ctx *SolveContext) dealRooms(slot int, items []placement, rooms, fallback []model.Room) []model.ScheduleRecord {
	pool := rooms
	if len(pool) == 0 {
		pool = fallback
	}
	records := make([]model.ScheduleRecord, 0, len(items))
	day := ctx.dayOfSlot(slot)
	for idx, p := range items {
		records = append(records, ctx.newRecord(p.original, p.group, slot, pool[idx%len(pool)].ID, day))
	}
	return records
}

// machineRecords expands the Phase 0 chunk allocations: group numbers run
// contiguously across a course's chunks and each group occupies one machine
// room of its chunk's slot.
func (ctx *SolveContext) machineRecords(st *solveState) []model.ScheduleRecord {
	var records []model.ScheduleRecord
	machines := ctx.rooms.Machine
	for _, id := range ctx.registry.Courses() {
		chunks, ok := st.machineAlloc[id]
		if !ok {
			continue
		}
		info := ctx.registry.Info(id)
		group := 1
		for _, chunk := range chunks {
			for i := 0; i < chunk.count; i++ {
				room := machines[(chunk.start+i)%len(machines)]
				records = append(records, ctx.newRecord(info.Original, group, chunk.slot, room.ID, ctx.dayOfSlot(chunk.slot)))
				group++
			}
		}
	}
	return records
}

func (ctx *SolveContext) newRecord(course model.CourseID, group, slot int, room string, day int) model.ScheduleRecord {
	date := ctx.dateOfDay(day)
	return model.ScheduleRecord{
		CourseID: course,
		Group:    group,
		DateSTR:  date.Format(model.DateLayout),
		Shift:    ctx.shiftOrdinalOfSlot(slot),
		Room:     room,
		Date:     date,
		Day:      day,
	}
}
