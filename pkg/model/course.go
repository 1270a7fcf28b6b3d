package model

// CourseID identifies one exam sitting of a course. Split courses are modeled
// as two synthetic IDs derived from the original with SplitCourseID.
type CourseID string

type RoomCategory string

const (
	RoomLecture  RoomCategory = "lecture"
	RoomComputer RoomCategory = "computer"
	// RoomMachine marks the specialized machine-testing category. Courses in
	// this category are packed directly onto reserved days (Phase 0) and the
	// machine rooms are excluded from the general pool.
	RoomMachine RoomCategory = "machine"
)

type Course struct {
	ID          CourseID     `csv:"course_id"`
	GroupCount  int          `csv:"group_count"`
	CategorySTR string       `csv:"category"`
	Category    RoomCategory `csv:"-"`
}

// MachineMode reports whether the course is scheduled by the Phase 0
// bin-packing pass instead of the optimizer.
func (c *Course) MachineMode() bool {
	return c.Category == RoomMachine
}

// SplitCourseID derives the synthetic identifier for one half of a split
// course. half is 1 or 2.
func SplitCourseID(original CourseID, half int) CourseID {
	if half == 1 {
		return original + "_D1"
	}
	return original + "_D2"
}
