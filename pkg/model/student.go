package model

// Enrollment is one (student, course) record from the enrollment table.
// Duplicate (student_id, course_id) pairs are collapsed by the loader.
type Enrollment struct {
	StudentID string   `csv:"student_id"`
	Name      string   `csv:"name"`
	CourseID  CourseID `csv:"course_id"`
}

// ExamGroup is one sitting of a course: a contiguous, alphabetically ordered
// slice of the course's students, assigned to exactly one room. Groups of the
// same course always share the same (day, shift).
type ExamGroup struct {
	Course  CourseID
	Number  int
	Members []GroupMember
}

type GroupMember struct {
	StudentID string
	Name      string
}
