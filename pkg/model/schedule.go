package model

import "time"

// Solve statuses reported to the caller.
const (
	StatusOptimal    = "OPTIMAL"
	StatusFeasible   = "FEASIBLE"
	StatusInfeasible = "INFEASIBLE"
	StatusError      = "ERROR"
)

// ScheduleRecord is one exported (course, group) placement. Split courses are
// reported under their original identifier with contiguous group numbers.
type ScheduleRecord struct {
	CourseID CourseID `csv:"course_id"`
	Group    int      `csv:"group"`
	DateSTR  string   `csv:"date"`
	Shift    int      `csv:"shift"`
	Room     string   `csv:"room"`
	Date     time.Time `csv:"-"`
	Day      int       `csv:"-"`
}

// StudentScheduleRecord is the per-student view of the schedule, merged from
// the student distribution.
type StudentScheduleRecord struct {
	StudentID string   `csv:"student_id"`
	Name      string   `csv:"name"`
	CourseID  CourseID `csv:"course_id"`
	Group     int      `csv:"group"`
	DateSTR   string   `csv:"date"`
	Shift     int      `csv:"shift"`
	Room      string   `csv:"room"`
}

// Violation is one residual cohort-adjacent-day conflict, reported by the
// auditor for information only.
type Violation struct {
	Program    string `csv:"program"`
	EntryYear  int    `csv:"entry_year"`
	FirstDay   string `csv:"first_day"`
	FirstList  string `csv:"first_day_courses"`
	SecondDay  string `csv:"second_day"`
	SecondList string `csv:"second_day_courses"`
}

// SolveStats summarizes one engine invocation.
type SolveStats struct {
	Courses         int            `json:"courses"`
	ExamGroups      int            `json:"examGroups"`
	Students        int            `json:"students"`
	Cohorts         int            `json:"cohorts"`
	Days            int            `json:"days"`
	Shifts          int            `json:"shifts"`
	Rooms           int            `json:"rooms"`
	SplitCourses    int            `json:"splitCourses"`
	Elapsed         time.Duration  `json:"elapsed"`
	PhaseStatus     map[string]string `json:"phaseStatus"`
	ViolationCounts map[string]int `json:"violationCounts"`
}

// Result is the terminal outcome of one solve invocation. No partial schedule
// is ever returned for INFEASIBLE or ERROR.
type Result struct {
	Status         string
	Records        []ScheduleRecord
	StudentRecords []StudentScheduleRecord
	Violations     []Violation
	Stats          SolveStats
	Err            string
}
