package csvio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhyrak/exam-schedule/pkg/model"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeInputTables(t *testing.T, dir string) Paths {
	t.Helper()
	return Paths{
		Courses: writeFile(t, dir, "courses.csv",
			"course_id;group_count;category\nMATH101;2;lecture\nCS200;1;computer\nITEST;3;machine\n"),
		Students: writeFile(t, dir, "students.csv",
			"student_id;name;course_id\ns1;Alice;MATH101\ns2;Bob;CS200\n"),
		Cohorts: writeFile(t, dir, "cohorts.csv",
			"program;entry_year;course_id\nENG;2025;MATH101\nENG;2025;CS200\n"),
		Days: writeFile(t, dir, "days.csv",
			"date;usable\n2026-06-03;1\n2026-06-01;1\n2026-06-02;0\n"),
		Shifts: writeFile(t, dir, "shifts.csv",
			"shift;start_time\n2;14:00\n1;09:00\n"),
		Rooms: writeFile(t, dir, "rooms.csv",
			"room_id;category;capacity\nL1;lecture;40\nPC1;computer;25\nM1;machine;10\n"),
		Priority: writeFile(t, dir, "priority.csv",
			"program;entry_year;window_days\nENG;2025;3\n"),
		MachineDays: writeFile(t, dir, "machine_days.csv",
			"date\n2026-06-01\n"),
	}
}

func TestLoadInputReadsAllTables(t *testing.T) {
	input, err := LoadInput(writeInputTables(t, t.TempDir()), ';')
	require.NoError(t, err)

	require.Len(t, input.Courses, 3)
	assert.Equal(t, model.RoomLecture, input.Courses[0].Category)
	assert.True(t, input.Courses[2].MachineMode())

	assert.Len(t, input.Enrollments, 2)
	assert.Len(t, input.CohortRows, 2)

	// unusable day dropped, the rest indexed in date order
	require.Len(t, input.Days, 2)
	assert.Equal(t, 1, input.Days[0].Index)
	assert.Equal(t, "2026-06-01", input.Days[0].Date.Format(model.DateLayout))
	assert.Equal(t, "2026-06-03", input.Days[1].Date.Format(model.DateLayout))

	// shifts sorted by ordinal
	require.Len(t, input.Shifts, 2)
	assert.Equal(t, 1, input.Shifts[0].Ordinal)

	assert.Len(t, input.Rooms.Lecture, 1)
	assert.Len(t, input.Rooms.Computer, 1)
	assert.Len(t, input.Rooms.Machine, 1)
	assert.Equal(t, 2, input.Rooms.Size())

	require.Len(t, input.Priority, 1)
	assert.Equal(t, 3, input.Priority[0].WindowDays)

	require.Len(t, input.MachineDays, 1)
	assert.Equal(t, "2026-06-01", input.MachineDays[0].Format(model.DateLayout))
}

func TestLoadInputOptionalTablesMayBeOmitted(t *testing.T) {
	paths := writeInputTables(t, t.TempDir())
	paths.Priority = ""
	paths.MachineDays = ""

	input, err := LoadInput(paths, ';')
	require.NoError(t, err)
	assert.Empty(t, input.Priority)
	assert.Empty(t, input.MachineDays)
}

func TestLoadCoursesRejectsUnknownCategory(t *testing.T) {
	setDelimiter(';')
	path := writeFile(t, t.TempDir(), "courses.csv",
		"course_id;group_count;category\nMATH101;2;gym\n")
	_, err := LoadCourses(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")
}

func TestLoadDaysRejectsMalformedDate(t *testing.T) {
	setDelimiter(';')
	path := writeFile(t, t.TempDir(), "days.csv",
		"date;usable\n01/06/2026;1\n")
	_, err := LoadDays(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad date")
}

func TestLoadPriorityRejectsNonPositiveWindow(t *testing.T) {
	setDelimiter(';')
	path := writeFile(t, t.TempDir(), "priority.csv",
		"program;entry_year;window_days\nENG;2025;0\n")
	_, err := LoadPriority(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid priority entry")
}

func TestLoadInputMissingFileIsInputError(t *testing.T) {
	paths := writeInputTables(t, t.TempDir())
	paths.Courses = filepath.Join(t.TempDir(), "missing.csv")
	_, err := LoadInput(paths, ';')
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open")
}
