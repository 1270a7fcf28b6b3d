package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gocarina/gocsv"

	"github.com/rhyrak/exam-schedule/internal/scheduler"
	apperr "github.com/rhyrak/exam-schedule/pkg/errors"
	"github.com/rhyrak/exam-schedule/pkg/model"
)

// Paths locates the input tables of one solve invocation. Priority and
// MachineDays are optional; an empty path stands for an empty table.
type Paths struct {
	Courses     string
	Students    string
	Cohorts     string
	Days        string
	Shifts      string
	Rooms       string
	Priority    string
	MachineDays string
}

var validate = validator.New()

func setDelimiter(delim rune) {
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = delim
		return r
	})
}

func loadTable[T any](path string) ([]*T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperr.Clone(apperr.ErrInput, fmt.Sprintf("failed to open %s", path))
	}
	defer f.Close()

	rows := []*T{}
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, apperr.Clone(apperr.ErrInput, fmt.Sprintf("failed to parse %s: %v", path, err))
	}
	return rows, nil
}

// LoadInput reads and normalizes every input table. The room category and
// calendar columns are resolved here so the engine never sees raw strings.
func LoadInput(paths Paths, delim rune) (scheduler.Input, error) {
	setDelimiter(delim)

	var input scheduler.Input
	var err error

	if input.Courses, err = LoadCourses(paths.Courses); err != nil {
		return input, err
	}
	if input.Enrollments, err = loadTable[model.Enrollment](paths.Students); err != nil {
		return input, err
	}
	if input.CohortRows, err = loadTable[model.CohortRow](paths.Cohorts); err != nil {
		return input, err
	}
	if input.Days, err = LoadDays(paths.Days); err != nil {
		return input, err
	}
	if input.Shifts, err = LoadShifts(paths.Shifts); err != nil {
		return input, err
	}
	if input.Rooms, err = LoadRooms(paths.Rooms); err != nil {
		return input, err
	}
	if paths.Priority != "" {
		if input.Priority, err = LoadPriority(paths.Priority); err != nil {
			return input, err
		}
	}
	if paths.MachineDays != "" {
		if input.MachineDays, err = LoadMachineDays(paths.MachineDays); err != nil {
			return input, err
		}
	}
	return input, nil
}

// LoadCourses reads the course table and resolves the room-category column.
func LoadCourses(path string) ([]*model.Course, error) {
	courses, err := loadTable[model.Course](path)
	if err != nil {
		return nil, err
	}
	for _, c := range courses {
		c.Category, err = parseCategory(c.CategorySTR)
		if err != nil {
			return nil, apperr.Clone(apperr.ErrInput,
				fmt.Sprintf("course %s: %v", c.ID, err))
		}
	}
	return courses, nil
}

// LoadDays reads the calendar table, drops unusable days, and indexes the
// rest 1..D in date order.
func LoadDays(path string) ([]model.ExamDay, error) {
	rows, err := loadTable[model.DayRow](path)
	if err != nil {
		return nil, err
	}
	var days []model.ExamDay
	for _, row := range rows {
		if row.Usable == 0 {
			continue
		}
		date, err := time.Parse(model.DateLayout, row.DateSTR)
		if err != nil {
			return nil, apperr.Clone(apperr.ErrInput,
				fmt.Sprintf("bad date %q in %s", row.DateSTR, path))
		}
		days = append(days, model.ExamDay{Date: date})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	for i := range days {
		days[i].Index = i + 1
	}
	return days, nil
}

// LoadShifts reads the shift table in ordinal order.
func LoadShifts(path string) ([]model.Shift, error) {
	rows, err := loadTable[model.Shift](path)
	if err != nil {
		return nil, err
	}
	shifts := make([]model.Shift, 0, len(rows))
	for _, row := range rows {
		shifts = append(shifts, *row)
	}
	sort.Slice(shifts, func(i, j int) bool { return shifts[i].Ordinal < shifts[j].Ordinal })
	return shifts, nil
}

// LoadRooms reads the room table into the category pools.
func LoadRooms(path string) (model.RoomPool, error) {
	var pool model.RoomPool
	rooms, err := loadTable[model.Room](path)
	if err != nil {
		return pool, err
	}
	for _, r := range rooms {
		r.Category, err = parseCategory(r.CategorySTR)
		if err != nil {
			return pool, apperr.Clone(apperr.ErrInput,
				fmt.Sprintf("room %s: %v", r.ID, err))
		}
		switch r.Category {
		case model.RoomLecture:
			pool.Lecture = append(pool.Lecture, *r)
		case model.RoomComputer:
			pool.Computer = append(pool.Computer, *r)
		case model.RoomMachine:
			pool.Machine = append(pool.Machine, *r)
		}
	}
	return pool, nil
}

// LoadPriority reads and validates the priority-window table.
func LoadPriority(path string) ([]*model.PriorityWindow, error) {
	rows, err := loadTable[model.PriorityWindow](path)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := validate.Struct(row); err != nil {
			return nil, apperr.Clone(apperr.ErrInput,
				fmt.Sprintf("invalid priority entry %s: %v", row.Key(), err))
		}
	}
	return rows, nil
}

// LoadMachineDays reads the reserved-day table.
func LoadMachineDays(path string) ([]time.Time, error) {
	rows, err := loadTable[model.MachineDayRow](path)
	if err != nil {
		return nil, err
	}
	var days []time.Time
	for _, row := range rows {
		date, err := time.Parse(model.DateLayout, row.DateSTR)
		if err != nil {
			return nil, apperr.Clone(apperr.ErrInput,
				fmt.Sprintf("bad date %q in %s", row.DateSTR, path))
		}
		days = append(days, date)
	}
	return days, nil
}

func parseCategory(s string) (model.RoomCategory, error) {
	switch model.RoomCategory(s) {
	case model.RoomLecture, model.RoomComputer, model.RoomMachine:
		return model.RoomCategory(s), nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}
