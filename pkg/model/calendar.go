package model

import "time"

// DateLayout is the wire format for calendar dates in every table.
const DateLayout = "2006-01-02"

// DayRow is one row of the usable-days table.
type DayRow struct {
	DateSTR string `csv:"date"`
	Usable  int    `csv:"usable"`
}

// ExamDay is a usable calendar day, indexed 1..D in date order. Days marked
// unusable are never indexed.
type ExamDay struct {
	Index int
	Date  time.Time
}

// Shift is one exam shift within a day, identified by its ordinal.
type Shift struct {
	Ordinal   int    `csv:"shift"`
	StartTime string `csv:"start_time"`
}

// Slot is a (day, shift) pair. Day is the 1-based usable-day index and Shift
// the shift ordinal.
type Slot struct {
	Day   int
	Shift int
}

// MachineDayRow reserves one calendar day for the Phase 0 machine-testing
// pass.
type MachineDayRow struct {
	DateSTR string `csv:"date"`
}
