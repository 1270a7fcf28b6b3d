package model

import "fmt"

// CohortKey identifies a (program, entry-year) student group.
type CohortKey struct {
	Program   string
	EntryYear int
}

func (k CohortKey) String() string {
	return fmt.Sprintf("%s-%d", k.Program, k.EntryYear)
}

// CohortRow is one cohort-membership record as loaded from the cohort table.
type CohortRow struct {
	Program   string   `csv:"program"`
	EntryYear int      `csv:"entry_year"`
	CourseID  CourseID `csv:"course_id"`
}

func (r *CohortRow) Key() CohortKey {
	return CohortKey{Program: r.Program, EntryYear: r.EntryYear}
}

// PriorityWindow requests that the private courses of one cohort are placed
// within the first WindowDays usable days (Phase 2).
type PriorityWindow struct {
	Program    string `csv:"program" validate:"required"`
	EntryYear  int    `csv:"entry_year" validate:"required,gt=1900"`
	WindowDays int    `csv:"window_days" validate:"required,gt=0"`
}

func (p *PriorityWindow) Key() CohortKey {
	return CohortKey{Program: p.Program, EntryYear: p.EntryYear}
}
