package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/rhyrak/exam-schedule/pkg/model"
)

func setWriterDelimiter(delim rune) {
	gocsv.SetCSVWriter(func(out io.Writer) *gocsv.SafeCSVWriter {
		w := csv.NewWriter(out)
		w.Comma = delim
		return gocsv.NewSafeCSVWriter(w)
	})
}

func exportTable[T any](rows []T, path string, delim rune) error {
	setWriterDelimiter(delim)
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer out.Close()
	if err := gocsv.MarshalFile(&rows, out); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ExportSchedule writes the per-group schedule table.
func ExportSchedule(records []model.ScheduleRecord, path string, delim rune) error {
	return exportTable(records, path, delim)
}

// ExportStudentSchedule writes the per-student schedule table.
func ExportStudentSchedule(records []model.StudentScheduleRecord, path string, delim rune) error {
	return exportTable(records, path, delim)
}

// ExportViolations writes the residual adjacent-day conflict report.
func ExportViolations(violations []model.Violation, path string, delim rune) error {
	return exportTable(violations, path, delim)
}

// ScheduleString renders the schedule table as CSV text, for the HTTP
// download surface.
func ScheduleString(records []model.ScheduleRecord, delim rune) (string, error) {
	setWriterDelimiter(delim)
	return gocsv.MarshalString(&records)
}
