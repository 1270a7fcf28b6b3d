package scheduler

import (
	"sort"

	"github.com/rhyrak/exam-schedule/pkg/model"
)

// DistributeStudents partitions each course's enrolled students into its
// numbered exam groups: students sorted by name, sliced into groupCount
// contiguous near-equal parts, remainder going to the earliest groups. The
// procedure is deterministic; re-running it on unchanged enrollment yields
// identical groups. Distribution always works on the original (pre-split)
// course: split halves cover contiguous group-number ranges of the original.
func DistributeStudents(courses []*model.Course, enrollments []*model.Enrollment) map[model.CourseID][]model.ExamGroup {
	byCourse := map[model.CourseID][]*model.Enrollment{}
	for _, e := range enrollments {
		byCourse[e.CourseID] = append(byCourse[e.CourseID], e)
	}

	out := make(map[model.CourseID][]model.ExamGroup, len(courses))
	for _, course := range courses {
		groups := make([]model.ExamGroup, course.GroupCount)
		for i := range groups {
			groups[i] = model.ExamGroup{Course: course.ID, Number: i + 1}
		}

		enrolled := byCourse[course.ID]
		sort.SliceStable(enrolled, func(i, j int) bool {
			if enrolled[i].Name != enrolled[j].Name {
				return enrolled[i].Name < enrolled[j].Name
			}
			return enrolled[i].StudentID < enrolled[j].StudentID
		})

		base := len(enrolled) / course.GroupCount
		extra := len(enrolled) % course.GroupCount
		start := 0
		for g := 0; g < course.GroupCount; g++ {
			size := base
			if g < extra {
				size++
			}
			for _, e := range enrolled[start : start+size] {
				groups[g].Members = append(groups[g].Members, model.GroupMember{
					StudentID: e.StudentID,
					Name:      e.Name,
				})
			}
			start += size
		}
		out[course.ID] = groups
	}
	return out
}
