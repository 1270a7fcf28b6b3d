package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhyrak/exam-schedule/pkg/model"
)

func TestDistributeStudentsSlicesAlphabetically(t *testing.T) {
	courses := []*model.Course{{ID: "MATH101", GroupCount: 2, Category: model.RoomLecture}}
	enrollments := []*model.Enrollment{
		{StudentID: "s3", Name: "Carol", CourseID: "MATH101"},
		{StudentID: "s1", Name: "Alice", CourseID: "MATH101"},
		{StudentID: "s4", Name: "Dave", CourseID: "MATH101"},
		{StudentID: "s2", Name: "Bob", CourseID: "MATH101"},
	}

	groups := DistributeStudents(courses, enrollments)["MATH101"]
	require.Len(t, groups, 2)
	assert.Equal(t, 1, groups[0].Number)
	assert.Equal(t, 2, groups[1].Number)
	require.Len(t, groups[0].Members, 2)
	require.Len(t, groups[1].Members, 2)
	assert.Equal(t, "Alice", groups[0].Members[0].Name)
	assert.Equal(t, "Bob", groups[0].Members[1].Name)
	assert.Equal(t, "Carol", groups[1].Members[0].Name)
	assert.Equal(t, "Dave", groups[1].Members[1].Name)
}

func TestDistributeStudentsRemainderGoesToEarliestGroups(t *testing.T) {
	courses := []*model.Course{{ID: "CS1", GroupCount: 3, Category: model.RoomLecture}}
	var enrollments []*model.Enrollment
	names := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	for i, n := range names {
		enrollments = append(enrollments, &model.Enrollment{
			StudentID: string(rune('a' + i)),
			Name:      n,
			CourseID:  "CS1",
		})
	}

	groups := DistributeStudents(courses, enrollments)["CS1"]
	require.Len(t, groups, 3)
	assert.Len(t, groups[0].Members, 3)
	assert.Len(t, groups[1].Members, 3)
	assert.Len(t, groups[2].Members, 2)
}

func TestDistributeStudentsIsIdempotent(t *testing.T) {
	courses := []*model.Course{{ID: "CS1", GroupCount: 2, Category: model.RoomLecture}}
	enrollments := []*model.Enrollment{
		{StudentID: "s1", Name: "Zed", CourseID: "CS1"},
		{StudentID: "s2", Name: "Amy", CourseID: "CS1"},
		{StudentID: "s3", Name: "Amy", CourseID: "CS1"},
	}

	first := DistributeStudents(courses, enrollments)
	second := DistributeStudents(courses, enrollments)
	assert.Equal(t, first, second)

	// ties on name break on student id
	assert.Equal(t, "s2", first["CS1"][0].Members[0].StudentID)
}

func TestDistributeStudentsEmptyEnrollmentKeepsGroupShells(t *testing.T) {
	courses := []*model.Course{{ID: "CS1", GroupCount: 4, Category: model.RoomLecture}}
	groups := DistributeStudents(courses, nil)["CS1"]
	require.Len(t, groups, 4)
	for _, g := range groups {
		assert.Empty(t, g.Members)
	}
}
