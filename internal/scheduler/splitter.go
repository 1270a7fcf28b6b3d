package scheduler

import "github.com/rhyrak/exam-schedule/pkg/model"

// CourseInfo is the registry entry of one schedulable course, possibly a
// synthetic split half.
type CourseInfo struct {
	ID         model.CourseID
	GroupCount int
	Category   model.RoomCategory
	// Original is the reporting identifier; equals ID for unsplit courses.
	Original model.CourseID
	// GroupOffset renumbers split halves so the exported group numbers are
	// contiguous across the original course.
	GroupOffset int
	Machine     bool
}

// SplitPair records the two halves of one oversized course. The second half
// must be scheduled at least the configured day gap after the first.
type SplitPair struct {
	Original model.CourseID
	First    model.CourseID
	Second   model.CourseID
}

// Registry is the append-only course registry of one solve invocation. It is
// built once by SplitCourses and never mutated afterwards.
type Registry struct {
	info   map[model.CourseID]*CourseInfo
	order  []model.CourseID
	splits map[model.CourseID]SplitPair
}

// SplitCourses builds the registry, replacing any non-machine course whose
// group count exceeds threshold with two synthetic halves. Machine-mode
// courses are exempt: Phase 0 packs them across multiple slots directly.
func SplitCourses(courses []*model.Course, threshold int) *Registry {
	r := &Registry{
		info:   map[model.CourseID]*CourseInfo{},
		splits: map[model.CourseID]SplitPair{},
	}
	for _, c := range courses {
		if _, dup := r.info[c.ID]; dup {
			continue
		}
		if c.GroupCount > threshold && !c.MachineMode() {
			firstCount := c.GroupCount / 2
			first := &CourseInfo{
				ID:         model.SplitCourseID(c.ID, 1),
				GroupCount: firstCount,
				Category:   c.Category,
				Original:   c.ID,
			}
			second := &CourseInfo{
				ID:          model.SplitCourseID(c.ID, 2),
				GroupCount:  c.GroupCount - firstCount,
				Category:    c.Category,
				Original:    c.ID,
				GroupOffset: firstCount,
			}
			r.add(first)
			r.add(second)
			r.splits[c.ID] = SplitPair{Original: c.ID, First: first.ID, Second: second.ID}
			continue
		}
		r.add(&CourseInfo{
			ID:         c.ID,
			GroupCount: c.GroupCount,
			Category:   c.Category,
			Original:   c.ID,
			Machine:    c.MachineMode(),
		})
	}
	return r
}

func (r *Registry) add(info *CourseInfo) {
	r.info[info.ID] = info
	r.order = append(r.order, info.ID)
}

// Knows reports whether id is an original course identifier handled by this
// registry (split or not).
func (r *Registry) Knows(id model.CourseID) bool {
	if _, ok := r.info[id]; ok {
		return true
	}
	_, ok := r.splits[id]
	return ok
}

// Info returns the registry entry for a schedulable (post-split) identifier.
func (r *Registry) Info(id model.CourseID) *CourseInfo {
	return r.info[id]
}

// Courses returns every schedulable identifier in input order.
func (r *Registry) Courses() []model.CourseID {
	out := make([]model.CourseID, len(r.order))
	copy(out, r.order)
	return out
}

// Splits returns the split pairs in no particular order.
func (r *Registry) Splits() []SplitPair {
	out := make([]SplitPair, 0, len(r.splits))
	for _, id := range r.order {
		if pair, ok := r.splits[r.info[id].Original]; ok && pair.First == id {
			out = append(out, pair)
		}
	}
	return out
}

// Rewrite replaces split originals with their synthetic halves, leaving
// other identifiers untouched. Downstream constraint families therefore see
// the synthetic courses transparently.
func (r *Registry) Rewrite(courses []model.CourseID) []model.CourseID {
	out := make([]model.CourseID, 0, len(courses))
	for _, id := range courses {
		if pair, ok := r.splits[id]; ok {
			out = append(out, pair.First, pair.Second)
			continue
		}
		if _, ok := r.info[id]; ok {
			out = append(out, id)
		}
	}
	return out
}
