package model

type Room struct {
	ID          string       `csv:"room_id"`
	CategorySTR string       `csv:"category"`
	Capacity    int          `csv:"capacity"`
	Category    RoomCategory `csv:"-"`
}

// RoomPool groups usable rooms by category. Machine rooms are kept out of the
// general pool entirely; lecture and computer rooms together form the pool
// whose size bounds the number of exam groups per slot.
type RoomPool struct {
	Lecture  []Room
	Computer []Room
	Machine  []Room
}

// General returns the lecture and computer rooms in declaration order.
func (p *RoomPool) General() []Room {
	out := make([]Room, 0, len(p.Lecture)+len(p.Computer))
	out = append(out, p.Lecture...)
	out = append(out, p.Computer...)
	return out
}

// Size is the number of rooms available to a single general slot.
func (p *RoomPool) Size() int {
	return len(p.Lecture) + len(p.Computer)
}

// ByCategory returns the dedicated room list for a category. Callers fall
// back to General when the returned list is empty.
func (p *RoomPool) ByCategory(cat RoomCategory) []Room {
	switch cat {
	case RoomLecture:
		return p.Lecture
	case RoomComputer:
		return p.Computer
	case RoomMachine:
		return p.Machine
	}
	return nil
}
