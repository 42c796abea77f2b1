package models

// Snapshot is the full allocation state loaded from storage. Core
// operations treat it as an immutable value: they copy it, mutate the
// copy, and hand the new snapshot back for an atomic replace.
type Snapshot struct {
	Rooms   []Room
	Classes []Classroom
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Rooms:   make([]Room, len(s.Rooms)),
		Classes: make([]Classroom, len(s.Classes)),
	}
	for i, room := range s.Rooms {
		room.BlockedDates = append(DateList(nil), room.BlockedDates...)
		out.Rooms[i] = room
	}
	for i, class := range s.Classes {
		class.Schedule.DaysOfWeek = append(WeekdayList(nil), class.Schedule.DaysOfWeek...)
		class.ReleasedSlots = append([]ClassroomRelease(nil), class.ReleasedSlots...)
		if class.RoomID != nil {
			roomID := *class.RoomID
			class.RoomID = &roomID
		}
		out.Classes[i] = class
	}
	return out
}

// RoomByID returns the index of the room with the given id, or -1.
func (s Snapshot) RoomByID(id string) int {
	for i := range s.Rooms {
		if s.Rooms[i].ID == id {
			return i
		}
	}
	return -1
}

// ClassByID returns the index of the class with the given id, or -1.
func (s Snapshot) ClassByID(id string) int {
	for i := range s.Classes {
		if s.Classes[i].ID == id {
			return i
		}
	}
	return -1
}

// ClassesInRoom returns the classes currently assigned to the room.
func (s Snapshot) ClassesInRoom(roomID string) []Classroom {
	var out []Classroom
	for _, class := range s.Classes {
		if class.AssignedTo(roomID) {
			out = append(out, class)
		}
	}
	return out
}
