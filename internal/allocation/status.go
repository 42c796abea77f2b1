package allocation

import "github.com/vocatech/room-allocation-api/internal/models"

// DeriveStatus recomputes a room's displayable status from current
// assignments. BLOCKED is sticky and overrides occupancy. The function
// never yields RESERVED: that status is set only by Reserve and is
// overwritten on the next full re-derivation pass.
func DeriveStatus(room models.Room, classes []models.Classroom) models.RoomStatus {
	if room.Status == models.RoomStatusBlocked {
		return models.RoomStatusBlocked
	}
	for _, class := range classes {
		if class.AssignedTo(room.ID) {
			return models.RoomStatusOccupied
		}
	}
	return models.RoomStatusAvailable
}

// RederiveStatuses returns a copy of the room set with every status
// recomputed against the class set.
func RederiveStatuses(rooms []models.Room, classes []models.Classroom) []models.Room {
	out := make([]models.Room, len(rooms))
	for i, room := range rooms {
		room.Status = DeriveStatus(room, classes)
		out[i] = room
	}
	return out
}
