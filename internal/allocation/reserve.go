package allocation

import "github.com/vocatech/room-allocation-api/internal/models"

// ReservationOutcome reports the result of a successful reservation.
type ReservationOutcome struct {
	RequestingClassID   string
	DisplacedClassID    *string
	NewRoomForRequester string
	NewRoomForDisplaced *string
	Status              models.RoomStatus
}

// Reserve assigns the desired room to the requesting class, relocating
// the current occupant (if any) to the first alternative room that can
// host it. The operation is all-or-nothing: when the occupant cannot be
// relocated, a DisplacementError is returned and the input snapshot is
// untouched. On success a new snapshot is returned with both assignments
// applied, every room status re-derived, and the desired room forced to
// RESERVED.
func Reserve(snap models.Snapshot, classID, roomID string) (models.Snapshot, ReservationOutcome, error) {
	requesterIdx := snap.ClassByID(classID)
	if requesterIdx < 0 {
		return snap, ReservationOutcome{}, &NotFoundError{Resource: "class", ID: classID}
	}
	roomIdx := snap.RoomByID(roomID)
	if roomIdx < 0 {
		return snap, ReservationOutcome{}, &NotFoundError{Resource: "room", ID: roomID}
	}

	next := snap.Clone()

	// At most one occupant is expected under the room-conflict invariant,
	// but the scan tolerates any count and takes the first.
	occupantIdx := -1
	for i := range next.Classes {
		if next.Classes[i].AssignedTo(roomID) {
			occupantIdx = i
			break
		}
	}

	outcome := ReservationOutcome{
		RequestingClassID:   classID,
		NewRoomForRequester: roomID,
		Status:              models.RoomStatusReserved,
	}

	if occupantIdx >= 0 {
		occupant := next.Classes[occupantIdx]
		candidates := make([]models.Room, 0, len(next.Rooms)-1)
		for _, room := range next.Rooms {
			if room.ID != roomID {
				candidates = append(candidates, room)
			}
		}
		others := make([]models.Classroom, 0, len(next.Classes)-1)
		for _, class := range next.Classes {
			if class.ID != occupant.ID {
				others = append(others, class)
			}
		}
		alternative, ok := SelectRoom(candidates, occupant.Schedule, occupant.StudentCount, others)
		if !ok {
			return snap, ReservationOutcome{}, &DisplacementError{OccupantID: occupant.ID}
		}
		altID := alternative.ID
		next.Classes[occupantIdx].RoomID = &altID
		displacedID := occupant.ID
		outcome.DisplacedClassID = &displacedID
		outcome.NewRoomForDisplaced = &altID
	}

	desiredID := roomID
	next.Classes[next.ClassByID(classID)].RoomID = &desiredID

	for i := range next.Rooms {
		if next.Rooms[i].ID == roomID {
			next.Rooms[i].Status = models.RoomStatusReserved
			continue
		}
		next.Rooms[i].Status = DeriveStatus(next.Rooms[i], next.Classes)
	}

	return next, outcome, nil
}
