// Package allocation implements the room allocation core: eligibility
// checks, first-fit selection, pre-emptive reservation with displacement,
// and room status derivation. All operations are pure functions over a
// snapshot of rooms and classes; the package performs no I/O and keeps no
// state between calls.
package allocation

import "github.com/vocatech/room-allocation-api/internal/models"

// IsEligible decides whether a room can host a candidate schedule with
// the given headcount. A room is rejected when its capacity is too small,
// when it is blocked, when any of its blocked dates falls inside the
// candidate date range, or when an already-assigned class conflicts with
// the candidate schedule.
func IsEligible(room models.Room, schedule models.ClassSchedule, studentCount int, classes []models.Classroom) bool {
	if room.Capacity < studentCount {
		return false
	}
	if room.Status == models.RoomStatusBlocked {
		return false
	}
	if roomBlockedFor(room, schedule) {
		return false
	}
	return !roomHasConflict(room.ID, schedule, classes)
}

// EligibleRooms filters the room set through IsEligible, preserving the
// input ordering. The ordering determines which room first-fit selection
// picks.
func EligibleRooms(rooms []models.Room, schedule models.ClassSchedule, studentCount int, classes []models.Classroom) []models.Room {
	eligible := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		if IsEligible(room, schedule, studentCount, classes) {
			eligible = append(eligible, room)
		}
	}
	return eligible
}

// roomBlockedFor reports whether any administratively blocked date falls
// inside the candidate range, inclusive on both ends.
func roomBlockedFor(room models.Room, schedule models.ClassSchedule) bool {
	for _, blocked := range room.BlockedDates {
		if !blocked.Before(schedule.StartDate) && !blocked.After(schedule.EndDate) {
			return true
		}
	}
	return false
}

// roomHasConflict reports whether any class assigned to the room has a
// schedule conflicting with the candidate.
func roomHasConflict(roomID string, schedule models.ClassSchedule, classes []models.Classroom) bool {
	for _, class := range classes {
		if !class.AssignedTo(roomID) {
			continue
		}
		if schedule.ConflictsWith(class.Schedule) {
			return true
		}
	}
	return false
}
