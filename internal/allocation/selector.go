package allocation

import "github.com/vocatech/room-allocation-api/internal/models"

// SelectRoom returns the first eligible room by input ordering. There is
// no tightness or load-balancing heuristic: first fit wins.
func SelectRoom(rooms []models.Room, schedule models.ClassSchedule, studentCount int, classes []models.Classroom) (models.Room, bool) {
	eligible := EligibleRooms(rooms, schedule, studentCount, classes)
	if len(eligible) == 0 {
		return models.Room{}, false
	}
	return eligible[0], true
}

// SuggestNextAvailable estimates the earliest date a retry could succeed
// when selection failed. For every room with sufficient capacity and a
// non-blocked status, it looks at assigned classes conflicting with the
// candidate; the room's retry candidate is the latest conflicting end
// date plus one day. The minimum across rooms is returned. The hint is
// best-effort: it is not re-validated against other classes in the room.
func SuggestNextAvailable(rooms []models.Room, schedule models.ClassSchedule, studentCount int, classes []models.Classroom) (models.Date, bool) {
	var best models.Date
	found := false
	for _, room := range rooms {
		if room.Capacity < studentCount {
			continue
		}
		if room.Status == models.RoomStatusBlocked {
			continue
		}
		var latestEnd models.Date
		conflicted := false
		for _, class := range classes {
			if !class.AssignedTo(room.ID) {
				continue
			}
			if !schedule.ConflictsWith(class.Schedule) {
				continue
			}
			if !conflicted || class.Schedule.EndDate.After(latestEnd) {
				latestEnd = class.Schedule.EndDate
			}
			conflicted = true
		}
		if !conflicted {
			continue
		}
		candidate := latestEnd.AddDays(1)
		if !found || candidate.Before(best) {
			best = candidate
		}
		found = true
	}
	return best, found
}
