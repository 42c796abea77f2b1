package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocatech/room-allocation-api/internal/models"
)

func TestSelectRoomFirstFit(t *testing.T) {
	rooms := []models.Room{
		{ID: "r1", Capacity: 30, Status: models.RoomStatusAvailable},
		{ID: "r2", Capacity: 30, Status: models.RoomStatusAvailable},
	}
	sched := schedule(jan(1), jan(31), models.PeriodMorning, models.WeekdayMonday)

	room, ok := SelectRoom(rooms, sched, 20, nil)
	require.True(t, ok)
	assert.Equal(t, "r1", room.ID)
}

func TestSelectRoomNoneEligible(t *testing.T) {
	rooms := []models.Room{{ID: "r1", Capacity: 20, Status: models.RoomStatusAvailable}}
	existing := assigned("c1", "r1", schedule(jan(10), jan(20), models.PeriodMorning, models.WeekdayMonday), 15)
	candidate := schedule(jan(15), jan(25), models.PeriodMorning, models.WeekdayMonday)

	_, ok := SelectRoom(rooms, candidate, 18, []models.Classroom{existing})
	assert.False(t, ok)
}

func TestSuggestNextAvailableAfterConflictEnds(t *testing.T) {
	rooms := []models.Room{{ID: "r1", Capacity: 20, Status: models.RoomStatusAvailable}}
	existing := assigned("c1", "r1", schedule(jan(10), jan(20), models.PeriodMorning, models.WeekdayMonday), 15)
	candidate := schedule(jan(15), jan(25), models.PeriodMorning, models.WeekdayMonday)

	date, ok := SuggestNextAvailable(rooms, candidate, 18, []models.Classroom{existing})
	require.True(t, ok)
	assert.Equal(t, jan(21), date)
}

func TestSuggestNextAvailableUsesLatestConflictPerRoom(t *testing.T) {
	rooms := []models.Room{{ID: "r1", Capacity: 40, Status: models.RoomStatusAvailable}}
	classes := []models.Classroom{
		assigned("c1", "r1", schedule(jan(1), jan(10), models.PeriodMorning, models.WeekdayMonday), 10),
		assigned("c2", "r1", schedule(jan(5), jan(28), models.PeriodMorning, models.WeekdayMonday), 10),
	}
	candidate := schedule(jan(2), jan(30), models.PeriodMorning, models.WeekdayMonday)

	date, ok := SuggestNextAvailable(rooms, candidate, 20, classes)
	require.True(t, ok)
	assert.Equal(t, jan(29), date)
}

func TestSuggestNextAvailableMinAcrossRooms(t *testing.T) {
	rooms := []models.Room{
		{ID: "late", Capacity: 40, Status: models.RoomStatusAvailable},
		{ID: "early", Capacity: 40, Status: models.RoomStatusAvailable},
	}
	classes := []models.Classroom{
		assigned("c1", "late", schedule(jan(1), jan(28), models.PeriodMorning, models.WeekdayMonday), 10),
		assigned("c2", "early", schedule(jan(1), jan(12), models.PeriodMorning, models.WeekdayMonday), 10),
	}
	candidate := schedule(jan(2), jan(30), models.PeriodMorning, models.WeekdayMonday)

	date, ok := SuggestNextAvailable(rooms, candidate, 20, classes)
	require.True(t, ok)
	assert.Equal(t, jan(13), date)
}

func TestSuggestNextAvailableSkipsBlockedAndUndersizedRooms(t *testing.T) {
	rooms := []models.Room{
		{ID: "blocked", Capacity: 40, Status: models.RoomStatusBlocked},
		{ID: "small", Capacity: 5, Status: models.RoomStatusAvailable},
	}
	classes := []models.Classroom{
		assigned("c1", "blocked", schedule(jan(1), jan(10), models.PeriodMorning, models.WeekdayMonday), 10),
		assigned("c2", "small", schedule(jan(1), jan(10), models.PeriodMorning, models.WeekdayMonday), 5),
	}
	candidate := schedule(jan(2), jan(30), models.PeriodMorning, models.WeekdayMonday)

	_, ok := SuggestNextAvailable(rooms, candidate, 20, classes)
	assert.False(t, ok)
}

func TestSuggestNextAvailableNoConflictsAnywhere(t *testing.T) {
	rooms := []models.Room{{ID: "r1", Capacity: 40, Status: models.RoomStatusAvailable}}
	candidate := schedule(jan(2), jan(30), models.PeriodMorning, models.WeekdayMonday)

	_, ok := SuggestNextAvailable(rooms, candidate, 20, nil)
	assert.False(t, ok)
}
