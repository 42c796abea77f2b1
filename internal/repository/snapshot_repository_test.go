package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocatech/room-allocation-api/internal/models"
)

func newSnapshotRepoMock(t *testing.T) (*SnapshotRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewSnapshotRepository(sqlx.NewDb(db, "sqlmock")), mock, func() { db.Close() }
}

func TestSnapshotRepositoryLoad(t *testing.T) {
	repo, mock, cleanup := newSnapshotRepoMock(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(selectRoomsQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "room_type", "capacity", "status", "blocked_dates", "created_at", "updated_at"}).
			AddRow("r1", "Lab 1", "computing", 18, "AVAILABLE", "{2025-01-15}", now, now))
	mock.ExpectQuery(regexp.QuoteMeta(selectClassesQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "start_date", "end_date", "days_of_week", "period", "student_count", "room_id", "created_at", "updated_at"}).
			AddRow("c1", "Go Basics", "2025-01-01", "2025-01-31", "{MONDAY,WEDNESDAY}", "MORNING", 15, "r1", now, now))
	mock.ExpectQuery(regexp.QuoteMeta(selectReleasesQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"classroom_id", "release_date", "period", "reason", "position"}).
			AddRow("c1", "2025-01-20", "MORNING", nil, 0))

	snap, err := repo.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, snap.Rooms, 1)
	assert.Equal(t, "Lab 1", snap.Rooms[0].Name)
	require.Len(t, snap.Rooms[0].BlockedDates, 1)
	assert.Equal(t, "2025-01-15", snap.Rooms[0].BlockedDates[0].String())

	require.Len(t, snap.Classes, 1)
	class := snap.Classes[0]
	assert.Equal(t, models.PeriodMorning, class.Schedule.Period)
	assert.Equal(t, models.WeekdayList{models.WeekdayMonday, models.WeekdayWednesday}, class.Schedule.DaysOfWeek)
	require.NotNil(t, class.RoomID)
	assert.Equal(t, "r1", *class.RoomID)
	require.Len(t, class.ReleasedSlots, 1)
	assert.Equal(t, "2025-01-20", class.ReleasedSlots[0].Date.String())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepositoryReplace(t *testing.T) {
	repo, mock, cleanup := newSnapshotRepoMock(t)
	defer cleanup()

	roomID := "r1"
	snap := models.Snapshot{
		Rooms: []models.Room{
			{ID: roomID, Name: "Lab 1", RoomType: "computing", Capacity: 18, Status: models.RoomStatusOccupied},
		},
		Classes: []models.Classroom{
			{
				ID:   "c1",
				Name: "Go Basics",
				Schedule: models.ClassSchedule{
					StartDate:  models.NewDate(2025, time.January, 1),
					EndDate:    models.NewDate(2025, time.January, 31),
					DaysOfWeek: models.WeekdayList{models.WeekdayMonday},
					Period:     models.PeriodMorning,
				},
				StudentCount: 15,
				RoomID:       &roomID,
				ReleasedSlots: []models.ClassroomRelease{
					{Date: models.NewDate(2025, time.January, 20), Period: models.PeriodMorning},
				},
			},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM classroom_releases").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM classrooms").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM rooms").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO rooms").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO classrooms").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO classroom_releases").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Replace(context.Background(), snap))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepositoryReplaceRollsBackOnFailure(t *testing.T) {
	repo, mock, cleanup := newSnapshotRepoMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM classroom_releases").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.Replace(context.Background(), models.Snapshot{})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepositoryCountRooms(t *testing.T) {
	repo, mock, cleanup := newSnapshotRepoMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM rooms")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(21))

	count, err := repo.CountRooms(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 21, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
