package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/vocatech/room-allocation-api/internal/models"
)

// SnapshotRepository persists the full allocation state (rooms, classes,
// release records) in Postgres. Reads return one consistent snapshot;
// writes replace the whole set in a single transaction, which is the only
// durability contract the allocation flow relies on. The embedded mutex
// gives callers a single-writer guard around read-modify-write sequences.
type SnapshotRepository struct {
	db *sqlx.DB
	mu sync.Mutex
}

// NewSnapshotRepository constructs the repository.
func NewSnapshotRepository(db *sqlx.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Lock acquires the single-writer guard.
func (r *SnapshotRepository) Lock() { r.mu.Lock() }

// Unlock releases the single-writer guard.
func (r *SnapshotRepository) Unlock() { r.mu.Unlock() }

type roomRow struct {
	ID           string            `db:"id"`
	Name         string            `db:"name"`
	RoomType     string            `db:"room_type"`
	Capacity     int               `db:"capacity"`
	Status       models.RoomStatus `db:"status"`
	BlockedDates models.DateList   `db:"blocked_dates"`
	CreatedAt    time.Time         `db:"created_at"`
	UpdatedAt    time.Time         `db:"updated_at"`
}

type classroomRow struct {
	ID           string             `db:"id"`
	Name         string             `db:"name"`
	StartDate    models.Date        `db:"start_date"`
	EndDate      models.Date        `db:"end_date"`
	DaysOfWeek   models.WeekdayList `db:"days_of_week"`
	Period       models.Period      `db:"period"`
	StudentCount int                `db:"student_count"`
	RoomID       *string            `db:"room_id"`
	CreatedAt    time.Time          `db:"created_at"`
	UpdatedAt    time.Time          `db:"updated_at"`
}

type releaseRow struct {
	ClassroomID string        `db:"classroom_id"`
	Date        models.Date   `db:"release_date"`
	Period      models.Period `db:"period"`
	Reason      *string       `db:"reason"`
	Position    int           `db:"position"`
}

const (
	selectRoomsQuery = `SELECT id, name, room_type, capacity, status, blocked_dates, created_at, updated_at
FROM rooms ORDER BY created_at ASC, id ASC`

	selectClassesQuery = `SELECT id, name, start_date, end_date, days_of_week, period, student_count, room_id, created_at, updated_at
FROM classrooms ORDER BY created_at ASC, id ASC`

	selectReleasesQuery = `SELECT classroom_id, release_date, period, reason, position
FROM classroom_releases ORDER BY classroom_id ASC, position ASC`
)

// Load reads the entire allocation state as one snapshot.
func (r *SnapshotRepository) Load(ctx context.Context) (models.Snapshot, error) {
	var roomRows []roomRow
	if err := r.db.SelectContext(ctx, &roomRows, selectRoomsQuery); err != nil {
		return models.Snapshot{}, fmt.Errorf("load rooms: %w", err)
	}

	var classRows []classroomRow
	if err := r.db.SelectContext(ctx, &classRows, selectClassesQuery); err != nil {
		return models.Snapshot{}, fmt.Errorf("load classrooms: %w", err)
	}

	var relRows []releaseRow
	if err := r.db.SelectContext(ctx, &relRows, selectReleasesQuery); err != nil {
		return models.Snapshot{}, fmt.Errorf("load classroom releases: %w", err)
	}

	releases := make(map[string][]models.ClassroomRelease, len(relRows))
	for _, row := range relRows {
		releases[row.ClassroomID] = append(releases[row.ClassroomID], models.ClassroomRelease{
			Date:   row.Date,
			Period: row.Period,
			Reason: row.Reason,
		})
	}

	snap := models.Snapshot{
		Rooms:   make([]models.Room, 0, len(roomRows)),
		Classes: make([]models.Classroom, 0, len(classRows)),
	}
	for _, row := range roomRows {
		snap.Rooms = append(snap.Rooms, models.Room{
			ID:           row.ID,
			Name:         row.Name,
			RoomType:     row.RoomType,
			Capacity:     row.Capacity,
			Status:       row.Status,
			BlockedDates: row.BlockedDates,
			CreatedAt:    row.CreatedAt,
			UpdatedAt:    row.UpdatedAt,
		})
	}
	for _, row := range classRows {
		snap.Classes = append(snap.Classes, models.Classroom{
			ID:   row.ID,
			Name: row.Name,
			Schedule: models.ClassSchedule{
				StartDate:  row.StartDate,
				EndDate:    row.EndDate,
				DaysOfWeek: row.DaysOfWeek,
				Period:     row.Period,
			},
			StudentCount:  row.StudentCount,
			RoomID:        row.RoomID,
			ReleasedSlots: releases[row.ID],
			CreatedAt:     row.CreatedAt,
			UpdatedAt:     row.UpdatedAt,
		})
	}
	return snap, nil
}

// Replace overwrites the stored state with the provided snapshot. Both
// collections are committed together or not at all.
func (r *SnapshotRepository) Replace(ctx context.Context, snap models.Snapshot) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot replace: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, table := range []string{"classroom_releases", "classrooms", "rooms"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	const insertRoom = `INSERT INTO rooms (id, name, room_type, capacity, status, blocked_dates, created_at, updated_at)
VALUES (:id, :name, :room_type, :capacity, :status, :blocked_dates, :created_at, :updated_at)`
	for _, room := range snap.Rooms {
		row := roomRow{
			ID:           room.ID,
			Name:         room.Name,
			RoomType:     room.RoomType,
			Capacity:     room.Capacity,
			Status:       room.Status,
			BlockedDates: room.BlockedDates,
			CreatedAt:    room.CreatedAt,
			UpdatedAt:    room.UpdatedAt,
		}
		if _, err := tx.NamedExecContext(ctx, insertRoom, row); err != nil {
			return fmt.Errorf("insert room %s: %w", room.ID, err)
		}
	}

	const insertClass = `INSERT INTO classrooms (id, name, start_date, end_date, days_of_week, period, student_count, room_id, created_at, updated_at)
VALUES (:id, :name, :start_date, :end_date, :days_of_week, :period, :student_count, :room_id, :created_at, :updated_at)`
	const insertRelease = `INSERT INTO classroom_releases (classroom_id, release_date, period, reason, position)
VALUES (:classroom_id, :release_date, :period, :reason, :position)`
	for _, class := range snap.Classes {
		row := classroomRow{
			ID:           class.ID,
			Name:         class.Name,
			StartDate:    class.Schedule.StartDate,
			EndDate:      class.Schedule.EndDate,
			DaysOfWeek:   class.Schedule.DaysOfWeek,
			Period:       class.Schedule.Period,
			StudentCount: class.StudentCount,
			RoomID:       class.RoomID,
			CreatedAt:    class.CreatedAt,
			UpdatedAt:    class.UpdatedAt,
		}
		if _, err := tx.NamedExecContext(ctx, insertClass, row); err != nil {
			return fmt.Errorf("insert classroom %s: %w", class.ID, err)
		}
		for pos, release := range class.ReleasedSlots {
			rel := releaseRow{
				ClassroomID: class.ID,
				Date:        release.Date,
				Period:      release.Period,
				Reason:      release.Reason,
				Position:    pos,
			}
			if _, err := tx.NamedExecContext(ctx, insertRelease, rel); err != nil {
				return fmt.Errorf("insert release for %s: %w", class.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot replace: %w", err)
	}
	return nil
}

// CountRooms returns the number of stored rooms (used for seed decisions).
func (r *SnapshotRepository) CountRooms(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM rooms"); err != nil {
		return 0, fmt.Errorf("count rooms: %w", err)
	}
	return count, nil
}

// EnsureSchema creates the allocation tables when they do not exist yet.
func (r *SnapshotRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS rooms (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	room_type TEXT NOT NULL,
	capacity INTEGER NOT NULL,
	status TEXT NOT NULL DEFAULT 'AVAILABLE',
	blocked_dates TEXT[] NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE TABLE IF NOT EXISTS classrooms (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	start_date DATE NOT NULL,
	end_date DATE NOT NULL,
	days_of_week TEXT[] NOT NULL,
	period TEXT NOT NULL,
	student_count INTEGER NOT NULL,
	room_id TEXT REFERENCES rooms(id),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE TABLE IF NOT EXISTS classroom_releases (
	classroom_id TEXT NOT NULL REFERENCES classrooms(id) ON DELETE CASCADE,
	release_date DATE NOT NULL,
	period TEXT NOT NULL,
	reason TEXT,
	position INTEGER NOT NULL,
	PRIMARY KEY (classroom_id, position)
)`,
		`CREATE TABLE IF NOT EXISTS report_jobs (
	id TEXT PRIMARY KEY,
	type TEXT NOT NULL,
	params JSONB NOT NULL,
	status TEXT NOT NULL,
	progress INTEGER NOT NULL DEFAULT 0,
	result_url TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	finished_at TIMESTAMPTZ,
	error_message TEXT
)`,
	}
	for _, stmt := range statements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
