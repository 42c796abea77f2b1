package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// Period enumerates the three fixed times of day a class occupies a room.
type Period string

const (
	PeriodMorning   Period = "MORNING"
	PeriodAfternoon Period = "AFTERNOON"
	PeriodEvening   Period = "EVENING"
)

// Periods lists every period in chronological order.
var Periods = []Period{PeriodMorning, PeriodAfternoon, PeriodEvening}

// IsValid reports whether the period is a known enumeration value.
func (p Period) IsValid() bool {
	switch p {
	case PeriodMorning, PeriodAfternoon, PeriodEvening:
		return true
	default:
		return false
	}
}

// Weekday enumerates schedulable days of the week.
type Weekday string

const (
	WeekdayMonday    Weekday = "MONDAY"
	WeekdayTuesday   Weekday = "TUESDAY"
	WeekdayWednesday Weekday = "WEDNESDAY"
	WeekdayThursday  Weekday = "THURSDAY"
	WeekdayFriday    Weekday = "FRIDAY"
	WeekdaySaturday  Weekday = "SATURDAY"
	WeekdaySunday    Weekday = "SUNDAY"
)

// IsValid reports whether the weekday is a known enumeration value.
func (w Weekday) IsValid() bool {
	switch w {
	case WeekdayMonday, WeekdayTuesday, WeekdayWednesday, WeekdayThursday,
		WeekdayFriday, WeekdaySaturday, WeekdaySunday:
		return true
	default:
		return false
	}
}

// WeekdayList stores a weekday set as a Postgres text array.
type WeekdayList []Weekday

// Value marshals the list into a pq string array.
func (l WeekdayList) Value() (driver.Value, error) {
	raw := make(pq.StringArray, 0, len(l))
	for _, w := range l {
		raw = append(raw, string(w))
	}
	return raw.Value()
}

// Scan unmarshals a pq string array back into weekdays.
func (l *WeekdayList) Scan(value interface{}) error {
	var raw pq.StringArray
	if err := raw.Scan(value); err != nil {
		return fmt.Errorf("scan weekday list: %w", err)
	}
	out := make(WeekdayList, 0, len(raw))
	for _, item := range raw {
		out = append(out, Weekday(item))
	}
	*l = out
	return nil
}

// ClassSchedule is a recurring commitment: every selected weekday within
// [StartDate, EndDate], during one period of the day.
type ClassSchedule struct {
	StartDate  Date        `json:"startDate"`
	EndDate    Date        `json:"endDate"`
	DaysOfWeek WeekdayList `json:"daysOfWeek"`
	Period     Period      `json:"period"`
}

// ConflictsWith reports whether two schedules compete for the same room
// slot: same period, intersecting weekday sets, and overlapping date
// ranges (closed intervals). The predicate is symmetric.
func (s ClassSchedule) ConflictsWith(other ClassSchedule) bool {
	if s.Period != other.Period {
		return false
	}
	if !s.daysIntersect(other) {
		return false
	}
	return !(s.EndDate.Before(other.StartDate) || other.EndDate.Before(s.StartDate))
}

func (s ClassSchedule) daysIntersect(other ClassSchedule) bool {
	set := make(map[Weekday]struct{}, len(s.DaysOfWeek))
	for _, day := range s.DaysOfWeek {
		set[day] = struct{}{}
	}
	for _, day := range other.DaysOfWeek {
		if _, ok := set[day]; ok {
			return true
		}
	}
	return false
}

// ClassroomRelease records a day a class explicitly gives up its slot.
// Releases are stored and surfaced but never consulted by eligibility
// checks, so the slot still blocks other classes on that date.
type ClassroomRelease struct {
	Date   Date    `db:"release_date" json:"date"`
	Period Period  `db:"period" json:"period"`
	Reason *string `db:"reason" json:"reason,omitempty"`
}

// Classroom is a class with a recurring schedule, a headcount, and an
// optional room assignment.
type Classroom struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Schedule      ClassSchedule      `json:"schedule"`
	StudentCount  int                `json:"studentCount"`
	RoomID        *string            `json:"roomId,omitempty"`
	ReleasedSlots []ClassroomRelease `json:"releasedSlots"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// AssignedTo reports whether the class currently holds the given room.
func (c Classroom) AssignedTo(roomID string) bool {
	return c.RoomID != nil && *c.RoomID == roomID
}
