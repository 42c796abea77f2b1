package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// RoomStatus enumerates the displayable states of a room.
type RoomStatus string

const (
	RoomStatusAvailable RoomStatus = "AVAILABLE"
	RoomStatusOccupied  RoomStatus = "OCCUPIED"
	RoomStatusReserved  RoomStatus = "RESERVED"
	RoomStatusBlocked   RoomStatus = "BLOCKED"
)

// RoomStatuses lists every status in a stable order.
var RoomStatuses = []RoomStatus{
	RoomStatusAvailable,
	RoomStatusOccupied,
	RoomStatusReserved,
	RoomStatusBlocked,
}

// IsValid reports whether the status is a known enumeration value.
func (s RoomStatus) IsValid() bool {
	switch s {
	case RoomStatusAvailable, RoomStatusOccupied, RoomStatusReserved, RoomStatusBlocked:
		return true
	default:
		return false
	}
}

// DateList stores a set of calendar days as a Postgres text array.
type DateList []Date

// Value marshals the list into a pq string array of ISO dates.
func (l DateList) Value() (driver.Value, error) {
	raw := make(pq.StringArray, 0, len(l))
	for _, d := range l {
		raw = append(raw, d.String())
	}
	return raw.Value()
}

// Scan unmarshals a pq string array back into dates.
func (l *DateList) Scan(value interface{}) error {
	var raw pq.StringArray
	if err := raw.Scan(value); err != nil {
		return fmt.Errorf("scan date list: %w", err)
	}
	out := make(DateList, 0, len(raw))
	for _, item := range raw {
		d, err := ParseDate(item)
		if err != nil {
			return err
		}
		out = append(out, d)
	}
	*l = out
	return nil
}

// Room is a physical space that classes can be allocated to. Status is
// partially derived: OCCUPIED/AVAILABLE are recomputed from assignments,
// BLOCKED is externally set and overrides derivation, RESERVED is set by
// the reservation flow and survives only until the next recomputation.
type Room struct {
	ID           string     `db:"id" json:"id"`
	Name         string     `db:"name" json:"name"`
	RoomType     string     `db:"room_type" json:"roomType"`
	Capacity     int        `db:"capacity" json:"capacity"`
	Status       RoomStatus `db:"status" json:"status"`
	BlockedDates DateList   `db:"blocked_dates" json:"blockedDates"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"`
}

// RoomSearchFilter captures the query parameters of the room search endpoint.
type RoomSearchFilter struct {
	RoomType    string
	Status      string
	MinCapacity *int
}
