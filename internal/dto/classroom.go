package dto

import "github.com/vocatech/room-allocation-api/internal/models"

// ScheduleRequest is the wire form of a class schedule.
type ScheduleRequest struct {
	StartDate  models.Date      `json:"startDate" validate:"required"`
	EndDate    models.Date      `json:"endDate" validate:"required"`
	DaysOfWeek []models.Weekday `json:"daysOfWeek" validate:"required,min=1"`
	Period     models.Period    `json:"period" validate:"required"`
}

// ToModel converts the request into the domain schedule.
func (r ScheduleRequest) ToModel() models.ClassSchedule {
	return models.ClassSchedule{
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		DaysOfWeek: models.WeekdayList(r.DaysOfWeek),
		Period:     r.Period,
	}
}

// CreateClassroomRequest captures POST /classes payload. RoomID is
// optional: when absent the first eligible room is assigned.
type CreateClassroomRequest struct {
	Name         string          `json:"name" validate:"required"`
	Schedule     ScheduleRequest `json:"schedule" validate:"required"`
	StudentCount int             `json:"studentCount" validate:"required,min=1"`
	RoomID       *string         `json:"roomId" validate:"omitempty"`
}

// UpdateClassroomRequest captures PATCH /classes/:id payload. Nil fields
// keep their current values.
type UpdateClassroomRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1"`
	Schedule     *ScheduleRequest `json:"schedule" validate:"omitempty"`
	StudentCount *int             `json:"studentCount" validate:"omitempty,min=1"`
	RoomID       *string          `json:"roomId" validate:"omitempty"`
}

// ReleaseRequest captures POST /classes/:id/release payload.
type ReleaseRequest struct {
	Date   models.Date   `json:"date" validate:"required"`
	Period models.Period `json:"period" validate:"required"`
	Reason *string       `json:"reason" validate:"omitempty"`
}
