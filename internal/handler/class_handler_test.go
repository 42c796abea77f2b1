package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/vocatech/room-allocation-api/internal/dto"
	"github.com/vocatech/room-allocation-api/internal/models"
	appErrors "github.com/vocatech/room-allocation-api/pkg/errors"
)

type fakeClassSrv struct {
	class models.Classroom
	list  []models.Classroom
	err   error

	lastID string
}

func (f *fakeClassSrv) List(context.Context) ([]models.Classroom, error) {
	return f.list, f.err
}

func (f *fakeClassSrv) Create(context.Context, dto.CreateClassroomRequest) (models.Classroom, error) {
	return f.class, f.err
}

func (f *fakeClassSrv) Update(_ context.Context, id string, _ dto.UpdateClassroomRequest) (models.Classroom, error) {
	f.lastID = id
	return f.class, f.err
}

func (f *fakeClassSrv) Release(_ context.Context, id string, _ dto.ReleaseRequest) (models.Classroom, error) {
	f.lastID = id
	return f.class, f.err
}

func newClassRequest(t *testing.T) dto.CreateClassroomRequest {
	t.Helper()
	return dto.CreateClassroomRequest{
		Name: "Networks 101",
		Schedule: dto.ScheduleRequest{
			StartDate:  models.NewDate(2025, time.March, 1),
			EndDate:    models.NewDate(2025, time.June, 30),
			DaysOfWeek: []models.Weekday{models.WeekdayMonday, models.WeekdayWednesday},
			Period:     "MORNING",
		},
		StudentCount: 25,
	}
}

func TestClassHandlerCreate_Returns201(t *testing.T) {
	gin.SetMode(gin.TestMode)
	roomID := "room-1"
	handler := NewClassHandler(&fakeClassSrv{class: models.Classroom{ID: "class-1", Name: "Networks 101", RoomID: &roomID}})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = jsonRequest(t, http.MethodPost, "/classes", newClassRequest(t))

	handler.Create(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.Equal(t, "class-1", envelope.Data["id"])
	assert.Equal(t, "room-1", envelope.Data["roomId"])
}

func TestClassHandlerCreate_NoRoomAvailable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewClassHandler(&fakeClassSrv{
		err: appErrors.Clone(appErrors.ErrNoRoomAvailable, "No room available for the given criteria. Next window from 2025-07-01."),
	})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = jsonRequest(t, http.MethodPost, "/classes", newClassRequest(t))

	handler.Create(c)

	assert.Equal(t, http.StatusConflict, rec.Code)
	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.Equal(t, "NO_ROOM_AVAILABLE", envelope.Error["code"])
	assert.Contains(t, envelope.Error["message"], "Next window from 2025-07-01")
}

func TestClassHandlerUpdate_PassesPathID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeClassSrv{class: models.Classroom{ID: "class-7"}}
	handler := NewClassHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Params = gin.Params{{Key: "id", Value: "class-7"}}
	name := "Databases"
	c.Request = jsonRequest(t, http.MethodPatch, "/classes/class-7", dto.UpdateClassroomRequest{Name: &name})

	handler.Update(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "class-7", srv.lastID)
}

func TestClassHandlerRelease_InvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewClassHandler(&fakeClassSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Params = gin.Params{{Key: "id", Value: "class-1"}}
	c.Request = httptest.NewRequest(http.MethodPost, "/classes/class-1/release", nil)

	handler.Release(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
