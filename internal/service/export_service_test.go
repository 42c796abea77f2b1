package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vocatech/room-allocation-api/internal/models"
	"github.com/vocatech/room-allocation-api/pkg/storage"
)

func newTestExportService(t *testing.T, snap models.Snapshot) *ExportService {
	t.Helper()
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test-secret", time.Hour)
	return NewExportService(&fakeStore{snap: snap}, files, signer, ExportConfig{APIPrefix: "/api/v1"}, zap.NewNop(), nil, nil)
}

func allocationSnapshot(t *testing.T) models.Snapshot {
	t.Helper()
	sched := testSchedule(t, "2025-02-03", "2025-06-30", models.PeriodMorning, models.WeekdayMonday, models.WeekdayWednesday)
	return models.Snapshot{
		Rooms: []models.Room{
			{ID: "room-1", Name: "Lab 1", RoomType: "Computing", Capacity: 18, Status: models.RoomStatusOccupied},
			{ID: "room-2", Name: "Library", RoomType: "Experimental", Capacity: 45, Status: models.RoomStatusAvailable},
		},
		Classes: []models.Classroom{assignedClass("class-1", "room-1", sched, 12)},
	}
}

func TestExportServiceGenerate_AllocationsCSV(t *testing.T) {
	svc := newTestExportService(t, allocationSnapshot(t))

	job := &models.ReportJob{
		ID:     "job-1",
		Type:   models.ReportTypeAllocations,
		Params: models.ReportJobParams{Format: models.ReportFormatCSV},
	}
	result, err := svc.Generate(context.Background(), job)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.URL, "/api/v1/reports/download/"))
	assert.True(t, strings.HasSuffix(result.RelativePath, ".csv"))

	file, err := svc.Open(result.RelativePath)
	require.NoError(t, err)
	defer file.Close() //nolint:errcheck

	buf := make([]byte, 4096)
	n, _ := file.Read(buf)
	content := string(buf[:n])
	assert.Contains(t, content, "class-1")
	assert.Contains(t, content, "Lab 1")
	assert.Contains(t, content, "MONDAY WEDNESDAY")
}

func TestExportServiceGenerate_RoomsFilterByType(t *testing.T) {
	svc := newTestExportService(t, allocationSnapshot(t))

	roomType := "Computing"
	job := &models.ReportJob{
		ID:     "job-2",
		Type:   models.ReportTypeRooms,
		Params: models.ReportJobParams{Format: models.ReportFormatCSV, RoomType: &roomType},
	}
	result, err := svc.Generate(context.Background(), job)
	require.NoError(t, err)

	file, err := svc.Open(result.RelativePath)
	require.NoError(t, err)
	defer file.Close() //nolint:errcheck

	buf := make([]byte, 4096)
	n, _ := file.Read(buf)
	content := string(buf[:n])
	assert.Contains(t, content, "Lab 1")
	assert.NotContains(t, content, "Library")
	assert.Contains(t, content, "OCCUPIED")
}

func TestExportServiceGenerate_TokenRoundTrip(t *testing.T) {
	svc := newTestExportService(t, allocationSnapshot(t))

	job := &models.ReportJob{
		ID:     "job-3",
		Type:   models.ReportTypeRooms,
		Params: models.ReportJobParams{Format: models.ReportFormatPDF},
	}
	result, err := svc.Generate(context.Background(), job)
	require.NoError(t, err)

	jobID, relPath, _, err := svc.ParseToken(result.Token, false)
	require.NoError(t, err)
	assert.Equal(t, "job-3", jobID)
	assert.Equal(t, result.RelativePath, relPath)
}

func TestExportServiceGenerate_UnsupportedType(t *testing.T) {
	svc := newTestExportService(t, allocationSnapshot(t))

	job := &models.ReportJob{
		ID:     "job-4",
		Type:   models.ReportType("bogus"),
		Params: models.ReportJobParams{Format: models.ReportFormatCSV},
	}
	_, err := svc.Generate(context.Background(), job)
	require.Error(t, err)
}
