package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vocatech/room-allocation-api/internal/dto"
	"github.com/vocatech/room-allocation-api/internal/models"
	"github.com/vocatech/room-allocation-api/internal/repository"
	appErrors "github.com/vocatech/room-allocation-api/pkg/errors"
	"github.com/vocatech/room-allocation-api/pkg/jobs"
)

type fakeReportRepo struct {
	jobs      map[string]*models.ReportJob
	createErr error
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{jobs: map[string]*models.ReportJob{}}
}

func (f *fakeReportRepo) Create(_ context.Context, job *models.ReportJob) error {
	if f.createErr != nil {
		return f.createErr
	}
	if job.ID == "" {
		job.ID = "job-1"
	}
	stored := *job
	f.jobs[job.ID] = &stored
	return nil
}

func (f *fakeReportRepo) GetByID(_ context.Context, id string) (*models.ReportJob, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copy := *job
	return &copy, nil
}

func (f *fakeReportRepo) Update(_ context.Context, id string, params repository.UpdateReportJobParams) error {
	job, ok := f.jobs[id]
	if !ok {
		return sql.ErrNoRows
	}
	if params.Status != nil {
		job.Status = *params.Status
	}
	if params.Progress != nil {
		job.Progress = *params.Progress
	}
	if params.ResultURL != nil {
		job.ResultURL = params.ResultURL
	}
	if params.ErrorMessage != nil {
		job.ErrorMessage = params.ErrorMessage
	}
	if params.FinishedAt != nil {
		job.FinishedAt = params.FinishedAt
	}
	return nil
}

func (f *fakeReportRepo) ListQueued(context.Context, int) ([]models.ReportJob, error) {
	out := []models.ReportJob{}
	for _, job := range f.jobs {
		if job.Status == models.ReportStatusQueued {
			out = append(out, *job)
		}
	}
	return out, nil
}

func (f *fakeReportRepo) ListFinishedBefore(context.Context, time.Time, int) ([]models.ReportJob, error) {
	return nil, nil
}

type fakeQueue struct {
	enqueued []jobs.Job
	err      error
}

func (f *fakeQueue) Enqueue(job jobs.Job) error {
	if f.err != nil {
		return f.err
	}
	f.enqueued = append(f.enqueued, job)
	return nil
}

type fakeGenerator struct {
	result *ExportResult
	err    error
}

func (f *fakeGenerator) Generate(context.Context, *models.ReportJob) (*ExportResult, error) {
	return f.result, f.err
}

func TestReportServiceCreateJob_Enqueues(t *testing.T) {
	repo := newFakeReportRepo()
	queue := &fakeQueue{}
	svc := NewReportService(repo, queue, nil, zap.NewNop(), ReportServiceConfig{})

	resp, err := svc.CreateJob(context.Background(), dto.ReportRequest{
		Type:   models.ReportTypeAllocations,
		Format: models.ReportFormatCSV,
	})
	require.NoError(t, err)

	assert.Equal(t, models.ReportStatusQueued, resp.Status)
	require.Len(t, queue.enqueued, 1)
	assert.Equal(t, resp.ID, queue.enqueued[0].ID)
}

func TestReportServiceCreateJob_RejectsUnknownType(t *testing.T) {
	svc := NewReportService(newFakeReportRepo(), &fakeQueue{}, nil, zap.NewNop(), ReportServiceConfig{})

	_, err := svc.CreateJob(context.Background(), dto.ReportRequest{
		Type:   models.ReportType("bogus"),
		Format: models.ReportFormatCSV,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestReportServiceCreateJob_EnqueueFailureMarksFailed(t *testing.T) {
	repo := newFakeReportRepo()
	queue := &fakeQueue{err: errors.New("queue closed")}
	svc := NewReportService(repo, queue, nil, zap.NewNop(), ReportServiceConfig{})

	_, err := svc.CreateJob(context.Background(), dto.ReportRequest{
		Type:   models.ReportTypeRooms,
		Format: models.ReportFormatPDF,
	})
	require.Error(t, err)

	stored := repo.jobs["job-1"]
	require.NotNil(t, stored)
	assert.Equal(t, models.ReportStatusFailed, stored.Status)
}

func TestReportServiceGetStatus_NotFound(t *testing.T) {
	svc := NewReportService(newFakeReportRepo(), &fakeQueue{}, nil, zap.NewNop(), ReportServiceConfig{})

	_, err := svc.GetStatus(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestReportServiceRecoverPendingJobs(t *testing.T) {
	repo := newFakeReportRepo()
	repo.jobs["job-9"] = &models.ReportJob{ID: "job-9", Type: models.ReportTypeRooms, Status: models.ReportStatusQueued}
	queue := &fakeQueue{}
	svc := NewReportService(repo, queue, nil, zap.NewNop(), ReportServiceConfig{})

	svc.RecoverPendingJobs(context.Background())

	require.Len(t, queue.enqueued, 1)
	assert.Equal(t, "job-9", queue.enqueued[0].ID)
}

func TestReportWorkerHandle_Success(t *testing.T) {
	repo := newFakeReportRepo()
	repo.jobs["job-1"] = &models.ReportJob{
		ID:     "job-1",
		Type:   models.ReportTypeAllocations,
		Params: models.ReportJobParams{Format: models.ReportFormatCSV},
		Status: models.ReportStatusQueued,
	}
	worker := NewReportWorker(repo, &fakeGenerator{result: &ExportResult{URL: "/api/v1/reports/download/tok"}}, 3, zap.NewNop())

	require.NoError(t, worker.Handle(context.Background(), jobs.Job{ID: "job-1"}))

	stored := repo.jobs["job-1"]
	assert.Equal(t, models.ReportStatusFinished, stored.Status)
	assert.Equal(t, 100, stored.Progress)
	require.NotNil(t, stored.ResultURL)
	assert.Equal(t, "/api/v1/reports/download/tok", *stored.ResultURL)
}

func TestReportWorkerHandle_RequeuesUntilRetriesExhausted(t *testing.T) {
	repo := newFakeReportRepo()
	repo.jobs["job-1"] = &models.ReportJob{
		ID:     "job-1",
		Type:   models.ReportTypeAllocations,
		Params: models.ReportJobParams{Format: models.ReportFormatCSV},
		Status: models.ReportStatusQueued,
	}
	worker := NewReportWorker(repo, &fakeGenerator{err: errors.New("render failed")}, 2, zap.NewNop())

	require.Error(t, worker.Handle(context.Background(), jobs.Job{ID: "job-1", Attempt: 0}))
	assert.Equal(t, models.ReportStatusQueued, repo.jobs["job-1"].Status)

	require.Error(t, worker.Handle(context.Background(), jobs.Job{ID: "job-1", Attempt: 2}))
	assert.Equal(t, models.ReportStatusFailed, repo.jobs["job-1"].Status)
}
