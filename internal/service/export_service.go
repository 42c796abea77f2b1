package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vocatech/room-allocation-api/internal/allocation"
	"github.com/vocatech/room-allocation-api/internal/models"
	"github.com/vocatech/room-allocation-api/pkg/export"
	"github.com/vocatech/room-allocation-api/pkg/storage"
)

type snapshotLoader interface {
	Load(ctx context.Context) (models.Snapshot, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
}

// ExportResult captures successful generation metadata.
type ExportResult struct {
	RelativePath string
	Token        string
	URL          string
	Format       models.ReportFormat
	ExpiresAt    time.Time
}

// ExportService renders allocation and room datasets and persists the
// resulting files with signed download tokens.
type ExportService struct {
	snapshots snapshotLoader
	storage   fileStorage
	csv       csvRenderer
	pdf       pdfRenderer
	signer    *storage.SignedURLSigner
	logger    *zap.Logger
	cfg       ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(snapshots snapshotLoader, files fileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		snapshots: snapshots,
		storage:   files,
		csv:       csv,
		pdf:       pdf,
		signer:    signer,
		logger:    logger,
		cfg:       cfg,
	}
}

// Generate builds the dataset for the job and stores the rendered export.
func (s *ExportService) Generate(ctx context.Context, job *models.ReportJob) (*ExportResult, error) {
	if job == nil {
		return nil, fmt.Errorf("job nil")
	}
	snap, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load allocation state: %w", err)
	}
	dataset, title, err := s.buildDataset(snap, job)
	if err != nil {
		return nil, err
	}

	var payload []byte
	switch job.Params.Format {
	case models.ReportFormatCSV:
		payload, err = s.csv.Render(dataset)
	case models.ReportFormatPDF:
		payload, err = s.pdf.Render(dataset, title)
	default:
		err = fmt.Errorf("unsupported format %s", job.Params.Format)
	}
	if err != nil {
		return nil, err
	}

	filename := s.buildFilename(job)
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.signer.Generate(job.ID, relPath)
	if err != nil {
		return nil, err
	}
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}
	signedURL := fmt.Sprintf("%s/reports/download/%s", prefix, token)

	return &ExportResult{
		RelativePath: relPath,
		Token:        token,
		URL:          signedURL,
		Format:       job.Params.Format,
		ExpiresAt:    expiresAt,
	}, nil
}

// ParseToken validates download token metadata.
func (s *ExportService) ParseToken(token string, allowExpired bool) (jobID, relPath string, expiresAt time.Time, err error) {
	return s.signer.Parse(token, allowExpired)
}

// Open returns a handle to the stored file.
func (s *ExportService) Open(relPath string) (*os.File, error) {
	return s.storage.Open(relPath)
}

// Delete removes a stored export file.
func (s *ExportService) Delete(relPath string) error {
	return s.storage.Delete(relPath)
}

// Cleanup removes files older than ttl (defaults to configured ResultTTL when ttl <= 0).
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	return s.storage.CleanupOlderThan(ttl)
}

func (s *ExportService) buildFilename(job *models.ReportJob) string {
	timestamp := time.Now().UTC().Format("20060102_150405")
	return fmt.Sprintf("%s_%s.%s", strings.ToLower(string(job.Type)), timestamp, job.Params.Format)
}

func (s *ExportService) buildDataset(snap models.Snapshot, job *models.ReportJob) (export.Dataset, string, error) {
	switch job.Type {
	case models.ReportTypeAllocations:
		return buildAllocationDataset(snap, job.Params), "Room Allocations", nil
	case models.ReportTypeRooms:
		return buildRoomDataset(snap, job.Params), "Room Utilization", nil
	default:
		return export.Dataset{}, "", fmt.Errorf("unsupported report type %s", job.Type)
	}
}

func buildAllocationDataset(snap models.Snapshot, params models.ReportJobParams) export.Dataset {
	roomNames := make(map[string]string, len(snap.Rooms))
	for _, room := range snap.Rooms {
		roomNames[room.ID] = room.Name
	}
	rows := make([]map[string]string, 0, len(snap.Classes))
	for _, class := range snap.Classes {
		if params.Period != nil && class.Schedule.Period != *params.Period {
			continue
		}
		roomName := ""
		if class.RoomID != nil {
			roomName = roomNames[*class.RoomID]
		}
		days := make([]string, 0, len(class.Schedule.DaysOfWeek))
		for _, day := range class.Schedule.DaysOfWeek {
			days = append(days, string(day))
		}
		rows = append(rows, map[string]string{
			"Class ID":   class.ID,
			"Class Name": class.Name,
			"Room":       roomName,
			"Period":     string(class.Schedule.Period),
			"Days":       strings.Join(days, " "),
			"Start Date": class.Schedule.StartDate.String(),
			"End Date":   class.Schedule.EndDate.String(),
			"Students":   fmt.Sprintf("%d", class.StudentCount),
		})
	}
	return export.Dataset{
		Headers: []string{"Class ID", "Class Name", "Room", "Period", "Days", "Start Date", "End Date", "Students"},
		Rows:    rows,
	}
}

func buildRoomDataset(snap models.Snapshot, params models.ReportJobParams) export.Dataset {
	rows := make([]map[string]string, 0, len(snap.Rooms))
	for _, room := range snap.Rooms {
		if params.RoomType != nil && room.RoomType != *params.RoomType {
			continue
		}
		status := allocation.DeriveStatus(room, snap.Classes)
		rows = append(rows, map[string]string{
			"Room ID":       room.ID,
			"Name":          room.Name,
			"Type":          room.RoomType,
			"Capacity":      fmt.Sprintf("%d", room.Capacity),
			"Status":        string(status),
			"Blocked Dates": fmt.Sprintf("%d", len(room.BlockedDates)),
		})
	}
	return export.Dataset{
		Headers: []string{"Room ID", "Name", "Type", "Capacity", "Status", "Blocked Dates"},
		Rows:    rows,
	}
}
