package reports

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fdg312/fitcoach/internal/blob"
	"github.com/fdg312/fitcoach/internal/storage"
	"github.com/google/uuid"
)

var (
	ErrInvalidFormat = errors.New("invalid format")
	ErrUserNotFound  = errors.New("user not found")
	ErrPlanNotFound  = errors.New("plan not found")
)

// Service выгружает сохранённый план пользователя в PDF или CSV. Без blob
// store файл отдаётся напрямую, с ним — загружается в object storage и
// возвращается presigned ссылка.
type Service struct {
	storage    storage.Storage
	generator  *Generator
	blobStore  blob.Store
	presignTTL int
}

func NewService(store storage.Storage, blobStore blob.Store, presignTTLSeconds int) *Service {
	if presignTTLSeconds <= 0 {
		presignTTLSeconds = 900
	}
	return &Service{
		storage:    store,
		generator:  NewGenerator(),
		blobStore:  blobStore,
		presignTTL: presignTTLSeconds,
	}
}

// PlanReport renders the latest plan of the user in the requested format.
func (s *Service) PlanReport(ctx context.Context, userID uuid.UUID, format string) (*ReportResult, error) {
	if format != FormatPDF && format != FormatCSV {
		return nil, ErrInvalidFormat
	}

	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	plan, err := s.storage.GetLatestPlanForUser(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	data, err := s.generator.Render(user, plan, format)
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	contentType := "application/pdf"
	if format == FormatCSV {
		contentType = "text/csv"
	}
	filename := fmt.Sprintf("plan_%s.%s", userID.String(), format)

	result := &ReportResult{
		Data:        data,
		ContentType: contentType,
		Filename:    filename,
	}

	if s.blobStore == nil {
		return result, nil
	}

	objectKey := fmt.Sprintf("plans/%s/%s_%s.%s",
		userID.String(),
		plan.ID.String(),
		time.Now().UTC().Format("20060102T150405"),
		format,
	)
	if _, err := s.blobStore.PutObject(ctx, objectKey, data, contentType); err != nil {
		// Object storage недоступен — отдаём файл напрямую
		log.Printf("WARNING: report upload failed, falling back to inline: %v", err)
		return result, nil
	}

	url, err := s.blobStore.PresignGet(ctx, objectKey, s.presignTTL)
	if err != nil {
		log.Printf("WARNING: report presign failed, falling back to inline: %v", err)
		return result, nil
	}

	result.DownloadURL = url
	return result, nil
}
