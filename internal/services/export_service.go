// file: internal/services/export_service.go
package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"dsavault/internal/repositories"

	"go.uber.org/zap"
)

// exportServiceImpl implements ExportService
type exportServiceImpl struct {
	problemRepo repositories.ProblemRepository
	logger      *zap.Logger
}

// NewExportService creates a new export service
func NewExportService(problemRepo repositories.ProblemRepository, logger *zap.Logger) ExportService {
	return &exportServiceImpl{problemRepo: problemRepo, logger: logger}
}

var exportHeader = []string{
	"Title", "Difficulty", "Language", "Topic", "Tags",
	"Time Complexity", "Space Complexity", "Solved At",
}

// ExportCSV streams the owner's full problem history as CSV
func (s *exportServiceImpl) ExportCSV(ctx context.Context, ownerID int64, w io.Writer) error {
	if ownerID <= 0 {
		return NewValidationError("owner id is required", nil)
	}

	problems, err := s.problemRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return NewStoreError("load problem history", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return NewInternalError(fmt.Sprintf("failed to write csv header: %v", err))
	}

	for _, p := range problems {
		record := []string{
			p.Title,
			p.Difficulty,
			p.Language,
			p.Topic,
			strings.Join(p.Tags, "; "),
			derefOr(p.TimeComplexity, ""),
			derefOr(p.SpaceComplexity, ""),
			p.CreatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return NewInternalError(fmt.Sprintf("failed to write csv row: %v", err))
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return NewInternalError(fmt.Sprintf("failed to flush csv: %v", err))
	}

	s.logger.Info("Problem history exported",
		zap.Int64("owner_id", ownerID),
		zap.Int("rows", len(problems)),
	)
	return nil
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
