package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/pantry-service/internal/metrics"
	"github.com/guttosm/pantry-service/internal/report"
)

// ErrReportSinkNotConfigured is returned by ExportShoppingList without a sink.
var ErrReportSinkNotConfigured = errors.New("report sink not configured")

// ReportService renders shopping lists.
type ReportService interface {
	// ShoppingListPDF renders the household's shopping list.
	ShoppingListPDF(ctx context.Context, householdID, title string) ([]byte, error)
	// ExportShoppingList renders the list and stores it in the sink,
	// returning the stored location.
	ExportShoppingList(ctx context.Context, householdID, householdName, title string) (string, error)
}

// ReportServiceImpl implements ReportService.
type ReportServiceImpl struct {
	pantries PantryService
	sink     report.Sink
	now      func() time.Time
}

// NewReportService creates a report service. sink may be nil when only
// direct downloads are served.
func NewReportService(pantries PantryService, sink report.Sink) ReportService {
	return &ReportServiceImpl{pantries: pantries, sink: sink, now: time.Now}
}

func (s *ReportServiceImpl) ShoppingListPDF(ctx context.Context, householdID, title string) ([]byte, error) {
	entries, err := s.pantries.ShoppingList(ctx, householdID)
	if err != nil {
		return nil, err
	}
	return report.RenderList(title, entries)
}

func (s *ReportServiceImpl) ExportShoppingList(ctx context.Context, householdID, householdName, title string) (string, error) {
	if s.sink == nil {
		return "", ErrReportSinkNotConfigured
	}
	doc, err := s.ShoppingListPDF(ctx, householdID, title)
	if err != nil {
		metrics.RecordReport(s.sink.Kind(), "error")
		return "", err
	}

	location, err := s.sink.Put(ctx, report.FileName(householdName, s.now()), doc)
	if err != nil {
		metrics.RecordReport(s.sink.Kind(), "error")
		return "", err
	}
	metrics.RecordReport(s.sink.Kind(), "success")
	log.Info().
		Str("household_id", householdID).
		Str("location", location).
		Msg("Shopping list exported")
	return location, nil
}
