package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/pantry-service/internal/domain/model"
	"github.com/guttosm/pantry-service/internal/repository"
)

const (
	// DefaultLogPageSize applies when a query names no limit.
	DefaultLogPageSize = 50
	// MaxLogPageSize caps the entries returned by one query.
	MaxLogPageSize = 500
)

// LoggingService stores request and audit entries and reads the audit
// trail back for administrators.
type LoggingService interface {
	CreateLog(ctx context.Context, entry *model.LogEntry) error
	// CreateLogs stores entries in one bulk write.
	CreateLogs(ctx context.Context, entries []*model.LogEntry) error
	// QueryLogs returns matching entries, newest first. The limit is
	// clamped to MaxLogPageSize.
	QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error)
	CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error)
}

type loggingService struct {
	repo repository.LogsRepositoryInterface
}

// NewLoggingService creates a LoggingService on repo. Without a repository
// entries go to the application log and queries find nothing.
func NewLoggingService(repo repository.LogsRepositoryInterface) LoggingService {
	return &loggingService{repo: repo}
}

func (s *loggingService) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	if s.repo == nil {
		writeToConsole(entry)
		return nil
	}
	return s.repo.Create(ctx, entry)
}

func (s *loggingService) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	if s.repo == nil {
		for _, entry := range entries {
			writeToConsole(entry)
		}
		return nil
	}
	return s.repo.CreateMany(ctx, entries)
}

func (s *loggingService) QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	if s.repo == nil {
		return []model.LogEntry{}, nil
	}
	switch {
	case opts.Limit <= 0:
		opts.Limit = DefaultLogPageSize
	case opts.Limit > MaxLogPageSize:
		opts.Limit = MaxLogPageSize
	}
	if opts.Skip < 0 {
		opts.Skip = 0
	}
	return s.repo.Query(ctx, opts)
}

func (s *loggingService) CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	if s.repo == nil {
		return 0, nil
	}
	return s.repo.Count(ctx, opts)
}

func writeToConsole(entry *model.LogEntry) {
	level, err := zerolog.ParseLevel(entry.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	event := log.WithLevel(level).
		Str("audit", entry.ActionType).
		Str("request_id", entry.RequestID).
		Str("household_id", entry.HouseholdID).
		Str("household", entry.HouseholdName)
	if entry.Error != "" {
		event = event.Str("error", entry.Error)
	}
	if len(entry.Fields) > 0 {
		event = event.Fields(entry.Fields)
	}
	event.Msg(entry.Message)
}
