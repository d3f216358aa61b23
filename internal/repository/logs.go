package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/pantry-service/internal/domain/model"
)

// LogsRepository stores request and audit entries in the logs collection.
// Entries expire through the TTL index set by MongoDB.SetLogsTTL.
type LogsRepository struct {
	collection *mongo.Collection
}

// NewLogsRepository creates a logs repository on db.
func NewLogsRepository(db *MongoDB) *LogsRepository {
	return &LogsRepository{collection: db.Logs}
}

// prepare assigns the id and timestamp of a new entry.
func prepare(entry *model.LogEntry) {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
}

// Create inserts entry.
func (r *LogsRepository) Create(ctx context.Context, entry *model.LogEntry) error {
	prepare(entry)
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// CreateMany inserts entries in one unordered bulk write, so one bad entry
// does not keep the rest of a batch out.
func (r *LogsRepository) CreateMany(ctx context.Context, entries []*model.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	docs := make([]interface{}, len(entries))
	for i, entry := range entries {
		prepare(entry)
		docs[i] = entry
	}
	_, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	return err
}

// Query returns the entries matching opts, newest first.
func (r *LogsRepository) Query(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	find := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if opts.Limit > 0 {
		find.SetLimit(int64(opts.Limit))
	}
	if opts.Skip > 0 {
		find.SetSkip(int64(opts.Skip))
	}

	cursor, err := r.collection.Find(ctx, logFilter(opts), find)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	entries := []model.LogEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Count returns the number of entries matching opts, ignoring paging.
func (r *LogsRepository) Count(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	return r.collection.CountDocuments(ctx, logFilter(opts))
}

func logFilter(opts model.LogQueryOptions) bson.M {
	filter := bson.M{}
	for field, value := range map[string]string{
		"request_id":     opts.RequestID,
		"household_id":   opts.HouseholdID,
		"household_name": opts.HouseholdName,
		"action_type":    opts.ActionType,
		"level":          opts.Level,
	} {
		if value != "" {
			filter[field] = value
		}
	}

	window := bson.M{}
	if opts.StartTime != nil {
		window["$gte"] = *opts.StartTime
	}
	if opts.EndTime != nil {
		window["$lte"] = *opts.EndTime
	}
	if len(window) > 0 {
		filter["timestamp"] = window
	}
	return filter
}
