// Package repository provides household data access layer.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/guttosm/pantry-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// HouseholdRepository implements HouseholdRepositoryInterface using MongoDB.
type HouseholdRepository struct {
	collection *mongo.Collection
}

// NewHouseholdRepository creates a new household repository.
func NewHouseholdRepository(db *mongo.Database) *HouseholdRepository {
	return &HouseholdRepository{
		collection: db.Collection(collHouseholds),
	}
}

// Create inserts a new household. A taken name yields ErrDuplicate.
func (r *HouseholdRepository) Create(ctx context.Context, household *model.Household) error {
	now := time.Now().UTC()
	household.CreatedAt = now
	household.UpdatedAt = now
	if household.ID == "" {
		household.ID = uuid.NewString()
	}

	_, err := r.collection.InsertOne(ctx, household)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

// FindByName finds a household by its exact name.
func (r *HouseholdRepository) FindByName(ctx context.Context, name string) (*model.Household, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

// FindByID finds a household by ID.
func (r *HouseholdRepository) FindByID(ctx context.Context, id string) (*model.Household, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *HouseholdRepository) findOne(ctx context.Context, filter bson.M) (*model.Household, error) {
	var household model.Household
	err := r.collection.FindOne(ctx, filter).Decode(&household)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &household, nil
}

// Update replaces the mutable fields of a household.
func (r *HouseholdRepository) Update(ctx context.Context, household *model.Household) error {
	household.UpdatedAt = time.Now().UTC()
	res, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": household.ID},
		bson.M{"$set": bson.M{
			"password":        household.Password,
			"password_scheme": household.PasswordScheme,
			"roles":           household.Roles,
			"active":          household.Active,
			"updated_at":      household.UpdatedAt,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a household record.
func (r *HouseholdRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// List retrieves households sorted by name, without password hashes.
func (r *HouseholdRepository) List(ctx context.Context, limit, skip int64) ([]*model.Household, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetProjection(bson.M{"password": 0}).
		SetSkip(skip)
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var households []*model.Household
	if err := cursor.All(ctx, &households); err != nil {
		return nil, err
	}
	return households, nil
}
