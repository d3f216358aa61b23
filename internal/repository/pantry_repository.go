// Package repository provides pantry data access layer.
package repository

import (
	"context"
	"time"

	"github.com/guttosm/pantry-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PantryRepository stores one document per household. Every write bumps
// the document's version so Replace can detect concurrent updates.
type PantryRepository struct {
	collection *mongo.Collection
}

// NewPantryRepository creates a new pantry repository.
func NewPantryRepository(db *MongoDB) *PantryRepository {
	return &PantryRepository{
		collection: db.Pantries,
	}
}

// Get returns the household's pantry.
func (r *PantryRepository) Get(ctx context.Context, householdID string) (*model.Pantry, error) {
	var pantry model.Pantry
	err := r.collection.FindOne(ctx, bson.M{"_id": householdID}).Decode(&pantry)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	normalize(&pantry)
	return &pantry, nil
}

// Create inserts an empty or seeded pantry.
func (r *PantryRepository) Create(ctx context.Context, pantry *model.Pantry) error {
	normalize(pantry)
	pantry.Version = 1
	pantry.UpdatedAt = time.Now().UTC()

	_, err := r.collection.InsertOne(ctx, pantry)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

// PushLot appends a lot atomically.
func (r *PantryRepository) PushLot(ctx context.Context, householdID string, lot model.Lot) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": householdID},
		bson.M{
			"$push": bson.M{"lots": lot},
			"$inc":  bson.M{"version": 1},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// PullLot removes the lot with lotID atomically and returns it.
func (r *PantryRepository) PullLot(ctx context.Context, householdID, lotID string, reason PullReason) (*model.Lot, error) {
	inc := bson.M{"version": 1}
	if reason == PullDiscarded {
		inc["stats.discarded"] = 1
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.Before).
		SetProjection(bson.M{"lots": bson.M{"$elemMatch": bson.M{"id": lotID}}})

	var before model.Pantry
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": householdID, "lots.id": lotID},
		bson.M{
			"$pull": bson.M{"lots": bson.M{"id": lotID}},
			"$inc":  inc,
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
		opts,
	).Decode(&before)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(before.Lots) == 0 {
		return nil, ErrNotFound
	}
	lot := before.Lots[0]
	return &lot, nil
}

// PushShoppingEntry appends an entry to the shopping list.
func (r *PantryRepository) PushShoppingEntry(ctx context.Context, householdID, entry string, unique bool) (bool, error) {
	filter := bson.M{"_id": householdID}
	if unique {
		filter["shopping_list"] = bson.M{"$ne": entry}
	}

	res, err := r.collection.UpdateOne(ctx, filter, bson.M{
		"$push": bson.M{"shopping_list": entry},
		"$inc":  bson.M{"version": 1},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return false, err
	}
	if res.MatchedCount > 0 {
		return true, nil
	}

	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": householdID})
	if err != nil {
		return false, err
	}
	if count == 0 {
		return false, ErrNotFound
	}
	return false, nil
}

// Replace writes the full pantry when the stored version still equals
// pantry.Version, then advances pantry.Version.
func (r *PantryRepository) Replace(ctx context.Context, pantry *model.Pantry) error {
	normalize(pantry)
	next := *pantry
	next.Version = pantry.Version + 1
	next.UpdatedAt = time.Now().UTC()

	res, err := r.collection.ReplaceOne(ctx,
		bson.M{"_id": pantry.HouseholdID, "version": pantry.Version},
		&next,
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrVersionConflict
	}
	pantry.Version = next.Version
	pantry.UpdatedAt = next.UpdatedAt
	return nil
}

// Delete removes the household's pantry.
func (r *PantryRepository) Delete(ctx context.Context, householdID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": householdID})
	return err
}

// normalize keeps empty collections as arrays so $push always applies.
func normalize(p *model.Pantry) {
	if p.Lots == nil {
		p.Lots = []model.Lot{}
	}
	if p.ShoppingList == nil {
		p.ShoppingList = []string{}
	}
}
