// Package repository provides recipe catalog data access layer.
package repository

import (
	"context"
	"time"

	"github.com/guttosm/pantry-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RecipeRepository stores the shared recipe catalog keyed by recipe name.
type RecipeRepository struct {
	collection *mongo.Collection
}

// NewRecipeRepository creates a new recipe repository.
func NewRecipeRepository(db *MongoDB) *RecipeRepository {
	return &RecipeRepository{
		collection: db.Recipes,
	}
}

// List returns every recipe sorted by name.
func (r *RecipeRepository) List(ctx context.Context) ([]model.Recipe, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	recipes := []model.Recipe{}
	if err := cursor.All(ctx, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// FindByName finds a recipe by its exact name.
func (r *RecipeRepository) FindByName(ctx context.Context, name string) (*model.Recipe, error) {
	var recipe model.Recipe
	err := r.collection.FindOne(ctx, bson.M{"_id": name}).Decode(&recipe)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Upsert creates or replaces a recipe.
func (r *RecipeRepository) Upsert(ctx context.Context, recipe *model.Recipe) error {
	recipe.UpdatedAt = time.Now().UTC()
	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"_id": recipe.Name},
		recipe,
		options.Replace().SetUpsert(true),
	)
	return err
}

// Delete removes a recipe; ErrNotFound when absent.
func (r *RecipeRepository) Delete(ctx context.Context, name string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": name})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of recipes in the catalog.
func (r *RecipeRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
