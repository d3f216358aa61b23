// Package repository provides role data access layer.
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

// RoleRepository implements RoleRepositoryInterface using MongoDB.
type RoleRepository struct {
	collection *mongo.Collection
}

// NewRoleRepository creates a new role repository.
func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{
		collection: db.Collection(collRoles),
	}
}

// Create inserts a new role into the database.
func (r *RoleRepository) Create(ctx context.Context, role *model.Role) error {
	role.CreatedAt = time.Now().UTC()
	role.UpdatedAt = role.CreatedAt
	if role.ID == "" {
		role.ID = uuid.NewString()
	}

	_, err := r.collection.InsertOne(ctx, role)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

// FindByName finds a role by name.
func (r *RoleRepository) FindByName(ctx context.Context, name string) (*model.Role, error) {
	var role model.Role
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&role)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// FindByNames finds every role whose name is in names.
func (r *RoleRepository) FindByNames(ctx context.Context, names []string) ([]*model.Role, error) {
	if len(names) == 0 {
		return nil, nil
	}
	return r.find(ctx, bson.M{"name": bson.M{"$in": names}})
}

// List retrieves all roles sorted by name.
func (r *RoleRepository) List(ctx context.Context) ([]*model.Role, error) {
	return r.find(ctx, bson.M{})
}

func (r *RoleRepository) find(ctx context.Context, filter bson.M) ([]*model.Role, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var roles []*model.Role
	if err := cursor.All(ctx, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}
