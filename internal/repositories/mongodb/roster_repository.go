package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/luckydraw/draw-backend/internal/models"
	"github.com/luckydraw/draw-backend/internal/repositories"
)

// RosterRepository implements repositories.RosterRepository on MongoDB.
type RosterRepository struct {
	collection *mongo.Collection
}

// NewRosterRepository creates a new RosterRepository.
func NewRosterRepository(db *mongo.Database) repositories.RosterRepository {
	return &RosterRepository{
		collection: db.Collection("participants"),
	}
}

// FindAll returns the whole roster in insertion order.
func (r *RosterRepository) FindAll(ctx context.Context) ([]*models.Person, error) {
	opts := options.Find().SetSort(bson.M{"_id": 1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	people := []*models.Person{}
	if err := cursor.All(ctx, &people); err != nil {
		return nil, err
	}
	return people, nil
}

// ReplaceAll swaps the stored roster for the given one.
func (r *RosterRepository) ReplaceAll(ctx context.Context, people []*models.Person) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if len(people) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(people))
	for _, person := range people {
		docs = append(docs, person)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// Count returns the roster size.
func (r *RosterRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
