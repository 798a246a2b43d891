package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/luckydraw/draw-backend/internal/models"
	"github.com/luckydraw/draw-backend/internal/repositories"
)

// ExclusionRepository implements repositories.ExclusionRepository on MongoDB.
type ExclusionRepository struct {
	collection *mongo.Collection
}

// NewExclusionRepository creates a new ExclusionRepository.
func NewExclusionRepository(db *mongo.Database) repositories.ExclusionRepository {
	return &ExclusionRepository{
		collection: db.Collection("excluded_participants"),
	}
}

// FindAll returns the excluded roster. An empty collection is not an error;
// an absent exclusion list just means nobody is excluded.
func (r *ExclusionRepository) FindAll(ctx context.Context) ([]*models.Person, error) {
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

// ReplaceAll swaps the stored exclusion roster for the given one.
func (r *ExclusionRepository) ReplaceAll(ctx context.Context, people []*models.Person) error {
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
