package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/luckydraw/draw-backend/internal/models"
	"github.com/luckydraw/draw-backend/internal/repositories"
)

// PrizeRepository implements repositories.PrizeRepository on MongoDB.
type PrizeRepository struct {
	collection *mongo.Collection
}

// NewPrizeRepository creates a new PrizeRepository.
func NewPrizeRepository(db *mongo.Database) repositories.PrizeRepository {
	return &PrizeRepository{
		collection: db.Collection("prizes"),
	}
}

// FindAll returns every prize config in insertion order. Draw order follows
// this order, so it is part of the configuration.
func (r *PrizeRepository) FindAll(ctx context.Context) ([]*models.PrizeConfig, error) {
	opts := options.Find().SetSort(bson.M{"_id": 1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	prizes := []*models.PrizeConfig{}
	if err := cursor.All(ctx, &prizes); err != nil {
		return nil, err
	}
	return prizes, nil
}

// FindByPrizeID returns one prize config by its configured id.
func (r *PrizeRepository) FindByPrizeID(ctx context.Context, prizeID string) (*models.PrizeConfig, error) {
	var prize models.PrizeConfig
	err := r.collection.FindOne(ctx, bson.M{"prizeId": prizeID}).Decode(&prize)
	if err != nil {
		return nil, err
	}
	return &prize, nil
}

// ReplaceAll swaps the stored prize configs for the given ones.
func (r *PrizeRepository) ReplaceAll(ctx context.Context, prizes []*models.PrizeConfig) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if len(prizes) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(prizes))
	for _, prize := range prizes {
		docs = append(docs, prize)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}
