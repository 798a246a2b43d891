package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/luckydraw/draw-backend/internal/models"
	"github.com/luckydraw/draw-backend/internal/repositories"
)

// The draw session state lives in a single well-known document.
const stateDocID = "draw_state"

type stateDocument struct {
	ID    string           `bson:"_id"`
	State models.DrawState `bson:"state"`
}

// StateRepository implements repositories.StateRepository on MongoDB.
type StateRepository struct {
	collection *mongo.Collection
}

// NewStateRepository creates a new StateRepository.
func NewStateRepository(db *mongo.Database) repositories.StateRepository {
	return &StateRepository{
		collection: db.Collection("draw_state"),
	}
}

// Load returns the persisted DrawState, or a fresh empty one when no state
// document exists yet.
func (r *StateRepository) Load(ctx context.Context) (*models.DrawState, error) {
	var doc stateDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": stateDocID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.NewDrawState(), nil
	}
	if err != nil {
		return nil, err
	}
	if doc.State.Prizes == nil {
		doc.State.Prizes = make(map[string]*models.PrizeState)
	}
	return &doc.State, nil
}

// Save upserts the state document, refreshing GeneratedAt.
func (r *StateRepository) Save(ctx context.Context, state *models.DrawState) error {
	state.GeneratedAt = time.Now()
	doc := stateDocument{ID: stateDocID, State: *state}
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": stateDocID}, doc, opts)
	return err
}

// Reset replaces whatever is stored with a fresh empty state and returns it.
func (r *StateRepository) Reset(ctx context.Context) (*models.DrawState, error) {
	state := models.NewDrawState()
	if err := r.Save(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}
