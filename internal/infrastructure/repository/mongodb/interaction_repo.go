package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mikiasgoitom/videoreact/internal/domain/contract"
	"github.com/mikiasgoitom/videoreact/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InteractionRepository represents the MongoDB implementation of the IInteractionRepository interface.
type InteractionRepository struct {
	collection *mongo.Collection
}

// NewInteractionRepository creates the repository and the unique index on video_id.
func NewInteractionRepository(ctx context.Context, db *mongo.Database) (*InteractionRepository, error) {
	collection := db.Collection("video_interactions")
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "video_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := collection.Indexes().CreateOne(ctx, index); err != nil {
		return nil, fmt.Errorf("failed to create video_id index: %w", err)
	}
	return &InteractionRepository{collection: collection}, nil
}

var _ contract.IInteractionRepository = (*InteractionRepository)(nil)

// FindByVideoID retrieves the counters of a video.
func (r *InteractionRepository) FindByVideoID(ctx context.Context, videoID string) (*entity.Interaction, error) {
	var interaction entity.Interaction
	err := r.collection.FindOne(ctx, bson.M{"video_id": videoID}).Decode(&interaction)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, contract.ErrInteractionNotFound
		}
		return nil, fmt.Errorf("%w: failed to retrieve interaction: %w", contract.ErrStoreUnavailable, err)
	}
	return &interaction, nil
}

// GetOrCreate returns the stored record or a zero record that Commit will insert.
func (r *InteractionRepository) GetOrCreate(ctx context.Context, videoID string) (*entity.Interaction, error) {
	interaction, err := r.FindByVideoID(ctx, videoID)
	if errors.Is(err, contract.ErrInteractionNotFound) {
		return entity.NewInteraction(videoID), nil
	}
	return interaction, err
}

// Commit upserts the counters of a video.
func (r *InteractionRepository) Commit(ctx context.Context, interaction *entity.Interaction) error {
	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"likes":      interaction.Likes,
			"dislikes":   interaction.Dislikes,
			"updated_at": now,
		},
		// Fields to set ONLY on initial insert
		"$setOnInsert": bson.M{
			"_id":        uuid.New().String(),
			"created_at": now,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, bson.M{"video_id": interaction.VideoID}, update, opts); err != nil {
		return fmt.Errorf("%w: failed to upsert interaction record: %w", contract.ErrStoreUnavailable, err)
	}
	return nil
}

// Reset deletes every interaction document.
func (r *InteractionRepository) Reset(ctx context.Context) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("%w: failed to reset interactions: %w", contract.ErrStoreUnavailable, err)
	}
	return nil
}
