package contract

import (
	"context"

	"github.com/mikiasgoitom/videoreact/internal/domain/entity"
)

// IInteractionRepository defines the primary store of per-video counters.
type IInteractionRepository interface {
	// GetOrCreate returns the stored record, or a zero record that is not persisted until Commit.
	GetOrCreate(ctx context.Context, videoID string) (*entity.Interaction, error)
	// Commit upserts the record.
	Commit(ctx context.Context, interaction *entity.Interaction) error
	// FindByVideoID returns ErrInteractionNotFound when the video has no record.
	FindByVideoID(ctx context.Context, videoID string) (*entity.Interaction, error)
	// Reset removes every record.
	Reset(ctx context.Context) error
}
