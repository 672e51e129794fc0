package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mikiasgoitom/videoreact/internal/domain/contract"
	"github.com/mikiasgoitom/videoreact/internal/domain/entity"
)

const schema = `CREATE TABLE IF NOT EXISTS video_interactions (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	video_id   TEXT NOT NULL UNIQUE,
	likes      INTEGER NOT NULL DEFAULT 0 CHECK (likes >= 0),
	dislikes   INTEGER NOT NULL DEFAULT 0 CHECK (dislikes >= 0),
	created_at TEXT NOT NULL DEFAULT (datetime('now')),
	updated_at TEXT NOT NULL DEFAULT (datetime('now'))
)`

// InteractionRepository is the SQLite implementation of contract.IInteractionRepository.
type InteractionRepository struct {
	db *sql.DB
}

// NewInteractionRepository wraps db and ensures the schema exists.
func NewInteractionRepository(ctx context.Context, db *sql.DB) (*InteractionRepository, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("migrate video_interactions: %w", err)
	}
	return &InteractionRepository{db: db}, nil
}

var _ contract.IInteractionRepository = (*InteractionRepository)(nil)

// FindByVideoID loads the record for videoID.
func (r *InteractionRepository) FindByVideoID(ctx context.Context, videoID string) (*entity.Interaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT video_id, likes, dislikes FROM video_interactions WHERE video_id = ?`, videoID)

	var i entity.Interaction
	if err := row.Scan(&i.VideoID, &i.Likes, &i.Dislikes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, contract.ErrInteractionNotFound
		}
		return nil, fmt.Errorf("%w: failed to load interaction %s: %w", contract.ErrStoreUnavailable, videoID, err)
	}
	return &i, nil
}

// GetOrCreate returns the stored record or a new zero record. The new
// record is only written by Commit.
func (r *InteractionRepository) GetOrCreate(ctx context.Context, videoID string) (*entity.Interaction, error) {
	i, err := r.FindByVideoID(ctx, videoID)
	if errors.Is(err, contract.ErrInteractionNotFound) {
		return entity.NewInteraction(videoID), nil
	}
	return i, err
}

// Commit inserts or updates the record.
func (r *InteractionRepository) Commit(ctx context.Context, interaction *entity.Interaction) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO video_interactions (video_id, likes, dislikes)
		 VALUES (?, ?, ?)
		 ON CONFLICT(video_id) DO UPDATE SET
			likes = excluded.likes,
			dislikes = excluded.dislikes,
			updated_at = datetime('now')`,
		interaction.VideoID, interaction.Likes, interaction.Dislikes)
	if err != nil {
		return fmt.Errorf("%w: failed to commit interaction %s: %w", contract.ErrStoreUnavailable, interaction.VideoID, err)
	}
	return nil
}

// Reset deletes every record.
func (r *InteractionRepository) Reset(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM video_interactions`); err != nil {
		return fmt.Errorf("%w: failed to reset interactions: %w", contract.ErrStoreUnavailable, err)
	}
	return nil
}
