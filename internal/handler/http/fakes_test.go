package http_test

import (
	"context"
	"sync"

	"github.com/mikiasgoitom/videoreact/internal/domain/contract"
	"github.com/mikiasgoitom/videoreact/internal/domain/entity"
)

type memoryRepo struct {
	mu      sync.Mutex
	records map[string]entity.Interaction
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{records: make(map[string]entity.Interaction)}
}

func (r *memoryRepo) GetOrCreate(ctx context.Context, videoID string) (*entity.Interaction, error) {
	i, err := r.FindByVideoID(ctx, videoID)
	if err == contract.ErrInteractionNotFound {
		return entity.NewInteraction(videoID), nil
	}
	return i, err
}

func (r *memoryRepo) Commit(_ context.Context, interaction *entity.Interaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[interaction.VideoID] = *interaction
	return nil
}

func (r *memoryRepo) FindByVideoID(_ context.Context, videoID string) (*entity.Interaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.records[videoID]
	if !ok {
		return nil, contract.ErrInteractionNotFound
	}
	return &i, nil
}

func (r *memoryRepo) Reset(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = make(map[string]entity.Interaction)
	return nil
}
