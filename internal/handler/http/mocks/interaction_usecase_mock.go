package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/mikiasgoitom/videoreact/internal/domain/contract"
	"github.com/mikiasgoitom/videoreact/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/videoreact/internal/usecase/contract"
)

// MockInteractionUsecase is a mock implementation of the IInteractionUseCase interface
type MockInteractionUsecase struct {
	// Control mock behavior
	ShouldFailApply   bool
	ShouldFailGet     bool
	ShouldFailRestore bool

	// Recorded calls
	mu           sync.Mutex
	AppliedKinds []entity.TransitionKind

	// Return values
	Records map[string]entity.Interaction
}

// Ensure MockInteractionUsecase implements the correct interface for handler.NewInteractionHandler
var _ usecasecontract.IInteractionUseCase = (*MockInteractionUsecase)(nil)

func NewMockInteractionUsecase() *MockInteractionUsecase {
	return &MockInteractionUsecase{Records: make(map[string]entity.Interaction)}
}

func (m *MockInteractionUsecase) Apply(ctx context.Context, videoID string, kind entity.TransitionKind) (*usecasecontract.ApplyResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AppliedKinds = append(m.AppliedKinds, kind)
	if m.ShouldFailApply {
		return nil, fmt.Errorf("failed to commit interaction %s: %w", videoID, contract.ErrStoreUnavailable)
	}
	record := m.Records[videoID]
	record.VideoID = videoID
	counts, known := entity.ApplyTransition(record.Counts(), kind)
	record.SetCounts(counts)
	m.Records[videoID] = record

	outcome := usecasecontract.OutcomeApplied
	if !known {
		outcome = usecasecontract.OutcomeIgnoredUnknown
	}
	return &usecasecontract.ApplyResult{Interaction: &record, Outcome: outcome, MirrorStatus: contract.MirrorLoaded}, nil
}

func (m *MockInteractionUsecase) Get(ctx context.Context, videoID string) (*usecasecontract.GetResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ShouldFailGet {
		return nil, contract.ErrStoreUnavailable
	}
	record, ok := m.Records[videoID]
	if !ok {
		return &usecasecontract.GetResult{Interaction: entity.NewInteraction(videoID), Source: usecasecontract.SourceDefault}, nil
	}
	return &usecasecontract.GetResult{Interaction: &record, Source: usecasecontract.SourcePrimary}, nil
}

func (m *MockInteractionUsecase) RestoreFromMirror(ctx context.Context) (int, error) {
	if m.ShouldFailRestore {
		return 0, contract.ErrStoreUnavailable
	}
	return 0, nil
}
