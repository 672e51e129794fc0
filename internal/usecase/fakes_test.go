package usecase_test

import (
	"context"
	"errors"
	"sync"

	"github.com/mikiasgoitom/videoreact/internal/domain/contract"
	"github.com/mikiasgoitom/videoreact/internal/domain/entity"
)

// memoryRepo hands out copies, so concurrent callers race exactly like
// separate database sessions would.
type memoryRepo struct {
	mu      sync.Mutex
	records map[string]entity.Interaction
	commits int

	FailCommit bool
	FailFind   bool
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{records: make(map[string]entity.Interaction)}
}

func (r *memoryRepo) GetOrCreate(ctx context.Context, videoID string) (*entity.Interaction, error) {
	i, err := r.FindByVideoID(ctx, videoID)
	if errors.Is(err, contract.ErrInteractionNotFound) {
		return entity.NewInteraction(videoID), nil
	}
	return i, err
}

func (r *memoryRepo) Commit(_ context.Context, interaction *entity.Interaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailCommit {
		return contract.ErrStoreUnavailable
	}
	r.records[interaction.VideoID] = *interaction
	r.commits++
	return nil
}

func (r *memoryRepo) FindByVideoID(_ context.Context, videoID string) (*entity.Interaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailFind {
		return nil, contract.ErrStoreUnavailable
	}
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

func (r *memoryRepo) has(videoID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.records[videoID]
	return ok
}

func (r *memoryRepo) commitCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.commits
}

type failingMirror struct {
	loadErr error
	saveErr error
}

func (m failingMirror) LoadAll(context.Context) (contract.MirrorSnapshot, error) {
	if m.loadErr != nil {
		return contract.MirrorSnapshot{}, m.loadErr
	}
	return contract.MirrorSnapshot{Counts: map[string]entity.Counts{}, Status: contract.MirrorMissing}, nil
}

func (m failingMirror) SaveAll(context.Context, map[string]entity.Counts) error {
	return m.saveErr
}

type publishedEvent struct {
	Name    string
	Payload any
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (b *recordingBroadcaster) Publish(event string, payload any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, publishedEvent{Name: event, Payload: payload})
}

func (b *recordingBroadcaster) all() []publishedEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]publishedEvent(nil), b.events...)
}

type recordingObserver struct {
	mu         sync.Mutex
	outcomes   map[string]int
	recoveries int
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{outcomes: make(map[string]int)}
}

func (o *recordingObserver) ObserveInteraction(kind, outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes[kind+"/"+outcome]++
}

func (o *recordingObserver) ObserveMirrorRecovery() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.recoveries++
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}
func (nopLogger) Fatalf(string, ...interface{}) {}
