package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/mikiasgoitom/videoreact/internal/domain/contract"
	"github.com/mikiasgoitom/videoreact/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/videoreact/internal/usecase/contract"
)

// InteractionObserver receives counters about interaction handling.
type InteractionObserver interface {
	ObserveInteraction(kind, outcome string)
	ObserveMirrorRecovery()
}

// InteractionUsecase is the only writer of the primary store and the
// mirror. Both stores run entity.ApplyTransition on their own prior value;
// the mirror is never overwritten with the primary's result.
type InteractionUsecase struct {
	repo        contract.IInteractionRepository
	mirror      contract.IMirrorStore
	broadcaster contract.IBroadcaster
	logger      usecasecontract.IAppLogger
	observer    InteractionObserver
}

// NewInteractionUsecase creates and returns a new InteractionUsecase instance.
func NewInteractionUsecase(
	repo contract.IInteractionRepository,
	mirror contract.IMirrorStore,
	broadcaster contract.IBroadcaster,
	logger usecasecontract.IAppLogger,
) *InteractionUsecase {
	return &InteractionUsecase{
		repo:        repo,
		mirror:      mirror,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// SetObserver attaches metrics collection.
func (u *InteractionUsecase) SetObserver(o InteractionObserver) {
	u.observer = o
}

var _ usecasecontract.IInteractionUseCase = (*InteractionUsecase)(nil)

// Apply records one transition for videoID. Unknown kinds leave the
// counters unchanged but otherwise follow the same path, including the
// broadcast. Only a primary store failure fails the call.
func (u *InteractionUsecase) Apply(ctx context.Context, videoID string, kind entity.TransitionKind) (*usecasecontract.ApplyResult, error) {
	interaction, err := u.repo.GetOrCreate(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to load interaction %s: %w", videoID, err)
	}

	counts, known := entity.ApplyTransition(interaction.Counts(), kind)
	interaction.SetCounts(counts)
	outcome := usecasecontract.OutcomeApplied
	if !known {
		outcome = usecasecontract.OutcomeIgnoredUnknown
		u.logger.Debugf("ignoring unknown interaction type %q for video %s", kind, videoID)
	}

	if err := u.repo.Commit(ctx, interaction); err != nil {
		return nil, fmt.Errorf("failed to commit interaction %s: %w", videoID, err)
	}

	result := &usecasecontract.ApplyResult{
		Interaction: interaction,
		Outcome:     outcome,
	}
	// the primary has committed; a canceled request must not leave the mirror behind
	result.MirrorStatus, result.MirrorErr = u.replayOnMirror(context.WithoutCancel(ctx), videoID, kind)
	if result.MirrorErr != nil {
		u.logger.Errorf("mirror update for video %s failed: %v", videoID, result.MirrorErr)
	}

	u.observeInteraction(kind, outcome)
	u.broadcaster.Publish(entity.InteractionUpdateEvent, *interaction)
	return result, nil
}

// Get returns the counters of videoID. A video found only in the mirror is
// copied into the primary store once; an unknown video yields a zero record
// that is not persisted.
func (u *InteractionUsecase) Get(ctx context.Context, videoID string) (*usecasecontract.GetResult, error) {
	interaction, err := u.repo.FindByVideoID(ctx, videoID)
	if err == nil {
		return &usecasecontract.GetResult{Interaction: interaction, Source: usecasecontract.SourcePrimary}, nil
	}
	if !errors.Is(err, contract.ErrInteractionNotFound) {
		return nil, fmt.Errorf("failed to get interaction %s: %w", videoID, err)
	}

	snap, err := u.loadMirror(ctx)
	if err != nil {
		// the mirror never blocks a read
		u.logger.Warnf("mirror unreadable while reading video %s: %v", videoID, err)
		return &usecasecontract.GetResult{Interaction: entity.NewInteraction(videoID), Source: usecasecontract.SourceDefault}, nil
	}

	counts, ok := snap.Counts[videoID]
	if !ok {
		return &usecasecontract.GetResult{Interaction: entity.NewInteraction(videoID), Source: usecasecontract.SourceDefault}, nil
	}

	interaction = entity.NewInteraction(videoID)
	interaction.SetCounts(counts)
	if err := u.repo.Commit(ctx, interaction); err != nil {
		return nil, fmt.Errorf("failed to backfill interaction %s from mirror: %w", videoID, err)
	}
	u.logger.Infof("backfilled video %s from mirror", videoID)
	return &usecasecontract.GetResult{Interaction: interaction, Source: usecasecontract.SourceMirror}, nil
}

// RestoreFromMirror creates a primary record for every mirror entry the
// primary store does not have yet. It returns the number of records created.
func (u *InteractionUsecase) RestoreFromMirror(ctx context.Context) (int, error) {
	snap, err := u.loadMirror(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load mirror: %w", err)
	}

	videoIDs := make([]string, 0, len(snap.Counts))
	for id := range snap.Counts {
		videoIDs = append(videoIDs, id)
	}
	sort.Strings(videoIDs)

	created := 0
	for _, id := range videoIDs {
		_, err := u.repo.FindByVideoID(ctx, id)
		if err == nil {
			continue
		}
		if !errors.Is(err, contract.ErrInteractionNotFound) {
			return created, fmt.Errorf("failed to check interaction %s: %w", id, err)
		}
		interaction := entity.NewInteraction(id)
		interaction.SetCounts(snap.Counts[id])
		if err := u.repo.Commit(ctx, interaction); err != nil {
			return created, fmt.Errorf("failed to restore interaction %s: %w", id, err)
		}
		created++
	}
	return created, nil
}

// replayOnMirror applies kind to the mirror's own copy of videoID and
// rewrites the whole mirror.
func (u *InteractionUsecase) replayOnMirror(ctx context.Context, videoID string, kind entity.TransitionKind) (contract.MirrorStatus, error) {
	snap, err := u.loadMirror(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load mirror: %w", err)
	}

	counts, _ := entity.ApplyTransition(snap.Counts[videoID], kind)
	snap.Counts[videoID] = counts

	if err := u.mirror.SaveAll(ctx, snap.Counts); err != nil {
		return snap.Status, fmt.Errorf("failed to save mirror: %w", err)
	}
	return snap.Status, nil
}

func (u *InteractionUsecase) loadMirror(ctx context.Context) (contract.MirrorSnapshot, error) {
	snap, err := u.mirror.LoadAll(ctx)
	if err != nil {
		return snap, err
	}
	if snap.Counts == nil {
		snap.Counts = make(map[string]entity.Counts)
	}
	switch snap.Status {
	case contract.MirrorRecoveredEmpty:
		u.logger.Warnf("mirror file is unparseable, treating it as empty")
	case contract.MirrorDroppedInvalid:
		u.logger.Warnf("mirror entries with negative counters ignored: %v", snap.Dropped)
	default:
		return snap, nil
	}
	if u.observer != nil {
		u.observer.ObserveMirrorRecovery()
	}
	return snap, nil
}

func (u *InteractionUsecase) observeInteraction(kind entity.TransitionKind, outcome usecasecontract.ApplyOutcome) {
	if u.observer == nil {
		return
	}
	label := string(kind)
	if !kind.IsKnown() {
		label = "unknown"
	}
	u.observer.ObserveInteraction(label, string(outcome))
}
