package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/videoreact/internal/domain/contract"
	"github.com/mikiasgoitom/videoreact/internal/domain/entity"
)

// ApplyOutcome tells a real transition apart from an ignored one.
type ApplyOutcome string

const (
	OutcomeApplied        ApplyOutcome = "applied"
	OutcomeIgnoredUnknown ApplyOutcome = "ignored_unknown"
)

// ReadSource names the store that answered a query.
type ReadSource string

const (
	SourcePrimary ReadSource = "primary"
	SourceMirror  ReadSource = "mirror"
	SourceDefault ReadSource = "default"
)

// ApplyResult is returned by Apply. Interaction is always the primary
// store's post-transition record.
type ApplyResult struct {
	Interaction  *entity.Interaction
	Outcome      ApplyOutcome
	MirrorStatus contract.MirrorStatus
	// MirrorErr is set when the mirror could not be read or written. The
	// primary store has already committed when this happens.
	MirrorErr error
}

// GetResult is returned by Get.
type GetResult struct {
	Interaction *entity.Interaction
	Source      ReadSource
}

type IInteractionUseCase interface {
	Apply(ctx context.Context, videoID string, kind entity.TransitionKind) (*ApplyResult, error)
	Get(ctx context.Context, videoID string) (*GetResult, error)
	RestoreFromMirror(ctx context.Context) (int, error)
}
