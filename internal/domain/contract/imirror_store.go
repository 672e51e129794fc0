package contract

import (
	"context"

	"github.com/mikiasgoitom/videoreact/internal/domain/entity"
)

// MirrorStatus describes how a mirror snapshot was obtained.
type MirrorStatus string

const (
	// MirrorLoaded means the mirror file was read and parsed.
	MirrorLoaded MirrorStatus = "loaded"
	// MirrorMissing means there was no mirror file; the snapshot is empty.
	MirrorMissing MirrorStatus = "missing"
	// MirrorRecoveredEmpty means the mirror file could not be parsed and was treated as empty.
	MirrorRecoveredEmpty MirrorStatus = "recovered_empty"
	// MirrorDroppedInvalid means the file parsed but entries with negative
	// counters were left out of the snapshot.
	MirrorDroppedInvalid MirrorStatus = "dropped_invalid"
)

// MirrorSnapshot is the full content of the mirror store.
type MirrorSnapshot struct {
	Counts map[string]entity.Counts
	Status MirrorStatus
	// Dropped lists the keys left out under MirrorDroppedInvalid, sorted.
	Dropped []string
}

// IMirrorStore is the file-backed copy of every video's counters.
// Both operations work on the entire key space.
type IMirrorStore interface {
	LoadAll(ctx context.Context) (MirrorSnapshot, error)
	SaveAll(ctx context.Context, counts map[string]entity.Counts) error
}
