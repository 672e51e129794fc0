package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/mikiasgoitom/videoreact/internal/domain/contract"
	"github.com/mikiasgoitom/videoreact/internal/domain/entity"
)

// DefaultFileName is the mirror file used when no path is configured.
const DefaultFileName = "video_interactions.json"

// JSONFileStore keeps every video's counters in a single indented JSON document.
type JSONFileStore struct {
	path string
}

// NewJSONFileStore creates a mirror store backed by the file at path.
func NewJSONFileStore(path string) *JSONFileStore {
	if path == "" {
		path = DefaultFileName
	}
	return &JSONFileStore{path: path}
}

var _ contract.IMirrorStore = (*JSONFileStore)(nil)

// Path returns the location of the mirror file.
func (s *JSONFileStore) Path() string {
	return s.path
}

// LoadAll reads the whole mirror. A missing file and an unparseable file
// both yield an empty snapshot; the Status field tells them apart. Entries
// with a negative counter are left out and reported as MirrorDroppedInvalid.
func (s *JSONFileStore) LoadAll(ctx context.Context) (contract.MirrorSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return contract.MirrorSnapshot{}, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return emptySnapshot(contract.MirrorMissing), nil
		}
		return contract.MirrorSnapshot{}, fmt.Errorf("failed to read mirror file %s: %w", s.path, err)
	}

	counts := make(map[string]entity.Counts)
	if err := json.Unmarshal(data, &counts); err != nil {
		return emptySnapshot(contract.MirrorRecoveredEmpty), nil
	}
	// a literal "null" document decodes into a nil map
	if counts == nil {
		counts = make(map[string]entity.Counts)
	}
	var dropped []string
	for id, c := range counts {
		if c.Likes < 0 || c.Dislikes < 0 {
			dropped = append(dropped, id)
			delete(counts, id)
		}
	}
	if len(dropped) > 0 {
		sort.Strings(dropped)
		return contract.MirrorSnapshot{Counts: counts, Status: contract.MirrorDroppedInvalid, Dropped: dropped}, nil
	}
	return contract.MirrorSnapshot{Counts: counts, Status: contract.MirrorLoaded}, nil
}

// SaveAll rewrites the whole mirror. The document is written to a sibling
// temp file and renamed over the old one.
func (s *JSONFileStore) SaveAll(ctx context.Context, counts map[string]entity.Counts) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if counts == nil {
		counts = map[string]entity.Counts{}
	}
	data, err := json.MarshalIndent(counts, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode mirror: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create mirror temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write mirror temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close mirror temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace mirror file %s: %w", s.path, err)
	}
	return nil
}

func emptySnapshot(status contract.MirrorStatus) contract.MirrorSnapshot {
	return contract.MirrorSnapshot{Counts: make(map[string]entity.Counts), Status: status}
}
