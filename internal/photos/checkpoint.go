package photos

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"datenight/internal/restaurant"

	"github.com/google/uuid"
)

// Checkpoint is the resumable progress of an interrupted backfill run. It
// only applies to the record list whose Fingerprint it carries.
type Checkpoint struct {
	Fingerprint string    `json:"fingerprint"`
	Total       int       `json:"total"`
	NextIndex   int       `json:"next_index"`
	Found       int       `json:"found"`
	Failed      int       `json:"failed"`
	Skipped     int       `json:"skipped"`
	Mirrored    int       `json:"mirrored"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Fingerprint identifies a record list by the order of its restaurants.
// Photo changes do not alter it.
func Fingerprint(records []*restaurant.Restaurant) string {
	var b strings.Builder
	for _, r := range records {
		b.WriteString(r.ID)
		b.WriteByte('/')
		b.WriteString(r.NeighborhoodSlug)
		b.WriteByte('/')
		b.WriteString(r.Slug)
		b.WriteByte('\n')
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(b.String())).String()
}

// LoadCheckpoint returns the zero checkpoint when path does not exist.
func LoadCheckpoint(path string) (Checkpoint, error) {
	var cp Checkpoint
	if path == "" {
		return cp, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cp, nil
	}
	if err != nil {
		return cp, fmt.Errorf("read checkpoint: %w", err)
	}
	if err := json.Unmarshal(data, &cp); err != nil {
		return cp, fmt.Errorf("decode checkpoint %s: %w", path, err)
	}
	return cp, nil
}

func SaveCheckpoint(path string, cp Checkpoint) error {
	if path == "" {
		return nil
	}

	data, err := json.MarshalIndent(cp, "", "  ")
	if err != nil {
		return err
	}

	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write checkpoint: %w", err)
	}
	return os.Rename(tmp, path)
}

// RemoveCheckpoint deletes path. A missing file is not an error.
func RemoveCheckpoint(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove checkpoint: %w", err)
	}
	return nil
}
