package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// fileStore keeps snapshots as gzipped files under a directory.
type fileStore struct {
	dir    string
	logger zerolog.Logger
}

// NewFileStore creates a store rooted at dir.
func NewFileStore(dir string, logger zerolog.Logger) Store {
	return &fileStore{
		dir:    dir,
		logger: logger.With().Str("component", "snapshot-file-store").Logger(),
	}
}

func (s *fileStore) path(key string) string {
	return filepath.Join(s.dir, filepath.FromSlash(key))
}

// Save writes the snapshot to a temporary file and renames it into place.
func (s *fileStore) Save(ctx context.Context, key string, records []json.RawMessage) error {
	path := s.path(key)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".snapshot-*")
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := writeRecords(tmp, records); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close snapshot file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move snapshot into place: %w", err)
	}

	s.logger.Info().
		Str("file", path).
		Int("records", len(records)).
		Msg("snapshot saved")
	return nil
}

// Load reads a snapshot file.
func (s *fileStore) Load(ctx context.Context, key string) ([]json.RawMessage, error) {
	path := s.path(key)

	file, err := os.Open(path)
	if err != nil {
		s.logger.Error().Err(err).Str("file", path).Msg("failed to open snapshot file")
		return nil, fmt.Errorf("failed to open snapshot file %s: %w", path, err)
	}
	defer file.Close()

	records, err := readRecords(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot file %s: %w", path, err)
	}

	s.logger.Info().
		Str("file", path).
		Int("records", len(records)).
		Msg("snapshot loaded")
	return records, nil
}
