package document

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/pantry-service/internal/repository"
)

// ErrMalformedDataset is returned by writes when the stored document
// cannot be parsed. Reads fall back to an empty dataset instead, but a
// write must not replace unreadable data with that empty default.
var ErrMalformedDataset = errors.New("stored dataset is malformed")

// maxSaveAttempts bounds how often update reapplies a change after another
// writer saved first.
const maxSaveAttempts = 5

// Store serialises access to one dataset document. Every read loads the
// document fresh from the backend; every write reloads, applies its
// change and saves the whole document conditionally on the revision it
// loaded.
type Store struct {
	backend Backend
	mu      sync.Mutex
	now     func() time.Time
}

// NewStore creates a store on backend.
func NewStore(backend Backend) *Store {
	return &Store{
		backend: backend,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Ping checks that the backend can be read.
func (s *Store) Ping(ctx context.Context) error {
	_, _, err := s.backend.Load(ctx)
	return err
}

// load fetches and migrates the dataset and returns the revision it was
// read at. A dataset that needed migration is written back immediately so
// generated ids stay stable.
func (s *Store) load(ctx context.Context) (*Dataset, string, error) {
	raw, rev, err := s.backend.Load(ctx)
	if err != nil {
		return nil, "", err
	}

	ds, from, err := Decode(raw)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrMalformedDataset, err)
	}

	if len(raw) > 0 && from < SchemaVersion {
		next, err := s.save(ctx, ds, rev)
		if err != nil {
			log.Warn().Err(err).Int("from_version", from).Msg("Failed to persist migrated dataset")
		} else {
			rev = next
			log.Info().Int("from_version", from).Int("to_version", SchemaVersion).Msg("Dataset migrated")
		}
	}
	return ds, rev, nil
}

func (s *Store) save(ctx context.Context, ds *Dataset, rev string) (string, error) {
	data, err := Encode(ds)
	if err != nil {
		return "", fmt.Errorf("encode dataset: %w", err)
	}
	return s.backend.Save(ctx, data, rev)
}

// view runs fn against the current dataset. Load failures of any kind
// degrade to an empty dataset.
func (s *Store) view(ctx context.Context, fn func(ds *Dataset) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, _, err := s.load(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Document store load failed, using empty dataset")
		ds = NewDataset()
	}
	return fn(ds)
}

// update reloads the dataset, applies fn and saves the result. Nothing is
// saved when fn fails. When another writer saved in between, fn runs
// again on the reloaded dataset, so its own checks (such as pantry
// versions) see the other write. After maxSaveAttempts lost races update
// fails with repository.ErrVersionConflict.
func (s *Store) update(ctx context.Context, fn func(ds *Dataset) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var lastErr error
	for attempt := 1; attempt <= maxSaveAttempts; attempt++ {
		ds, rev, err := s.load(ctx)
		if err != nil {
			return err
		}
		if err := fn(ds); err != nil {
			return err
		}
		_, err = s.save(ctx, ds, rev)
		if !errors.Is(err, ErrRevisionMismatch) {
			return err
		}
		lastErr = err
		log.Debug().Err(err).Int("attempt", attempt).Msg("Dataset changed by another writer, reapplying")
	}
	return fmt.Errorf("%w: %v", repository.ErrVersionConflict, lastErr)
}

// MigrateBackend reads src, migrates it and writes the result to dst. It
// returns the version found in src.
func MigrateBackend(ctx context.Context, src, dst Backend) (int, error) {
	raw, _, err := src.Load(ctx)
	if err != nil {
		return 0, err
	}
	ds, from, err := Decode(raw)
	if err != nil {
		return from, err
	}
	data, err := Encode(ds)
	if err != nil {
		return from, fmt.Errorf("encode dataset: %w", err)
	}
	if _, err := dst.Save(ctx, data, ""); err != nil {
		return from, err
	}
	return from, nil
}
