// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/phrasemap/core"
	"github.com/poiesic/phrasemap/store"
)

// RunRepository implements store.RunRepository on a Backend.
type RunRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ store.RunRepository = (*RunRepository)(nil)

// NewRunRepository creates a run repository over an open backend.
func NewRunRepository(backend *Backend) (*RunRepository, error) {
	if backend == nil {
		return nil, errors.New("backend is required")
	}
	return &RunRepository{
		backend: backend,
		logger:  slog.Default().With("component", "run-repository"),
	}, nil
}

// seedRecord is the stored JSON form of a seed.
type seedRecord struct {
	Phrase      string  `json:"phrase"`
	Intent      string  `json:"intent"`
	Perspective string  `json:"perspective"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
}

// poolEntry is the stored JSON form of one candidate.
type poolEntry struct {
	Phrase     string             `json:"phrase"`
	Provenance int                `json:"provenance"`
	Rationale  string             `json:"rationale"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
}

// SaveRun stores the index record and payload blobs in one transaction.
// Saving an existing id overwrites everything.
func (r *RunRepository) SaveRun(_ context.Context, run *store.Run) error {
	if run == nil || run.Info.Id == "" {
		return store.ErrMissingId
	}

	seed, err := json.Marshal(seedRecord{
		Phrase:      run.Seed.Phrase,
		Intent:      string(run.Seed.Intent),
		Perspective: string(run.Seed.Perspective),
		X:           run.Seed.X,
		Y:           run.Seed.Y,
	})
	if err != nil {
		return err
	}

	pool := make([]poolEntry, len(run.Pool))
	for i, candidate := range run.Pool {
		pool[i] = poolEntry{
			Phrase:     candidate.Phrase,
			Provenance: int(candidate.Provenance),
			Rationale:  candidate.Rationale,
			Metrics:    candidate.Metrics,
		}
	}
	poolData, err := json.Marshal(pool)
	if err != nil {
		return err
	}

	id := run.Info.Id
	err = r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeRunInfoKey(id), store.MarshalRunInfo(run.Info)); err != nil {
			return err
		}
		if err := tx.Set(makeRunSeedKey(id), seed); err != nil {
			return err
		}
		if err := tx.Set(makeRunPoolKey(id), poolData); err != nil {
			return err
		}
		if err := tx.Set(makeRunGraphKey(id), run.Graph); err != nil {
			return err
		}
		if err := tx.Set(makeRunReportKey(id), run.Report); err != nil {
			return err
		}
		if err := tx.Set(makeRunConfigKey(id), run.Config); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return err
	}

	r.logger.Debug("saved run", "id", id, "seed", run.Info.SeedPhrase, "nodes", run.Info.NodeCount)
	return nil
}

// GetRun retrieves a run by id.
func (r *RunRepository) GetRun(_ context.Context, id string) (*store.Run, error) {
	var run store.Run

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		infoData, err := getValue(tx, makeRunInfoKey(id))
		if err != nil {
			return err
		}
		if run.Info, err = store.UnmarshalRunInfo(infoData); err != nil {
			return err
		}

		seedData, err := getValue(tx, makeRunSeedKey(id))
		if err != nil {
			return err
		}
		var seed seedRecord
		if err := json.Unmarshal(seedData, &seed); err != nil {
			return fmt.Errorf("%w: seed: %w", store.ErrCorruptRecord, err)
		}
		run.Seed = core.Seed{
			Id:          core.IDFromContent(seed.Phrase),
			Phrase:      seed.Phrase,
			Intent:      core.Intent(seed.Intent),
			Perspective: core.Perspective(seed.Perspective),
			X:           seed.X,
			Y:           seed.Y,
		}

		poolData, err := getValue(tx, makeRunPoolKey(id))
		if err != nil {
			return err
		}
		var pool []poolEntry
		if err := json.Unmarshal(poolData, &pool); err != nil {
			return fmt.Errorf("%w: pool: %w", store.ErrCorruptRecord, err)
		}
		run.Pool = make([]core.Candidate, len(pool))
		for i, entry := range pool {
			run.Pool[i] = core.Candidate{
				Phrase:     entry.Phrase,
				Provenance: core.Provenance(entry.Provenance),
				Rationale:  entry.Rationale,
				Metrics:    entry.Metrics,
			}
		}

		if run.Graph, err = getValue(tx, makeRunGraphKey(id)); err != nil {
			return err
		}
		if run.Report, err = getValue(tx, makeRunReportKey(id)); err != nil {
			return err
		}

		// Records written before config snapshots existed have no config key.
		run.Config, err = getValue(tx, makeRunConfigKey(id))
		if errors.Is(err, store.ErrNotFound) {
			run.Config = nil
			return nil
		}
		return err
	}, false)
	if err != nil {
		return nil, err
	}

	return &run, nil
}

// ListRuns returns every index record, newest first; equal timestamps
// order by id so the listing is stable.
func (r *RunRepository) ListRuns(_ context.Context) ([]store.RunInfo, error) {
	var infos []store.RunInfo

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(runInfoPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(data []byte) error {
				info, err := store.UnmarshalRunInfo(data)
				if err != nil {
					return err
				}
				infos = append(infos, info)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	sort.Slice(infos, func(i, j int) bool {
		if !infos[i].CreatedAt.Equal(infos[j].CreatedAt) {
			return infos[i].CreatedAt.After(infos[j].CreatedAt)
		}
		return infos[i].Id < infos[j].Id
	})

	return infos, nil
}

// DeleteRun removes a run and its payload blobs.
func (r *RunRepository) DeleteRun(_ context.Context, id string) error {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// existence check on the index record
		if _, err := tx.Get(makeRunInfoKey(id)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return store.ErrNotFound
			}
			return err
		}

		for _, key := range [][]byte{
			makeRunInfoKey(id),
			makeRunSeedKey(id),
			makeRunPoolKey(id),
			makeRunGraphKey(id),
			makeRunReportKey(id),
			makeRunConfigKey(id),
		} {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return err
	}

	r.logger.Debug("deleted run", "id", id)
	return nil
}

// Close closes the underlying backend.
func (r *RunRepository) Close() error {
	return r.backend.Close()
}

// getValue copies a value out of the transaction, mapping missing keys to
// store.ErrNotFound.
func getValue(tx *badger.Txn, key []byte) ([]byte, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return item.ValueCopy(nil)
}
