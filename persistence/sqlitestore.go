// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package persistence

import (
	"database/sql"

	"github.com/golang/snappy"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/lightstake/sequencer/events"
	"github.com/lightstake/sequencer/log"
	"github.com/lightstake/sequencer/stake"
)

var logger = log.WithContext("pkg", "persistence")

const schema = `
CREATE TABLE IF NOT EXISTS event_log (
	id INTEGER PRIMARY KEY CHECK (id = 0),
	high_water_block INTEGER NOT NULL,
	payload BLOB NOT NULL
);
CREATE TABLE IF NOT EXISTS epoch_stake (
	epoch INTEGER PRIMARY KEY,
	payload BLOB NOT NULL
);
`

// SQLiteStore is the durable Store implementation: a database/sql
// handle over github.com/mattn/go-sqlite3, with payloads
// snappy-compressed before being written.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (creating if necessary) a sqlite-backed store
// at path, e.g. "file:stake.db" or a filesystem path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.WithMessage(ErrStorageUnavailable, err.Error())
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.WithMessage(ErrStorageUnavailable, err.Error())
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) LoadEvents() (uint64, []events.StakeTableEvent, bool, error) {
	row := s.db.QueryRow(`SELECT high_water_block, payload FROM event_log WHERE id = 0`)
	var hw int64
	var payload []byte
	if err := row.Scan(&hw, &payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil, false, nil
		}
		return 0, nil, false, errors.WithMessage(ErrStorageUnavailable, err.Error())
	}
	raw, err := snappy.Decode(nil, payload)
	if err != nil {
		return 0, nil, false, errors.WithMessage(ErrConsistencyMismatch, err.Error())
	}
	highWaterBlock, evs, err := decodeEventLog(raw)
	if err != nil {
		return 0, nil, false, errors.WithMessage(ErrConsistencyMismatch, err.Error())
	}
	if highWaterBlock != uint64(hw) {
		logger.Error("persisted high-water-block mismatch between index and payload", "indexed", hw, "payload", highWaterBlock)
		return 0, nil, false, ErrConsistencyMismatch
	}
	return highWaterBlock, evs, true, nil
}

func (s *SQLiteStore) StoreEvents(highWaterBlock uint64, evs []events.StakeTableEvent) error {
	raw, err := encodeEventLog(highWaterBlock, evs)
	if err != nil {
		return errors.WithMessage(err, "encode event log")
	}
	payload := snappy.Encode(nil, raw)

	tx, err := s.db.Begin()
	if err != nil {
		return errors.WithMessage(ErrStorageUnavailable, err.Error())
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM event_log WHERE id = 0`); err != nil {
		return errors.WithMessage(ErrStorageUnavailable, err.Error())
	}
	if _, err := tx.Exec(`INSERT INTO event_log (id, high_water_block, payload) VALUES (0, ?, ?)`, int64(highWaterBlock), payload); err != nil {
		return errors.WithMessage(ErrStorageUnavailable, err.Error())
	}
	if err := tx.Commit(); err != nil {
		return errors.WithMessage(ErrStorageUnavailable, err.Error())
	}
	return nil
}

func (s *SQLiteStore) StoreStake(epoch uint64, set *stake.ValidatorSet) error {
	raw, err := encodeValidatorSet(set)
	if err != nil {
		return errors.WithMessage(err, "encode validator set")
	}
	payload := snappy.Encode(nil, raw)
	_, err = s.db.Exec(`INSERT INTO epoch_stake (epoch, payload) VALUES (?, ?)
		ON CONFLICT(epoch) DO UPDATE SET payload = excluded.payload`, int64(epoch), payload)
	if err != nil {
		return errors.WithMessage(ErrStorageUnavailable, err.Error())
	}
	return nil
}

func (s *SQLiteStore) LoadStake(epoch uint64) (*stake.ValidatorSet, bool, error) {
	row := s.db.QueryRow(`SELECT payload FROM epoch_stake WHERE epoch = ?`, int64(epoch))
	var payload []byte
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, errors.WithMessage(ErrStorageUnavailable, err.Error())
	}
	raw, err := snappy.Decode(nil, payload)
	if err != nil {
		return nil, false, errors.WithMessage(ErrConsistencyMismatch, err.Error())
	}
	set, err := decodeValidatorSet(raw)
	if err != nil {
		return nil, false, errors.WithMessage(ErrConsistencyMismatch, err.Error())
	}
	return set, true, nil
}

func (s *SQLiteStore) LoadLatestStake(limit int) ([]EpochStake, error) {
	rows, err := s.db.Query(`SELECT epoch, payload FROM epoch_stake ORDER BY epoch DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.WithMessage(ErrStorageUnavailable, err.Error())
	}
	defer rows.Close()

	var out []EpochStake
	for rows.Next() {
		var epoch int64
		var payload []byte
		if err := rows.Scan(&epoch, &payload); err != nil {
			return nil, errors.WithMessage(ErrStorageUnavailable, err.Error())
		}
		raw, err := snappy.Decode(nil, payload)
		if err != nil {
			return nil, errors.WithMessage(ErrConsistencyMismatch, err.Error())
		}
		set, err := decodeValidatorSet(raw)
		if err != nil {
			return nil, errors.WithMessage(ErrConsistencyMismatch, err.Error())
		}
		out = append(out, EpochStake{Epoch: uint64(epoch), Set: set})
	}
	return out, rows.Err()
}
