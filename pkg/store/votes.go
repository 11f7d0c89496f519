package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mintnetwork/voteflow/pkg/flow"
)

// Persisted keys.
const (
	KeyCompleted = "mint-voting-completed"
	KeyLastDay   = "mint-last-vote-date"
	KeyTimestamp = "mint-last-vote-timestamp"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// ErrUnknownBackend is returned by Open for an unrecognised backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// VoteStore maps the flow's persisted state onto a KV backend.
type VoteStore struct {
	kv     KV
	logger *slog.Logger
}

// NewVoteStore wraps kv. A nil logger discards read failures.
func NewVoteStore(kv KV, logger *slog.Logger) *VoteStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &VoteStore{kv: kv, logger: logger}
}

// Open creates the named backend in dir. The returned closer releases the
// backend and is safe to call for backends that hold nothing open.
func Open(backend, dir string, logger *slog.Logger) (*VoteStore, io.Closer, error) {
	switch backend {
	case BackendFile, "":
		kv, err := NewFileKV(dir)
		if err != nil {
			return nil, nil, err
		}
		return NewVoteStore(kv, logger), nopCloser{}, nil
	case BackendSQLite:
		kv, err := OpenSQLite(filepath.Join(dir, DatabaseFile))
		if err != nil {
			return nil, nil, err
		}
		return NewVoteStore(kv, logger), kv, nil
	case BackendMemory:
		return NewVoteStore(NewMemoryKV(), logger), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// Load reads the snapshot. Missing or malformed values come back empty.
func (s *VoteStore) Load() flow.Snapshot {
	var snap flow.Snapshot

	if raw, ok := s.get(KeyCompleted); ok {
		var ids []string
		if err := json.Unmarshal([]byte(raw), &ids); err != nil {
			s.logger.Warn("ignoring malformed completed list", "error", err)
		} else {
			snap.Completed = ids
		}
	}

	if day, ok := s.get(KeyLastDay); ok {
		snap.LastVoteDay = day
	}

	if raw, ok := s.get(KeyTimestamp); ok {
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || ms <= 0 {
			s.logger.Warn("ignoring malformed vote timestamp", "value", raw)
		} else {
			snap.VoteTimestamp = time.UnixMilli(ms)
		}
	}

	return snap
}

func (s *VoteStore) SaveCompleted(ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encoding completed sites: %w", err)
	}
	return s.kv.Apply(Set(KeyCompleted, string(data)))
}

func (s *VoteStore) RecordVote(at time.Time, day string) error {
	return s.kv.Apply(
		Set(KeyTimestamp, strconv.FormatInt(at.UnixMilli(), 10)),
		Set(KeyLastDay, day),
	)
}

func (s *VoteStore) StartDay(day string) error {
	return s.kv.Apply(
		Remove(KeyCompleted),
		Remove(KeyTimestamp),
		Set(KeyLastDay, day),
	)
}

func (s *VoteStore) Clear() error {
	return s.kv.Apply(
		Remove(KeyCompleted),
		Remove(KeyLastDay),
		Remove(KeyTimestamp),
	)
}

func (s *VoteStore) get(key string) (string, bool) {
	v, ok, err := s.kv.Get(key)
	if err != nil {
		s.logger.Warn("reading stored value failed", "key", key, "error", err)
		return "", false
	}
	return v, ok
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

var _ flow.Persistence = (*VoteStore)(nil)
