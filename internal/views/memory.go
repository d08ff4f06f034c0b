package views

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/akeren/creatorchain/internal/log"
	"github.com/hashicorp/go-memdb"
)

const viewTable = "view"

// record is the memdb row. Rows are never mutated after insert.
type record struct {
	ID        string
	State     string
	CreatedAt int64
	ExpiresAt int64
}

func (r *record) view() *View {
	return &View{
		ID:        r.ID,
		State:     State(r.State),
		CreatedAt: time.UnixMilli(r.CreatedAt),
		ExpiresAt: time.UnixMilli(r.ExpiresAt),
	}
}

var schema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		viewTable: {
			Name: viewTable,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "ID"},
				},
				"expiry": {
					Name:    "expiry",
					Indexer: &memdb.IntFieldIndex{Field: "ExpiresAt"},
				},
			},
		},
	},
}

// MemoryStore keeps views in process. A background ticker drops expired
// views until Close is called.
type MemoryStore struct {
	db     *memdb.MemDB
	ttl    time.Duration
	opts   options
	logger *log.Logger

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

func NewMemoryStore(ttl, cleanupInterval time.Duration, logger *log.Logger, opts ...Option) (*MemoryStore, error) {
	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("views: create memdb: %w", err)
	}
	if logger == nil {
		logger = log.NewDiscardLogger()
	}

	s := &MemoryStore{
		db:     db,
		ttl:    ttl,
		opts:   buildOptions(opts),
		logger: logger,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}

	if cleanupInterval > 0 {
		go s.cleanupLoop(cleanupInterval)
	} else {
		close(s.done)
	}
	return s, nil
}

func (s *MemoryStore) Open(_ context.Context) (*View, error) {
	now := s.opts.now()
	rec := &record{
		ID:        s.opts.newID(),
		State:     string(StateUnsubmitted),
		CreatedAt: now.UnixMilli(),
		ExpiresAt: now.Add(s.ttl).UnixMilli(),
	}

	txn := s.db.Txn(true)
	defer txn.Abort()

	if err := txn.Insert(viewTable, rec); err != nil {
		return nil, fmt.Errorf("views: insert: %w", err)
	}
	txn.Commit()

	return rec.view(), nil
}

func (s *MemoryStore) lookup(txn *memdb.Txn, id string) (*record, error) {
	raw, err := txn.First(viewTable, "id", id)
	if err != nil {
		return nil, fmt.Errorf("views: lookup: %w", err)
	}
	if raw == nil {
		return nil, ErrNotFound
	}

	rec := raw.(*record)
	if rec.ExpiresAt <= s.opts.now().UnixMilli() {
		return nil, ErrNotFound
	}
	return rec, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*View, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	rec, err := s.lookup(txn, id)
	if err != nil {
		return nil, err
	}
	return rec.view(), nil
}

// MarkSubmitted relies on memdb serialising write transactions.
func (s *MemoryStore) MarkSubmitted(_ context.Context, id string) (bool, error) {
	txn := s.db.Txn(true)
	defer txn.Abort()

	rec, err := s.lookup(txn, id)
	if err != nil {
		return false, err
	}
	if State(rec.State) == StateSubmitted {
		return false, nil
	}

	updated := *rec
	updated.State = string(StateSubmitted)
	if err := txn.Insert(viewTable, &updated); err != nil {
		return false, fmt.Errorf("views: update: %w", err)
	}
	txn.Commit()
	return true, nil
}

// Sweep deletes expired views and returns how many were removed.
func (s *MemoryStore) Sweep() (int, error) {
	now := s.opts.now().UnixMilli()

	txn := s.db.Txn(true)
	defer txn.Abort()

	it, err := txn.Get(viewTable, "expiry")
	if err != nil {
		return 0, fmt.Errorf("views: scan expiry: %w", err)
	}

	// The expiry index is ordered, so the scan stops at the first live view.
	var expired []*record
	for obj := it.Next(); obj != nil; obj = it.Next() {
		rec := obj.(*record)
		if rec.ExpiresAt > now {
			break
		}
		expired = append(expired, rec)
	}

	for _, rec := range expired {
		if err := txn.Delete(viewTable, rec); err != nil {
			return 0, fmt.Errorf("views: delete %s: %w", rec.ID, err)
		}
	}
	txn.Commit()
	return len(expired), nil
}

func (s *MemoryStore) cleanupLoop(interval time.Duration) {
	defer close(s.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			removed, err := s.Sweep()
			if err != nil {
				s.logger.Error("View cleanup failed", "error", err)
				continue
			}
			if removed > 0 {
				s.logger.Debug("Expired views removed", "count", removed)
			}
		}
	}
}

func (s *MemoryStore) Close() error {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
	return nil
}
