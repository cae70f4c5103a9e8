// Package memory is a process-local implementation of the repository contracts.
// It backs the "memory" storage driver and the always-on contract tests, and
// enforces the same constraints as the postgres schema: unique country name and
// ISO codes, city to country foreign key, cascading country deletes.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/maxviazov/worldcities-service/internal/model"
	"github.com/maxviazov/worldcities-service/internal/repository"
)

// Store holds all tables. The zero value is not usable; call New.
type Store struct {
	mu          sync.RWMutex
	countries   map[int64]model.Country
	cities      map[int64]model.City
	nextCountry int64
	nextCity    int64

	// txMu serializes WithinTx so two transactions never undo over each other's rows.
	txMu sync.Mutex
	now  func() time.Time
}

func New() *Store {
	return &Store{
		countries: make(map[int64]model.Country),
		cities:    make(map[int64]model.City),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Cities() repository.CityRepository       { return &cityRepository{s: s} }
func (s *Store) Countries() repository.CountryRepository { return &countryRepository{s: s} }
func (s *Store) TxManager() repository.TxManager         { return &txManager{s: s} }

// Ping always succeeds; there is no connection to lose.
func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

// record appends an undo step to the transaction carried by ctx, if any.
// Caller holds mu.
func (s *Store) record(ctx context.Context, undo func()) {
	if tx, ok := ctx.Value(txKey{}).(*txLog); ok {
		tx.undo = append(tx.undo, undo)
	}
}

// sortedKeys returns map keys in ascending order, the natural listing order.
func sortedKeys[V any](m map[int64]V) []int64 {
	return slices.Sorted(maps.Keys(m))
}

type txKey struct{}

// txLog holds the undo steps of the writes made through one transaction's context.
type txLog struct {
	undo []func()
}

func (tx *txLog) rollback(s *Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(tx.undo) - 1; i >= 0; i-- {
		tx.undo[i]()
	}
}

type txManager struct{ s *Store }

// WithinTx runs fn and, if it fails, reverts the writes fn made through the
// transaction's context. Writes made through any other context are untouched.
// Nested calls join the outer transaction.
func (m *txManager) WithinTx(ctx context.Context, fn repository.TxFunc) error {
	if _, ok := ctx.Value(txKey{}).(*txLog); ok {
		return fn(ctx)
	}
	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()

	tx := &txLog{}
	err := fn(context.WithValue(ctx, txKey{}, tx))
	if err == nil {
		// a cancelled context aborts the commit, as it would in postgres
		err = ctx.Err()
	}
	if err != nil {
		tx.rollback(m.s)
		return err
	}
	return nil
}

var (
	_ repository.Pinger    = (*Store)(nil)
	_ repository.TxManager = (*txManager)(nil)
)
