// Package table provides the in-memory rows behind the shared state
// repositories. Tables are not synchronised themselves: callers hold the
// store lock, and every write goes through a Journal so that a unit of work
// can be undone.
package table

import (
	"errors"
	"slices"
)

// ErrNoActiveTransaction is returned when a repository is used outside of
// Begin/Commit.
var ErrNoActiveTransaction = errors.New("no active transaction")

// Tx gives repositories access to the undo journal of the running unit of work.
type Tx interface {
	Journal() (*Journal, error)
}

// Journal records how to revert each write, newest last.
type Journal struct {
	undo []func()
}

func NewJournal() *Journal {
	return &Journal{}
}

func (j *Journal) record(fn func()) {
	j.undo = append(j.undo, fn)
}

// Len returns the number of recorded writes.
func (j *Journal) Len() int {
	return len(j.undo)
}

// Undo reverts every recorded write in reverse order and empties the journal.
func (j *Journal) Undo() {
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
	j.undo = nil
}

// Forget drops the recorded writes, keeping their effect.
func (j *Journal) Forget() {
	j.undo = nil
}

// Table is a keyed set of rows that remembers insertion order.
type Table[V any] struct {
	rows map[string]V
	keys []string
}

func New[V any]() *Table[V] {
	return &Table[V]{rows: make(map[string]V)}
}

func (t *Table[V]) Get(key string) (V, bool) {
	row, ok := t.rows[key]
	return row, ok
}

func (t *Table[V]) Len() int {
	return len(t.rows)
}

// Put inserts or replaces a row.
func (t *Table[V]) Put(j *Journal, key string, row V) {
	prev, existed := t.rows[key]
	t.rows[key] = row

	if existed {
		j.record(func() { t.rows[key] = prev })
		return
	}

	t.keys = append(t.keys, key)
	j.record(func() {
		delete(t.rows, key)
		t.keys = t.keys[:len(t.keys)-1]
	})
}

// Delete removes a row and reports whether it existed.
func (t *Table[V]) Delete(j *Journal, key string) bool {
	prev, existed := t.rows[key]
	if !existed {
		return false
	}

	idx := slices.Index(t.keys, key)
	delete(t.rows, key)
	t.keys = slices.Delete(t.keys, idx, idx+1)

	j.record(func() {
		t.rows[key] = prev
		t.keys = slices.Insert(t.keys, idx, key)
	})
	return true
}

// Scan calls fn for each row in insertion order until fn returns false.
func (t *Table[V]) Scan(fn func(key string, row V) bool) {
	for _, key := range t.keys {
		if !fn(key, t.rows[key]) {
			return
		}
	}
}
