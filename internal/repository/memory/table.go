package memory

import (
	"sort"

	"github.com/medisys/clinical-api/internal/model"
)

// keyed is what the generic table needs from a record: compile-time access
// to its identifier and concurrency token.
type keyed interface {
	model.Entity
	Revision() int64
	SetKey(id, version int64)
}

type updateResult int

const (
	updateOK updateResult = iota
	updateNotFound
	updateConflict
)

// table is one versioned in-memory collection. Locking is the owning
// Store's job; table methods assume the caller holds the lock.
type table[T any, PT interface {
	keyed
	*T
}] struct {
	seq  int64
	rows map[int64]*T
}

func newTable[T any, PT interface {
	keyed
	*T
}]() *table[T, PT] {
	return &table[T, PT]{rows: make(map[int64]*T)}
}

// add assigns the next identifier and version 1, storing a copy of rec.
// The assigned key is written back into rec.
func (t *table[T, PT]) add(rec PT) {
	t.seq++
	rec.SetKey(t.seq, 1)
	cp := *(*T)(rec)
	t.rows[t.seq] = &cp
}

// get returns a copy of the row, so callers never share store state.
func (t *table[T, PT]) get(id int64) (*T, bool) {
	row, ok := t.rows[id]
	if !ok {
		return nil, false
	}
	cp := *row
	return &cp, true
}

// update replaces the whole row if rec carries the current version, then
// advances the version both in the store and in rec.
func (t *table[T, PT]) update(rec PT) updateResult {
	cur, ok := t.rows[rec.Identifier()]
	if !ok {
		return updateNotFound
	}
	if rec.Revision() != PT(cur).Revision() {
		return updateConflict
	}
	next := rec.Revision() + 1
	cp := *(*T)(rec)
	PT(&cp).SetKey(rec.Identifier(), next)
	t.rows[rec.Identifier()] = &cp
	rec.SetKey(rec.Identifier(), next)
	return updateOK
}

func (t *table[T, PT]) delete(id int64) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

func (t *table[T, PT]) exists(id int64) bool {
	_, ok := t.rows[id]
	return ok
}

func (t *table[T, PT]) count() int64 {
	return int64(len(t.rows))
}

// all returns copies of every row in ascending id order.
func (t *table[T, PT]) all() []*T {
	out := make([]*T, 0, len(t.rows))
	for _, row := range t.rows {
		cp := *row
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return PT(out[i]).Identifier() < PT(out[j]).Identifier()
	})
	return out
}
