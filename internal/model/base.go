package model

// Entity is the capability every stored record type implements. The store
// resolves identifiers through it at compile time instead of reflecting on
// an Id field at runtime.
type Entity interface {
	Identifier() int64
}

// Base contains common fields for all stored records. Version is the
// optimistic concurrency token: the store increments it on every successful
// update and rejects writes carrying a stale value.
type Base struct {
	ID      int64 `db:"id" json:"id"`
	Version int64 `db:"version" json:"version"`
}

func (b Base) Identifier() int64 { return b.ID }

// Revision returns the concurrency token.
func (b Base) Revision() int64 { return b.Version }

// SetKey is used by stores when assigning identifiers and advancing versions.
func (b *Base) SetKey(id, version int64) {
	b.ID = id
	b.Version = version
}
