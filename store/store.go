package store

import "github.com/uptrace/bun"

// Store bundles Pusher, Puller, Observer, and Cleaner behind a single
// value, satisfying queuectl.Store for callers that want one handle onto
// the database.
type Store struct {
	*Pusher
	*Puller
	*Observer
	*Cleaner
}

// NewStore creates a Store backed by db. Schema initialization (InitDB)
// must be completed before use.
func NewStore(db *bun.DB) *Store {
	return &Store{
		Pusher:   NewPusher(db),
		Puller:   NewPuller(db),
		Observer: NewObserver(db),
		Cleaner:  NewCleaner(db),
	}
}
