// Package cache persists versioned view configurations behind a small
// key-value contract and reconciles every write against what is already
// stored.
//
// Store implementations only move bytes: Get, Set and Delete on string keys.
// Cache[T] owns serialization, reconciliation and locking on top of them:
//
//	Cache.Store -> remoteui.Reconcile(incoming, cached) -> Store.Set (fresh only)
//
// Writes to one key are serialized; writes to different keys run in
// parallel. Clear excludes every other operation while it runs so callers
// never observe a half-cleared namespace.
//
// Entries live under "<namespace>/entry/<key>". The namespace also keeps an
// index of its keys under "<namespace>/index" so Clear and Keys work on
// stores that cannot list keys.
package cache
