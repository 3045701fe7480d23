package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	remoteui "github.com/goliatone/go-remoteui"
	"github.com/goliatone/go-remoteui/pkg/activity"
)

var ErrKeyRequired = errors.New("cache: key is required")

// Cache stores one VersionedValue[T] per key. Store reconciles the incoming
// value against the cached one before persisting, so a newer cached value is
// never overwritten by an older fetch.
type Cache[T any] struct {
	store Store
	cfg   config

	// gate is held shared by per-key operations and exclusively by Clear.
	gate  sync.RWMutex
	locks keyLocks
	// indexMu serializes read-modify-write of the key index.
	indexMu sync.Mutex
}

// New builds a cache over store.
func New[T any](store Store, opts ...Option) (*Cache[T], error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	return &Cache[T]{
		store: store,
		cfg:   newConfig(opts),
		locks: keyLocks{entries: map[string]*keyLock{}},
	}, nil
}

// Namespace returns the key prefix of this cache.
func (c *Cache[T]) Namespace() string {
	return c.cfg.namespace
}

// Store reconciles incoming against the cached value for key and returns the
// winner. A Fresh outcome is persisted; a Restored outcome leaves the entry
// untouched. Either way key is listed in the index afterwards.
func (c *Cache[T]) Store(ctx context.Context, key string, incoming remoteui.VersionedValue[T]) (remoteui.Reconciliation[T], error) {
	if key == "" {
		return remoteui.Reconciliation[T]{}, ErrKeyRequired
	}
	c.gate.RLock()
	defer c.gate.RUnlock()
	unlock := c.locks.lock(key)
	defer unlock()

	start := time.Now()
	result, err := c.reconcileAndPersist(ctx, key, incoming)
	c.log("store", key, incoming.Locale.String(), start, err, map[string]any{
		"origin":           result.Origin.String(),
		"version":          result.Value.Version,
		"incoming_version": incoming.Version,
	})
	if err != nil {
		return remoteui.Reconciliation[T]{}, err
	}

	input := activity.CacheEventInput{
		ActorID:   c.cfg.actorID,
		Namespace: c.cfg.namespace,
		Key:       key,
		Locale:    result.Value.Locale.String(),
		Version:   result.Value.Version,
		Incoming:  incoming.Version,
	}
	if result.Origin == remoteui.OriginRestored {
		c.emit(ctx, activity.BuildCacheRestoredEvent(input))
	} else {
		c.emit(ctx, activity.BuildCacheFreshEvent(input))
	}
	return result, nil
}

func (c *Cache[T]) reconcileAndPersist(ctx context.Context, key string, incoming remoteui.VersionedValue[T]) (remoteui.Reconciliation[T], error) {
	cached, present, err := c.read(ctx, key)
	if err != nil {
		return remoteui.Reconciliation[T]{}, err
	}
	result := remoteui.Reconcile(incoming, cached)
	if result.Origin == remoteui.OriginRestored {
		// The kept entry must still be reachable by Clear.
		if _, err := c.ensureIndexed(ctx, key); err != nil {
			return remoteui.Reconciliation[T]{}, err
		}
		return result, nil
	}

	payload, err := json.Marshal(result.Value)
	if err != nil {
		return remoteui.Reconciliation[T]{}, fmt.Errorf("cache: encode %q: %w", key, err)
	}
	// Index first: an entry never exists without its index membership.
	added, err := c.ensureIndexed(ctx, key)
	if err != nil {
		return remoteui.Reconciliation[T]{}, err
	}
	if err := c.store.Set(ctx, c.entryKey(key), payload); err != nil {
		if added && !present {
			if rerr := c.updateIndex(ctx, func(keys map[string]struct{}) { delete(keys, key) }); rerr != nil {
				return remoteui.Reconciliation[T]{}, errors.Join(err, rerr)
			}
		}
		return remoteui.Reconciliation[T]{}, err
	}
	return result, nil
}

// Lookup returns the value cached for key when its language matches locale.
// With allowDefaultLocaleFallback, a value cached for the default locale's
// language is accepted too.
func (c *Cache[T]) Lookup(ctx context.Context, key string, locale remoteui.LocaleID, allowDefaultLocaleFallback bool) (remoteui.VersionedValue[T], bool, error) {
	var zero remoteui.VersionedValue[T]
	if key == "" {
		return zero, false, ErrKeyRequired
	}
	c.gate.RLock()
	defer c.gate.RUnlock()

	cached, _, err := c.read(ctx, key)
	if err != nil || cached == nil {
		return zero, false, err
	}
	if cached.Locale.SameLanguage(locale) {
		return *cached, true, nil
	}
	if allowDefaultLocaleFallback && cached.Locale.SameLanguage(c.cfg.defaultLocale) {
		return *cached, true, nil
	}
	return zero, false, nil
}

// Remove deletes the value cached for key.
func (c *Cache[T]) Remove(ctx context.Context, key string) error {
	if key == "" {
		return ErrKeyRequired
	}
	c.gate.RLock()
	defer c.gate.RUnlock()
	unlock := c.locks.lock(key)
	defer unlock()

	start := time.Now()
	err := c.store.Delete(ctx, c.entryKey(key))
	if err == nil {
		err = c.updateIndex(ctx, func(keys map[string]struct{}) { delete(keys, key) })
	}
	c.log("remove", key, "", start, err, nil)
	if err != nil {
		return err
	}
	c.emit(ctx, activity.BuildCacheRemovedEvent(activity.CacheEventInput{
		ActorID:   c.cfg.actorID,
		Namespace: c.cfg.namespace,
		Key:       key,
	}))
	return nil
}

// Clear removes every key of the namespace. No other operation on this cache
// runs while Clear does. On a store error the index keeps the keys that were
// not deleted, so Clear can be retried.
func (c *Cache[T]) Clear(ctx context.Context) error {
	c.gate.Lock()
	defer c.gate.Unlock()

	start := time.Now()
	removed, err := c.clear(ctx)
	c.log("clear", c.cfg.namespace, "", start, err, map[string]any{"removed": removed})
	if err != nil {
		return err
	}
	c.emit(ctx, activity.BuildCacheClearedEvent(activity.CacheEventInput{
		ActorID:   c.cfg.actorID,
		Namespace: c.cfg.namespace,
		Removed:   removed,
	}))
	return nil
}

func (c *Cache[T]) clear(ctx context.Context) (int, error) {
	keys, err := c.readIndex(ctx)
	if err != nil {
		return 0, err
	}
	removed := 0
	for key := range keys {
		if err := c.store.Delete(ctx, c.entryKey(key)); err != nil {
			if werr := c.writeIndex(ctx, keys); werr != nil {
				return removed, errors.Join(err, werr)
			}
			return removed, err
		}
		delete(keys, key)
		removed++
	}
	if err := c.store.Delete(ctx, c.indexKey()); err != nil {
		return removed, err
	}
	return removed, nil
}

// Keys returns the cached keys, sorted.
func (c *Cache[T]) Keys(ctx context.Context) ([]string, error) {
	c.gate.RLock()
	defer c.gate.RUnlock()
	c.indexMu.Lock()
	defer c.indexMu.Unlock()

	keys, err := c.readIndex(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(keys))
	for key := range keys {
		out = append(out, key)
	}
	sort.Strings(out)
	return out, nil
}

// read loads the entry for key. Missing and undecodable entries are both
// reported as nil; the latter is logged. present reports whether the store
// holds any bytes for key.
func (c *Cache[T]) read(ctx context.Context, key string) (value *remoteui.VersionedValue[T], present bool, err error) {
	payload, ok, err := c.store.Get(ctx, c.entryKey(key))
	if err != nil || !ok {
		return nil, false, err
	}
	var decoded remoteui.VersionedValue[T]
	if err := json.Unmarshal(payload, &decoded); err != nil {
		c.cfg.logger.LogEvent(remoteui.LogEvent{
			Component: "cache",
			Operation: "decode",
			Subject:   key,
			Err:       fmt.Errorf("cache: discard corrupt entry %q: %w", key, err),
		})
		return nil, true, nil
	}
	return &decoded, true, nil
}

// ensureIndexed lists key in the index unless it already is, and reports
// whether the index was written.
func (c *Cache[T]) ensureIndexed(ctx context.Context, key string) (bool, error) {
	c.indexMu.Lock()
	defer c.indexMu.Unlock()
	keys, err := c.readIndex(ctx)
	if err != nil {
		return false, err
	}
	if _, ok := keys[key]; ok {
		return false, nil
	}
	keys[key] = struct{}{}
	return true, c.writeIndex(ctx, keys)
}

func (c *Cache[T]) updateIndex(ctx context.Context, mutate func(map[string]struct{})) error {
	c.indexMu.Lock()
	defer c.indexMu.Unlock()
	keys, err := c.readIndex(ctx)
	if err != nil {
		return err
	}
	mutate(keys)
	return c.writeIndex(ctx, keys)
}

func (c *Cache[T]) readIndex(ctx context.Context) (map[string]struct{}, error) {
	keys := map[string]struct{}{}
	payload, ok, err := c.store.Get(ctx, c.indexKey())
	if err != nil || !ok {
		return keys, err
	}
	var list []string
	if err := json.Unmarshal(payload, &list); err != nil {
		return nil, fmt.Errorf("cache: decode index %q: %w", c.indexKey(), err)
	}
	for _, key := range list {
		keys[key] = struct{}{}
	}
	return keys, nil
}

func (c *Cache[T]) writeIndex(ctx context.Context, keys map[string]struct{}) error {
	if len(keys) == 0 {
		return c.store.Delete(ctx, c.indexKey())
	}
	list := make([]string, 0, len(keys))
	for key := range keys {
		list = append(list, key)
	}
	sort.Strings(list)
	payload, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("cache: encode index: %w", err)
	}
	return c.store.Set(ctx, c.indexKey(), payload)
}

func (c *Cache[T]) entryKey(key string) string {
	return c.cfg.namespace + "/entry/" + key
}

func (c *Cache[T]) indexKey() string {
	return c.cfg.namespace + "/index"
}

func (c *Cache[T]) log(operation, subject, locale string, start time.Time, err error, attrs map[string]any) {
	c.cfg.logger.LogEvent(remoteui.LogEvent{
		Component: "cache",
		Operation: operation,
		Subject:   subject,
		Locale:    locale,
		Duration:  time.Since(start),
		Err:       err,
		Attrs:     attrs,
	})
}

// emit never fails the calling operation; hook errors are logged.
func (c *Cache[T]) emit(ctx context.Context, event activity.Event) {
	if !c.cfg.emitter.Enabled() {
		return
	}
	if err := c.cfg.emitter.Emit(ctx, event); err != nil {
		c.cfg.logger.LogEvent(remoteui.LogEvent{
			Component: "cache",
			Operation: "emit",
			Subject:   strings.TrimSpace(event.ObjectID),
			Err:       err,
			Attrs:     map[string]any{"verb": event.Verb},
		})
	}
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

// keyLocks hands out one mutex per key and forgets it once nobody holds or
// waits for it.
type keyLocks struct {
	mu      sync.Mutex
	entries map[string]*keyLock
}

func (l *keyLocks) lock(key string) func() {
	l.mu.Lock()
	entry, ok := l.entries[key]
	if !ok {
		entry = &keyLock{}
		l.entries[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.entries, key)
		}
		l.mu.Unlock()
	}
}
