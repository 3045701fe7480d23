package activity

import (
	"maps"
	"strings"
	"time"
)

// Cache event verbs.
const (
	VerbCacheFresh    = "remoteui.cache.fresh"
	VerbCacheRestored = "remoteui.cache.restored"
	VerbCacheRemoved  = "remoteui.cache.removed"
	VerbCacheCleared  = "remoteui.cache.cleared"
)

// ObjectTypeCacheEntry is the object type of per-key cache events;
// ObjectTypeCache is used when the whole namespace is affected.
const (
	ObjectTypeCacheEntry = "remoteui.cache.entry"
	ObjectTypeCache      = "remoteui.cache"
)

// CacheEventInput describes a versioned cache operation.
type CacheEventInput struct {
	ActorID   string
	UserID    string
	TenantID  string
	Channel   string
	Namespace string
	Key       string
	Locale    string
	// Version is the version of the value the cache kept.
	Version int64
	// Incoming is the version the caller tried to store. Zero when the
	// operation was not a store.
	Incoming   int64
	Removed    int
	Metadata   map[string]any
	OccurredAt time.Time
}

// BuildCacheFreshEvent reports that the incoming value won and was persisted.
func BuildCacheFreshEvent(input CacheEventInput) Event {
	return buildCacheEvent(VerbCacheFresh, ObjectTypeCacheEntry, input)
}

// BuildCacheRestoredEvent reports that a newer cached value was kept over the
// incoming one.
func BuildCacheRestoredEvent(input CacheEventInput) Event {
	return buildCacheEvent(VerbCacheRestored, ObjectTypeCacheEntry, input)
}

// BuildCacheRemovedEvent reports that a key was removed.
func BuildCacheRemovedEvent(input CacheEventInput) Event {
	return buildCacheEvent(VerbCacheRemoved, ObjectTypeCacheEntry, input)
}

// BuildCacheClearedEvent reports that every key of a namespace was removed.
func BuildCacheClearedEvent(input CacheEventInput) Event {
	return buildCacheEvent(VerbCacheCleared, ObjectTypeCache, input)
}

func buildCacheEvent(verb, objectType string, input CacheEventInput) Event {
	metadata := maps.Clone(input.Metadata)
	set := func(key string, value any) {
		if metadata == nil {
			metadata = map[string]any{}
		}
		metadata[key] = value
	}
	if input.Namespace != "" {
		set("namespace", input.Namespace)
	}
	if input.Locale != "" {
		set("locale", input.Locale)
	}
	if objectType == ObjectTypeCacheEntry && verb != VerbCacheRemoved {
		set("version", input.Version)
		set("incoming_version", input.Incoming)
	}
	if objectType == ObjectTypeCache {
		set("removed", input.Removed)
	}

	objectID := strings.TrimSpace(input.Key)
	if objectID == "" {
		objectID = strings.TrimSpace(input.Namespace)
	}
	if objectID == "" {
		objectID = objectType
	}

	return Event{
		Verb:       verb,
		ActorID:    strings.TrimSpace(input.ActorID),
		UserID:     strings.TrimSpace(input.UserID),
		TenantID:   strings.TrimSpace(input.TenantID),
		ObjectType: objectType,
		ObjectID:   objectID,
		Channel:    strings.TrimSpace(input.Channel),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}
