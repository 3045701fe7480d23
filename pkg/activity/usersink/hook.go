// Package usersink forwards cache activity into a go-users ActivitySink so
// configuration cache churn lands in the same audit trail as user activity.
package usersink

import (
	"context"
	"maps"
	"time"

	"github.com/goliatone/go-remoteui/pkg/activity"
	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

// Hook is an activity.ActivityHook writing to Sink.
type Hook struct {
	Sink usertypes.ActivitySink
}

func (h Hook) Notify(ctx context.Context, event activity.Event) error {
	if h.Sink == nil || !event.Routable() {
		return nil
	}
	return h.Sink.Log(ctx, Record(event))
}

// Record maps a cache event onto an ActivityRecord. Actor, user and tenant
// ids that are not UUIDs map to uuid.Nil. The cache key stays in ObjectID and
// the cache metadata (namespace, locale, versions) in Data.
func Record(event activity.Event) usertypes.ActivityRecord {
	record := usertypes.ActivityRecord{
		ActorID:    id(event.ActorID),
		UserID:     id(event.UserID),
		TenantID:   id(event.TenantID),
		Verb:       event.Verb,
		ObjectType: event.ObjectType,
		ObjectID:   event.ObjectID,
		Channel:    event.Channel,
		Data:       maps.Clone(event.Metadata),
		OccurredAt: event.OccurredAt,
	}
	if record.Channel == "" {
		record.Channel = activity.DefaultChannel
	}
	if record.OccurredAt.IsZero() {
		record.OccurredAt = time.Now().UTC()
	}
	return record
}

func id(value string) uuid.UUID {
	parsed, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil
	}
	return parsed
}
