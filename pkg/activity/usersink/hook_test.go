package usersink_test

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-remoteui/pkg/activity"
	"github.com/goliatone/go-remoteui/pkg/activity/usersink"
	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

type recordingSink struct {
	records []usertypes.ActivityRecord
	err     error
}

func (s *recordingSink) Log(_ context.Context, record usertypes.ActivityRecord) error {
	s.records = append(s.records, record)
	return s.err
}

func TestHookNotifyMapsEvent(t *testing.T) {
	sink := &recordingSink{}
	hook := usersink.Hook{Sink: sink}

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	actorID := uuid.New()
	userID := uuid.New()
	tenantID := uuid.New()
	objectID := uuid.New().String()

	event := activity.Event{
		Verb:       activity.VerbCacheRestored,
		ActorID:    actorID.String(),
		UserID:     userID.String(),
		TenantID:   tenantID.String(),
		ObjectType: activity.ObjectTypeCacheEntry,
		ObjectID:   objectID,
		Channel:    "paywalls",
		Metadata: map[string]any{
			"version": int64(7),
		},
		OccurredAt: now,
	}

	if err := hook.Notify(context.Background(), event); err != nil {
		t.Fatalf("notify: %v", err)
	}

	if len(sink.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(sink.records))
	}
	record := sink.records[0]
	if record.ActorID != actorID {
		t.Fatalf("expected actor %s got %s", actorID, record.ActorID)
	}
	if record.UserID != userID {
		t.Fatalf("expected user %s got %s", userID, record.UserID)
	}
	if record.TenantID != tenantID {
		t.Fatalf("expected tenant %s got %s", tenantID, record.TenantID)
	}
	if record.Verb != activity.VerbCacheRestored || record.ObjectType != activity.ObjectTypeCacheEntry || record.ObjectID != objectID {
		t.Fatalf("unexpected record payload: %+v", record)
	}
	if record.Channel != "paywalls" {
		t.Fatalf("expected channel paywalls got %q", record.Channel)
	}
	if record.OccurredAt != now {
		t.Fatalf("expected occurred_at %v got %v", now, record.OccurredAt)
	}
	if record.Data["version"] != int64(7) {
		t.Fatalf("expected metadata passthrough got %v", record.Data["version"])
	}
}

func TestHookNotifySkipsMissingVerb(t *testing.T) {
	sink := &recordingSink{}
	hook := usersink.Hook{Sink: sink}

	_ = hook.Notify(context.Background(), activity.Event{})

	if len(sink.records) != 0 {
		t.Fatalf("expected no records for empty event, got %d", len(sink.records))
	}
}

func TestHookNotifyDefaultsTimestampAndChannel(t *testing.T) {
	sink := &recordingSink{}
	hook := usersink.Hook{Sink: sink}

	err := hook.Notify(context.Background(), activity.Event{
		Verb:       activity.VerbCacheCleared,
		ObjectType: activity.ObjectTypeCache,
		ObjectID:   "paywalls",
	})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(sink.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(sink.records))
	}
	if sink.records[0].OccurredAt.IsZero() {
		t.Fatalf("expected occurred_at to be defaulted")
	}
	if sink.records[0].Channel != activity.DefaultChannel {
		t.Fatalf("expected default channel, got %q", sink.records[0].Channel)
	}
}

func TestRecordMapsNonUUIDActorsToNil(t *testing.T) {
	record := usersink.Record(activity.BuildCacheFreshEvent(activity.CacheEventInput{
		ActorID:   "sdk",
		Namespace: "paywalls",
		Key:       "onboarding",
		Version:   7,
		Incoming:  7,
	}))
	if record.ActorID != uuid.Nil {
		t.Fatalf("expected nil actor for a non-uuid id, got %s", record.ActorID)
	}
	if record.ObjectID != "onboarding" || record.Data["namespace"] != "paywalls" || record.Data["version"] != int64(7) {
		t.Fatalf("expected cache key and metadata carried over, got %+v", record)
	}
}
