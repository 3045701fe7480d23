package activity

import (
	"context"
	"strings"
	"time"
)

// DefaultChannel is stamped on events emitted without a channel.
const DefaultChannel = "remoteui"

// Config controls activity emission. It is usually built from config.Settings.
type Config struct {
	Enabled bool
	Channel string
}

// Emitter stamps cache events with a channel and a timestamp and hands them
// to hooks. A nil Emitter drops everything, which is what NewEmitter returns
// when emission is disabled or there is nobody to notify.
type Emitter struct {
	hooks   Hooks
	channel string
	now     func() time.Time
}

func NewEmitter(hooks Hooks, cfg Config) *Emitter {
	if !cfg.Enabled {
		return nil
	}
	var live Hooks
	for _, hook := range hooks {
		if hook != nil {
			live = append(live, hook)
		}
	}
	if len(live) == 0 {
		return nil
	}
	channel := strings.TrimSpace(cfg.Channel)
	if channel == "" {
		channel = DefaultChannel
	}
	return &Emitter{hooks: live, channel: channel, now: time.Now}
}

// Enabled reports whether Emit will reach any hook.
func (e *Emitter) Enabled() bool {
	return e != nil
}

// Emit delivers event. An explicit channel or timestamp on the event is kept.
func (e *Emitter) Emit(ctx context.Context, event Event) error {
	if e == nil || !event.Routable() {
		return nil
	}
	if event.Channel == "" {
		event.Channel = e.channel
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = e.now().UTC()
	}
	return e.hooks.Notify(ctx, event)
}
