// Package broadcast keeps registries on several instances in step. After a
// bulk update the Notifier announces it on a Redis channel; Listeners on the
// other instances reload the latest snapshot from the shared store.
package broadcast

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"numbering_backend/internal/events"
	"numbering_backend/internal/numbering/registry"
	"numbering_backend/internal/numbering/repository"
	"numbering_backend/platform/logger"
)

// Message is the payload published on the channel.
type Message struct {
	Instance  string `json:"instance"`
	Operation string `json:"operation"`
	Version   int64  `json:"version"`
	Size      int    `json:"size"`
}

// Notifier publishes local registry changes.
type Notifier struct {
	client   *redis.Client
	channel  string
	instance string
}

// NewNotifier creates a notifier publishing on channel as instance.
func NewNotifier(client *redis.Client, channel, instance string) *Notifier {
	return &Notifier{client: client, channel: channel, instance: instance}
}

// Handle implements events.Handler for RegistryChanged. Changes that came
// from another instance are not re-announced.
func (n *Notifier) Handle(ctx context.Context, event events.Event) error {
	e, ok := event.(events.RegistryChanged)
	if !ok || e.Source == events.SourceRemote {
		return nil
	}
	return n.Notify(ctx, Message{
		Instance:  n.instance,
		Operation: e.Operation,
		Version:   e.Version,
		Size:      e.Size,
	})
}

// Notify publishes msg.
func (n *Notifier) Notify(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode registry message: %w", err)
	}
	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish registry message: %w", err)
	}
	return nil
}

// Listener reloads the registry when another instance changed it.
type Listener struct {
	client   *redis.Client
	channel  string
	instance string
	store    repository.Store
	reg      *registry.Registry
	bus      events.Bus
	log      *logger.Logger
}

// ListenerConfig groups the listener's collaborators.
type ListenerConfig struct {
	Client   *redis.Client
	Channel  string
	Instance string
	Store    repository.Store
	Registry *registry.Registry
	Bus      events.Bus
	Log      *logger.Logger
}

// NewListener creates a listener. It does nothing until Run is called.
func NewListener(cfg ListenerConfig) *Listener {
	return &Listener{
		client:   cfg.Client,
		channel:  cfg.Channel,
		instance: cfg.Instance,
		store:    cfg.Store,
		reg:      cfg.Registry,
		bus:      cfg.Bus,
		log:      cfg.Log,
	}
}

// Run subscribes and handles messages until ctx is cancelled.
// ready, if non-nil, is closed once the subscription is active.
func (l *Listener) Run(ctx context.Context, ready chan<- struct{}) error {
	sub := l.client.Subscribe(ctx, l.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("subscribe %s: %w", l.channel, err)
	}
	if ready != nil {
		close(ready)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			if err := l.handle(ctx, msg.Payload); err != nil {
				l.log.Error("registry reload failed", "error", err)
			}
		}
	}
}

func (l *Listener) handle(ctx context.Context, payload string) error {
	var msg Message
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		return fmt.Errorf("decode registry message: %w", err)
	}
	if msg.Instance == l.instance {
		return nil
	}
	return l.Reload(ctx)
}

// Reload replaces the registry with the latest stored snapshot.
func (l *Listener) Reload(ctx context.Context) error {
	records, ok, err := l.store.Latest(ctx)
	if err != nil {
		return err
	}
	if !ok {
		l.log.Warn("registry change announced but no stored snapshot found", "channel", l.channel)
		return nil
	}
	if err := registry.CheckAll(records); err != nil {
		return fmt.Errorf("stored snapshot rejected: %w", err)
	}

	snap := l.reg.ReplaceAll(records)
	l.bus.Publish(ctx, events.RegistryChanged{
		BaseEvent: events.NewBaseEvent(),
		Operation: repository.OperationReplace,
		Version:   snap.Version(),
		Size:      snap.Len(),
		Source:    events.SourceRemote,
	})
	return nil
}
