package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const DefaultChannel = "tictactoe:events"

// Connect opens a client and checks the server is reachable.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	conn := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if _, err := conn.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return conn, nil
}

// Publisher broadcasts round events on a pub/sub channel. Nothing is stored.
type Publisher struct {
	logger  *slog.Logger
	client  *redis.Client
	channel string
}

func NewPublisher(logger *slog.Logger, client *redis.Client, channel string) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}

	return &Publisher{
		logger:  logger.With("component", "publisher", "channel", channel),
		client:  client,
		channel: channel,
	}
}

// Publish sends the JSON encoded event to the channel.
func (that *Publisher) Publish(ctx context.Context, event entity.RoundEvent) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err = that.client.Publish(ctx, that.channel, eventJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// OnRoundEvent publishes the event; failures are logged and do not stop the round.
func (that *Publisher) OnRoundEvent(ctx context.Context, event entity.RoundEvent) {
	if err := that.Publish(ctx, event); err != nil {
		that.logger.Error("failed to publish round event", "type", event.Type, "round", event.Round, "error", err)
	}
}
