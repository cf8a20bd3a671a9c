package changefeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/domain/model/order"
	"localeats/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const DefaultRedisChannel = "localeats:order-changes"

var _ ports.OrderChangeBus = (*RedisBus)(nil)

// changeMessage is the pub/sub payload.
type changeMessage struct {
	OrderID      kernel.UUID  `json:"orderId"`
	CustomerID   kernel.UUID  `json:"customerId"`
	RestaurantID kernel.UUID  `json:"restaurantId"`
	DriverID     *kernel.UUID `json:"driverId,omitempty"`
	Status       order.Status `json:"status"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// RedisBus fans changes out to every instance over Redis pub/sub. Pub/sub
// is fire-and-forget: a change published while a listener is reconnecting
// is lost and only the periodic pool refresh catches it up.
type RedisBus struct {
	client  *redis.Client
	channel string
	logger  *slog.Logger
}

func NewRedisBus(client *redis.Client, channel string, logger *slog.Logger) *RedisBus {
	if channel == "" {
		channel = DefaultRedisChannel
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisBus{
		client:  client,
		channel: channel,
		logger:  logger.With("component", "redis_bus"),
	}
}

// ConnectRedis opens a client and checks that the server answers.
func ConnectRedis(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}
	return client, nil
}

func (b *RedisBus) Publish(ctx context.Context, change ports.OrderChange) error {
	payload, err := json.Marshal(changeMessage(change))
	if err != nil {
		return fmt.Errorf("encode order change: %w", err)
	}
	if err = b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish order change: %w", err)
	}
	return nil
}

// Listen subscribes to the channel and calls handler for every decodable
// message until ctx is done.
func (b *RedisBus) Listen(ctx context.Context, handler func(ports.OrderChange)) error {
	pubsub := b.client.Subscribe(ctx, b.channel)
	defer pubsub.Close()

	// Wait for the subscription to be confirmed so no message published
	// after Listen starts is missed.
	if _, err := pubsub.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("subscribe to %s: %w", b.channel, err)
	}

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return errors.New("redis subscription closed")
			}
			var decoded changeMessage
			if err := json.Unmarshal([]byte(msg.Payload), &decoded); err != nil {
				b.logger.WarnContext(ctx, "dropping malformed order change", "error", err)
				continue
			}
			handler(ports.OrderChange(decoded))
		}
	}
}

func (b *RedisBus) Close() error {
	return b.client.Close()
}
