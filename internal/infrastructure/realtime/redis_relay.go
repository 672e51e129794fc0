package realtime

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mikiasgoitom/videoreact/internal/domain/contract"
	usecasecontract "github.com/mikiasgoitom/videoreact/internal/usecase/contract"
	"github.com/redis/go-redis/v9"
)

const publishTimeout = 500 * time.Millisecond

// RedisRelay shares events between API instances through a Redis pub/sub
// channel. Publish sends the frame to Redis; every instance subscribed to
// the channel hands received frames to its local deliverer.
type RedisRelay struct {
	rdb     *redis.Client
	channel string
	local   FrameDeliverer
	logger  usecasecontract.IAppLogger

	pubsub *redis.PubSub
	wg     sync.WaitGroup
}

// NewRedisRelay creates a relay publishing on channel and delivering to local.
func NewRedisRelay(rdb *redis.Client, channel string, local FrameDeliverer, logger usecasecontract.IAppLogger) *RedisRelay {
	return &RedisRelay{
		rdb:     rdb,
		channel: channel,
		local:   local,
		logger:  logger,
	}
}

var _ contract.IBroadcaster = (*RedisRelay)(nil)

// Start subscribes to the channel and forwards frames until Close.
func (r *RedisRelay) Start(ctx context.Context) error {
	pubsub := r.rdb.Subscribe(ctx, r.channel)
	// wait for the subscription confirmation so no frame published after Start is missed
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return fmt.Errorf("failed to subscribe to %s: %w", r.channel, err)
	}
	r.pubsub = pubsub

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		for msg := range pubsub.Channel() {
			r.local.Deliver([]byte(msg.Payload))
		}
	}()
	return nil
}

// Publish sends the event to every instance. When Redis cannot be reached
// the frame is still delivered to the local subscribers.
func (r *RedisRelay) Publish(event string, payload any) {
	frame, err := EncodeFrame(event, payload)
	if err != nil {
		r.logger.Errorf("realtime: %v", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := r.rdb.Publish(ctx, r.channel, frame).Err(); err != nil {
		r.logger.Warnf("realtime: redis publish on %s failed, delivering locally: %v", r.channel, err)
		r.local.Deliver(frame)
	}
}

// Close stops the subscription loop.
func (r *RedisRelay) Close() error {
	if r.pubsub == nil {
		return nil
	}
	err := r.pubsub.Close()
	r.wg.Wait()
	return err
}
