package realtime_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/mikiasgoitom/videoreact/internal/domain/entity"
	"github.com/mikiasgoitom/videoreact/internal/infrastructure/realtime"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureDeliverer struct {
	frames chan []byte
}

func newCaptureDeliverer() *captureDeliverer {
	return &captureDeliverer{frames: make(chan []byte, 8)}
}

func (c *captureDeliverer) Deliver(frame []byte) {
	c.frames <- frame
}

func (c *captureDeliverer) next(t *testing.T) realtime.Frame {
	t.Helper()
	select {
	case raw := <-c.frames:
		var f realtime.Frame
		require.NoError(t, json.Unmarshal(raw, &f))
		return f
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for frame")
	}
	return realtime.Frame{}
}

func newRedisClient(t *testing.T, mr *miniredis.Miniredis) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestRedisRelay_FansOutAcrossInstances(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	localA := newCaptureDeliverer()
	localB := newCaptureDeliverer()
	relayA := realtime.NewRedisRelay(newRedisClient(t, mr), "interaction_update", localA, newNopLogger())
	relayB := realtime.NewRedisRelay(newRedisClient(t, mr), "interaction_update", localB, newNopLogger())
	require.NoError(t, relayA.Start(ctx))
	require.NoError(t, relayB.Start(ctx))
	t.Cleanup(func() {
		relayA.Close()
		relayB.Close()
	})

	relayA.Publish(entity.InteractionUpdateEvent, entity.Interaction{VideoID: "v1", Likes: 1})

	for _, local := range []*captureDeliverer{localA, localB} {
		f := local.next(t)
		assert.Equal(t, entity.InteractionUpdateEvent, f.Event)
		var got entity.Interaction
		require.NoError(t, json.Unmarshal(f.Data, &got))
		assert.Equal(t, entity.Interaction{VideoID: "v1", Likes: 1}, got)
	}
}

func TestRedisRelay_FallsBackToLocalDelivery(t *testing.T) {
	mr := miniredis.RunT(t)
	local := newCaptureDeliverer()
	relay := realtime.NewRedisRelay(newRedisClient(t, mr), "interaction_update", local, newNopLogger())
	mr.Close()

	relay.Publish(entity.InteractionUpdateEvent, entity.Interaction{VideoID: "v2", Dislikes: 1})

	f := local.next(t)
	assert.Equal(t, entity.InteractionUpdateEvent, f.Event)
}

func TestRedisRelay_StartFailsWithoutRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := newRedisClient(t, mr)
	mr.Close()

	relay := realtime.NewRedisRelay(client, "interaction_update", newCaptureDeliverer(), newNopLogger())
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.Error(t, relay.Start(ctx))
	assert.NoError(t, relay.Close())
}
