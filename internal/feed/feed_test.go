package feed

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishFillsDefaults(t *testing.T) {
	f := New(10)
	f.Publish(Delivery{Resource: "incident", EventType: "incident.triggered"})

	deliveries := f.Snapshot()
	require.Len(t, deliveries, 1)
	assert.NotEmpty(t, deliveries[0].ID)
	assert.False(t, deliveries[0].ReceivedAt.IsZero())
}

func TestPublishKeepsExplicitValues(t *testing.T) {
	received := time.Date(2022, 10, 14, 6, 10, 21, 0, time.UTC)

	f := New(10)
	f.Publish(Delivery{ID: "fixed-id", ReceivedAt: received})

	deliveries := f.Snapshot()
	require.Len(t, deliveries, 1)
	assert.Equal(t, "fixed-id", deliveries[0].ID)
	assert.Equal(t, received, deliveries[0].ReceivedAt)
}

func TestSnapshotOrderAndEviction(t *testing.T) {
	f := New(3)
	for i := 0; i < 5; i++ {
		f.Publish(Delivery{ID: fmt.Sprintf("d%d", i)})
	}

	deliveries := f.Snapshot()
	require.Len(t, deliveries, 3)
	// Oldest first, with the two earliest evicted.
	assert.Equal(t, "d2", deliveries[0].ID)
	assert.Equal(t, "d3", deliveries[1].ID)
	assert.Equal(t, "d4", deliveries[2].ID)
}

func TestSubscribeReceivesFutureDeliveries(t *testing.T) {
	f := New(10)
	ch, cancel := f.Subscribe()
	defer cancel()

	f.Publish(Delivery{ID: "d1"})

	select {
	case d := <-ch:
		assert.Equal(t, "d1", d.ID)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for delivery")
	}
}

func TestCancelClosesChannelAndIsIdempotent(t *testing.T) {
	f := New(10)
	ch, cancel := f.Subscribe()

	cancel()
	cancel()

	_, open := <-ch
	assert.False(t, open)

	// Publishing after cancellation must not panic on the closed channel.
	f.Publish(Delivery{ID: "d1"})
}

func TestSlowSubscriberDoesNotBlockPublish(t *testing.T) {
	f := New(10)
	ch, cancel := f.Subscribe()
	defer cancel()

	// Fill the subscriber buffer and keep publishing; Publish must return.
	for i := 0; i < 200; i++ {
		f.Publish(Delivery{ID: fmt.Sprintf("d%d", i)})
	}

	assert.Equal(t, "d0", (<-ch).ID)
}

func TestNewClampsCapacity(t *testing.T) {
	f := New(0)
	for i := 0; i < 150; i++ {
		f.Publish(Delivery{ID: fmt.Sprintf("d%d", i)})
	}
	assert.Len(t, f.Snapshot(), 100)
}
