package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type greeting struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

var testGreeting = NewEvent[greeting]("test.greeting", "greetings for tests")

func TestWatermillBridge_PublishSubscribe(t *testing.T) {
	bridge := NewWatermillBridge()
	defer bridge.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan Message, 1)
	err := bridge.Subscribe(ctx, "test.topic", func(ctx context.Context, msg Message) error {
		received <- msg
		return nil
	})
	require.NoError(t, err)

	err = bridge.Publish(ctx, Message{
		Topic:     "test.topic",
		SessionID: "session-1",
		Payload:   []byte(`{"hello":"world"}`),
		Metadata:  map[string]string{"request_id": "req-123", "topic": "spoofed"},
	})
	require.NoError(t, err)

	select {
	case msg := <-received:
		assert.Equal(t, "test.topic", msg.Topic)
		assert.Equal(t, "session-1", msg.SessionID)
		assert.JSONEq(t, `{"hello":"world"}`, string(msg.Payload))
		assert.Equal(t, "req-123", msg.Metadata["request_id"])
		assert.NotContains(t, msg.Metadata, "topic")
	case <-time.After(2 * time.Second):
		t.Fatal("message was not delivered")
	}
}

func TestTypedEvent(t *testing.T) {
	bridge := NewWatermillBridge()
	defer bridge.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.Equal(t, "test.greeting", testGreeting.Name())
	assert.Equal(t, "greetings for tests", testGreeting.Description())

	received := make(chan greeting, 1)
	require.NoError(t, Subscribe(ctx, bridge, testGreeting, func(ctx context.Context, g greeting) error {
		received <- g
		return nil
	}))

	require.NoError(t, Publish(ctx, bridge, testGreeting, "s-1", greeting{Text: "hi", Count: 2}))

	select {
	case g := <-received:
		assert.Equal(t, greeting{Text: "hi", Count: 2}, g)
	case <-time.After(2 * time.Second):
		t.Fatal("typed event was not delivered")
	}
}

func TestSubscribe_HandlerErrorDoesNotBlockLaterMessages(t *testing.T) {
	bridge := NewWatermillBridge()
	defer bridge.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan greeting, 2)
	require.NoError(t, Subscribe(ctx, bridge, testGreeting, func(ctx context.Context, g greeting) error {
		received <- g
		if g.Count == 1 {
			return assert.AnError
		}
		return nil
	}))

	require.NoError(t, Publish(ctx, bridge, testGreeting, "", greeting{Count: 1}))
	require.NoError(t, Publish(ctx, bridge, testGreeting, "", greeting{Count: 2}))

	// GoChannel does not guarantee ordering between separate publishes.
	seen := map[int]bool{}
	for i := 0; i < 2; i++ {
		select {
		case g := <-received:
			seen[g.Count] = true
		case <-time.After(2 * time.Second):
			t.Fatalf("only %d of 2 messages delivered", i)
		}
	}
	assert.Equal(t, map[int]bool{1: true, 2: true}, seen)
}
