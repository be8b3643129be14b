package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan []byte) []byte {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(time.Second):
		t.Fatal("сообщение не получено")
		return nil
	}
}

func TestEventBusFanOut(t *testing.T) {
	bus := NewEventBus()

	first, cancelFirst := bus.Subscribe("leaderboard:events")
	defer cancelFirst()
	second, cancelSecond := bus.Subscribe("leaderboard:events")
	defer cancelSecond()

	bus.Publish("leaderboard:events", []byte("event-1"))

	assert.Equal(t, []byte("event-1"), receive(t, first))
	assert.Equal(t, []byte("event-1"), receive(t, second))
}

func TestEventBusNoReplay(t *testing.T) {
	bus := NewEventBus()

	// Сообщение до подписки не доставляется позже
	bus.Publish("leaderboard:events", []byte("missed"))

	ch, cancel := bus.Subscribe("leaderboard:events")
	defer cancel()

	select {
	case msg := <-ch:
		t.Fatalf("неожиданное сообщение: %s", msg)
	case <-time.After(20 * time.Millisecond):
	}

	bus.Publish("leaderboard:events", []byte("live"))
	assert.Equal(t, []byte("live"), receive(t, ch))
}

func TestEventBusTopicsIsolated(t *testing.T) {
	bus := NewEventBus()

	ch, cancel := bus.Subscribe("topic-a")
	defer cancel()

	bus.Publish("topic-b", []byte("other"))

	select {
	case msg := <-ch:
		t.Fatalf("сообщение чужой темы: %s", msg)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestEventBusCancelClosesChannel(t *testing.T) {
	bus := NewEventBus()

	ch, cancel := bus.Subscribe("leaderboard:events")
	require.Equal(t, 1, bus.SubscriberCount("leaderboard:events"))

	cancel()
	cancel() // повторная отмена безопасна

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, bus.SubscriberCount("leaderboard:events"))

	// Публикация после отмены не паникует
	bus.Publish("leaderboard:events", []byte("late"))
}

func TestEventBusSlowSubscriberDoesNotBlockPublish(t *testing.T) {
	bus := NewEventBus()

	ch, cancel := bus.Subscribe("leaderboard:events")
	defer cancel()

	// Переполняем буфер: лишние сообщения отбрасываются, Publish не виснет
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < subscriberBuffer*2; i++ {
			bus.Publish("leaderboard:events", []byte("msg"))
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish заблокировался на медленном подписчике")
	}

	assert.Len(t, ch, subscriberBuffer)
}
