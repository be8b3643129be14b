package memory

import (
	"log"
	"sync"
)

// subscriberBuffer — емкость канала подписчика. Медленный подписчик
// с заполненным буфером теряет новые сообщения, а не тормозит издателя.
const subscriberBuffer = 16

// EventBus реализует repository.EventBus: fan-out по подписчикам темы
// без хранения истории. Подписчик получает только сообщения,
// опубликованные после подписки.
type EventBus struct {
	mu     sync.RWMutex
	topics map[string]map[int]chan []byte
	nextID int
}

// NewEventBus создает пустую шину событий
func NewEventBus() *EventBus {
	return &EventBus{topics: make(map[string]map[int]chan []byte)}
}

// Publish рассылает сообщение всем текущим подписчикам темы, не блокируясь
func (b *EventBus) Publish(topic string, message []byte) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.topics[topic] {
		select {
		case ch <- message:
		default:
			log.Printf("[EventBus] Подписчик %d темы %q не успевает, сообщение отброшено", id, topic)
		}
	}
}

// Subscribe регистрирует подписчика темы. Возвращенная функция отменяет
// подписку и закрывает канал; повторный вызов безопасен.
func (b *EventBus) Subscribe(topic string) (<-chan []byte, func()) {
	ch := make(chan []byte, subscriberBuffer)

	b.mu.Lock()
	subs, ok := b.topics[topic]
	if !ok {
		subs = make(map[int]chan []byte)
		b.topics[topic] = subs
	}
	id := b.nextID
	b.nextID++
	subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.topics[topic], id)
			if len(b.topics[topic]) == 0 {
				delete(b.topics, topic)
			}
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// SubscriberCount возвращает число подписчиков темы
func (b *EventBus) SubscriberCount(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.topics[topic])
}
