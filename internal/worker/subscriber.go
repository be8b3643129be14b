package worker

import (
	"context"
	"encoding/json"
	"log"

	"github.com/yourusername/quizrank-api/internal/domain/entity"
	"github.com/yourusername/quizrank-api/internal/domain/repository"
)

// EventLogger подписывается на события таблицы лидеров и пишет их в лог.
// Подписка не восстанавливает историю: видны только события,
// опубликованные после запуска.
type EventLogger struct {
	bus repository.EventBus
}

// NewEventLogger создает подписчика событий таблицы лидеров
func NewEventLogger(bus repository.EventBus) *EventLogger {
	return &EventLogger{bus: bus}
}

// Run блокируется до отмены контекста, логируя входящие события
func (l *EventLogger) Run(ctx context.Context) {
	messages, cancel := l.bus.Subscribe(entity.TopicLeaderboardEvents)
	defer cancel()

	log.Printf("[Events] Подписка на %s", entity.TopicLeaderboardEvents)

	for {
		select {
		case message, ok := <-messages:
			if !ok {
				return
			}
			var event entity.RankEvent
			if err := json.Unmarshal(message, &event); err != nil {
				log.Printf("[Events] Событие (raw): %s", message)
				continue
			}
			log.Printf("[Events] Событие %s: user=%s rank=%d score=%d",
				event.Event, event.UserID, event.Rank, event.NewScore)
		case <-ctx.Done():
			return
		}
	}
}
