package repository

import (
	"context"
	"time"

	"github.com/yourusername/quizrank-api/internal/domain/entity"
)

// JobQueue интерфейс очереди задач начисления очков.
// FIFO при любом числе конкурентных производителей; единственный логический
// потребитель — воркер.
type JobQueue interface {
	// Push добавляет задачу в хвост очереди
	Push(job entity.Job)

	// BlockingPop снимает задачу с головы очереди, блокируя вызывающего
	// до появления задачи, истечения timeout или отмены контекста.
	// timeout <= 0 означает бесконечное ожидание. По таймауту возвращает
	// ok=false; при отмене контекста — ошибку контекста.
	//
	// Доставка at-most-once: снятая задача при падении потребителя
	// теряется, повторная постановка не выполняется.
	BlockingPop(ctx context.Context, timeout time.Duration) (entity.Job, bool, error)

	// Len возвращает текущую длину очереди
	Len() int
}
