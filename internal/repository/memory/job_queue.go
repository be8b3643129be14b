package memory

import (
	"context"
	"sync"
	"time"

	"github.com/yourusername/quizrank-api/internal/domain/entity"
)

// JobQueue реализует repository.JobQueue: FIFO-очередь под мьютексом
// с сигнальным каналом вместо busy-poll. Рассчитана на множество
// производителей и одного логического потребителя.
type JobQueue struct {
	mu   sync.Mutex
	jobs []entity.Job

	// wake емкостью 1: Push оставляет токен, если потребитель
	// в данный момент не ждет
	wake chan struct{}
}

// NewJobQueue создает пустую очередь задач
func NewJobQueue() *JobQueue {
	return &JobQueue{wake: make(chan struct{}, 1)}
}

// Push добавляет задачу в хвост очереди и будит потребителя
func (q *JobQueue) Push(job entity.Job) {
	q.mu.Lock()
	q.jobs = append(q.jobs, job)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// BlockingPop снимает задачу с головы очереди. Блокируется до появления
// задачи, истечения timeout (<= 0 — ждать бесконечно) или отмены контекста.
func (q *JobQueue) BlockingPop(ctx context.Context, timeout time.Duration) (entity.Job, bool, error) {
	var timerC <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		timerC = timer.C
	}

	for {
		if job, ok := q.tryPop(); ok {
			return job, true, nil
		}

		select {
		case <-q.wake:
			// Появилась задача — перепроверяем голову очереди
		case <-timerC:
			return entity.Job{}, false, nil
		case <-ctx.Done():
			return entity.Job{}, false, ctx.Err()
		}
	}
}

// Len возвращает текущую длину очереди
func (q *JobQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}

// tryPop снимает голову очереди без ожидания
func (q *JobQueue) tryPop() (entity.Job, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.jobs) == 0 {
		return entity.Job{}, false
	}
	job := q.jobs[0]
	q.jobs = q.jobs[1:]
	return job, true
}
