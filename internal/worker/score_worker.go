package worker

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/yourusername/quizrank-api/internal/domain/entity"
	"github.com/yourusername/quizrank-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizrank-api/internal/pkg/errors"
	"github.com/yourusername/quizrank-api/internal/service"
)

// ScoreWorker — единственный потребитель очереди задач: снимает задачи
// строго в порядке постановки и начисляет очки через сервисный слой.
type ScoreWorker struct {
	queue       repository.JobQueue
	users       *service.UserService
	leaderboard *service.LeaderboardService

	// popTimeout ограничивает одно ожидание BlockingPop, чтобы цикл
	// регулярно проверял отмену контекста
	popTimeout time.Duration
	// backoff — пауза перед повтором при временном сбое хранилища
	backoff time.Duration
}

// NewScoreWorker создает воркер начисления очков
func NewScoreWorker(
	queue repository.JobQueue,
	users *service.UserService,
	leaderboard *service.LeaderboardService,
	popTimeout time.Duration,
	backoff time.Duration,
) *ScoreWorker {
	if popTimeout <= 0 {
		popTimeout = 5 * time.Second
	}
	if backoff <= 0 {
		backoff = time.Second
	}
	return &ScoreWorker{
		queue:       queue,
		users:       users,
		leaderboard: leaderboard,
		popTimeout:  popTimeout,
		backoff:     backoff,
	}
}

// Run запускает цикл обработки и блокируется до отмены контекста.
// Текущая задача дообрабатывается перед выходом; повторная постановка
// не выполняется (доставка at-most-once).
func (w *ScoreWorker) Run(ctx context.Context) {
	log.Printf("[Worker] Воркер начисления очков запущен, ожидание задач...")

	for {
		job, ok, err := w.queue.BlockingPop(ctx, w.popTimeout)
		if err != nil {
			// Единственная ошибка BlockingPop — отмена контекста
			log.Printf("[Worker] Остановка воркера: %v", err)
			return
		}
		if !ok {
			continue
		}
		w.process(ctx, job)
	}
}

// process выполняет одну задачу. Ошибка "пользователь не найден" и прочие
// постоянные сбои логируются, задача отбрасывается — один плохой джоб
// не останавливает воркер. Временный сбой повторяется с паузой backoff.
func (w *ScoreWorker) process(ctx context.Context, job entity.Job) {
	log.Printf("[Worker] Обработка задачи %s: user=%s quiz=%s points=%d",
		job.ID, job.UserID, job.QuizID, job.Points)

	if _, err := w.users.IncrementQuizzesSolved(job.UserID); err != nil {
		log.Printf("[Worker] Задача %s отброшена: %v", job.ID, err)
		return
	}

	for {
		newScore, err := w.leaderboard.IncrementUserScore(job.UserID, job.Points)
		if err == nil {
			log.Printf("[Worker] Задача %s выполнена: user=%s newScore=%d", job.ID, job.UserID, newScore)
			return
		}
		if !errors.Is(err, apperrors.ErrUnavailable) {
			log.Printf("[Worker] Задача %s отброшена: %v", job.ID, err)
			return
		}

		log.Printf("[Worker] Временный сбой на задаче %s, повтор через %v: %v", job.ID, w.backoff, err)
		select {
		case <-time.After(w.backoff):
		case <-ctx.Done():
			log.Printf("[Worker] Остановка во время повтора задачи %s", job.ID)
			return
		}
	}
}
