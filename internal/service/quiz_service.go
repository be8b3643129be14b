package service

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/yourusername/quizrank-api/internal/domain/entity"
	"github.com/yourusername/quizrank-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizrank-api/internal/pkg/errors"
)

// QuizService обрабатывает результаты викторин (cache-aside) и прием
// отправок с ограничением частоты
type QuizService struct {
	cache repository.Cache
	queue repository.JobQueue
	board repository.LeaderboardRepository

	// Авторитетные записи викторин. Обновление записи не согласовано
	// с кешем результатов сильнее, чем "инвалидация + пересчет при
	// следующем чтении": гонка чтения со свежеинвалидированным кешем
	// допустима (cache-aside согласован лишь в конечном счете).
	quizMu  sync.RWMutex
	quizzes map[string]*entity.Quiz

	resultsTTL time.Duration
	rateWindow time.Duration
	rateMax    int64
}

// NewQuizService создает новый сервис викторин
func NewQuizService(
	cache repository.Cache,
	queue repository.JobQueue,
	board repository.LeaderboardRepository,
	resultsTTL time.Duration,
	rateWindow time.Duration,
	rateMax int64,
) *QuizService {
	return &QuizService{
		cache:      cache,
		queue:      queue,
		board:      board,
		quizzes:    make(map[string]*entity.Quiz),
		resultsTTL: resultsTTL,
		rateWindow: rateWindow,
		rateMax:    rateMax,
	}
}

// GetResults возвращает результаты викторины по схеме cache-aside:
// попадание возвращается с Cached=true, промах пересчитывается
// и кешируется на resultsTTL
func (s *QuizService) GetResults(quizID string) (*entity.QuizResults, error) {
	if quizID == "" {
		return nil, fmt.Errorf("%w: quiz id required", apperrors.ErrInvalidInput)
	}
	key := resultsKey(quizID)

	if raw, ok := s.cache.Get(key); ok {
		var results entity.QuizResults
		if err := json.Unmarshal(raw, &results); err == nil {
			results.Cached = true
			return &results, nil
		}
		// Нечитаемую запись выбрасываем и пересчитываем
		log.Printf("[Quiz] Поврежденная запись кеша для викторины %s, пересчет", quizID)
		s.cache.Delete(key)
	}

	results := s.computeResults(quizID)
	raw, err := json.Marshal(results)
	if err != nil {
		return nil, fmt.Errorf("marshal quiz results: %w", err)
	}
	s.cache.Set(key, raw, s.resultsTTL)
	return results, nil
}

// UpdateQuiz применяет обновление к записи викторины и безусловно
// инвалидирует кеш результатов, чтобы следующее чтение пересчитало их
func (s *QuizService) UpdateQuiz(quizID string, payload map[string]interface{}) error {
	if quizID == "" {
		return fmt.Errorf("%w: quiz id required", apperrors.ErrInvalidInput)
	}

	s.quizMu.Lock()
	s.quizzes[quizID] = &entity.Quiz{
		ID:        quizID,
		Payload:   payload,
		UpdatedAt: time.Now(),
	}
	s.quizMu.Unlock()

	s.cache.Delete(resultsKey(quizID))
	log.Printf("[Quiz] Викторина %s обновлена, кеш результатов инвалидирован", quizID)
	return nil
}

// GetQuiz возвращает авторитетную запись викторины
func (s *QuizService) GetQuiz(quizID string) (*entity.Quiz, error) {
	s.quizMu.RLock()
	defer s.quizMu.RUnlock()

	quiz, ok := s.quizzes[quizID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *quiz
	return &cp, nil
}

// Submit принимает отправку викторины: проверяет лимит частоты и ставит
// задачу начисления очков в очередь. Очки начисляются воркером позже:
// возврат означает "принято к обработке", а не "засчитано".
func (s *QuizService) Submit(userID, quizID string, points int64) (entity.Job, error) {
	count := s.cache.IncrementWithWindow(rateKey(userID), s.rateWindow)
	if count > s.rateMax {
		log.Printf("[Quiz] Пользователь %s превысил лимит отправок (%d за окно)", userID, count)
		return entity.Job{}, apperrors.ErrRateLimited
	}

	job := entity.NewJob(userID, quizID, points)
	s.queue.Push(job)
	log.Printf("[Quiz] Отправка принята: job=%s user=%s quiz=%s points=%d", job.ID, userID, quizID, points)
	return job, nil
}

// computeResults имитирует дорогостоящее вычисление: детерминированная
// функция от идентификатора викторины и текущих агрегатов таблицы лидеров
func (s *QuizService) computeResults(quizID string) *entity.QuizResults {
	players := int64(s.board.Len())
	var topScore int64
	if top := s.board.TopN(1); len(top) > 0 {
		topScore = top[0].Score
	}

	return &entity.QuizResults{
		QuizID: quizID,
		Data: entity.QuizResultsData{
			ScoreDistribution: map[string]int64{
				"A": players,
				"B": players / 2,
				"C": players / 4,
			},
			Summary: fmt.Sprintf("Results for %s: %d players, top score %d", quizID, players, topScore),
		},
		ComputedAt: time.Now().UTC(),
	}
}

func resultsKey(quizID string) string {
	return "quiz:results:" + quizID
}

func rateKey(userID string) string {
	return "rate:submissions:" + userID
}
