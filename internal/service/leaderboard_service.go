package service

import (
	"encoding/json"
	"log"

	"github.com/yourusername/quizrank-api/internal/domain/entity"
	"github.com/yourusername/quizrank-api/internal/domain/repository"
)

// top10Threshold — граница, пересечение которой публикует событие entered_top_10
const top10Threshold = 10

// maxTopN — максимальный размер выборки топа, как лимит пагинации лидерборда
const maxTopN = 100

// LeaderboardService владеет единственным ранжированным множеством процесса
// и обеспечивает атомарность последовательности "профиль + ранг".
type LeaderboardService struct {
	profiles repository.ProfileRepository
	board    repository.LeaderboardRepository
	bus      repository.EventBus
	locks    *UserLocks
}

// NewLeaderboardService создает новый сервис таблицы лидеров
func NewLeaderboardService(
	profiles repository.ProfileRepository,
	board repository.LeaderboardRepository,
	bus repository.EventBus,
	locks *UserLocks,
) *LeaderboardService {
	return &LeaderboardService{
		profiles: profiles,
		board:    board,
		bus:      bus,
		locks:    locks,
	}
}

// IncrementUserScore применяет delta к totalScore профиля и к очкам
// в таблице лидеров как единое целое и возвращает новый totalScore.
// При переходе из-за пределов топ-10 внутрь публикует entered_top_10.
func (s *LeaderboardService) IncrementUserScore(userID string, delta int64) (int64, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	prevRank, hadRank := s.board.RankOf(userID)

	newScore, err := s.profiles.IncrementScore(userID, delta)
	if err != nil {
		// Профиль не найден — таблица лидеров не тронута
		return 0, err
	}
	s.board.IncrementBy(userID, delta)

	newRank, inBoard := s.board.RankOf(userID)
	if (!hadRank || prevRank > top10Threshold) && inBoard && newRank <= top10Threshold {
		s.publishEnteredTop10(userID, newScore, newRank)
	}

	return newScore, nil
}

// Rank возвращает ранг пользователя, начиная с 1, под замком пользователя,
// чтобы не наблюдать промежуточное состояние конкурентного инкремента
func (s *LeaderboardService) Rank(userID string) (int64, bool) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	return s.board.RankOf(userID)
}

// Top возвращает n лучших участников. Выборка — снимок: она может
// незначительно отставать от выполняющихся в этот момент инкрементов.
func (s *LeaderboardService) Top(n int) []entity.LeaderboardEntry {
	if n < 1 {
		n = top10Threshold
	} else if n > maxTopN {
		n = maxTopN
	}
	return s.board.TopN(n)
}

// publishEnteredTop10 публикует событие входа в топ-10
func (s *LeaderboardService) publishEnteredTop10(userID string, newScore, rank int64) {
	event := entity.RankEvent{
		UserID:   userID,
		NewScore: newScore,
		Rank:     rank,
		Event:    entity.EventEnteredTop10,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("[Leaderboard] Ошибка сериализации события для пользователя %s: %v", userID, err)
		return
	}
	s.bus.Publish(entity.TopicLeaderboardEvents, payload)
	log.Printf("[Leaderboard] Пользователь %s вошел в топ-10 (ранг %d, очки %d)", userID, rank, newScore)
}
