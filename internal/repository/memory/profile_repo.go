package memory

import (
	"sync"
	"time"

	"github.com/yourusername/quizrank-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizrank-api/internal/pkg/errors"
)

// ProfileRepo реализует repository.ProfileRepository поверх карты в памяти.
// Все поля профиля изменяются атомарно относительно конкурентных читателей:
// наружу всегда отдается копия.
type ProfileRepo struct {
	mu       sync.RWMutex
	profiles map[string]*entity.Profile
}

// NewProfileRepo создает новый репозиторий профилей
func NewProfileRepo() *ProfileRepo {
	return &ProfileRepo{profiles: make(map[string]*entity.Profile)}
}

// Create создает профиль с нулевыми счетчиками
func (r *ProfileRepo) Create(userID, username string) (*entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[userID]; ok {
		return nil, apperrors.ErrAlreadyExists
	}

	now := time.Now()
	profile := &entity.Profile{
		UserID:    userID,
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.profiles[userID] = profile

	cp := *profile
	return &cp, nil
}

// Get возвращает копию профиля
func (r *ProfileRepo) Get(userID string) (*entity.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.profiles[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *profile
	return &cp, nil
}

// IncrementScore атомарно изменяет totalScore на delta
func (r *ProfileRepo) IncrementScore(userID string, delta int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.profiles[userID]
	if !ok {
		return 0, apperrors.ErrNotFound
	}
	profile.TotalScore += delta
	profile.UpdatedAt = time.Now()
	return profile.TotalScore, nil
}

// IncrementQuizzesSolved атомарно инкрементирует счетчик решенных викторин
func (r *ProfileRepo) IncrementQuizzesSolved(userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.profiles[userID]
	if !ok {
		return 0, apperrors.ErrNotFound
	}
	profile.QuizzesSolved++
	profile.UpdatedAt = time.Now()
	return profile.QuizzesSolved, nil
}

// Update применяет частичное обновление: каждое поле независимо опционально
func (r *ProfileRepo) Update(userID string, update entity.ProfileUpdate) (*entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.profiles[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if update.Username != nil {
		profile.Username = *update.Username
	}
	if update.TotalScore != nil {
		profile.TotalScore = *update.TotalScore
	}
	if update.QuizzesSolved != nil {
		profile.QuizzesSolved = *update.QuizzesSolved
	}
	if !update.Empty() {
		profile.UpdatedAt = time.Now()
	}

	cp := *profile
	return &cp, nil
}
