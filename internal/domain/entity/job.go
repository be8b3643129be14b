package entity

import (
	"time"

	"github.com/google/uuid"
)

// Job представляет отложенную задачу начисления очков за отправку викторины.
// Создается эндпоинтом submit, обрабатывается фоновым воркером.
// Доставка at-most-once: задача, снятая с очереди, при падении процесса теряется.
type Job struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	QuizID     string    `json:"quizId"`
	Points     int64     `json:"points"`
	EnqueuedAt time.Time `json:"enqueuedAt"`
}

// NewJob создает задачу с уникальным идентификатором для трассировки в логах
func NewJob(userID, quizID string, points int64) Job {
	return Job{
		ID:         uuid.NewString(),
		UserID:     userID,
		QuizID:     quizID,
		Points:     points,
		EnqueuedAt: time.Now(),
	}
}
