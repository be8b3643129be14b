package entity

import (
	"time"
)

// Profile представляет профиль пользователя в системе.
// TotalScore дублируется в таблице лидеров; согласованность обеих копий
// обеспечивает сервисный слой, а не хранилище.
type Profile struct {
	UserID        string    `json:"userId"`
	Username      string    `json:"username"`
	TotalScore    int64     `json:"totalScore"`
	QuizzesSolved int64     `json:"quizzesSolved"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProfileUpdate описывает частичное обновление профиля.
// nil-поле означает "не менять".
type ProfileUpdate struct {
	Username      *string `json:"username,omitempty"`
	TotalScore    *int64  `json:"totalScore,omitempty"`
	QuizzesSolved *int64  `json:"quizzesSolved,omitempty"`
}

// Empty сообщает, содержит ли обновление хотя бы одно поле
func (u ProfileUpdate) Empty() bool {
	return u.Username == nil && u.TotalScore == nil && u.QuizzesSolved == nil
}
