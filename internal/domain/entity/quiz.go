package entity

import (
	"time"
)

// Quiz представляет авторитетную запись викторины.
// Хранится в памяти; единственный потребитель — инвалидация кеша результатов
// при обновлении (поток updateQuiz).
type Quiz struct {
	ID        string                 `json:"id"`
	Payload   map[string]interface{} `json:"payload"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// QuizResultsData содержит вычисленную статистику по викторине
type QuizResultsData struct {
	ScoreDistribution map[string]int64 `json:"scoreDistribution"`
	Summary           string           `json:"summary"`
}

// QuizResults представляет результат дорогостоящего вычисления по викторине.
// Cached=true означает, что ответ пришел из кеша, а не пересчитан.
type QuizResults struct {
	QuizID     string          `json:"quizId"`
	Data       QuizResultsData `json:"data"`
	Cached     bool            `json:"cached"`
	ComputedAt time.Time       `json:"computedAt"`
}
