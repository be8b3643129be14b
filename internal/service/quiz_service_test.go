package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yourusername/quizrank-api/internal/pkg/errors"
	"github.com/yourusername/quizrank-api/internal/repository/memory"
)

func newQuizService(t *testing.T) (*QuizService, *memory.TTLCache, *memory.JobQueue) {
	t.Helper()
	cache := memory.NewTTLCache(0)
	t.Cleanup(cache.Close)
	queue := memory.NewJobQueue()
	board := memory.NewRankedSet()
	board.Upsert("alice", 50)
	board.Upsert("bob", 100)

	svc := NewQuizService(cache, queue, board, time.Minute, time.Minute, 5)
	return svc, cache, queue
}

func TestGetResultsCacheAside(t *testing.T) {
	svc, _, _ := newQuizService(t)

	first, err := svc.GetResults("quiz-1")
	require.NoError(t, err)
	assert.False(t, first.Cached, "первый запрос — промах кеша")
	assert.Equal(t, "quiz-1", first.QuizID)
	assert.Equal(t, int64(2), first.Data.ScoreDistribution["A"])

	second, err := svc.GetResults("quiz-1")
	require.NoError(t, err)
	assert.True(t, second.Cached, "повторный запрос приходит из кеша")
	assert.Equal(t, first.ComputedAt, second.ComputedAt, "кешированный результат не пересчитывается")
}

func TestUpdateQuizEvictsCache(t *testing.T) {
	svc, cache, _ := newQuizService(t)

	_, err := svc.GetResults("quiz-1")
	require.NoError(t, err)
	_, ok := cache.Get("quiz:results:quiz-1")
	require.True(t, ok)

	err = svc.UpdateQuiz("quiz-1", map[string]interface{}{"title": "updated"})
	require.NoError(t, err)

	_, ok = cache.Get("quiz:results:quiz-1")
	assert.False(t, ok, "обновление безусловно инвалидирует кеш")

	results, err := svc.GetResults("quiz-1")
	require.NoError(t, err)
	assert.False(t, results.Cached, "следующее чтение пересчитывает результаты")

	quiz, err := svc.GetQuiz("quiz-1")
	require.NoError(t, err)
	assert.Equal(t, "updated", quiz.Payload["title"])
}

func TestGetQuizNotFound(t *testing.T) {
	svc, _, _ := newQuizService(t)

	_, err := svc.GetQuiz("ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSubmitRateLimited(t *testing.T) {
	svc, _, queue := newQuizService(t)

	// Пять отправок в окне проходят
	for i := 0; i < 5; i++ {
		job, err := svc.Submit("alice", "quiz-1", 10)
		require.NoError(t, err)
		assert.Equal(t, "alice", job.UserID)
	}
	assert.Equal(t, 5, queue.Len())

	// Шестая в том же окне отклоняется и в очередь не попадает
	_, err := svc.Submit("alice", "quiz-1", 10)
	assert.ErrorIs(t, err, apperrors.ErrRateLimited)
	assert.Equal(t, 5, queue.Len())

	// Лимит по-пользовательский: других не затрагивает
	_, err = svc.Submit("bob", "quiz-1", 10)
	assert.NoError(t, err)
}

func TestSubmitEnqueuesJob(t *testing.T) {
	svc, _, queue := newQuizService(t)

	job, err := svc.Submit("alice", "quiz-7", 25)
	require.NoError(t, err)
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, "quiz-7", job.QuizID)
	assert.Equal(t, int64(25), job.Points)
	assert.False(t, job.EnqueuedAt.IsZero())
	assert.Equal(t, 1, queue.Len())
}
