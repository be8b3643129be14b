package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizrank-api/internal/service"
)

// QuizHandler обрабатывает запросы, связанные с викторинами
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler создает новый обработчик викторин
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// GetResults возвращает результаты викторины (из кеша или пересчитанные)
func (h *QuizHandler) GetResults(c *gin.Context) {
	results, err := h.quizService.GetResults(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// UpdateQuiz применяет обновление викторины и инвалидирует кеш результатов
func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if err := h.quizService.UpdateQuiz(c.Param("id"), payload); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quiz updated and cache invalidated"})
}

type submitRequest struct {
	Points int64 `json:"points"`
}

// Submit принимает отправку викторины и ставит начисление очков в очередь.
// Ответ 202: отправка принята, но еще не засчитана.
func (h *QuizHandler) Submit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req submitRequest
	// Тело опционально: отсутствующие очки считаются как 1
	_ = c.ShouldBindJSON(&req)
	if req.Points <= 0 {
		req.Points = 1
	}

	if _, err := h.quizService.Submit(userID, c.Param("id"), req.Points); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "Submission accepted and queued"})
}
