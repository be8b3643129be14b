package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizrank-api/internal/service"
)

// LeaderboardHandler обрабатывает запросы к таблице лидеров
type LeaderboardHandler struct {
	leaderboardService *service.LeaderboardService
}

// NewLeaderboardHandler создает новый обработчик таблицы лидеров
func NewLeaderboardHandler(leaderboardService *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// Top возвращает n лучших участников; некорректный параметр заменяется на 10
func (h *LeaderboardHandler) Top(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("n"))
	if err != nil || n < 1 {
		n = 10
	}

	c.JSON(http.StatusOK, gin.H{"top": h.leaderboardService.Top(n)})
}

// Rank возвращает ранг пользователя; для неизвестного пользователя rank=null
func (h *LeaderboardHandler) Rank(c *gin.Context) {
	userID := c.Param("userId")

	var rank interface{}
	if r, ok := h.leaderboardService.Rank(userID); ok {
		rank = r
	}

	c.JSON(http.StatusOK, gin.H{"userId": userID, "rank": rank})
}

type incrementRequest struct {
	Points int64 `json:"points"`
}

// Increment начисляет очки пользователю и возвращает новый счет и ранг
func (h *LeaderboardHandler) Increment(c *gin.Context) {
	userID := c.Param("userId")

	var req incrementRequest
	// Отсутствующие очки считаются как 1
	_ = c.ShouldBindJSON(&req)
	if req.Points == 0 {
		req.Points = 1
	}

	newScore, err := h.leaderboardService.IncrementUserScore(userID, req.Points)
	if err != nil {
		respondError(c, err)
		return
	}

	var rank interface{}
	if r, ok := h.leaderboardService.Rank(userID); ok {
		rank = r
	}

	c.JSON(http.StatusOK, gin.H{"userId": userID, "newScore": newScore, "rank": rank})
}
