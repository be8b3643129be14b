package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizrank-api/internal/domain/entity"
	"github.com/yourusername/quizrank-api/internal/service"
)

// UserHandler обрабатывает запросы, связанные с пользователями
type UserHandler struct {
	userService        *service.UserService
	leaderboardService *service.LeaderboardService
}

// NewUserHandler создает новый обработчик пользователей
func NewUserHandler(userService *service.UserService, leaderboardService *service.LeaderboardService) *UserHandler {
	return &UserHandler{
		userService:        userService,
		leaderboardService: leaderboardService,
	}
}

type signupRequest struct {
	User     string `json:"user"`
	Password string `json:"password"`
	Username string `json:"username"`
}

// Signup обрабатывает регистрацию пользователя
func (h *UserHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user and password required"})
		return
	}

	profile, err := h.userService.Signup(req.User, req.Password, req.Username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created",
		"user":    gin.H{"user": profile.UserID, "username": profile.Username},
	})
}

type loginRequest struct {
	User     string `json:"user"`
	Password string `json:"password"`
}

// Login обрабатывает вход и выдачу токена
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user and password required"})
		return
	}

	token, err := h.userService.Login(req.User, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// GetProfile возвращает профиль пользователя
func (h *UserHandler) GetProfile(c *gin.Context) {
	profile, err := h.userService.GetProfile(c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

type incrementScoreRequest struct {
	// Указатель, чтобы отличать отсутствующее поле от нуля:
	// points обязателен и должен быть числом
	Points *int64 `json:"points"`
}

// IncrementScore атомарно начисляет очки профилю и таблице лидеров
func (h *UserHandler) IncrementScore(c *gin.Context) {
	var req incrementScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Points == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "points must be a valid number"})
		return
	}

	newScore, err := h.leaderboardService.IncrementUserScore(c.Param("userId"), *req.Points)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Score incremented", "newScore": newScore})
}

// QuizComplete инкрементирует счетчик решенных викторин
func (h *UserHandler) QuizComplete(c *gin.Context) {
	newCount, err := h.userService.IncrementQuizzesSolved(c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quiz count incremented", "quizzesSolved": newCount})
}

// UpdateProfile применяет частичное обновление профиля
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var update entity.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update payload"})
		return
	}

	profile, err := h.userService.UpdateProfile(c.Param("userId"), update)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
