package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizrank-api/pkg/auth"
)

// SetupRouter собирает маршруты приложения.
// Защищенные маршруты требуют валидный токен; лимит отправок проверяется
// внутри QuizService.Submit.
func SetupRouter(
	userHandler *UserHandler,
	quizHandler *QuizHandler,
	leaderboardHandler *LeaderboardHandler,
	jwtService *auth.JWTService,
) *gin.Engine {
	router := gin.Default()
	authRequired := AuthMiddleware(jwtService)

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	users := router.Group("/users")
	{
		users.POST("/signup", userHandler.Signup)
		users.POST("/login", userHandler.Login)
		users.GET("/profile/:userId", authRequired, userHandler.GetProfile)
		users.POST("/profile/:userId/incrementScore", authRequired, userHandler.IncrementScore)
		users.POST("/profile/:userId/quizComplete", authRequired, userHandler.QuizComplete)
		users.PUT("/profile/:userId", authRequired, userHandler.UpdateProfile)
	}

	quiz := router.Group("/quiz")
	{
		quiz.GET("/:id/results", authRequired, quizHandler.GetResults)
		quiz.POST("/:id/update", authRequired, quizHandler.UpdateQuiz)
		quiz.POST("/:id/submit", authRequired, quizHandler.Submit)
	}

	leaderboard := router.Group("/leaderboard")
	{
		leaderboard.GET("/top/:n", leaderboardHandler.Top)
		leaderboard.GET("/rank/:userId", leaderboardHandler.Rank)
		leaderboard.POST("/increment/:userId", authRequired, leaderboardHandler.Increment)
	}

	return router
}
