package trivia

import "github.com/gin-gonic/gin"

// Routes registers the trivia endpoints on router.
func Routes(router gin.IRouter, handler *Handler) {
	categories := router.Group("/categories")
	{
		categories.GET("", handler.GetCategories)
		categories.GET("/:id/questions", handler.GetQuestionsByCategory)
	}

	questions := router.Group("/questions")
	{
		questions.GET("", handler.GetQuestions)
		questions.POST("", handler.CreateQuestion)
		questions.POST("/search", handler.SearchQuestions)
		questions.GET("/:id", handler.GetQuestion)
		questions.DELETE("/:id", handler.DeleteQuestion)
	}

	router.POST("/quizzes", handler.NextQuizQuestion)
}
