package routes

import (
	"github.com/PleasantH/NutriPal-Chatbot/controllers"
	"github.com/PleasantH/NutriPal-Chatbot/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRouter(
	chatCtl *controllers.ChatController,
	imageCtl *controllers.ImageController,
	diaryCtl *controllers.DiaryController,
) *gin.Engine {
	r := gin.Default()
	r.Use(middlewares.SessionMiddleware())

	chat := r.Group("/chat")
	{
		chat.POST("", chatCtl.SendMessage)
		chat.GET("/:sessionID/history", chatCtl.History)
	}
	r.GET("/ws/chat", chatCtl.ChatWS)

	r.POST("/image/analyze", imageCtl.Analyze)

	diary := r.Group("/diary")
	{
		diary.POST("/log", diaryCtl.LogEntry)
		diary.POST("/summary/send", diaryCtl.SendSummary)
		diary.GET("/:ownerID", diaryCtl.History)
		diary.GET("/:ownerID/summary", diaryCtl.Summary)
	}

	return r
}
