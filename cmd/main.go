package main

import (
	"context"
	"log"

	"github.com/PleasantH/NutriPal-Chatbot/config"
	"github.com/PleasantH/NutriPal-Chatbot/controllers"
	"github.com/PleasantH/NutriPal-Chatbot/routes"
	"github.com/PleasantH/NutriPal-Chatbot/services"
	"github.com/PleasantH/NutriPal-Chatbot/utils"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	utils.InitS3()

	store, err := services.NewDiaryStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("diary store init failed: %v", err)
	}

	gemini, err := services.NewGeminiService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.LLMTimeout)
	if err != nil {
		log.Fatalf("gemini client init failed: %v", err)
	}

	var mailer services.Dispatcher
	if cfg.SESEmail != "" {
		m, err := utils.NewSESMailer(ctx, cfg.SESEmail)
		if err != nil {
			log.Printf("mailer init failed, summary emails disabled: %v", err)
		} else {
			mailer = m
		}
	} else {
		log.Printf("SES_EMAIL not set: summary emails disabled")
	}

	if mailer != nil {
		job := services.NewSummaryJob(store, mailer, cfg.SummaryTime)
		job.Start(ctx)
		defer job.Stop()
	}

	chatSvc := services.NewChatService(gemini)

	r := routes.SetupRouter(
		controllers.NewChatController(chatSvc),
		controllers.NewImageController(gemini),
		controllers.NewDiaryController(store, mailer),
	)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
