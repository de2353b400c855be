package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"chatcal/internal/auth"
	"chatcal/internal/calendar"
	"chatcal/internal/config"
	"chatcal/internal/dispatch"
	"chatcal/internal/history"
	"chatcal/internal/httpapi"
	"chatcal/internal/llm"
	"chatcal/internal/news"
	"chatcal/internal/scheduler"
	"chatcal/internal/storage"
	"chatcal/internal/telegram"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	factory := &llm.Factory{
		OpenAIAPIKey:     cfg.OpenAIAPIKey,
		OpenAIBaseURL:    cfg.OpenAIBaseURL,
		YandexOAuthToken: cfg.YandexOAuthToken,
		YandexFolderID:   cfg.YandexFolderID,
	}
	llmClient, err := factory.CreateClient(string(cfg.LLMProvider), cfg.OpenAIModel)
	if err != nil {
		log.Fatalf("failed to create llm client: %v", err)
	}

	var hist *history.Log
	if cfg.LogFilePath != "" {
		rec, err := storage.NewFileRecorder(cfg.LogFilePath)
		if err != nil {
			log.Printf("failed to init file recorder: %v", err)
			hist = history.NewLog()
		} else {
			hist = history.NewLogWithMirror(rec)
		}
	} else {
		hist = history.NewLog()
	}

	newsCache := news.NewCache(news.NewFeedSource(cfg.NewsFeedURL))

	sched := scheduler.New()
	sched.SetRefreshFunction(newsCache.Refresh)
	if err := sched.Start(cfg.NewsRefreshSpec); err != nil {
		log.Printf("failed to start news scheduler: %v", err)
	}
	defer sched.Stop()

	d := dispatch.New(calendar.NewStore(), hist, llmClient, newsCache)

	api := httpapi.New(hist)
	go func() {
		if err := api.Start(cfg.HistoryAddr); err != nil {
			log.Printf("history api stopped: %v", err)
		}
	}()

	bot, err := telegram.New(cfg.TelegramBotToken, auth.New(cfg.AllowedUsers), d)
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}

	bot.Start(context.Background())
}
