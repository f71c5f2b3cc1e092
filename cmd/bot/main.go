package main

import (
	"log"
	"log/slog"

	"epiwatch/db"
	"epiwatch/internal/annotation"
	"epiwatch/internal/bot"
	"epiwatch/internal/config"
	"epiwatch/internal/directory"
	"epiwatch/internal/report"
	"epiwatch/pkg/disease"
	"epiwatch/pkg/slack"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	cfg := config.Load()
	if cfg.BotToken == "" {
		log.Fatal("SLACK_BOT_TOKEN is not set")
	}

	conn, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close(conn)

	source := disease.NewClient(cfg.BaseURL)
	dir := directory.New(conn, source)
	annotations := annotation.NewRepository(conn)
	renderer := report.NewRenderer(source, annotations, dir.Localize, cfg.LocalFolder, cfg.HomeCountry)
	chat := slack.NewClient(cfg.BotToken)

	b := bot.New(chat, dir, source, annotations, renderer, cfg.MenuPageSize)

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	b.Routes(r)

	slog.Info("starting bot", "addr", cfg.ListenAddr, "scratch", cfg.LocalFolder)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
