package main

import (
	"context"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/AferDust/finances-datagram-telegram-bot/internal/bot"
	"github.com/AferDust/finances-datagram-telegram-bot/internal/chart"
	"github.com/AferDust/finances-datagram-telegram-bot/internal/config"
	"github.com/AferDust/finances-datagram-telegram-bot/internal/db"
	"github.com/AferDust/finances-datagram-telegram-bot/internal/logger"
	"github.com/AferDust/finances-datagram-telegram-bot/internal/repo"
	"github.com/AferDust/finances-datagram-telegram-bot/migrations"
)

func main() {
	cfg := config.MustLoad()

	log := logger.New(logger.Config{Env: cfg.AppEnv, Level: cfg.LogLevel})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = log.WithContext(ctx)

	pool, err := db.Connect(ctx, cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("connect to postgres")
	}
	defer pool.Close()

	if err := db.ApplyMigrations(ctx, pool, migrations.FS); err != nil {
		log.Fatal().Err(err).Msg("migrations")
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatal().Err(err).Msg("bot init")
	}
	botAPI.Debug = cfg.BotDebug

	h := bot.NewHandler(
		botAPI,
		log,
		bot.NewConversations(),
		chart.NewRenderer(),
		repo.NewUsers(pool),
		repo.NewCompanies(pool),
		repo.NewMonthly(pool),
	)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = cfg.PollTimeout
	updates := botAPI.GetUpdatesChan(u)

	log.Info().Str("bot", botAPI.Self.UserName).Msg("bot started")

	for {
		select {
		case <-ctx.Done():
			botAPI.StopReceivingUpdates()
			log.Info().Msg("shutdown")
			return
		case upd := <-updates:
			h.HandleUpdate(ctx, upd)
		}
	}
}
