package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"flexyframe/internal/bot"
	"flexyframe/internal/catalog"
	"flexyframe/internal/config"
	"flexyframe/internal/domain/model"
	"flexyframe/internal/infra/db"
	infraRepo "flexyframe/internal/infra/repository"
	"flexyframe/internal/notify"
	"flexyframe/internal/server"
	"flexyframe/internal/usecase"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

//管理APIのアクセストークン
const adminTokenTTL = 12 * time.Hour

type uuidTokenGenerator struct{}

func (g *uuidTokenGenerator) NewToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// flexyframe serve — ボットとAPIサーバーをまとめて起動する
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Telegram bot and the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		// .envは無くてもいい（本番は環境変数直指定）
		_ = godotenv.Load()

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		log, err := zap.NewProduction()
		if err != nil {
			return err
		}
		defer log.Sync()

		//DB接続
		gormDB, err := db.Connect(cfg.DBDriver, cfg.DatabaseDSN)
		if err != nil {
			return err
		}
		if err := gormDB.AutoMigrate(
			&model.Order{},
			&model.User{},
			&model.UserSession{},
		); err != nil {
			return err
		}

		api, err := tgbotapi.NewBotAPI(cfg.BotToken)
		if err != nil {
			return err
		}
		log.Info("bot authorized", zap.String("username", api.Self.UserName))

		//Repository（GORM実装）生成
		orderRepo := infraRepo.NewOrderGormRepository(gormDB)
		userRepo := infraRepo.NewUserGormRepository(gormDB)
		sessionRepo := infraRepo.NewSessionGormRepository(gormDB)

		var notifier usecase.AdminNotifier
		if cfg.AdminChatID != 0 {
			notifier = notify.NewTelegramNotifier(api, cfg.AdminChatID, log)
		} else {
			log.Warn("ADMIN_CHAT_ID is not set, admin notifications disabled")
			notifier = notify.NopNotifier{}
		}

		cat := catalog.Default()

		//Usecase生成
		orderUC := usecase.NewOrderUsecase(orderRepo, &uuidTokenGenerator{}, notifier, cfg.SiteURL)

		deps := server.Deps{
			Cfg:         cfg,
			Catalog:     cat,
			Orders:      orderUC,
			AdminOrders: usecase.NewAdminOrderUsecase(orderRepo),
			BotUsername: api.Self.UserName,
			Log:         log,
		}
		if cfg.AdminAPIEnabled() {
			deps.AdminAuth = usecase.NewAdminAuthUsecase(cfg.AdminPasswordHash, cfg.JWTSecret, adminTokenTTL)
		} else {
			log.Warn("JWT_SECRET or ADMIN_PASSWORD_HASH is not set, admin API disabled")
		}
		e := server.New(deps)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		tgBot := bot.New(api, cat, orderUC, userRepo, sessionRepo, cfg.SiteURL, cfg.ImageDir, log)
		go tgBot.Run(ctx)

		go func() {
			<-ctx.Done()
			_ = e.Close()
		}()

		log.Info("starting http server", zap.String("port", cfg.Port))
		if err := server.Start(e, cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}
