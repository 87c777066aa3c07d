package server

import (
	"flexyframe/internal/catalog"
	"flexyframe/internal/config"
	"flexyframe/internal/handler"
	"flexyframe/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type Deps struct {
	Cfg         config.Config
	Catalog     *catalog.Catalog
	Orders      *usecase.OrderUsecase
	AdminOrders *usecase.AdminOrderUsecase
	AdminAuth   *usecase.AdminAuthUsecase // nilなら管理APIは無効
	BotUsername string
	Log         *zap.Logger
}

// New はechoを組み立てて全ルートを登録する
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	handler.NewOrderHandler(d.Orders, d.Catalog).RegisterRoutes(e)
	handler.NewPaintingHandler(d.Catalog, d.BotUsername, d.Cfg.SiteURL).RegisterRoutes(e)
	handler.NewWebhookHandler(d.Orders, d.Cfg.WebhookSecret, d.Log).RegisterRoutes(e)

	if d.AdminAuth != nil {
		handler.NewAdminHandler(d.AdminAuth, d.AdminOrders).RegisterRoutes(e, d.Cfg.JWTSecret)
	}

	return e
}

func Start(e *echo.Echo, port string) error {
	addr := port
	if addr != "" && addr[0] != ':' {
		addr = ":" + addr
	}
	return e.Start(addr)
}
