package handler

import (
	"net/http"

	"flexyframe/internal/catalog"

	"github.com/labstack/echo/v4"
)

// サイトが使う公開API
type PaintingHandler struct {
	catalog     *catalog.Catalog
	botUsername string
	siteURL     string
}

func NewPaintingHandler(catalog *catalog.Catalog, botUsername string, siteURL string) *PaintingHandler {
	return &PaintingHandler{catalog: catalog, botUsername: botUsername, siteURL: siteURL}
}

type BotStatusResponse struct {
	Online      bool   `json:"online"`
	BotUsername string `json:"bot_username"`
	MiniAppURL  string `json:"miniapp_url"`
}

func (h *PaintingHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/paintings", h.list)
	e.GET("/api/bot-status", h.botStatus)
}

func (h *PaintingHandler) list(c echo.Context) error {
	return c.JSON(http.StatusOK, h.catalog.List())
}

func (h *PaintingHandler) botStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, BotStatusResponse{
		Online:      true,
		BotUsername: "@" + h.botUsername,
		MiniAppURL:  h.siteURL + "/index.html",
	})
}
