package handler

import (
	"net/http"
	"strconv"

	"flexyframe/internal/catalog"
	"flexyframe/internal/domain/model"
	"flexyframe/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// MiniAppと決済ページが使う注文API
type OrderHandler struct {
	uc      *usecase.OrderUsecase
	catalog *catalog.Catalog
}

func NewOrderHandler(uc *usecase.OrderUsecase, catalog *catalog.Catalog) *OrderHandler {
	return &OrderHandler{uc: uc, catalog: catalog}
}

type OrderCreateRequest struct {
	UserID        int64  `json:"user_id"`
	PaintingID    int64  `json:"painting_id"`
	PaintingTitle string `json:"painting_title"`
	Price         int64  `json:"price"`
}

type OrderCreateResponse struct {
	Success     bool   `json:"success"`
	OrderID     int64  `json:"order_id"`
	PaymentLink string `json:"payment_link"`
	Token       string `json:"token"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/order")
	g.POST("/create", h.create)
	g.GET("/:id/status", h.status)
	g.GET("/:id", h.detail)
	g.POST("/:id/paid", h.paid)
}

func (h *OrderHandler) create(c echo.Context) error {
	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if req.UserID == 0 || req.PaintingID == 0 || req.PaintingTitle == "" || req.Price == 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing required fields"})
	}

	//カタログに存在する作品かだけ確認する。title/priceはクライアントの値を保存する。
	if _, ok := h.catalog.FindByID(req.PaintingID); !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Painting not found"})
	}

	painting := model.Painting{
		ID:    req.PaintingID,
		Title: req.PaintingTitle,
		Price: req.Price,
	}

	order, _, err := h.uc.GetOrCreateOrder(c.Request().Context(), req.UserID, painting, "")
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, OrderCreateResponse{
		Success:     true,
		OrderID:     order.ID,
		PaymentLink: h.uc.PaymentLink(order.ID, order.PaintingTitle, order.Price),
		Token:       order.Token,
	})
}

func (h *OrderHandler) status(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	o, err := h.uc.GetOrder(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": string(o.Status)})
}

func (h *OrderHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	o, err := h.uc.GetOrder(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, o)
}

// 決済ページからのサーバー間呼び出し。所有チェックなしでpaidにする。
func (h *OrderHandler) paid(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if _, err := h.uc.MarkPaid(c.Request().Context(), id, nil); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "Order marked as paid"})
}
