package handler

import (
	"net/http"
	"strconv"

	"flexyframe/internal/middleware"
	"flexyframe/internal/repository"
	"flexyframe/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminHandler struct {
	auth   *usecase.AdminAuthUsecase
	orders *usecase.AdminOrderUsecase
}

func NewAdminHandler(auth *usecase.AdminAuthUsecase, orders *usecase.AdminOrderUsecase) *AdminHandler {
	return &AdminHandler{auth: auth, orders: orders}
}

type AdminLoginRequest struct {
	Password string `json:"password"`
}

type AdminLoginResponse struct {
	Token string `json:"token"`
}

type OrderStatusUpdateRequest struct {
	Status string `json:"status"`
}

type AdminOrderListResponse struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
}

func (h *AdminHandler) RegisterRoutes(e *echo.Echo, jwtSecret string) {
	e.POST("/api/admin/login", h.login)

	g := e.Group("/api/admin")
	g.Use(middleware.AuthJWT(jwtSecret))
	g.Use(middleware.AdminRoleGuard())

	g.GET("/orders", h.list)
	g.PUT("/orders/:id/status", h.updateStatus)
}

func (h *AdminHandler) login(c echo.Context) error {
	var req AdminLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.Password == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "password required"})
	}

	token, err := h.auth.Login(req.Password)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, AdminLoginResponse{Token: token})
}

func (h *AdminHandler) list(c echo.Context) error {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		page = p
	}

	limit := 50
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	var userID *int64
	if v := c.QueryParam("user_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user_id"})
		}
		userID = &id
	}

	items, total, err := h.orders.List(c.Request().Context(), repository.OrderListFilter{
		Page:   page,
		Limit:  limit,
		Status: c.QueryParam("status"),
		UserID: userID,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, AdminOrderListResponse{Items: items, Total: total})
}

func (h *AdminHandler) updateStatus(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req OrderStatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.orders.UpdateStatus(c.Request().Context(), orderID, req.Status); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "updated"})
}
