package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"flexyframe/internal/domain/model"
	repo "flexyframe/internal/repository"
)

// 管理者だけが使う操作。paid→in_progress→completedやキャンセルはここから進める。
type AdminOrderUsecase struct {
	orders repo.OrderRepository
}

func NewAdminOrderUsecase(orders repo.OrderRepository) *AdminOrderUsecase {
	return &AdminOrderUsecase{orders: orders}
}

func (u *AdminOrderUsecase) List(ctx context.Context, f repo.OrderListFilter) ([]model.Order, int64, error) {
	if f.Page < 1 {
		return []model.Order{}, 0, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if f.Limit < 1 || f.Limit > 100 {
		return []model.Order{}, 0, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	orders, total, err := u.orders.ListAdmin(ctx, f)
	if err != nil {
		return []model.Order{}, 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return orders, total, nil
}

// UpdateStatus はステータス遷移を進める。許可されない遷移は400で拒否する。
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, orderID int64, in string) error {
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	next, ok := model.ParseOrderStatus(strings.TrimSpace(in))
	if !ok {
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// すでに同じなら何もしない（200）
	if o.Status == next {
		return nil
	}
	if !o.Status.CanTransitionTo(next) {
		return NewHTTPError(http.StatusBadRequest, "invalid status transition")
	}

	if err := u.orders.UpdateStatus(ctx, orderID, next); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
