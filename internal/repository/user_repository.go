package repository

import (
	"context"

	"flexyframe/internal/domain/model"
)

type UserRepository interface {
	// /startごとに最新プロフィールで上書きする
	Upsert(ctx context.Context, user model.User) error
	FindByID(ctx context.Context, userID int64) (model.User, error)
}
