package repository

import (
	"context"

	"flexyframe/internal/domain/model"
)

// ボットの途中状態。消えても再ナビゲーションで済むので保証は薄くてよい。
type SessionRepository interface {
	Get(ctx context.Context, userID int64) (model.UserSession, bool, error)
	Set(ctx context.Context, session model.UserSession) error
	Clear(ctx context.Context, userID int64) error
}
