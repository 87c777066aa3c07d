package repository

import (
	"context"
	"errors"

	"flexyframe/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// トークンの一意制約違反。作成側は「既存注文の取得」に読み替える。
var ErrDuplicateToken = errors.New("duplicate token")

type OrderListFilter struct {
	Page   int
	Limit  int
	Status string
	UserID *int64
}

// 注文の保存・取得を約束
type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	//トークン検索（同じトークンなら同じ注文を返す）
	FindByToken(ctx context.Context, token string) (model.Order, bool, error)
	//新しい順で取得する
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	//webhook用：statusとpayment_idを同時に更新
	MarkPaidByWebhook(ctx context.Context, orderID int64, paymentID string) error
	//管理者用の注文一覧
	ListAdmin(ctx context.Context, f OrderListFilter) ([]model.Order, int64, error)
}
