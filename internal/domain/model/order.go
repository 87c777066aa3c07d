package model

import "time"

type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "new"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ParseOrderStatus は文字列を閉じたステータス集合に変換する
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusNew, OrderStatusPaid, OrderStatusInProgress,
		OrderStatusCompleted, OrderStatusCancelled:
		return OrderStatus(s), true
	default:
		return "", false
	}
}

// IsTerminal は終端状態かどうか
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CanTransitionTo は許可された遷移だけtrueを返す。
// new→paid→in_progress→completed、キャンセルは終端以外から可能。
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}

	switch s {
	case OrderStatusNew:
		return next == OrderStatusPaid
	case OrderStatusPaid:
		return next == OrderStatusInProgress
	case OrderStatusInProgress:
		return next == OrderStatusCompleted
	default:
		return false
	}
}

type Order struct {
	ID            int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        int64       `gorm:"not null;index" json:"user_id"`
	PaintingID    int64       `gorm:"not null" json:"painting_id"`
	PaintingTitle string      `gorm:"type:varchar(255);not null" json:"painting_title"`
	Price         int64       `gorm:"not null" json:"price"`
	Status        OrderStatus `gorm:"type:varchar(20);not null;index;default:'new'" json:"status"`
	PaymentID     string      `gorm:"type:varchar(255)" json:"payment_id"`
	Token         string      `gorm:"type:varchar(64);uniqueIndex" json:"token"`
	CreatedAt     time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
}
