package model

import "time"

// Telegramのプロフィール最新値。/startごとに上書き保存する。
type User struct {
	UserID    int64     `gorm:"primaryKey" json:"user_id"`
	Username  string    `gorm:"type:varchar(255)" json:"username"`
	FirstName string    `gorm:"type:varchar(255)" json:"first_name"`
	LastName  string    `gorm:"type:varchar(255)" json:"last_name"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
