package model

import "time"

type SessionState string

const (
	SessionStateChoosingPainting SessionState = "choosing_painting"
	SessionStatePaintingSelected SessionState = "painting_selected"
)

// ボットの画面遷移の途中状態。注文と同じDBに置くので再起動しても消えない。
type UserSession struct {
	UserID     int64        `gorm:"primaryKey"`
	State      SessionState `gorm:"type:varchar(32);not null"`
	PaintingID int64
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime"`
}
