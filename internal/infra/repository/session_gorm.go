package repository

import (
	"context"
	"errors"

	"flexyframe/internal/domain/model"
	repo "flexyframe/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sessionGormRepository struct {
	db *gorm.DB
}

func NewSessionGormRepository(db *gorm.DB) repo.SessionRepository {
	return &sessionGormRepository{db: db}
}

func (r *sessionGormRepository) Get(ctx context.Context, userID int64) (model.UserSession, bool, error) {
	var s model.UserSession
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.UserSession{}, false, nil
	}
	if err != nil {
		return model.UserSession{}, false, err
	}
	return s, true, nil
}

func (r *sessionGormRepository) Set(ctx context.Context, session model.UserSession) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"state", "painting_id", "updated_at"}),
		}).
		Create(&session).Error
}

func (r *sessionGormRepository) Clear(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.UserSession{}).Error
}
