package repository_test

import (
	"context"
	"fmt"
	"testing"

	"flexyframe/internal/domain/model"
	"flexyframe/internal/infra/db"
	infraRepo "flexyframe/internal/infra/repository"
	repo "flexyframe/internal/repository"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	//テストごとに独立したインメモリDB（cache=sharedは接続プール対策）
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gormDB, err := db.Connect("sqlite", dsn)
	assert.NoError(t, err)

	assert.NoError(t, gormDB.AutoMigrate(
		&model.Order{},
		&model.User{},
		&model.UserSession{},
	))

	t.Cleanup(func() {
		sqlDB, err := gormDB.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return gormDB
}

func TestOrderGormRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	r := infraRepo.NewOrderGormRepository(openTestDB(t))

	id, err := r.Create(ctx, model.Order{
		UserID:        42,
		PaintingID:    1,
		PaintingTitle: "Аркейн Триумвират",
		Price:         4200,
		Status:        model.OrderStatusNew,
		Token:         "tok1",
	})
	assert.NoError(t, err)
	assert.NotZero(t, id)

	o, err := r.FindByID(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, "tok1", o.Token)
	assert.Equal(t, model.OrderStatusNew, o.Status)

	byToken, found, err := r.FindByToken(ctx, "tok1")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, id, byToken.ID)

	_, found, err = r.FindByToken(ctx, "nope")
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestOrderGormRepository_DuplicateToken(t *testing.T) {
	ctx := context.Background()
	r := infraRepo.NewOrderGormRepository(openTestDB(t))

	_, err := r.Create(ctx, model.Order{UserID: 42, PaintingID: 1, Price: 100, Status: model.OrderStatusNew, Token: "tok1"})
	assert.NoError(t, err)

	// 同じトークンの二重作成は一意制約で弾かれる
	_, err = r.Create(ctx, model.Order{UserID: 42, PaintingID: 1, Price: 100, Status: model.OrderStatusNew, Token: "tok1"})
	assert.ErrorIs(t, err, repo.ErrDuplicateToken)
}

func TestOrderGormRepository_ListByUserIDNewestFirst(t *testing.T) {
	ctx := context.Background()
	r := infraRepo.NewOrderGormRepository(openTestDB(t))

	id1, _ := r.Create(ctx, model.Order{UserID: 42, PaintingID: 1, Price: 100, Status: model.OrderStatusNew, Token: "a"})
	id2, _ := r.Create(ctx, model.Order{UserID: 42, PaintingID: 2, Price: 200, Status: model.OrderStatusNew, Token: "b"})
	r.Create(ctx, model.Order{UserID: 7, PaintingID: 3, Price: 300, Status: model.OrderStatusNew, Token: "c"})

	items, err := r.ListByUserID(ctx, 42)
	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, id2, items[0].ID)
	assert.Equal(t, id1, items[1].ID)
}

func TestOrderGormRepository_MarkPaidByWebhook(t *testing.T) {
	ctx := context.Background()
	r := infraRepo.NewOrderGormRepository(openTestDB(t))

	id, _ := r.Create(ctx, model.Order{UserID: 42, PaintingID: 1, Price: 100, Status: model.OrderStatusNew, Token: "a"})

	assert.NoError(t, r.MarkPaidByWebhook(ctx, id, "pay_1"))

	o, _ := r.FindByID(ctx, id)
	assert.Equal(t, model.OrderStatusPaid, o.Status)
	assert.Equal(t, "pay_1", o.PaymentID)

	assert.ErrorIs(t, r.MarkPaidByWebhook(ctx, 999, "pay_2"), repo.ErrNotFound)
}

func TestSessionGormRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	r := infraRepo.NewSessionGormRepository(openTestDB(t))

	_, found, err := r.Get(ctx, 42)
	assert.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, r.Set(ctx, model.UserSession{
		UserID: 42,
		State:  model.SessionStateChoosingPainting,
	}))

	//同じユーザーのSetは上書き
	assert.NoError(t, r.Set(ctx, model.UserSession{
		UserID:     42,
		State:      model.SessionStatePaintingSelected,
		PaintingID: 3,
	}))

	s, found, err := r.Get(ctx, 42)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, model.SessionStatePaintingSelected, s.State)
	assert.Equal(t, int64(3), s.PaintingID)

	assert.NoError(t, r.Clear(ctx, 42))

	_, found, err = r.Get(ctx, 42)
	assert.NoError(t, err)
	assert.False(t, found)
}
