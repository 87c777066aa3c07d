package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"flexyframe/internal/domain/model"
	repo "flexyframe/internal/repository"
	"flexyframe/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindByToken(ctx context.Context, token string) (model.Order, bool, error) {
	args := m.Called(ctx, token)
	o, _ := args.Get(0).(model.Order)
	return o, args.Bool(1), args.Error(2)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Error(1)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) MarkPaidByWebhook(ctx context.Context, orderID int64, paymentID string) error {
	args := m.Called(ctx, orderID, paymentID)
	return args.Error(0)
}

func (m *OrderRepoMock) ListAdmin(ctx context.Context, f repo.OrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Get(1).(int64), args.Error(2)
}

type fixedTokenGen struct{ token string }

func (g *fixedTokenGen) NewToken() string { return g.token }

type NotifierMock struct{ mock.Mock }

func (m *NotifierMock) NotifyCreated(order model.Order, paymentLink string) {
	m.Called(order, paymentLink)
}

func (m *NotifierMock) NotifyPaid(order model.Order) {
	m.Called(order)
}

func assertErrContains(t *testing.T, err error, substr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), substr),
			"error %q should contain %q", err.Error(), substr)
	}
}

var testPainting = model.Painting{
	ID:    3,
	Title: "Девушка с жемчужной сережкой",
	Price: 4500,
}

// =====================
// GetOrCreateOrder
// =====================

func TestOrderUsecase_GetOrCreateOrder_Creates(t *testing.T) {
	ctx := context.Background()

	oRepo := new(OrderRepoMock)
	notifier := new(NotifierMock)
	uc := usecase.NewOrderUsecase(oRepo, &fixedTokenGen{token: "tok123"}, notifier, "https://shop.example")

	oRepo.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.UserID == 42 && o.PaintingID == 3 && o.Price == 4500 &&
			o.Status == model.OrderStatusNew && o.Token == "tok123"
	})).Return(int64(7), nil)
	notifier.On("NotifyCreated", mock.MatchedBy(func(o model.Order) bool {
		return o.ID == 7
	}), mock.Anything).Once()

	order, created, err := uc.GetOrCreateOrder(ctx, 42, testPainting, "")
	assert.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(7), order.ID)
	assert.Equal(t, model.OrderStatusNew, order.Status)

	oRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestOrderUsecase_GetOrCreateOrder_SameTokenReturnsExisting(t *testing.T) {
	ctx := context.Background()

	oRepo := new(OrderRepoMock)
	notifier := new(NotifierMock)
	uc := usecase.NewOrderUsecase(oRepo, &fixedTokenGen{token: "unused"}, notifier, "https://shop.example")

	existing := model.Order{ID: 7, UserID: 42, Status: model.OrderStatusPaid, Token: "tok123"}
	oRepo.On("FindByToken", mock.Anything, "tok123").Return(existing, true, nil)

	order, created, err := uc.GetOrCreateOrder(ctx, 42, testPainting, "tok123")
	assert.NoError(t, err)
	assert.False(t, created)
	// 既存注文はステータスも含めて無変更のまま返る
	assert.Equal(t, model.OrderStatusPaid, order.Status)
	assert.Equal(t, int64(7), order.ID)

	// 再訪で通知は飛ばない
	notifier.AssertNotCalled(t, "NotifyCreated", mock.Anything, mock.Anything)
	oRepo.AssertExpectations(t)
}

func TestOrderUsecase_GetOrCreateOrder_DuplicateTokenRace(t *testing.T) {
	ctx := context.Background()

	oRepo := new(OrderRepoMock)
	notifier := new(NotifierMock)
	uc := usecase.NewOrderUsecase(oRepo, &fixedTokenGen{token: "unused"}, notifier, "https://shop.example")

	existing := model.Order{ID: 7, UserID: 42, Status: model.OrderStatusNew, Token: "tok123"}
	oRepo.On("FindByToken", mock.Anything, "tok123").Return(model.Order{}, false, nil).Once()
	oRepo.On("Create", mock.Anything, mock.Anything).Return(int64(0), repo.ErrDuplicateToken)
	oRepo.On("FindByToken", mock.Anything, "tok123").Return(existing, true, nil).Once()

	order, created, err := uc.GetOrCreateOrder(ctx, 42, testPainting, "tok123")
	assert.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, int64(7), order.ID)

	notifier.AssertNotCalled(t, "NotifyCreated", mock.Anything, mock.Anything)
	oRepo.AssertExpectations(t)
}

func TestOrderUsecase_GetOrCreateOrder_InvalidUser(t *testing.T) {
	uc := usecase.NewOrderUsecase(new(OrderRepoMock), &fixedTokenGen{}, new(NotifierMock), "https://shop.example")

	_, _, err := uc.GetOrCreateOrder(context.Background(), 0, testPainting, "")
	assertErrContains(t, err, "invalid user_id")
}

// =====================
// MarkPaid
// =====================

func TestOrderUsecase_MarkPaid_Success(t *testing.T) {
	ctx := context.Background()

	oRepo := new(OrderRepoMock)
	notifier := new(NotifierMock)
	uc := usecase.NewOrderUsecase(oRepo, &fixedTokenGen{}, notifier, "https://shop.example")

	oRepo.On("FindByID", mock.Anything, int64(7)).
		Return(model.Order{ID: 7, UserID: 42, Status: model.OrderStatusNew}, nil)
	oRepo.On("UpdateStatus", mock.Anything, int64(7), model.OrderStatusPaid).Return(nil)
	notifier.On("NotifyPaid", mock.MatchedBy(func(o model.Order) bool {
		return o.ID == 7 && o.Status == model.OrderStatusPaid
	})).Once()

	changed, err := uc.MarkPaid(ctx, 7, nil)
	assert.NoError(t, err)
	assert.True(t, changed)

	oRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestOrderUsecase_MarkPaid_AlreadyPaidIsIdempotent(t *testing.T) {
	ctx := context.Background()

	oRepo := new(OrderRepoMock)
	notifier := new(NotifierMock)
	uc := usecase.NewOrderUsecase(oRepo, &fixedTokenGen{}, notifier, "https://shop.example")

	oRepo.On("FindByID", mock.Anything, int64(7)).
		Return(model.Order{ID: 7, UserID: 42, Status: model.OrderStatusPaid}, nil)

	changed, err := uc.MarkPaid(ctx, 7, nil)
	assert.NoError(t, err)
	assert.False(t, changed)

	oRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "NotifyPaid", mock.Anything)
}

func TestOrderUsecase_MarkPaid_NotFound(t *testing.T) {
	oRepo := new(OrderRepoMock)
	uc := usecase.NewOrderUsecase(oRepo, &fixedTokenGen{}, new(NotifierMock), "https://shop.example")

	oRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Order{}, repo.ErrNotFound)

	_, err := uc.MarkPaid(context.Background(), 99, nil)
	assertErrContains(t, err, "order not found")
}

func TestOrderUsecase_MarkPaid_ForbiddenForOtherUser(t *testing.T) {
	oRepo := new(OrderRepoMock)
	uc := usecase.NewOrderUsecase(oRepo, &fixedTokenGen{}, new(NotifierMock), "https://shop.example")

	oRepo.On("FindByID", mock.Anything, int64(7)).
		Return(model.Order{ID: 7, UserID: 42, Status: model.OrderStatusNew}, nil)

	other := int64(1000)
	_, err := uc.MarkPaid(context.Background(), 7, &other)
	assertErrContains(t, err, "forbidden")
}

func TestOrderUsecase_MarkPaid_TerminalStatusRejected(t *testing.T) {
	oRepo := new(OrderRepoMock)
	uc := usecase.NewOrderUsecase(oRepo, &fixedTokenGen{}, new(NotifierMock), "https://shop.example")

	oRepo.On("FindByID", mock.Anything, int64(7)).
		Return(model.Order{ID: 7, UserID: 42, Status: model.OrderStatusCancelled}, nil)

	_, err := uc.MarkPaid(context.Background(), 7, nil)
	assertErrContains(t, err, "invalid status transition")
}

// =====================
// ApplyWebhookPayment
// =====================

func TestOrderUsecase_ApplyWebhookPayment_RussianDescription(t *testing.T) {
	oRepo := new(OrderRepoMock)
	uc := usecase.NewOrderUsecase(oRepo, &fixedTokenGen{}, new(NotifierMock), "https://shop.example")

	oRepo.On("MarkPaidByWebhook", mock.Anything, int64(15), "pay_abc").Return(nil)

	err := uc.ApplyWebhookPayment(context.Background(), "pay_abc", "Заказ #15 — Звездная ночь")
	assert.NoError(t, err)

	oRepo.AssertExpectations(t)
}

func TestOrderUsecase_ApplyWebhookPayment_EnglishDescription(t *testing.T) {
	oRepo := new(OrderRepoMock)
	uc := usecase.NewOrderUsecase(oRepo, &fixedTokenGen{}, new(NotifierMock), "https://shop.example")

	oRepo.On("MarkPaidByWebhook", mock.Anything, int64(15), "pay_abc").Return(nil)

	err := uc.ApplyWebhookPayment(context.Background(), "pay_abc", "Order #15")
	assert.NoError(t, err)
}

func TestOrderUsecase_ApplyWebhookPayment_UnparseableDescriptionIsNoop(t *testing.T) {
	oRepo := new(OrderRepoMock)
	uc := usecase.NewOrderUsecase(oRepo, &fixedTokenGen{}, new(NotifierMock), "https://shop.example")

	err := uc.ApplyWebhookPayment(context.Background(), "pay_abc", "пожертвование")
	assert.NoError(t, err)

	oRepo.AssertNotCalled(t, "MarkPaidByWebhook", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderUsecase_ApplyWebhookPayment_UnknownOrderIsNoop(t *testing.T) {
	oRepo := new(OrderRepoMock)
	uc := usecase.NewOrderUsecase(oRepo, &fixedTokenGen{}, new(NotifierMock), "https://shop.example")

	oRepo.On("MarkPaidByWebhook", mock.Anything, int64(999), "pay_abc").Return(repo.ErrNotFound)

	err := uc.ApplyWebhookPayment(context.Background(), "pay_abc", "Заказ #999")
	assert.NoError(t, err)
}

func TestOrderUsecase_ApplyWebhookPayment_DBError(t *testing.T) {
	oRepo := new(OrderRepoMock)
	uc := usecase.NewOrderUsecase(oRepo, &fixedTokenGen{}, new(NotifierMock), "https://shop.example")

	oRepo.On("MarkPaidByWebhook", mock.Anything, int64(15), "pay_abc").Return(errors.New("disk full"))

	err := uc.ApplyWebhookPayment(context.Background(), "pay_abc", "Заказ #15")
	assertErrContains(t, err, "db error")
}

// =====================
// PaymentLink
// =====================

func TestOrderUsecase_PaymentLink(t *testing.T) {
	uc := usecase.NewOrderUsecase(new(OrderRepoMock), &fixedTokenGen{}, new(NotifierMock), "https://shop.example")

	link := uc.PaymentLink(7, "Звездная ночь", 5000)
	assert.Equal(t, "https://shop.example/payment.html?order=7&title=%D0%97%D0%B2%D0%B5%D0%B7%D0%B4%D0%BD%D0%B0%D1%8F+%D0%BD%D0%BE%D1%87%D1%8C&price=5000", link)
}

func TestOrderUsecase_PaymentLink_TrailingSlash(t *testing.T) {
	uc := usecase.NewOrderUsecase(new(OrderRepoMock), &fixedTokenGen{}, new(NotifierMock), "https://shop.example/")

	link := uc.PaymentLink(7, "Art", 100)
	assert.Equal(t, "https://shop.example/payment.html?order=7&title=Art&price=100", link)
}
