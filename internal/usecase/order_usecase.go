package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"flexyframe/internal/domain/model"
	repo "flexyframe/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// 注文トークンの生成。cmdで実装を注入する。
type TokenGenerator interface {
	NewToken() string
}

// 管理者通知。配送失敗は実装側で握りつぶす約束。
type AdminNotifier interface {
	NotifyCreated(order model.Order, paymentLink string)
	NotifyPaid(order model.Order)
}

type OrderUsecase struct {
	orders   repo.OrderRepository
	tokens   TokenGenerator
	notifier AdminNotifier
	siteURL  string
}

func NewOrderUsecase(
	orders repo.OrderRepository,
	tokens TokenGenerator,
	notifier AdminNotifier,
	siteURL string,
) *OrderUsecase {
	return &OrderUsecase{
		orders:   orders,
		tokens:   tokens,
		notifier: notifier,
		siteURL:  siteURL,
	}
}

// GetOrCreateOrder はトークンで冪等に注文を引く。
// 既存トークンなら同じ注文をそのまま返す（通知なし）。
// 新規ならstatus=newで作成して管理者に1回だけ通知する。
func (u *OrderUsecase) GetOrCreateOrder(ctx context.Context, userID int64, painting model.Painting, token string) (model.Order, bool, error) {
	if userID == 0 {
		return model.Order{}, false, NewHTTPError(http.StatusBadRequest, "invalid user_id")
	}

	if token != "" {
		existing, found, err := u.orders.FindByToken(ctx, token)
		if err != nil {
			return model.Order{}, false, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if found {
			//ディープリンクの再訪。既存注文を変更せずに返す。
			return existing, false, nil
		}
	}

	orderToken := token
	if orderToken == "" {
		orderToken = u.tokens.NewToken()
	}

	order := model.Order{
		UserID:        userID,
		PaintingID:    painting.ID,
		PaintingTitle: painting.Title,
		Price:         painting.Price,
		Status:        model.OrderStatusNew,
		Token:         orderToken,
	}

	orderID, err := u.orders.Create(ctx, order)
	if err != nil {
		//同じトークンが同時に入った（二重タップ等）はもう一回検索して同じ結果を返す
		if errors.Is(err, repo.ErrDuplicateToken) {
			existing, found, err2 := u.orders.FindByToken(ctx, orderToken)
			if err2 == nil && found {
				return existing, false, nil
			}
		}
		return model.Order{}, false, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	order.ID = orderID
	u.notifier.NotifyCreated(order, u.PaymentLink(orderID, order.PaintingTitle, order.Price))

	return order, true, nil
}

// MarkPaid は注文をpaidにする。
// requesterがnilならサーバー間呼び出しで所有チェックなし。
// すでにpaidなら何もしないでchanged=false（通知も2回目は出さない）。
func (u *OrderUsecase) MarkPaid(ctx context.Context, orderID int64, requester *int64) (bool, error) {
	if orderID <= 0 {
		return false, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return false, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return false, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//所有チェック（他人の注文なら403）
	if requester != nil && o.UserID != *requester {
		return false, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	if o.Status == model.OrderStatusPaid {
		return false, nil
	}
	if !o.Status.CanTransitionTo(model.OrderStatusPaid) {
		return false, NewHTTPError(http.StatusBadRequest, "invalid status transition")
	}

	if err := u.orders.UpdateStatus(ctx, orderID, model.OrderStatusPaid); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, NewHTTPError(http.StatusNotFound, "order not found")
		}
		return false, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	o.Status = model.OrderStatusPaid
	u.notifier.NotifyPaid(o)

	return true, nil
}

// 決済通知の説明文から注文番号を拾う。露英どちらの表記でも動く。
var orderRefPattern = regexp.MustCompile(`(?:Заказ|Order)\s*#(\d+)`)

// ApplyWebhookPayment は外部決済のコールバックを反映する。
// 説明文から注文番号が取れない・注文が無い場合は何もしない。
// webhook送信側をリトライ地獄に入れないため、業務的な空振りはエラーにしない。
func (u *OrderUsecase) ApplyWebhookPayment(ctx context.Context, externalID string, description string) error {
	m := orderRefPattern.FindStringSubmatch(description)
	if m == nil {
		return nil
	}

	orderID, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || orderID <= 0 {
		return nil
	}

	err = u.orders.MarkPaidByWebhook(ctx, orderID, externalID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// PaymentLink は自前の決済ページへのURLを組み立てる。外部呼び出しなし。
func (u *OrderUsecase) PaymentLink(orderID int64, title string, price int64) string {
	base := strings.TrimSuffix(u.siteURL, "/")
	return fmt.Sprintf("%s/payment.html?order=%d&title=%s&price=%d",
		base, orderID, url.QueryEscape(title), price)
}

func (u *OrderUsecase) GetOrder(ctx context.Context, orderID int64) (model.Order, error) {
	if orderID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return o, nil
}

// ListOrdersForUser は新しい順
func (u *OrderUsecase) ListOrdersForUser(ctx context.Context, userID int64) ([]model.Order, error) {
	orders, err := u.orders.ListByUserID(ctx, userID)
	if err != nil {
		return []model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return orders, nil
}
