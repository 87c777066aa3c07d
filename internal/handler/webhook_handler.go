package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"flexyframe/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// X-Webhook-Signature: ボディのHMAC-SHA256（hex）
const signatureHeader = "X-Webhook-Signature"

// 外部決済からのコールバック。
// secretが設定されていれば署名検証し、それ以外の失敗は200で受ける。
// 送信側を失敗リトライに追い込まないのがこのエンドポイントの約束。
type WebhookHandler struct {
	uc     *usecase.OrderUsecase
	secret string
	log    *zap.Logger
}

func NewWebhookHandler(uc *usecase.OrderUsecase, secret string, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{uc: uc, secret: secret, log: log}
}

type paymentEvent struct {
	Event  string `json:"event"`
	Object struct {
		ID          string `json:"id"`
		Description string `json:"description"`
	} `json:"object"`
}

func (h *WebhookHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/webhook/payment", h.payment)
}

func (h *WebhookHandler) payment(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.String(http.StatusOK, "OK")
	}

	//署名検証は状態を触る前に行う
	if h.secret != "" {
		if !h.verifySignature(body, c.Request().Header.Get(signatureHeader)) {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid signature"})
		}
	}

	var ev paymentEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		h.log.Warn("webhook: unparseable body", zap.Error(err))
		return c.String(http.StatusOK, "OK")
	}

	if ev.Event == "payment.succeeded" {
		if err := h.uc.ApplyWebhookPayment(c.Request().Context(), ev.Object.ID, ev.Object.Description); err != nil {
			//DB障害でも送信側には200を返す。こちらのログで気づく。
			h.log.Error("webhook: apply payment failed", zap.Error(err))
		}
	}

	return c.String(http.StatusOK, "OK")
}

func (h *WebhookHandler) verifySignature(body []byte, header string) bool {
	if header == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(h.secret))
	mac.Write(body)
	want := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(want), []byte(header))
}
