package notify

import (
	"fmt"

	"flexyframe/internal/domain/model"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// 運用者チャットへのfire-and-forget通知。
// 配送失敗はログに残すだけで、本体のトランザクションには影響させない。
type TelegramNotifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
	log    *zap.Logger
}

func NewTelegramNotifier(api *tgbotapi.BotAPI, chatID int64, log *zap.Logger) *TelegramNotifier {
	return &TelegramNotifier{api: api, chatID: chatID, log: log}
}

func (n *TelegramNotifier) NotifyCreated(order model.Order, paymentLink string) {
	text := fmt.Sprintf(
		"🔔 <b>Новый заказ #%d</b>\n\n"+
			"👤 Пользователь: %d\n"+
			"🎨 Картина: %s\n"+
			"💰 Сумма: %d₽\n"+
			"📊 Статус: Ожидает оплаты\n"+
			"🔗 Ссылка: %s\n"+
			"🔑 Токен: %s",
		order.ID, order.UserID, order.PaintingTitle, order.Price, paymentLink, order.Token,
	)
	n.send(text)
}

func (n *TelegramNotifier) NotifyPaid(order model.Order) {
	text := fmt.Sprintf(
		"💰 <b>Оплата подтверждена!</b>\n\n"+
			"Заказ #%d\n"+
			"👤 Пользователь: %d\n"+
			"🎨 %s\n"+
			"💰 %d₽",
		order.ID, order.UserID, order.PaintingTitle, order.Price,
	)
	n.send(text)
}

func (n *TelegramNotifier) send(text string) {
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := n.api.Send(msg); err != nil {
		//通知失敗は握りつぶす
		n.log.Warn("admin notification failed", zap.Error(err))
	}
}

// 管理者チャットが未設定のとき用
type NopNotifier struct{}

func (NopNotifier) NotifyCreated(model.Order, string) {}
func (NopNotifier) NotifyPaid(model.Order)            {}
