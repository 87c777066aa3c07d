package bot

import (
	"context"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"flexyframe/internal/catalog"
	"flexyframe/internal/domain/model"
	repo "flexyframe/internal/repository"
	"flexyframe/internal/usecase"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// メニーナビゲーションのチャットフロント。
// ビジネスロジックは全部usecaseに委譲して、ここは描画と振り分けだけ。
type Bot struct {
	api      *tgbotapi.BotAPI
	catalog  *catalog.Catalog
	orders   *usecase.OrderUsecase
	users    repo.UserRepository
	sessions repo.SessionRepository
	siteURL  string
	imageDir string
	log      *zap.Logger
}

func New(
	api *tgbotapi.BotAPI,
	cat *catalog.Catalog,
	orders *usecase.OrderUsecase,
	users repo.UserRepository,
	sessions repo.SessionRepository,
	siteURL string,
	imageDir string,
	log *zap.Logger,
) *Bot {
	return &Bot{
		api:      api,
		catalog:  cat,
		orders:   orders,
		users:    users,
		sessions: sessions,
		siteURL:  strings.TrimSuffix(siteURL, "/"),
		imageDir: imageDir,
		log:      log,
	}
}

func (b *Bot) Username() string {
	return b.api.Self.UserName
}

// Run はロングポーリングで更新を受け続ける。ctxキャンセルで止まる。
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		b.handleCallback(ctx, update.CallbackQuery)
		return
	}
	if update.Message == nil {
		return
	}
	b.handleMessage(ctx, update.Message)
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if msg.IsCommand() && msg.Command() == "start" {
		b.handleStart(ctx, msg)
		return
	}

	switch msg.Text {
	case btnChoosePainting, btnNewOrder, btnChooseAnother:
		b.showPaintingsMenu(ctx, chatID)
	case btnOpenMiniApp:
		b.sendHTML(chatID, miniAppLinkText(b.siteURL), miniAppInlineKeyboard(b.siteURL))
	case btnHowToOrder:
		b.sendHTML(chatID, howItWorksText(b.siteURL), nil)
	case btnAbout:
		b.sendHTML(chatID, aboutText(b.siteURL), nil)
	case btnMyOrders:
		b.showMyOrders(ctx, chatID)
	case btnPlaceOrder:
		b.placeOrderFromSession(ctx, chatID)
	case btnBack:
		b.clearSession(ctx, chatID)
		b.showMainMenu(chatID, msg.Chat.FirstName)
	default:
		//メニューのボタンは「название - цена₽」なので包含一致で探す
		if p, ok := b.catalog.MatchTitle(msg.Text); ok {
			b.selectPainting(ctx, chatID, p)
		}
	}
}

// /start。プロフィール保存 → ディープリンクか通常の挨拶。
func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	err := b.users.Upsert(ctx, model.User{
		UserID:    chatID,
		Username:  msg.Chat.UserName,
		FirstName: msg.Chat.FirstName,
		LastName:  msg.Chat.LastName,
	})
	if err != nil {
		b.log.Warn("user upsert failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}

	// /startメッセージをユーザーに見せない（失敗しても気にしない）
	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, msg.MessageID)); err != nil {
		b.log.Debug("delete /start failed", zap.Error(err))
	}

	if param := msg.CommandArguments(); param != "" {
		b.handleDeepLink(ctx, chatID, param)
		return
	}

	b.sendHTML(chatID, greetingText(msg.Chat.FirstName, b.siteURL), mainMenuKeyboard())
}

// MiniAppやサイトからのディープリンク入口
func (b *Bot) handleDeepLink(ctx context.Context, chatID int64, param string) {
	sp, ok := usecase.ParseStartParam(param)
	if !ok {
		b.sendHTML(chatID, paintingNotFoundText(), nil)
		b.showMainMenu(chatID, "")
		return
	}

	painting, ok := b.catalog.FindByID(sp.PaintingID)
	if !ok {
		b.sendHTML(chatID, paintingNotFoundText(), nil)
		b.showMainMenu(chatID, "")
		return
	}

	order, created, err := b.orders.GetOrCreateOrder(ctx, chatID, painting, sp.Token)
	if err != nil {
		b.log.Error("deep link order failed", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendText(chatID, "❌ Произошла ошибка при создании заказа. Попробуйте позже.")
		return
	}

	b.sendOrderCard(chatID, order, painting, created)
}

func (b *Bot) showMainMenu(chatID int64, firstName string) {
	text := "Чем могу помочь?"
	if firstName != "" {
		text = "👋 " + firstName + ", чем могу помочь?"
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = mainMenuKeyboard()
	b.send(msg)
}

func (b *Bot) showPaintingsMenu(ctx context.Context, chatID int64) {
	if err := b.sessions.Set(ctx, model.UserSession{
		UserID: chatID,
		State:  model.SessionStateChoosingPainting,
	}); err != nil {
		b.log.Warn("session set failed", zap.Error(err))
	}

	msg := tgbotapi.NewMessage(chatID, "🎨 Выберите картину для заказа:")
	msg.ReplyMarkup = paintingsMenuKeyboard(b.catalog.List())
	b.send(msg)
}

func (b *Bot) selectPainting(ctx context.Context, chatID int64, p model.Painting) {
	if err := b.sessions.Set(ctx, model.UserSession{
		UserID:     chatID,
		State:      model.SessionStatePaintingSelected,
		PaintingID: p.ID,
	}); err != nil {
		b.log.Warn("session set failed", zap.Error(err))
	}

	b.sendPhotoOrText(chatID, p, paintingCardText(p), paintingSelectedKeyboard())
}

// 「Оформить заказ」。選択中の картина から注文を作る。
func (b *Bot) placeOrderFromSession(ctx context.Context, chatID int64) {
	s, found, err := b.sessions.Get(ctx, chatID)
	if err != nil {
		b.log.Warn("session get failed", zap.Error(err))
	}
	if !found || s.State != model.SessionStatePaintingSelected {
		b.showPaintingsMenu(ctx, chatID)
		return
	}

	painting, ok := b.catalog.FindByID(s.PaintingID)
	if !ok {
		b.sendText(chatID, "❌ Ошибка: картина не найдена.")
		return
	}

	order, created, err := b.orders.GetOrCreateOrder(ctx, chatID, painting, "")
	if err != nil {
		b.log.Error("order create failed", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendText(chatID, "❌ Произошла ошибка при создании заказа. Попробуйте позже.")
		return
	}

	b.clearSession(ctx, chatID)
	b.sendOrderCard(chatID, order, painting, created)
}

func (b *Bot) showMyOrders(ctx context.Context, chatID int64) {
	orders, err := b.orders.ListOrdersForUser(ctx, chatID)
	if err != nil {
		b.sendText(chatID, "❌ Ошибка при загрузке заказов")
		return
	}

	if len(orders) == 0 {
		b.sendText(chatID, "📭 У вас пока нет заказов. Начните с выбора картины!")
		return
	}

	msg := tgbotapi.NewMessage(chatID, myOrdersText(orders))
	msg.ParseMode = tgbotapi.ModeHTML
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnNewOrder)),
	)
	kb.ResizeKeyboard = true
	msg.ReplyMarkup = kb
	b.send(msg)
}

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil {
		return
	}
	chatID := cq.Message.Chat.ID

	//「часики」を消す
	if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		b.log.Debug("answer callback failed", zap.Error(err))
	}

	switch {
	case strings.HasPrefix(cq.Data, "paid_"):
		orderID, err := strconv.ParseInt(strings.TrimPrefix(cq.Data, "paid_"), 10, 64)
		if err != nil {
			return
		}
		b.confirmPaid(ctx, chatID, orderID)
	case cq.Data == "my_orders":
		b.showMyOrders(ctx, chatID)
	}
}

// 「✅ Оплатил(а)」。所有チェックありでpaidにする。
func (b *Bot) confirmPaid(ctx context.Context, chatID int64, orderID int64) {
	changed, err := b.orders.MarkPaid(ctx, orderID, &chatID)
	if err != nil {
		if he, ok := usecase.AsHTTPError(err); ok &&
			(he.Status == http.StatusNotFound || he.Status == http.StatusForbidden) {
			b.sendText(chatID, "❌ Заказ не найден или не принадлежит вам.")
			return
		}
		b.sendText(chatID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}

	if !changed {
		//二回目以降のタップは冪等な確認だけ
		b.sendText(chatID, "✅ Заказ #"+strconv.FormatInt(orderID, 10)+" уже оплачен и в работе!")
		return
	}

	b.sendText(chatID, "✅ Спасибо! Оплата отмечена, мы начнём работу после проверки.")
}

func (b *Bot) sendOrderCard(chatID int64, o model.Order, p model.Painting, created bool) {
	link := b.orders.PaymentLink(o.ID, o.PaintingTitle, o.Price)
	b.sendPhotoOrText(chatID, p, orderCardText(o, created), orderCardKeyboard(o.ID, link))
}

// 写真つきで送ってみて、ダメならテキストで送る
func (b *Bot) sendPhotoOrText(chatID int64, p model.Painting, caption string, markup interface{}) {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FilePath(b.imagePath(p)))
	photo.Caption = caption
	photo.ParseMode = tgbotapi.ModeHTML
	photo.ReplyMarkup = markup

	_, err := b.api.Send(photo)
	if err == nil {
		return
	}
	b.log.Debug("send photo failed, falling back to text",
		zap.Int64("painting_id", p.ID), zap.Error(err))

	b.sendHTML(chatID, caption, markup)
}

func (b *Bot) imagePath(p model.Painting) string {
	return filepath.Join(b.imageDir, p.Category, p.File)
}

func (b *Bot) sendHTML(chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	b.send(msg)
}

func (b *Bot) sendText(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) send(msg tgbotapi.MessageConfig) {
	if _, err := b.api.Send(msg); err != nil {
		b.log.Warn("send message failed", zap.Int64("chat_id", msg.ChatID), zap.Error(err))
	}
}

func (b *Bot) clearSession(ctx context.Context, chatID int64) {
	if err := b.sessions.Clear(ctx, chatID); err != nil {
		b.log.Warn("session clear failed", zap.Error(err))
	}
}
