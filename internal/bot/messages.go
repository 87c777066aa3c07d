package bot

import (
	"fmt"
	"strings"

	"flexyframe/internal/domain/model"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// メインメニューのボタン。テキスト一致でハンドラに振り分ける。
const (
	btnChoosePainting = "🎨 Выбрать картину"
	btnOpenMiniApp    = "🛒 Открыть MiniApp"
	btnHowToOrder     = "📋 Как заказать"
	btnAbout          = "💬 О проекте"
	btnMyOrders       = "🛒 Мои заказы"
	btnBack           = "🔙 Назад"
	btnPlaceOrder     = "💳 Оформить заказ"
	btnChooseAnother  = "🎨 Выбрать другую"
	btnNewOrder       = "🎨 Сделать новый заказ"
)

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnChoosePainting)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnOpenMiniApp)),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnHowToOrder),
			tgbotapi.NewKeyboardButton(btnAbout),
		),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnMyOrders)),
	)
	kb.ResizeKeyboard = true
	return kb
}

func paintingSelectedKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnPlaceOrder)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnChooseAnother)),
	)
	kb.ResizeKeyboard = true
	return kb
}

func paintingsMenuKeyboard(paintings []model.Painting) tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(paintings)+1)
	for _, p := range paintings {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(fmt.Sprintf("%s - %d₽", p.Title, p.Price)),
		))
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnBack)))

	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	return kb
}

func orderCardKeyboard(orderID int64, paymentLink string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("💳 Оплатить онлайн", paymentLink),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Оплатил(а)", fmt.Sprintf("paid_%d", orderID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 Мои заказы", "my_orders"),
		),
	)
}

func miniAppInlineKeyboard(siteURL string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🖼 Открыть галерею", siteURL+"/index.html"),
		),
	)
}

func greetingText(firstName string, siteURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "👋 <b>Добро пожаловать в FlexyFrame, %s!</b>\n\n", firstName)
	b.WriteString("🎨 <b>FlexyFrame — где искусство оживает в каждом штрихе</b>\n\n")
	b.WriteString("Мы создаём уникальные арт-объекты, которые становятся центром вашего интерьера и отражением вашего вкуса.\n\n")
	b.WriteString("✨ Наши преимущества:\n")
	b.WriteString("• Печать на премиальном холсте\n")
	b.WriteString("• Идеальный формат 60×50 см\n")
	b.WriteString("• Ручная роспись по запросу\n")
	b.WriteString("• Авторские рамы из натуральной сосны\n\n")
	b.WriteString("🎯 <b>Выберите действие:</b>\n")
	b.WriteString("• 🎨 Выбрать картину\n")
	b.WriteString("• 🛒 Открыть MiniApp\n")
	b.WriteString("• 📋 Как заказать\n")
	b.WriteString("• 💬 О проекте\n")
	b.WriteString("• 🛒 Мои заказы\n\n")
	b.WriteString("💡 <i>Или перейдите на сайт для удобного выбора:</i>\n")
	fmt.Fprintf(&b, "🔗 %s/index.html", siteURL)
	return b.String()
}

func paintingCardText(p model.Painting) string {
	return fmt.Sprintf(
		"🎨 <b>%s</b>\n💰 Цена: <b>%d₽</b>\n📦 Срок: 2-4 дня\n\nЭта картина создается индивидуально под ваш заказ.",
		p.Title, p.Price,
	)
}

func orderCardText(o model.Order, created bool) string {
	var b strings.Builder

	if created {
		fmt.Fprintf(&b, "✅ <b>Заказ #%d создан!</b>\n\n", o.ID)
	} else {
		fmt.Fprintf(&b, "📋 <b>Ваш заказ #%d</b>\n\n", o.ID)
	}
	fmt.Fprintf(&b, "🎨 Картина: <b>%s</b>\n", o.PaintingTitle)
	fmt.Fprintf(&b, "💰 Сумма: <b>%d₽</b>\n", o.Price)
	b.WriteString("📦 Срок выполнения: 2-4 дня\n")
	if !created {
		fmt.Fprintf(&b, "📊 Статус: %s\n", statusLabel(o.Status))
	}
	b.WriteString("\n💳 <b>Для оплаты нажмите кнопку ниже:</b>\n")
	b.WriteString("• Откроется страница оплаты\n")
	b.WriteString("• Заполните данные карты\n")
	b.WriteString("• В комментарии уже указан ваш заказ\n\n")
	b.WriteString("⚠️ <b>Важно!</b> После оплаты вернитесь в бот и нажмите \"✅ Оплатил(а)\".\n")
	b.WriteString("📦 Мы начнем работу сразу после подтверждения.\n\n")
	b.WriteString("📞 По всем вопросам: @flexyframe_bot_admin\n")
	fmt.Fprintf(&b, "🔑 Ваш токен: <code>%s</code>", o.Token)

	return b.String()
}

func statusLabel(s model.OrderStatus) string {
	switch s {
	case model.OrderStatusNew:
		return "⏳ Ожидает оплаты"
	case model.OrderStatusPaid:
		return "✅ Оплачен"
	default:
		return string(s)
	}
}

var statusEmoji = map[model.OrderStatus]string{
	model.OrderStatusNew:        "⏳",
	model.OrderStatusPaid:       "✅",
	model.OrderStatusInProgress: "🎨",
	model.OrderStatusCompleted:  "📦",
	model.OrderStatusCancelled:  "❌",
}

func myOrdersText(orders []model.Order) string {
	var b strings.Builder
	b.WriteString("📋 <b>Ваши заказы:</b>\n\n")

	for _, o := range orders {
		emoji, ok := statusEmoji[o.Status]
		if !ok {
			emoji = "⏳"
		}
		fmt.Fprintf(&b, "#%d - %s %s\n", o.ID, emoji, o.Status)
		fmt.Fprintf(&b, "🎨 %s - %d₽\n", o.PaintingTitle, o.Price)
		fmt.Fprintf(&b, "📅 %s\n\n", o.CreatedAt.Format("02.01.2006 15:04"))
	}

	return b.String()
}

func paintingNotFoundText() string {
	return "❌ <b>Картина не найдена!</b>\n\n" +
		"Возможно, она была удалена или ссылка устарела.\n" +
		"Пожалуйста, выберите другую картину на сайте."
}

func miniAppLinkText(siteURL string) string {
	return fmt.Sprintf(
		"📱 <b>Сайт FlexyFrame</b>\n\n"+
			"Откройте сайт для удобного выбора картин:\n\n"+
			"🔗 <b>%s/index.html</b>\n\n"+
			"💡 <i>Как открыть в Telegram:</i>\n"+
			"1. Скопируйте ссылку\n"+
			"2. Вставьте в поиске Telegram\n"+
			"3. Или откройте в браузере\n\n"+
			"✅ На сайте можно:\n"+
			"• Выбрать картину\n"+
			"• Увидеть цену\n"+
			"• Нажать \"Оформить заказ\"\n"+
			"• Автоматически перейти в бота",
		siteURL,
	)
}

func howItWorksText(siteURL string) string {
	return fmt.Sprintf(
		"📋 <b>Как сделать заказ:</b>\n\n"+
			"1️⃣ <b>Выберите картину</b> из галереи\n"+
			"2️⃣ <b>Оформите заказ</b> в боте\n"+
			"3️⃣ <b>Оплатите</b> удобным способом\n"+
			"4️⃣ <b>Получите работу</b> через 2-4 дня\n\n"+
			"💳 <b>Способы оплаты:</b>\n"+
			"• ЮMoney\n"+
			"• Тинькофф\n"+
			"• Сбербанк\n\n"+
			"📦 <b>Доставка:</b>\n"+
			"• Электронная версия (PDF/JPG) - мгновенно\n"+
			"• Физическая печать - 2-4 дня + доставка\n\n"+
			"💡 <b>Сайт:</b>\n"+
			"• %s/index.html\n"+
			"• Удобный выбор картин\n"+
			"• Автоматический переход в бота",
		siteURL,
	)
}

func aboutText(siteURL string) string {
	return fmt.Sprintf(
		"🎨 <b>FlexyFrame — где искусство оживает в каждом штрихе</b>\n\n"+
			"Добро пожаловать в FlexyFrame — пространство, где цифровая эстетика встречается с ручной росписью, "+
			"где ваши воспоминания становятся произведениями искусства, а любимые персонажи обретают новую жизнь на холсте.\n\n"+
			"Мы не просто печатаем картины — мы создаём уникальные арт-объекты, которые становятся центром вашего "+
			"интерьера и отражением вашего вкуса.\n\n"+
			"✨ <b>Наши преимущества:</b>\n"+
			"🖼️ Печать на премиальном холсте — с использованием профессионального фотопринтера и архивных чернил\n"+
			"📏 Идеальный формат 60×50 см — продуманный баланс между выразительностью и элегантностью\n"+
			"🖌️ Ручная роспись по запросу — включая люминесцентные и элюминесцентные краски\n"+
			"🌲 Авторские рамы из натуральной сосны — каждая обрамляется вручную\n\n"+
			"✅ <b>У нас вы можете:</b>\n"+
			"• Заказать картину по собственному макету или идее\n"+
			"• Выбрать из авторской коллекции FlexyFrame\n"+
			"• Превратить семейную фотографию в музейный экспонат\n\n"+
			"📩 <b>Контакты:</b>\n"+
			"• Telegram: @flexyframe_bot\n"+
			"• Email: art@flexyframe.ru\n"+
			"• Instagram: @flexyframe.art\n\n"+
			"🔗 <b>Сайт:</b> %s/index.html\n\n"+
			"💡 <i>FlexyFrame — это не просто картина. Это история, подсвеченная вашим вкусом.</i>",
		siteURL,
	)
}
