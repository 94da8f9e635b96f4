// Package notify renders listings into Telegram messages and sends them.
package notify

import (
	"fmt"
	"html"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"yad2watch/internal/model"
)

type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier sends listing notifications to a single Telegram chat.
type Notifier struct {
	api    telegramAPI
	chatID int64
	log    *slog.Logger
}

// New creates a Notifier with the given Telegram token and chat.
func New(token string, chatID int64, log *slog.Logger) (*Notifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	return &Notifier{api: api, chatID: chatID, log: log}, nil
}

// NewWithAPI creates a Notifier around an existing API (useful for testing).
func NewWithAPI(api telegramAPI, chatID int64, log *slog.Logger) *Notifier {
	return &Notifier{api: api, chatID: chatID, log: log}
}

// Send delivers one message. The caller decides what a failure means; a
// lost notification never aborts a cycle.
func (n *Notifier) Send(text string) error {
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// SendStatus sends an operational status line (startup, shutdown, errors).
func (n *Notifier) SendStatus(text string) error {
	return n.Send("ℹ️ <b>yad2watch</b>\n\n" + html.EscapeString(text))
}

// Render formats a listing as a Telegram HTML message. Unknown numeric
// fields are omitted rather than shown as sentinels.
func Render(filterName string, l model.Listing) string {
	var b strings.Builder
	b.WriteString("🚗 <b>New listing</b>")
	if filterName != "" {
		fmt.Fprintf(&b, " [%s]", html.EscapeString(filterName))
	}
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "<b>%s</b>\n", html.EscapeString(l.Title))
	if l.Price != model.UnknownInt {
		fmt.Fprintf(&b, "💰 Price: <b>₪%d</b>\n", l.Price)
	}
	if l.Year != model.UnknownInt {
		fmt.Fprintf(&b, "📅 Year: %d\n", l.Year)
	}
	if l.Mileage != model.UnknownInt {
		fmt.Fprintf(&b, "🛣 Mileage: %d km\n", l.Mileage)
	}
	if l.Location != "" {
		fmt.Fprintf(&b, "📍 Location: %s\n", html.EscapeString(l.Location))
	}
	if l.URL != "" {
		fmt.Fprintf(&b, "\n🔗 <a href=%q>View listing</a>", l.URL)
	}
	return b.String()
}
