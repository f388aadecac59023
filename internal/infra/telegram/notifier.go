package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/domain/quote"
)

// Sender — часть *tgbotapi.BotAPI, которая нужна уведомлениям.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier шлёт админу итог отправки заказа партнёру.
type Notifier struct {
	api       Sender
	adminChat int64
	log       *slog.Logger
}

func New(api Sender, adminChatID int64, log *slog.Logger) *Notifier {
	return &Notifier{api: api, adminChat: adminChatID, log: log}
}

// Connect создаёт клиента бота по токену.
func Connect(token string) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return api, nil
}

func (n *Notifier) NotifySubmission(_ context.Context, r quote.SubmitReport) error {
	if n.adminChat == 0 {
		return nil
	}
	msg := tgbotapi.NewMessage(n.adminChat, FormatReport(r))
	if _, err := n.api.Send(msg); err != nil {
		n.log.Error("send failed", "err", err)
		return err
	}
	return nil
}

// FormatReport — текст по каждой группе: частичный успех не сворачиваем
// в одно "ошибка".
func FormatReport(r quote.SubmitReport) string {
	var sb strings.Builder

	title := "Заказ " + r.OrderNumber
	if r.Customer != "" {
		title += " (" + r.Customer + ")"
	}
	sb.WriteString(title + "\n")
	fmt.Fprintf(&sb, "Отправлено групп: %d из %d\n", r.Succeeded(), len(r.Groups))

	for _, g := range r.Groups {
		if g.OK {
			fmt.Fprintf(&sb, "✅ %s — %s, позиций: %d, заказ партнёра %s\n", g.PurchaseOrder, g.ItemNumber, g.Items, g.OrderID)
		} else {
			fmt.Fprintf(&sb, "❌ %s — %s, позиций: %d: %s\n", g.PurchaseOrder, g.ItemNumber, g.Items, g.Error)
		}
	}
	if len(r.Dropped) > 0 {
		fmt.Fprintf(&sb, "Не переданы опции: %d", len(r.Dropped))
	}
	return strings.TrimRight(sb.String(), "\n")
}
