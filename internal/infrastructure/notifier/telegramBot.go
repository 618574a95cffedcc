// Package notifier оповещения о найденных сделках в Telegram.
package notifier

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"card_tracker/internal/domain/entity"
	"card_tracker/pkg/contextx"
	"card_tracker/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const currency = money.USD

type TelegramBot struct {
	bot         *telego.Bot
	chatID      int64
	trendWindow time.Duration
}

func NewTelegramBot(token string, chatID int64) (*TelegramBot, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	return &TelegramBot{
		bot:    bot,
		chatID: chatID,
	}, nil
}

// WithTrendWindow окно тренда в подписи сообщения.
func (b *TelegramBot) WithTrendWindow(window time.Duration) *TelegramBot {
	b.trendWindow = window
	return b
}

// Run отправляет сделки из канала, пока канал открыт.
func (b *TelegramBot) Run(ctx context.Context, deals <-chan entity.Deal) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case deal, ok := <-deals:
			if !ok {
				return nil
			}

			if err := b.SendDeal(ctx, deal); err != nil {
				logger(ctx).Error("failed to send deal",
					logx.FieldCardID, deal.Card.ID.String(),
					logx.FieldError, err,
				)
			}
		}
	}
}

func (b *TelegramBot) SendDeal(ctx context.Context, deal entity.Deal) error {
	msg := tu.Message(
		tu.ID(b.chatID),
		FormatDeal(deal, b.trendWindow),
	).WithParseMode(telego.ModeHTML)

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

// FormatDeal HTML сообщение о сделке. Window подписывает тренд, ноль
// оставляет подпись без окна.
func FormatDeal(deal entity.Deal, window time.Duration) string {
	var sb strings.Builder

	sb.WriteString("🔥 <b>DEAL FOUND</b>\n\n")
	fmt.Fprintf(&sb, "🃏 <b>Card:</b> %s\n", html.EscapeString(deal.Card.Name))

	if deal.Card.Set != "" {
		fmt.Fprintf(&sb, "📦 <b>Set:</b> %s\n", html.EscapeString(deal.Card.Set))
	}

	fmt.Fprintf(&sb, "💰 <b>Buy at:</b> %s\n", FormatCents(deal.BuyPriceCents))
	fmt.Fprintf(&sb, "📊 <b>Market:</b> %s\n", FormatCents(deal.SalePriceCents))
	fmt.Fprintf(&sb, "💵 <b>Net profit:</b> %s\n", FormatCents(deal.Breakdown.NetProfitCents))
	fmt.Fprintf(&sb, "📈 <b>ROI:</b> %.2f%%", deal.Breakdown.ROI)

	if deal.TrendPercent != nil {
		fmt.Fprintf(&sb, "\n📉 <b>%s:</b> %+.2f%%", TrendLabel(window), *deal.TrendPercent)
	}

	return sb.String()
}

// TrendLabel подпись тренда по окну, например "30d trend".
func TrendLabel(window time.Duration) string {
	const day = 24 * time.Hour

	switch {
	case window <= 0:
		return "Trend"
	case window%day == 0:
		return fmt.Sprintf("%dd trend", int64(window/day))
	case window%time.Hour == 0:
		return fmt.Sprintf("%dh trend", int64(window/time.Hour))
	default:
		return fmt.Sprintf("%s trend", window)
	}
}

func FormatCents(cents int64) string {
	return money.New(cents, currency).Display()
}
