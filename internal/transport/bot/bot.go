// Package bot Telegram бот с командами администратора.
package bot

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"card_tracker/internal/transport/bot/handler"
	"card_tracker/pkg/contextx"
	"card_tracker/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const pollTimeoutSeconds = 60

type Bot struct {
	bot     *telego.Bot
	handler *handler.Handler
	adminID int64
}

func New(token string, adminID int64, h *handler.Handler) (*Bot, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("telego.NewBot: %w", err)
	}

	return &Bot{
		bot:     bot,
		handler: h,
		adminID: adminID,
	}, nil
}

// Run получает обновления long polling и обрабатывает команды до отмены ctx.
func (b *Bot) Run(ctx context.Context) error {
	updates, err := b.bot.UpdatesViaLongPolling(ctx, &telego.GetUpdatesParams{
		Timeout: pollTimeoutSeconds,
	})
	if err != nil {
		return fmt.Errorf("bot.UpdatesViaLongPolling: %w", err)
	}

	botHandler, err := th.NewBotHandler(b.bot, updates)
	if err != nil {
		return fmt.Errorf("th.NewBotHandler: %w", err)
	}

	b.handler.RegisterRoutes(botHandler, b.adminID)

	go func() {
		if startErr := botHandler.Start(); startErr != nil {
			logger(ctx).Error("bot handler stopped", logx.FieldError, startErr)
		}
	}()

	logger(ctx).Info("command bot started")

	<-ctx.Done()

	if err = botHandler.Stop(); err != nil {
		logger(ctx).Warn("bot handler stop", logx.FieldError, err)
	}

	return ctx.Err()
}
