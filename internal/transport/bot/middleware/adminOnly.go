// Package middleware middleware бота.
package middleware

import (
	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
)

// AdminOnly пропускает сообщения и callback запросы только от adminID.
// Остальные обновления молча отбрасываются.
func AdminOnly(adminID int64) th.Handler {
	return func(ctx *th.Context, update telego.Update) error {
		if senderID(update) == adminID {
			return ctx.Next(update)
		}

		return nil
	}
}

func senderID(update telego.Update) int64 {
	switch {
	case update.Message != nil && update.Message.From != nil:
		return update.Message.From.ID
	case update.CallbackQuery != nil:
		return update.CallbackQuery.From.ID
	default:
		return 0
	}
}
