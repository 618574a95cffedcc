package handler

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"

	"card_tracker/internal/transport/bot/view"
	"card_tracker/pkg/logx"
)

const (
	trackedPagePrefix = "tracked_page"
	noopCallback      = "noop"
)

func (h *Handler) OnTrackedCallback(ctx *th.Context, query telego.CallbackQuery) error {
	var page int
	if _, err := fmt.Sscanf(query.Data, trackedPagePrefix+":%d", &page); err != nil {
		page = 1
	}

	text, keyboard, err := h.trackedPage(ctx, page)
	if err != nil {
		_ = ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID).
			WithText("❌ Failed to load tracked cards").WithShowAlert())

		return err
	}

	_, err = ctx.Bot().EditMessageText(ctx, &telego.EditMessageTextParams{
		ChatID:      tu.ID(query.Message.GetChat().ID),
		MessageID:   query.Message.GetMessageID(),
		Text:        text,
		ParseMode:   telego.ModeHTML,
		ReplyMarkup: keyboard,
	})
	if err != nil {
		// та же страница: Telegram отвечает "message is not modified"
		logger(ctx).Debug("edit tracked page", logx.FieldError, err)
	}

	return ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID))
}

func (h *Handler) OnNoopCallback(ctx *th.Context, query telego.CallbackQuery) error {
	return ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID))
}

func (h *Handler) trackedPage(ctx context.Context, page int) (string, *telego.InlineKeyboardMarkup, error) {
	histories, err := h.tracking.Tracked(ctx)
	if err != nil {
		return "", nil, err
	}

	items, page, totalPages := view.Page(histories, page, view.PageSize)

	var keyboard *telego.InlineKeyboardMarkup
	if totalPages > 1 {
		keyboard = paginationKeyboard(page, totalPages)
	}

	return view.Tracked(items, page, totalPages), keyboard, nil
}

func paginationKeyboard(page, totalPages int) *telego.InlineKeyboardMarkup {
	var buttons []telego.InlineKeyboardButton

	if page > 1 {
		buttons = append(buttons, tu.InlineKeyboardButton("⬅️").
			WithCallbackData(fmt.Sprintf("%s:%d", trackedPagePrefix, page-1)))
	}

	buttons = append(buttons, tu.InlineKeyboardButton(fmt.Sprintf("%d / %d", page, totalPages)).
		WithCallbackData(noopCallback))

	if page < totalPages {
		buttons = append(buttons, tu.InlineKeyboardButton("➡️").
			WithCallbackData(fmt.Sprintf("%s:%d", trackedPagePrefix, page+1)))
	}

	return tu.InlineKeyboard(
		tu.InlineKeyboardRow(buttons...),
	)
}
