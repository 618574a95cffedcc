package handler

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"card_tracker/internal/domain/service/deal"
	"card_tracker/internal/domain/service/deals"
	"card_tracker/internal/domain/value"
	"card_tracker/internal/transport/bot/view"
	"card_tracker/pkg/logx"
)

func (h *Handler) OnStart(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, view.HelpTemplate)
}

func (h *Handler) OnStatus(ctx *th.Context, msg telego.Message) error {
	tracked, err := h.tracking.Tracked(ctx)
	if err != nil {
		return h.fail(ctx, msg.Chat.ID, "tracking.Tracked", err)
	}

	return h.sendHTML(ctx, msg.Chat.ID, view.Status(h.refresher.IsRunning(), len(tracked)))
}

func (h *Handler) OnDeals(ctx *th.Context, msg telego.Message) error {
	query := strings.Join(args(msg.Text), " ")
	if query == "" {
		return h.send(ctx, msg.Chat.ID, "Usage: /deals QUERY")
	}

	found, err := h.deals.FindDeals(ctx, query, deal.Criteria{})
	if err != nil {
		return h.fail(ctx, msg.Chat.ID, "deals.FindDeals", err)
	}

	return h.sendHTML(ctx, msg.Chat.ID, view.Deals("Deals for "+query, found, dealsLimit))
}

func (h *Handler) OnCalc(ctx *th.Context, msg telego.Message) error {
	params, err := calcParams(args(msg.Text))
	if err != nil {
		return h.send(ctx, msg.Chat.ID, "Usage: /calc BUY SALE [SHIPPING], amounts in dollars")
	}

	return h.sendHTML(ctx, msg.Chat.ID, view.Breakdown(h.deals.Calculate(params)))
}

func calcParams(a []string) (deals.CalculateParams, error) {
	if len(a) < 2 || len(a) > 3 {
		return deals.CalculateParams{}, errUsage
	}

	purchase, err := parseDollars(a[0])
	if err != nil {
		return deals.CalculateParams{}, err
	}

	sale, err := parseDollars(a[1])
	if err != nil {
		return deals.CalculateParams{}, err
	}

	params := deals.CalculateParams{PurchaseCents: purchase, SaleCents: sale}

	if len(a) == 3 {
		shipping, shippingErr := parseDollars(a[2])
		if shippingErr != nil {
			return deals.CalculateParams{}, shippingErr
		}

		params.ShippingCents = &shipping
	}

	return params, nil
}

func (h *Handler) OnTrack(ctx *th.Context, msg telego.Message) error {
	a := args(msg.Text)
	if len(a) != 1 {
		return h.send(ctx, msg.Chat.ID, "Usage: /track ID")
	}

	history, err := h.tracking.Track(ctx, value.CardID(a[0]))
	if err != nil {
		return h.fail(ctx, msg.Chat.ID, "tracking.Track", err)
	}

	latest, _ := history.Latest()

	return h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf("✅ Tracking <b>%s</b>, ungraded %s, %d snapshots.",
		html.EscapeString(history.Card.Name), view.Cents(latest.Prices.Ungraded), len(history.Snapshots)))
}

func (h *Handler) OnTracked(ctx *th.Context, msg telego.Message) error {
	text, keyboard, err := h.trackedPage(ctx, 1)
	if err != nil {
		return h.fail(ctx, msg.Chat.ID, "tracking.Tracked", err)
	}

	_, err = ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:      telego.ChatID{ID: msg.Chat.ID},
		Text:        text,
		ParseMode:   telego.ModeHTML,
		ReplyMarkup: keyboard,
	})

	return err
}

func (h *Handler) OnChanges(ctx *th.Context, msg telego.Message) error {
	var threshold *float64

	if a := args(msg.Text); len(a) > 0 {
		t, err := parseFloat(a[0])
		if err != nil {
			return h.send(ctx, msg.Chat.ID, "Usage: /changes [PERCENT]")
		}

		threshold = &t
	}

	changes, err := h.tracking.Changes(ctx, threshold)
	if err != nil {
		return h.fail(ctx, msg.Chat.ID, "tracking.Changes", err)
	}

	return h.sendHTML(ctx, msg.Chat.ID, view.Changes(changes))
}

func (h *Handler) OnReport(ctx *th.Context, msg telego.Message) error {
	month := value.NewMonth(time.Now())

	if a := args(msg.Text); len(a) > 0 {
		m, err := value.ParseMonth(a[0])
		if err != nil {
			return h.send(ctx, msg.Chat.ID, "Usage: /report [YYYY-MM]")
		}

		month = m
	}

	summary, err := h.report.Monthly(ctx, month)
	if err != nil {
		return h.fail(ctx, msg.Chat.ID, "report.Monthly", err)
	}

	return h.sendHTML(ctx, msg.Chat.ID, view.Monthly(summary))
}

func (h *Handler) OnRefresh(ctx *th.Context, msg telego.Message) error {
	result, err := h.refresher.Refresh(ctx)
	if err != nil {
		return h.fail(ctx, msg.Chat.ID, "refresher.Refresh", err)
	}

	return h.send(ctx, msg.Chat.ID, fmt.Sprintf(view.RefreshLog, result.Updated, result.Failed, len(result.Deals)))
}

func (h *Handler) OnStartScan(ctx *th.Context, msg telego.Message) error {
	if h.refresher.IsRunning() {
		return h.send(ctx, msg.Chat.ID, "Refresher is already running.")
	}

	if err := h.refresher.Start(h.baseCtx); err != nil {
		return h.fail(ctx, msg.Chat.ID, "refresher.Start", err)
	}

	return h.send(ctx, msg.Chat.ID, "🟢 Refresher started.")
}

func (h *Handler) OnStopScan(ctx *th.Context, msg telego.Message) error {
	if !h.refresher.IsRunning() {
		return h.send(ctx, msg.Chat.ID, "Refresher is not running.")
	}

	h.refresher.Stop()

	return h.send(ctx, msg.Chat.ID, "🔴 Refresher stopped.")
}

// fail логирует ошибку и сообщает о ней пользователю.
func (h *Handler) fail(ctx *th.Context, chatID int64, op string, err error) error {
	logger(ctx).Error("bot command failed", "op", op, logx.FieldError, err)

	return h.send(ctx, chatID, replyText(err))
}

func (h *Handler) sendHTML(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:    telego.ChatID{ID: chatID},
		Text:      text,
		ParseMode: telego.ModeHTML,
	})

	return err
}

func (h *Handler) send(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID: telego.ChatID{ID: chatID},
		Text:   text,
	})

	return err
}
