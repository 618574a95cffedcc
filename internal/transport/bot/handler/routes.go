package handler

import (
	th "github.com/mymmrac/telego/telegohandler"

	"card_tracker/internal/transport/bot/middleware"
)

func (h *Handler) RegisterRoutes(bh *th.BotHandler, adminID int64) {
	admin := bh.Group(th.AnyMessage())
	admin.Use(middleware.AdminOnly(adminID))

	admin.HandleMessage(h.OnStart, th.Or(th.CommandEqual("start"), th.CommandEqual("help")))
	admin.HandleMessage(h.OnStatus, th.CommandEqual("status"))
	admin.HandleMessage(h.OnDeals, th.CommandEqual("deals"))
	admin.HandleMessage(h.OnCalc, th.CommandEqual("calc"))
	admin.HandleMessage(h.OnTrack, th.CommandEqual("track"))
	admin.HandleMessage(h.OnTracked, th.CommandEqual("tracked"))
	admin.HandleMessage(h.OnChanges, th.CommandEqual("changes"))
	admin.HandleMessage(h.OnReport, th.CommandEqual("report"))
	admin.HandleMessage(h.OnRefresh, th.CommandEqual("refresh"))
	admin.HandleMessage(h.OnStartScan, th.CommandEqual("startscan"))
	admin.HandleMessage(h.OnStopScan, th.CommandEqual("stopscan"))

	callbacks := bh.Group(th.AnyCallbackQuery())
	callbacks.Use(middleware.AdminOnly(adminID))

	callbacks.HandleCallbackQuery(h.OnTrackedCallback, th.CallbackDataPrefix(trackedPagePrefix))
	callbacks.HandleCallbackQuery(h.OnNoopCallback, th.CallbackDataEqual(noopCallback))
}
