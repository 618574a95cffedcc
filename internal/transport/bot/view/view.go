// Package view шаблоны сообщений бота.
package view

import (
	"fmt"
	"html"
	"strings"

	"github.com/Rhymond/go-money"

	"card_tracker/internal/domain/entity"
)

const (
	HelpTemplate = `🃏 <b>Card Tracker</b>

/deals QUERY - deals in catalog search results
/calc BUY SALE [SHIPPING] - profit breakdown, dollars
/track ID - start tracking a card
/tracked - tracked cards
/changes [PERCENT] - tracked cards with large price moves
/report [YYYY-MM] - monthly sales report
/status - refresher status
/refresh - refresh tracked prices now
/startscan, /stopscan - background refresher`

	StatusTemplate = `📡 <b>Status</b>

Refresher: %s
Tracked cards: %d`

	DealItemTemplate    = "%d. <b>%s</b> buy %s, sell %s, net %s, ROI %.2f%%\n"
	TrackedItemTemplate = "• <b>%s</b> <code>%s</code> %s, %d snapshots\n"
	ChangeItemTemplate  = "%s <b>%s</b> %s → %s (%+.2f%%)\n"

	NoDeals    = "No deals match the criteria."
	NoTracked  = "No tracked cards. Use /track ID."
	NoChanges  = "No significant price changes."
	RefreshLog = "🔄 Updated %d, failed %d, deals %d."

	// PageSize карточек на странице /tracked.
	PageSize = 10
)

func Cents(cents int64) string {
	return money.New(cents, money.USD).Display()
}

func Status(running bool, tracked int) string {
	state := "🔴 stopped"
	if running {
		state = "🟢 running"
	}

	return fmt.Sprintf(StatusTemplate, state, tracked)
}

func Deals(title string, deals []entity.Deal, limit int) string {
	if len(deals) == 0 {
		return NoDeals
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "🔥 <b>%s</b> (%d)\n\n", html.EscapeString(title), len(deals))

	for i, d := range deals {
		if i == limit {
			fmt.Fprintf(&sb, "… and %d more", len(deals)-limit)
			break
		}

		fmt.Fprintf(&sb, DealItemTemplate,
			i+1,
			html.EscapeString(d.Card.Name),
			Cents(d.BuyPriceCents),
			Cents(d.SalePriceCents),
			Cents(d.Breakdown.NetProfitCents),
			d.Breakdown.ROI,
		)
	}

	return strings.TrimRight(sb.String(), "\n")
}

func Breakdown(b entity.Breakdown) string {
	var sb strings.Builder

	sb.WriteString("🧮 <b>Profit breakdown</b>\n\n")
	fmt.Fprintf(&sb, "Purchase: %s\n", Cents(b.PurchaseCents))
	fmt.Fprintf(&sb, "Sale: %s\n", Cents(b.SaleCents))
	fmt.Fprintf(&sb, "Fees: %s (%s + %s)\n",
		Cents(b.TotalFeesCents), Cents(b.PercentageFeeCents), Cents(b.TransactionFeeCents))
	fmt.Fprintf(&sb, "Shipping: %s\n", Cents(b.ShippingCents))

	if b.AdditionalCents != 0 {
		fmt.Fprintf(&sb, "Other: %s\n", Cents(b.AdditionalCents))
	}

	fmt.Fprintf(&sb, "Total costs: %s\n", Cents(b.TotalCostsCents))
	fmt.Fprintf(&sb, "<b>Net profit: %s</b>\n", Cents(b.NetProfitCents))
	fmt.Fprintf(&sb, "<b>ROI: %.2f%%</b>", b.ROI)

	return sb.String()
}

// Tracked страница отслеживаемых карточек. Page начинается с 1.
func Tracked(histories []entity.PriceHistory, page, totalPages int) string {
	if len(histories) == 0 {
		return NoTracked
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "📚 <b>Tracked cards</b> (page %d/%d)\n\n", page, totalPages)

	for _, h := range histories {
		price := "n/a"
		if latest, ok := h.Latest(); ok {
			price = Cents(latest.Prices.Ungraded)
		}

		fmt.Fprintf(&sb, TrackedItemTemplate,
			html.EscapeString(h.Card.Name),
			html.EscapeString(h.Card.ID.String()),
			price,
			len(h.Snapshots),
		)
	}

	return strings.TrimRight(sb.String(), "\n")
}

func Changes(changes []entity.PriceChange) string {
	if len(changes) == 0 {
		return NoChanges
	}

	var sb strings.Builder

	sb.WriteString("📈 <b>Price changes</b>\n\n")

	for _, c := range changes {
		arrow := "⬆️"
		if c.TrendPercent < 0 {
			arrow = "⬇️"
		}

		fmt.Fprintf(&sb, ChangeItemTemplate,
			arrow,
			html.EscapeString(c.CardName),
			Cents(c.OldestCents),
			Cents(c.LatestCents),
			c.TrendPercent,
		)
	}

	return strings.TrimRight(sb.String(), "\n")
}

func Monthly(s entity.MonthlySummary) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "📊 <b>Report %s</b>\n\n", s.Month)

	if s.SalesCount == 0 {
		sb.WriteString("No sales.")
		return sb.String()
	}

	fmt.Fprintf(&sb, "Sales: %d\n", s.SalesCount)
	fmt.Fprintf(&sb, "Revenue: %s\n", Cents(s.RevenueCents))
	fmt.Fprintf(&sb, "Cost: %s\n", Cents(s.CostCents))
	fmt.Fprintf(&sb, "Fees: %s\n", Cents(s.FeesCents))
	fmt.Fprintf(&sb, "Shipping: %s\n", Cents(s.ShippingCents))
	fmt.Fprintf(&sb, "<b>Net profit: %s</b>\n", Cents(s.NetProfitCents))
	fmt.Fprintf(&sb, "Avg profit: %s\n", Cents(s.AvgProfitCents))
	fmt.Fprintf(&sb, "Avg ROI: %.2f%%, median %.2f%%", s.AvgROI, s.MedianROI)

	if s.BestSale != nil {
		fmt.Fprintf(&sb, "\nBest: <b>%s</b> %s",
			html.EscapeString(s.BestSale.CardName), Cents(s.BestSale.NetProfitCents))
	}

	return sb.String()
}

// Page срез items для страницы page размера size. Page приводится к
// диапазону [1, totalPages], totalPages не меньше 1.
func Page[T any](items []T, page, size int) ([]T, int, int) {
	totalPages := max((len(items)+size-1)/size, 1)
	page = min(max(page, 1), totalPages)

	start := min((page-1)*size, len(items))
	end := min(start+size, len(items))

	return items[start:end], page, totalPages
}
