package handler

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"card_tracker/internal/domain"
)

const centsPlaces = 2

var errUsage = errors.New("usage") //nolint:gochecknoglobals

// args аргументы команды без самой команды.
func args(text string) []string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}

	return fields[1:]
}

// parseDollars "12.34" или "$12.34" в центы.
func parseDollars(s string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimPrefix(s, "$"))
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	return d.Shift(centsPlaces).Round(0).IntPart(), nil
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", s, err)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid number %q", s)
	}

	return f, nil
}

// replyText текст ошибки для пользователя. Внутренние причины не раскрываются.
func replyText(err error) string {
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		return "❌ " + appErr.PublicMessage()
	}

	return "❌ Something went wrong, see logs."
}
