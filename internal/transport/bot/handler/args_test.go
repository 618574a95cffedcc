package handler

import (
	"errors"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"card_tracker/internal/domain"
	"card_tracker/pkg/errcodes"
)

func TestArgs(t *testing.T) {
	rq := require.New(t)

	rq.Nil(args(""))
	rq.Empty(args("/deals"))
	rq.Equal([]string{"griffey", "1989"}, args("/deals  griffey 1989 "))
}

func TestCalcParams(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		purchase int64
		sale     int64
		shipping *int64
		wantErr  bool
	}{
		{name: "two amounts", args: []string{"50", "75"}, purchase: 5000, sale: 7500},
		{name: "dollar sign and cents", args: []string{"$12.345", "20.1"}, purchase: 1235, sale: 2010},
		{name: "shipping", args: []string{"100", "150", "4.5"}, purchase: 10000, sale: 15000, shipping: lo.ToPtr(int64(450))},
		{name: "too few", args: []string{"100"}, wantErr: true},
		{name: "too many", args: []string{"1", "2", "3", "4"}, wantErr: true},
		{name: "not a number", args: []string{"abc", "2"}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			params, err := calcParams(tc.args)
			if tc.wantErr {
				rq.Error(err)
				return
			}

			rq.NoError(err)
			rq.Equal(tc.purchase, params.PurchaseCents)
			rq.Equal(tc.sale, params.SaleCents)
			rq.Equal(tc.shipping, params.ShippingCents)
		})
	}
}

func TestParseFloat(t *testing.T) {
	rq := require.New(t)

	f, err := parseFloat("2.5")
	rq.NoError(err)
	rq.InDelta(2.5, f, 1e-9)

	for _, raw := range []string{"NaN", "Inf", "-inf", "x"} {
		_, err = parseFloat(raw)
		rq.Error(err, raw)
	}
}

func TestReplyText(t *testing.T) {
	rq := require.New(t)

	err := domain.WrapError(errors.New("upstream 404"), errcodes.CardNotFound, "card not found")

	rq.Equal("❌ card not found", replyText(err))
	rq.Equal("❌ Something went wrong, see logs.", replyText(errors.New("db down")))
}

func TestPaginationKeyboard(t *testing.T) {
	rq := require.New(t)

	keyboard := paginationKeyboard(2, 3)
	rq.Len(keyboard.InlineKeyboard, 1)

	row := keyboard.InlineKeyboard[0]
	rq.Len(row, 3)
	rq.Equal("tracked_page:1", row[0].CallbackData)
	rq.Equal("2 / 3", row[1].Text)
	rq.Equal("tracked_page:3", row[2].CallbackData)

	rq.Len(paginationKeyboard(1, 2).InlineKeyboard[0], 2)
}
