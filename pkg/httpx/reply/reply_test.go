package reply_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"git.appkode.ru/pub/go/failure"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"card_tracker/pkg/contextx"
	"card_tracker/pkg/errcodes"
	"card_tracker/pkg/httpx/reply"
)

type codedErr struct {
	code failure.ErrorCode
	msg  string
}

func (e codedErr) Error() string                { return e.msg }
func (e codedErr) ErrorCode() failure.ErrorCode { return e.code }
func (e codedErr) PublicMessage() string        { return e.msg }

type body struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	SupportID string `json:"supportId"`
}

func TestError(t *testing.T) {
	testCases := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "domain conflict",
			err:            fmt.Errorf("inventory.RecordSale: %w", codedErr{code: errcodes.ItemAlreadySold, msg: "sold"}),
			expectedStatus: http.StatusConflict,
			expectedCode:   "ItemAlreadySold",
		},
		{
			name:           "upstream",
			err:            codedErr{code: errcodes.CatalogUnavailable, msg: "down"},
			expectedStatus: http.StatusBadGateway,
			expectedCode:   "CatalogUnavailable",
		},
		{
			name: "invalid argument",
			err: failure.NewInvalidArgumentError(
				"bad",
				failure.WithCode(errcodes.ValidationError),
				failure.WithDescription("bad"),
			),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "ValidationError",
		},
		{
			name:           "plain error",
			err:            errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "InternalServerError",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			ctx := contextx.WithTraceID(context.Background(), "trace-1")
			rec := httptest.NewRecorder()

			reply.Error(ctx, rec, tc.err)

			rq.Equal(tc.expectedStatus, rec.Code)

			var got body
			rq.NoError(jsoniter.Unmarshal(rec.Body.Bytes(), &got))
			rq.Equal(tc.expectedCode, got.Code)
			rq.Equal("trace-1", got.SupportID)
		})
	}
}

func TestCSV(t *testing.T) {
	rq := require.New(t)

	rec := httptest.NewRecorder()

	reply.CSV(context.Background(), rec, "sales.csv", []byte("a,b\n1,2\n"))

	rq.Equal(http.StatusOK, rec.Code)
	rq.Equal("text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	rq.Contains(rec.Header().Get("Content-Disposition"), "sales.csv")
	rq.Equal("a,b\n1,2\n", rec.Body.String())
}
