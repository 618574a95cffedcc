package errcodes_test

import (
	"net/http"
	"testing"

	"git.appkode.ru/pub/go/failure"
	"github.com/stretchr/testify/require"

	"card_tracker/pkg/errcodes"
)

func TestHTTPStatus(t *testing.T) {
	testCases := []struct {
		name     string
		code     failure.ErrorCode
		expected int
	}{
		{name: "validation", code: errcodes.ValidationError, expected: http.StatusBadRequest},
		{name: "invalid price", code: errcodes.InvalidPrice, expected: http.StatusBadRequest},
		{name: "inventory item not found", code: errcodes.InventoryItemNotFound, expected: http.StatusNotFound},
		{name: "already sold", code: errcodes.ItemAlreadySold, expected: http.StatusConflict},
		{name: "catalog unavailable", code: errcodes.CatalogUnavailable, expected: http.StatusBadGateway},
		{name: "catalog error", code: errcodes.CatalogError, expected: http.StatusBadGateway},
		{name: "store unavailable", code: errcodes.StoreUnavailable, expected: http.StatusInternalServerError},
		{name: "unknown", code: failure.ErrorCode("Whatever"), expected: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			rq.Equal(tc.expected, errcodes.HTTPStatus(tc.code))
		})
	}
}
