package errcodes

import (
	"net/http"

	"git.appkode.ru/pub/go/failure"
)

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"

	InvalidInventoryID failure.ErrorCode = "InvalidInventoryID"
	InvalidCardID      failure.ErrorCode = "InvalidCardID"
	InvalidPrice       failure.ErrorCode = "InvalidPrice"
	InvalidMonth       failure.ErrorCode = "InvalidMonth"
	InvalidDate        failure.ErrorCode = "InvalidDate"
	InvalidStatus      failure.ErrorCode = "InvalidStatus"
	MissingQuery       failure.ErrorCode = "MissingQuery"

	InventoryItemNotFound failure.ErrorCode = "InventoryItemNotFound"
	CardNotFound          failure.ErrorCode = "CardNotFound"
	CardNotTracked        failure.ErrorCode = "CardNotTracked"

	ItemAlreadySold failure.ErrorCode = "ItemAlreadySold"

	CatalogUnavailable failure.ErrorCode = "CatalogUnavailable"
	CatalogError       failure.ErrorCode = "CatalogError"

	StoreUnavailable failure.ErrorCode = "StoreUnavailable"
	StoreCorrupted   failure.ErrorCode = "StoreCorrupted"
)

var statuses = map[failure.ErrorCode]int{ //nolint:gochecknoglobals // skip
	TimeoutExceeded: http.StatusGatewayTimeout,
	ValidationError: http.StatusBadRequest,
	NotFound:        http.StatusNotFound,

	InvalidInventoryID: http.StatusBadRequest,
	InvalidCardID:      http.StatusBadRequest,
	InvalidPrice:       http.StatusBadRequest,
	InvalidMonth:       http.StatusBadRequest,
	InvalidDate:        http.StatusBadRequest,
	InvalidStatus:      http.StatusBadRequest,
	MissingQuery:       http.StatusBadRequest,

	InventoryItemNotFound: http.StatusNotFound,
	CardNotFound:          http.StatusNotFound,
	CardNotTracked:        http.StatusNotFound,

	ItemAlreadySold: http.StatusConflict,

	CatalogUnavailable: http.StatusBadGateway,
	CatalogError:       http.StatusBadGateway,
}

// HTTPStatus returns the response status for a domain error code. Unknown
// codes map to 500.
func HTTPStatus(code failure.ErrorCode) int {
	if status, ok := statuses[code]; ok {
		return status
	}

	return http.StatusInternalServerError
}
