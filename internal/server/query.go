package server

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"git.appkode.ru/pub/go/failure"

	"card_tracker/internal/domain/service/deal"
	"card_tracker/internal/domain/value"
	"card_tracker/pkg/errcodes"
)

var errNotFinite = errors.New("value is not finite") //nolint:gochecknoglobals

func invalidArgument(err error, code failure.ErrorCode, description string) error {
	return failure.NewInvalidArgumentErrorFromError(
		err,
		failure.WithCode(code),
		failure.WithDescription(description),
	)
}

func queryFloat(r *http.Request, name string) (*float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil //nolint:nilnil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
		err = errNotFinite
	}

	if err != nil {
		return nil, invalidArgument(
			fmt.Errorf("strconv.ParseFloat: %w", err),
			errcodes.ValidationError,
			name+" must be a number",
		)
	}

	return &v, nil
}

func queryInt64(r *http.Request, name string) (*int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil //nolint:nilnil
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, invalidArgument(
			fmt.Errorf("strconv.ParseInt: %w", err),
			errcodes.ValidationError,
			name+" must be an integer",
		)
	}

	return &v, nil
}

// criteriaFromQuery фильтры сделок: minRoi, maxPriceCents, category.
func criteriaFromQuery(r *http.Request) (deal.Criteria, error) {
	minROI, err := queryFloat(r, "minRoi")
	if err != nil {
		return deal.Criteria{}, err
	}

	maxPrice, err := queryInt64(r, "maxPriceCents")
	if err != nil {
		return deal.Criteria{}, err
	}

	return deal.Criteria{
		MinROI:        minROI,
		MaxPriceCents: maxPrice,
		Category:      r.URL.Query().Get("category"),
	}, nil
}

func parseDate(raw string) (value.Date, error) {
	if raw == "" {
		return value.Date{}, nil
	}

	d, err := value.ParseDate(raw)
	if err != nil {
		return value.Date{}, invalidArgument(
			fmt.Errorf("value.ParseDate: %w", err),
			errcodes.InvalidDate,
			"date must be in YYYY-MM-DD format",
		)
	}

	return d, nil
}

func parseInventoryID(r *http.Request) (value.InventoryID, error) {
	id, err := value.ParseInventoryID(r.PathValue("id"))
	if err != nil {
		return value.InventoryID{}, invalidArgument(
			fmt.Errorf("value.ParseInventoryID: %w", err),
			errcodes.InvalidInventoryID,
			"invalid inventory id",
		)
	}

	return id, nil
}
