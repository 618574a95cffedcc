package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"card_tracker/internal/domain"
	"card_tracker/pkg/errcodes"
)

func TestAppError(t *testing.T) {
	rq := require.New(t)

	cause := errors.New("connection refused")
	err := fmt.Errorf("catalog.Search: %w", domain.WrapError(cause, errcodes.CatalogUnavailable, "catalog unavailable"))

	rq.True(domain.IsAppError(err))
	rq.True(domain.HasCode(err, errcodes.CatalogUnavailable))
	rq.False(domain.HasCode(err, errcodes.CatalogError))
	rq.ErrorIs(err, cause)
	rq.Contains(err.Error(), "connection refused")

	var appErr *domain.AppError
	rq.ErrorAs(err, &appErr)
	rq.Equal("catalog unavailable", appErr.PublicMessage())

	code, ok := domain.GetCode(errors.New("plain"))
	rq.False(ok)
	rq.Empty(code)
}
