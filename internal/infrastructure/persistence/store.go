package persistence

import (
	"context"

	jsoniter "github.com/json-iterator/go"

	"card_tracker/pkg/contextx"
)

var (
	json   = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip
	logger = contextx.LoggerFromContextOrDefault          //nolint:gochecknoglobals
)

const (
	CollectionInventory    = "inventory"
	CollectionSales        = "sales"
	CollectionPriceHistory = "price-history"
)

// Documents коллекция целиком: id записи -> JSON записи.
type Documents map[string]jsoniter.RawMessage

func (d Documents) Clone() Documents {
	clone := make(Documents, len(d))

	for k, v := range d {
		clone[k] = append(jsoniter.RawMessage(nil), v...)
	}

	return clone
}

// Store хранилище коллекций документов: читается и пишется коллекция целиком.
//
// Update атомарно читает указанные коллекции, передаёт их в fn и записывает
// обратно все, если fn не вернула ошибку. При ошибке ничего не записывается.
// Коллекции, которых ещё нет, приходят пустыми.
type Store interface {
	Get(ctx context.Context, collection string) (Documents, error)
	Put(ctx context.Context, collection string, docs Documents) error
	Update(ctx context.Context, collections []string, fn func(map[string]Documents) error) error
}
