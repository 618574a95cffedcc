package persistence

import (
	"fmt"

	"card_tracker/internal/domain"
	"card_tracker/pkg/errcodes"
)

func decodeRecord[T any](id string, raw []byte) (T, error) {
	var record T

	if err := json.Unmarshal(raw, &record); err != nil {
		return record, domain.WrapError(
			fmt.Errorf("json.Unmarshal(%s): %w", id, err),
			errcodes.StoreCorrupted,
			"failed to decode record",
		)
	}

	return record, nil
}

func decodeAll[T any](docs Documents) ([]T, error) {
	result := make([]T, 0, len(docs))

	for id, raw := range docs {
		record, err := decodeRecord[T](id, raw)
		if err != nil {
			return nil, err
		}

		result = append(result, record)
	}

	return result, nil
}

func encodeRecord(docs Documents, id string, record any) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return domain.WrapError(
			fmt.Errorf("json.Marshal(%s): %w", id, err),
			errcodes.InternalServerError,
			"failed to encode record",
		)
	}

	docs[id] = raw

	return nil
}
